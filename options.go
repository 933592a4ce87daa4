package portage

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/portage-market/portage-go/internal/repository/session"
	"github.com/portage-market/portage-go/internal/urlstate"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	baseURL    string
	httpClient *http.Client

	sessionStore session.Store
	sessionPath  string
	language     string

	debounce   time.Duration
	liveSearch bool
	pageURL    string
	history    urlstate.History

	logger     *zap.Logger
	metricsReg prometheus.Registerer
}

// WithBaseURL sets the marketplace API base URL. Required.
func WithBaseURL(u string) Option {
	return optionFunc(func(c *clientConfig) {
		c.baseURL = u
	})
}

// WithHTTPClient replaces the default HTTP client (15s timeout).
func WithHTTPClient(hc *http.Client) Option {
	return optionFunc(func(c *clientConfig) {
		c.httpClient = hc
	})
}

// WithSessionStore sets a custom session store. Default is in-memory:
// logins live as long as the process.
func WithSessionStore(s SessionStore) Option {
	return optionFunc(func(c *clientConfig) {
		c.sessionStore = s
	})
}

// WithSessionPath persists the session in a SQLite database at the given
// path, so logins survive process restarts.
func WithSessionPath(path string) Option {
	return optionFunc(func(c *clientConfig) {
		c.sessionPath = path
	})
}

// WithLanguage sets the initial UI language preference ("en", "ar").
// Unsupported tags fall back to English.
func WithLanguage(tag string) Option {
	return optionFunc(func(c *clientConfig) {
		c.language = tag
	})
}

// WithDebounce overrides the fetch coalescing window. Default 350ms.
func WithDebounce(d time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.debounce = d
	})
}

// WithLiveSearch makes text query edits schedule a fetch directly,
// without waiting for Apply. Other filter fields still require Apply.
func WithLiveSearch() Option {
	return optionFunc(func(c *clientConfig) {
		c.liveSearch = true
	})
}

// WithPageURL sets the location the shareable query string is written to.
// Default "/product-search-and-browse".
func WithPageURL(u string) Option {
	return optionFunc(func(c *clientConfig) {
		c.pageURL = u
	})
}

// WithHistory replaces the in-process history with a host-provided one,
// e.g. a bridge to real browser history in a WASM build.
func WithHistory(h History) Option {
	return optionFunc(func(c *clientConfig) {
		c.history = h
	})
}

// WithLogger enables structured logging for client operations.
// Pass nil to disable (default).
func WithLogger(l *zap.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}

// WithPrometheus registers client metrics (operation counts and durations)
// on the given registerer. Pass nil to disable (default).
func WithPrometheus(reg prometheus.Registerer) Option {
	return optionFunc(func(c *clientConfig) {
		c.metricsReg = reg
	})
}
