package portage

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/portage-market/portage-go/internal/repository/session"
	"github.com/portage-market/portage-go/internal/transport/rest"
	usecasesearch "github.com/portage-market/portage-go/internal/usecase/search"
)

// DefaultDebounce is the fetch coalescing window used when WithDebounce
// is not given.
const DefaultDebounce = usecasesearch.DefaultWindow

const defaultPageURL = "/product-search-and-browse"

// Client is the portage SDK entry point. It owns the session context and
// the API transport; per-view query models are created with NewQuery.
type Client struct {
	api  *rest.Client
	sess *session.Session
	obs  *observer

	debounce   time.Duration
	liveSearch bool
	pageURL    string
	history    History

	sqlite *session.SQLite

	authSvc     *AuthService
	dashSvc     *DashboardService
	metadataSvc *MetadataService
}

// New creates a portage Client.
func New(opts ...Option) (*Client, error) {
	cfg := &clientConfig{
		debounce: DefaultDebounce,
		pageURL:  defaultPageURL,
	}
	for _, o := range opts {
		o.apply(cfg)
	}

	if cfg.baseURL == "" {
		return nil, errors.New("portage: API base URL required (use WithBaseURL)")
	}

	var sqlite *session.SQLite
	store := cfg.sessionStore
	if store == nil && cfg.sessionPath != "" {
		s, err := session.OpenSQLite(cfg.sessionPath)
		if err != nil {
			return nil, fmt.Errorf("portage: open session store: %w", err)
		}
		sqlite = s
		store = s
	}
	if store == nil {
		store = session.NewMemory()
	}
	sess := session.New(store)
	if cfg.language != "" {
		// Unsupported tags fall back at read time; only outright
		// unparseable input is rejected here.
		if err := sess.SetLanguage(cfg.language); err != nil {
			closeStore(sqlite)
			return nil, fmt.Errorf("portage: %w", err)
		}
	}

	logger := cfg.logger
	if logger == nil {
		logger = zap.NewNop()
	}

	api, err := rest.NewClient(&rest.Config{
		BaseURL:    cfg.baseURL,
		HTTPClient: cfg.httpClient,
		Session:    sess,
		Logger:     logger,
	})
	if err != nil {
		closeStore(sqlite)
		return nil, fmt.Errorf("portage: %w", err)
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		closeStore(sqlite)
		return nil, err
	}

	c := &Client{
		api:        api,
		sess:       sess,
		obs:        obs,
		debounce:   cfg.debounce,
		liveSearch: cfg.liveSearch,
		pageURL:    cfg.pageURL,
		history:    cfg.history,
		sqlite:     sqlite,
	}
	c.authSvc = &AuthService{api: api, sess: sess, obs: obs}
	c.dashSvc = &DashboardService{api: api, obs: obs}
	c.metadataSvc = &MetadataService{api: api, obs: obs}
	return c, nil
}

func closeStore(s *session.SQLite) {
	if s != nil {
		_ = s.Close()
	}
}

// Auth returns the authentication service.
func (c *Client) Auth() *AuthService { return c.authSvc }

// Dashboard returns the dashboard service.
func (c *Client) Dashboard() *DashboardService { return c.dashSvc }

// Metadata returns the filter metadata service.
func (c *Client) Metadata() *MetadataService { return c.metadataSvc }

// Language returns the session's UI language ("en", "ar").
func (c *Client) Language() string {
	return c.sess.Language().String()
}

// SetLanguage stores the UI language preference for subsequent requests.
func (c *Client) SetLanguage(tag string) error {
	return c.sess.SetLanguage(tag)
}

// Close releases resources held by the client. Query models created from
// it must be closed separately.
func (c *Client) Close() error {
	if c.sqlite != nil {
		return c.sqlite.Close()
	}
	return nil
}
