// Package rest is the HTTP transport to the marketplace API. It attaches
// the session's bearer token and language preference, tags every request
// with an X-Request-ID, and records transport-level metrics.
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/portage-market/portage-go/internal/domain"
	"github.com/portage-market/portage-go/internal/domain/account"
	"github.com/portage-market/portage-go/internal/domain/catalog"
	"github.com/portage-market/portage-go/internal/domain/dashboard"
	"github.com/portage-market/portage-go/internal/domain/search/query"
	"github.com/portage-market/portage-go/internal/metrics"
	"github.com/portage-market/portage-go/internal/repository/session"
)

const defaultTimeout = 15 * time.Second

// Client talks to the marketplace REST API.
type Client struct {
	http   *http.Client
	base   *url.URL
	sess   *session.Session
	logger *zap.Logger
}

// Config holds the transport settings.
type Config struct {
	BaseURL    string
	HTTPClient *http.Client
	Session    *session.Session
	Logger     *zap.Logger
}

// NewClient creates a marketplace API client.
func NewClient(cfg *Config) (*Client, error) {
	base, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base URL %q: %w", cfg.BaseURL, err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("base URL %q must be absolute", cfg.BaseURL)
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	sess := cfg.Session
	if sess == nil {
		sess = session.New(session.NewMemory())
	}

	return &Client{http: httpClient, base: base, sess: sess, logger: logger}, nil
}

// Session returns the session context attached to this client.
func (c *Client) Session() *session.Session { return c.sess }

// Products calls the product listing endpoint with the cleaned query
// parameters and decodes either the bare-array or wrapped response shape.
func (c *Client) Products(ctx context.Context, req query.Request) ([]catalog.Product, error) {
	body, err := c.do(ctx, http.MethodGet, "/api/products", req.Encode(), nil, "", true)
	if err != nil {
		return nil, err
	}
	items, err := catalog.DecodeProducts(body)
	if err != nil {
		return nil, err
	}
	return items, nil
}

// Metadata fetches the filter option lists.
func (c *Client) Metadata(ctx context.Context) (catalog.Metadata, error) {
	body, err := c.do(ctx, http.MethodGet, "/api/metadata", "", nil, "", true)
	if err != nil {
		return catalog.Metadata{}, err
	}
	var meta catalog.Metadata
	if err := json.Unmarshal(body, &meta); err != nil {
		return catalog.Metadata{}, fmt.Errorf("decode metadata: %w", err)
	}
	return meta, nil
}

// Register creates an account.
func (c *Client) Register(ctx context.Context, payload account.Payload) error {
	_, err := c.doJSON(ctx, http.MethodPost, "/api/auth/register", payload, true)
	return err
}

// Login exchanges credentials for a token. The endpoint takes a form body
// and must not carry an Authorization header.
func (c *Client) Login(ctx context.Context, email, password string) (account.Token, error) {
	form := url.Values{}
	form.Set("username", email)
	form.Set("password", password)

	body, err := c.do(ctx, http.MethodPost, "/api/auth/login", "",
		strings.NewReader(form.Encode()), "application/x-www-form-urlencoded", false)
	if err != nil {
		if errors.Is(err, domain.ErrAuthRequired) {
			return account.Token{}, fmt.Errorf("login: %w", domain.ErrInvalidCredentials)
		}
		return account.Token{}, err
	}

	var tok account.Token
	if err := json.Unmarshal(body, &tok); err != nil {
		return account.Token{}, fmt.Errorf("decode token: %w", err)
	}
	if tok.AccessToken == "" {
		return account.Token{}, domain.ErrInvalidCredentials
	}
	return tok, nil
}

// Me fetches the authenticated profile.
func (c *Client) Me(ctx context.Context) (account.User, error) {
	body, err := c.do(ctx, http.MethodGet, "/api/auth/me", "", nil, "", true)
	if err != nil {
		return account.User{}, err
	}
	var user account.User
	if err := json.Unmarshal(body, &user); err != nil {
		return account.User{}, fmt.Errorf("decode profile: %w", err)
	}
	return user, nil
}

// Stats fetches the role-dependent dashboard summary.
func (c *Client) Stats(ctx context.Context) (dashboard.Stats, error) {
	body, err := c.do(ctx, http.MethodGet, "/api/dashboard/stats", "", nil, "", true)
	if err != nil {
		return dashboard.Stats{}, err
	}
	var stats dashboard.Stats
	if err := json.Unmarshal(body, &stats); err != nil {
		return dashboard.Stats{}, fmt.Errorf("decode stats: %w", err)
	}
	return stats, nil
}

// UpcomingTrips fetches the traveler's upcoming trips.
func (c *Client) UpcomingTrips(ctx context.Context) ([]dashboard.Trip, error) {
	var trips []dashboard.Trip
	if err := c.getJSON(ctx, "/api/dashboard/upcoming-trips", "", &trips); err != nil {
		return nil, err
	}
	return trips, nil
}

// ActiveListings fetches the traveler's active listings, optionally scoped
// to listings linkable to one trip.
func (c *Client) ActiveListings(ctx context.Context, tripID string) ([]dashboard.Listing, error) {
	rawQuery := ""
	if tripID != "" {
		q := url.Values{}
		q.Set("trip_id", tripID)
		rawQuery = q.Encode()
	}
	var listings []dashboard.Listing
	if err := c.getJSON(ctx, "/api/dashboard/active-listings", rawQuery, &listings); err != nil {
		return nil, err
	}
	return listings, nil
}

// Notifications fetches the dashboard notification feed.
func (c *Client) Notifications(ctx context.Context) ([]dashboard.Notification, error) {
	var notifs []dashboard.Notification
	if err := c.getJSON(ctx, "/api/dashboard/notifications", "", &notifs); err != nil {
		return nil, err
	}
	return notifs, nil
}

// Requests fetches the buyer requests visible to the current user.
func (c *Client) Requests(ctx context.Context) ([]dashboard.Request, error) {
	var reqs []dashboard.Request
	if err := c.getJSON(ctx, "/api/requests", "", &reqs); err != nil {
		return nil, err
	}
	return reqs, nil
}

// CreateRequest files a buyer request against a listing.
func (c *Client) CreateRequest(ctx context.Context, req dashboard.Request) (dashboard.Request, error) {
	body, err := c.doJSON(ctx, http.MethodPost, "/api/requests", req, true)
	if err != nil {
		return dashboard.Request{}, err
	}
	var created dashboard.Request
	if err := json.Unmarshal(body, &created); err != nil {
		// Some deployments return only an ack; fall back to the input.
		return req, nil
	}
	return created, nil
}

// UpdateRequestStatus sets a buyer request's status.
func (c *Client) UpdateRequestStatus(ctx context.Context, requestID, status string) error {
	payload := map[string]string{"status": status}
	path := "/api/requests/" + url.PathEscape(requestID) + "/status"
	_, err := c.doJSON(ctx, http.MethodPatch, path, payload, true)
	return err
}

// MarkFulfilled marks a listing as fulfilled.
func (c *Client) MarkFulfilled(ctx context.Context, productID string) error {
	payload := map[string]string{"product_id": productID}
	_, err := c.doJSON(ctx, http.MethodPost, "/api/products/mark-fulfilled", payload, true)
	return err
}

func (c *Client) getJSON(ctx context.Context, path, rawQuery string, out any) error {
	body, err := c.do(ctx, http.MethodGet, path, rawQuery, nil, "", true)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

func (c *Client) doJSON(ctx context.Context, method, path string, payload any, auth bool) ([]byte, error) {
	buf, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", path, err)
	}
	return c.do(ctx, method, path, "", bytes.NewReader(buf), "application/json", auth)
}

// do issues one request and returns the response body. Non-2xx statuses
// map to sentinel errors where a sentinel exists.
func (c *Client) do(
	ctx context.Context, method, path, rawQuery string,
	body io.Reader, contentType string, auth bool,
) ([]byte, error) {
	u := *c.base
	u.Path = strings.TrimRight(u.Path, "/") + path
	u.RawQuery = rawQuery

	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return nil, fmt.Errorf("build request %s %s: %w", method, path, err)
	}

	req.Header.Set("X-Request-ID", uuid.NewString())
	req.Header.Set("Accept-Language", c.sess.Language().String())
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if auth {
		if tok := c.sess.Token(); tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	duration := time.Since(start)

	endpoint := endpointLabel(path)
	if err != nil {
		metrics.APIRequestsTotal.WithLabelValues(endpoint, "error").Inc()
		c.logger.Warn("API request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Duration("duration", duration),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.APIRequestsTotal.WithLabelValues(endpoint, "error").Inc()
		return nil, fmt.Errorf("read %s response: %w", path, err)
	}

	metrics.APIRequestsTotal.WithLabelValues(endpoint, statusClass(resp.StatusCode)).Inc()
	metrics.APIRequestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())

	c.logger.Debug("API request",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", duration),
	)

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return payload, nil
	}
	return nil, statusError(resp.StatusCode, path, payload)
}

func statusError(code int, path string, body []byte) error {
	switch code {
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Errorf("%s: %w", path, domain.ErrAuthRequired)
	case http.StatusNotFound:
		return fmt.Errorf("%s: %w", path, domain.ErrNotFound)
	}
	detail := extractDetail(body)
	if detail != "" {
		return fmt.Errorf("%s: API error %d: %s", path, code, detail)
	}
	return fmt.Errorf("%s: API error %d", path, code)
}

// extractDetail pulls the "detail" field from a JSON error body (FastAPI
// error format).
func extractDetail(body []byte) string {
	var parsed struct {
		Detail string `json:"detail"`
	}
	if json.Unmarshal(body, &parsed) == nil && parsed.Detail != "" {
		return parsed.Detail
	}
	return ""
}

func statusClass(code int) string {
	if code >= 200 && code < 300 {
		return "ok"
	}
	return "error"
}

// endpointLabel keeps metric label cardinality bounded by collapsing
// path parameters.
func endpointLabel(path string) string {
	trimmed := strings.TrimPrefix(path, "/api/")
	parts := strings.Split(trimmed, "/")
	if len(parts) > 2 {
		// e.g. requests/{id}/status -> requests.status
		return parts[0] + "." + parts[len(parts)-1]
	}
	return strings.Join(parts, ".")
}
