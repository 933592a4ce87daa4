// Package search drives product fetches from filter changes: it coalesces
// bursts of changes into one request per quiescence window and applies
// responses last-write-wins by issuance order.
package search

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/portage-market/portage-go/internal/domain"
	"github.com/portage-market/portage-go/internal/domain/catalog"
	"github.com/portage-market/portage-go/internal/domain/search/query"
	"github.com/portage-market/portage-go/internal/metrics"
)

// DefaultWindow is the debounce quiescence window.
const DefaultWindow = 350 * time.Millisecond

// pageParam is the extra wire parameter used for incremental loading. It
// is not part of the filter state and never lands in the shareable URL.
const pageParam = "page"

// Service owns the result list and the fetch schedule for one search
// view. All mutation happens under one mutex; responses that arrive after
// Close, or that were issued before an already-applied request, are
// dropped.
type Service struct {
	fetch  Fetcher
	window time.Duration

	ctx    context.Context
	cancel context.CancelFunc

	mu          sync.Mutex
	timer       *time.Timer
	pending     query.Request
	lastReq     query.Request
	seq         uint64
	applied     uint64
	results     []catalog.Product
	hasMore     bool
	loading     bool
	loadingMore bool
	page        int
	closed      bool
	onUpdate    func()
}

// New creates a fetch orchestrator. A non-positive window falls back to
// DefaultWindow.
func New(fetch Fetcher, window time.Duration) *Service {
	if window <= 0 {
		window = DefaultWindow
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Service{
		fetch:   fetch,
		window:  window,
		ctx:     ctx,
		cancel:  cancel,
		lastReq: query.Request{},
		page:    1,
	}
}

// OnUpdate registers a callback invoked (under no lock) after each applied
// response. Used by hosts to re-render.
func (s *Service) OnUpdate(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onUpdate = fn
}

// Schedule queues req for fetching after the quiescence window. Another
// Schedule before the window elapses replaces the queued request and
// restarts the window, so a settled burst issues exactly one fetch,
// carrying the last request of the burst.
func (s *Service) Schedule(req query.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.pending = req.Clone()
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.window, s.flush)
}

// flush issues the pending request. Runs on the timer goroutine.
func (s *Service) flush() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	req := s.pending.Clone()
	s.lastReq = req.Clone()
	s.page = 1
	// A full fetch supersedes any tail load still in flight; its response
	// will be discarded as stale, so the slot must reopen here.
	s.loadingMore = false
	s.seq++
	n := s.seq
	s.loading = true
	s.mu.Unlock()

	go s.run(n, req, false)
}

// run performs one fetch and applies its outcome.
func (s *Service) run(n uint64, req query.Request, more bool) {
	items, err := s.fetch.Products(s.ctx, req)

	status := "ok"
	if err != nil {
		status = "error"
	}
	metrics.SearchFetchesTotal.WithLabelValues(status).Inc()

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	// Last write wins by issuance order: a response whose request was
	// issued before one already applied is stale, regardless of which
	// resolved first.
	if n < s.applied {
		s.mu.Unlock()
		return
	}
	s.applied = n

	switch {
	case err != nil && more:
		// Failed tail load: keep what is shown, stop paging.
		s.hasMore = false
		s.loadingMore = false
	case err != nil:
		// A failed fetch reads as zero results, never as stale results
		// that silently stopped matching the filters.
		s.results = nil
		s.hasMore = false
		s.loading = false
	case more:
		s.results = append(s.results, items...)
		s.hasMore = len(items) > 0
		s.loadingMore = false
	default:
		s.results = items
		s.hasMore = len(items) > 0
		s.loading = false
	}
	fn := s.onUpdate
	s.mu.Unlock()

	if fn != nil {
		fn()
	}
}

// LoadMore requests the next result page for the last applied query. At
// most one tail load is in flight at a time, and loading stops for good
// once a page comes back empty.
func (s *Service) LoadMore() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return domain.ErrModelClosed
	}
	if s.loadingMore {
		s.mu.Unlock()
		return domain.ErrLoadInFlight
	}
	if !s.hasMore {
		s.mu.Unlock()
		return nil
	}
	s.loadingMore = true
	s.page++
	req := s.lastReq.Clone()
	req[pageParam] = strconv.Itoa(s.page)
	s.seq++
	n := s.seq
	s.mu.Unlock()

	go s.run(n, req, true)
	return nil
}

// Results returns a copy of the current result list.
func (s *Service) Results() []catalog.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]catalog.Product, len(s.results))
	copy(out, s.results)
	return out
}

// HasMore reports whether another page may exist.
func (s *Service) HasMore() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hasMore
}

// Loading reports whether a full fetch is pending or in flight.
func (s *Service) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// Close tears the orchestrator down: the debounce timer is stopped, the
// in-flight request context is canceled, and any response that resolves
// afterwards is suppressed.
func (s *Service) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	if s.timer != nil {
		s.timer.Stop()
	}
	s.mu.Unlock()
	s.cancel()
}
