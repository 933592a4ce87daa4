package search

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/portage-market/portage-go/internal/domain/catalog"
	"github.com/portage-market/portage-go/internal/domain/search/query"
)

// testWindow keeps debounce waits short.
const testWindow = 20 * time.Millisecond

// fetcherMock records every issued request and delegates to fn.
type fetcherMock struct {
	mu    sync.Mutex
	calls []query.Request
	fn    func(ctx context.Context, req query.Request) ([]catalog.Product, error)
}

func (m *fetcherMock) Products(ctx context.Context, req query.Request) ([]catalog.Product, error) {
	m.mu.Lock()
	m.calls = append(m.calls, req.Clone())
	m.mu.Unlock()
	if m.fn != nil {
		return m.fn(ctx, req)
	}
	return nil, nil
}

func (m *fetcherMock) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

func (m *fetcherMock) lastCall(t *testing.T) query.Request {
	t.Helper()
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.calls) == 0 {
		t.Fatal("no fetches issued")
	}
	return m.calls[len(m.calls)-1]
}

func products(ids ...string) []catalog.Product {
	out := make([]catalog.Product, 0, len(ids))
	for _, id := range ids {
		out = append(out, catalog.Product{ID: id})
	}
	return out
}

// newUpdates wires an update-notification channel into svc.
func newUpdates(svc *Service) chan struct{} {
	ch := make(chan struct{}, 16)
	svc.OnUpdate(func() { ch <- struct{}{} })
	return ch
}

func waitUpdate(t *testing.T, ch chan struct{}) {
	t.Helper()
	select {
	case <-ch:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for update")
	}
}
