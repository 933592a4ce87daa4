package search

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/portage-market/portage-go/internal/domain"
	"github.com/portage-market/portage-go/internal/domain/catalog"
	"github.com/portage-market/portage-go/internal/domain/search/query"
)

func TestSchedule_BurstIssuesOneFetchWithLastRequest(t *testing.T) {
	fetch := &fetcherMock{
		fn: func(_ context.Context, _ query.Request) ([]catalog.Product, error) {
			return products("p1"), nil
		},
	}
	svc := New(fetch, testWindow)
	defer svc.Close()
	updates := newUpdates(svc)

	svc.Schedule(query.Request{"q": "c"})
	svc.Schedule(query.Request{"q": "ca"})
	svc.Schedule(query.Request{"q": "cam"})

	waitUpdate(t, updates)

	if n := fetch.callCount(); n != 1 {
		t.Fatalf("burst issued %d fetches, want 1", n)
	}
	if got := fetch.lastCall(t)["q"]; got != "cam" {
		t.Errorf("fetched q = %q, want the last of the burst", got)
	}
	if got := svc.Results(); len(got) != 1 || got[0].ID != "p1" {
		t.Errorf("results = %v", got)
	}
}

func TestSchedule_SeparatedBurstsEachFetch(t *testing.T) {
	fetch := &fetcherMock{}
	svc := New(fetch, testWindow)
	defer svc.Close()
	updates := newUpdates(svc)

	svc.Schedule(query.Request{"q": "a"})
	waitUpdate(t, updates)
	svc.Schedule(query.Request{"q": "b"})
	waitUpdate(t, updates)

	if n := fetch.callCount(); n != 2 {
		t.Fatalf("got %d fetches, want 2", n)
	}
}

func TestRun_FailureReadsAsEmpty(t *testing.T) {
	calls := 0
	fetch := &fetcherMock{
		fn: func(_ context.Context, _ query.Request) ([]catalog.Product, error) {
			calls++
			if calls == 1 {
				return products("p1", "p2"), nil
			}
			return nil, errors.New("backend down")
		},
	}
	svc := New(fetch, testWindow)
	defer svc.Close()
	updates := newUpdates(svc)

	svc.Schedule(query.Request{"q": "ok"})
	waitUpdate(t, updates)
	if len(svc.Results()) != 2 {
		t.Fatalf("setup results = %v", svc.Results())
	}

	svc.Schedule(query.Request{"q": "boom"})
	waitUpdate(t, updates)

	if got := svc.Results(); len(got) != 0 {
		t.Errorf("failed fetch left stale results: %v", got)
	}
	if svc.HasMore() {
		t.Error("hasMore should be false after a failed fetch")
	}
	if svc.Loading() {
		t.Error("loading stuck after failure")
	}
}

func TestRun_StaleResponseDiscarded(t *testing.T) {
	releaseFirst := make(chan struct{})
	fetch := &fetcherMock{
		fn: func(_ context.Context, req query.Request) ([]catalog.Product, error) {
			if req["q"] == "slow" {
				<-releaseFirst
				return products("stale"), nil
			}
			return products("fresh"), nil
		},
	}
	svc := New(fetch, testWindow)
	defer svc.Close()
	updates := newUpdates(svc)

	svc.Schedule(query.Request{"q": "slow"})
	// Let the first request get in flight before scheduling the second.
	time.Sleep(3 * testWindow)
	svc.Schedule(query.Request{"q": "fast"})
	waitUpdate(t, updates) // fast response applied

	close(releaseFirst) // slow response resolves after fast
	time.Sleep(3 * testWindow)

	got := svc.Results()
	if len(got) != 1 || got[0].ID != "fresh" {
		t.Fatalf("stale response overwrote fresh one: %v", got)
	}
}

func TestLoadMore_AppendsNextPage(t *testing.T) {
	fetch := &fetcherMock{
		fn: func(_ context.Context, req query.Request) ([]catalog.Product, error) {
			switch req["page"] {
			case "2":
				return products("p3", "p4"), nil
			case "3":
				return nil, nil
			default:
				return products("p1", "p2"), nil
			}
		},
	}
	svc := New(fetch, testWindow)
	defer svc.Close()
	updates := newUpdates(svc)

	svc.Schedule(query.Request{"q": "x"})
	waitUpdate(t, updates)
	if !svc.HasMore() {
		t.Fatal("expected hasMore after a full first page")
	}

	if err := svc.LoadMore(); err != nil {
		t.Fatalf("load more: %v", err)
	}
	waitUpdate(t, updates)
	if got := svc.Results(); len(got) != 4 {
		t.Fatalf("results after page 2 = %v", got)
	}
	if req := fetch.lastCall(t); req["page"] != "2" || req["q"] != "x" {
		t.Errorf("page request = %v", req)
	}

	// Empty page ends paging for good.
	if err := svc.LoadMore(); err != nil {
		t.Fatalf("load more: %v", err)
	}
	waitUpdate(t, updates)
	if svc.HasMore() {
		t.Error("hasMore should be false after an empty page")
	}

	calls := fetch.callCount()
	if err := svc.LoadMore(); err != nil {
		t.Fatalf("load more: %v", err)
	}
	if fetch.callCount() != calls {
		t.Error("LoadMore fetched past the end")
	}
}

func TestLoadMore_SingleFlight(t *testing.T) {
	release := make(chan struct{})
	fetch := &fetcherMock{
		fn: func(_ context.Context, req query.Request) ([]catalog.Product, error) {
			if req["page"] == "2" {
				<-release
			}
			return products("p1"), nil
		},
	}
	svc := New(fetch, testWindow)
	defer svc.Close()
	updates := newUpdates(svc)

	svc.Schedule(query.Request{})
	waitUpdate(t, updates)

	if err := svc.LoadMore(); err != nil {
		t.Fatalf("load more: %v", err)
	}
	if err := svc.LoadMore(); !errors.Is(err, domain.ErrLoadInFlight) {
		t.Fatalf("expected ErrLoadInFlight, got %v", err)
	}
	close(release)
	waitUpdate(t, updates)
}

func TestLoadMore_ReopensAfterSupersededTailLoad(t *testing.T) {
	releaseTail := make(chan struct{})
	fetch := &fetcherMock{
		fn: func(_ context.Context, req query.Request) ([]catalog.Product, error) {
			if req["q"] == "old" && req["page"] == "2" {
				<-releaseTail
				return products("stale-tail"), nil
			}
			return products("p1"), nil
		},
	}
	svc := New(fetch, testWindow)
	defer svc.Close()
	updates := newUpdates(svc)

	svc.Schedule(query.Request{"q": "old"})
	waitUpdate(t, updates)

	// Tail load for the old query is in flight when a filter change
	// issues a newer full fetch.
	if err := svc.LoadMore(); err != nil {
		t.Fatalf("load more: %v", err)
	}
	svc.Schedule(query.Request{"q": "new"})
	waitUpdate(t, updates) // new full fetch applied

	close(releaseTail) // old tail resolves after, gets discarded
	time.Sleep(3 * testWindow)

	// The discarded tail must not leave the load slot occupied.
	if err := svc.LoadMore(); err != nil {
		t.Fatalf("load more after superseded tail: %v", err)
	}
	waitUpdate(t, updates)
	if req := fetch.lastCall(t); req["q"] != "new" || req["page"] != "2" {
		t.Errorf("page request = %v", req)
	}
	for _, p := range svc.Results() {
		if p.ID == "stale-tail" {
			t.Fatalf("discarded tail leaked into results: %v", svc.Results())
		}
	}
}

func TestLoadMore_FailureKeepsShownItems(t *testing.T) {
	fetch := &fetcherMock{
		fn: func(_ context.Context, req query.Request) ([]catalog.Product, error) {
			if req["page"] == "2" {
				return nil, errors.New("backend down")
			}
			return products("p1", "p2"), nil
		},
	}
	svc := New(fetch, testWindow)
	defer svc.Close()
	updates := newUpdates(svc)

	svc.Schedule(query.Request{})
	waitUpdate(t, updates)

	if err := svc.LoadMore(); err != nil {
		t.Fatalf("load more: %v", err)
	}
	waitUpdate(t, updates)

	if got := svc.Results(); len(got) != 2 {
		t.Errorf("shown items dropped on tail failure: %v", got)
	}
	if svc.HasMore() {
		t.Error("paging should stop after a tail failure")
	}
}

func TestClose_SuppressesPendingFetch(t *testing.T) {
	fetch := &fetcherMock{}
	svc := New(fetch, testWindow)

	svc.Schedule(query.Request{"q": "x"})
	svc.Close()
	time.Sleep(3 * testWindow)

	if n := fetch.callCount(); n != 0 {
		t.Fatalf("closed model still fetched %d times", n)
	}
	if err := svc.LoadMore(); !errors.Is(err, domain.ErrModelClosed) {
		t.Fatalf("expected ErrModelClosed, got %v", err)
	}
}

func TestClose_Idempotent(t *testing.T) {
	svc := New(&fetcherMock{}, testWindow)
	svc.Close()
	svc.Close()
}

func TestSchedule_AfterCloseIsNoop(t *testing.T) {
	fetch := &fetcherMock{}
	svc := New(fetch, testWindow)
	svc.Close()
	svc.Schedule(query.Request{"q": "x"})
	time.Sleep(3 * testWindow)
	if fetch.callCount() != 0 {
		t.Fatal("closed model scheduled a fetch")
	}
}
