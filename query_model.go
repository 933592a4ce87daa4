package portage

import (
	"fmt"
	"sync"
	"time"

	"github.com/portage-market/portage-go/internal/domain"
	"github.com/portage-market/portage-go/internal/domain/search/filter"
	"github.com/portage-market/portage-go/internal/domain/search/query"
	"github.com/portage-market/portage-go/internal/urlstate"
	usecasesearch "github.com/portage-market/portage-go/internal/usecase/search"
)

// QueryModel is the filter and result state of one search view. Filter
// edits are staged: they do not fetch or touch the URL until Apply
// commits them as a unit. Applied state drives the chips, the shareable
// URL, and the fetch schedule.
type QueryModel struct {
	mu      sync.Mutex
	svc     *usecasesearch.Service
	history History

	liveSearch bool
	now        func() time.Time

	staged  filter.State
	applied filter.State
	errs    map[string]string
	closed  bool
}

// NewQuery creates a query model for one search view, restores its filter
// state from the current URL, and schedules the initial fetch.
func (c *Client) NewQuery() (*QueryModel, error) {
	h := c.history
	if h == nil {
		mem, err := urlstate.NewMemory(c.pageURL)
		if err != nil {
			return nil, fmt.Errorf("portage: page URL: %w", err)
		}
		h = mem
	}

	restored := filter.FromRequest(query.FromValues(h.Current().Query()))

	m := &QueryModel{
		svc:        usecasesearch.New(c.api, c.debounce),
		history:    h,
		liveSearch: c.liveSearch,
		now:        time.Now,
		staged:     restored,
		applied:    restored,
	}
	m.svc.Schedule(filter.Clean(restored))
	return m, nil
}

// State returns the staged filter state, including edits not yet applied.
// The copy is independent: mutating its collections does not touch the
// model.
func (m *QueryModel) State() FilterState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.staged.Clone()
}

// AppliedState returns an independent copy of the last committed filter
// state.
func (m *QueryModel) AppliedState() FilterState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.applied.Clone()
}

// Set stages a new value for one filter field. With live search enabled,
// setting the text query also schedules a fetch of the applied filters
// plus the new query, without waiting for Apply.
func (m *QueryModel) Set(f Field, value any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return domain.ErrModelClosed
	}

	next, err := m.staged.Set(f, value)
	if err != nil {
		return err
	}
	m.staged = next

	if m.liveSearch && f == filter.FieldQuery {
		req := filter.Clean(m.applied)
		if m.staged.Query == "" {
			delete(req, string(filter.FieldQuery))
		} else {
			req[string(filter.FieldQuery)] = m.staged.Query
		}
		m.svc.Schedule(req)
	}
	return nil
}

// Toggle stages adding or removing one member of a collection field.
func (m *QueryModel) Toggle(f Field, member string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return domain.ErrModelClosed
	}
	next, err := m.staged.Toggle(f, member)
	if err != nil {
		return err
	}
	m.staged = next
	return nil
}

// Apply validates the staged state and, when valid, commits it as a unit:
// the cleaned query lands in the URL and a fetch is scheduled. When
// invalid, nothing commits: the applied state, the URL, and the result
// list all stay as they were, and Errors reports the violations.
func (m *QueryModel) Apply() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return domain.ErrModelClosed
	}

	if errs := filter.Validate(m.staged); len(errs) > 0 {
		m.errs = errs
		return domain.ErrValidation
	}
	m.errs = nil
	m.applied = m.staged
	m.commit()
	return nil
}

// Reset clears every filter to its default and commits immediately.
func (m *QueryModel) Reset() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return domain.ErrModelClosed
	}
	m.staged = filter.New()
	m.applied = filter.New()
	m.errs = nil
	m.commit()
	return nil
}

// commit syncs the URL and schedules a fetch for the applied state.
// Callers hold m.mu.
func (m *QueryModel) commit() {
	req := filter.Clean(m.applied)
	urlstate.Sync(m.history, req, filter.Names())
	m.svc.Schedule(req)
}

// Chips derives the active-filter chips from the applied state.
func (m *QueryModel) Chips() []Chip {
	m.mu.Lock()
	defer m.mu.Unlock()
	return filter.Chips(m.applied)
}

// RemoveChip clears the field (or field group) behind a chip and commits
// immediately: unlike panel edits, chip removal does not wait for Apply.
// The grouped ids ChipPrice and ChipDates clear both ends of their range.
// Returns false for an unknown identifier.
func (m *QueryModel) RemoveChip(id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return false, domain.ErrModelClosed
	}

	next, ok := filter.Remove(m.applied, id)
	if !ok {
		return false, nil
	}
	m.applied = next
	m.staged, _ = filter.Remove(m.staged, id)
	// Clearing a range also clears its validation error.
	delete(m.errs, id)
	m.commit()
	return true, nil
}

// Errors returns the validation errors from the last Apply, keyed by
// field group ("price", "dates"). Empty when the last Apply committed.
func (m *QueryModel) Errors() map[string]string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]string, len(m.errs))
	for k, v := range m.errs {
		out[k] = v
	}
	return out
}

// QuickRanges returns the preset travel-date windows in display order.
func (m *QueryModel) QuickRanges() []QuickRange {
	return filter.QuickRanges()
}

// QuickRangeChecked reports whether a preset reads as selected against
// the staged state. A preset is checked iff the staged end date equals
// its computed target, so a manually entered matching date also reads
// as checked.
func (m *QueryModel) QuickRangeChecked(r QuickRange) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return r.Checked(m.staged, m.now())
}

// SetQuickRange stages a preset date window: checking sets both date
// ends, unchecking clears both. Like other panel edits it waits for
// Apply.
func (m *QueryModel) SetQuickRange(r QuickRange, checked bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return domain.ErrModelClosed
	}
	m.staged = r.Apply(m.staged, checked, m.now())
	return nil
}

// Results returns a copy of the current result list.
func (m *QueryModel) Results() []Product { return m.svc.Results() }

// HasMore reports whether another result page may exist.
func (m *QueryModel) HasMore() bool { return m.svc.HasMore() }

// Loading reports whether a full fetch is pending or in flight.
func (m *QueryModel) Loading() bool { return m.svc.Loading() }

// LoadMore requests the next result page for the last applied query.
func (m *QueryModel) LoadMore() error { return m.svc.LoadMore() }

// OnUpdate registers a callback invoked after each applied response.
func (m *QueryModel) OnUpdate(fn func()) { m.svc.OnUpdate(fn) }

// URL returns the current shareable location, query string included.
func (m *QueryModel) URL() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.history.Current().String()
}

// Close tears the model down. Pending and in-flight fetches are
// suppressed and every later mutation returns ErrModelClosed.
func (m *QueryModel) Close() {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return
	}
	m.closed = true
	m.mu.Unlock()
	m.svc.Close()
}
