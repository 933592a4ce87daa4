// Package urlstate keeps the current URL's query string in sync with the
// cleaned filter state, so filter selections are shareable and
// bookmarkable. Replacement is shallow: no navigation, no new history
// entry, and query parameters the filter model does not own are preserved.
package urlstate

import (
	"net/url"
	"sync"

	"github.com/portage-market/portage-go/internal/domain/search/query"
)

// History is the browser-history collaborator: it exposes the current
// location and replaces it in place.
type History interface {
	Current() *url.URL
	Replace(u *url.URL)
}

// Merge folds the cleaned request into an existing query string. Managed
// parameters absent from req are removed (the filter cleaned out), managed
// parameters present are set, and everything else is left untouched.
func Merge(existing url.Values, req query.Request, managed []string) url.Values {
	merged := url.Values{}
	for k, vs := range existing {
		merged[k] = append([]string(nil), vs...)
	}
	for _, name := range managed {
		merged.Del(name)
	}
	for k, v := range req {
		merged.Set(k, v)
	}
	return merged
}

// Sync replaces the current URL's query string with the merge of req over
// it.
func Sync(h History, req query.Request, managed []string) {
	u := *h.Current()
	u.RawQuery = Merge(u.Query(), req, managed).Encode()
	h.Replace(&u)
}

// Memory is an in-process History, standing in for the browser history in
// non-browser hosts. It just remembers the current URL.
type Memory struct {
	mu sync.Mutex
	u  *url.URL
}

// NewMemory creates a Memory history at the given location.
func NewMemory(raw string) (*Memory, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, err
	}
	return &Memory{u: u}, nil
}

// Current implements History.
func (m *Memory) Current() *url.URL {
	m.mu.Lock()
	defer m.mu.Unlock()
	u := *m.u
	return &u
}

// Replace implements History.
func (m *Memory) Replace(u *url.URL) {
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *u
	m.u = &copied
}
