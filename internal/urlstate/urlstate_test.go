package urlstate

import (
	"net/url"
	"testing"

	"github.com/portage-market/portage-go/internal/domain/search/query"
)

var managed = []string{"q", "category", "minPrice", "maxPrice"}

func TestMerge_PreservesUnmanagedParams(t *testing.T) {
	existing := url.Values{
		"utm_source": {"newsletter"},
		"q":          {"old"},
	}
	req := query.Request{"q": "new", "category": "fashion"}

	merged := Merge(existing, req, managed)
	if got := merged.Get("utm_source"); got != "newsletter" {
		t.Errorf("utm_source = %q", got)
	}
	if got := merged.Get("q"); got != "new" {
		t.Errorf("q = %q", got)
	}
	if got := merged.Get("category"); got != "fashion" {
		t.Errorf("category = %q", got)
	}
}

func TestMerge_RemovesClearedManagedParams(t *testing.T) {
	existing := url.Values{"minPrice": {"10"}, "maxPrice": {"50"}}
	merged := Merge(existing, query.Request{}, managed)
	if merged.Has("minPrice") || merged.Has("maxPrice") {
		t.Fatalf("cleared params kept: %v", merged)
	}
}

func TestMerge_DoesNotMutateInput(t *testing.T) {
	existing := url.Values{"q": {"old"}}
	_ = Merge(existing, query.Request{"q": "new"}, managed)
	if existing.Get("q") != "old" {
		t.Error("input values mutated")
	}
}

func TestSync_ReplacesInPlace(t *testing.T) {
	h, err := NewMemory("/product-search-and-browse?utm_source=ad&q=old")
	if err != nil {
		t.Fatalf("new memory: %v", err)
	}

	Sync(h, query.Request{"q": "camera"}, managed)

	u := h.Current()
	if u.Path != "/product-search-and-browse" {
		t.Errorf("path = %q", u.Path)
	}
	vals := u.Query()
	if vals.Get("q") != "camera" || vals.Get("utm_source") != "ad" {
		t.Errorf("query = %v", vals)
	}
}

func TestMemory_CurrentReturnsCopy(t *testing.T) {
	h, err := NewMemory("/page?a=1")
	if err != nil {
		t.Fatalf("new memory: %v", err)
	}
	u := h.Current()
	u.RawQuery = "a=2"
	if h.Current().RawQuery != "a=1" {
		t.Error("Current leaks internal URL")
	}
}
