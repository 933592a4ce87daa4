package filter

import (
	"errors"
	"reflect"
	"testing"

	"github.com/portage-market/portage-go/internal/domain"
	"github.com/portage-market/portage-go/internal/domain/search/query"
)

func TestSet_UnknownField(t *testing.T) {
	_, err := New().Set("bogus", "x")
	if !errors.Is(err, domain.ErrUnknownField) {
		t.Fatalf("expected ErrUnknownField, got %v", err)
	}
}

func TestSet_TypeChecks(t *testing.T) {
	tests := []struct {
		name  string
		field Field
		value any
		ok    bool
	}{
		{"text string", FieldQuery, "iphone", true},
		{"text wrong type", FieldQuery, 42, false},
		{"numeric valid", FieldMinPrice, "10.5", true},
		{"numeric empty clears", FieldMinPrice, "", true},
		{"numeric garbage", FieldMinPrice, "cheap", false},
		{"date valid", FieldStartDate, "2026-03-01", true},
		{"date garbage", FieldStartDate, "March 1st", false},
		{"list valid", FieldPickupOptions, []string{"airport"}, true},
		{"list wrong type", FieldPickupOptions, "airport", false},
		{"scalar on list field", FieldSubcategories, "phones", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := New().Set(tc.field, tc.value)
			if tc.ok && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !tc.ok && !errors.Is(err, domain.ErrFieldType) {
				t.Fatalf("expected ErrFieldType, got %v", err)
			}
		})
	}
}

func TestSet_DoesNotMutateReceiver(t *testing.T) {
	s := New()
	s2, err := s.Set(FieldCategory, "electronics")
	if err != nil {
		t.Fatalf("set: %v", err)
	}
	if s.Category != "" {
		t.Errorf("receiver mutated: %q", s.Category)
	}
	if s2.Category != "electronics" {
		t.Errorf("got %q", s2.Category)
	}
}

func TestSet_ListIsCloned(t *testing.T) {
	members := []string{"airport"}
	s, err := New().Set(FieldPickupOptions, members)
	if err != nil {
		t.Fatalf("set: %v", err)
	}
	members[0] = "mutated"
	if s.PickupOptions[0] != "airport" {
		t.Error("stored slice aliases caller slice")
	}
}

func TestToggle_AddThenRemove(t *testing.T) {
	s, err := New().Toggle(FieldTravelerTypes, "verified")
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if !reflect.DeepEqual(s.TravelerTypes, []string{"verified"}) {
		t.Fatalf("after add: %v", s.TravelerTypes)
	}

	s, err = s.Toggle(FieldTravelerTypes, "verified")
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if len(s.TravelerTypes) != 0 {
		t.Fatalf("after remove: %v", s.TravelerTypes)
	}
}

func TestToggle_ReplacesSlice(t *testing.T) {
	s, _ := New().Toggle(FieldPickupOptions, "airport")
	before := s.PickupOptions
	s2, _ := s.Toggle(FieldPickupOptions, "hotel")
	if len(before) != 1 {
		t.Fatalf("original slice changed: %v", before)
	}
	if !reflect.DeepEqual(s2.PickupOptions, []string{"airport", "hotel"}) {
		t.Fatalf("got %v", s2.PickupOptions)
	}
}

func TestToggle_NonListField(t *testing.T) {
	_, err := New().Toggle(FieldQuery, "x")
	if !errors.Is(err, domain.ErrFieldType) {
		t.Fatalf("expected ErrFieldType, got %v", err)
	}
}

func TestValidate_PriceRange(t *testing.T) {
	tests := []struct {
		name     string
		min, max string
		wantErr  bool
	}{
		{"both empty", "", "", false},
		{"only min", "10", "", false},
		{"only max", "", "10", false},
		{"ordered", "10", "20", false},
		{"equal", "10", "10", false},
		{"inverted", "20", "10", true},
		{"inverted decimal", "10.5", "10.25", true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := State{MinPrice: tc.min, MaxPrice: tc.max}
			errs := Validate(s)
			_, got := errs["price"]
			if got != tc.wantErr {
				t.Fatalf("errs = %v, wantErr = %v", errs, tc.wantErr)
			}
			if tc.wantErr && errs["price"] != "Min price must be <= Max price" {
				t.Errorf("message = %q", errs["price"])
			}
		})
	}
}

func TestValidate_DateRange(t *testing.T) {
	tests := []struct {
		name       string
		start, end string
		wantErr    bool
	}{
		{"both empty", "", "", false},
		{"only start", "2026-03-01", "", false},
		{"only end", "", "2026-03-01", false},
		{"ordered", "2026-03-01", "2026-03-10", false},
		{"same day", "2026-03-01", "2026-03-01", false},
		{"inverted", "2026-03-10", "2026-03-01", true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := State{StartDate: tc.start, EndDate: tc.end}
			errs := Validate(s)
			_, got := errs["dates"]
			if got != tc.wantErr {
				t.Fatalf("errs = %v, wantErr = %v", errs, tc.wantErr)
			}
			if tc.wantErr && errs["dates"] != "Start date must be before end date" {
				t.Errorf("message = %q", errs["dates"])
			}
		})
	}
}

func TestValidate_BothGroups(t *testing.T) {
	s := State{
		MinPrice: "50", MaxPrice: "10",
		StartDate: "2026-04-01", EndDate: "2026-03-01",
	}
	errs := Validate(s)
	if len(errs) != 2 {
		t.Fatalf("expected both groups flagged, got %v", errs)
	}
}

func TestClean_DropsEmptyAndDefaults(t *testing.T) {
	s := State{
		Query:    "camera",
		Currency: DefaultCurrency,
		Sort:     DefaultSort,
	}
	req := Clean(s)
	want := query.Request{"q": "camera"}
	if !reflect.DeepEqual(req, want) {
		t.Fatalf("got %v, want %v", req, want)
	}
}

func TestClean_KeepsNonDefaults(t *testing.T) {
	s := State{Currency: "EUR", Sort: "price_asc"}
	req := Clean(s)
	if req["currency"] != "EUR" || req["sort"] != "price_asc" {
		t.Fatalf("got %v", req)
	}
}

func TestClean_JoinsCollections(t *testing.T) {
	s := State{
		PickupOptions: []string{"airport", "hotel"},
		Subcategories: []string{},
	}
	req := Clean(s)
	if req["pickupOptions"] != "airport,hotel" {
		t.Errorf("pickupOptions = %q", req["pickupOptions"])
	}
	if _, ok := req["subcategories"]; ok {
		t.Error("empty collection not dropped")
	}
}

func TestFromRequest_RoundTrip(t *testing.T) {
	s := State{
		Query:            "lens",
		DepartureAirport: "jfk",
		MinPrice:         "10",
		MaxPrice:         "200",
		StartDate:        "2026-03-01",
		EndDate:          "2026-03-15",
		Currency:         "EUR",
		PickupOptions:    []string{"airport", "city"},
	}
	got := FromRequest(Clean(s))
	if !reflect.DeepEqual(Clean(got), Clean(s)) {
		t.Fatalf("round trip changed cleaned form:\n got %v\nwant %v", Clean(got), Clean(s))
	}
}

func TestFromRequest_IgnoresUnknownAndMalformed(t *testing.T) {
	req := query.Request{
		"q":        "ok",
		"utm":      "campaign",
		"minPrice": "not-a-number",
	}
	s := FromRequest(req)
	if s.Query != "ok" {
		t.Errorf("Query = %q", s.Query)
	}
	if s.MinPrice != "" {
		t.Errorf("malformed minPrice kept: %q", s.MinPrice)
	}
}

func TestFromRequest_DropsInvalidGroups(t *testing.T) {
	req := query.Request{
		"q":         "camera",
		"minPrice":  "50",
		"maxPrice":  "10",
		"startDate": "2026-04-10",
		"endDate":   "2026-04-01",
		"category":  "electronics",
	}
	s := FromRequest(req)
	if s.MinPrice != "" || s.MaxPrice != "" {
		t.Errorf("inverted price range kept: %q..%q", s.MinPrice, s.MaxPrice)
	}
	if s.StartDate != "" || s.EndDate != "" {
		t.Errorf("inverted date range kept: %q..%q", s.StartDate, s.EndDate)
	}
	if s.Query != "camera" || s.Category != "electronics" {
		t.Errorf("valid fields did not survive: %+v", s)
	}
}

func TestFromRequest_KeepsValidRanges(t *testing.T) {
	req := query.Request{"minPrice": "10", "maxPrice": "50"}
	s := FromRequest(req)
	if s.MinPrice != "10" || s.MaxPrice != "50" {
		t.Errorf("valid price range dropped: %q..%q", s.MinPrice, s.MaxPrice)
	}
}

func TestClone_IndependentCollections(t *testing.T) {
	s := State{PickupOptions: []string{"airport", "hotel"}}
	c := s.Clone()
	c.PickupOptions[0] = "mutated"
	if s.PickupOptions[0] != "airport" {
		t.Errorf("clone shares PickupOptions with receiver: %v", s.PickupOptions)
	}
}

func TestNames_CoversAllFields(t *testing.T) {
	names := Names()
	if len(names) != len(fieldKinds) {
		t.Fatalf("got %d names, want %d", len(names), len(fieldKinds))
	}
	seen := map[string]bool{}
	for _, n := range names {
		seen[n] = true
	}
	for f := range fieldKinds {
		if !seen[string(f)] {
			t.Errorf("missing %q", f)
		}
	}
}
