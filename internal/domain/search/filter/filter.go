// Package filter holds the canonical search filter state and the pure
// normalization rules applied to it before a query leaves the client.
package filter

import (
	"fmt"
	"slices"
	"strconv"
	"time"

	"github.com/portage-market/portage-go/internal/domain"
	"github.com/portage-market/portage-go/internal/domain/search/query"
)

// Field names a filter field. Values match the wire parameter names.
type Field string

// Filter fields.
const (
	FieldQuery             Field = "q"
	FieldDepartureAirport  Field = "departureAirport"
	FieldArrivalAirport    Field = "arrivalAirport"
	FieldRegion            Field = "region"
	FieldCountry           Field = "country"
	FieldCategory          Field = "category"
	FieldSubcategories     Field = "subcategories"
	FieldMinPrice          Field = "minPrice"
	FieldMaxPrice          Field = "maxPrice"
	FieldCurrency          Field = "currency"
	FieldStartDate         Field = "startDate"
	FieldEndDate           Field = "endDate"
	FieldMinRating         Field = "minRating"
	FieldTravelerTypes     Field = "travelerTypes"
	FieldPickupOptions     Field = "pickupOptions"
	FieldDeliveryTimeframe Field = "deliveryTimeframe"
	FieldSort              Field = "sort"
)

// Defaults that are suppressed from cleaned output so shareable links stay
// minimal and server-side defaults are not overridden by accident.
const (
	DefaultCurrency = "USD"
	DefaultSort     = "relevance"
)

// DateLayout is the wire format for startDate and endDate.
const DateLayout = "2006-01-02"

// Kind is the semantic type of a filter field.
type Kind int

// Field kinds.
const (
	KindText Kind = iota
	KindNumeric
	KindDate
	KindList
)

var fieldKinds = map[Field]Kind{
	FieldQuery:             KindText,
	FieldDepartureAirport:  KindText,
	FieldArrivalAirport:    KindText,
	FieldRegion:            KindText,
	FieldCountry:           KindText,
	FieldCategory:          KindText,
	FieldSubcategories:     KindList,
	FieldMinPrice:          KindNumeric,
	FieldMaxPrice:          KindNumeric,
	FieldCurrency:          KindText,
	FieldStartDate:         KindDate,
	FieldEndDate:           KindDate,
	FieldMinRating:         KindNumeric,
	FieldTravelerTypes:     KindList,
	FieldPickupOptions:     KindList,
	FieldDeliveryTimeframe: KindText,
	FieldSort:              KindText,
}

// KindOf returns the semantic kind of a field.
func KindOf(f Field) (Kind, bool) {
	k, ok := fieldKinds[f]
	return k, ok
}

// Names returns the wire names of all filter fields. Used when stripping
// managed parameters out of a URL query string.
func Names() []string {
	names := make([]string, 0, len(fieldKinds))
	for f := range fieldKinds {
		names = append(names, string(f))
	}
	slices.Sort(names)
	return names
}

// State is the canonical filter state. All scalar fields default to the
// empty string and collections to empty slices; absence is represented by
// emptiness, never by nil-vs-present distinctions on the wire.
type State struct {
	Query             string
	DepartureAirport  string
	ArrivalAirport    string
	Region            string
	Country           string
	Category          string
	Subcategories     []string
	MinPrice          string
	MaxPrice          string
	Currency          string
	StartDate         string
	EndDate           string
	MinRating         string
	TravelerTypes     []string
	PickupOptions     []string
	DeliveryTimeframe string
	Sort              string
}

// New returns an all-default State.
func New() State { return State{} }

// Clone returns a copy of s whose collection slices are independent of the
// receiver's, so a mutation on either side stays invisible to the other.
func (s State) Clone() State {
	s.Subcategories = slices.Clone(s.Subcategories)
	s.TravelerTypes = slices.Clone(s.TravelerTypes)
	s.PickupOptions = slices.Clone(s.PickupOptions)
	return s
}

// Set returns a copy of s with the named field replaced. The value type
// must match the field kind: string for text, numeric string for numeric,
// YYYY-MM-DD for dates, []string for collections. The receiver is never
// mutated.
func (s State) Set(f Field, value any) (State, error) {
	kind, ok := fieldKinds[f]
	if !ok {
		return s, fmt.Errorf("%w: %q", domain.ErrUnknownField, f)
	}

	switch kind {
	case KindList:
		members, ok := value.([]string)
		if !ok {
			return s, fmt.Errorf("%w: %q wants []string, got %T", domain.ErrFieldType, f, value)
		}
		s.setList(f, slices.Clone(members))
		return s, nil
	case KindNumeric:
		str, err := scalarValue(f, value)
		if err != nil {
			return s, err
		}
		if str != "" {
			if _, err := strconv.ParseFloat(str, 64); err != nil {
				return s, fmt.Errorf("%w: %q is not numeric: %q", domain.ErrFieldType, f, str)
			}
		}
		s.setScalar(f, str)
		return s, nil
	case KindDate:
		str, err := scalarValue(f, value)
		if err != nil {
			return s, err
		}
		if str != "" {
			if _, err := time.Parse(DateLayout, str); err != nil {
				return s, fmt.Errorf("%w: %q is not a YYYY-MM-DD date: %q", domain.ErrFieldType, f, str)
			}
		}
		s.setScalar(f, str)
		return s, nil
	default:
		str, err := scalarValue(f, value)
		if err != nil {
			return s, err
		}
		s.setScalar(f, str)
		return s, nil
	}
}

func scalarValue(f Field, value any) (string, error) {
	str, ok := value.(string)
	if !ok {
		return "", fmt.Errorf("%w: %q wants string, got %T", domain.ErrFieldType, f, value)
	}
	return str, nil
}

// Toggle returns a copy of s with member added to (or removed from) a
// collection field. The slice is always replaced, never mutated in place,
// so callers comparing by identity see every change.
func (s State) Toggle(f Field, member string) (State, error) {
	kind, ok := fieldKinds[f]
	if !ok {
		return s, fmt.Errorf("%w: %q", domain.ErrUnknownField, f)
	}
	if kind != KindList {
		return s, fmt.Errorf("%w: %q is not a collection field", domain.ErrFieldType, f)
	}

	current := s.list(f)
	next := make([]string, 0, len(current)+1)
	removed := false
	for _, m := range current {
		if m == member {
			removed = true
			continue
		}
		next = append(next, m)
	}
	if !removed {
		next = append(next, member)
	}
	s.setList(f, next)
	return s, nil
}

func (s *State) setScalar(f Field, v string) {
	switch f {
	case FieldQuery:
		s.Query = v
	case FieldDepartureAirport:
		s.DepartureAirport = v
	case FieldArrivalAirport:
		s.ArrivalAirport = v
	case FieldRegion:
		s.Region = v
	case FieldCountry:
		s.Country = v
	case FieldCategory:
		s.Category = v
	case FieldMinPrice:
		s.MinPrice = v
	case FieldMaxPrice:
		s.MaxPrice = v
	case FieldCurrency:
		s.Currency = v
	case FieldStartDate:
		s.StartDate = v
	case FieldEndDate:
		s.EndDate = v
	case FieldMinRating:
		s.MinRating = v
	case FieldDeliveryTimeframe:
		s.DeliveryTimeframe = v
	case FieldSort:
		s.Sort = v
	}
}

func (s *State) setList(f Field, v []string) {
	switch f {
	case FieldSubcategories:
		s.Subcategories = v
	case FieldTravelerTypes:
		s.TravelerTypes = v
	case FieldPickupOptions:
		s.PickupOptions = v
	}
}

func (s State) list(f Field) []string {
	switch f {
	case FieldSubcategories:
		return s.Subcategories
	case FieldTravelerTypes:
		return s.TravelerTypes
	case FieldPickupOptions:
		return s.PickupOptions
	}
	return nil
}

// scalarFields lists the scalar fields in wire order.
var scalarFields = []Field{
	FieldQuery, FieldDepartureAirport, FieldArrivalAirport, FieldRegion,
	FieldCountry, FieldCategory, FieldMinPrice, FieldMaxPrice, FieldCurrency,
	FieldStartDate, FieldEndDate, FieldMinRating, FieldDeliveryTimeframe,
	FieldSort,
}

func (s State) scalar(f Field) string {
	switch f {
	case FieldQuery:
		return s.Query
	case FieldDepartureAirport:
		return s.DepartureAirport
	case FieldArrivalAirport:
		return s.ArrivalAirport
	case FieldRegion:
		return s.Region
	case FieldCountry:
		return s.Country
	case FieldCategory:
		return s.Category
	case FieldMinPrice:
		return s.MinPrice
	case FieldMaxPrice:
		return s.MaxPrice
	case FieldCurrency:
		return s.Currency
	case FieldStartDate:
		return s.StartDate
	case FieldEndDate:
		return s.EndDate
	case FieldMinRating:
		return s.MinRating
	case FieldDeliveryTimeframe:
		return s.DeliveryTimeframe
	case FieldSort:
		return s.Sort
	}
	return ""
}

// Validate checks the cross-field invariants: minPrice <= maxPrice and
// startDate <= endDate when both ends are present. It returns a map of
// field group ("price", "dates") to a human-readable message; an empty map
// means the state is valid. Absence of either end is never a violation.
func Validate(s State) map[string]string {
	errs := map[string]string{}

	if s.MinPrice != "" && s.MaxPrice != "" {
		minP, errMin := strconv.ParseFloat(s.MinPrice, 64)
		maxP, errMax := strconv.ParseFloat(s.MaxPrice, 64)
		if errMin == nil && errMax == nil && minP > maxP {
			errs["price"] = "Min price must be <= Max price"
		}
	}

	if s.StartDate != "" && s.EndDate != "" {
		start, errStart := time.Parse(DateLayout, s.StartDate)
		end, errEnd := time.Parse(DateLayout, s.EndDate)
		if errStart == nil && errEnd == nil && start.After(end) {
			errs["dates"] = "Start date must be before end date"
		}
	}

	return errs
}

// Clean projects s onto the cleaned query request: empty strings and empty
// collections are dropped, collections are comma-joined, and the output
// defaults (currency "USD", sort "relevance") are suppressed.
func Clean(s State) query.Request {
	req := query.Request{}

	for _, f := range scalarFields {
		v := s.scalar(f)
		if v == "" {
			continue
		}
		if f == FieldCurrency && v == DefaultCurrency {
			continue
		}
		if f == FieldSort && v == DefaultSort {
			continue
		}
		req[string(f)] = v
	}

	for _, f := range []Field{FieldSubcategories, FieldTravelerTypes, FieldPickupOptions} {
		if members := s.list(f); len(members) > 0 {
			req[string(f)] = query.JoinList(members)
		}
	}

	return req
}

// FromRequest rebuilds a State from a cleaned request, e.g. when restoring
// filters from a shared URL. Unknown keys are ignored; malformed values
// are dropped rather than surfaced, since a shared link is advisory input.
func FromRequest(req query.Request) State {
	s := New()
	for k, v := range req {
		f := Field(k)
		kind, ok := fieldKinds[f]
		if !ok {
			continue
		}
		var err error
		if kind == KindList {
			s, err = s.Set(f, query.SplitList(v))
		} else {
			s, err = s.Set(f, v)
		}
		if err != nil {
			continue
		}
	}
	// Cross-field violations get the same treatment as malformed values:
	// the offending group is dropped, the rest of the link survives.
	for group := range Validate(s) {
		switch group {
		case ChipPrice:
			s.MinPrice, s.MaxPrice = "", ""
		case ChipDates:
			s.StartDate, s.EndDate = "", ""
		}
	}
	return s
}
