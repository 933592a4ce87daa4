package filter

import (
	"fmt"
	"strings"
)

// Chip group identifiers that clear more than one field at once.
const (
	ChipPrice = "price"
	ChipDates = "dates"
)

// Chip is a displayed summary of one active filter (or filter group).
// Its ID is the identifier accepted by Remove.
type Chip struct {
	ID    string
	Label string
}

// Chips derives the display chips from the state. Min/max price collapse
// into a single "price" chip and the date pair into a single "dates" chip,
// mirroring how they are removed.
func Chips(s State) []Chip {
	var chips []Chip

	add := func(id, label string) {
		chips = append(chips, Chip{ID: id, Label: label})
	}

	if s.Region != "" {
		add(string(FieldRegion), "Region: "+s.Region)
	}
	if s.Country != "" {
		add(string(FieldCountry), "Country: "+s.Country)
	}
	if s.DepartureAirport != "" {
		add(string(FieldDepartureAirport), "From: "+s.DepartureAirport)
	}
	if s.ArrivalAirport != "" {
		add(string(FieldArrivalAirport), "To: "+s.ArrivalAirport)
	}
	if s.Category != "" {
		add(string(FieldCategory), "Category: "+s.Category)
	}
	if len(s.Subcategories) > 0 {
		add(string(FieldSubcategories), "Sub: "+strings.Join(s.Subcategories, ", "))
	}
	if s.MinPrice != "" || s.MaxPrice != "" {
		minP, maxP := s.MinPrice, s.MaxPrice
		if minP == "" {
			minP = "0"
		}
		if maxP == "" {
			maxP = "∞"
		}
		add(ChipPrice, fmt.Sprintf("$%s - $%s", minP, maxP))
	}
	if s.StartDate != "" || s.EndDate != "" {
		start := s.StartDate
		if start == "" {
			start = "Any"
		}
		add(ChipDates, start+" → "+s.EndDate)
	}
	if len(s.PickupOptions) > 0 {
		add(string(FieldPickupOptions), "Pickup: "+strings.Join(s.PickupOptions, ", "))
	}
	if len(s.TravelerTypes) > 0 {
		add(string(FieldTravelerTypes), "Traveler: "+strings.Join(s.TravelerTypes, ", "))
	}
	if s.DeliveryTimeframe != "" {
		add(string(FieldDeliveryTimeframe), "Delivery: "+s.DeliveryTimeframe)
	}
	if s.Sort != "" && s.Sort != DefaultSort {
		add(string(FieldSort), "Sort: "+s.Sort)
	}

	return chips
}

// Remove clears the field (or field group) behind a chip identifier and
// returns the new state. The grouped ids "price" and "dates" clear both
// ends of their range; every other id clears its single field or resets
// the collection to empty. ok is false for an unknown identifier.
func Remove(s State, id string) (State, bool) {
	switch id {
	case ChipPrice:
		s.MinPrice, s.MaxPrice = "", ""
		return s, true
	case ChipDates:
		s.StartDate, s.EndDate = "", ""
		return s, true
	}

	f := Field(id)
	kind, ok := fieldKinds[f]
	if !ok {
		return s, false
	}
	if kind == KindList {
		s.setList(f, []string{})
	} else {
		s.setScalar(f, "")
	}
	return s, true
}
