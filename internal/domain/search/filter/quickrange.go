package filter

import "time"

// QuickRange is a preset travel-date window ("Next 7 days" and friends).
// Quick ranges are views over the date fields, not separate state: a range
// reads as checked iff the current end date equals its computed target,
// so a manually entered end date that lands on a preset also reads as
// checked. That coupling matches the product behavior and is kept as is.
type QuickRange struct {
	Key   string
	Label string
	Days  int
}

// QuickRanges returns the preset date windows in display order.
func QuickRanges() []QuickRange {
	return []QuickRange{
		{Key: "next_7", Label: "Next 7 days", Days: 7},
		{Key: "next_30", Label: "Next 30 days", Days: 30},
		{Key: "next_90", Label: "Next 3 months", Days: 90},
	}
}

// Target returns the range's end date, now+Days, in wire format.
func (r QuickRange) Target(now time.Time) string {
	return now.AddDate(0, 0, r.Days).Format(DateLayout)
}

// Checked reports whether the range reads as selected for the given state.
func (r QuickRange) Checked(s State, now time.Time) bool {
	return s.EndDate == r.Target(now)
}

// Apply returns the state with the range selected or cleared: checking
// sets both startDate (today) and endDate (target), unchecking clears
// both ends.
func (r QuickRange) Apply(s State, checked bool, now time.Time) State {
	if checked {
		s.StartDate = now.Format(DateLayout)
		s.EndDate = r.Target(now)
	} else {
		s.StartDate, s.EndDate = "", ""
	}
	return s
}
