package models

import (
	"fmt"
	"time"
)

// DateLayout is the wire format for civil dates.
const DateLayout = "2006-01-02"

// TimeSlot is a bookable position on the business-hours grid. Slots are value
// objects: two slots are the same slot iff date and start match.
type TimeSlot struct {
	Date  string `json:"date"`  // "2025-03-10"
	Start int    `json:"start"` // minutes from midnight (e.g., 540 for 9:00 AM)
}

// StartClock renders the start time as "15:04".
func (s TimeSlot) StartClock() string {
	return fmt.Sprintf("%02d:%02d", s.Start/60, s.Start%60)
}

// StartTime resolves the slot's start as an absolute instant in loc.
func (s TimeSlot) StartTime(loc *time.Location) (time.Time, error) {
	day, err := time.ParseInLocation(DateLayout, s.Date, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid slot date %q: %w", s.Date, err)
	}
	return day.Add(time.Duration(s.Start) * time.Minute), nil
}

// BusyInterval is a span of reserved time the calendar store reports,
// half-open [Start, End) in minutes from midnight on Date. It is a read-only
// projection; the calendar store owns its lifecycle.
type BusyInterval struct {
	Date  string `json:"date"`
	Start int    `json:"start"`
	End   int    `json:"end"`
}

// Overlaps reports whether the half-open interval [start, end) intersects
// this busy span.
func (b BusyInterval) Overlaps(start, end int) bool {
	return start < b.End && b.Start < end
}
