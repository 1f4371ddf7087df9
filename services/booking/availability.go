package booking

import (
	"context"
	"fmt"
	"sort"
	"time"

	"lumora/clients/calendar"
	"lumora/models"

	"go.uber.org/zap"
)

// AvailabilityResult carries the free slots for one day plus the booked-state
// of the whole surrounding month for calendar-cell decoration. Degraded is
// set when the calendar store could not be reached and the slots are the
// unfiltered grid; the UI must show a visible disclaimer in that case.
type AvailabilityResult struct {
	Date        string            `json:"date"`
	Slots       []models.TimeSlot `json:"slots"`
	BookedByDay map[string][]int  `json:"bookedByDay"`
	Degraded    bool              `json:"degraded"`
	Warning     string            `json:"warning,omitempty"`
}

// AvailabilityService computes free slots for a day.
type AvailabilityService interface {
	AvailableSlots(ctx context.Context, date string) (AvailabilityResult, error)
}

// DefaultAvailabilityService subtracts the calendar store's busy spans from
// the grid. A grid start is free only if the whole meeting interval it would
// occupy avoids every busy span, matching the store's write-time acceptance.
// The store's answer is treated as possibly stale; nothing here is cached
// between calls.
type DefaultAvailabilityService struct {
	Calendar calendar.Client
	Grid     Grid
	Now      func() time.Time
	Logger   *zap.Logger
}

func (s *DefaultAvailabilityService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// AvailableSlots returns the free slots for date. The query window spans the
// whole month containing date so callers can decorate every calendar cell.
// On store failure the result degrades to the unfiltered grid with
// Degraded=true; booked-slot accuracy is then not guaranteed.
func (s *DefaultAvailabilityService) AvailableSlots(ctx context.Context, date string) (AvailabilityResult, error) {
	day, err := time.ParseInLocation(models.DateLayout, date, s.Grid.Location)
	if err != nil {
		return AvailabilityResult{}, NewValidationError("date", fmt.Sprintf("invalid date %q", date))
	}

	now := s.now()
	generated := s.Grid.GenerateDaySlots(date, now)

	monthStart := time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, s.Grid.Location)
	monthEnd := monthStart.AddDate(0, 1, 0)

	result := AvailabilityResult{Date: date, BookedByDay: map[string][]int{}}

	busy, err := s.fetchBusy(ctx, monthStart, monthEnd)
	if err != nil {
		s.Logger.Warn("availability degraded: calendar store unreachable, returning unfiltered grid",
			zap.String("date", date), zap.Error(err))
		result.Slots = generated
		result.Degraded = true
		result.Warning = "availability could not be verified and may be inaccurate"
		return result, nil
	}

	// A grid start is blocked when the meeting interval it would occupy
	// overlaps any busy span on that day. Busy spans need not lie on the
	// grid; manual events block every start they would collide with.
	span := s.Grid.MeetingLength()
	blocked := make(map[models.TimeSlot]bool)
	for _, iv := range busy {
		for start := s.Grid.OpenMinute; start <= s.Grid.CloseMinute; start += s.Grid.StepMinutes {
			if !iv.Overlaps(start, start+span) {
				continue
			}
			slot := models.TimeSlot{Date: iv.Date, Start: start}
			if !blocked[slot] {
				blocked[slot] = true
				result.BookedByDay[iv.Date] = append(result.BookedByDay[iv.Date], start)
			}
		}
	}
	for _, starts := range result.BookedByDay {
		sort.Ints(starts)
	}

	for _, slot := range generated {
		if !blocked[slot] {
			result.Slots = append(result.Slots, slot)
		}
	}
	return result, nil
}

func (s *DefaultAvailabilityService) fetchBusy(ctx context.Context, from, to time.Time) ([]models.BusyInterval, error) {
	if s.Calendar == nil {
		return nil, fmt.Errorf("calendar client not configured")
	}
	return s.Calendar.BusyIntervals(ctx, from, to)
}
