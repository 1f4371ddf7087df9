package booking

import (
	"time"

	"lumora/config"
	"lumora/models"
)

// Grid is the fixed business-hours slot grid: start times from OpenMinute
// through CloseMinute inclusive, StepMinutes apart, in Location. A booking at
// start s occupies [s, s+MeetingMinutes), which can be longer than the step.
type Grid struct {
	OpenMinute     int
	CloseMinute    int
	StepMinutes    int
	MeetingMinutes int
	Location       *time.Location
}

// NewGridFromConfig builds the grid from the loaded app configuration.
func NewGridFromConfig() Grid {
	return Grid{
		OpenMinute:     config.AppConfig.OpenMinute,
		CloseMinute:    config.AppConfig.CloseMinute,
		StepMinutes:    config.AppConfig.SlotStepMinutes,
		MeetingMinutes: config.AppConfig.MeetingMinutes,
		Location:       config.BusinessLocation(),
	}
}

// MeetingLength returns the minutes a booking occupies from its start.
func (g Grid) MeetingLength() int {
	if g.MeetingMinutes > 0 {
		return g.MeetingMinutes
	}
	return 60
}

// GenerateDaySlots produces the bookable slots for one civil date, in
// ascending order. For the current date, slots whose start is at or before
// now are excluded; a date wholly in the past yields nothing. Pure: no I/O.
func (g Grid) GenerateDaySlots(date string, now time.Time) []models.TimeSlot {
	if _, err := time.ParseInLocation(models.DateLayout, date, g.Location); err != nil {
		return nil
	}

	localNow := now.In(g.Location)
	today := localNow.Format(models.DateLayout)
	if date < today {
		return nil
	}

	nowMinute := localNow.Hour()*60 + localNow.Minute()

	var slots []models.TimeSlot
	for start := g.OpenMinute; start <= g.CloseMinute; start += g.StepMinutes {
		if date == today && start <= nowMinute {
			continue
		}
		slots = append(slots, models.TimeSlot{Date: date, Start: start})
	}
	return slots
}

// Contains reports whether the slot lies on the grid and is still bookable at
// now.
func (g Grid) Contains(slot models.TimeSlot, now time.Time) bool {
	for _, s := range g.GenerateDaySlots(slot.Date, now) {
		if s == slot {
			return true
		}
	}
	return false
}
