// Package calendar talks to the external calendar store. The store is the
// system of record for booked time and the sole authority on slot conflicts.
package calendar

import (
	"context"
	"errors"
	"time"

	"lumora/models"
)

// ErrSlotTaken is returned by CreateEvent when the store reports the
// requested interval is no longer free.
var ErrSlotTaken = errors.New("calendar: slot already booked")

// EventRequest describes a calendar reservation to create.
type EventRequest struct {
	Summary       string
	Description   string
	Start         time.Time
	End           time.Time
	AttendeeEmail string
}

// Client defines the calendar store operations the booking coordinator needs.
type Client interface {
	// BusyIntervals reports the reserved spans intersecting [from, to).
	// Occupancy is an interval, not a grid position: a slot is bookable
	// only if its whole meeting interval avoids every busy span, which is
	// exactly what CreateEvent enforces at write time.
	BusyIntervals(ctx context.Context, from, to time.Time) ([]models.BusyInterval, error)
	// CreateEvent reserves the interval and returns the event ID, or
	// ErrSlotTaken when the interval is already occupied.
	CreateEvent(ctx context.Context, req EventRequest) (string, error)
	// DeleteEvent removes a previously created event (compensation path).
	DeleteEvent(ctx context.Context, eventID string) error
}
