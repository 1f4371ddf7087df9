package calendar

import (
	"context"
	"errors"
	"fmt"
	"time"

	"lumora/models"

	"go.uber.org/zap"
	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

// GoogleClient implements Client against the Google Calendar API using a
// service-account credentials file.
type GoogleClient struct {
	svc        *gcal.Service
	calendarID string
	loc        *time.Location
	logger     *zap.Logger
}

// NewGoogleClient builds a calendar client. Missing credentials yield a typed
// error so the caller can degrade instead of crashing.
func NewGoogleClient(ctx context.Context, credsFile, calendarID string, loc *time.Location, logger *zap.Logger) (*GoogleClient, error) {
	if credsFile == "" || calendarID == "" {
		return nil, errors.New("calendar: Google credentials file and calendar ID are required")
	}
	svc, err := gcal.NewService(ctx,
		option.WithCredentialsFile(credsFile),
		option.WithScopes(gcal.CalendarScope),
	)
	if err != nil {
		return nil, fmt.Errorf("calendar: failed to build Google Calendar service: %w", err)
	}
	return &GoogleClient{svc: svc, calendarID: calendarID, loc: loc, logger: logger}, nil
}

// BusyIntervals lists events in the window and projects each onto a busy span
// in local minutes. The span semantics mirror CreateEvent's free/busy check,
// so a slot the read path reports as free is one the write path would accept.
func (c *GoogleClient) BusyIntervals(ctx context.Context, from, to time.Time) ([]models.BusyInterval, error) {
	events, err := c.svc.Events.List(c.calendarID).
		TimeMin(from.Format(time.RFC3339)).
		TimeMax(to.Format(time.RFC3339)).
		SingleEvents(true).
		OrderBy("startTime").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("calendar: failed to list events: %w", err)
	}

	var busy []models.BusyInterval
	for _, item := range events.Items {
		if item.Start == nil || item.Start.DateTime == "" {
			// All-day events do not occupy time on the grid.
			continue
		}
		start, err := time.Parse(time.RFC3339, item.Start.DateTime)
		if err != nil {
			c.logger.Warn("calendar: skipping event with unparseable start",
				zap.String("eventID", item.Id), zap.String("start", item.Start.DateTime))
			continue
		}
		local := start.In(c.loc)
		startMin := local.Hour()*60 + local.Minute()

		// A missing or broken end still occupies its start instant.
		endMin := startMin + 1
		if item.End != nil && item.End.DateTime != "" {
			if end, err := time.Parse(time.RFC3339, item.End.DateTime); err == nil {
				localEnd := end.In(c.loc)
				if localEnd.Format(models.DateLayout) == local.Format(models.DateLayout) {
					endMin = localEnd.Hour()*60 + localEnd.Minute()
				} else {
					// Spans midnight: clamp to the start date.
					endMin = 24 * 60
				}
			}
		}
		if endMin <= startMin {
			endMin = startMin + 1
		}

		busy = append(busy, models.BusyInterval{
			Date:  local.Format(models.DateLayout),
			Start: startMin,
			End:   endMin,
		})
	}
	return busy, nil
}

// CreateEvent re-checks the interval via a free/busy query and inserts the
// event. The write-time re-check is what turns a concurrent double booking
// into ErrSlotTaken for the loser.
func (c *GoogleClient) CreateEvent(ctx context.Context, req EventRequest) (string, error) {
	fb, err := c.svc.Freebusy.Query(&gcal.FreeBusyRequest{
		TimeMin: req.Start.Format(time.RFC3339),
		TimeMax: req.End.Format(time.RFC3339),
		Items:   []*gcal.FreeBusyRequestItem{{Id: c.calendarID}},
	}).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("calendar: free/busy query failed: %w", err)
	}
	if cal, ok := fb.Calendars[c.calendarID]; ok && len(cal.Busy) > 0 {
		return "", ErrSlotTaken
	}

	event := &gcal.Event{
		Summary:     req.Summary,
		Description: req.Description,
		Start:       &gcal.EventDateTime{DateTime: req.Start.Format(time.RFC3339), TimeZone: c.loc.String()},
		End:         &gcal.EventDateTime{DateTime: req.End.Format(time.RFC3339), TimeZone: c.loc.String()},
		Attendees:   []*gcal.EventAttendee{{Email: req.AttendeeEmail}},
	}
	created, err := c.svc.Events.Insert(c.calendarID, event).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("calendar: failed to insert event: %w", err)
	}
	return created.Id, nil
}

// DeleteEvent removes an event, used to compensate a partial booking.
func (c *GoogleClient) DeleteEvent(ctx context.Context, eventID string) error {
	if err := c.svc.Events.Delete(c.calendarID, eventID).Context(ctx).Do(); err != nil {
		return fmt.Errorf("calendar: failed to delete event %s: %w", eventID, err)
	}
	return nil
}
