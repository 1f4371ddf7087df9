package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"lumora/clients/calendar"
	"lumora/clients/video"
	"lumora/models"

	"go.uber.org/zap"
)

// MeetingOrchestrator turns a validated booking request into a calendar
// reservation plus a video room. The steps are strictly ordered: calendar
// event first, then the video room; a video failure must compensate by
// deleting the event it just created, so no reservation survives without a
// meeting link.
type MeetingOrchestrator interface {
	CreateMeeting(ctx context.Context, req models.BookingRequest) (*models.Meeting, error)
}

// DefaultMeetingOrchestrator implements MeetingOrchestrator against the
// external calendar store and video provider. DefaultMinutes is the meeting
// length used when the service does not carry its own duration.
type DefaultMeetingOrchestrator struct {
	Calendar       calendar.Client
	Video          video.Client
	Location       *time.Location
	DefaultMinutes int
	Logger         *zap.Logger
}

// CreateMeeting runs the ordered booking pipeline. Error mapping: the store
// rejecting the interval yields SlotConflictError; any other calendar failure
// yields CalendarProviderError; a video failure yields VideoProviderError
// after attempting compensation.
func (o *DefaultMeetingOrchestrator) CreateMeeting(ctx context.Context, req models.BookingRequest) (*models.Meeting, error) {
	if o.Calendar == nil {
		return nil, &CalendarProviderError{Op: "init", Err: errors.New("calendar client not configured")}
	}
	if o.Video == nil {
		return nil, &VideoProviderError{Err: errors.New("video client not configured")}
	}

	start, err := req.Slot.StartTime(o.Location)
	if err != nil {
		return nil, NewValidationError("slot", err.Error())
	}
	duration := req.Service.Duration
	if duration <= 0 {
		duration = o.DefaultMinutes
	}
	if duration <= 0 {
		duration = 60
	}
	end := start.Add(time.Duration(duration) * time.Minute)

	summary := fmt.Sprintf("%s with %s", req.Service.Name, req.ContactName)
	description := fmt.Sprintf("Attendee: %s <%s>", req.ContactName, req.ContactEmail)
	if req.Company != "" {
		description += "\nCompany: " + req.Company
	}
	if req.Notes != "" {
		description += "\nNotes: " + req.Notes
	}

	eventID, err := o.Calendar.CreateEvent(ctx, calendar.EventRequest{
		Summary:       summary,
		Description:   description,
		Start:         start,
		End:           end,
		AttendeeEmail: req.ContactEmail,
	})
	if err != nil {
		if errors.Is(err, calendar.ErrSlotTaken) {
			o.Logger.Info("booking lost the slot race",
				zap.String("date", req.Slot.Date), zap.String("time", req.Slot.StartClock()))
			return nil, &SlotConflictError{Slot: req.Slot}
		}
		return nil, &CalendarProviderError{Op: "create event", Err: err}
	}

	room, err := o.Video.CreateRoom(ctx, summary, start, duration)
	if err != nil {
		compensated := o.compensate(eventID)
		return nil, &VideoProviderError{Err: err, Compensated: compensated}
	}

	o.Logger.Info("meeting created",
		zap.String("eventID", eventID),
		zap.String("date", req.Slot.Date),
		zap.String("time", req.Slot.StartClock()))

	return &models.Meeting{
		CalendarEventID:      eventID,
		VideoMeetingURL:      room.JoinURL,
		VideoMeetingPassword: room.Password,
	}, nil
}

// compensate deletes the calendar event created earlier in the same attempt.
// Runs on its own timeout so a cancelled request context cannot leave the
// reservation orphaned.
func (o *DefaultMeetingOrchestrator) compensate(eventID string) bool {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := o.Calendar.DeleteEvent(ctx, eventID); err != nil {
		o.Logger.Error("failed to delete calendar event after video provisioning failure; manual cleanup needed",
			zap.String("eventID", eventID), zap.Error(err))
		return false
	}
	o.Logger.Warn("rolled back calendar event after video provisioning failure",
		zap.String("eventID", eventID))
	return true
}
