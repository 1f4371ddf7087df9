// Package notification sends booking confirmations once a meeting exists.
// Delivery failures are captured in the result, never propagated: a missed
// email must not undo a successful booking.
package notification

import (
	"context"
	"fmt"
	"sync"
	"time"

	"lumora/clients/email"
	"lumora/models"

	"firebase.google.com/go/v4/messaging"
	"go.uber.org/zap"
)

// Result records the outcome of both confirmation sends.
type Result struct {
	AttendeeDelivered bool   `json:"attendeeDelivered"`
	OperatorDelivered bool   `json:"operatorDelivered"`
	AttendeeError     string `json:"attendeeError,omitempty"`
	OperatorError     string `json:"operatorError,omitempty"`
}

// AllDelivered reports whether both messages went out.
func (r Result) AllDelivered() bool {
	return r.AttendeeDelivered && r.OperatorDelivered
}

// Dispatcher sends the attendee confirmation and the operator alert.
type Dispatcher interface {
	Notify(ctx context.Context, meeting models.Meeting, req models.BookingRequest) Result
}

// DefaultDispatcher sends both messages in parallel through one
// parameterized email path, retrying each at most once. When an FCM client
// is configured it additionally pushes a booking alert to the operator
// topic; push failures are log-only.
type DefaultDispatcher struct {
	Email         email.Client
	Push          *messaging.Client
	OperatorEmail string
	OperatorName  string
	OperatorTopic string
	Location      *time.Location
	Logger        *zap.Logger
}

func (d *DefaultDispatcher) Notify(ctx context.Context, meeting models.Meeting, req models.BookingRequest) Result {
	loc := d.Location
	if loc == nil {
		loc = time.Local
	}
	dateTime := req.Slot.Date + " " + req.Slot.StartClock()
	if when, err := req.Slot.StartTime(loc); err == nil {
		dateTime = when.Format("Monday, 2 January 2006 at 15:04")
	}

	attendeeMsg := email.Message{
		ToEmail:     req.ContactEmail,
		ToName:      req.ContactName,
		ServiceName: req.Service.Name,
		DateTime:    dateTime,
		Company:     req.Company,
		Notes:       req.Notes,
		MeetingLink: meeting.VideoMeetingURL,
	}
	operatorMsg := email.Message{
		ToEmail:     d.OperatorEmail,
		ToName:      d.OperatorName,
		ServiceName: req.Service.Name,
		DateTime:    dateTime,
		Company:     req.Company,
		Notes:       fmt.Sprintf("New booking from %s <%s>. %s", req.ContactName, req.ContactEmail, req.Notes),
		MeetingLink: meeting.VideoMeetingURL,
	}

	var result Result
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		result.AttendeeDelivered, result.AttendeeError = d.sendWithRetry(ctx, "attendee", attendeeMsg)
	}()
	go func() {
		defer wg.Done()
		result.OperatorDelivered, result.OperatorError = d.sendWithRetry(ctx, "operator", operatorMsg)
	}()
	wg.Wait()

	d.pushOperatorAlert(ctx, req, dateTime)

	return result
}

// sendWithRetry attempts one send and retries exactly once on failure.
func (d *DefaultDispatcher) sendWithRetry(ctx context.Context, recipient string, msg email.Message) (bool, string) {
	if d.Email == nil {
		d.Logger.Warn("email client not configured, skipping confirmation",
			zap.String("recipient", recipient))
		return false, "email client not configured"
	}

	err := d.Email.SendConfirmation(ctx, msg)
	if err == nil {
		return true, ""
	}
	d.Logger.Warn("confirmation send failed, retrying once",
		zap.String("recipient", recipient), zap.Error(err))

	if err = d.Email.SendConfirmation(ctx, msg); err == nil {
		return true, ""
	}
	d.Logger.Error("confirmation send failed permanently",
		zap.String("recipient", recipient), zap.Error(err))
	return false, err.Error()
}

func (d *DefaultDispatcher) pushOperatorAlert(ctx context.Context, req models.BookingRequest, dateTime string) {
	if d.Push == nil || d.OperatorTopic == "" {
		return
	}
	_, err := d.Push.Send(ctx, &messaging.Message{
		Topic: d.OperatorTopic,
		Notification: &messaging.Notification{
			Title: "New booking: " + req.Service.Name,
			Body:  fmt.Sprintf("%s on %s", req.ContactName, dateTime),
		},
	})
	if err != nil {
		d.Logger.Warn("operator push alert failed", zap.Error(err))
	}
}
