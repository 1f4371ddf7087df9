package booking

import (
	"fmt"

	"lumora/models"
)

// ValidationError reports incomplete or malformed user input. It never leaves
// the wizard: the transition is blocked and the state is unchanged.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation: %s: %s", e.Field, e.Message)
}

func NewValidationError(field, msg string) error {
	return &ValidationError{Field: field, Message: msg}
}

// SlotConflictError means the chosen slot was taken between selection and
// submission. The UI should prompt re-selection, not blind retry.
type SlotConflictError struct {
	Slot models.TimeSlot
}

func (e *SlotConflictError) Error() string {
	return fmt.Sprintf("slot %s %s is no longer available", e.Slot.Date, e.Slot.StartClock())
}

// CalendarProviderError wraps a calendar store failure during meeting creation.
type CalendarProviderError struct {
	Op  string
	Err error
}

func (e *CalendarProviderError) Error() string {
	return fmt.Sprintf("calendar provider: %s: %v", e.Op, e.Err)
}

func (e *CalendarProviderError) Unwrap() error { return e.Err }

// VideoProviderError wraps a video provisioning failure. Compensated reports
// whether the orphaned calendar event was successfully deleted.
type VideoProviderError struct {
	Err         error
	Compensated bool
}

func (e *VideoProviderError) Error() string {
	return fmt.Sprintf("video provider: %v", e.Err)
}

func (e *VideoProviderError) Unwrap() error { return e.Err }

// SubmissionInFlightError rejects a duplicate submit while one is outstanding.
type SubmissionInFlightError struct {
	SessionID string
}

func (e *SubmissionInFlightError) Error() string {
	return fmt.Sprintf("submission already in progress for session %s", e.SessionID)
}

// SessionNotFoundError means the wizard session expired or never existed.
type SessionNotFoundError struct {
	SessionID string
}

func (e *SessionNotFoundError) Error() string {
	return fmt.Sprintf("booking session %s not found or expired", e.SessionID)
}
