package booking

import (
	"regexp"
	"strings"

	"lumora/models"
)

// The wizard is a three-step flow: ServiceSelection -> DateTime ->
// ContactInfo, then Submitting -> Success | Error. Every transition below is
// a pure function from state to state, so each guard can be tested in
// isolation and no step hides coupled mutable state.

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// NewWizardState returns a fresh wizard at the service-selection step.
func NewWizardState(sessionID string) models.BookingWizardState {
	return models.BookingWizardState{
		SessionID: sessionID,
		Step:      models.StepServiceSelection,
		Status:    models.SubmissionIdle,
	}
}

// SelectService records the chosen service. Valid at the first step only;
// re-selection after going back is covered because Back returns to it.
func SelectService(st models.BookingWizardState, svc models.Service) (models.BookingWizardState, error) {
	if st.Status == models.SubmissionSubmitting {
		return st, &SubmissionInFlightError{SessionID: st.SessionID}
	}
	if st.Step != models.StepServiceSelection {
		return st, NewValidationError("step", "service can only be chosen at the service step")
	}
	st.SelectedService = &svc
	return st, nil
}

// SelectSlot records the chosen date/time. Valid at the date-time step.
func SelectSlot(st models.BookingWizardState, slot models.TimeSlot) (models.BookingWizardState, error) {
	if st.Status == models.SubmissionSubmitting {
		return st, &SubmissionInFlightError{SessionID: st.SessionID}
	}
	if st.Step != models.StepDateTime {
		return st, NewValidationError("step", "a slot can only be chosen at the date/time step")
	}
	st.SelectedSlot = &slot
	return st, nil
}

// Advance moves the wizard forward one step, enforcing the step's guard.
func Advance(st models.BookingWizardState) (models.BookingWizardState, error) {
	if st.Status == models.SubmissionSubmitting {
		return st, &SubmissionInFlightError{SessionID: st.SessionID}
	}
	switch st.Step {
	case models.StepServiceSelection:
		if st.SelectedService == nil {
			return st, NewValidationError("service", "service required")
		}
		st.Step = models.StepDateTime
	case models.StepDateTime:
		if st.SelectedSlot == nil {
			return st, NewValidationError("slot", "date/time required")
		}
		st.Step = models.StepContactInfo
	default:
		return st, NewValidationError("step", "submission from the contact step is explicit")
	}
	return st, nil
}

// Back moves the wizard one step backward. Always permitted between the three
// user steps and never clears entered data. At the first step it is a no-op.
func Back(st models.BookingWizardState) models.BookingWizardState {
	switch st.Step {
	case models.StepDateTime:
		st.Step = models.StepServiceSelection
	case models.StepContactInfo:
		st.Step = models.StepDateTime
	}
	return st
}

// BeginSubmit validates the contact fields and, if every guard holds, returns
// the Submitting state together with the booking request the orchestrator
// will consume. On any guard failure the returned state equals the input.
func BeginSubmit(st models.BookingWizardState, fields models.ContactFields) (models.BookingWizardState, models.BookingRequest, error) {
	var req models.BookingRequest
	if st.Status == models.SubmissionSubmitting {
		return st, req, &SubmissionInFlightError{SessionID: st.SessionID}
	}
	if st.Step != models.StepContactInfo {
		return st, req, NewValidationError("step", "complete the earlier steps first")
	}
	if st.SelectedService == nil {
		return st, req, NewValidationError("service", "service required")
	}
	if st.SelectedSlot == nil {
		return st, req, NewValidationError("slot", "date/time required")
	}
	if strings.TrimSpace(fields.Name) == "" {
		return st, req, NewValidationError("name", "name required")
	}
	if !emailPattern.MatchString(fields.Email) {
		return st, req, NewValidationError("email", "valid email required")
	}

	st.Contact = fields
	st.Status = models.SubmissionSubmitting
	st.LastError = ""
	req = models.BookingRequest{
		Service:      *st.SelectedService,
		Slot:         *st.SelectedSlot,
		ContactName:  strings.TrimSpace(fields.Name),
		ContactEmail: fields.Email,
		Company:      fields.Company,
		Notes:        fields.Notes,
	}
	return st, req, nil
}

// FinishSuccess records the created meeting and resets the flow so a new
// booking starts clean: step back to service selection, fields cleared, and
// the meeting details retained for the confirmation screen.
func FinishSuccess(st models.BookingWizardState, meeting models.Meeting) models.BookingWizardState {
	fresh := NewWizardState(st.SessionID)
	fresh.Status = models.SubmissionSuccess
	fresh.Meeting = &meeting
	return fresh
}

// FailSubmit keeps the wizard at the contact step with fields intact so the
// user can retry without re-entering anything.
func FailSubmit(st models.BookingWizardState, reason string) models.BookingWizardState {
	st.Status = models.SubmissionError
	st.Step = models.StepContactInfo
	st.LastError = reason
	return st
}
