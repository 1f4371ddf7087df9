package models

// WizardStep identifies the three user-navigable steps of the booking flow.
type WizardStep string

const (
	StepServiceSelection WizardStep = "service"
	StepDateTime         WizardStep = "datetime"
	StepContactInfo      WizardStep = "contact"
)

// SubmissionStatus tracks the terminal phase of a wizard session.
type SubmissionStatus string

const (
	SubmissionIdle       SubmissionStatus = "idle"
	SubmissionSubmitting SubmissionStatus = "submitting"
	SubmissionSuccess    SubmissionStatus = "success"
	SubmissionError      SubmissionStatus = "error"
)

// ContactFields holds the contact-step form data. Fields survive failed
// submissions so the user can retry without re-entering them.
type ContactFields struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Company string `json:"company,omitempty"`
	Notes   string `json:"notes,omitempty"`
}

// BookingWizardState is the whole state of one booking flow, stored per
// session and mutated only through the wizard's transition functions.
type BookingWizardState struct {
	SessionID       string           `json:"sessionId"`
	Step            WizardStep       `json:"step"`
	SelectedService *Service         `json:"selectedService,omitempty"`
	SelectedSlot    *TimeSlot        `json:"selectedSlot,omitempty"`
	Contact         ContactFields    `json:"contact"`
	Status          SubmissionStatus `json:"status"`
	Meeting         *Meeting         `json:"meeting,omitempty"`
	LastError       string           `json:"lastError,omitempty"`
}
