package models

// BookingRequest is a fully-validated booking, produced when the wizard's
// contact step passes its guards. It is consumed exactly once by the meeting
// orchestrator; after creation the calendar store is the system of record.
type BookingRequest struct {
	Service      Service  `json:"service"`
	Slot         TimeSlot `json:"slot"`
	ContactName  string   `json:"contactName"`
	ContactEmail string   `json:"contactEmail"`
	Company      string   `json:"company,omitempty"`
	Notes        string   `json:"notes,omitempty"`
}

// Meeting holds the identifiers produced by a successful booking: the
// calendar reservation and the provisioned video room.
type Meeting struct {
	CalendarEventID      string `json:"calendarEventId"`
	VideoMeetingURL      string `json:"videoMeetingUrl"`
	VideoMeetingPassword string `json:"videoMeetingPassword,omitempty"`
}
