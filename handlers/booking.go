package handlers

import (
	"errors"
	"net/http"

	"lumora/models"
	"lumora/services/booking"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BookingHandler exposes the wizard session API and availability queries.
type BookingHandler struct {
	Sessions     booking.WizardSessionService
	Availability booking.AvailabilityService
	Catalog      booking.CatalogService
	Logger       *zap.Logger
}

// NewBookingHandler wires a BookingHandler.
func NewBookingHandler(sessions booking.WizardSessionService, availability booking.AvailabilityService, catalog booking.CatalogService, logger *zap.Logger) *BookingHandler {
	return &BookingHandler{Sessions: sessions, Availability: availability, Catalog: catalog, Logger: logger}
}

// GetServices returns the agency's service catalog.
func (h *BookingHandler) GetServices(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"services": h.Catalog.List()})
}

// GetAvailability returns free slots for a day plus the month's booked-state.
// A degraded response still carries slots but flags them as unverified.
func (h *BookingHandler) GetAvailability(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date query parameter is required"})
		return
	}

	result, err := h.Availability.AvailableSlots(c.Request.Context(), date)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// StartSession creates a new booking wizard session.
func (h *BookingHandler) StartSession(c *gin.Context) {
	state, err := h.Sessions.Start(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, state)
}

// GetSession returns the current wizard state.
func (h *BookingHandler) GetSession(c *gin.Context) {
	state, err := h.Sessions.Get(c.Request.Context(), c.Param("sessionID"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, state)
}

// SelectService records the chosen service and advances the wizard.
func (h *BookingHandler) SelectService(c *gin.Context) {
	var input struct {
		ServiceID string `json:"serviceId"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	state, err := h.Sessions.SelectService(c.Request.Context(), c.Param("sessionID"), input.ServiceID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, state)
}

// SelectSlot records the chosen date/time and advances the wizard.
func (h *BookingHandler) SelectSlot(c *gin.Context) {
	var input struct {
		Slot models.TimeSlot `json:"slot"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	state, err := h.Sessions.SelectSlot(c.Request.Context(), c.Param("sessionID"), input.Slot)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, state)
}

// GoBack steps the wizard backward, preserving entered data.
func (h *BookingHandler) GoBack(c *gin.Context) {
	state, err := h.Sessions.GoBack(c.Request.Context(), c.Param("sessionID"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, state)
}

// Submit takes the contact fields and runs the booking attempt.
func (h *BookingHandler) Submit(c *gin.Context) {
	var input struct {
		Contact models.ContactFields `json:"contact"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	state, result, err := h.Sessions.Submit(c.Request.Context(), c.Param("sessionID"), input.Contact)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"state": state, "notifications": result})
}

// CancelSession discards the wizard session.
func (h *BookingHandler) CancelSession(c *gin.Context) {
	if err := h.Sessions.Cancel(c.Request.Context(), c.Param("sessionID")); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "cancelled"})
}

// respondError maps domain errors onto HTTP statuses so the widget can branch
// on conflict vs. validation vs. generic failure.
func (h *BookingHandler) respondError(c *gin.Context, err error) {
	var (
		validation *booking.ValidationError
		conflict   *booking.SlotConflictError
		calErr     *booking.CalendarProviderError
		vidErr     *booking.VideoProviderError
		inFlight   *booking.SubmissionInFlightError
		notFound   *booking.SessionNotFoundError
	)
	switch {
	case errors.As(err, &validation):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": validation.Message, "field": validation.Field, "code": "validation",
		})
	case errors.As(err, &conflict):
		c.JSON(http.StatusConflict, gin.H{
			"error": "the selected slot is no longer available, please pick another time",
			"code":  "slot_conflict",
		})
	case errors.As(err, &calErr), errors.As(err, &vidErr):
		h.Logger.Error("booking attempt failed", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "booking failed, please retry", "code": "booking_failed"})
	case errors.As(err, &inFlight):
		c.JSON(http.StatusConflict, gin.H{"error": "a submission is already in progress", "code": "in_flight"})
	case errors.As(err, &notFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "booking session not found or expired", "code": "session_not_found"})
	default:
		h.Logger.Error("unexpected booking error", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
