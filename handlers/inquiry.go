package handlers

import (
	"errors"
	"net/http"

	"lumora/models"
	"lumora/services/inquiry"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// InquiryHandler accepts maintenance-plan inquiries.
type InquiryHandler struct {
	Service inquiry.InquiryService
	Logger  *zap.Logger
}

// NewInquiryHandler wires an InquiryHandler.
func NewInquiryHandler(service inquiry.InquiryService, logger *zap.Logger) *InquiryHandler {
	return &InquiryHandler{Service: service, Logger: logger}
}

// Submit stores one inquiry from the contact form.
func (h *InquiryHandler) Submit(c *gin.Context) {
	var inq models.Inquiry
	if err := c.ShouldBindJSON(&inq); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	id, err := h.Service.Submit(c.Request.Context(), inq)
	if err != nil {
		var validation *inquiry.ValidationError
		if errors.As(err, &validation) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error": validation.Message, "field": validation.Field,
			})
			return
		}
		h.Logger.Error("failed to store inquiry", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to submit inquiry"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}
