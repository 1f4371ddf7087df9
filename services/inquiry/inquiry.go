// Package inquiry handles maintenance-plan inquiries from the site's contact
// form.
package inquiry

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	inquiryRepo "lumora/database/repository/inquiry"
	"lumora/models"

	"go.uber.org/zap"
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// ValidationError reports an invalid inquiry field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation: %s: %s", e.Field, e.Message)
}

// InquiryService accepts inquiries; the visitor-facing surface is write-only.
type InquiryService interface {
	Submit(ctx context.Context, inq models.Inquiry) (string, error)
}

// DefaultInquiryService implements InquiryService.
type DefaultInquiryService struct {
	Repo   inquiryRepo.InquiryRepository
	Logger *zap.Logger
}

// Submit validates and stores one inquiry, returning its ID.
func (s *DefaultInquiryService) Submit(ctx context.Context, inq models.Inquiry) (string, error) {
	if strings.TrimSpace(inq.Name) == "" {
		return "", &ValidationError{Field: "name", Message: "name required"}
	}
	if !emailPattern.MatchString(inq.Email) {
		return "", &ValidationError{Field: "email", Message: "valid email required"}
	}
	if strings.TrimSpace(inq.Message) == "" {
		return "", &ValidationError{Field: "message", Message: "message required"}
	}

	id, err := s.Repo.Create(ctx, inq)
	if err != nil {
		return "", fmt.Errorf("failed to store inquiry: %w", err)
	}
	s.Logger.Info("inquiry received", zap.String("id", id), zap.String("plan", inq.Plan))
	return id, nil
}
