package inquiry

import (
	"context"
	"testing"

	"lumora/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type memoryInquiryRepo struct {
	stored []models.Inquiry
}

func (r *memoryInquiryRepo) Create(ctx context.Context, inq models.Inquiry) (string, error) {
	inq.ID = "inq-1"
	r.stored = append(r.stored, inq)
	return inq.ID, nil
}

func (r *memoryInquiryRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(r.stored)), nil
}

func TestSubmit_StoresValidInquiry(t *testing.T) {
	repo := &memoryInquiryRepo{}
	svc := &DefaultInquiryService{Repo: repo, Logger: zap.NewNop()}

	id, err := svc.Submit(context.Background(), models.Inquiry{
		Name:    "Jane Doe",
		Email:   "jane@example.com",
		Plan:    "premium",
		Message: "Interested in the maintenance plan.",
	})
	require.NoError(t, err)

	assert.Equal(t, "inq-1", id)
	require.Len(t, repo.stored, 1)
	assert.Equal(t, "premium", repo.stored[0].Plan)
}

func TestSubmit_RejectsMissingFields(t *testing.T) {
	repo := &memoryInquiryRepo{}
	svc := &DefaultInquiryService{Repo: repo, Logger: zap.NewNop()}

	cases := []struct {
		name  string
		inq   models.Inquiry
		field string
	}{
		{"empty name", models.Inquiry{Email: "jane@example.com", Message: "hi"}, "name"},
		{"bad email", models.Inquiry{Name: "Jane", Email: "nope", Message: "hi"}, "email"},
		{"empty message", models.Inquiry{Name: "Jane", Email: "jane@example.com"}, "message"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Submit(context.Background(), tc.inq)
			var validation *ValidationError
			require.ErrorAs(t, err, &validation)
			assert.Equal(t, tc.field, validation.Field)
		})
	}
	assert.Empty(t, repo.stored)
}
