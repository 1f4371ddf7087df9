package inquiryRepo

import (
	"context"
	"time"

	"lumora/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
)

// Create inserts a new inquiry and returns its ID.
func (r *mongoInquiryRepo) Create(ctx context.Context, inquiry models.Inquiry) (string, error) {
	if inquiry.ID == "" {
		inquiry.ID = uuid.New().String()
	}
	inquiry.CreatedAt = time.Now()

	_, err := r.coll.InsertOne(ctx, inquiry)
	if err != nil {
		return "", err
	}
	return inquiry.ID, nil
}

// Count reports how many inquiries have been received.
func (r *mongoInquiryRepo) Count(ctx context.Context) (int64, error) {
	return r.coll.CountDocuments(ctx, bson.M{})
}
