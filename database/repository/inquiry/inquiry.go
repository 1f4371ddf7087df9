package inquiryRepo

import (
	"context"

	"lumora/config"
	"lumora/database"
	"lumora/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// InquiryRepository persists maintenance inquiries from the site's contact
// form. The visitor-facing surface is write-only; Count exists for ops
// dashboards.
type InquiryRepository interface {
	Create(ctx context.Context, inquiry models.Inquiry) (string, error)
	Count(ctx context.Context) (int64, error)
}

type mongoInquiryRepo struct {
	coll *mongo.Collection
}

// NewMongoInquiryRepo returns a new InquiryRepository instance using MongoDB.
func NewMongoInquiryRepo() InquiryRepository {
	db := database.MongoClient.Database(config.AppConfig.DatabaseName)
	return &mongoInquiryRepo{
		coll: db.Collection("inquiries"),
	}
}
