package models

import "time"

// Inquiry is a maintenance-plan inquiry submitted through the site's contact
// form. Write-only from the visitor's side.
type Inquiry struct {
	ID        string    `bson:"id" json:"id"`
	Name      string    `bson:"name" json:"name"`
	Email     string    `bson:"email" json:"email"`
	Phone     string    `bson:"phone,omitempty" json:"phone,omitempty"`
	Plan      string    `bson:"plan,omitempty" json:"plan,omitempty"`
	Message   string    `bson:"message" json:"message"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
