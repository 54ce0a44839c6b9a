// internal/domain/models/application.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Application types and statuses.
const (
	ApplicationMentor = "mentor"
	ApplicationMentee = "mentee"

	ApplicationPending  = "pending"
	ApplicationApproved = "approved"
	ApplicationRejected = "rejected"
)

// Application is a user's request to serve as a mentor or to be mentored.
// At most one application per (user_id, type); approved applications are the
// single source of truth for the user's derived mentorship role.
type Application struct {
	ID     primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID primitive.ObjectID `bson:"user_id" json:"user_id"`
	Type   string             `bson:"type" json:"type"`     // "mentor" | "mentee"
	Status string             `bson:"status" json:"status"` // "pending" | "approved" | "rejected"

	Statement string `bson:"statement,omitempty" json:"statement,omitempty"` // sanitized free text

	ReviewerID    *primitive.ObjectID `bson:"reviewer_id,omitempty" json:"reviewer_id,omitempty"`
	ReviewerNotes string              `bson:"reviewer_notes,omitempty" json:"reviewer_notes,omitempty"`
	ReviewedAt    *time.Time          `bson:"reviewed_at,omitempty" json:"reviewed_at,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
