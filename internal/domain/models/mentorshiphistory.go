// internal/domain/models/mentorshiphistory.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Mentorship history statuses.
const (
	MentorshipOngoing = "ongoing"
	MentorshipEnded   = "ended"
)

// MentorshipHistory records the lifecycle of one mentor-mentee relationship.
// Exactly one document exists per (mentor_id, mentee_id) pair ever assigned,
// enforced by a unique compound index; re-assigning the same pair reopens
// the existing document instead of creating a duplicate.
type MentorshipHistory struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	MentorID primitive.ObjectID `bson:"mentor_id" json:"mentor_id"`
	MenteeID primitive.ObjectID `bson:"mentee_id" json:"mentee_id"`

	Status    string     `bson:"status" json:"status"` // "ongoing" | "ended"
	StartedAt time.Time  `bson:"started_at" json:"started_at"`
	EndedAt   *time.Time `bson:"ended_at,omitempty" json:"ended_at,omitempty"`

	TerminationReason string `bson:"termination_reason,omitempty" json:"termination_reason,omitempty"`
	AdditionalInfo    string `bson:"additional_info,omitempty" json:"additional_info,omitempty"`
}
