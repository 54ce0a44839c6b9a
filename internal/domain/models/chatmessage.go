// internal/domain/models/chatmessage.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ChatMessage is one message in the append-only conversation between a
// mentor and a mentee. Messages are scoped to the (mentor_id, mentee_id)
// pair and are never edited or deleted.
type ChatMessage struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	MentorID primitive.ObjectID `bson:"mentor_id" json:"mentor_id"`
	MenteeID primitive.ObjectID `bson:"mentee_id" json:"mentee_id"`
	SenderID primitive.ObjectID `bson:"sender_id" json:"sender_id"`

	Body string `bson:"body" json:"body"` // sanitized before insert

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
