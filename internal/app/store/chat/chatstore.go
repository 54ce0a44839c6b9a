// internal/app/store/chat/chatstore.go
package chatstore

import (
	"context"
	"time"

	"github.com/dalemusser/mentorhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store manages the append-only message log for mentorship pairs.
type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("chat_messages")}
}

// Append inserts a message into the pair's conversation. The body should be
// sanitized before calling.
func (s *Store) Append(ctx context.Context, mentorID, menteeID, senderID primitive.ObjectID, body string) (models.ChatMessage, error) {
	msg := models.ChatMessage{
		ID:        primitive.NewObjectID(),
		MentorID:  mentorID,
		MenteeID:  menteeID,
		SenderID:  senderID,
		Body:      body,
		CreatedAt: time.Now().UTC(),
	}
	if _, err := s.c.InsertOne(ctx, msg); err != nil {
		return models.ChatMessage{}, err
	}
	return msg, nil
}

// List returns the pair's messages in send order. When after is a valid
// message ID, only messages inserted after it are returned, which lets
// clients poll with a cursor instead of refetching the whole conversation.
func (s *Store) List(ctx context.Context, mentorID, menteeID primitive.ObjectID, after primitive.ObjectID, limit int64) ([]models.ChatMessage, error) {
	filter := bson.M{"mentor_id": mentorID, "mentee_id": menteeID}
	if !after.IsZero() {
		filter["_id"] = bson.M{"$gt": after}
	}

	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}).SetLimit(limit)
	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var msgs []models.ChatMessage
	if err := cur.All(ctx, &msgs); err != nil {
		return nil, err
	}
	return msgs, nil
}
