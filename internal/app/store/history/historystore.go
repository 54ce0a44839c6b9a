// internal/app/store/history/historystore.go
package historystore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/mentorhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store manages the mentorship history ledger: one document per
// (mentor, mentee) pair ever assigned, reopened on re-assignment.
type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("mentorship_history")}
}

// ErrNotFound is returned when no ledger entry exists for a pair.
var ErrNotFound = errors.New("no mentorship history entry for this pair")

// Open records the start of a mentorship. If the pair had an earlier, ended
// entry, it is reopened in place; the unique (mentor_id, mentee_id) index
// guarantees a single document per pair either way.
func (s *Store) Open(ctx context.Context, mentorID, menteeID primitive.ObjectID, startedAt time.Time) error {
	_, err := s.c.UpdateOne(ctx,
		bson.M{"mentor_id": mentorID, "mentee_id": menteeID},
		bson.M{
			"$set": bson.M{
				"status":     models.MentorshipOngoing,
				"started_at": startedAt.UTC(),
			},
			"$unset": bson.M{
				"ended_at":           "",
				"termination_reason": "",
				"additional_info":    "",
			},
			"$setOnInsert": bson.M{"_id": primitive.NewObjectID()},
		},
		options.Update().SetUpsert(true))
	return err
}

// Close marks the pair's entry ended with the given reason. The entry must
// already exist; a missing entry is reported as ErrNotFound rather than
// silently upserted, so ledger corruption surfaces instead of compounding.
func (s *Store) Close(ctx context.Context, mentorID, menteeID primitive.ObjectID, endedAt time.Time, reason, info string) error {
	res, err := s.c.UpdateOne(ctx,
		bson.M{"mentor_id": mentorID, "mentee_id": menteeID},
		bson.M{"$set": bson.M{
			"status":             models.MentorshipEnded,
			"ended_at":           endedAt.UTC(),
			"termination_reason": reason,
			"additional_info":    info,
		}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Get loads the entry for a pair.
func (s *Store) Get(ctx context.Context, mentorID, menteeID primitive.ObjectID) (*models.MentorshipHistory, error) {
	var h models.MentorshipHistory
	err := s.c.FindOne(ctx, bson.M{"mentor_id": mentorID, "mentee_id": menteeID}).Decode(&h)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &h, nil
}

// ListByMentor returns all entries for a mentor, newest first.
func (s *Store) ListByMentor(ctx context.Context, mentorID primitive.ObjectID) ([]models.MentorshipHistory, error) {
	return s.list(ctx, bson.M{"mentor_id": mentorID})
}

// ListByMentee returns all entries for a mentee, newest first. A mentee
// accumulates one entry per mentor they were ever matched with.
func (s *Store) ListByMentee(ctx context.Context, menteeID primitive.ObjectID) ([]models.MentorshipHistory, error) {
	return s.list(ctx, bson.M{"mentee_id": menteeID})
}

func (s *Store) list(ctx context.Context, filter bson.M) ([]models.MentorshipHistory, error) {
	opts := options.Find().SetSort(bson.D{{Key: "started_at", Value: -1}})
	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var entries []models.MentorshipHistory
	if err := cur.All(ctx, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}
