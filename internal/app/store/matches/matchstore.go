// internal/app/store/matches/matchstore.go
package matchstore

// The matching engine links mentees to mentors and keeps both directions of
// the link in sync:
//   - the mentee's mentor_id names the mentor
//   - the mentor's mentee_ids contains the mentee (never more than
//     models.MaxMentees entries)
//
// The capacity check and the mentee_ids append are a single conditional
// update, so two concurrent assignments against a mentor's last free slot
// resolve to exactly one winner even without transactions. The surrounding
// multi-document writes (mentee record, ledger entry) run under txn.Run so
// readers never observe a half-written pair on servers with transaction
// support; ListPairs additionally verifies both directions before reporting
// a pair, which guards against partial writes on servers without it.

import (
	"context"
	"errors"
	"time"

	historystore "github.com/dalemusser/mentorhub/internal/app/store/history"
	"github.com/dalemusser/mentorhub/internal/app/system/txn"
	"github.com/dalemusser/mentorhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type Store struct {
	db      *mongo.Database
	users   *mongo.Collection
	history *historystore.Store
	log     *zap.Logger
}

func New(db *mongo.Database, logger *zap.Logger) *Store {
	return &Store{
		db:      db,
		users:   db.Collection("users"),
		history: historystore.New(db),
		log:     logger,
	}
}

var (
	// ErrCapacityExceeded means the mentor already holds models.MaxMentees mentees.
	ErrCapacityExceeded = errors.New("mentor already has the maximum number of mentees")
	// ErrAlreadyAssigned means this mentee is already in the mentor's list.
	ErrAlreadyAssigned = errors.New("mentee is already assigned to this mentor")
	// ErrAssignedElsewhere means the mentee's current mentor no longer matches
	// the one a reassignment expected.
	ErrAssignedElsewhere = errors.New("mentee is currently assigned to a different mentor")
	// ErrMentorNotFound / ErrMenteeNotFound report a missing user record.
	ErrMentorNotFound = errors.New("mentor not found")
	ErrMenteeNotFound = errors.New("mentee not found")
	// ErrHistoryNotFound means no ledger entry exists for the pair being ended.
	ErrHistoryNotFound = historystore.ErrNotFound
)

// Pair is one verified mentor-mentee link.
type Pair struct {
	MenteeID primitive.ObjectID `json:"mentee_id"`
	MentorID primitive.ObjectID `json:"mentor_id"`
}

// Assign links menteeID to mentorID: capacity and duplicate checks, both
// directions of the reference, ledger entry, and the mentor's new-match flag.
func (s *Store) Assign(ctx context.Context, menteeID, mentorID primitive.ObjectID) error {
	return txn.Run(ctx, s.db, s.log, func(ctx context.Context) error {
		return s.assign(ctx, menteeID, mentorID)
	})
}

// assign performs the writes; the caller supplies transaction scope.
func (s *Store) assign(ctx context.Context, menteeID, mentorID primitive.ObjectID) error {
	now := time.Now().UTC()

	// Capacity check and append in one atomic update. "mentee_ids.1" absent
	// asserts len(mentee_ids) < MaxMentees; $ne rejects duplicates. Both are
	// evaluated server-side under the document lock, so a concurrent
	// assignment cannot slip a third mentee in between check and write.
	res, err := s.users.UpdateOne(ctx,
		bson.M{
			"_id":        mentorID,
			"mentee_ids": bson.M{"$ne": menteeID},
			"mentee_ids." + lastSlot: bson.M{"$exists": false},
		},
		bson.M{
			"$push": bson.M{"mentee_ids": menteeID},
			"$set":  bson.M{"new_mentee_match": true, "updated_at": now},
		})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return s.classifyAssignFailure(ctx, menteeID, mentorID)
	}

	// Mentee side of the reference.
	res, err = s.users.UpdateOne(ctx,
		bson.M{"_id": menteeID},
		bson.M{"$set": bson.M{"mentor_id": mentorID, "updated_at": now}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrMenteeNotFound
	}

	// Ledger entry: created on first assignment, reopened on re-assignment.
	return s.history.Open(ctx, mentorID, menteeID, now)
}

// lastSlot is the array index that must be empty for another mentee to fit.
const lastSlot = "1" // MaxMentees - 1

// classifyAssignFailure inspects the mentor record to report why the guarded
// append matched nothing.
func (s *Store) classifyAssignFailure(ctx context.Context, menteeID, mentorID primitive.ObjectID) error {
	var mentor models.User
	err := s.users.FindOne(ctx, bson.M{"_id": mentorID}).Decode(&mentor)
	if err == mongo.ErrNoDocuments {
		return ErrMentorNotFound
	}
	if err != nil {
		return err
	}
	if mentor.HasMentee(menteeID) {
		return ErrAlreadyAssigned
	}
	return ErrCapacityExceeded
}

// End terminates the mentorship between menteeID and mentorID: the ledger
// entry is closed with the reason, the mentee's mentor_id is cleared, and
// the mentee is pulled from the mentor's list. A missing ledger entry fails
// the whole operation with ErrHistoryNotFound.
func (s *Store) End(ctx context.Context, menteeID, mentorID primitive.ObjectID, reason, info string) error {
	return txn.Run(ctx, s.db, s.log, func(ctx context.Context) error {
		return s.end(ctx, menteeID, mentorID, reason, info)
	})
}

func (s *Store) end(ctx context.Context, menteeID, mentorID primitive.ObjectID, reason, info string) error {
	now := time.Now().UTC()

	if err := s.history.Close(ctx, mentorID, menteeID, now, reason, info); err != nil {
		return err
	}

	// Clear the mentee's pointer only when it still names this mentor, so a
	// concurrent reassignment to another mentor is not clobbered.
	if _, err := s.users.UpdateOne(ctx,
		bson.M{"_id": menteeID, "mentor_id": mentorID},
		bson.M{"$unset": bson.M{"mentor_id": ""}, "$set": bson.M{"updated_at": now}}); err != nil {
		return err
	}

	// $pull is a no-op when the id is absent, so removal is always safe.
	if _, err := s.users.UpdateOne(ctx,
		bson.M{"_id": mentorID},
		bson.M{"$pull": bson.M{"mentee_ids": menteeID}, "$set": bson.M{"updated_at": now}}); err != nil {
		return err
	}
	return nil
}

// ReassignReason is recorded in the ledger when a mentee is moved between mentors.
const ReassignReason = "Reassigned"

// Reassign moves menteeID from oldMentorID to newMentorID. The mentee's
// stored mentor must still be oldMentorID (ErrAssignedElsewhere otherwise),
// and the end+assign composition runs as one transaction: if the new mentor
// has no free slot, the old assignment is left intact.
func (s *Store) Reassign(ctx context.Context, menteeID, oldMentorID, newMentorID primitive.ObjectID) error {
	return txn.Run(ctx, s.db, s.log, func(ctx context.Context) error {
		var mentee models.User
		err := s.users.FindOne(ctx, bson.M{"_id": menteeID}).Decode(&mentee)
		if err == mongo.ErrNoDocuments {
			return ErrMenteeNotFound
		}
		if err != nil {
			return err
		}
		if mentee.MentorID == nil || *mentee.MentorID != oldMentorID {
			return ErrAssignedElsewhere
		}

		if err := s.end(ctx, menteeID, oldMentorID, ReassignReason, ""); err != nil {
			return err
		}
		return s.assign(ctx, menteeID, newMentorID)
	})
}

// ListPairs scans the directory for mentees with a mentor_id and reports a
// pair only when the mentor's mentee_ids confirms it. Half-written pairs are
// silently dropped. Full scan; fine at the expected scale of hundreds of
// users.
func (s *Store) ListPairs(ctx context.Context) ([]Pair, error) {
	cur, err := s.users.Find(ctx, bson.M{"mentor_id": bson.M{"$exists": true, "$ne": nil}})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var mentees []models.User
	if err := cur.All(ctx, &mentees); err != nil {
		return nil, err
	}
	if len(mentees) == 0 {
		return nil, nil
	}

	// Batch-load the referenced mentors.
	mentorIDs := make([]primitive.ObjectID, 0, len(mentees))
	for _, m := range mentees {
		mentorIDs = append(mentorIDs, *m.MentorID)
	}
	mcur, err := s.users.Find(ctx, bson.M{"_id": bson.M{"$in": mentorIDs}})
	if err != nil {
		return nil, err
	}
	defer mcur.Close(ctx)

	var mentorDocs []models.User
	if err := mcur.All(ctx, &mentorDocs); err != nil {
		return nil, err
	}
	mentors := make(map[primitive.ObjectID]*models.User, len(mentorDocs))
	for i := range mentorDocs {
		mentors[mentorDocs[i].ID] = &mentorDocs[i]
	}

	pairs := make([]Pair, 0, len(mentees))
	for _, m := range mentees {
		mentor, ok := mentors[*m.MentorID]
		if !ok || !mentor.HasMentee(m.ID) {
			continue
		}
		pairs = append(pairs, Pair{MenteeID: m.ID, MentorID: mentor.ID})
	}
	return pairs, nil
}

// IsActivePair reports whether both directions of the (mentee, mentor) link agree.
func (s *Store) IsActivePair(ctx context.Context, menteeID, mentorID primitive.ObjectID) (bool, error) {
	var mentee models.User
	err := s.users.FindOne(ctx, bson.M{"_id": menteeID}).Decode(&mentee)
	if err == mongo.ErrNoDocuments {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if mentee.MentorID == nil || *mentee.MentorID != mentorID {
		return false, nil
	}

	var mentor models.User
	err = s.users.FindOne(ctx, bson.M{"_id": mentorID}).Decode(&mentor)
	if err == mongo.ErrNoDocuments {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return mentor.HasMentee(menteeID), nil
}

// StartDateFormat is how mentorship start dates are presented to callers.
const StartDateFormat = "January 2, 2006"

// StartDate returns the formatted start date of the pair's ledger entry.
func (s *Store) StartDate(ctx context.Context, menteeID, mentorID primitive.ObjectID) (string, error) {
	h, err := s.history.Get(ctx, mentorID, menteeID)
	if err != nil {
		return "", err
	}
	return h.StartedAt.Format(StartDateFormat), nil
}

// AcknowledgeNewMatch clears the mentor's new-mentee notification flag.
func (s *Store) AcknowledgeNewMatch(ctx context.Context, mentorID primitive.ObjectID) error {
	res, err := s.users.UpdateOne(ctx,
		bson.M{"_id": mentorID},
		bson.M{"$set": bson.M{"new_mentee_match": false, "updated_at": time.Now().UTC()}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrMentorNotFound
	}
	return nil
}
