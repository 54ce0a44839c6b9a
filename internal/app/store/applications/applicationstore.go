// internal/app/store/applications/applicationstore.go
package applicationstore

import (
	"context"
	"errors"
	"time"

	userstore "github.com/dalemusser/mentorhub/internal/app/store/users"
	"github.com/dalemusser/mentorhub/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store manages mentorship applications and keeps the applicant's derived
// role in step with review decisions.
type Store struct {
	c     *mongo.Collection
	users *userstore.Store
}

func New(db *mongo.Database) *Store {
	return &Store{
		c:     db.Collection("applications"),
		users: userstore.New(db),
	}
}

var (
	errBadType     = errors.New(`application type must be "mentor" or "mentee"`)
	errBadDecision = errors.New(`decision must be "approved" or "rejected"`)

	// ErrDuplicateApplication is returned when the user already has an
	// application of this type.
	ErrDuplicateApplication = errors.New("an application of this type already exists for this user")
	// ErrNotFound is returned when an application does not exist.
	ErrNotFound = errors.New("application not found")
)

// Submit creates a pending application. One application per (user, type),
// enforced by a unique compound index.
func (s *Store) Submit(ctx context.Context, userID primitive.ObjectID, appType, statement string) (models.Application, error) {
	if appType != models.ApplicationMentor && appType != models.ApplicationMentee {
		return models.Application{}, errBadType
	}

	now := time.Now().UTC()
	app := models.Application{
		ID:        primitive.NewObjectID(),
		UserID:    userID,
		Type:      appType,
		Status:    models.ApplicationPending,
		Statement: statement,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := s.c.InsertOne(ctx, app); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Application{}, ErrDuplicateApplication
		}
		return models.Application{}, err
	}
	return app, nil
}

// GetByID loads an application.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Application, error) {
	var app models.Application
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&app)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &app, nil
}

// ListByUser returns the user's applications (at most one per type).
func (s *Store) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Application, error) {
	cur, err := s.c.Find(ctx, bson.M{"user_id": userID})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var apps []models.Application
	if err := cur.All(ctx, &apps); err != nil {
		return nil, err
	}
	return apps, nil
}

// ListByStatus returns applications with the given status, oldest first so
// reviewers work the queue in submission order. An empty status lists all.
func (s *Store) ListByStatus(ctx context.Context, status string, limit int64) ([]models.Application, error) {
	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}).SetLimit(limit)
	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var apps []models.Application
	if err := cur.All(ctx, &apps); err != nil {
		return nil, err
	}
	return apps, nil
}

// Review records an admin decision on a pending application and refreshes
// the applicant's derived role from the set of approved applications.
func (s *Store) Review(ctx context.Context, id, reviewerID primitive.ObjectID, decision, notes string) (*models.Application, error) {
	if decision != models.ApplicationApproved && decision != models.ApplicationRejected {
		return nil, errBadDecision
	}

	now := time.Now().UTC()
	var app models.Application
	err := s.c.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{
			"status":         decision,
			"reviewer_id":    reviewerID,
			"reviewer_notes": notes,
			"reviewed_at":    now,
			"updated_at":     now,
		}},
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&app)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if err := s.refreshRole(ctx, app.UserID); err != nil {
		return nil, err
	}
	return &app, nil
}

// refreshRole recomputes the user's role from their approved applications.
// Approved applications are the single source of truth; the role field is
// only ever written here.
func (s *Store) refreshRole(ctx context.Context, userID primitive.ObjectID) error {
	cur, err := s.c.Find(ctx, bson.M{"user_id": userID, "status": models.ApplicationApproved})
	if err != nil {
		return err
	}
	defer cur.Close(ctx)

	var approved []models.Application
	if err := cur.All(ctx, &approved); err != nil {
		return err
	}

	var mentor, mentee bool
	for _, a := range approved {
		switch a.Type {
		case models.ApplicationMentor:
			mentor = true
		case models.ApplicationMentee:
			mentee = true
		}
	}
	return s.users.SetRole(ctx, userID, userstore.DeriveRole(mentor, mentee))
}
