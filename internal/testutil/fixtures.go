// internal/testutil/fixtures.go
package testutil

import (
	"testing"
	"time"

	"github.com/dalemusser/mentorhub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// CreateUser inserts a user document and returns it. Name and email are
// derived from the given tag so fixtures stay unique within a test.
func CreateUser(t *testing.T, db *mongo.Database, tag, role string) models.User {
	t.Helper()

	now := time.Now().UTC()
	u := models.User{
		ID:         primitive.NewObjectID(),
		FullName:   "Test " + tag,
		FullNameCI: text.Fold("Test " + tag),
		Email:      tag + "@example.org",
		AuthMethod: "password",
		Role:       role,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	ctx, cancel := TestContext()
	defer cancel()

	if _, err := db.Collection("users").InsertOne(ctx, u); err != nil {
		t.Fatalf("insert user fixture %q: %v", tag, err)
	}
	return u
}

// CreateAdmin inserts an admin user.
func CreateAdmin(t *testing.T, db *mongo.Database, tag string) models.User {
	t.Helper()

	u := CreateUser(t, db, tag, "")
	ctx, cancel := TestContext()
	defer cancel()

	if _, err := db.Collection("users").UpdateOne(ctx,
		bson.M{"_id": u.ID}, bson.M{"$set": bson.M{"admin": true}}); err != nil {
		t.Fatalf("promote admin fixture %q: %v", tag, err)
	}
	u.Admin = true
	return u
}

// CreateMentor inserts a user with the mentor role.
func CreateMentor(t *testing.T, db *mongo.Database, tag string) models.User {
	t.Helper()
	return CreateUser(t, db, tag, models.RoleMentor)
}

// CreateMentee inserts a user with the mentee role.
func CreateMentee(t *testing.T, db *mongo.Database, tag string) models.User {
	t.Helper()
	return CreateUser(t, db, tag, models.RoleMentee)
}

// CreateAssignedPair inserts a mentor and mentee already linked to each
// other, with an ongoing history entry. Returns (mentor, mentee).
func CreateAssignedPair(t *testing.T, db *mongo.Database, mentorTag, menteeTag string) (models.User, models.User) {
	t.Helper()

	mentor := CreateMentor(t, db, mentorTag)
	mentee := CreateMentee(t, db, menteeTag)

	ctx, cancel := TestContext()
	defer cancel()

	if _, err := db.Collection("users").UpdateOne(ctx,
		bson.M{"_id": mentor.ID},
		bson.M{"$push": bson.M{"mentee_ids": mentee.ID}}); err != nil {
		t.Fatalf("link mentor fixture: %v", err)
	}
	if _, err := db.Collection("users").UpdateOne(ctx,
		bson.M{"_id": mentee.ID},
		bson.M{"$set": bson.M{"mentor_id": mentor.ID}}); err != nil {
		t.Fatalf("link mentee fixture: %v", err)
	}
	CreateHistoryEntry(t, db, mentor.ID, mentee.ID, models.MentorshipOngoing)

	mentor.MenteeIDs = append(mentor.MenteeIDs, mentee.ID)
	mentee.MentorID = &mentor.ID
	return mentor, mentee
}

// CreateHistoryEntry inserts a mentorship ledger entry.
func CreateHistoryEntry(t *testing.T, db *mongo.Database, mentorID, menteeID primitive.ObjectID, status string) models.MentorshipHistory {
	t.Helper()

	now := time.Now().UTC()
	entry := models.MentorshipHistory{
		ID:        primitive.NewObjectID(),
		MentorID:  mentorID,
		MenteeID:  menteeID,
		Status:    status,
		StartedAt: now,
	}
	if status == models.MentorshipEnded {
		ended := now
		entry.EndedAt = &ended
	}

	ctx, cancel := TestContext()
	defer cancel()

	if _, err := db.Collection("mentorship_history").InsertOne(ctx, entry); err != nil {
		t.Fatalf("insert history fixture: %v", err)
	}
	return entry
}

// CreateApplication inserts a mentor/mentee application for the user.
func CreateApplication(t *testing.T, db *mongo.Database, userID primitive.ObjectID, appType, status string) models.Application {
	t.Helper()

	now := time.Now().UTC()
	a := models.Application{
		ID:        primitive.NewObjectID(),
		UserID:    userID,
		Type:      appType,
		Status:    status,
		Statement: "I would like to participate.",
		CreatedAt: now,
		UpdatedAt: now,
	}

	ctx, cancel := TestContext()
	defer cancel()

	if _, err := db.Collection("applications").InsertOne(ctx, a); err != nil {
		t.Fatalf("insert application fixture: %v", err)
	}
	return a
}
