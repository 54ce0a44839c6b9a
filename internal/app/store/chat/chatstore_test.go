package chatstore_test

import (
	"testing"

	chatstore "github.com/dalemusser/mentorhub/internal/app/store/chat"
	"github.com/dalemusser/mentorhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestAppendAndList(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := chatstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	mentorID := primitive.NewObjectID()
	menteeID := primitive.NewObjectID()

	for _, body := range []string{"hello", "how is the project going?", "pretty well"} {
		sender := mentorID
		if body == "pretty well" {
			sender = menteeID
		}
		if _, err := store.Append(ctx, mentorID, menteeID, sender, body); err != nil {
			t.Fatalf("Append failed: %v", err)
		}
	}

	msgs, err := store.List(ctx, mentorID, menteeID, primitive.NilObjectID, 50)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(msgs) != 3 {
		t.Fatalf("expected 3 messages, got %d", len(msgs))
	}
	if msgs[0].Body != "hello" || msgs[2].Body != "pretty well" {
		t.Error("expected messages in send order")
	}
	if msgs[2].SenderID != menteeID {
		t.Error("expected last message from the mentee")
	}
}

func TestList_AfterCursor(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := chatstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	mentorID := primitive.NewObjectID()
	menteeID := primitive.NewObjectID()

	first, err := store.Append(ctx, mentorID, menteeID, mentorID, "first")
	if err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	if _, err := store.Append(ctx, mentorID, menteeID, menteeID, "second"); err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	msgs, err := store.List(ctx, mentorID, menteeID, first.ID, 50)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(msgs) != 1 {
		t.Fatalf("expected 1 message after cursor, got %d", len(msgs))
	}
	if msgs[0].Body != "second" {
		t.Errorf("unexpected message %q", msgs[0].Body)
	}
}

func TestList_IsolatedPerPair(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := chatstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	mentorID := primitive.NewObjectID()
	menteeA := primitive.NewObjectID()
	menteeB := primitive.NewObjectID()

	if _, err := store.Append(ctx, mentorID, menteeA, mentorID, "for A"); err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	if _, err := store.Append(ctx, mentorID, menteeB, mentorID, "for B"); err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	msgs, err := store.List(ctx, mentorID, menteeA, primitive.NilObjectID, 50)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(msgs) != 1 || msgs[0].Body != "for A" {
		t.Errorf("expected only pair A's messages, got %+v", msgs)
	}
}
