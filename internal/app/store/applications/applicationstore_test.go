package applicationstore_test

import (
	"errors"
	"testing"

	applicationstore "github.com/dalemusser/mentorhub/internal/app/store/applications"
	userstore "github.com/dalemusser/mentorhub/internal/app/store/users"
	"github.com/dalemusser/mentorhub/internal/app/system/indexes"
	"github.com/dalemusser/mentorhub/internal/domain/models"
	"github.com/dalemusser/mentorhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestSubmit_CreatesPending(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := applicationstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	u := testutil.CreateUser(t, db, "applicant", "")

	app, err := store.Submit(ctx, u.ID, models.ApplicationMentor, "I have ten years of experience.")
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	if app.Status != models.ApplicationPending {
		t.Errorf("expected pending, got %q", app.Status)
	}
}

func TestSubmit_RejectsBadType(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := applicationstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	_, err := store.Submit(ctx, primitive.NewObjectID(), "reviewer", "statement")
	if err == nil {
		t.Fatal("expected error for invalid application type")
	}
}

func TestSubmit_DuplicatePerType(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := applicationstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	u := testutil.CreateUser(t, db, "applicant", "")

	if _, err := store.Submit(ctx, u.ID, models.ApplicationMentor, "first"); err != nil {
		t.Fatalf("first Submit failed: %v", err)
	}
	_, err := store.Submit(ctx, u.ID, models.ApplicationMentor, "second")
	if !errors.Is(err, applicationstore.ErrDuplicateApplication) {
		t.Fatalf("expected ErrDuplicateApplication, got %v", err)
	}

	// A different type is still allowed.
	if _, err := store.Submit(ctx, u.ID, models.ApplicationMentee, "other side"); err != nil {
		t.Fatalf("Submit of other type failed: %v", err)
	}
}

func TestReview_ApproveSetsRole(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := applicationstore.New(db)
	users := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	u := testutil.CreateUser(t, db, "applicant", "")
	admin := testutil.CreateAdmin(t, db, "reviewer")

	app, err := store.Submit(ctx, u.ID, models.ApplicationMentor, "statement")
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	reviewed, err := store.Review(ctx, app.ID, admin.ID, models.ApplicationApproved, "strong application")
	if err != nil {
		t.Fatalf("Review failed: %v", err)
	}
	if reviewed.Status != models.ApplicationApproved {
		t.Errorf("expected approved, got %q", reviewed.Status)
	}
	if reviewed.ReviewerID == nil || *reviewed.ReviewerID != admin.ID {
		t.Error("expected reviewer recorded")
	}
	if reviewed.ReviewedAt == nil {
		t.Error("expected reviewed_at set")
	}

	got, err := users.GetByID(ctx, u.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Role != models.RoleMentor {
		t.Errorf("expected derived role %q, got %q", models.RoleMentor, got.Role)
	}
}

func TestReview_BothApprovalsDeriveCombinedRole(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := applicationstore.New(db)
	users := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	u := testutil.CreateUser(t, db, "applicant", "")
	admin := testutil.CreateAdmin(t, db, "reviewer")

	for _, appType := range []string{models.ApplicationMentor, models.ApplicationMentee} {
		app, err := store.Submit(ctx, u.ID, appType, "statement")
		if err != nil {
			t.Fatalf("Submit %s failed: %v", appType, err)
		}
		if _, err := store.Review(ctx, app.ID, admin.ID, models.ApplicationApproved, ""); err != nil {
			t.Fatalf("Review %s failed: %v", appType, err)
		}
	}

	got, err := users.GetByID(ctx, u.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Role != models.RoleMentorMentee {
		t.Errorf("expected %q, got %q", models.RoleMentorMentee, got.Role)
	}
}

func TestReview_RejectLeavesRoleEmpty(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := applicationstore.New(db)
	users := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	u := testutil.CreateUser(t, db, "applicant", "")
	admin := testutil.CreateAdmin(t, db, "reviewer")

	app, err := store.Submit(ctx, u.ID, models.ApplicationMentee, "statement")
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	if _, err := store.Review(ctx, app.ID, admin.ID, models.ApplicationRejected, "not yet"); err != nil {
		t.Fatalf("Review failed: %v", err)
	}

	got, err := users.GetByID(ctx, u.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Role != models.RoleNone {
		t.Errorf("expected empty role, got %q", got.Role)
	}
}

func TestReview_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := applicationstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	_, err := store.Review(ctx, primitive.NewObjectID(), primitive.NewObjectID(), models.ApplicationApproved, "")
	if !errors.Is(err, applicationstore.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListByStatus_OldestFirst(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := applicationstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	first := testutil.CreateUser(t, db, "first", "")
	second := testutil.CreateUser(t, db, "second", "")

	if _, err := store.Submit(ctx, first.ID, models.ApplicationMentor, "one"); err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	if _, err := store.Submit(ctx, second.ID, models.ApplicationMentor, "two"); err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	queue, err := store.ListByStatus(ctx, models.ApplicationPending, 10)
	if err != nil {
		t.Fatalf("ListByStatus failed: %v", err)
	}
	if len(queue) != 2 {
		t.Fatalf("expected 2 pending applications, got %d", len(queue))
	}
	if queue[0].UserID != first.ID {
		t.Error("expected oldest application first")
	}
}
