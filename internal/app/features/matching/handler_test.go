package matching_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dalemusser/mentorhub/internal/app/features/matching"
	auditstore "github.com/dalemusser/mentorhub/internal/app/store/audit"
	matchstore "github.com/dalemusser/mentorhub/internal/app/store/matches"
	"github.com/dalemusser/mentorhub/internal/app/system/auditlog"
	"github.com/dalemusser/mentorhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) (*matching.Handler, *mongo.Database) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	audit := auditlog.New(auditstore.New(db), zap.NewNop(), auditlog.Config{Auth: "off", Admin: "db"})
	return matching.NewHandler(db, audit, zap.NewNop()), db
}

type envelope struct {
	Ok    bool            `json:"ok"`
	Error string          `json:"error,omitempty"`
	Data  json.RawMessage `json:"data,omitempty"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var e envelope
	if err := json.NewDecoder(rec.Body).Decode(&e); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return e
}

func TestHandleAssign(t *testing.T) {
	h, db := newTestHandler(t)
	admin := testutil.CreateAdmin(t, db, "admin")
	mentor := testutil.CreateMentor(t, db, "mentor1")
	mentee := testutil.CreateMentee(t, db, "mentee1")

	body := map[string]string{"mentee_id": mentee.ID.Hex(), "mentor_id": mentor.ID.Hex()}
	req := testutil.NewAuthenticatedRequest(t, http.MethodPost, "/matching/assign", body, admin)
	rec := httptest.NewRecorder()

	h.HandleAssign(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if e := decodeEnvelope(t, rec); !e.Ok {
		t.Errorf("expected ok envelope, got error %q", e.Error)
	}

	// Assignment decisions are audited.
	ctx, cancel := testutil.TestContext()
	defer cancel()
	events, err := auditstore.New(db).List(ctx, auditstore.QueryFilter{
		EventType: auditstore.EventMentorshipAssigned,
	})
	if err != nil {
		t.Fatalf("audit List failed: %v", err)
	}
	if len(events) != 1 {
		t.Errorf("expected 1 audit event, got %d", len(events))
	}
}

func TestHandleAssign_CapacityConflict(t *testing.T) {
	h, db := newTestHandler(t)
	admin := testutil.CreateAdmin(t, db, "admin")
	mentor := testutil.CreateMentor(t, db, "mentor1")

	assign := func(menteeHex string) *httptest.ResponseRecorder {
		body := map[string]string{"mentee_id": menteeHex, "mentor_id": mentor.ID.Hex()}
		req := testutil.NewAuthenticatedRequest(t, http.MethodPost, "/matching/assign", body, admin)
		rec := httptest.NewRecorder()
		h.HandleAssign(rec, req)
		return rec
	}

	for _, tag := range []string{"mentee1", "mentee2"} {
		mentee := testutil.CreateMentee(t, db, tag)
		if rec := assign(mentee.ID.Hex()); rec.Code != http.StatusOK {
			t.Fatalf("setup assign failed: %d %s", rec.Code, rec.Body.String())
		}
	}

	third := testutil.CreateMentee(t, db, "mentee3")
	rec := assign(third.ID.Hex())
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d: %s", rec.Code, rec.Body.String())
	}
	if e := decodeEnvelope(t, rec); e.Ok || e.Error == "" {
		t.Error("expected error envelope with a message")
	}
}

func TestHandleAssign_InvalidIDs(t *testing.T) {
	h, db := newTestHandler(t)
	admin := testutil.CreateAdmin(t, db, "admin")

	body := map[string]string{"mentee_id": "not-an-id", "mentor_id": "also-not"}
	req := testutil.NewAuthenticatedRequest(t, http.MethodPost, "/matching/assign", body, admin)
	rec := httptest.NewRecorder()

	h.HandleAssign(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestHandleAssign_UnknownMentor(t *testing.T) {
	h, db := newTestHandler(t)
	admin := testutil.CreateAdmin(t, db, "admin")
	mentee := testutil.CreateMentee(t, db, "mentee1")

	body := map[string]string{
		"mentee_id": mentee.ID.Hex(),
		"mentor_id": "65f000000000000000000000",
	}
	req := testutil.NewAuthenticatedRequest(t, http.MethodPost, "/matching/assign", body, admin)
	rec := httptest.NewRecorder()

	h.HandleAssign(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestHandleEnd(t *testing.T) {
	h, db := newTestHandler(t)
	admin := testutil.CreateAdmin(t, db, "admin")
	mentor, mentee := testutil.CreateAssignedPair(t, db, "mentor1", "mentee1")

	body := map[string]string{
		"mentee_id": mentee.ID.Hex(),
		"mentor_id": mentor.ID.Hex(),
		"termination_reason": "Mentorship completed",
	}
	req := testutil.NewAuthenticatedRequest(t, http.MethodPost, "/matching/end", body, admin)
	rec := httptest.NewRecorder()

	h.HandleEnd(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	ctx, cancel := testutil.TestContext()
	defer cancel()
	active, err := matchstore.New(db, zap.NewNop()).IsActivePair(ctx, mentee.ID, mentor.ID)
	if err != nil {
		t.Fatalf("IsActivePair failed: %v", err)
	}
	if active {
		t.Error("expected pair terminated")
	}
}

func TestServePairs(t *testing.T) {
	h, db := newTestHandler(t)
	admin := testutil.CreateAdmin(t, db, "admin")
	mentor, mentee := testutil.CreateAssignedPair(t, db, "mentor1", "mentee1")

	req := testutil.NewAuthenticatedRequest(t, http.MethodGet, "/matching/pairs", nil, admin)
	rec := httptest.NewRecorder()

	h.ServePairs(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	e := decodeEnvelope(t, rec)
	if !e.Ok {
		t.Fatalf("expected ok envelope, got %q", e.Error)
	}
	var pairs []struct {
		MenteeID   string `json:"mentee_id"`
		MentorID   string `json:"mentor_id"`
		MenteeName string `json:"mentee_name"`
		MentorName string `json:"mentor_name"`
	}
	if err := json.Unmarshal(e.Data, &pairs); err != nil {
		t.Fatalf("decode pairs: %v", err)
	}
	if len(pairs) != 1 {
		t.Fatalf("expected 1 pair, got %d", len(pairs))
	}
	p := pairs[0]
	if p.MenteeID != mentee.ID.Hex() || p.MentorID != mentor.ID.Hex() {
		t.Errorf("unexpected pair %+v", p)
	}
	if p.MenteeName != mentee.FullName || p.MentorName != mentor.FullName {
		t.Errorf("expected display names resolved, got %+v", p)
	}
}

func TestHandleAcknowledge(t *testing.T) {
	h, db := newTestHandler(t)
	mentor, mentee := testutil.CreateAssignedPair(t, db, "mentor1", "mentee1")
	_ = mentee

	// Set the flag the way a fresh assignment would.
	ctx, cancel := testutil.TestContext()
	defer cancel()
	if _, err := db.Collection("users").UpdateOne(ctx,
		bson.M{"_id": mentor.ID},
		bson.M{"$set": bson.M{"new_mentee_match": true}}); err != nil {
		t.Fatalf("seed flag: %v", err)
	}

	req := testutil.NewAuthenticatedRequest(t, http.MethodPost, "/matching/acknowledge", nil, mentor)
	rec := httptest.NewRecorder()

	h.HandleAcknowledge(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
}
