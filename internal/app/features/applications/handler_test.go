package applications_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dalemusser/mentorhub/internal/app/features/applications"
	auditstore "github.com/dalemusser/mentorhub/internal/app/store/audit"
	"github.com/dalemusser/mentorhub/internal/app/system/auditlog"
	"github.com/dalemusser/mentorhub/internal/domain/models"
	"github.com/dalemusser/mentorhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) (*applications.Handler, *mongo.Database) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	audit := auditlog.New(auditstore.New(db), zap.NewNop(), auditlog.Config{Auth: "off", Admin: "db"})
	return applications.NewHandler(db, audit, zap.NewNop()), db
}

type envelope struct {
	Ok    bool            `json:"ok"`
	Error string          `json:"error,omitempty"`
	Data  json.RawMessage `json:"data,omitempty"`
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var e envelope
	if err := json.NewDecoder(rec.Body).Decode(&e); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return e
}

func TestHandleSubmit(t *testing.T) {
	h, db := newTestHandler(t)
	applicant := testutil.CreateUser(t, db, "applicant", "")

	req := testutil.NewAuthenticatedRequest(t, http.MethodPost, "/applications", map[string]interface{}{
		"type":      models.ApplicationMentor,
		"statement": "I have <b>ten years</b> of experience.<script>x()</script>",
	}, applicant)
	rec := httptest.NewRecorder()
	h.HandleSubmit(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var app models.Application
	if err := json.Unmarshal(decode(t, rec).Data, &app); err != nil {
		t.Fatalf("decode application: %v", err)
	}
	if app.Status != models.ApplicationPending {
		t.Errorf("status = %q, want pending", app.Status)
	}
	if app.UserID != applicant.ID {
		t.Error("application not linked to applicant")
	}
	if app.Statement == "" || strings.Contains(app.Statement, "<script>") {
		t.Errorf("statement not sanitized: %q", app.Statement)
	}
}

func TestHandleSubmit_DuplicateConflict(t *testing.T) {
	h, db := newTestHandler(t)
	applicant := testutil.CreateUser(t, db, "applicant", "")

	body := map[string]interface{}{"type": models.ApplicationMentee, "statement": "keen"}
	first := httptest.NewRecorder()
	h.HandleSubmit(first, testutil.NewAuthenticatedRequest(t, http.MethodPost, "/applications", body, applicant))
	if first.Code != http.StatusOK {
		t.Fatalf("first submit failed: %d", first.Code)
	}

	second := httptest.NewRecorder()
	h.HandleSubmit(second, testutil.NewAuthenticatedRequest(t, http.MethodPost, "/applications", body, applicant))
	if second.Code != http.StatusConflict {
		t.Fatalf("expected 409 on duplicate, got %d", second.Code)
	}
}

func TestHandleReview_ApproveDerivesRole(t *testing.T) {
	h, db := newTestHandler(t)
	admin := testutil.CreateAdmin(t, db, "admin")
	applicant := testutil.CreateUser(t, db, "applicant", "")
	app := testutil.CreateApplication(t, db, applicant.ID, models.ApplicationMentor, models.ApplicationPending)

	req := testutil.NewAuthenticatedRequest(t, http.MethodPost,
		"/applications/"+app.ID.Hex()+"/review",
		map[string]interface{}{"decision": models.ApplicationApproved, "notes": "solid record"},
		admin)
	req = testutil.WithChiURLParam(req, "id", app.ID.Hex())
	rec := httptest.NewRecorder()
	h.HandleReview(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	ctx, cancel := testutil.TestContext()
	defer cancel()
	var u models.User
	if err := db.Collection("users").FindOne(ctx, bson.M{"_id": applicant.ID}).Decode(&u); err != nil {
		t.Fatalf("load applicant: %v", err)
	}
	if u.Role != models.RoleMentor {
		t.Errorf("applicant role = %q, want %q", u.Role, models.RoleMentor)
	}

	events, err := auditstore.New(db).List(ctx, auditstore.QueryFilter{
		EventType: auditstore.EventApplicationReviewed,
	})
	if err != nil {
		t.Fatalf("list audit events: %v", err)
	}
	if len(events) != 1 {
		t.Errorf("expected 1 audit event, got %d", len(events))
	}
}

func TestHandleReview_InvalidDecision(t *testing.T) {
	h, db := newTestHandler(t)
	admin := testutil.CreateAdmin(t, db, "admin")
	applicant := testutil.CreateUser(t, db, "applicant", "")
	app := testutil.CreateApplication(t, db, applicant.ID, models.ApplicationMentee, models.ApplicationPending)

	req := testutil.NewAuthenticatedRequest(t, http.MethodPost,
		"/applications/"+app.ID.Hex()+"/review",
		map[string]interface{}{"decision": "maybe"},
		admin)
	req = testutil.WithChiURLParam(req, "id", app.ID.Hex())
	rec := httptest.NewRecorder()
	h.HandleReview(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestServeQueue_PendingOnly(t *testing.T) {
	h, db := newTestHandler(t)
	admin := testutil.CreateAdmin(t, db, "admin")
	a1 := testutil.CreateUser(t, db, "one", "")
	a2 := testutil.CreateUser(t, db, "two", "")
	testutil.CreateApplication(t, db, a1.ID, models.ApplicationMentor, models.ApplicationPending)
	app2 := testutil.CreateApplication(t, db, a2.ID, models.ApplicationMentee, models.ApplicationPending)

	// Decide one so only the other stays pending.
	reviewReq := testutil.NewAuthenticatedRequest(t, http.MethodPost,
		"/applications/"+app2.ID.Hex()+"/review",
		map[string]interface{}{"decision": models.ApplicationRejected},
		admin)
	reviewReq = testutil.WithChiURLParam(reviewReq, "id", app2.ID.Hex())
	h.HandleReview(httptest.NewRecorder(), reviewReq)

	req := testutil.NewAuthenticatedRequest(t, http.MethodGet, "/applications?status=pending", nil, admin)
	rec := httptest.NewRecorder()
	h.ServeQueue(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var data struct {
		Applications []models.Application `json:"applications"`
		HasNext      bool                 `json:"has_next"`
	}
	if err := json.Unmarshal(decode(t, rec).Data, &data); err != nil {
		t.Fatalf("decode queue: %v", err)
	}
	if len(data.Applications) != 1 {
		t.Fatalf("expected 1 pending application, got %d", len(data.Applications))
	}
	if data.Applications[0].UserID != a1.ID {
		t.Error("wrong application left pending")
	}
}
