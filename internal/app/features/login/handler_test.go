package login_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dalemusser/mentorhub/internal/app/features/login"
	auditstore "github.com/dalemusser/mentorhub/internal/app/store/audit"
	"github.com/dalemusser/mentorhub/internal/app/system/auditlog"
	"github.com/dalemusser/mentorhub/internal/app/system/auth"
	"github.com/dalemusser/mentorhub/internal/testutil"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) (*login.Handler, *mongo.Database) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	if err := auth.InitSessionStore("test-session-key-0123456789abcdef", "", "", false, zap.NewNop()); err != nil {
		t.Fatalf("init session store: %v", err)
	}
	audit := auditlog.New(auditstore.New(db), zap.NewNop(), auditlog.Config{Auth: "db", Admin: "off"})
	return login.NewHandler(db, audit, zap.NewNop()), db
}

func postJSON(t *testing.T, h http.HandlerFunc, target string, body map[string]interface{}) *httptest.ResponseRecorder {
	t.Helper()
	buf, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, target, bytes.NewReader(buf))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h(rec, req)
	return rec
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

func TestRegister_CreatesAccountAndSession(t *testing.T) {
	h, _ := newTestHandler(t)

	rec := postJSON(t, h.HandleRegister, "/auth/register", map[string]interface{}{
		"full_name": "Grace Hopper",
		"email":     "grace@example.org",
		"password":  "correct-horse",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	e := decode(t, rec)
	if !e.Ok {
		t.Fatalf("expected ok response, got error %q", e.Error)
	}
	var data struct {
		Name  string `json:"name"`
		Email string `json:"email"`
	}
	if err := json.Unmarshal(e.Data, &data); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if data.Name != "Grace Hopper" || data.Email != "grace@example.org" {
		t.Errorf("unexpected session data: %+v", data)
	}
	if len(rec.Result().Cookies()) == 0 {
		t.Error("expected a session cookie")
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	h, _ := newTestHandler(t)

	body := map[string]interface{}{
		"full_name": "First One",
		"email":     "dup@example.org",
		"password":  "correct-horse",
	}
	if rec := postJSON(t, h.HandleRegister, "/auth/register", body); rec.Code != http.StatusOK {
		t.Fatalf("first register failed: %d", rec.Code)
	}
	rec := postJSON(t, h.HandleRegister, "/auth/register", body)
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}

func TestRegister_ShortPassword(t *testing.T) {
	h, _ := newTestHandler(t)

	rec := postJSON(t, h.HandleRegister, "/auth/register", map[string]interface{}{
		"full_name": "Short Pass",
		"email":     "short@example.org",
		"password":  "tiny",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestLogin_Success(t *testing.T) {
	h, _ := newTestHandler(t)

	postJSON(t, h.HandleRegister, "/auth/register", map[string]interface{}{
		"full_name": "Alan Turing",
		"email":     "alan@example.org",
		"password":  "enigma-machine",
	})

	rec := postJSON(t, h.HandleLogin, "/auth/login", map[string]interface{}{
		"email":    "Alan@Example.org", // normalization should match
		"password": "enigma-machine",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if len(rec.Result().Cookies()) == 0 {
		t.Error("expected a session cookie")
	}
}

func TestLogin_WrongPasswordAndUnknownEmailLookAlike(t *testing.T) {
	h, _ := newTestHandler(t)

	postJSON(t, h.HandleRegister, "/auth/register", map[string]interface{}{
		"full_name": "Ada Lovelace",
		"email":     "ada@example.org",
		"password":  "analytical-engine",
	})

	wrong := postJSON(t, h.HandleLogin, "/auth/login", map[string]interface{}{
		"email":    "ada@example.org",
		"password": "not-the-password",
	})
	unknown := postJSON(t, h.HandleLogin, "/auth/login", map[string]interface{}{
		"email":    "nobody@example.org",
		"password": "whatever-here",
	})

	if wrong.Code != http.StatusUnauthorized || unknown.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401/401, got %d/%d", wrong.Code, unknown.Code)
	}
	if decode(t, wrong).Error != decode(t, unknown).Error {
		t.Error("failure messages should not reveal whether the account exists")
	}
}

func TestLogin_RateLimited(t *testing.T) {
	h, _ := newTestHandler(t)

	body := map[string]interface{}{
		"email":    "target@example.org",
		"password": "wrong-password",
	}
	var last *httptest.ResponseRecorder
	for i := 0; i < 6; i++ {
		last = postJSON(t, h.HandleLogin, "/auth/login", body)
	}
	if last.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429 after repeated attempts, got %d", last.Code)
	}
}
