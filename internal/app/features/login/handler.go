// internal/app/features/login/handler.go
package login

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dalemusser/mentorhub/internal/app/store/audit"
	users "github.com/dalemusser/mentorhub/internal/app/store/users"
	"github.com/dalemusser/mentorhub/internal/app/system/auditlog"
	"github.com/dalemusser/mentorhub/internal/app/system/auth"
	"github.com/dalemusser/mentorhub/internal/app/system/normalize"
	"github.com/dalemusser/mentorhub/internal/app/system/ratelimit"
	"github.com/dalemusser/mentorhub/internal/app/system/timeouts"
	"github.com/dalemusser/mentorhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves account registration and email/password sign-in.
type Handler struct {
	Users   *users.Store
	Audit   *auditlog.Logger
	Limiter *ratelimit.LoginLimiter
	Log     *zap.Logger
}

func NewHandler(db *mongo.Database, audit *auditlog.Logger, logger *zap.Logger) *Handler {
	return &Handler{
		Users:   users.New(db),
		Audit:   audit,
		Limiter: ratelimit.NewLoginLimiter(),
		Log:     logger,
	}
}

type result struct {
	Ok    bool        `json:"ok"`
	Error string      `json:"error,omitempty"`
	Data  interface{} `json:"data,omitempty"`
}

func writeOK(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(result{Ok: true, Data: data})
}

func writeFail(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(result{Ok: false, Error: msg})
}

type registerRequest struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

const minPasswordLen = 8

// HandleRegister creates a new password-based account and signs the user in.
func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeFail(w, http.StatusBadRequest, "invalid request body")
		return
	}

	req.Email = normalize.Email(req.Email)
	req.FullName = normalize.Name(req.FullName)
	switch {
	case req.FullName == "":
		writeFail(w, http.StatusBadRequest, "full name is required")
		return
	case req.Email == "":
		writeFail(w, http.StatusBadRequest, "email is required")
		return
	case len(req.Password) < minPasswordLen:
		writeFail(w, http.StatusBadRequest, "password must be at least 8 characters")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	u, err := h.Users.CreatePassword(ctx, req.FullName, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, users.ErrDuplicateEmail) {
			writeFail(w, http.StatusConflict, "an account with that email already exists")
			return
		}
		h.Log.Error("registration failed", zap.Error(err))
		writeFail(w, http.StatusInternalServerError, "operation failed; please try again")
		return
	}

	if err := h.signIn(w, r, &u); err != nil {
		h.Log.Error("session create failed", zap.Error(err))
		writeFail(w, http.StatusInternalServerError, "operation failed; please try again")
		return
	}
	h.Audit.LoginSuccess(ctx, r, u.ID, audit.EventRegistered)
	writeOK(w, sessionData(&u))
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// HandleLogin verifies an email/password pair and establishes a session.
// Failures are reported uniformly so the response does not reveal whether
// the account exists.
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeFail(w, http.StatusBadRequest, "invalid request body")
		return
	}
	req.Email = normalize.Email(req.Email)

	if allowed, reason := h.Limiter.Check(r, req.Email); !allowed {
		writeFail(w, http.StatusTooManyRequests, reason)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	u, err := h.Users.GetByEmail(ctx, req.Email)
	if err != nil {
		if !errors.Is(err, users.ErrNotFound) {
			h.Log.Error("login lookup failed", zap.Error(err))
		}
		h.Audit.LoginFailed(ctx, r, audit.EventLoginFailedUserNotFound, req.Email)
		writeFail(w, http.StatusUnauthorized, "invalid email or password")
		return
	}

	if u.AuthMethod != models.AuthMethodPassword || !h.Users.VerifyPassword(u, req.Password) {
		h.Audit.LoginFailed(ctx, r, audit.EventLoginFailedWrongPassword, req.Email)
		writeFail(w, http.StatusUnauthorized, "invalid email or password")
		return
	}

	if err := h.signIn(w, r, u); err != nil {
		h.Log.Error("session create failed", zap.Error(err))
		writeFail(w, http.StatusInternalServerError, "operation failed; please try again")
		return
	}
	h.Limiter.ResetEmail(req.Email)
	h.Audit.LoginSuccess(ctx, r, u.ID, audit.EventLoginSuccess)
	writeOK(w, sessionData(u))
}

func (h *Handler) signIn(w http.ResponseWriter, r *http.Request, u *models.User) error {
	return auth.SignIn(w, r, &auth.SessionUser{
		ID:      u.ID.Hex(),
		Name:    u.FullName,
		Email:   u.Email,
		Role:    u.Role,
		IsAdmin: u.Admin,
	})
}

func sessionData(u *models.User) map[string]interface{} {
	return map[string]interface{}{
		"id":       u.ID.Hex(),
		"name":     u.FullName,
		"email":    u.Email,
		"role":     u.Role,
		"is_admin": u.Admin,
	}
}
