// internal/app/system/authz/authz.go
package authz

import (
	"net/http"
	"strings"

	"github.com/dalemusser/mentorhub/internal/app/system/auth"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserCtx returns the user's mentorship role (lowercased), name, Mongo
// ObjectID, and a found flag. If no user is present in context or the user
// ID is malformed, it returns "", "", NilObjectID, false, so callers can
// trust that ok=true means a valid, authenticated user with a valid ObjectID.
func UserCtx(r *http.Request) (role string, name string, userID primitive.ObjectID, ok bool) {
	user, ok := auth.CurrentUser(r)
	if !ok {
		return "", "", primitive.NilObjectID, false
	}
	userID, err := primitive.ObjectIDFromHex(user.ID)
	if err != nil {
		// Malformed user ID in session - fail closed.
		return "", "", primitive.NilObjectID, false
	}
	return strings.ToLower(user.Role), user.Name, userID, true
}

// IsAdmin reports whether the current request's user is an admin.
func IsAdmin(r *http.Request) bool {
	user, ok := auth.CurrentUser(r)
	return ok && user.IsAdmin
}

// IsMentor reports whether the current user's derived role includes mentor.
func IsMentor(r *http.Request) bool {
	role, _, _, ok := UserCtx(r)
	return ok && (role == "mentor" || role == "mentor/mentee")
}

// IsMentee reports whether the current user's derived role includes mentee.
func IsMentee(r *http.Request) bool {
	role, _, _, ok := UserCtx(r)
	return ok && (role == "mentee" || role == "mentor/mentee")
}
