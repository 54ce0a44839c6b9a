// internal/domain/models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Mentorship roles. Role is derived from approved applications; it is never
// authoritative on its own.
const (
	RoleMentor       = "mentor"
	RoleMentee       = "mentee"
	RoleMentorMentee = "mentor/mentee"
	RoleNone         = ""
)

// MaxMentees is the maximum number of concurrent mentees a mentor may hold.
const MaxMentees = 2

// User represents every account in the directory: admins, mentors, mentees,
// and people who have not applied for either role yet.
//
// NOTE:
//   - MentorID is meaningful only on the mentee side of a pair.
//   - MenteeIDs is meaningful only on the mentor side; its length never
//     exceeds MaxMentees.
//   - A pair is active only when both directions agree: the mentee's
//     MentorID names the mentor AND the mentor's MenteeIDs contains the
//     mentee. Listings must verify both directions.
type User struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FullName   string             `bson:"full_name" json:"full_name"`
	FullNameCI string             `bson:"full_name_ci" json:"full_name_ci"` // lowercase, diacritics-stripped
	Email      string             `bson:"email" json:"email"`

	// Authentication
	AuthMethod   string `bson:"auth_method,omitempty" json:"auth_method,omitempty"` // "password" | "orcid"
	PasswordHash string `bson:"password_hash,omitempty" json:"-"`
	ORCIDiD      string `bson:"orcid_id,omitempty" json:"orcid_id,omitempty"`

	Admin  bool   `bson:"admin,omitempty" json:"admin,omitempty"`
	Role   string `bson:"role,omitempty" json:"role,omitempty"` // derived, see userstore.DeriveRole
	Status string `bson:"status,omitempty" json:"status,omitempty"`

	// Profile
	Affiliation string `bson:"affiliation,omitempty" json:"affiliation,omitempty"`
	Bio         string `bson:"bio,omitempty" json:"bio,omitempty"`

	// Matching state
	MentorID       *primitive.ObjectID  `bson:"mentor_id,omitempty" json:"mentor_id,omitempty"`
	MenteeIDs      []primitive.ObjectID `bson:"mentee_ids,omitempty" json:"mentee_ids,omitempty"`
	NewMenteeMatch bool                 `bson:"new_mentee_match,omitempty" json:"new_mentee_match,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// HasMentee reports whether the user's MenteeIDs contains the given id.
func (u *User) HasMentee(id primitive.ObjectID) bool {
	for _, m := range u.MenteeIDs {
		if m == id {
			return true
		}
	}
	return false
}
