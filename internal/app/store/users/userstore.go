// internal/app/store/users/userstore.go
package userstore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/mentorhub/internal/app/system/normalize"
	"github.com/dalemusser/mentorhub/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("users")}
}

var (
	// ErrDuplicateEmail is returned when attempting to create a user with an email that already exists.
	ErrDuplicateEmail = errors.New("a user with this email already exists")
	// ErrNotFound is returned when a lookup or update targets a user that does not exist.
	ErrNotFound = errors.New("user not found")

	errEmailNeeded = errors.New("email is required")
)

// GetByID loads a user by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&u); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

// GetByEmail looks up a user by case-insensitive email.
func (s *Store) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"email": normalize.Email(email)}).Decode(&u); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

// GetByORCID looks up a user by their ORCID iD.
func (s *Store) GetByORCID(ctx context.Context, orcid string) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"orcid_id": orcid}).Decode(&u); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

// Create inserts a new user after normalizing fields. The caller supplies
// either a password hash (password accounts) or an ORCID iD (OAuth accounts).
func (s *Store) Create(ctx context.Context, u models.User) (models.User, error) {
	u.ID = primitive.NewObjectID()
	u.FullName = normalize.Name(u.FullName)
	u.FullNameCI = text.Fold(u.FullName)
	u.Email = normalize.Email(u.Email)
	u.AuthMethod = normalize.AuthMethod(u.AuthMethod)
	// ORCID accounts may arrive without an email; everyone else needs one.
	if u.Email == "" && u.ORCIDiD == "" {
		return models.User{}, errEmailNeeded
	}
	if u.Status == "" {
		u.Status = "active"
	}

	now := time.Now().UTC()
	u.CreatedAt = now
	u.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, u); err != nil {
		if wafflemongo.IsDup(err) {
			return models.User{}, ErrDuplicateEmail
		}
		return models.User{}, err
	}
	return u, nil
}

// CreatePassword creates a user with a bcrypt-hashed password.
func (s *Store) CreatePassword(ctx context.Context, fullName, email, password string) (models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), 12)
	if err != nil {
		return models.User{}, err
	}
	return s.Create(ctx, models.User{
		FullName:     fullName,
		Email:        email,
		AuthMethod:   models.AuthMethodPassword,
		PasswordHash: string(hash),
	})
}

// VerifyPassword checks a candidate password against the stored hash.
func (s *Store) VerifyPassword(u *models.User, password string) bool {
	if u.PasswordHash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// UpsertORCID finds the user with the given ORCID iD or creates one from the
// OAuth profile. Existing accounts keep their stored name and email.
func (s *Store) UpsertORCID(ctx context.Context, orcid, fullName, email string) (*models.User, error) {
	u, err := s.GetByORCID(ctx, orcid)
	if err == nil {
		return u, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}
	created, err := s.Create(ctx, models.User{
		FullName:   fullName,
		Email:      email,
		AuthMethod: models.AuthMethodORCID,
		ORCIDiD:    orcid,
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// ProfileUpdate holds the user-editable profile fields.
type ProfileUpdate struct {
	FullName    string
	Affiliation string
	Bio string // sanitize before calling
}

// UpdateProfile updates a user's own profile fields.
func (s *Store) UpdateProfile(ctx context.Context, id primitive.ObjectID, upd ProfileUpdate) error {
	set := bson.M{
		"full_name":    normalize.Name(upd.FullName),
		"full_name_ci": text.Fold(upd.FullName),
		"affiliation":  upd.Affiliation,
		"bio":          upd.Bio,
		"updated_at":   time.Now().UTC(),
	}
	res, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// DeriveRole computes the mentorship role from approved applications.
// It is the only place the role string is produced, so the derived field
// can never disagree with the application data it summarizes.
func DeriveRole(hasMentorApproval, hasMenteeApproval bool) string {
	switch {
	case hasMentorApproval && hasMenteeApproval:
		return models.RoleMentorMentee
	case hasMentorApproval:
		return models.RoleMentor
	case hasMenteeApproval:
		return models.RoleMentee
	default:
		return models.RoleNone
	}
}

// SetRole writes the derived role. Callers compute it with DeriveRole.
func (s *Store) SetRole(ctx context.Context, id primitive.ObjectID, role string) error {
	res, err := s.c.UpdateOne(ctx, bson.M{"_id": id},
		bson.M{"$set": bson.M{"role": role, "updated_at": time.Now().UTC()}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// List returns users ordered by folded name, filtered by an optional
// case-insensitive name prefix, with keyset pagination support.
func (s *Store) List(ctx context.Context, namePrefix string, afterNameCI string, afterID primitive.ObjectID, limit int64) ([]models.User, error) {
	filter := bson.M{}
	if namePrefix != "" {
		filter["full_name_ci"] = bson.M{"$gte": text.Fold(namePrefix), "$lt": text.Fold(namePrefix) + "￿"}
	}
	if afterNameCI != "" {
		filter["$or"] = bson.A{
			bson.M{"full_name_ci": bson.M{"$gt": afterNameCI}},
			bson.M{"full_name_ci": afterNameCI, "_id": bson.M{"$gt": afterID}},
		}
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "full_name_ci", Value: 1}, {Key: "_id", Value: 1}}).
		SetLimit(limit)
	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var users []models.User
	if err := cur.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// EnsureAdmin promotes (or creates) the account with the given email to
// admin. Used at startup so a fresh deployment always has an admin.
func (s *Store) EnsureAdmin(ctx context.Context, email string) error {
	email = normalize.Email(email)
	if email == "" {
		return nil
	}
	now := time.Now().UTC()
	_, err := s.c.UpdateOne(ctx,
		bson.M{"email": email},
		bson.M{
			"$set": bson.M{"admin": true, "updated_at": now},
			"$setOnInsert": bson.M{
				"_id":        primitive.NewObjectID(),
				"full_name":  "",
				"full_name_ci": "",
				"email":      email,
				"status":     "active",
				"created_at": now,
			},
		},
		options.Update().SetUpsert(true))
	return err
}
