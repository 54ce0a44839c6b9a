// internal/app/system/indexes/indexes.go
package indexes

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

/*
EnsureAll is called at startup. Each ensure* function is idempotent.
We aggregate errors so any problem is visible and startup can fail fast.
*/
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	var problems []string

	if err := ensureUsers(ctx, db); err != nil {
		problems = append(problems, "users: "+err.Error())
	}
	if err := ensureMentorshipHistory(ctx, db); err != nil {
		problems = append(problems, "mentorship_history: "+err.Error())
	}
	if err := ensureApplications(ctx, db); err != nil {
		problems = append(problems, "applications: "+err.Error())
	}
	if err := ensureChatMessages(ctx, db); err != nil {
		problems = append(problems, "chat_messages: "+err.Error())
	}
	if err := ensureAuditEvents(ctx, db); err != nil {
		problems = append(problems, "audit_events: "+err.Error())
	}

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

func ensureUsers(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("users").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			// ORCID accounts may have no email yet; empty values stay out of
			// the unique constraint.
			Keys: bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_email").
				SetPartialFilterExpression(bson.M{"email": bson.M{"$gt": ""}}),
		},
		{
			// Only ORCID accounts carry the field; the partial filter keeps
			// password accounts out of the unique constraint.
			Keys: bson.D{{Key: "orcid_id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_orcid").
				SetPartialFilterExpression(bson.M{"orcid_id": bson.M{"$exists": true}}),
		},
		{
			Keys:    bson.D{{Key: "full_name_ci", Value: 1}, {Key: "_id", Value: 1}},
			Options: options.Index().SetName("name_ci"),
		},
		{
			// ListPairs scans mentees by this field.
			Keys:    bson.D{{Key: "mentor_id", Value: 1}},
			Options: options.Index().SetName("mentor_id"),
		},
	})
	return err
}

func ensureMentorshipHistory(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("mentorship_history").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			// One ledger entry per pair, ever.
			Keys:    bson.D{{Key: "mentor_id", Value: 1}, {Key: "mentee_id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_pair"),
		},
		{
			Keys:    bson.D{{Key: "mentee_id", Value: 1}},
			Options: options.Index().SetName("mentee_id"),
		},
	})
	return err
}

func ensureApplications(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("applications").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			// One application per (user, type).
			Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "type", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_user_type"),
		},
		{
			Keys:    bson.D{{Key: "status", Value: 1}, {Key: "created_at", Value: 1}},
			Options: options.Index().SetName("status_created"),
		},
	})
	return err
}

func ensureChatMessages(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("chat_messages").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "mentor_id", Value: 1},
				{Key: "mentee_id", Value: 1},
				{Key: "_id", Value: 1},
			},
			Options: options.Index().SetName("pair_order"),
		},
	})
	return err
}

func ensureAuditEvents(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("audit_events").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "timestamp", Value: -1}},
			Options: options.Index().SetName("ts_desc"),
		},
		{
			Keys:    bson.D{{Key: "category", Value: 1}, {Key: "timestamp", Value: -1}},
			Options: options.Index().SetName("category_ts"),
		},
	})
	return err
}
