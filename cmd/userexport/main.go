// Command userexport writes a CSV snapshot of all users and their current
// mentorship assignments. Intended for program staff reporting.
//
// Usage:
//
//	userexport -uri mongodb://localhost:27017 -db mentor_hub [-out users.csv]
//
// When -out is omitted, a unique filename is generated in the working
// directory.
package main

import (
	"context"
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/dalemusser/mentorhub/internal/domain/models"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func main() {
	uri := flag.String("uri", "mongodb://localhost:27017", "MongoDB connection URI")
	dbName := flag.String("db", "mentor_hub", "database name")
	out := flag.String("out", "", "output file (default: generated name)")
	flag.Parse()

	if err := run(*uri, *dbName, *out); err != nil {
		log.Fatal(err)
	}
}

func run(uri, dbName, out string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer func() { _ = client.Disconnect(context.Background()) }()

	users, err := loadUsers(ctx, client.Database(dbName))
	if err != nil {
		return err
	}

	if out == "" {
		out = fmt.Sprintf("userexport-%s.csv", uuid.NewString())
	}

	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("create %s: %w", out, err)
	}
	defer f.Close()

	if err := writeCSV(f, users); err != nil {
		return fmt.Errorf("write %s: %w", out, err)
	}

	log.Printf("wrote %d users to %s", len(users), out)
	return nil
}

func loadUsers(ctx context.Context, db *mongo.Database) ([]models.User, error) {
	cur, err := db.Collection("users").Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "full_name_ci", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("find users: %w", err)
	}
	defer cur.Close(ctx)

	var users []models.User
	if err := cur.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("decode users: %w", err)
	}
	return users, nil
}

func writeCSV(f *os.File, users []models.User) error {
	// Names are resolved from the same snapshot so mentor/mentee columns
	// stay consistent with the id columns.
	names := make(map[primitive.ObjectID]string, len(users))
	for _, u := range users {
		names[u.ID] = u.FullName
	}

	w := csv.NewWriter(f)
	header := []string{
		"id", "full_name", "email", "role", "admin", "affiliation",
		"mentor_id", "mentor_name", "mentee_count", "mentee_ids", "created_at",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, u := range users {
		mentorID, mentorName := "", ""
		if u.MentorID != nil {
			mentorID = u.MentorID.Hex()
			mentorName = names[*u.MentorID]
		}

		menteeIDs := ""
		for i, id := range u.MenteeIDs {
			if i > 0 {
				menteeIDs += " "
			}
			menteeIDs += id.Hex()
		}

		row := []string{
			u.ID.Hex(),
			u.FullName,
			u.Email,
			u.Role,
			strconv.FormatBool(u.Admin),
			u.Affiliation,
			mentorID,
			mentorName,
			strconv.Itoa(len(u.MenteeIDs)),
			menteeIDs,
			u.CreatedAt.UTC().Format(time.RFC3339),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}
