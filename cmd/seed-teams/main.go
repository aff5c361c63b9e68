// Command seed-teams bulk-registers teams from a CSV of
// name,teamname,email rows, generating a random password for each and
// writing the credentials to a second CSV for the organizers to hand out.
package main

import (
	"context"
	"encoding/csv"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"

	"hackacure-backend/entity"
)

const passwordChars = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!@#$%^&*()"

func generatePassword(length int) string {
	b := make([]byte, length)
	for i := range b {
		b[i] = passwordChars[rand.Intn(len(passwordChars))]
	}

	return string(b)
}

func main() {
	in := flag.String("in", "users.csv", "CSV with name,teamname,email rows")
	out := flag.String("out", "users_credentials.csv", "CSV the generated credentials are written to")
	mongoAddr := flag.String("mongo-uri", "mongodb://localhost:27017", "MongoDB connection string")
	flag.Parse()

	f, err := os.Open(*in)
	if err != nil {
		fmt.Println("cannot open input:", err)
		os.Exit(1)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		fmt.Println("cannot read input:", err)
		os.Exit(1)
	}
	if len(rows) > 0 && rows[0][0] == "name" {
		rows = rows[1:]
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(*mongoAddr))
	if err != nil {
		fmt.Println("cannot connect to mongo:", err)
		os.Exit(1)
	}
	c := client.Database("hackacure").Collection("users")
	_, err = c.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "team_name", Value: 1}}, Options: options.Index().SetUnique(true)},
	})
	if err != nil {
		fmt.Println("cannot create indexes:", err)
		os.Exit(1)
	}

	o, err := os.Create(*out)
	if err != nil {
		fmt.Println("cannot open output:", err)
		os.Exit(1)
	}
	defer o.Close()

	w := csv.NewWriter(o)
	defer w.Flush()
	_ = w.Write([]string{"email", "password"})

	for _, row := range rows {
		if len(row) < 3 {
			continue
		}
		name, teamName, email := row[0], row[1], row[2]

		password := generatePassword(12)
		hash, err := bcrypt.GenerateFromPassword([]byte(password), 10)
		if err != nil {
			fmt.Println("bcrypt failure:", err)
			os.Exit(1)
		}

		now := time.Now()
		_, err = c.InsertOne(context.Background(), &entity.User{
			ID:              primitive.NewObjectID(),
			Name:            name,
			Email:           email,
			TeamName:        teamName,
			Password:        string(hash),
			JobIDs:          []string{},
			SubmissionsLeft: entity.DefaultSubmissions,
			CreatedAt:       now,
			UpdatedAt:       now,
		})
		if err != nil {
			fmt.Printf("skipping %s: %v\n", email, err)
			continue
		}

		_ = w.Write([]string{email, password})
		fmt.Printf("created %s (%s)\n", email, teamName)
	}
}
