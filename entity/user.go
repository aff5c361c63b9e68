package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const DefaultSubmissions = 10

type User struct {
	ID              primitive.ObjectID `bson:"_id" json:"id"`
	Name            string             `bson:"name" json:"name"`
	Email           string             `bson:"email" json:"email"`
	TeamName        string             `bson:"team_name" json:"teamName"`
	Password        string             `bson:"password" json:"-"`
	JobIDs          []string           `bson:"job_ids" json:"jobIds"`
	BestScore       float64            `bson:"best_score" json:"bestScore"`
	SubmissionsLeft int64              `bson:"submissions_left" json:"submissionsLeft"`
	URL             string             `bson:"url" json:"url"`
	CreatedAt       time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt       time.Time          `bson:"updated_at" json:"updatedAt"`
}
