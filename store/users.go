package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"hackacure-backend/entity"
	"hackacure-backend/errs"
	"hackacure-backend/log"
)

// Users is the persistence surface the handlers depend on.
type Users interface {
	Insert(ctx context.Context, u *entity.User) error
	ByID(ctx context.Context, id string) (*entity.User, error)
	ByEmail(ctx context.Context, email string) (*entity.User, error)
	ByTeamNameOrEmail(ctx context.Context, teamName, email string) (*entity.User, error)
	// RecordSubmission decrements the submission quota, appends the job id
	// and stores the submitted url in one conditional update. Returns
	// errs.ErrQuotaExhausted when the quota guard matches nothing.
	RecordSubmission(ctx context.Context, id, jobID, url string) (*entity.User, error)
	SetBestScore(ctx context.Context, id string, score float64) error
	AllByBestScore(ctx context.Context) ([]entity.User, error)
}

type MongoUsers struct {
	c *mongo.Collection
}

var _ Users = (*MongoUsers)(nil)

func NewMongoUsers(client *mongo.Client) *MongoUsers {
	c := client.Database("hackacure").Collection("users")
	_, err := c.Indexes().CreateMany(context.Background(), []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "team_name", Value: 1}}, Options: options.Index().SetUnique(true)},
	})
	if err != nil {
		log.Logger.Fatal("unable to create index", zap.Error(err))
	}

	return &MongoUsers{c: c}
}

func (s *MongoUsers) Insert(ctx context.Context, u *entity.User) error {
	_, err := s.c.InsertOne(ctx, u)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return errs.ErrAlreadyExists
		}

		log.Logger.Error("failed inserting new user", zap.Error(err))
		return errs.ErrDatabase
	}

	return nil
}

func (s *MongoUsers) ByID(ctx context.Context, id string) (*entity.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, errs.ErrInvalidID
	}

	u := &entity.User{}
	err = s.c.FindOne(ctx, bson.M{"_id": oid}).Decode(u)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, errs.ErrNotFound
		}

		log.Logger.Error("database error", zap.Error(err), zap.String("id", id))
		return nil, errs.ErrDatabase
	}

	return u, nil
}

func (s *MongoUsers) ByEmail(ctx context.Context, email string) (*entity.User, error) {
	u := &entity.User{}
	err := s.c.FindOne(ctx, bson.M{"email": email}).Decode(u)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, errs.ErrNotFound
		}

		log.Logger.Error("database error", zap.Error(err), zap.String("email", email))
		return nil, errs.ErrDatabase
	}

	return u, nil
}

func (s *MongoUsers) ByTeamNameOrEmail(ctx context.Context, teamName, email string) (*entity.User, error) {
	u := &entity.User{}
	err := s.c.FindOne(ctx, bson.M{"$or": bson.A{
		bson.M{"team_name": teamName},
		bson.M{"email": email},
	}}).Decode(u)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, errs.ErrNotFound
		}

		log.Logger.Error("database error", zap.Error(err))
		return nil, errs.ErrDatabase
	}

	return u, nil
}

// RecordSubmission is a single findOneAndUpdate guarded by
// submissions_left > 0, so two racing submissions can never drive the
// counter negative: the second one simply matches nothing.
func (s *MongoUsers) RecordSubmission(ctx context.Context, id, jobID, url string) (*entity.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, errs.ErrInvalidID
	}

	u := &entity.User{}
	err = s.c.FindOneAndUpdate(ctx,
		bson.M{"_id": oid, "submissions_left": bson.M{"$gt": 0}},
		bson.M{
			"$inc":  bson.M{"submissions_left": -1},
			"$push": bson.M{"job_ids": jobID},
			"$set":  bson.M{"url": url, "updated_at": time.Now()},
		},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(u)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			// absent user and exhausted quota both match nothing
			if _, err := s.ByID(ctx, id); err != nil {
				return nil, err
			}

			return nil, errs.ErrQuotaExhausted
		}

		log.Logger.Error("database error", zap.Error(err), zap.String("id", id))
		return nil, errs.ErrDatabase
	}

	return u, nil
}

func (s *MongoUsers) SetBestScore(ctx context.Context, id string, score float64) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return errs.ErrInvalidID
	}

	res, err := s.c.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{
		"$set": bson.M{"best_score": score, "updated_at": time.Now()},
	})
	if err != nil {
		log.Logger.Error("database error", zap.Error(err), zap.String("id", id))
		return errs.ErrDatabase
	}
	if res.MatchedCount == 0 {
		return errs.ErrNotFound
	}

	return nil
}

// AllByBestScore returns every user ordered by best score descending.
// Ties keep whatever order the database yields, no secondary sort.
func (s *MongoUsers) AllByBestScore(ctx context.Context) ([]entity.User, error) {
	cursor, err := s.c.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "best_score", Value: -1}}))
	if err != nil {
		log.Logger.Error("database error", zap.Error(err))
		return nil, errs.ErrDatabase
	}
	defer cursor.Close(ctx)

	users := []entity.User{}
	if err := cursor.All(ctx, &users); err != nil {
		log.Logger.Error("cursor error", zap.Error(err))
		return nil, errs.ErrDatabase
	}

	return users, nil
}
