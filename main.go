package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"hackacure-backend/cache"
	"hackacure-backend/evaluator"
	"hackacure-backend/events"
	"hackacure-backend/handler"
	"hackacure-backend/log"
	"hackacure-backend/mail"
	"hackacure-backend/store"
)

func envOrDefaultString(env, def string) string {
	if val, ok := os.LookupEnv(env); ok {
		return val
	}

	return def
}

func envOrDefaultDuration(env string, def time.Duration) time.Duration {
	if val, ok := os.LookupEnv(env); ok {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}

	return def
}

func main() {
	_ = godotenv.Load()
	log.EnsureLogger()

	listenAddr := envOrDefaultString("PORT", "8080")
	mongoAddr := envOrDefaultString("MONGO_URI", "mongodb://localhost:27017")
	redisAddr := envOrDefaultString("REDIS_ADDR", "localhost:6379")
	evaluatorURL := envOrDefaultString("EVALUATOR_URL", "http://localhost:8000")
	jwtKey := []byte(envOrDefaultString("JWT_KEY", "test-key"))
	evalTimeout := envOrDefaultDuration("EVALUATOR_TIMEOUT", 10*time.Second)
	leaderboardTTL := envOrDefaultDuration("LEADERBOARD_TTL", cache.DefaultTTL)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoAddr))
	if err != nil {
		log.Logger.Fatal("failed connecting to database", zap.Error(err))
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     redisAddr,
		Password: envOrDefaultString("REDIS_PASSWORD", ""),
		DB:       redisDB(),
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Logger.Fatal("failed connecting to redis", zap.Error(err))
	}

	events.EnsureEvents()

	users := store.NewMongoUsers(client)
	eval := evaluator.NewHTTPClient(evaluatorURL, evalTimeout)
	leaderboard := cache.NewRedisLeaderboard(rdb, leaderboardTTL)
	mailer := mail.New(
		envOrDefaultString("MAILGUN_DOMAIN", ""),
		envOrDefaultString("MAILGUN_API_KEY", ""),
		envOrDefaultString("MAILGUN_FROM", "noreply@hackacure.dev"),
	)

	authHandler := handler.NewAuthHandler(users, jwtKey, mailer)
	userHandler := handler.NewUserHandler(users, eval)
	leaderboardHandler := handler.NewLeaderboardHandler(users, leaderboard)

	r := handler.NewRouter(authHandler, userHandler, leaderboardHandler, jwtKey)

	log.Logger.Info(fmt.Sprintf("Listening on port: %s", listenAddr))
	if err := r.Run("0.0.0.0:" + listenAddr); err != nil {
		log.Logger.Fatal("couldn't serve http", zap.Error(err))
	}
}

func redisDB() int {
	n, err := strconv.Atoi(envOrDefaultString("REDIS_DB", "0"))
	if err != nil {
		return 0
	}

	return n
}
