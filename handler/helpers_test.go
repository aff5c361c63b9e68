package handler

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"time"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/gomega"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"hackacure-backend/cache"
	"hackacure-backend/entity"
	"hackacure-backend/evaluator"
	"hackacure-backend/jwt"
	"hackacure-backend/store"
)

var testKey = []byte("test-key")

func newTestRouter(users store.Users, eval evaluator.Client, board cache.Leaderboard) *gin.Engine {
	return NewRouter(
		NewAuthHandler(users, testKey, nil),
		NewUserHandler(users, eval),
		NewLeaderboardHandler(users, board),
		testKey,
	)
}

func do(r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		Expect(json.NewEncoder(&buf).Encode(body)).To(BeNil())
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	return w
}

func decode(w *httptest.ResponseRecorder) map[string]interface{} {
	out := map[string]interface{}{}
	Expect(json.Unmarshal(w.Body.Bytes(), &out)).To(BeNil())

	return out
}

func testUser(teamName, email string, submissionsLeft int64) *entity.User {
	hash, err := bcrypt.GenerateFromPassword([]byte("testtest"), 10)
	Expect(err).To(BeNil())

	now := time.Now()
	return &entity.User{
		ID:              primitive.NewObjectID(),
		Name:            "test",
		Email:           email,
		TeamName:        teamName,
		Password:        string(hash),
		JobIDs:          []string{},
		SubmissionsLeft: submissionsLeft,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

func accessToken(u *entity.User) string {
	ss, err := jwt.NewAccessToken(u, testKey)
	Expect(err).To(BeNil())

	return ss
}
