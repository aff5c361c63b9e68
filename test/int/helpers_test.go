package int_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"os"

	. "github.com/onsi/gomega"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func baseURL() string {
	if v := os.Getenv("INT_BASE_URL"); v != "" {
		return v
	}

	return "http://localhost:8080"
}

func mongoURI() string {
	if v := os.Getenv("INT_MONGO_URI"); v != "" {
		return v
	}

	return "mongodb://localhost:27017"
}

func cleanupMongo() {
	m, err := mongo.Connect(context.Background(), options.Client().ApplyURI(mongoURI()))
	Expect(err).To(BeNil())
	db := m.Database("hackacure")

	_, err = db.Collection("users").DeleteMany(context.Background(), bson.M{})
	Expect(err).To(BeNil())
}

func post(path string, body interface{}, token string) (*http.Response, map[string]interface{}) {
	buf := &bytes.Buffer{}
	Expect(json.NewEncoder(buf).Encode(body)).To(BeNil())

	req, err := http.NewRequest(http.MethodPost, baseURL()+path, buf)
	Expect(err).To(BeNil())
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	Expect(err).To(BeNil())

	out := map[string]interface{}{}
	Expect(json.NewDecoder(resp.Body).Decode(&out)).To(BeNil())
	resp.Body.Close()

	return resp, out
}

func get(path, token string) (*http.Response, map[string]interface{}) {
	req, err := http.NewRequest(http.MethodGet, baseURL()+path, nil)
	Expect(err).To(BeNil())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	Expect(err).To(BeNil())

	out := map[string]interface{}{}
	Expect(json.NewDecoder(resp.Body).Decode(&out)).To(BeNil())
	resp.Body.Close()

	return resp, out
}

type team struct {
	ID           string
	AccessToken  string
	RefreshToken string
}

func signupAndLogin(name, teamName, email string) *team {
	resp, body := post("/auth/signup", map[string]string{
		"name":     name,
		"teamName": teamName,
		"email":    email,
		"password": "testtest",
	}, "")
	Expect(resp.StatusCode).To(Equal(http.StatusCreated))
	id := body["user"].(map[string]interface{})["id"].(string)

	resp, body = post("/auth/login", map[string]string{
		"email":    email,
		"password": "testtest",
	}, "")
	Expect(resp.StatusCode).To(Equal(http.StatusOK))

	return &team{
		ID:           id,
		AccessToken:  body["accessToken"].(string),
		RefreshToken: body["refreshToken"].(string),
	}
}
