package int_test

import (
	"net/http"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("Auth", func() {
	BeforeEach(func() {
		cleanupMongo()
	})

	Describe("Signup", func() {
		Specify("happy path", func() {
			resp, body := post("/auth/signup", map[string]string{
				"name":     "test",
				"teamName": "testers",
				"email":    "test@test.test",
				"password": "testtest",
			}, "")
			Expect(resp.StatusCode).To(Equal(http.StatusCreated))
			Expect(body["success"]).To(BeTrue())

			user := body["user"].(map[string]interface{})
			Expect(user["teamName"]).To(Equal("testers"))
			Expect(user["id"]).NotTo(BeEmpty())
		})
		Specify("sad path - duplicate team name", func() {
			resp, _ := post("/auth/signup", map[string]string{
				"name":     "test",
				"teamName": "testers",
				"email":    "first@test.test",
				"password": "testtest",
			}, "")
			Expect(resp.StatusCode).To(Equal(http.StatusCreated))

			resp, body := post("/auth/signup", map[string]string{
				"name":     "test",
				"teamName": "testers",
				"email":    "second@test.test",
				"password": "testtest",
			}, "")
			Expect(resp.StatusCode).To(Equal(http.StatusBadRequest))
			Expect(body["error"]).To(ContainSubstring("team already exists"))
		})
	})

	Describe("Login", func() {
		Specify("happy path", func() {
			team := signupAndLogin("test", "testers", "test@test.test")
			Expect(team.AccessToken).NotTo(BeEmpty())
			Expect(team.RefreshToken).NotTo(BeEmpty())
		})
		Specify("sad path - wrong password", func() {
			signupAndLogin("test", "testers", "test@test.test")

			resp, _ := post("/auth/login", map[string]string{
				"email":    "test@test.test",
				"password": "wrong-password",
			}, "")
			Expect(resp.StatusCode).To(Equal(http.StatusUnauthorized))
		})
	})

	Describe("Refresh", func() {
		Specify("happy path", func() {
			team := signupAndLogin("test", "testers", "test@test.test")

			resp, body := post("/auth/refresh", map[string]string{"token": team.RefreshToken}, "")
			Expect(resp.StatusCode).To(Equal(http.StatusOK))
			Expect(body["accessToken"]).NotTo(BeEmpty())
		})
	})
})
