package evaluator_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"time"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"hackacure-backend/entity"
	"hackacure-backend/errs"
	"hackacure-backend/evaluator"
)

var _ = Describe("HTTPClient", func() {
	Describe("CreateJob", func() {
		Specify("happy path", func() {
			var got map[string]interface{}
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				Expect(r.Method).To(Equal(http.MethodPost))
				Expect(r.URL.Path).To(Equal("/jobs"))
				Expect(json.NewDecoder(r.Body).Decode(&got)).To(BeNil())

				w.Header().Set("Content-Type", "application/json")
				_ = json.NewEncoder(w).Encode(map[string]string{
					"job_id": "job_deadbeef",
					"status": "queued",
				})
			}))
			defer srv.Close()

			c := evaluator.NewHTTPClient(srv.URL, 5*time.Second)
			ref, err := c.CreateJob(ctxBg(), "team-1", "https://example.com/rag", 5)
			Expect(err).To(BeNil())
			Expect(ref.JobID).To(Equal("job_deadbeef"))
			Expect(ref.Status).To(Equal(entity.JobQueued))

			Expect(got["team_id"]).To(Equal("team-1"))
			Expect(got["submission_url"]).To(Equal("https://example.com/rag"))
			Expect(got["top_k"]).To(BeEquivalentTo(5))
		})
		Specify("sad path - backend refuses", func() {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadGateway)
			}))
			defer srv.Close()

			c := evaluator.NewHTTPClient(srv.URL, 5*time.Second)
			_, err := c.CreateJob(ctxBg(), "team-1", "https://example.com/rag", 5)
			Expect(err).To(Equal(errs.ErrUpstream))
		})
		Specify("sad path - backend unreachable", func() {
			c := evaluator.NewHTTPClient("http://127.0.0.1:1", time.Second)
			_, err := c.CreateJob(ctxBg(), "team-1", "https://example.com/rag", 5)
			Expect(err).To(Equal(errs.ErrUpstream))
		})
	})

	Describe("TeamJobs", func() {
		Specify("happy path - newest first", func() {
			now := time.Now()
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				Expect(r.URL.Path).To(Equal("/jobs/team/team-1"))

				w.Header().Set("Content-Type", "application/json")
				_ = json.NewEncoder(w).Encode([]entity.Job{
					{ID: "a", TotalScore: 3, CreatedAt: now.Add(-2 * time.Hour)},
					{ID: "b", TotalScore: 7, CreatedAt: now},
					{ID: "c", TotalScore: 5, CreatedAt: now.Add(-time.Hour)},
				})
			}))
			defer srv.Close()

			c := evaluator.NewHTTPClient(srv.URL, 5*time.Second)
			jobs, err := c.TeamJobs(ctxBg(), "team-1")
			Expect(err).To(BeNil())
			Expect(jobs).To(HaveLen(3))
			Expect(jobs[0].ID).To(Equal("b"))
			Expect(jobs[1].ID).To(Equal("c"))
			Expect(jobs[2].ID).To(Equal("a"))
		})
		Specify("happy path - no jobs yet", func() {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte("[]"))
			}))
			defer srv.Close()

			c := evaluator.NewHTTPClient(srv.URL, 5*time.Second)
			jobs, err := c.TeamJobs(ctxBg(), "team-1")
			Expect(err).To(BeNil())
			Expect(jobs).To(BeEmpty())
		})
		Specify("sad path - backend error", func() {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			}))
			defer srv.Close()

			c := evaluator.NewHTTPClient(srv.URL, 5*time.Second)
			_, err := c.TeamJobs(ctxBg(), "team-1")
			Expect(err).To(Equal(errs.ErrUpstream))
		})
	})
})
