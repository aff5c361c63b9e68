package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"hackacure-backend/entity"
	"hackacure-backend/errs"
	"hackacure-backend/evaluator"
	"hackacure-backend/events"
	"hackacure-backend/log"
	"hackacure-backend/store"
)

const defaultTopK = 5

type UserHandler struct {
	users store.Users
	eval  evaluator.Client
}

func NewUserHandler(users store.Users, eval evaluator.Client) *UserHandler {
	return &UserHandler{
		users: users,
		eval:  eval,
	}
}

func (h *UserHandler) Get(c *gin.Context) {
	u, err := h.users.ByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}

	success(c, 200, gin.H{"data": u})
}

type submitRequest struct {
	SubmissionURL string `json:"submission_url"`
	TopK          int64  `json:"top_k"`
}

// Submit checks the quota, dispatches the job, and only then spends a
// submission slot. Nothing is persisted when dispatch fails.
func (h *UserHandler) Submit(c *gin.Context) {
	req := submitRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, errs.ErrURLRequired)
		return
	}

	if req.SubmissionURL == "" {
		fail(c, errs.ErrURLRequired)
		return
	}

	if req.TopK == 0 {
		req.TopK = defaultTopK
	}
	if req.TopK < 0 {
		fail(c, errs.ErrInvalidTopK)
		return
	}

	ctx := c.Request.Context()
	id := c.Param("id")

	u, err := h.users.ByID(ctx, id)
	if err != nil {
		fail(c, err)
		return
	}

	// out of quota is a no-op, not an error
	if u.SubmissionsLeft == 0 {
		success(c, 200, gin.H{"user": u})
		return
	}

	ref, err := h.eval.CreateJob(ctx, id, req.SubmissionURL, req.TopK)
	if err != nil {
		fail(c, err)
		return
	}

	updated, err := h.users.RecordSubmission(ctx, id, ref.JobID, req.SubmissionURL)
	if err != nil {
		if err == errs.ErrQuotaExhausted {
			// a concurrent submission spent the last slot between the
			// quota check and the guarded update
			log.Logger.Warn("dispatched job not recorded, quota exhausted",
				zap.String("user_id", id), zap.String("job_id", ref.JobID))
			success(c, 200, gin.H{"user": u})
			return
		}

		fail(c, err)
		return
	}

	events.PublishJob(&events.JobEvent{
		UserID:   updated.ID.Hex(),
		TeamName: updated.TeamName,
		JobID:    ref.JobID,
		URL:      req.SubmissionURL,
		At:       time.Now(),
	})

	success(c, 200, gin.H{"user": updated})
}

// Submissions pulls the team's jobs from the evaluation backend and
// refreshes the stored best score before returning them.
func (h *UserHandler) Submissions(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")

	u, err := h.users.ByID(ctx, id)
	if err != nil {
		fail(c, err)
		return
	}

	jobs, err := h.eval.TeamJobs(ctx, id)
	if err != nil {
		fail(c, err)
		return
	}

	best := bestScore(jobs)
	if err := h.users.SetBestScore(ctx, id, best); err != nil {
		fail(c, err)
		return
	}

	if best != u.BestScore {
		events.PublishScore(&events.ScoreEvent{
			UserID:    id,
			TeamName:  u.TeamName,
			BestScore: best,
			At:        time.Now(),
		})
	}

	success(c, 200, gin.H{"jobs": jobs, "bestScore": best})
}

// bestScore is the maximum total score across all jobs, 0 when there are
// none.
func bestScore(jobs []entity.Job) float64 {
	best := float64(0)
	for _, j := range jobs {
		if j.TotalScore > best {
			best = j.TotalScore
		}
	}

	return best
}
