package evaluator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"hackacure-backend/entity"
	"hackacure-backend/errs"
	"hackacure-backend/log"
)

// Client talks to the external evaluation backend. Jobs are created with a
// single attempt, no retries; the caller treats failure as fatal to the
// submission.
type Client interface {
	CreateJob(ctx context.Context, teamID, submissionURL string, topK int64) (*JobRef, error)
	TeamJobs(ctx context.Context, teamID string) ([]entity.Job, error)
}

type JobRef struct {
	JobID  string           `json:"job_id"`
	Status entity.JobStatus `json:"status"`
}

type createJobRequest struct {
	TeamID        string `json:"team_id"`
	SubmissionURL string `json:"submission_url"`
	TopK          int64  `json:"top_k"`
}

type HTTPClient struct {
	baseURL string
	hc      *http.Client
}

var _ Client = (*HTTPClient)(nil)

func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		hc:      &http.Client{Timeout: timeout},
	}
}

func (c *HTTPClient) CreateJob(ctx context.Context, teamID, submissionURL string, topK int64) (*JobRef, error) {
	body, err := json.Marshal(&createJobRequest{
		TeamID:        teamID,
		SubmissionURL: submissionURL,
		TopK:          topK,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/jobs", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.hc.Do(req)
	if err != nil {
		log.Logger.Error("evaluation backend unreachable", zap.Error(err))
		return nil, errs.ErrUpstream
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Logger.Error("evaluation backend refused job", zap.Int("status", resp.StatusCode))
		return nil, errs.ErrUpstream
	}

	ref := &JobRef{}
	if err := json.NewDecoder(resp.Body).Decode(ref); err != nil {
		log.Logger.Error("bad response from evaluation backend", zap.Error(err))
		return nil, errs.ErrUpstream
	}

	return ref, nil
}

// TeamJobs returns every job belonging to a team, newest first.
func (c *HTTPClient) TeamJobs(ctx context.Context, teamID string) ([]entity.Job, error) {
	url := fmt.Sprintf("%s/jobs/team/%s", c.baseURL, teamID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.hc.Do(req)
	if err != nil {
		log.Logger.Error("evaluation backend unreachable", zap.Error(err))
		return nil, errs.ErrUpstream
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Logger.Error("evaluation backend error", zap.Int("status", resp.StatusCode))
		return nil, errs.ErrUpstream
	}

	jobs := []entity.Job{}
	if err := json.NewDecoder(resp.Body).Decode(&jobs); err != nil {
		log.Logger.Error("bad response from evaluation backend", zap.Error(err))
		return nil, errs.ErrUpstream
	}

	sort.Slice(jobs, func(i, j int) bool {
		return jobs[i].CreatedAt.After(jobs[j].CreatedAt)
	})

	return jobs, nil
}
