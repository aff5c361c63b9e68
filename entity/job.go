package entity

import "time"

type JobStatus string

const (
	JobNew       JobStatus = "new"
	JobQueued    JobStatus = "queued"
	JobRunning   JobStatus = "running"
	JobCompleted JobStatus = "completed"
	JobFailed    JobStatus = "failed"
)

type ScoreSummary struct {
	AvgAnswerCorrectness float64 `json:"avg_answer_correctness"`
	AvgContextRelevance  float64 `json:"avg_context_relevance"`
	AvgAnswerRelevancy   float64 `json:"avg_answer_relevancy"`
	AvgFaithfulness      float64 `json:"avg_faithfulness"`
	OverallScore         float64 `json:"overall_score"`
}

type MetricBreakdown struct {
	ContextRelevance  float64 `json:"context_relevance"`
	AnswerCorrectness float64 `json:"answer_correctness"`
	AnswerRelevancy   float64 `json:"answer_relevancy"`
	Faithfulness      float64 `json:"faithfulness"`
}

type CaseResult struct {
	Question        string          `json:"question"`
	GroundTruth     string          `json:"ground_truth"`
	PredictedAnswer string          `json:"predicted_answer,omitempty"`
	Metrics         MetricBreakdown `json:"metrics"`
	Error           string          `json:"error,omitempty"`
}

// Job mirrors the evaluation backend's job document. It is created through
// the dispatcher and mutated exclusively by the backend afterwards; this
// service only ever decodes it.
type Job struct {
	ID             string        `json:"_id"`
	TeamID         string        `json:"team_id"`
	SubmissionURL  string        `json:"submission_url"`
	Status         JobStatus     `json:"status"`
	TotalCases     int64         `json:"total_cases"`
	ProcessedCases int64         `json:"processed_cases"`
	TopK           int64         `json:"top_k"`
	TotalScore     float64       `json:"total_score"`
	Scores         *ScoreSummary `json:"scores,omitempty"`
	Results        []CaseResult  `json:"results"`
	CreatedAt      time.Time     `json:"created_at"`
	StartedAt      *time.Time    `json:"started_at,omitempty"`
	FinishedAt     *time.Time    `json:"finished_at,omitempty"`
	ErrorMessage   string        `json:"error_message,omitempty"`
}
