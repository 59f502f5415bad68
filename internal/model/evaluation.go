package model

import "time"

const (
	MinScore = 0
	MaxScore = 10
)

type Evaluation struct {
	ID         int64
	ReviewerID string
	ProjectID  int64
	TeamScore  float64
	IdeaScore  float64
	Notes      *string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

type EvaluationUpsert struct {
	ReviewerID string
	ProjectID  int64
	TeamScore  float64
	IdeaScore  float64
	Notes      *string
}

// ScoreSummary is the community score of one dimension.
type ScoreSummary struct {
	Average float64
	Count   int
}

type AggregateScores struct {
	TeamScore ScoreSummary
	IdeaScore ScoreSummary
}
