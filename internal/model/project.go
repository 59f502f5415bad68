package model

import "time"

type Project struct {
	ID           int64
	ExternalID   string
	Title        string
	Description  string
	Creator      string
	Slug         string
	Blurb        string
	AmountRaised float64
	FundingGoal  float64
	MinFunding   float64
	Stage        string
	Type         string
	CreatedAt    time.Time
	Causes       string
	LastSynced   time.Time
}

type ProjectUpsert struct {
	ExternalID   string
	Title        string
	Description  string
	Creator      string
	Slug         string
	Blurb        string
	AmountRaised float64
	FundingGoal  float64
	MinFunding   float64
	Stage        string
	Type         string
	CreatedAt    time.Time
	Causes       string
}

type UpsertResult struct {
	ID      int64
	Created bool
}
