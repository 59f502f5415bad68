package model

import (
	"strings"
	"time"
)

// CatalogProject is one external catalog record after field defaulting.
type CatalogProject struct {
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
	Causes       []string
}

func (p CatalogProject) CausesText() string {
	return strings.Join(p.Causes, ", ")
}

func (p CatalogProject) ToUpsert() ProjectUpsert {
	return ProjectUpsert{
		ExternalID:   p.ExternalID,
		Title:        p.Title,
		Description:  p.Description,
		Creator:      p.Creator,
		Slug:         p.Slug,
		Blurb:        p.Blurb,
		AmountRaised: p.AmountRaised,
		FundingGoal:  p.FundingGoal,
		MinFunding:   p.MinFunding,
		Stage:        p.Stage,
		Type:         p.Type,
		CreatedAt:    p.CreatedAt,
		Causes:       p.CausesText(),
	}
}
