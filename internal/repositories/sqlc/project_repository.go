package sqlc

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	db "granteval-go/internal/db/sqlc"
	"granteval-go/internal/model"
	"granteval-go/internal/repositories"
)

type ProjectRepository struct {
	queries *db.Queries
}

func NewProjectRepository(queries *db.Queries) *ProjectRepository {
	return &ProjectRepository{queries: queries}
}

func (r *ProjectRepository) Upsert(ctx context.Context, input model.ProjectUpsert) (model.UpsertResult, error) {
	row, err := r.queries.UpsertProject(ctx, db.UpsertProjectParams{
		ExternalID:   input.ExternalID,
		Title:        input.Title,
		Description:  input.Description,
		Creator:      input.Creator,
		Slug:         input.Slug,
		Blurb:        input.Blurb,
		AmountRaised: input.AmountRaised,
		FundingGoal:  input.FundingGoal,
		MinFunding:   input.MinFunding,
		Stage:        input.Stage,
		Type:         input.Type,
		CreatedAt:    pgtype.Timestamptz{Time: input.CreatedAt, Valid: true},
		Causes:       input.Causes,
	})
	if err != nil {
		return model.UpsertResult{}, fmt.Errorf("upsert project %s: %w", input.ExternalID, err)
	}
	return model.UpsertResult{ID: row.ID, Created: row.Inserted}, nil
}

func (r *ProjectRepository) List(ctx context.Context, limit int) ([]model.Project, error) {
	rows, err := r.queries.ListProjects(ctx, int32(limit))
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	projects := make([]model.Project, 0, len(rows))
	for _, row := range rows {
		projects = append(projects, mapProject(row))
	}
	return projects, nil
}

func (r *ProjectRepository) GetByID(ctx context.Context, id int64) (model.Project, error) {
	project, err := r.queries.GetProject(ctx, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Project{}, repositories.ErrNotFound
	}
	if err != nil {
		return model.Project{}, fmt.Errorf("get project %d: %w", id, err)
	}
	return mapProject(project), nil
}

func mapProject(project db.Project) model.Project {
	return model.Project{
		ID:           project.ID,
		ExternalID:   project.ExternalID,
		Title:        project.Title,
		Description:  project.Description,
		Creator:      project.Creator,
		Slug:         project.Slug,
		Blurb:        project.Blurb,
		AmountRaised: project.AmountRaised,
		FundingGoal:  project.FundingGoal,
		MinFunding:   project.MinFunding,
		Stage:        project.Stage,
		Type:         project.Type,
		CreatedAt:    timeOf(project.CreatedAt),
		Causes:       project.Causes,
		LastSynced:   timeOf(project.LastSynced),
	}
}

func timeOf(ts pgtype.Timestamptz) time.Time {
	if !ts.Valid {
		return time.Time{}
	}
	return ts.Time
}
