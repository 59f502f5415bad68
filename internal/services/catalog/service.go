package catalog

import (
	"context"
	"errors"

	"granteval-go/internal/model"
	"granteval-go/internal/repositories"
)

const (
	DefaultListLimit = 100
	MaxListLimit     = 500
)

type Service struct {
	repo repositories.ProjectRepository
}

func NewService(repo repositories.ProjectRepository) *Service {
	return &Service{repo: repo}
}

// List returns the most recently inserted projects first.
func (s *Service) List(ctx context.Context, limit int) ([]model.Project, error) {
	return s.repo.List(ctx, normalizeLimit(limit))
}

// Get reports absence through the bool, not through the error.
func (s *Service) Get(ctx context.Context, id int64) (model.Project, bool, error) {
	project, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, repositories.ErrNotFound) {
		return model.Project{}, false, nil
	}
	if err != nil {
		return model.Project{}, false, err
	}
	return project, true, nil
}

func (s *Service) IsEmpty(ctx context.Context) (bool, error) {
	projects, err := s.repo.List(ctx, 1)
	if err != nil {
		return false, err
	}
	return len(projects) == 0, nil
}

func normalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultListLimit
	}
	if limit > MaxListLimit {
		return MaxListLimit
	}
	return limit
}
