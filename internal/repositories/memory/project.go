package memory

import (
	"context"
	"sort"

	"granteval-go/internal/model"
	"granteval-go/internal/repositories"
)

type ProjectRepository struct {
	db *DB
}

func NewProjectRepository(db *DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

func (r *ProjectRepository) Upsert(_ context.Context, input model.ProjectUpsert) (model.UpsertResult, error) {
	r.db.mutex.Lock()
	defer r.db.mutex.Unlock()

	now := r.db.now()
	if id, ok := r.db.projectsByExt[input.ExternalID]; ok {
		project := r.db.projects[id]
		applyProject(project, input)
		project.LastSynced = now
		return model.UpsertResult{ID: id}, nil
	}

	r.db.lastProjectID++
	project := &model.Project{ID: r.db.lastProjectID, ExternalID: input.ExternalID, LastSynced: now}
	applyProject(project, input)
	r.db.projects[project.ID] = project
	r.db.projectsByExt[input.ExternalID] = project.ID
	return model.UpsertResult{ID: project.ID, Created: true}, nil
}

func (r *ProjectRepository) List(_ context.Context, limit int) ([]model.Project, error) {
	r.db.mutex.RLock()
	defer r.db.mutex.RUnlock()

	projects := make([]model.Project, 0, len(r.db.projects))
	for _, p := range r.db.projects {
		projects = append(projects, *p)
	}
	sort.Slice(projects, func(i, j int) bool { return projects[i].ID > projects[j].ID })
	if limit >= 0 && len(projects) > limit {
		projects = projects[:limit]
	}
	return projects, nil
}

func (r *ProjectRepository) GetByID(_ context.Context, id int64) (model.Project, error) {
	r.db.mutex.RLock()
	defer r.db.mutex.RUnlock()

	if p, ok := r.db.projects[id]; ok {
		return *p, nil
	}
	return model.Project{}, repositories.ErrNotFound
}

func applyProject(p *model.Project, input model.ProjectUpsert) {
	p.Title = input.Title
	p.Description = input.Description
	p.Creator = input.Creator
	p.Slug = input.Slug
	p.Blurb = input.Blurb
	p.AmountRaised = input.AmountRaised
	p.FundingGoal = input.FundingGoal
	p.MinFunding = input.MinFunding
	p.Stage = input.Stage
	p.Type = input.Type
	p.CreatedAt = input.CreatedAt
	p.Causes = input.Causes
}
