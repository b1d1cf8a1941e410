package services

import (
	"context"

	"github.com/bic-devsphere/devsphere-backend/internal/models"
	repo "github.com/bic-devsphere/devsphere-backend/internal/repository"
)

type ProjectService struct {
	projects repo.Projects
	tags     repo.Tags
}

func NewProjectService(projects repo.Projects, tags repo.Tags) *ProjectService {
	return &ProjectService{projects: projects, tags: tags}
}

func (s *ProjectService) Create(ctx context.Context, p models.Project, tagNames []string) (models.Project, error) {
	if err := p.Validate(); err != nil {
		return models.Project{}, err
	}
	tags, err := s.resolveTags(ctx, tagNames)
	if err != nil {
		return models.Project{}, err
	}
	p.Tags = tags
	return s.projects.Create(ctx, p)
}

func (s *ProjectService) Get(ctx context.Context, id string) (models.Project, error) {
	return s.projects.GetByID(ctx, id)
}

func (s *ProjectService) List(ctx context.Context) ([]models.Project, error) {
	return s.projects.List(ctx)
}

// Update replaces the project's fields; a non-nil tagNames replaces its tag
// set as well.
func (s *ProjectService) Update(ctx context.Context, p models.Project, tagNames []string) (models.Project, error) {
	if err := p.Validate(); err != nil {
		return models.Project{}, err
	}
	if tagNames != nil {
		tags, err := s.resolveTags(ctx, tagNames)
		if err != nil {
			return models.Project{}, err
		}
		p.Tags = tags
	}
	return s.projects.Update(ctx, p)
}

func (s *ProjectService) Delete(ctx context.Context, id string) error {
	return s.projects.Delete(ctx, id)
}

func (s *ProjectService) resolveTags(ctx context.Context, names []string) ([]models.Tag, error) {
	var tags []models.Tag
	for _, name := range names {
		t, err := s.tags.GetOrCreate(ctx, name)
		if err != nil {
			return nil, err
		}
		tags = append(tags, t)
	}
	return tags, nil
}
