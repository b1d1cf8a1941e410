package services

import (
	"context"

	"github.com/bic-devsphere/devsphere-backend/internal/models"
	repo "github.com/bic-devsphere/devsphere-backend/internal/repository"
)

type TagService struct {
	r repo.Tags
}

func NewTagService(r repo.Tags) *TagService { return &TagService{r: r} }

func (s *TagService) Create(ctx context.Context, name string) (models.Tag, error) {
	return s.r.GetOrCreate(ctx, name)
}

func (s *TagService) List(ctx context.Context) ([]models.Tag, error) {
	return s.r.List(ctx)
}

func (s *TagService) Delete(ctx context.Context, id string) error {
	return s.r.Delete(ctx, id)
}
