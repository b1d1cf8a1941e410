package services

import (
	"context"

	"github.com/bic-devsphere/devsphere-backend/internal/models"
	repo "github.com/bic-devsphere/devsphere-backend/internal/repository"
)

type AuditService struct {
	r repo.AuditLogs
}

func NewAuditService(r repo.AuditLogs) *AuditService { return &AuditService{r: r} }

func (s *AuditService) Recent(ctx context.Context, limit int) ([]models.AuditLog, error) {
	if limit < 1 || limit > 500 {
		limit = 50
	}
	return s.r.ListRecent(ctx, limit)
}
