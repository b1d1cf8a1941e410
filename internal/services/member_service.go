package services

import (
	"context"

	"github.com/bic-devsphere/devsphere-backend/internal/models"
	repo "github.com/bic-devsphere/devsphere-backend/internal/repository"
)

type MemberService struct {
	r repo.Members
}

func NewMemberService(r repo.Members) *MemberService { return &MemberService{r: r} }

func (s *MemberService) Create(ctx context.Context, m models.Member) (models.Member, error) {
	if err := m.Validate(); err != nil {
		return models.Member{}, err
	}
	return s.r.Create(ctx, m)
}

// Remove is a soft removal: the member stays in place with status INACTIVE.
func (s *MemberService) Remove(ctx context.Context, id string) (models.Member, error) {
	return s.r.SetStatus(ctx, id, models.MemberInactive)
}

func (s *MemberService) Status(ctx context.Context, id string) (models.MemberStatus, error) {
	m, err := s.r.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	return m.Status, nil
}

func (s *MemberService) List(ctx context.Context) ([]models.Member, error) {
	return s.r.List(ctx)
}
