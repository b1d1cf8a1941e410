package services

import (
	"context"

	"github.com/bic-devsphere/devsphere-backend/internal/models"
	repo "github.com/bic-devsphere/devsphere-backend/internal/repository"
)

type UserService struct {
	r repo.Users
}

func NewUserService(r repo.Users) *UserService { return &UserService{r: r} }

type UserPage struct {
	Users       []models.User `json:"users"`
	CurrentPage int           `json:"current_page"`
	TotalPages  int           `json:"total_pages"`
	TotalCount  int64         `json:"total_count"`
	HasNext     bool          `json:"has_next_page"`
	HasPrev     bool          `json:"has_prev_page"`
	Limit       int           `json:"limit"`
}

func (s *UserService) List(ctx context.Context, page, limit int, role, search string) (UserPage, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}
	total, err := s.r.Count(ctx, role, search)
	if err != nil {
		return UserPage{}, err
	}
	users, err := s.r.List(ctx, role, search, limit, (page-1)*limit)
	if err != nil {
		return UserPage{}, err
	}
	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return UserPage{
		Users:       users,
		CurrentPage: page,
		TotalPages:  totalPages,
		TotalCount:  total,
		HasNext:     page < totalPages,
		HasPrev:     page > 1,
		Limit:       limit,
	}, nil
}

func (s *UserService) Get(ctx context.Context, id string) (models.User, error) {
	return s.r.GetByID(ctx, id)
}

func (s *UserService) Role(ctx context.Context, id string) (models.UserRole, error) {
	u, err := s.r.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	return u.Role, nil
}

func (s *UserService) UpdateRole(ctx context.Context, id string, role models.UserRole) (models.User, error) {
	return s.r.UpdateRole(ctx, id, role)
}
