package repository

import (
	"context"
	"errors"

	"github.com/bic-devsphere/devsphere-backend/internal/models"
)

// ErrNotFound is returned when a row does not exist.
var ErrNotFound = errors.New("repository: not found")

type Members interface {
	Create(ctx context.Context, m models.Member) (models.Member, error)
	GetByID(ctx context.Context, id string) (models.Member, error)
	List(ctx context.Context) ([]models.Member, error)
	SetStatus(ctx context.Context, id string, status models.MemberStatus) (models.Member, error)
}

type Events interface {
	Create(ctx context.Context, e models.Event) (models.Event, error)
	GetByID(ctx context.Context, id string) (models.Event, error)
	List(ctx context.Context) ([]models.Event, error)
	Update(ctx context.Context, e models.Event) (models.Event, error)
	Delete(ctx context.Context, id string) error
}

type Projects interface {
	Create(ctx context.Context, p models.Project) (models.Project, error)
	GetByID(ctx context.Context, id string) (models.Project, error)
	List(ctx context.Context) ([]models.Project, error)
	Update(ctx context.Context, p models.Project) (models.Project, error)
	Delete(ctx context.Context, id string) error
}

type Tags interface {
	GetOrCreate(ctx context.Context, name string) (models.Tag, error)
	List(ctx context.Context) ([]models.Tag, error)
	Delete(ctx context.Context, id string) error
}

type Contributors interface {
	Create(ctx context.Context, c models.Contributor) (models.Contributor, error)
	GetByUsername(ctx context.Context, username string) (models.Contributor, error)
	List(ctx context.Context) ([]models.Contributor, error)
	ListByProject(ctx context.Context, projectID string) ([]models.Contributor, error)
	Linked(ctx context.Context, projectID, contributorID string) (bool, error)
	Link(ctx context.Context, projectID, contributorID string) error
}

type Users interface {
	Create(ctx context.Context, u models.User) (models.User, error)
	GetByID(ctx context.Context, id string) (models.User, error)
	GetByEmail(ctx context.Context, email string) (models.User, error)
	List(ctx context.Context, role, search string, limit, offset int) ([]models.User, error)
	Count(ctx context.Context, role, search string) (int64, error)
	CountByRole(ctx context.Context, role models.UserRole) (int64, error)
	UpdateRole(ctx context.Context, id string, role models.UserRole) (models.User, error)
}

type AuditLogs interface {
	ListRecent(ctx context.Context, limit int) ([]models.AuditLog, error)
}
