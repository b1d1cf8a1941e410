package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/bic-devsphere/devsphere-backend/internal/models"
	"github.com/bic-devsphere/devsphere-backend/internal/store"
)

type contributorsRepo struct{ s store.Store }

func (r *contributorsRepo) Create(ctx context.Context, c models.Contributor) (models.Contributor, error) {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	res, err := r.s.Execute(ctx, "contributor", store.OpCreate, store.Args{Data: store.Row{
		"id":              c.ID,
		"github_username": c.GithubUsername,
		"avatar_url":      c.AvatarURL,
		"profile_url":     c.ProfileURL,
	}})
	if err != nil {
		return models.Contributor{}, err
	}
	return contributorFromRow(res.Row), nil
}

func (r *contributorsRepo) GetByUsername(ctx context.Context, username string) (models.Contributor, error) {
	res, err := r.s.Execute(ctx, "contributor", store.OpFindFirst, store.Args{
		Where: store.Row{"github_username": username},
	})
	if err != nil {
		return models.Contributor{}, notFound(err)
	}
	return contributorFromRow(res.Row), nil
}

func (r *contributorsRepo) List(ctx context.Context) ([]models.Contributor, error) {
	res, err := r.s.Execute(ctx, "contributor", store.OpFindMany, store.Args{OrderBy: "github_username"})
	if err != nil {
		return nil, err
	}
	out := make([]models.Contributor, len(res.Rows))
	for i, row := range res.Rows {
		out[i] = contributorFromRow(row)
	}
	return out, nil
}

func (r *contributorsRepo) ListByProject(ctx context.Context, projectID string) ([]models.Contributor, error) {
	links, err := r.s.Execute(ctx, "projectContributor", store.OpFindMany, store.Args{
		Where: store.Row{"project_id": projectID},
	})
	if err != nil {
		return nil, err
	}
	var out []models.Contributor
	for _, link := range links.Rows {
		res, err := r.s.Execute(ctx, "contributor", store.OpFindFirst, store.Args{
			Where: store.Row{"id": rowString(link, "contributor_id")},
		})
		if err != nil {
			continue
		}
		out = append(out, contributorFromRow(res.Row))
	}
	return out, nil
}

func (r *contributorsRepo) Linked(ctx context.Context, projectID, contributorID string) (bool, error) {
	res, err := r.s.Execute(ctx, "projectContributor", store.OpCount, store.Args{
		Where: store.Row{"project_id": projectID, "contributor_id": contributorID},
	})
	if err != nil {
		return false, err
	}
	return res.Count > 0, nil
}

func (r *contributorsRepo) Link(ctx context.Context, projectID, contributorID string) error {
	_, err := r.s.Execute(ctx, "projectContributor", store.OpCreate, store.Args{Data: store.Row{
		"id":             uuid.NewString(),
		"project_id":     projectID,
		"contributor_id": contributorID,
	}})
	return err
}

func contributorFromRow(row store.Row) models.Contributor {
	return models.Contributor{
		ID:             rowString(row, "id"),
		GithubUsername: rowString(row, "github_username"),
		AvatarURL:      rowString(row, "avatar_url"),
		ProfileURL:     rowString(row, "profile_url"),
		CreatedAt:      rowTime(row, "created_at"),
	}
}
