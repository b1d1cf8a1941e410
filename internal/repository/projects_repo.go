package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/bic-devsphere/devsphere-backend/internal/models"
	"github.com/bic-devsphere/devsphere-backend/internal/store"
)

type projectsRepo struct{ s store.Store }

func (r *projectsRepo) Create(ctx context.Context, p models.Project) (models.Project, error) {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	_, err := r.s.Execute(ctx, "project", store.OpCreate, store.Args{Data: store.Row{
		"id":          p.ID,
		"name":        p.Name,
		"description": p.Description,
		"github_url":  p.GithubURL,
		"banner_url":  p.BannerURL,
	}})
	if err != nil {
		return models.Project{}, err
	}
	for _, t := range p.Tags {
		if err := r.linkTag(ctx, p.ID, t.ID); err != nil {
			return models.Project{}, err
		}
	}
	return r.GetByID(ctx, p.ID)
}

func (r *projectsRepo) GetByID(ctx context.Context, id string) (models.Project, error) {
	res, err := r.s.Execute(ctx, "project", store.OpFindFirst, store.Args{Where: store.Row{"id": id}})
	if err != nil {
		return models.Project{}, notFound(err)
	}
	return r.hydrate(ctx, projectFromRow(res.Row))
}

func (r *projectsRepo) List(ctx context.Context) ([]models.Project, error) {
	res, err := r.s.Execute(ctx, "project", store.OpFindMany, store.Args{OrderBy: "created_at", Desc: true})
	if err != nil {
		return nil, err
	}
	out := make([]models.Project, 0, len(res.Rows))
	for _, row := range res.Rows {
		p, err := r.hydrate(ctx, projectFromRow(row))
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

// Update rewrites the project row and replaces its tag links with the
// given set.
func (r *projectsRepo) Update(ctx context.Context, p models.Project) (models.Project, error) {
	_, err := r.s.Execute(ctx, "project", store.OpUpdate, store.Args{
		Where: store.Row{"id": p.ID},
		Data: store.Row{
			"name":        p.Name,
			"description": p.Description,
			"github_url":  p.GithubURL,
			"banner_url":  p.BannerURL,
		},
	})
	if err != nil {
		return models.Project{}, notFound(err)
	}
	if p.Tags != nil {
		links, err := r.s.Execute(ctx, "projectTag", store.OpFindMany, store.Args{
			Where: store.Row{"project_id": p.ID},
		})
		if err != nil {
			return models.Project{}, err
		}
		for _, row := range links.Rows {
			_, err := r.s.Execute(ctx, "projectTag", store.OpDelete, store.Args{
				Where: store.Row{"id": rowString(row, "id")},
			})
			if err != nil {
				return models.Project{}, err
			}
		}
		for _, t := range p.Tags {
			if err := r.linkTag(ctx, p.ID, t.ID); err != nil {
				return models.Project{}, err
			}
		}
	}
	return r.GetByID(ctx, p.ID)
}

func (r *projectsRepo) Delete(ctx context.Context, id string) error {
	_, err := r.s.Execute(ctx, "project", store.OpDelete, store.Args{Where: store.Row{"id": id}})
	return notFound(err)
}

func (r *projectsRepo) linkTag(ctx context.Context, projectID, tagID string) error {
	_, err := r.s.Execute(ctx, "projectTag", store.OpCreate, store.Args{Data: store.Row{
		"id":         uuid.NewString(),
		"project_id": projectID,
		"tag_id":     tagID,
	}})
	return err
}

func (r *projectsRepo) hydrate(ctx context.Context, p models.Project) (models.Project, error) {
	links, err := r.s.Execute(ctx, "projectTag", store.OpFindMany, store.Args{
		Where: store.Row{"project_id": p.ID},
	})
	if err != nil {
		return models.Project{}, err
	}
	for _, link := range links.Rows {
		tres, err := r.s.Execute(ctx, "tag", store.OpFindFirst, store.Args{
			Where: store.Row{"id": rowString(link, "tag_id")},
		})
		if err != nil {
			continue // dangling link, skip
		}
		p.Tags = append(p.Tags, models.Tag{
			ID:   rowString(tres.Row, "id"),
			Name: rowString(tres.Row, "name"),
		})
	}
	crs, err := r.s.Execute(ctx, "projectContributor", store.OpFindMany, store.Args{
		Where: store.Row{"project_id": p.ID},
	})
	if err != nil {
		return models.Project{}, err
	}
	for _, link := range crs.Rows {
		cres, err := r.s.Execute(ctx, "contributor", store.OpFindFirst, store.Args{
			Where: store.Row{"id": rowString(link, "contributor_id")},
		})
		if err != nil {
			continue
		}
		p.Contributors = append(p.Contributors, contributorFromRow(cres.Row))
	}
	return p, nil
}

func projectFromRow(row store.Row) models.Project {
	return models.Project{
		ID:          rowString(row, "id"),
		Name:        rowString(row, "name"),
		Description: rowString(row, "description"),
		GithubURL:   rowString(row, "github_url"),
		BannerURL:   rowString(row, "banner_url"),
		CreatedAt:   rowTime(row, "created_at"),
		UpdatedAt:   rowTime(row, "updated_at"),
	}
}
