package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/bic-devsphere/devsphere-backend/internal/models"
	"github.com/bic-devsphere/devsphere-backend/internal/store"
)

type tagsRepo struct{ s store.Store }

func (r *tagsRepo) GetOrCreate(ctx context.Context, name string) (models.Tag, error) {
	res, err := r.s.Execute(ctx, "tag", store.OpFindFirst, store.Args{Where: store.Row{"name": name}})
	if err == nil {
		return tagFromRow(res.Row), nil
	}
	res, err = r.s.Execute(ctx, "tag", store.OpCreate, store.Args{Data: store.Row{
		"id":   uuid.NewString(),
		"name": name,
	}})
	if err != nil {
		return models.Tag{}, err
	}
	return tagFromRow(res.Row), nil
}

func (r *tagsRepo) List(ctx context.Context) ([]models.Tag, error) {
	res, err := r.s.Execute(ctx, "tag", store.OpFindMany, store.Args{OrderBy: "name"})
	if err != nil {
		return nil, err
	}
	out := make([]models.Tag, len(res.Rows))
	for i, row := range res.Rows {
		out[i] = tagFromRow(row)
	}
	return out, nil
}

func (r *tagsRepo) Delete(ctx context.Context, id string) error {
	_, err := r.s.Execute(ctx, "tag", store.OpDelete, store.Args{Where: store.Row{"id": id}})
	return notFound(err)
}

func tagFromRow(row store.Row) models.Tag {
	return models.Tag{
		ID:   rowString(row, "id"),
		Name: rowString(row, "name"),
	}
}
