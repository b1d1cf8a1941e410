package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/bic-devsphere/devsphere-backend/internal/models"
	"github.com/bic-devsphere/devsphere-backend/internal/store"
)

type membersRepo struct{ s store.Store }

func (r *membersRepo) Create(ctx context.Context, m models.Member) (models.Member, error) {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	res, err := r.s.Execute(ctx, "member", store.OpCreate, store.Args{Data: store.Row{
		"id":         m.ID,
		"name":       m.Name,
		"role":       m.Role,
		"avatar_url": m.AvatarURL,
		"year":       m.Year,
		"status":     string(m.Status),
	}})
	if err != nil {
		return models.Member{}, err
	}
	return memberFromRow(res.Row), nil
}

func (r *membersRepo) GetByID(ctx context.Context, id string) (models.Member, error) {
	res, err := r.s.Execute(ctx, "member", store.OpFindFirst, store.Args{Where: store.Row{"id": id}})
	if err != nil {
		return models.Member{}, notFound(err)
	}
	return memberFromRow(res.Row), nil
}

func (r *membersRepo) List(ctx context.Context) ([]models.Member, error) {
	res, err := r.s.Execute(ctx, "member", store.OpFindMany, store.Args{OrderBy: "created_at", Desc: true})
	if err != nil {
		return nil, err
	}
	out := make([]models.Member, len(res.Rows))
	for i, row := range res.Rows {
		out[i] = memberFromRow(row)
	}
	return out, nil
}

func (r *membersRepo) SetStatus(ctx context.Context, id string, status models.MemberStatus) (models.Member, error) {
	res, err := r.s.Execute(ctx, "member", store.OpUpdate, store.Args{
		Where: store.Row{"id": id},
		Data:  store.Row{"status": string(status)},
	})
	if err != nil {
		return models.Member{}, notFound(err)
	}
	return memberFromRow(res.Row), nil
}

func memberFromRow(row store.Row) models.Member {
	return models.Member{
		ID:        rowString(row, "id"),
		Name:      rowString(row, "name"),
		Role:      rowString(row, "role"),
		AvatarURL: rowString(row, "avatar_url"),
		Year:      rowTime(row, "year"),
		Status:    models.MemberStatus(rowString(row, "status")),
		CreatedAt: rowTime(row, "created_at"),
		UpdatedAt: rowTime(row, "updated_at"),
	}
}
