package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/bic-devsphere/devsphere-backend/internal/models"
	"github.com/bic-devsphere/devsphere-backend/internal/store"
)

type usersRepo struct{ s store.Store }

func (r *usersRepo) Create(ctx context.Context, u models.User) (models.User, error) {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	data := store.Row{
		"id":             u.ID,
		"email":          u.Email,
		"password_hash":  u.PasswordHash,
		"role":           string(u.Role),
		"email_verified": u.EmailVerified,
	}
	if u.MemberID != nil {
		data["member_id"] = *u.MemberID
	}
	res, err := r.s.Execute(ctx, "user", store.OpCreate, store.Args{Data: data})
	if err != nil {
		return models.User{}, err
	}
	return userFromRow(res.Row), nil
}

func (r *usersRepo) GetByID(ctx context.Context, id string) (models.User, error) {
	res, err := r.s.Execute(ctx, "user", store.OpFindFirst, store.Args{Where: store.Row{"id": id}})
	if err != nil {
		return models.User{}, notFound(err)
	}
	return userFromRow(res.Row), nil
}

func (r *usersRepo) GetByEmail(ctx context.Context, email string) (models.User, error) {
	res, err := r.s.Execute(ctx, "user", store.OpFindFirst, store.Args{Where: store.Row{"email": email}})
	if err != nil {
		return models.User{}, notFound(err)
	}
	return userFromRow(res.Row), nil
}

func (r *usersRepo) List(ctx context.Context, role, search string, limit, offset int) ([]models.User, error) {
	res, err := r.s.Execute(ctx, "user", store.OpFindMany, store.Args{
		Where:   userFilter(role, search),
		OrderBy: "created_at",
		Desc:    true,
		Limit:   limit,
		Offset:  offset,
	})
	if err != nil {
		return nil, err
	}
	out := make([]models.User, len(res.Rows))
	for i, row := range res.Rows {
		out[i] = userFromRow(row)
	}
	return out, nil
}

func (r *usersRepo) Count(ctx context.Context, role, search string) (int64, error) {
	res, err := r.s.Execute(ctx, "user", store.OpCount, store.Args{Where: userFilter(role, search)})
	if err != nil {
		return 0, err
	}
	return res.Count, nil
}

func (r *usersRepo) CountByRole(ctx context.Context, role models.UserRole) (int64, error) {
	return r.Count(ctx, string(role), "")
}

func (r *usersRepo) UpdateRole(ctx context.Context, id string, role models.UserRole) (models.User, error) {
	res, err := r.s.Execute(ctx, "user", store.OpUpdate, store.Args{
		Where: store.Row{"id": id},
		Data:  store.Row{"role": string(role)},
	})
	if err != nil {
		return models.User{}, notFound(err)
	}
	return userFromRow(res.Row), nil
}

func userFilter(role, search string) store.Row {
	where := store.Row{}
	if role != "" {
		where["role"] = role
	}
	if search != "" {
		where["email"] = store.Like(search)
	}
	if len(where) == 0 {
		return nil
	}
	return where
}

func userFromRow(row store.Row) models.User {
	return models.User{
		ID:            rowString(row, "id"),
		Email:         rowString(row, "email"),
		PasswordHash:  rowString(row, "password_hash"),
		Role:          models.UserRole(rowString(row, "role")),
		MemberID:      rowStringPtr(row, "member_id"),
		EmailVerified: rowBool(row, "email_verified"),
		CreatedAt:     rowTime(row, "created_at"),
		UpdatedAt:     rowTime(row, "updated_at"),
	}
}
