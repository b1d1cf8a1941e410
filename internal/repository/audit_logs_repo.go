package repository

import (
	"context"

	"github.com/bic-devsphere/devsphere-backend/internal/models"
	"github.com/bic-devsphere/devsphere-backend/internal/store"
)

// auditLogsRepo only reads. Writes happen inside the audit interceptor,
// below this layer.
type auditLogsRepo struct{ s store.Store }

func (r *auditLogsRepo) ListRecent(ctx context.Context, limit int) ([]models.AuditLog, error) {
	res, err := r.s.Execute(ctx, "auditLogs", store.OpFindMany, store.Args{
		OrderBy: "created_at",
		Desc:    true,
		Limit:   limit,
	})
	if err != nil {
		return nil, err
	}
	out := make([]models.AuditLog, len(res.Rows))
	for i, row := range res.Rows {
		out[i] = models.AuditLog{
			ID:        rowString(row, "id"),
			Action:    rowString(row, "action"),
			UserID:    rowString(row, "user_id"),
			Entity:    rowString(row, "entity"),
			EntityID:  rowString(row, "entity_id"),
			Changes:   rowMap(row, "changes"),
			CreatedAt: rowTime(row, "created_at"),
		}
	}
	return out, nil
}
