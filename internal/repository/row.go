package repository

import (
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/bic-devsphere/devsphere-backend/internal/store"
)

// notFound translates store-level "no row" errors into ErrNotFound.
func notFound(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

func rowString(r store.Row, k string) string {
	if v, ok := r[k].(string); ok {
		return v
	}
	return ""
}

func rowStringPtr(r store.Row, k string) *string {
	if v, ok := r[k].(string); ok && v != "" {
		return &v
	}
	return nil
}

func rowTime(r store.Row, k string) time.Time {
	if v, ok := r[k].(time.Time); ok {
		return v
	}
	return time.Time{}
}

func rowBool(r store.Row, k string) bool {
	v, _ := r[k].(bool)
	return v
}

func rowMap(r store.Row, k string) map[string]any {
	if v, ok := r[k].(map[string]any); ok {
		return v
	}
	return nil
}
