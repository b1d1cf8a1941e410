// Package store exposes the generic data-access layer: a closed registry of
// entities and a single Execute capability covering create, update, delete
// and find operations. Typed repositories sit on top of it; the audit
// interceptor wraps it.
package store

import "context"

type Op string

const (
	OpCreate    Op = "create"
	OpUpdate    Op = "update"
	OpDelete    Op = "delete"
	OpFindFirst Op = "findFirst"
	OpFindMany  Op = "findMany"
	OpCount     Op = "count"
)

// Mutating reports whether the operation changes row state.
func (o Op) Mutating() bool {
	return o == OpCreate || o == OpUpdate || o == OpDelete
}

// Row is a single table row keyed by column name.
type Row map[string]any

// Like marks a Where value as a case-insensitive substring match.
type Like string

// Args carries the operation payload. Data holds column values for create
// and update; Where holds equality (or Like) filters.
type Args struct {
	Where   Row
	Data    Row
	OrderBy string
	Desc    bool
	Limit   int
	Offset  int
}

// Result is the outcome of an Execute call. Row is set for single-row
// operations, Rows for findMany, Count for count.
type Result struct {
	Row   Row
	Rows  []Row
	Count int64
}

type Store interface {
	Execute(ctx context.Context, entity string, op Op, args Args) (Result, error)
}
