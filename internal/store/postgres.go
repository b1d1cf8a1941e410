package store

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrUnknownEntity = errors.New("store: unknown entity")
	ErrUnknownColumn = errors.New("store: unknown column")
	ErrEmptyWhere    = errors.New("store: empty where filter")
	ErrUnsupportedOp = errors.New("store: unsupported operation")
)

// PG executes registry-validated SQL against a pgx pool. Identifiers come
// only from the entity registry, values only from bind parameters.
type PG struct {
	pool *pgxpool.Pool
}

func NewPG(pool *pgxpool.Pool) *PG { return &PG{pool: pool} }

func (s *PG) Execute(ctx context.Context, entity string, op Op, args Args) (Result, error) {
	e, ok := Resolve(entity)
	if !ok {
		return Result{}, fmt.Errorf("%w: %q", ErrUnknownEntity, entity)
	}
	meta, ok := metaFor(e)
	if !ok {
		return Result{}, fmt.Errorf("%w: %q", ErrUnknownEntity, entity)
	}

	switch op {
	case OpCreate:
		return s.create(ctx, meta, args)
	case OpUpdate:
		return s.update(ctx, meta, args)
	case OpDelete:
		return s.delete(ctx, meta, args)
	case OpFindFirst:
		return s.findFirst(ctx, meta, args)
	case OpFindMany:
		return s.findMany(ctx, meta, args)
	case OpCount:
		return s.count(ctx, meta, args)
	default:
		return Result{}, fmt.Errorf("%w: %q", ErrUnsupportedOp, op)
	}
}

func (s *PG) create(ctx context.Context, meta tableMeta, args Args) (Result, error) {
	keys, err := checkedKeys(meta, args.Data)
	if err != nil {
		return Result{}, err
	}
	if len(keys) == 0 {
		return Result{}, fmt.Errorf("store: create %s: empty data", meta.table)
	}

	ph := make([]string, len(keys))
	vals := make([]any, len(keys))
	for i, k := range keys {
		ph[i] = "$" + strconv.Itoa(i+1)
		vals[i] = args.Data[k]
	}
	q := fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s) RETURNING *",
		meta.table, strings.Join(keys, ", "), strings.Join(ph, ", "),
	)
	return s.queryOne(ctx, q, vals)
}

func (s *PG) update(ctx context.Context, meta tableMeta, args Args) (Result, error) {
	keys, err := checkedKeys(meta, args.Data)
	if err != nil {
		return Result{}, err
	}
	if len(keys) == 0 {
		return Result{}, fmt.Errorf("store: update %s: empty data", meta.table)
	}

	set := make([]string, len(keys))
	vals := make([]any, 0, len(keys)+len(args.Where))
	for i, k := range keys {
		set[i] = k + " = $" + strconv.Itoa(i+1)
		vals = append(vals, args.Data[k])
	}
	where, whereVals, err := buildWhere(meta, args.Where, len(keys)+1)
	if err != nil {
		return Result{}, err
	}
	if where == "" {
		return Result{}, fmt.Errorf("store: update %s: %w", meta.table, ErrEmptyWhere)
	}
	vals = append(vals, whereVals...)

	q := fmt.Sprintf("UPDATE %s SET %s WHERE %s RETURNING *", meta.table, strings.Join(set, ", "), where)
	return s.queryOne(ctx, q, vals)
}

func (s *PG) delete(ctx context.Context, meta tableMeta, args Args) (Result, error) {
	where, vals, err := buildWhere(meta, args.Where, 1)
	if err != nil {
		return Result{}, err
	}
	if where == "" {
		return Result{}, fmt.Errorf("store: delete %s: %w", meta.table, ErrEmptyWhere)
	}
	q := fmt.Sprintf("DELETE FROM %s WHERE %s RETURNING *", meta.table, where)
	return s.queryOne(ctx, q, vals)
}

func (s *PG) findFirst(ctx context.Context, meta tableMeta, args Args) (Result, error) {
	where, vals, err := buildWhere(meta, args.Where, 1)
	if err != nil {
		return Result{}, err
	}
	q := "SELECT * FROM " + meta.table
	if where != "" {
		q += " WHERE " + where
	}
	q += " LIMIT 1"
	return s.queryOne(ctx, q, vals)
}

func (s *PG) findMany(ctx context.Context, meta tableMeta, args Args) (Result, error) {
	where, vals, err := buildWhere(meta, args.Where, 1)
	if err != nil {
		return Result{}, err
	}
	q := "SELECT * FROM " + meta.table
	if where != "" {
		q += " WHERE " + where
	}
	if args.OrderBy != "" {
		if !meta.columns[args.OrderBy] {
			return Result{}, fmt.Errorf("%w: %q", ErrUnknownColumn, args.OrderBy)
		}
		q += " ORDER BY " + args.OrderBy
		if args.Desc {
			q += " DESC"
		}
	}
	if args.Limit > 0 {
		q += " LIMIT " + strconv.Itoa(args.Limit)
	}
	if args.Offset > 0 {
		q += " OFFSET " + strconv.Itoa(args.Offset)
	}

	rows, err := s.pool.Query(ctx, q, vals...)
	if err != nil {
		return Result{}, err
	}
	maps, err := pgx.CollectRows(rows, pgx.RowToMap)
	if err != nil {
		return Result{}, err
	}
	out := make([]Row, len(maps))
	for i, m := range maps {
		out[i] = Row(m)
	}
	return Result{Rows: out}, nil
}

func (s *PG) count(ctx context.Context, meta tableMeta, args Args) (Result, error) {
	where, vals, err := buildWhere(meta, args.Where, 1)
	if err != nil {
		return Result{}, err
	}
	q := "SELECT count(*) FROM " + meta.table
	if where != "" {
		q += " WHERE " + where
	}
	var n int64
	if err := s.pool.QueryRow(ctx, q, vals...).Scan(&n); err != nil {
		return Result{}, err
	}
	return Result{Count: n}, nil
}

func (s *PG) queryOne(ctx context.Context, q string, vals []any) (Result, error) {
	rows, err := s.pool.Query(ctx, q, vals...)
	if err != nil {
		return Result{}, err
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToMap)
	if err != nil {
		return Result{}, err
	}
	return Result{Row: Row(m)}, nil
}

func checkedKeys(meta tableMeta, data Row) ([]string, error) {
	keys := make([]string, 0, len(data))
	for k := range data {
		if !meta.columns[k] {
			return nil, fmt.Errorf("%w: %s.%s", ErrUnknownColumn, meta.table, k)
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

func buildWhere(meta tableMeta, where Row, start int) (string, []any, error) {
	if len(where) == 0 {
		return "", nil, nil
	}
	keys, err := checkedKeys(meta, where)
	if err != nil {
		return "", nil, err
	}
	conds := make([]string, len(keys))
	vals := make([]any, len(keys))
	for i, k := range keys {
		n := "$" + strconv.Itoa(start+i)
		if like, ok := where[k].(Like); ok {
			conds[i] = k + " ILIKE " + n
			vals[i] = "%" + string(like) + "%"
			continue
		}
		conds[i] = k + " = " + n
		vals[i] = where[k]
	}
	return strings.Join(conds, " AND "), vals, nil
}
