// Package audit wraps the data-access layer with append-only change
// tracking. Every create, update and delete that flows through the wrapped
// store produces one audit record carrying the actor, the normalized entity
// tag, the mutated row id and, for updates, a field-level diff.
//
// Auditing is strictly observational: a failure to capture prior state, to
// classify the entity, or to insert the audit record never disturbs the
// primary operation or its result. The before-read and the primary write
// are not transactional, so a concurrent writer can make the captured
// before state stale relative to commit order; that is accepted.
package audit

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/bic-devsphere/devsphere-backend/internal/metrics"
	"github.com/bic-devsphere/devsphere-backend/internal/requestctx"
	"github.com/bic-devsphere/devsphere-backend/internal/store"
)

// ActorUnknown is recorded when no request-scoped actor is available, e.g.
// for background jobs.
const ActorUnknown = "UNKNOWN"

// EntityIDUnknown is recorded when the mutated row id cannot be resolved
// from either the operation result or its filter.
const EntityIDUnknown = "UNKNOWN"

// Interceptor decorates a store.Store. Callers use the returned capability
// exactly as they would the wrapped one.
type Interceptor struct {
	next  store.Store
	log   *slog.Logger
	debug bool
}

// Wrap returns a store whose mutating operations are audited. Audit records
// are written through the wrapped store directly, so the interceptor can
// never observe its own writes.
func Wrap(next store.Store, log *slog.Logger, debug bool) *Interceptor {
	return &Interceptor{next: next, log: log, debug: debug}
}

func (a *Interceptor) Execute(ctx context.Context, entity string, op store.Op, args store.Args) (store.Result, error) {
	if !op.Mutating() {
		return a.next.Execute(ctx, entity, op, args)
	}
	if kind, ok := store.Resolve(entity); ok && kind == store.EntityAuditLog {
		return a.next.Execute(ctx, entity, op, args)
	}

	// Prior state, update/delete only. Failure here means no before state,
	// never an aborted mutation.
	var before store.Row
	if (op == store.OpUpdate || op == store.OpDelete) && len(args.Where) > 0 {
		if res, err := a.next.Execute(ctx, entity, store.OpFindFirst, store.Args{Where: args.Where}); err == nil {
			before = res.Row
		} else if a.debug {
			a.log.Debug("audit: before-capture failed", "entity", entity, "err", err)
		}
	}

	actor, ok := requestctx.ActorID(ctx)
	if !ok {
		actor = ActorUnknown
	}

	res, err := a.next.Execute(ctx, entity, op, args)
	if err != nil {
		return res, err
	}

	var changes map[string]FieldChange
	if op == store.OpUpdate && before != nil {
		changes = Diff(before, res.Row, args.Data)
	}

	kind, ok := store.Resolve(entity)
	if !ok {
		a.log.Warn("audit: cannot classify entity, record skipped", "entity", entity, "op", op)
		metrics.AuditSkipped.Inc()
		return res, nil
	}

	action := strings.ToUpper(string(op))
	rec := store.Row{
		"id":        uuid.NewString(),
		"action":    action,
		"user_id":   actor,
		"entity":    string(kind),
		"entity_id": a.entityID(kind, res.Row, args.Where),
		"changes":   nil,
	}
	if changes != nil {
		rec["changes"] = changes
	}

	if _, err := a.next.Execute(ctx, string(store.EntityAuditLog), store.OpCreate, store.Args{Data: rec}); err != nil {
		// The mutation already succeeded; its result is not disturbed.
		a.log.Error("audit: record write failed", "entity", kind, "action", action, "err", err)
		metrics.AuditWriteFailures.Inc()
		return res, nil
	}
	metrics.AuditRecordsTotal.WithLabelValues(action).Inc()
	if a.debug {
		a.log.Debug("audit: record written",
			"entity", kind, "action", action, "actor", actor, "changed_fields", len(changes))
	}
	return res, nil
}

// entityID resolves the mutated row id: result first, then the filter,
// then the sentinel. Best effort by design.
func (a *Interceptor) entityID(kind store.Entity, row store.Row, where store.Row) string {
	idCol := "id"
	if _, col, ok := store.Meta(kind); ok {
		idCol = col
	}
	if v, ok := row[idCol]; ok && v != nil {
		return fmt.Sprint(v)
	}
	if v, ok := where[idCol]; ok && v != nil {
		return fmt.Sprint(v)
	}
	return EntityIDUnknown
}
