package audit

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bic-devsphere/devsphere-backend/internal/requestctx"
	"github.com/bic-devsphere/devsphere-backend/internal/store"
)

type fakeCall struct {
	entity string
	op     store.Op
	args   store.Args
}

// fakeStore stands in for the Postgres layer. Audit-log creates are captured
// separately so tests can assert on the records the interceptor writes.
type fakeStore struct {
	calls    []fakeCall
	before   store.Row
	result   store.Row
	findErr  error
	mutErr   error
	auditErr error
	audits   []store.Row
}

func (f *fakeStore) Execute(ctx context.Context, entity string, op store.Op, args store.Args) (store.Result, error) {
	f.calls = append(f.calls, fakeCall{entity: entity, op: op, args: args})

	if e, ok := store.Resolve(entity); ok && e == store.EntityAuditLog && op == store.OpCreate {
		if f.auditErr != nil {
			return store.Result{}, f.auditErr
		}
		f.audits = append(f.audits, args.Data)
		return store.Result{Row: args.Data}, nil
	}

	switch op {
	case store.OpFindFirst:
		if f.findErr != nil {
			return store.Result{}, f.findErr
		}
		return store.Result{Row: f.before}, nil
	case store.OpCreate, store.OpUpdate, store.OpDelete:
		if f.mutErr != nil {
			return store.Result{}, f.mutErr
		}
		return store.Result{Row: f.result}, nil
	case store.OpFindMany:
		return store.Result{Rows: []store.Row{f.result}}, nil
	case store.OpCount:
		return store.Result{Count: 1}, nil
	}
	return store.Result{}, nil
}

func (f *fakeStore) opsFor(entity string) []store.Op {
	var ops []store.Op
	for _, c := range f.calls {
		if c.entity == entity {
			ops = append(ops, c.op)
		}
	}
	return ops
}

func testLog() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func actorCtx(id string) context.Context {
	return requestctx.WithActor(context.Background(), id)
}

func TestCreateWritesRecord(t *testing.T) {
	fs := &fakeStore{result: store.Row{"id": "m1", "name": "Jane", "role": "Dev"}}
	ic := Wrap(fs, testLog(), false)

	res, err := ic.Execute(actorCtx("admin-1"), "member", store.OpCreate, store.Args{
		Data: store.Row{"name": "Jane", "role": "Dev"},
	})
	require.NoError(t, err)
	assert.Equal(t, "m1", res.Row["id"])

	require.Len(t, fs.audits, 1)
	rec := fs.audits[0]
	assert.Equal(t, "CREATE", rec["action"])
	assert.Equal(t, "admin-1", rec["user_id"])
	assert.Equal(t, "MEMBER", rec["entity"])
	assert.Equal(t, "m1", rec["entity_id"])
	assert.Nil(t, rec["changes"])
	assert.NotEmpty(t, rec["id"])

	// No before-capture on create.
	assert.Equal(t, []store.Op{store.OpCreate}, fs.opsFor("member"))
}

func TestUpdateDiffsChangedFields(t *testing.T) {
	fs := &fakeStore{
		before: store.Row{"id": "m1", "name": "Jane", "role": "Dev"},
		result: store.Row{"id": "m1", "name": "Jane", "role": "Lead"},
	}
	ic := Wrap(fs, testLog(), false)

	_, err := ic.Execute(actorCtx("admin-1"), "member", store.OpUpdate, store.Args{
		Where: store.Row{"id": "m1"},
		Data:  store.Row{"name": "Jane", "role": "Lead"},
	})
	require.NoError(t, err)

	require.Len(t, fs.audits, 1)
	rec := fs.audits[0]
	assert.Equal(t, "UPDATE", rec["action"])

	changes, ok := rec["changes"].(map[string]FieldChange)
	require.True(t, ok)
	require.Len(t, changes, 1)
	assert.Equal(t, FieldChange{Before: "Dev", After: "Lead"}, changes["role"])

	// Before-capture precedes the mutation.
	assert.Equal(t, []store.Op{store.OpFindFirst, store.OpUpdate}, fs.opsFor("member"))
}

func TestNoopUpdateRecordsWithoutChanges(t *testing.T) {
	row := store.Row{"id": "m1", "name": "Jane", "role": "Dev"}
	fs := &fakeStore{before: row, result: row}
	ic := Wrap(fs, testLog(), false)

	_, err := ic.Execute(actorCtx("admin-1"), "member", store.OpUpdate, store.Args{
		Where: store.Row{"id": "m1"},
		Data:  store.Row{"name": "Jane", "role": "Dev"},
	})
	require.NoError(t, err)

	require.Len(t, fs.audits, 1)
	assert.Nil(t, fs.audits[0]["changes"])
}

func TestDeleteRecordsEntityID(t *testing.T) {
	fs := &fakeStore{
		before: store.Row{"id": "m1", "name": "Jane"},
		result: store.Row{"id": "m1", "name": "Jane"},
	}
	ic := Wrap(fs, testLog(), false)

	_, err := ic.Execute(actorCtx("admin-1"), "member", store.OpDelete, store.Args{
		Where: store.Row{"id": "m1"},
	})
	require.NoError(t, err)

	require.Len(t, fs.audits, 1)
	rec := fs.audits[0]
	assert.Equal(t, "DELETE", rec["action"])
	assert.Equal(t, "m1", rec["entity_id"])
	assert.Nil(t, rec["changes"])
}

func TestEntityIDFallsBackToFilter(t *testing.T) {
	fs := &fakeStore{result: nil} // store returned no row
	ic := Wrap(fs, testLog(), false)

	_, err := ic.Execute(actorCtx("admin-1"), "member", store.OpDelete, store.Args{
		Where: store.Row{"id": "m9"},
	})
	require.NoError(t, err)

	require.Len(t, fs.audits, 1)
	assert.Equal(t, "m9", fs.audits[0]["entity_id"])
}

func TestEntityIDUnknownWhenUnresolvable(t *testing.T) {
	fs := &fakeStore{result: nil}
	ic := Wrap(fs, testLog(), false)

	_, err := ic.Execute(actorCtx("admin-1"), "member", store.OpDelete, store.Args{
		Where: store.Row{"name": "Jane"},
	})
	require.NoError(t, err)

	require.Len(t, fs.audits, 1)
	assert.Equal(t, EntityIDUnknown, fs.audits[0]["entity_id"])
}

func TestPrimaryErrorSkipsAudit(t *testing.T) {
	fs := &fakeStore{mutErr: errors.New("constraint violation")}
	ic := Wrap(fs, testLog(), false)

	_, err := ic.Execute(actorCtx("admin-1"), "member", store.OpCreate, store.Args{
		Data: store.Row{"name": "Jane"},
	})
	require.Error(t, err)
	assert.Empty(t, fs.audits)
}

func TestAuditWriteFailureDoesNotDisturbResult(t *testing.T) {
	fs := &fakeStore{
		result:   store.Row{"id": "m1", "name": "Jane"},
		auditErr: errors.New("audit insert failed"),
	}
	ic := Wrap(fs, testLog(), false)

	res, err := ic.Execute(actorCtx("admin-1"), "member", store.OpCreate, store.Args{
		Data: store.Row{"name": "Jane"},
	})
	require.NoError(t, err)
	assert.Equal(t, "m1", res.Row["id"])
	assert.Empty(t, fs.audits)
}

func TestBeforeCaptureFailureStillRecords(t *testing.T) {
	fs := &fakeStore{
		findErr: errors.New("read failed"),
		result:  store.Row{"id": "m1", "role": "Lead"},
	}
	ic := Wrap(fs, testLog(), true)

	_, err := ic.Execute(actorCtx("admin-1"), "member", store.OpUpdate, store.Args{
		Where: store.Row{"id": "m1"},
		Data:  store.Row{"role": "Lead"},
	})
	require.NoError(t, err)

	require.Len(t, fs.audits, 1)
	assert.Nil(t, fs.audits[0]["changes"])
}

func TestReadsPassThrough(t *testing.T) {
	fs := &fakeStore{result: store.Row{"id": "m1"}}
	ic := Wrap(fs, testLog(), false)

	_, err := ic.Execute(actorCtx("admin-1"), "member", store.OpFindMany, store.Args{})
	require.NoError(t, err)
	_, err = ic.Execute(actorCtx("admin-1"), "member", store.OpCount, store.Args{})
	require.NoError(t, err)

	assert.Empty(t, fs.audits)
	assert.Equal(t, []store.Op{store.OpFindMany, store.OpCount}, fs.opsFor("member"))
}

func TestAuditLogWritesAreNotIntercepted(t *testing.T) {
	fs := &fakeStore{}
	ic := Wrap(fs, testLog(), false)

	_, err := ic.Execute(actorCtx("admin-1"), "auditLogs", store.OpCreate, store.Args{
		Data: store.Row{"id": "a1", "action": "CREATE"},
	})
	require.NoError(t, err)

	// Exactly the one write; no before-capture, no record about the record.
	require.Len(t, fs.calls, 1)
	require.Len(t, fs.audits, 1)
}

func TestMissingActorRecordsUnknown(t *testing.T) {
	fs := &fakeStore{result: store.Row{"id": "m1"}}
	ic := Wrap(fs, testLog(), false)

	_, err := ic.Execute(context.Background(), "member", store.OpCreate, store.Args{
		Data: store.Row{"name": "Jane"},
	})
	require.NoError(t, err)

	require.Len(t, fs.audits, 1)
	assert.Equal(t, ActorUnknown, fs.audits[0]["user_id"])
}

func TestUnresolvableEntitySkipsRecord(t *testing.T) {
	fs := &fakeStore{result: store.Row{"id": "x1"}}
	ic := Wrap(fs, testLog(), false)

	res, err := ic.Execute(actorCtx("admin-1"), "bad name;", store.OpCreate, store.Args{
		Data: store.Row{"name": "x"},
	})
	require.NoError(t, err)
	assert.Equal(t, "x1", res.Row["id"])
	assert.Empty(t, fs.audits)
}

func TestEntitySpellingsCollapse(t *testing.T) {
	for _, name := range []string{"member", "Members", "MEMBER", "members"} {
		fs := &fakeStore{result: store.Row{"id": "m1"}}
		ic := Wrap(fs, testLog(), false)

		_, err := ic.Execute(actorCtx("admin-1"), name, store.OpCreate, store.Args{
			Data: store.Row{"name": "Jane"},
		})
		require.NoError(t, err)
		require.Len(t, fs.audits, 1, "entity %q", name)
		assert.Equal(t, "MEMBER", fs.audits[0]["entity"], "entity %q", name)
	}
}
