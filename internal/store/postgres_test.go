package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func memberMeta(t *testing.T) tableMeta {
	t.Helper()
	m, ok := metaFor(EntityMember)
	require.True(t, ok)
	return m
}

func TestCheckedKeysRejectsUnknownColumns(t *testing.T) {
	meta := memberMeta(t)

	_, err := checkedKeys(meta, Row{"name": "x", "nope; DROP TABLE members": "y"})
	assert.ErrorIs(t, err, ErrUnknownColumn)

	keys, err := checkedKeys(meta, Row{"role": "Dev", "name": "Jane"})
	require.NoError(t, err)
	assert.Equal(t, []string{"name", "role"}, keys) // sorted, deterministic SQL
}

func TestBuildWhereEquality(t *testing.T) {
	meta := memberMeta(t)

	cond, vals, err := buildWhere(meta, Row{"id": "m1"}, 1)
	require.NoError(t, err)
	assert.Equal(t, "id = $1", cond)
	assert.Equal(t, []any{"m1"}, vals)
}

func TestBuildWhereLike(t *testing.T) {
	meta := memberMeta(t)

	cond, vals, err := buildWhere(meta, Row{"name": Like("jan")}, 3)
	require.NoError(t, err)
	assert.Equal(t, "name ILIKE $3", cond)
	assert.Equal(t, []any{"%jan%"}, vals)
}

func TestBuildWhereMultipleConditions(t *testing.T) {
	meta := memberMeta(t)

	cond, vals, err := buildWhere(meta, Row{"status": "ACTIVE", "role": "Dev"}, 1)
	require.NoError(t, err)
	assert.Equal(t, "role = $1 AND status = $2", cond)
	assert.Equal(t, []any{"Dev", "ACTIVE"}, vals)
}

func TestBuildWhereEmpty(t *testing.T) {
	meta := memberMeta(t)

	cond, vals, err := buildWhere(meta, nil, 1)
	require.NoError(t, err)
	assert.Empty(t, cond)
	assert.Empty(t, vals)
}
