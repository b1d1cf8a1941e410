package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveCollapsesSpellings(t *testing.T) {
	cases := map[string]Entity{
		"member":               EntityMember,
		"Member":               EntityMember,
		"members":              EntityMember,
		"MEMBERS":              EntityMember,
		"eventSchedule":        EntityEventSchedule,
		"event_schedules":      EntityEventSchedule,
		"EventSchedules":       EntityEventSchedule,
		"EVENT_SCHEDULE":       EntityEventSchedule,
		"auditLogs":            EntityAuditLog,
		"audit_logs":           EntityAuditLog,
		"AUDIT_LOG":            EntityAuditLog,
		"projectContributor":   EntityProjectContributor,
		"project_contributors": EntityProjectContributor,
		"tags":                 EntityTag,
		"users":                EntityUser,
	}
	for name, want := range cases {
		got, ok := Resolve(name)
		require.True(t, ok, "resolving %q", name)
		assert.Equal(t, want, got, "resolving %q", name)
	}
}

func TestResolveUnknownButWellFormed(t *testing.T) {
	got, ok := Resolve("widget")
	require.True(t, ok)
	assert.Equal(t, Entity("WIDGET"), got)
}

func TestResolveMalformed(t *testing.T) {
	for _, name := range []string{"", "  ", "bad name", "semi;colon", "9starts_with_digit", "drop table--"} {
		_, ok := Resolve(name)
		assert.False(t, ok, "resolving %q", name)
	}
}

func TestMeta(t *testing.T) {
	table, idCol, ok := Meta(EntityMember)
	require.True(t, ok)
	assert.Equal(t, "members", table)
	assert.Equal(t, "id", idCol)

	_, _, ok = Meta(Entity("WIDGET"))
	assert.False(t, ok)
}

func TestOpMutating(t *testing.T) {
	assert.True(t, OpCreate.Mutating())
	assert.True(t, OpUpdate.Mutating())
	assert.True(t, OpDelete.Mutating())
	assert.False(t, OpFindFirst.Mutating())
	assert.False(t, OpFindMany.Mutating())
	assert.False(t, OpCount.Mutating())
}
