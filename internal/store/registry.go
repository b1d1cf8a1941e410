package store

import (
	"strings"

	"github.com/jinzhu/inflection"
)

// Entity is the normalized tag for a logical entity, independent of how the
// caller spells the model name.
type Entity string

const (
	EntityMember             Entity = "MEMBER"
	EntityEvent              Entity = "EVENT"
	EntityEventSchedule      Entity = "EVENT_SCHEDULE"
	EntityEventImage         Entity = "EVENT_IMAGE"
	EntityProject            Entity = "PROJECT"
	EntityTag                Entity = "TAG"
	EntityProjectTag         Entity = "PROJECT_TAG"
	EntityContributor        Entity = "CONTRIBUTOR"
	EntityProjectContributor Entity = "PROJECT_CONTRIBUTOR"
	EntityUser               Entity = "USER"
	EntityAuditLog           Entity = "AUDIT_LOG"
)

type tableMeta struct {
	table    string
	idColumn string
	columns  map[string]bool
}

var tables = map[Entity]tableMeta{
	EntityMember: {
		table:    "members",
		idColumn: "id",
		columns:  cols("id", "name", "role", "avatar_url", "year", "status", "created_at", "updated_at"),
	},
	EntityEvent: {
		table:    "events",
		idColumn: "id",
		columns:  cols("id", "name", "description", "status", "created_at", "updated_at"),
	},
	EntityEventSchedule: {
		table:    "event_schedules",
		idColumn: "id",
		columns:  cols("id", "event_id", "start_date", "end_date", "description"),
	},
	EntityEventImage: {
		table:    "event_images",
		idColumn: "id",
		columns:  cols("id", "event_id", "image_url", "image_type"),
	},
	EntityProject: {
		table:    "projects",
		idColumn: "id",
		columns:  cols("id", "name", "description", "github_url", "banner_url", "created_at", "updated_at"),
	},
	EntityTag: {
		table:    "tags",
		idColumn: "id",
		columns:  cols("id", "name"),
	},
	EntityProjectTag: {
		table:    "project_tags",
		idColumn: "id",
		columns:  cols("id", "project_id", "tag_id"),
	},
	EntityContributor: {
		table:    "contributors",
		idColumn: "id",
		columns:  cols("id", "github_username", "avatar_url", "profile_url", "created_at"),
	},
	EntityProjectContributor: {
		table:    "project_contributors",
		idColumn: "id",
		columns:  cols("id", "project_id", "contributor_id"),
	},
	EntityUser: {
		table:    "users",
		idColumn: "id",
		columns:  cols("id", "email", "password_hash", "role", "member_id", "email_verified", "created_at", "updated_at"),
	},
	EntityAuditLog: {
		table:    "audit_logs",
		idColumn: "id",
		columns:  cols("id", "action", "user_id", "entity", "entity_id", "changes", "created_at"),
	},
}

// aliases maps normalized spellings to entity tags. Built once from the
// table registry so "member", "Members", "audit_logs" and "auditLogs" all
// land on the same tag.
var aliases = buildAliases()

func cols(names ...string) map[string]bool {
	m := make(map[string]bool, len(names))
	for _, n := range names {
		m[n] = true
	}
	return m
}

func buildAliases() map[string]Entity {
	m := make(map[string]Entity, len(tables)*2)
	for e, meta := range tables {
		m[normalize(string(e))] = e
		m[normalize(meta.table)] = e
	}
	return m
}

// normalize lowers the name, strips separators and singularizes it, so case
// and plural/singular variation collapse to one key.
func normalize(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = strings.NewReplacer("_", "", "-", "", " ", "").Replace(s)
	return inflection.Singular(s)
}

func validIdent(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case r == '_', r >= '0' && r <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}

// Resolve maps a model name to its entity tag. Known names resolve through
// the registry regardless of case or plural form; unknown but well-formed
// names fall back to an upper-cased tag. Malformed names fail resolution.
func Resolve(name string) (Entity, bool) {
	if e, ok := aliases[normalize(name)]; ok {
		return e, true
	}
	if !validIdent(strings.TrimSpace(name)) {
		return "", false
	}
	return Entity(strings.ToUpper(strings.TrimSpace(name))), true
}

// Meta returns table metadata for a registered entity. Fallback tags from
// Resolve have no metadata and report false.
func Meta(e Entity) (table string, idColumn string, ok bool) {
	meta, ok := tables[e]
	if !ok {
		return "", "", false
	}
	return meta.table, meta.idColumn, true
}

func metaFor(e Entity) (tableMeta, bool) {
	m, ok := tables[e]
	return m, ok
}
