package models

import "time"

// AuditLog is append-only: written once by the audit interceptor, never
// updated or deleted.
type AuditLog struct {
	ID        string         `json:"id"`
	Action    string         `json:"action"` // CREATE|UPDATE|DELETE
	UserID    string         `json:"user_id"`
	Entity    string         `json:"entity"`
	EntityID  string         `json:"entity_id"`
	Changes   map[string]any `json:"changes"` // field -> {before, after}; nil unless action is UPDATE
	CreatedAt time.Time      `json:"created_at"`
}
