package models

import (
	"errors"
	"strings"
	"time"
)

type MemberStatus string

const (
	MemberActive   MemberStatus = "ACTIVE"
	MemberInactive MemberStatus = "INACTIVE"
)

type Member struct {
	ID        string       `json:"id"`
	Name      string       `json:"name"`
	Role      string       `json:"role"`
	AvatarURL string       `json:"avatar_url"`
	Year      time.Time    `json:"year"`
	Status    MemberStatus `json:"status"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

func (m *Member) Validate() error {
	if strings.TrimSpace(m.Name) == "" {
		return errors.New("name required")
	}
	if strings.TrimSpace(m.Role) == "" {
		return errors.New("role required")
	}
	if m.Status == "" {
		m.Status = MemberActive
	}
	return nil
}
