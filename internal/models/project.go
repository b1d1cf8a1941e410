package models

import (
	"errors"
	"strings"
	"time"
)

type Project struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	Description  string        `json:"description"`
	GithubURL    string        `json:"github_url"`
	BannerURL    string        `json:"banner_url,omitempty"`
	Tags         []Tag         `json:"tags"`
	Contributors []Contributor `json:"contributors,omitempty"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}

func (p *Project) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return errors.New("name required")
	}
	if p.GithubURL != "" && !strings.Contains(p.GithubURL, "github.com/") {
		return errors.New("github_url must point at github.com")
	}
	return nil
}
