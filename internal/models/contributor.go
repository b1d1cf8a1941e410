package models

import "time"

type Contributor struct {
	ID             string    `json:"id"`
	GithubUsername string    `json:"github_username"`
	AvatarURL      string    `json:"avatar_url"`
	ProfileURL     string    `json:"profile_url"`
	CreatedAt      time.Time `json:"created_at"`
}
