// Package github is a minimal client for the two GitHub endpoints the
// contributor reconciliation needs.
package github

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"time"
)

const apiVersion = "2022-11-28"

type Contributor struct {
	Login         string `json:"login"`
	AvatarURL     string `json:"avatar_url"`
	HTMLURL       string `json:"html_url"`
	Contributions int    `json:"contributions"`
}

type User struct {
	Login     string `json:"login"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatar_url"`
	HTMLURL   string `json:"html_url"`
}

type Client struct {
	httpc   *http.Client
	baseURL string
	token   string
	org     string
}

func NewClient(token, org string) *Client {
	return &Client{
		httpc:   &http.Client{Timeout: 15 * time.Second},
		baseURL: "https://api.github.com",
		token:   token,
		org:     org,
	}
}

// WithBaseURL points the client at a different API host. Used by tests.
func (c *Client) WithBaseURL(u string) *Client {
	c.baseURL = u
	return c
}

// Contributors lists the contributors of a repository in the configured org.
func (c *Client) Contributors(ctx context.Context, repo string) ([]Contributor, error) {
	var out []Contributor
	url := fmt.Sprintf("%s/repos/%s/%s/contributors", c.baseURL, c.org, repo)
	if err := c.getJSON(ctx, url, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// UserDetail fetches the public profile of a GitHub user.
func (c *Client) UserDetail(ctx context.Context, login string) (User, error) {
	var out User
	err := c.getJSON(ctx, c.baseURL+"/users/"+login, &out)
	return out, err
}

func (c *Client) getJSON(ctx context.Context, url string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	req.Header.Set("X-GitHub-Api-Version", apiVersion)
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("github: %s returned %d", url, resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(v)
}

var repoRe = regexp.MustCompile(`github\.com/([^/]+)/([^/?#]+)`)

// RepoFromURL extracts the repository name from a GitHub URL.
func RepoFromURL(raw string) (string, error) {
	m := repoRe.FindStringSubmatch(raw)
	if m == nil {
		return "", errors.New("github: invalid repository URL")
	}
	return m[2], nil
}
