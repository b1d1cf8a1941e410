package services

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bic-devsphere/devsphere-backend/internal/github"
	"github.com/bic-devsphere/devsphere-backend/internal/models"
)

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestSyncProjectInsertsAndLinks(t *testing.T) {
	projects := &fakeProjects{}
	p, err := projects.Create(context.Background(), models.Project{
		Name:      "devsphere",
		GithubURL: "https://github.com/BIC-Devsphere/devsphere",
	})
	require.NoError(t, err)

	contributors := &fakeContributors{}
	gh := &fakeGithub{
		contributors: []github.Contributor{
			{Login: "octocat", AvatarURL: "https://a1", HTMLURL: "https://h1"},
			{Login: "hubot", AvatarURL: "https://a2", HTMLURL: "https://h2"},
		},
		users: map[string]github.User{
			"octocat": {Login: "octocat", AvatarURL: "https://a1-hi-res", HTMLURL: "https://h1"},
		},
	}

	svc := NewContributorService(projects, contributors, gh, discard())
	require.NoError(t, svc.SyncProject(context.Background(), p.ID))

	assert.Equal(t, 2, contributors.creates)
	assert.Equal(t, 2, contributors.linkCalls)

	oc, err := contributors.GetByUsername(context.Background(), "octocat")
	require.NoError(t, err)
	assert.Equal(t, "https://a1-hi-res", oc.AvatarURL) // profile detail wins
}

func TestSyncProjectIsIdempotent(t *testing.T) {
	projects := &fakeProjects{}
	p, err := projects.Create(context.Background(), models.Project{
		Name:      "devsphere",
		GithubURL: "https://github.com/BIC-Devsphere/devsphere",
	})
	require.NoError(t, err)

	contributors := &fakeContributors{}
	gh := &fakeGithub{
		contributors: []github.Contributor{{Login: "octocat"}},
	}
	svc := NewContributorService(projects, contributors, gh, discard())

	require.NoError(t, svc.SyncProject(context.Background(), p.ID))
	require.NoError(t, svc.SyncProject(context.Background(), p.ID))

	assert.Equal(t, 1, contributors.creates)
	assert.Equal(t, 1, contributors.linkCalls)
}

func TestSyncProjectRequiresGithubURL(t *testing.T) {
	projects := &fakeProjects{}
	p, err := projects.Create(context.Background(), models.Project{Name: "no-repo"})
	require.NoError(t, err)

	svc := NewContributorService(projects, &fakeContributors{}, &fakeGithub{}, discard())
	assert.Error(t, svc.SyncProject(context.Background(), p.ID))
}

func TestSyncAllSkipsProjectsWithoutURL(t *testing.T) {
	projects := &fakeProjects{}
	_, err := projects.Create(context.Background(), models.Project{Name: "no-repo"})
	require.NoError(t, err)
	_, err = projects.Create(context.Background(), models.Project{
		Name:      "devsphere",
		GithubURL: "https://github.com/BIC-Devsphere/devsphere",
	})
	require.NoError(t, err)

	gh := &fakeGithub{contributors: []github.Contributor{{Login: "octocat"}}}
	svc := NewContributorService(projects, &fakeContributors{}, gh, discard())

	svc.SyncAll(context.Background())
	assert.Equal(t, 1, gh.listCalls)
}
