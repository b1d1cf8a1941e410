package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bic-devsphere/devsphere-backend/internal/models"
)

func TestProjectCreateResolvesTags(t *testing.T) {
	tags := &fakeTags{}
	svc := NewProjectService(&fakeProjects{}, tags)

	p, err := svc.Create(context.Background(), models.Project{
		Name:      "devsphere",
		GithubURL: "https://github.com/BIC-Devsphere/devsphere",
	}, []string{"go", "backend"})
	require.NoError(t, err)
	require.Len(t, p.Tags, 2)
	assert.Equal(t, "go", p.Tags[0].Name)

	// Same names resolve to the same tag rows.
	p2, err := svc.Create(context.Background(), models.Project{Name: "other"}, []string{"go"})
	require.NoError(t, err)
	assert.Equal(t, p.Tags[0].ID, p2.Tags[0].ID)
}

func TestProjectCreateRejectsNonGithubURL(t *testing.T) {
	svc := NewProjectService(&fakeProjects{}, &fakeTags{})

	_, err := svc.Create(context.Background(), models.Project{
		Name:      "bad",
		GithubURL: "https://gitlab.com/org/repo",
	}, nil)
	assert.Error(t, err)
}

func TestProjectUpdateKeepsTagsWhenNil(t *testing.T) {
	projects := &fakeProjects{}
	tags := &fakeTags{}
	svc := NewProjectService(projects, tags)

	p, err := svc.Create(context.Background(), models.Project{Name: "devsphere"}, []string{"go"})
	require.NoError(t, err)

	p.Description = "updated"
	updated, err := svc.Update(context.Background(), p, nil)
	require.NoError(t, err)
	assert.Len(t, updated.Tags, 1)

	// A non-nil empty slice clears the tag set.
	cleared, err := svc.Update(context.Background(), p, []string{})
	require.NoError(t, err)
	assert.Empty(t, cleared.Tags)
}
