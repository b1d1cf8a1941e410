package services

import (
	"context"
	"strconv"

	"github.com/bic-devsphere/devsphere-backend/internal/github"
	"github.com/bic-devsphere/devsphere-backend/internal/models"
	repo "github.com/bic-devsphere/devsphere-backend/internal/repository"
)

// In-memory fakes for the repository interfaces the service tests need.

type fakeProjects struct {
	byID map[string]models.Project
}

func (f *fakeProjects) Create(_ context.Context, p models.Project) (models.Project, error) {
	if f.byID == nil {
		f.byID = map[string]models.Project{}
	}
	p.ID = "p" + strconv.Itoa(len(f.byID)+1)
	f.byID[p.ID] = p
	return p, nil
}

func (f *fakeProjects) GetByID(_ context.Context, id string) (models.Project, error) {
	p, ok := f.byID[id]
	if !ok {
		return models.Project{}, repo.ErrNotFound
	}
	return p, nil
}

func (f *fakeProjects) List(_ context.Context) ([]models.Project, error) {
	out := make([]models.Project, 0, len(f.byID))
	for _, p := range f.byID {
		out = append(out, p)
	}
	return out, nil
}

func (f *fakeProjects) Update(_ context.Context, p models.Project) (models.Project, error) {
	if _, ok := f.byID[p.ID]; !ok {
		return models.Project{}, repo.ErrNotFound
	}
	f.byID[p.ID] = p
	return p, nil
}

func (f *fakeProjects) Delete(_ context.Context, id string) error {
	if _, ok := f.byID[id]; !ok {
		return repo.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

type fakeContributors struct {
	byUsername map[string]models.Contributor
	links      map[string]bool // projectID|contributorID
	creates    int
	linkCalls  int
}

func key(projectID, contributorID string) string { return projectID + "|" + contributorID }

func (f *fakeContributors) Create(_ context.Context, c models.Contributor) (models.Contributor, error) {
	if f.byUsername == nil {
		f.byUsername = map[string]models.Contributor{}
	}
	f.creates++
	c.ID = "c" + strconv.Itoa(len(f.byUsername)+1)
	f.byUsername[c.GithubUsername] = c
	return c, nil
}

func (f *fakeContributors) GetByUsername(_ context.Context, username string) (models.Contributor, error) {
	c, ok := f.byUsername[username]
	if !ok {
		return models.Contributor{}, repo.ErrNotFound
	}
	return c, nil
}

func (f *fakeContributors) List(_ context.Context) ([]models.Contributor, error) {
	out := make([]models.Contributor, 0, len(f.byUsername))
	for _, c := range f.byUsername {
		out = append(out, c)
	}
	return out, nil
}

func (f *fakeContributors) ListByProject(_ context.Context, _ string) ([]models.Contributor, error) {
	return nil, nil
}

func (f *fakeContributors) Linked(_ context.Context, projectID, contributorID string) (bool, error) {
	return f.links[key(projectID, contributorID)], nil
}

func (f *fakeContributors) Link(_ context.Context, projectID, contributorID string) error {
	if f.links == nil {
		f.links = map[string]bool{}
	}
	f.linkCalls++
	f.links[key(projectID, contributorID)] = true
	return nil
}

type fakeGithub struct {
	contributors []github.Contributor
	users        map[string]github.User
	listCalls    int
}

func (f *fakeGithub) Contributors(_ context.Context, _ string) ([]github.Contributor, error) {
	f.listCalls++
	return f.contributors, nil
}

func (f *fakeGithub) UserDetail(_ context.Context, login string) (github.User, error) {
	return f.users[login], nil
}

type fakeUsers struct {
	byID    map[string]models.User
	byEmail map[string]models.User
	admins  int64
}

func (f *fakeUsers) Create(_ context.Context, u models.User) (models.User, error) {
	if f.byID == nil {
		f.byID = map[string]models.User{}
		f.byEmail = map[string]models.User{}
	}
	u.ID = "u" + strconv.Itoa(len(f.byID)+1)
	f.byID[u.ID] = u
	f.byEmail[u.Email] = u
	if u.Role == models.RoleAdmin {
		f.admins++
	}
	return u, nil
}

func (f *fakeUsers) GetByID(_ context.Context, id string) (models.User, error) {
	u, ok := f.byID[id]
	if !ok {
		return models.User{}, repo.ErrNotFound
	}
	return u, nil
}

func (f *fakeUsers) GetByEmail(_ context.Context, email string) (models.User, error) {
	u, ok := f.byEmail[email]
	if !ok {
		return models.User{}, repo.ErrNotFound
	}
	return u, nil
}

func (f *fakeUsers) List(_ context.Context, _, _ string, _, _ int) ([]models.User, error) {
	out := make([]models.User, 0, len(f.byID))
	for _, u := range f.byID {
		out = append(out, u)
	}
	return out, nil
}

func (f *fakeUsers) Count(_ context.Context, _, _ string) (int64, error) {
	return int64(len(f.byID)), nil
}

func (f *fakeUsers) CountByRole(_ context.Context, role models.UserRole) (int64, error) {
	if role == models.RoleAdmin {
		return f.admins, nil
	}
	return int64(len(f.byID)) - f.admins, nil
}

func (f *fakeUsers) UpdateRole(_ context.Context, id string, role models.UserRole) (models.User, error) {
	u, ok := f.byID[id]
	if !ok {
		return models.User{}, repo.ErrNotFound
	}
	u.Role = role
	f.byID[id] = u
	return u, nil
}

type fakeTags struct {
	byName map[string]models.Tag
}

func (f *fakeTags) GetOrCreate(_ context.Context, name string) (models.Tag, error) {
	if f.byName == nil {
		f.byName = map[string]models.Tag{}
	}
	if t, ok := f.byName[name]; ok {
		return t, nil
	}
	t := models.Tag{ID: "t" + strconv.Itoa(len(f.byName)+1), Name: name}
	f.byName[name] = t
	return t, nil
}

func (f *fakeTags) List(_ context.Context) ([]models.Tag, error) {
	out := make([]models.Tag, 0, len(f.byName))
	for _, t := range f.byName {
		out = append(out, t)
	}
	return out, nil
}

func (f *fakeTags) Delete(_ context.Context, id string) error {
	for name, t := range f.byName {
		if t.ID == id {
			delete(f.byName, name)
			return nil
		}
	}
	return repo.ErrNotFound
}

type fakeAuditLogs struct {
	gotLimit int
}

func (f *fakeAuditLogs) ListRecent(_ context.Context, limit int) ([]models.AuditLog, error) {
	f.gotLimit = limit
	return nil, nil
}

type fakeMembers struct {
	byID map[string]models.Member
}

func (f *fakeMembers) Create(_ context.Context, m models.Member) (models.Member, error) {
	if f.byID == nil {
		f.byID = map[string]models.Member{}
	}
	m.ID = "m" + strconv.Itoa(len(f.byID)+1)
	f.byID[m.ID] = m
	return m, nil
}

func (f *fakeMembers) GetByID(_ context.Context, id string) (models.Member, error) {
	m, ok := f.byID[id]
	if !ok {
		return models.Member{}, repo.ErrNotFound
	}
	return m, nil
}

func (f *fakeMembers) List(_ context.Context) ([]models.Member, error) {
	out := make([]models.Member, 0, len(f.byID))
	for _, m := range f.byID {
		out = append(out, m)
	}
	return out, nil
}

func (f *fakeMembers) SetStatus(_ context.Context, id string, status models.MemberStatus) (models.Member, error) {
	m, ok := f.byID[id]
	if !ok {
		return models.Member{}, repo.ErrNotFound
	}
	m.Status = status
	f.byID[id] = m
	return m, nil
}
