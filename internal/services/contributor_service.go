package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/bic-devsphere/devsphere-backend/internal/github"
	"github.com/bic-devsphere/devsphere-backend/internal/metrics"
	"github.com/bic-devsphere/devsphere-backend/internal/models"
	repo "github.com/bic-devsphere/devsphere-backend/internal/repository"
)

// GithubAPI is the slice of the GitHub client the reconciliation needs.
type GithubAPI interface {
	Contributors(ctx context.Context, repoName string) ([]github.Contributor, error)
	UserDetail(ctx context.Context, login string) (github.User, error)
}

type ContributorService struct {
	projects     repo.Projects
	contributors repo.Contributors
	gh           GithubAPI
	log          *slog.Logger
}

func NewContributorService(projects repo.Projects, contributors repo.Contributors, gh GithubAPI, log *slog.Logger) *ContributorService {
	return &ContributorService{projects: projects, contributors: contributors, gh: gh, log: log}
}

func (s *ContributorService) List(ctx context.Context) ([]models.Contributor, error) {
	return s.contributors.List(ctx)
}

// SyncProject reconciles the remote contributor list of one project against
// local state: missing contributors are inserted, missing project links are
// added, existing rows are left untouched. Safe to run repeatedly.
func (s *ContributorService) SyncProject(ctx context.Context, projectID string) error {
	p, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		return err
	}
	if p.GithubURL == "" {
		return errors.New("project has no github url")
	}
	repoName, err := github.RepoFromURL(p.GithubURL)
	if err != nil {
		return err
	}
	remote, err := s.gh.Contributors(ctx, repoName)
	if err != nil {
		return err
	}

	for _, rc := range remote {
		local, err := s.contributors.GetByUsername(ctx, rc.Login)
		switch {
		case errors.Is(err, repo.ErrNotFound):
			c := models.Contributor{
				GithubUsername: rc.Login,
				AvatarURL:      rc.AvatarURL,
				ProfileURL:     rc.HTMLURL,
			}
			// Profile detail is enrichment only; the listing already has
			// everything required.
			if detail, derr := s.gh.UserDetail(ctx, rc.Login); derr == nil {
				if detail.AvatarURL != "" {
					c.AvatarURL = detail.AvatarURL
				}
				if detail.HTMLURL != "" {
					c.ProfileURL = detail.HTMLURL
				}
			}
			local, err = s.contributors.Create(ctx, c)
			if err != nil {
				return err
			}
		case err != nil:
			return err
		}

		linked, err := s.contributors.Linked(ctx, p.ID, local.ID)
		if err != nil {
			return err
		}
		if !linked {
			if err := s.contributors.Link(ctx, p.ID, local.ID); err != nil {
				return err
			}
		}
	}
	return nil
}

// SyncAll runs SyncProject for every project with a GitHub URL. A failing
// project is logged and skipped; the run continues.
func (s *ContributorService) SyncAll(ctx context.Context) {
	metrics.ContributorSyncRuns.Inc()
	projects, err := s.projects.List(ctx)
	if err != nil {
		s.log.Error("contributor sync: listing projects", "err", err)
		return
	}
	for _, p := range projects {
		if p.GithubURL == "" {
			continue
		}
		if err := s.SyncProject(ctx, p.ID); err != nil {
			metrics.ContributorSyncFailures.Inc()
			s.log.Error("contributor sync failed", "project", p.Name, "err", err)
		}
	}
}
