package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/bic-devsphere/devsphere-backend/internal/api/httpx"
	"github.com/bic-devsphere/devsphere-backend/internal/models"
	"github.com/bic-devsphere/devsphere-backend/internal/requestctx"
	"github.com/bic-devsphere/devsphere-backend/internal/services"
	"github.com/bic-devsphere/devsphere-backend/internal/worker"
)

type ProjectHandler struct {
	svc          *services.ProjectService
	contributors *services.ContributorService
	pool         *worker.Pool
	log          *slog.Logger
}

func NewProjectHandler(svc *services.ProjectService, contributors *services.ContributorService, pool *worker.Pool, log *slog.Logger) *ProjectHandler {
	return &ProjectHandler{svc: svc, contributors: contributors, pool: pool, log: log}
}

type projectReq struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	GithubURL   string   `json:"github_url"`
	BannerURL   string   `json:"banner_url"`
	Tags        []string `json:"tags"`
}

func (h *ProjectHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req projectReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "bad_request", "invalid request body", nil)
		return
	}
	p, err := h.svc.Create(r.Context(), models.Project{
		Name:        req.Name,
		Description: req.Description,
		GithubURL:   req.GithubURL,
		BannerURL:   req.BannerURL,
	}, req.Tags)
	if err != nil {
		writeErr(w, err)
		return
	}
	httpx.WriteSuccess(w, http.StatusCreated, "project created", p)
}

func (h *ProjectHandler) Get(w http.ResponseWriter, r *http.Request) {
	p, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeErr(w, err)
		return
	}
	httpx.WriteSuccess(w, http.StatusOK, "project fetched", p)
}

func (h *ProjectHandler) List(w http.ResponseWriter, r *http.Request) {
	projects, err := h.svc.List(r.Context())
	if err != nil {
		writeErr(w, err)
		return
	}
	httpx.WriteSuccess(w, http.StatusOK, "projects fetched", projects)
}

func (h *ProjectHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req projectReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "bad_request", "invalid request body", nil)
		return
	}
	p, err := h.svc.Update(r.Context(), models.Project{
		ID:          chi.URLParam(r, "id"),
		Name:        req.Name,
		Description: req.Description,
		GithubURL:   req.GithubURL,
		BannerURL:   req.BannerURL,
	}, req.Tags)
	if err != nil {
		writeErr(w, err)
		return
	}
	httpx.WriteSuccess(w, http.StatusOK, "project updated", p)
}

func (h *ProjectHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeErr(w, err)
		return
	}
	httpx.WriteSuccess(w, http.StatusOK, "project deleted", nil)
}

// SyncContributors queues a contributor reconciliation for one project and
// returns immediately; GitHub round-trips happen on the worker pool.
func (h *ProjectHandler) SyncContributors(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	// The request context dies with the response, so the job carries only
	// the actor identity over to a fresh one.
	jobCtx := context.Background()
	if actor, ok := requestctx.ActorID(r.Context()); ok {
		jobCtx = requestctx.WithActor(jobCtx, actor)
	}

	queued := h.pool.Submit(func() {
		ctx, cancel := context.WithTimeout(jobCtx, 2*time.Minute)
		defer cancel()
		if err := h.contributors.SyncProject(ctx, id); err != nil {
			h.log.Error("queued contributor sync failed", "project_id", id, "err", err)
		}
	})
	if !queued {
		httpx.WriteError(w, http.StatusServiceUnavailable, "queue_full", "sync queue is full, retry later", nil)
		return
	}
	httpx.WriteSuccess(w, http.StatusAccepted, "contributor sync queued", map[string]any{"project_id": id})
}
