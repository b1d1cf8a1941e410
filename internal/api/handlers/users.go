package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/bic-devsphere/devsphere-backend/internal/api/httpx"
	"github.com/bic-devsphere/devsphere-backend/internal/api/validate"
	"github.com/bic-devsphere/devsphere-backend/internal/models"
	"github.com/bic-devsphere/devsphere-backend/internal/services"
)

type UserHandler struct {
	svc *services.UserService
}

func NewUserHandler(svc *services.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	limit, _ := strconv.Atoi(q.Get("limit"))
	pageData, err := h.svc.List(r.Context(), page, limit, q.Get("role"), q.Get("search"))
	if err != nil {
		writeErr(w, err)
		return
	}
	httpx.WriteSuccess(w, http.StatusOK, "users fetched", pageData)
}

func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	u, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeErr(w, err)
		return
	}
	httpx.WriteSuccess(w, http.StatusOK, "user fetched", u)
}

func (h *UserHandler) Role(w http.ResponseWriter, r *http.Request) {
	role, err := h.svc.Role(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeErr(w, err)
		return
	}
	httpx.WriteSuccess(w, http.StatusOK, "role fetched", map[string]any{"role": role})
}

func (h *UserHandler) UpdateRole(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Role string `json:"role"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "bad_request", "invalid request body", nil)
		return
	}
	if e := validate.OneOf("role", req.Role, string(models.RoleAdmin), string(models.RoleUser)); e != nil {
		writeErr(w, validate.Errs{*e})
		return
	}
	u, err := h.svc.UpdateRole(r.Context(), chi.URLParam(r, "id"), models.UserRole(req.Role))
	if err != nil {
		writeErr(w, err)
		return
	}
	httpx.WriteSuccess(w, http.StatusOK, "role updated", u)
}
