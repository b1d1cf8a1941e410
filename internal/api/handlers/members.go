package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/bic-devsphere/devsphere-backend/internal/api/httpx"
	"github.com/bic-devsphere/devsphere-backend/internal/api/validate"
	"github.com/bic-devsphere/devsphere-backend/internal/models"
	"github.com/bic-devsphere/devsphere-backend/internal/services"
)

type MemberHandler struct {
	svc *services.MemberService
}

func NewMemberHandler(svc *services.MemberService) *MemberHandler {
	return &MemberHandler{svc: svc}
}

type memberReq struct {
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	AvatarURL string    `json:"avatar_url"`
	Year      time.Time `json:"year"`
}

func (h *MemberHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req memberReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "bad_request", "invalid request body", nil)
		return
	}
	var errs validate.Errs
	if e := validate.Required("name", req.Name); e != nil {
		errs = append(errs, *e)
	}
	if e := validate.Required("role", req.Role); e != nil {
		errs = append(errs, *e)
	}
	if len(errs) > 0 {
		writeErr(w, errs)
		return
	}

	m, err := h.svc.Create(r.Context(), models.Member{
		Name:      req.Name,
		Role:      req.Role,
		AvatarURL: req.AvatarURL,
		Year:      req.Year,
		Status:    models.MemberActive,
	})
	if err != nil {
		writeErr(w, err)
		return
	}
	httpx.WriteSuccess(w, http.StatusCreated, "member created", m)
}

func (h *MemberHandler) List(w http.ResponseWriter, r *http.Request) {
	members, err := h.svc.List(r.Context())
	if err != nil {
		writeErr(w, err)
		return
	}
	httpx.WriteSuccess(w, http.StatusOK, "members fetched", members)
}

func (h *MemberHandler) Status(w http.ResponseWriter, r *http.Request) {
	status, err := h.svc.Status(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeErr(w, err)
		return
	}
	httpx.WriteSuccess(w, http.StatusOK, "status fetched", map[string]any{"status": status})
}

func (h *MemberHandler) Remove(w http.ResponseWriter, r *http.Request) {
	m, err := h.svc.Remove(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeErr(w, err)
		return
	}
	httpx.WriteSuccess(w, http.StatusOK, "member removed", m)
}
