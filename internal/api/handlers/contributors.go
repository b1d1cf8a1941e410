package handlers

import (
	"net/http"

	"github.com/bic-devsphere/devsphere-backend/internal/api/httpx"
	"github.com/bic-devsphere/devsphere-backend/internal/services"
)

type ContributorHandler struct {
	svc *services.ContributorService
}

func NewContributorHandler(svc *services.ContributorService) *ContributorHandler {
	return &ContributorHandler{svc: svc}
}

func (h *ContributorHandler) List(w http.ResponseWriter, r *http.Request) {
	contributors, err := h.svc.List(r.Context())
	if err != nil {
		writeErr(w, err)
		return
	}
	httpx.WriteSuccess(w, http.StatusOK, "contributors fetched", contributors)
}
