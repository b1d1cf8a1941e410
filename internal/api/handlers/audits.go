package handlers

import (
	"net/http"
	"strconv"

	"github.com/bic-devsphere/devsphere-backend/internal/api/httpx"
	"github.com/bic-devsphere/devsphere-backend/internal/services"
)

type AuditHandler struct {
	svc *services.AuditService
}

func NewAuditHandler(svc *services.AuditService) *AuditHandler {
	return &AuditHandler{svc: svc}
}

func (h *AuditHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	logs, err := h.svc.Recent(r.Context(), limit)
	if err != nil {
		writeErr(w, err)
		return
	}
	httpx.WriteSuccess(w, http.StatusOK, "audit logs fetched", logs)
}
