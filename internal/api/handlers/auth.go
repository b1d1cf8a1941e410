package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/bic-devsphere/devsphere-backend/internal/api/httpx"
	"github.com/bic-devsphere/devsphere-backend/internal/services"
)

type AuthHandler struct {
	svc *services.AuthService
}

func NewAuthHandler(svc *services.AuthService) *AuthHandler {
	return &AuthHandler{svc: svc}
}

type signupReq struct {
	Email    string  `json:"email"`
	Password string  `json:"password"`
	MemberID *string `json:"member_id,omitempty"`
}

func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req signupReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" || len(req.Password) < 8 {
		httpx.WriteError(w, http.StatusBadRequest, "bad_request", "email and password (min 8 chars) required", nil)
		return
	}
	user, pair, err := h.svc.Signup(r.Context(), req.Email, req.Password, req.MemberID)
	if err != nil {
		writeErr(w, err)
		return
	}
	httpx.WriteSuccess(w, http.StatusCreated, "admin created", map[string]any{
		"user":   user,
		"tokens": pair,
	})
}

type signinReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Signin(w http.ResponseWriter, r *http.Request) {
	var req signinReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "bad_request", "invalid request body", nil)
		return
	}
	user, pair, err := h.svc.Signin(r.Context(), req.Email, req.Password)
	if err != nil {
		writeErr(w, err)
		return
	}
	httpx.WriteSuccess(w, http.StatusOK, "signed in", map[string]any{
		"user":   user,
		"tokens": pair,
	})
}

type refreshReq struct {
	RefreshToken string `json:"refresh_token"`
}

func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req refreshReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.RefreshToken == "" {
		httpx.WriteError(w, http.StatusBadRequest, "bad_request", "refresh_token required", nil)
		return
	}
	pair, err := h.svc.Refresh(req.RefreshToken)
	if err != nil {
		writeErr(w, err)
		return
	}
	httpx.WriteSuccess(w, http.StatusOK, "token refreshed", pair)
}
