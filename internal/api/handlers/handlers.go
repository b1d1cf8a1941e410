// Package handlers holds the HTTP layer: decode, call service, encode.
package handlers

import (
	"errors"
	"net/http"

	"github.com/bic-devsphere/devsphere-backend/internal/api/httpx"
	"github.com/bic-devsphere/devsphere-backend/internal/api/validate"
	"github.com/bic-devsphere/devsphere-backend/internal/repository"
	"github.com/bic-devsphere/devsphere-backend/internal/services"
)

// writeErr maps service/repository errors onto the error envelope.
func writeErr(w http.ResponseWriter, err error) {
	var verrs validate.Errs
	switch {
	case errors.Is(err, repository.ErrNotFound):
		httpx.WriteError(w, http.StatusNotFound, "not_found", "resource not found", nil)
	case errors.As(err, &verrs):
		httpx.WriteError(w, http.StatusBadRequest, "validation_error", "invalid request", verrs)
	case errors.Is(err, services.ErrSignupClosed):
		httpx.WriteError(w, http.StatusForbidden, "signup_closed", err.Error(), nil)
	case errors.Is(err, services.ErrInvalidCredentials):
		httpx.WriteError(w, http.StatusUnauthorized, "invalid_credentials", err.Error(), nil)
	default:
		httpx.WriteError(w, http.StatusBadRequest, "bad_request", err.Error(), nil)
	}
}
