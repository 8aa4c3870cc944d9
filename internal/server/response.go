package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cogniwise/cogniwise/internal/apperr"
	"github.com/cogniwise/cogniwise/internal/auth"
	"github.com/cogniwise/cogniwise/internal/chat"
	"github.com/cogniwise/cogniwise/internal/report"
)

type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

func respondError(c *gin.Context, status int, code, msg string) {
	c.AbortWithStatusJSON(status, ErrorEnvelope{Error: APIError{Message: msg, Code: code}})
}

// Messages shown to clients for the failures they can act on.
const (
	msgRateLimited    = "AI Usage Limit Exceeded. Please wait a minute and try again."
	msgNotConfigured  = "Server configuration error: Gemini API Key missing"
	msgBadCredentials = "Invalid credentials"
)

// writeError renders err by its class. Handlers that need a route-specific
// message check for it before falling back here.
func writeError(c *gin.Context, err error) {
	var (
		vErr  *apperr.ValidationError
		nfErr *apperr.NotFoundError
		upErr *apperr.UpstreamError
		pErr  *apperr.PersistenceError
	)
	switch {
	case errors.As(err, &vErr):
		respondError(c, http.StatusBadRequest, "validation_error", vErr.Error())
	case errors.As(err, &nfErr):
		respondError(c, http.StatusNotFound, "not_found", nfErr.Error())
	case errors.As(err, &upErr) && upErr.RateLimited:
		respondError(c, http.StatusTooManyRequests, "rate_limited", msgRateLimited)
	case errors.As(err, &upErr):
		respondError(c, http.StatusBadGateway, "upstream_unavailable", "AI Service Unavailable: "+upErr.Err.Error())
	case errors.Is(err, chat.ErrNotConfigured):
		respondError(c, http.StatusInternalServerError, "not_configured", msgNotConfigured)
	case errors.Is(err, report.ErrInvalidKind):
		respondError(c, http.StatusBadRequest, "bad_request", "Invalid report type")
	case errors.As(err, &pErr):
		respondError(c, http.StatusInternalServerError, "persistence_error", pErr.Error())
	default:
		respondError(c, http.StatusInternalServerError, "internal_error", err.Error())
	}
	_ = c.Error(err)
}

// writeAuthError maps admin token failures to their status and message.
func writeAuthError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, auth.ErrMissingToken):
		respondError(c, http.StatusUnauthorized, "unauthorized", "Missing admin token")
	case errors.Is(err, auth.ErrTokenExpired):
		respondError(c, http.StatusUnauthorized, "unauthorized", "Admin session expired")
	case errors.Is(err, auth.ErrForbidden):
		respondError(c, http.StatusForbidden, "forbidden", "Unauthorized")
	default:
		respondError(c, http.StatusUnauthorized, "unauthorized", "Invalid admin token")
	}
}

// isMissing reports whether err is a required-field failure.
func isMissing(err error) bool {
	return errors.Is(err, apperr.ErrMissing)
}
