package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/rutamundi/backoffice/internal/core/domain"
	"github.com/rutamundi/backoffice/internal/core/service"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error string `json:"error"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"error": "<message>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		_ = c.JSON(code, errorResponse{Error: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	// Known domain errors → deterministic HTTP codes.
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "invalid credentials"
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "access forbidden"
	case errors.Is(err, domain.ErrAdvisorNotFound):
		return http.StatusNotFound, "advisor not found"
	case errors.Is(err, domain.ErrAdvisorExists):
		return http.StatusConflict, "email already registered"
	case errors.Is(err, domain.ErrSelfRoleChange):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, domain.ErrNoChanges):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, domain.ErrClientNotFound):
		return http.StatusNotFound, "client not found"
	case errors.Is(err, domain.ErrRelationshipNotFound):
		return http.StatusNotFound, "relationship not found"
	case errors.Is(err, domain.ErrInvalidRelationshipTarget):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, domain.ErrDocumentNumberRequired):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, service.ErrLeadIncomplete):
		return http.StatusBadRequest, "missing required fields"
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}
