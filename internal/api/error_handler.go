package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/resumeforge/resume-api/internal/api/handler"
	"github.com/resumeforge/resume-api/internal/core/domain"
)

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"success": false, "message": "...", "errors": [...]}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, body := resolveError(err, log, c)
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, body)
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, handler.ErrorResponse) {
	fail := func(code int, msg string) (int, handler.ErrorResponse) {
		return code, handler.ErrorResponse{Success: false, Message: msg}
	}

	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return http.StatusBadRequest, handler.ErrorResponse{
			Success: false,
			Message: ve.Error(),
			Errors:  ve.Fields,
		}
	}

	// Echo's own errors (bind failures, 404 from router, auth middleware, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		if he.Code >= http.StatusInternalServerError {
			log.Error().Err(err).Str("method", c.Request().Method).Str("path", c.Path()).Msg("http error")
		}
		return fail(he.Code, fmt.Sprintf("%v", he.Message))
	}

	// Known domain errors → deterministic HTTP codes.
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return fail(http.StatusNotFound, "resource not found")
	case errors.Is(err, domain.ErrUserNotFound):
		return fail(http.StatusNotFound, "user not found")
	case errors.Is(err, domain.ErrForbidden):
		return fail(http.StatusForbidden, "not authorized to access this resource")
	case errors.Is(err, domain.ErrInvalidCredentials):
		return fail(http.StatusUnauthorized, "invalid credentials")
	case errors.Is(err, domain.ErrInvalidToken):
		return fail(http.StatusUnauthorized, "not authorized, token failed")
	case errors.Is(err, domain.ErrUserExists):
		return fail(http.StatusBadRequest, "user already exists")
	case errors.Is(err, domain.ErrDuplicateSkill):
		return fail(http.StatusBadRequest, "skill already exists")
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return fail(http.StatusInternalServerError, "internal server error")
}
