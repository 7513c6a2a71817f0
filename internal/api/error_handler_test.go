package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/resumeforge/resume-api/internal/api/handler"
	"github.com/resumeforge/resume-api/internal/core/domain"
)

func TestHTTPErrorHandler_Mapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code int
		msg  string
	}{
		{"not found", fmt.Errorf("find project: %w", domain.ErrNotFound), http.StatusNotFound, "resource not found"},
		{"forbidden", domain.ErrForbidden, http.StatusForbidden, "not authorized to access this resource"},
		{"credentials", domain.ErrInvalidCredentials, http.StatusUnauthorized, "invalid credentials"},
		{"token", domain.ErrInvalidToken, http.StatusUnauthorized, "not authorized, token failed"},
		{"user exists", domain.ErrUserExists, http.StatusBadRequest, "user already exists"},
		{"duplicate skill", domain.ErrDuplicateSkill, http.StatusBadRequest, "skill already exists"},
		{"user not found", domain.ErrUserNotFound, http.StatusNotFound, "user not found"},
		{"echo error", echo.NewHTTPError(http.StatusTooManyRequests, "slow down"), http.StatusTooManyRequests, "slow down"},
		{"unexpected", errors.New("connection reset"), http.StatusInternalServerError, "internal server error"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := echo.New()
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/api/projects", nil), rec)

			NewHTTPErrorHandler(zerolog.Nop())(tc.err, c)

			if rec.Code != tc.code {
				t.Fatalf("expected %d, got %d", tc.code, rec.Code)
			}
			var body handler.ErrorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("invalid json: %v", err)
			}
			if body.Success || body.Message != tc.msg {
				t.Fatalf("unexpected body: %+v", body)
			}
		})
	}
}

func TestHTTPErrorHandler_ValidationErrors(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodPatch, "/api/courses/1/progress", nil), rec)

	err := &domain.ValidationError{Fields: []domain.FieldError{
		{Field: "progress", Message: "progress cannot exceed 100"},
	}}
	NewHTTPErrorHandler(zerolog.Nop())(fmt.Errorf("update progress: %w", err), c)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	var body handler.ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(body.Errors) != 1 || body.Errors[0].Field != "progress" {
		t.Fatalf("expected field errors, got %+v", body)
	}
}

func TestHTTPErrorHandler_CommittedResponse(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	_ = c.String(http.StatusOK, "done")

	NewHTTPErrorHandler(zerolog.Nop())(errors.New("late"), c)

	if rec.Code != http.StatusOK || rec.Body.String() != "done" {
		t.Fatalf("committed response must not be rewritten: %d %q", rec.Code, rec.Body.String())
	}
}
