package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/resumeforge/resume-api/internal/api/middleware"
	"github.com/resumeforge/resume-api/internal/core/domain"
	"github.com/resumeforge/resume-api/internal/core/ports"
)

// ErrorResponse is the envelope rendered for every failed request.
type ErrorResponse struct {
	Success bool                `json:"success"`
	Message string              `json:"message"`
	Errors  []domain.FieldError `json:"errors,omitempty"`
}

// envelope is the JSON wrapper shared by every success response.
type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Count   *int   `json:"count,omitempty"`
	Total   *int64 `json:"total,omitempty"`
	Page    *int   `json:"page,omitempty"`
	Pages   *int   `json:"pages,omitempty"`
	Data    any    `json:"data,omitempty"`
}

// callerID returns the authenticated user id and fails fast with 401 when the
// Auth middleware did not populate it.
func callerID(c echo.Context) (string, error) {
	id := middleware.UserID(c)
	if id == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return id, nil
}

func respond(c echo.Context, status int, data any) error {
	return c.JSON(status, envelope{Success: true, Data: data})
}

func respondMessage(c echo.Context, status int, msg string) error {
	return c.JSON(status, envelope{Success: true, Message: msg})
}

// respondList renders one page; data is always an array, never null. A
// projected page is rendered as stored, with only the selected fields.
func respondList[T any](c echo.Context, res *ports.ListResult[T]) error {
	var data any
	var count int
	if res.Projected != nil {
		data, count = res.Projected, len(res.Projected)
	} else {
		items := res.Items
		if items == nil {
			items = []*T{}
		}
		data, count = items, len(items)
	}
	return c.JSON(http.StatusOK, envelope{
		Success: true,
		Count:   &count,
		Total:   &res.Total,
		Page:    &res.Page,
		Pages:   &res.Pages,
		Data:    data,
	})
}

// bindAndValidate decodes the request body into dst and runs the registered
// validator over it.
func bindAndValidate(c echo.Context, dst any) error {
	if err := c.Bind(dst); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if c.Echo().Validator == nil {
		return nil
	}
	return c.Validate(dst)
}

// boolQuery parses an optional boolean filter; anything unparsable is ignored.
func boolQuery(c echo.Context, name string) *bool {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return nil
	}
	return &b
}
