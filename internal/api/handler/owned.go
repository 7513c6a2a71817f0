package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/resumeforge/resume-api/internal/api/metrics"
	"github.com/resumeforge/resume-api/internal/api/middleware"
	"github.com/resumeforge/resume-api/internal/core/ports"
)

// ownedHandler implements the five CRUD endpoints shared by every owned
// record type. Entity handlers wrap it and add their own routes.
type ownedHandler[T any, I any, P any, F any] struct {
	service  ports.OwnedService[T, I, P, F]
	kind     string
	label    string
	filter   func(c echo.Context) F
	newPatch func() P
}

func (h *ownedHandler[T, I, P, F]) list(c echo.Context) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}
	res, err := h.service.List(c.Request().Context(), userID, h.filter(c), middleware.ListOptionsFrom(c))
	if err != nil {
		return err
	}
	return respondList(c, res)
}

func (h *ownedHandler[T, I, P, F]) get(c echo.Context) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}
	item, err := h.service.Get(c.Request().Context(), userID, c.Param("id"))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, item)
}

func (h *ownedHandler[T, I, P, F]) create(c echo.Context) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}
	var in I
	if err := bindAndValidate(c, &in); err != nil {
		return err
	}

	item, err := h.service.Create(c.Request().Context(), userID, in)
	if err != nil {
		return err
	}
	metrics.RecordsCreatedTotal.WithLabelValues(h.kind).Inc()
	return respond(c, http.StatusCreated, item)
}

func (h *ownedHandler[T, I, P, F]) update(c echo.Context) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}
	patch := h.newPatch()
	if err := bindAndValidate(c, patch); err != nil {
		return err
	}

	item, err := h.service.Update(c.Request().Context(), userID, c.Param("id"), patch)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, item)
}

func (h *ownedHandler[T, I, P, F]) delete(c echo.Context) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.Request().Context(), userID, c.Param("id")); err != nil {
		return err
	}
	metrics.RecordsDeletedTotal.WithLabelValues(h.kind).Inc()
	return respondMessage(c, http.StatusOK, h.label+" deleted successfully")
}
