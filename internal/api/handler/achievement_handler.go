package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/resumeforge/resume-api/internal/core/domain"
	"github.com/resumeforge/resume-api/internal/core/ports"
)

type AchievementHandler struct {
	crud ownedHandler[domain.Achievement, domain.AchievementInput, *domain.AchievementPatch, ports.AchievementFilter]
}

func NewAchievementHandler(service ports.AchievementService) *AchievementHandler {
	return &AchievementHandler{
		crud: ownedHandler[domain.Achievement, domain.AchievementInput, *domain.AchievementPatch, ports.AchievementFilter]{
			service: service,
			kind:    "achievement",
			label:   "Achievement",
			filter: func(c echo.Context) ports.AchievementFilter {
				return ports.AchievementFilter{
					Category:   domain.AchievementCategory(c.QueryParam("category")),
					Visibility: domain.Visibility(c.QueryParam("visibility")),
					Featured:   boolQuery(c, "featured"),
				}
			},
			newPatch: func() *domain.AchievementPatch { return &domain.AchievementPatch{} },
		},
	}
}

// List returns the caller's achievements.
//
// @Summary      List achievements
// @Tags         achievements
// @Produce      json
// @Security     BearerAuth
// @Param        page        query     int     false  "Page (default 1)"
// @Param        limit       query     int     false  "Page size (default 20, max 100)"
// @Param        sort        query     string  false  "Comma list, '-' prefix for descending"
// @Param        fields      query     string  false  "Comma list of fields to return"
// @Param        category    query     string  false  "Category filter"
// @Param        visibility  query     string  false  "Visibility filter"
// @Param        featured    query     bool    false  "Featured filter"
// @Success      200         {object}  envelope
// @Router       /achievements [get]
func (h *AchievementHandler) List(c echo.Context) error { return h.crud.list(c) }

// @Summary      Get achievement
// @Tags         achievements
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Achievement ID"
// @Success      200  {object}  envelope
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /achievements/{id} [get]
func (h *AchievementHandler) Get(c echo.Context) error { return h.crud.get(c) }

// @Summary      Create achievement
// @Tags         achievements
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      domain.AchievementInput  true  "Achievement"
// @Success      201   {object}  envelope
// @Failure      400   {object}  ErrorResponse
// @Router       /achievements [post]
func (h *AchievementHandler) Create(c echo.Context) error { return h.crud.create(c) }

// @Summary      Update achievement
// @Tags         achievements
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                   true  "Achievement ID"
// @Param        body  body      domain.AchievementPatch  true  "Fields to change"
// @Success      200   {object}  envelope
// @Failure      403   {object}  ErrorResponse
// @Failure      404   {object}  ErrorResponse
// @Router       /achievements/{id} [put]
func (h *AchievementHandler) Update(c echo.Context) error { return h.crud.update(c) }

// @Summary      Delete achievement
// @Tags         achievements
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Achievement ID"
// @Success      200  {object}  envelope
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /achievements/{id} [delete]
func (h *AchievementHandler) Delete(c echo.Context) error { return h.crud.delete(c) }
