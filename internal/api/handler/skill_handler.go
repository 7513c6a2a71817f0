package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/resumeforge/resume-api/internal/core/domain"
	"github.com/resumeforge/resume-api/internal/core/ports"
)

// SkillHandler handles HTTP requests for skills.
type SkillHandler struct {
	service ports.SkillService
	crud    ownedHandler[domain.Skill, domain.SkillInput, *domain.SkillPatch, ports.SkillFilter]
}

func NewSkillHandler(service ports.SkillService) *SkillHandler {
	return &SkillHandler{
		service: service,
		crud: ownedHandler[domain.Skill, domain.SkillInput, *domain.SkillPatch, ports.SkillFilter]{
			service: service,
			kind:    "skill",
			label:   "Skill",
			filter: func(c echo.Context) ports.SkillFilter {
				return ports.SkillFilter{
					Category:    domain.SkillCategory(c.QueryParam("category")),
					Proficiency: domain.Proficiency(c.QueryParam("proficiency")),
				}
			},
			newPatch: func() *domain.SkillPatch { return &domain.SkillPatch{} },
		},
	}
}

type groupedSkillsResponse struct {
	Success bool                                     `json:"success"`
	Count   int                                      `json:"count"`
	Data    map[domain.SkillCategory][]*domain.Skill `json:"data"`
}

// List returns the caller's skills.
//
// @Summary      List skills
// @Tags         skills
// @Produce      json
// @Security     BearerAuth
// @Param        page         query     int     false  "Page (default 1)"
// @Param        limit        query     int     false  "Page size (default 20, max 100)"
// @Param        sort         query     string  false  "Comma list, '-' prefix for descending"
// @Param        fields       query     string  false  "Comma list of fields to return"
// @Param        category     query     string  false  "Category filter"
// @Param        proficiency  query     string  false  "Proficiency filter"
// @Success      200          {object}  envelope
// @Router       /skills [get]
func (h *SkillHandler) List(c echo.Context) error { return h.crud.list(c) }

// Grouped returns every skill of the caller keyed by category.
//
// @Summary      Skills grouped by category
// @Tags         skills
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  groupedSkillsResponse
// @Router       /skills/grouped [get]
func (h *SkillHandler) Grouped(c echo.Context) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}
	groups, total, err := h.service.Grouped(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	if groups == nil {
		groups = map[domain.SkillCategory][]*domain.Skill{}
	}
	return c.JSON(http.StatusOK, groupedSkillsResponse{Success: true, Count: total, Data: groups})
}

// @Summary      Get skill
// @Tags         skills
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Skill ID"
// @Success      200  {object}  envelope
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /skills/{id} [get]
func (h *SkillHandler) Get(c echo.Context) error { return h.crud.get(c) }

// Create stores a new skill. Names are unique per user.
//
// @Summary      Create skill
// @Tags         skills
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      domain.SkillInput  true  "Skill"
// @Success      201   {object}  envelope
// @Failure      400   {object}  ErrorResponse
// @Router       /skills [post]
func (h *SkillHandler) Create(c echo.Context) error { return h.crud.create(c) }

// @Summary      Update skill
// @Tags         skills
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "Skill ID"
// @Param        body  body      domain.SkillPatch  true  "Fields to change"
// @Success      200   {object}  envelope
// @Failure      403   {object}  ErrorResponse
// @Failure      404   {object}  ErrorResponse
// @Router       /skills/{id} [put]
func (h *SkillHandler) Update(c echo.Context) error { return h.crud.update(c) }

// @Summary      Delete skill
// @Tags         skills
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Skill ID"
// @Success      200  {object}  envelope
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /skills/{id} [delete]
func (h *SkillHandler) Delete(c echo.Context) error { return h.crud.delete(c) }
