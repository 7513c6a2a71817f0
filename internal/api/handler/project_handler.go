package handler

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/resumeforge/resume-api/internal/core/domain"
	"github.com/resumeforge/resume-api/internal/core/ports"
)

// ProjectHandler handles HTTP requests for portfolio projects.
type ProjectHandler struct {
	crud ownedHandler[domain.Project, domain.ProjectInput, *domain.ProjectPatch, ports.ProjectFilter]
}

func NewProjectHandler(service ports.ProjectService) *ProjectHandler {
	return &ProjectHandler{
		crud: ownedHandler[domain.Project, domain.ProjectInput, *domain.ProjectPatch, ports.ProjectFilter]{
			service:  service,
			kind:     "project",
			label:    "Project",
			filter:   projectFilter,
			newPatch: func() *domain.ProjectPatch { return &domain.ProjectPatch{} },
		},
	}
}

func projectFilter(c echo.Context) ports.ProjectFilter {
	return ports.ProjectFilter{
		Category:   domain.ProjectCategory(c.QueryParam("category")),
		Status:     domain.ProjectStatus(c.QueryParam("status")),
		Visibility: domain.Visibility(c.QueryParam("visibility")),
		Featured:   boolQuery(c, "featured"),
		Technology: strings.TrimSpace(c.QueryParam("technology")),
	}
}

// List returns the caller's projects.
//
// @Summary      List projects
// @Tags         projects
// @Produce      json
// @Security     BearerAuth
// @Param        page        query     int     false  "Page (default 1)"
// @Param        limit       query     int     false  "Page size (default 20, max 100)"
// @Param        sort        query     string  false  "Comma list, '-' prefix for descending"
// @Param        fields      query     string  false  "Comma list of fields to return"
// @Param        category    query     string  false  "Category filter"
// @Param        status      query     string  false  "Status filter"
// @Param        visibility  query     string  false  "Visibility filter"
// @Param        featured    query     bool    false  "Featured filter"
// @Param        technology  query     string  false  "Projects using this technology"
// @Success      200         {object}  envelope
// @Router       /projects [get]
func (h *ProjectHandler) List(c echo.Context) error { return h.crud.list(c) }

// Get returns one project. Non-owners may read public and unlisted projects.
//
// @Summary      Get project
// @Tags         projects
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Project ID"
// @Success      200  {object}  envelope
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /projects/{id} [get]
func (h *ProjectHandler) Get(c echo.Context) error { return h.crud.get(c) }

// Create stores a new project owned by the caller.
//
// @Summary      Create project
// @Tags         projects
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      domain.ProjectInput  true  "Project"
// @Success      201   {object}  envelope
// @Failure      400   {object}  ErrorResponse
// @Router       /projects [post]
func (h *ProjectHandler) Create(c echo.Context) error { return h.crud.create(c) }

// Update applies a partial update.
//
// @Summary      Update project
// @Tags         projects
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string               true  "Project ID"
// @Param        body  body      domain.ProjectPatch  true  "Fields to change"
// @Success      200   {object}  envelope
// @Failure      403   {object}  ErrorResponse
// @Failure      404   {object}  ErrorResponse
// @Router       /projects/{id} [put]
func (h *ProjectHandler) Update(c echo.Context) error { return h.crud.update(c) }

// Delete removes a project.
//
// @Summary      Delete project
// @Tags         projects
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Project ID"
// @Success      200  {object}  envelope
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /projects/{id} [delete]
func (h *ProjectHandler) Delete(c echo.Context) error { return h.crud.delete(c) }
