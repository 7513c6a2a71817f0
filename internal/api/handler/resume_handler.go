package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/resumeforge/resume-api/internal/api/metrics"
	"github.com/resumeforge/resume-api/internal/core/domain"
	"github.com/resumeforge/resume-api/internal/core/ports"
)

// ResumeHandler handles HTTP requests for resumes.
type ResumeHandler struct {
	service ports.ResumeService
	crud    ownedHandler[domain.Resume, domain.ResumeInput, *domain.ResumePatch, ports.ResumeFilter]
}

func NewResumeHandler(service ports.ResumeService) *ResumeHandler {
	return &ResumeHandler{
		service: service,
		crud: ownedHandler[domain.Resume, domain.ResumeInput, *domain.ResumePatch, ports.ResumeFilter]{
			service:  service,
			kind:     "resume",
			label:    "Resume",
			filter:   resumeFilter,
			newPatch: func() *domain.ResumePatch { return &domain.ResumePatch{} },
		},
	}
}

func resumeFilter(c echo.Context) ports.ResumeFilter {
	return ports.ResumeFilter{
		Template: domain.Template(c.QueryParam("template")),
		IsPublic: boolQuery(c, "isPublic"),
	}
}

// List returns the caller's resumes.
//
// @Summary      List resumes
// @Tags         resumes
// @Produce      json
// @Security     BearerAuth
// @Param        page      query     int     false  "Page (default 1)"
// @Param        limit     query     int     false  "Page size (default 20, max 100)"
// @Param        sort      query     string  false  "Comma list, '-' prefix for descending"
// @Param        fields    query     string  false  "Comma list of fields to return"
// @Param        template  query     string  false  "Template filter"
// @Param        isPublic  query     bool    false  "Public flag filter"
// @Success      200       {object}  envelope
// @Failure      401       {object}  ErrorResponse
// @Router       /resumes [get]
func (h *ResumeHandler) List(c echo.Context) error { return h.crud.list(c) }

// Get returns one resume. Non-owners may read public resumes only.
//
// @Summary      Get resume
// @Tags         resumes
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Resume ID"
// @Success      200  {object}  envelope
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /resumes/{id} [get]
func (h *ResumeHandler) Get(c echo.Context) error { return h.crud.get(c) }

// Create stores a new resume owned by the caller.
//
// @Summary      Create resume
// @Tags         resumes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      domain.ResumeInput  true  "Resume"
// @Success      201   {object}  envelope
// @Failure      400   {object}  ErrorResponse
// @Router       /resumes [post]
func (h *ResumeHandler) Create(c echo.Context) error { return h.crud.create(c) }

// Update applies a partial update and bumps the resume version.
//
// @Summary      Update resume
// @Tags         resumes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string              true  "Resume ID"
// @Param        body  body      domain.ResumePatch  true  "Fields to change"
// @Success      200   {object}  envelope
// @Failure      400   {object}  ErrorResponse
// @Failure      403   {object}  ErrorResponse
// @Failure      404   {object}  ErrorResponse
// @Router       /resumes/{id} [put]
func (h *ResumeHandler) Update(c echo.Context) error { return h.crud.update(c) }

// Delete removes a resume.
//
// @Summary      Delete resume
// @Tags         resumes
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Resume ID"
// @Success      200  {object}  envelope
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /resumes/{id} [delete]
func (h *ResumeHandler) Delete(c echo.Context) error { return h.crud.delete(c) }

// Duplicate copies a resume into a new one titled "<title> (Copy)".
//
// @Summary      Duplicate resume
// @Tags         resumes
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Resume ID"
// @Success      201  {object}  envelope
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /resumes/{id}/duplicate [post]
func (h *ResumeHandler) Duplicate(c echo.Context) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}
	resume, err := h.service.Duplicate(c.Request().Context(), userID, c.Param("id"))
	if err != nil {
		return err
	}
	metrics.RecordsCreatedTotal.WithLabelValues("resume").Inc()
	return respond(c, http.StatusCreated, resume)
}

// GenerateSummary fills the resume summary from its experience and skills.
//
// @Summary      Generate resume summary
// @Tags         resumes
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Resume ID"
// @Success      200  {object}  envelope
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /resumes/{id}/generate-summary [post]
func (h *ResumeHandler) GenerateSummary(c echo.Context) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}
	resume, err := h.service.GenerateSummary(c.Request().Context(), userID, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, envelope{Success: true, Message: "Summary generated", Data: resume})
}
