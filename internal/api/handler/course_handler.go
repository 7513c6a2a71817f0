package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/resumeforge/resume-api/internal/core/domain"
	"github.com/resumeforge/resume-api/internal/core/ports"
)

// CourseHandler handles HTTP requests for courses and their progress.
type CourseHandler struct {
	service ports.CourseService
	crud    ownedHandler[domain.Course, domain.CourseInput, *domain.CoursePatch, ports.CourseFilter]
}

func NewCourseHandler(service ports.CourseService) *CourseHandler {
	return &CourseHandler{
		service: service,
		crud: ownedHandler[domain.Course, domain.CourseInput, *domain.CoursePatch, ports.CourseFilter]{
			service: service,
			kind:    "course",
			label:   "Course",
			filter: func(c echo.Context) ports.CourseFilter {
				return ports.CourseFilter{
					Platform: domain.CoursePlatform(c.QueryParam("platform")),
					Status:   domain.CourseStatus(c.QueryParam("status")),
				}
			},
			newPatch: func() *domain.CoursePatch { return &domain.CoursePatch{} },
		},
	}
}

type progressRequest struct {
	Progress *int `json:"progress" validate:"required,min=0,max=100"`
}

// List returns the caller's courses.
//
// @Summary      List courses
// @Tags         courses
// @Produce      json
// @Security     BearerAuth
// @Param        page      query     int     false  "Page (default 1)"
// @Param        limit     query     int     false  "Page size (default 20, max 100)"
// @Param        sort      query     string  false  "Comma list, '-' prefix for descending"
// @Param        fields    query     string  false  "Comma list of fields to return"
// @Param        platform  query     string  false  "Platform filter"
// @Param        status    query     string  false  "Status filter"
// @Success      200       {object}  envelope
// @Router       /courses [get]
func (h *CourseHandler) List(c echo.Context) error { return h.crud.list(c) }

// @Summary      Get course
// @Tags         courses
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Course ID"
// @Success      200  {object}  envelope
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /courses/{id} [get]
func (h *CourseHandler) Get(c echo.Context) error { return h.crud.get(c) }

// @Summary      Create course
// @Tags         courses
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      domain.CourseInput  true  "Course"
// @Success      201   {object}  envelope
// @Failure      400   {object}  ErrorResponse
// @Router       /courses [post]
func (h *CourseHandler) Create(c echo.Context) error { return h.crud.create(c) }

// @Summary      Update course
// @Tags         courses
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string              true  "Course ID"
// @Param        body  body      domain.CoursePatch  true  "Fields to change"
// @Success      200   {object}  envelope
// @Failure      400   {object}  ErrorResponse
// @Failure      403   {object}  ErrorResponse
// @Failure      404   {object}  ErrorResponse
// @Router       /courses/{id} [put]
func (h *CourseHandler) Update(c echo.Context) error { return h.crud.update(c) }

// @Summary      Delete course
// @Tags         courses
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Course ID"
// @Success      200  {object}  envelope
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /courses/{id} [delete]
func (h *CourseHandler) Delete(c echo.Context) error { return h.crud.delete(c) }

// UpdateProgress sets the course progress. Reaching 100 completes the course
// and stamps its completion date once.
//
// @Summary      Update course progress
// @Tags         courses
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string           true  "Course ID"
// @Param        body  body      progressRequest  true  "Progress 0-100"
// @Success      200   {object}  envelope
// @Failure      400   {object}  ErrorResponse
// @Failure      403   {object}  ErrorResponse
// @Failure      404   {object}  ErrorResponse
// @Router       /courses/{id}/progress [patch]
func (h *CourseHandler) UpdateProgress(c echo.Context) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}
	var req progressRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	if req.Progress == nil {
		return domain.NewValidationError("progress", "progress is required")
	}

	course, err := h.service.UpdateProgress(c.Request().Context(), userID, c.Param("id"), *req.Progress)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, course)
}
