package handler

import (
	"context"
	"net/http"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/resumeforge/resume-api/internal/core/domain"
	"github.com/resumeforge/resume-api/internal/core/ports"
)

type stubOwnedService[T any, I any, P any, F any] struct {
	listFn   func(ctx context.Context, owner string, filter F, opts ports.ListOptions) (*ports.ListResult[T], error)
	getFn    func(ctx context.Context, requester, id string) (*T, error)
	createFn func(ctx context.Context, owner string, in I) (*T, error)
	updateFn func(ctx context.Context, owner, id string, patch P) (*T, error)
	deleteFn func(ctx context.Context, owner, id string) error
}

func (s *stubOwnedService[T, I, P, F]) List(ctx context.Context, owner string, filter F, opts ports.ListOptions) (*ports.ListResult[T], error) {
	return s.listFn(ctx, owner, filter, opts)
}

func (s *stubOwnedService[T, I, P, F]) Get(ctx context.Context, requester, id string) (*T, error) {
	return s.getFn(ctx, requester, id)
}

func (s *stubOwnedService[T, I, P, F]) Create(ctx context.Context, owner string, in I) (*T, error) {
	return s.createFn(ctx, owner, in)
}

func (s *stubOwnedService[T, I, P, F]) Update(ctx context.Context, owner, id string, patch P) (*T, error) {
	return s.updateFn(ctx, owner, id, patch)
}

func (s *stubOwnedService[T, I, P, F]) Delete(ctx context.Context, owner, id string) error {
	return s.deleteFn(ctx, owner, id)
}

type stubProjectService struct {
	stubOwnedService[domain.Project, domain.ProjectInput, *domain.ProjectPatch, ports.ProjectFilter]
}

type stubResumeService struct {
	stubOwnedService[domain.Resume, domain.ResumeInput, *domain.ResumePatch, ports.ResumeFilter]
	duplicateFn func(ctx context.Context, owner, id string) (*domain.Resume, error)
	summaryFn   func(ctx context.Context, owner, id string) (*domain.Resume, error)
}

func (s *stubResumeService) Duplicate(ctx context.Context, owner, id string) (*domain.Resume, error) {
	return s.duplicateFn(ctx, owner, id)
}

func (s *stubResumeService) GenerateSummary(ctx context.Context, owner, id string) (*domain.Resume, error) {
	return s.summaryFn(ctx, owner, id)
}

type stubCourseService struct {
	stubOwnedService[domain.Course, domain.CourseInput, *domain.CoursePatch, ports.CourseFilter]
	progressFn func(ctx context.Context, owner, id string, progress int) (*domain.Course, error)
}

func (s *stubCourseService) UpdateProgress(ctx context.Context, owner, id string, progress int) (*domain.Course, error) {
	return s.progressFn(ctx, owner, id, progress)
}

type stubSkillService struct {
	stubOwnedService[domain.Skill, domain.SkillInput, *domain.SkillPatch, ports.SkillFilter]
	groupedFn func(ctx context.Context, owner string) (map[domain.SkillCategory][]*domain.Skill, int, error)
}

func (s *stubSkillService) Grouped(ctx context.Context, owner string) (map[domain.SkillCategory][]*domain.Skill, int, error) {
	return s.groupedFn(ctx, owner)
}

func TestProjectHandler_List_Envelope(t *testing.T) {
	e := newTestEcho()
	stub := &stubProjectService{}
	stub.listFn = func(ctx context.Context, owner string, f ports.ProjectFilter, opts ports.ListOptions) (*ports.ListResult[domain.Project], error) {
		if owner != testUserID {
			t.Fatalf("unexpected owner %q", owner)
		}
		if f.Category != domain.ProjectCategory("web") || f.Featured == nil || !*f.Featured || f.Technology != "Go" {
			t.Fatalf("unexpected filter: %+v", f)
		}
		return &ports.ListResult[domain.Project]{
			Items: []*domain.Project{{Title: "X"}, {Title: "Y"}},
			Total: 45, Page: 2, Limit: 20, Pages: 3,
		}, nil
	}
	c, rec := newJSONContext(e, http.MethodGet, "/api/projects?category=web&featured=true&technology=Go", "", testUserID)

	if err := NewProjectHandler(stub).List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	resp := decodeBody(t, rec)
	if resp["success"] != true || resp["count"] != float64(2) || resp["total"] != float64(45) ||
		resp["page"] != float64(2) || resp["pages"] != float64(3) {
		t.Fatalf("unexpected envelope: %+v", resp)
	}
	if data, ok := resp["data"].([]any); !ok || len(data) != 2 {
		t.Fatalf("expected 2 items, got %+v", resp["data"])
	}
}

func TestProjectHandler_List_EmptyDataIsArray(t *testing.T) {
	e := newTestEcho()
	stub := &stubProjectService{}
	stub.listFn = func(context.Context, string, ports.ProjectFilter, ports.ListOptions) (*ports.ListResult[domain.Project], error) {
		return &ports.ListResult[domain.Project]{Page: 1, Limit: 20}, nil
	}
	c, rec := newJSONContext(e, http.MethodGet, "/api/projects", "", testUserID)

	if err := NewProjectHandler(stub).List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	resp := decodeBody(t, rec)
	if data, ok := resp["data"].([]any); !ok || len(data) != 0 {
		t.Fatalf("expected empty array, got %+v", resp["data"])
	}
	if resp["count"] != float64(0) || resp["total"] != float64(0) {
		t.Fatalf("expected zero counts rendered, got %+v", resp)
	}
}

func TestProjectHandler_List_ProjectedFieldsOnly(t *testing.T) {
	e := newTestEcho()
	id := primitive.NewObjectID()
	stub := &stubProjectService{}
	stub.listFn = func(context.Context, string, ports.ProjectFilter, ports.ListOptions) (*ports.ListResult[domain.Project], error) {
		return &ports.ListResult[domain.Project]{
			Projected: []map[string]any{{"_id": id, "title": "X"}},
			Total:     1, Page: 1, Limit: 20, Pages: 1,
		}, nil
	}
	c, rec := newJSONContext(e, http.MethodGet, "/api/projects?fields=title", "", testUserID)

	if err := NewProjectHandler(stub).List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	resp := decodeBody(t, rec)
	if resp["count"] != float64(1) {
		t.Fatalf("unexpected count: %+v", resp)
	}
	data, ok := resp["data"].([]any)
	if !ok || len(data) != 1 {
		t.Fatalf("expected 1 item, got %+v", resp["data"])
	}
	item := data[0].(map[string]any)
	if len(item) != 2 || item["_id"] != id.Hex() || item["title"] != "X" {
		t.Fatalf("expected only _id and title, got %v", item)
	}
}

func TestProjectHandler_Create(t *testing.T) {
	e := newTestEcho()
	stub := &stubProjectService{}
	stub.createFn = func(ctx context.Context, owner string, in domain.ProjectInput) (*domain.Project, error) {
		if owner != testUserID || in.Title != "X" || len(in.Technologies) != 1 {
			t.Fatalf("unexpected create: %s %+v", owner, in)
		}
		return &domain.Project{Title: in.Title, Description: in.Description, Technologies: in.Technologies}, nil
	}
	c, rec := newJSONContext(e, http.MethodPost, "/api/projects",
		`{"title":"X","description":"Y","technologies":["Go"],"startDate":"2024-01-01"}`, testUserID)

	if err := NewProjectHandler(stub).Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
}

func TestProjectHandler_Create_MissingTitle(t *testing.T) {
	e := newTestEcho()
	stub := &stubProjectService{}
	stub.createFn = func(context.Context, string, domain.ProjectInput) (*domain.Project, error) {
		t.Fatalf("should not be called")
		return nil, nil
	}
	c, _ := newJSONContext(e, http.MethodPost, "/api/projects", `{"description":"Y"}`, testUserID)

	ve, ok := NewProjectHandler(stub).Create(c).(*domain.ValidationError)
	if !ok || ve.Fields[0].Field != "title" {
		t.Fatalf("expected title validation error, got %+v", ve)
	}
}

func TestProjectHandler_Get_Forbidden(t *testing.T) {
	e := newTestEcho()
	stub := &stubProjectService{}
	stub.getFn = func(ctx context.Context, requester, id string) (*domain.Project, error) {
		return nil, domain.ErrForbidden
	}
	c, _ := newJSONContext(e, http.MethodGet, "/api/projects/abc", "", testUserID)
	c.SetParamNames("id")
	c.SetParamValues("abc")

	if err := NewProjectHandler(stub).Get(c); err != domain.ErrForbidden {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestProjectHandler_Update_PassesPatch(t *testing.T) {
	e := newTestEcho()
	stub := &stubProjectService{}
	stub.updateFn = func(ctx context.Context, owner, id string, patch *domain.ProjectPatch) (*domain.Project, error) {
		if id != "p1" || patch.Title == nil || *patch.Title != "New" || patch.Description != nil {
			t.Fatalf("unexpected update: %s %+v", id, patch)
		}
		return &domain.Project{Title: *patch.Title}, nil
	}
	c, rec := newJSONContext(e, http.MethodPut, "/api/projects/p1", `{"title":"New"}`, testUserID)
	c.SetParamNames("id")
	c.SetParamValues("p1")

	if err := NewProjectHandler(stub).Update(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestProjectHandler_Delete(t *testing.T) {
	e := newTestEcho()
	stub := &stubProjectService{}
	stub.deleteFn = func(ctx context.Context, owner, id string) error { return nil }
	c, rec := newJSONContext(e, http.MethodDelete, "/api/projects/p1", "", testUserID)
	c.SetParamNames("id")
	c.SetParamValues("p1")

	if err := NewProjectHandler(stub).Delete(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if resp := decodeBody(t, rec); resp["message"] != "Project deleted successfully" {
		t.Fatalf("unexpected body: %+v", resp)
	}
}

func TestCourseHandler_UpdateProgress_OutOfRange(t *testing.T) {
	e := newTestEcho()
	stub := &stubCourseService{}
	stub.progressFn = func(context.Context, string, string, int) (*domain.Course, error) {
		t.Fatalf("should not be called")
		return nil, nil
	}
	c, _ := newJSONContext(e, http.MethodPatch, "/api/courses/c1/progress", `{"progress":150}`, testUserID)
	c.SetParamNames("id")
	c.SetParamValues("c1")

	ve, ok := NewCourseHandler(stub).UpdateProgress(c).(*domain.ValidationError)
	if !ok || ve.Fields[0].Field != "progress" {
		t.Fatalf("expected progress validation error, got %v", ve)
	}
}

func TestCourseHandler_UpdateProgress_ZeroIsValid(t *testing.T) {
	e := newTestEcho()
	stub := &stubCourseService{}
	stub.progressFn = func(ctx context.Context, owner, id string, progress int) (*domain.Course, error) {
		if progress != 0 {
			t.Fatalf("unexpected progress %d", progress)
		}
		return &domain.Course{Progress: 0}, nil
	}
	c, rec := newJSONContext(e, http.MethodPatch, "/api/courses/c1/progress", `{"progress":0}`, testUserID)
	c.SetParamNames("id")
	c.SetParamValues("c1")

	if err := NewCourseHandler(stub).UpdateProgress(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestCourseHandler_UpdateProgress_Missing(t *testing.T) {
	e := newTestEcho()
	c, _ := newJSONContext(e, http.MethodPatch, "/api/courses/c1/progress", `{}`, testUserID)

	if _, ok := NewCourseHandler(&stubCourseService{}).UpdateProgress(c).(*domain.ValidationError); !ok {
		t.Fatalf("expected validation error")
	}
}

func TestSkillHandler_Grouped(t *testing.T) {
	e := newTestEcho()
	stub := &stubSkillService{}
	stub.groupedFn = func(ctx context.Context, owner string) (map[domain.SkillCategory][]*domain.Skill, int, error) {
		return map[domain.SkillCategory][]*domain.Skill{
			domain.SkillCategory("programming"): {{Name: "Go"}, {Name: "Rust"}},
			domain.SkillCategory("database"):    {{Name: "MongoDB"}},
		}, 3, nil
	}
	c, rec := newJSONContext(e, http.MethodGet, "/api/skills/grouped", "", testUserID)

	if err := NewSkillHandler(stub).Grouped(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	resp := decodeBody(t, rec)
	if resp["count"] != float64(3) {
		t.Fatalf("expected count 3, got %+v", resp["count"])
	}
	data := resp["data"].(map[string]any)
	if len(data["programming"].([]any)) != 2 || len(data["database"].([]any)) != 1 {
		t.Fatalf("unexpected groups: %+v", data)
	}
}

func TestResumeHandler_Duplicate(t *testing.T) {
	e := newTestEcho()
	stub := &stubResumeService{}
	stub.duplicateFn = func(ctx context.Context, owner, id string) (*domain.Resume, error) {
		return &domain.Resume{ID: primitive.NewObjectID(), Title: "CV (Copy)", Version: 1}, nil
	}
	c, rec := newJSONContext(e, http.MethodPost, "/api/resumes/r1/duplicate", "", testUserID)
	c.SetParamNames("id")
	c.SetParamValues("r1")

	if err := NewResumeHandler(stub).Duplicate(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	data := decodeBody(t, rec)["data"].(map[string]any)
	if data["title"] != "CV (Copy)" {
		t.Fatalf("unexpected data: %+v", data)
	}
}

func TestResumeHandler_GenerateSummary_NotFound(t *testing.T) {
	e := newTestEcho()
	stub := &stubResumeService{}
	stub.summaryFn = func(ctx context.Context, owner, id string) (*domain.Resume, error) {
		return nil, domain.ErrNotFound
	}
	c, _ := newJSONContext(e, http.MethodPost, "/api/resumes/r1/generate-summary", "", testUserID)

	if err := NewResumeHandler(stub).GenerateSummary(c); err != domain.ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestResumeHandler_List_Filter(t *testing.T) {
	e := newTestEcho()
	stub := &stubResumeService{}
	stub.listFn = func(ctx context.Context, owner string, f ports.ResumeFilter, opts ports.ListOptions) (*ports.ListResult[domain.Resume], error) {
		if f.Template != domain.Template("modern") || f.IsPublic == nil || *f.IsPublic {
			t.Fatalf("unexpected filter: %+v", f)
		}
		if opts.Limit != ports.DefaultLimit {
			t.Fatalf("expected default list options without middleware, got %+v", opts)
		}
		return &ports.ListResult[domain.Resume]{Page: 1, Limit: 20}, nil
	}
	c, _ := newJSONContext(e, http.MethodGet, "/api/resumes?template=modern&isPublic=false", "", testUserID)

	if err := NewResumeHandler(stub).List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
}
