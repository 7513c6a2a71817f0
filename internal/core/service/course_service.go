package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/resumeforge/resume-api/internal/core/domain"
	"github.com/resumeforge/resume-api/internal/core/ports"
)

// CourseService manages courses. Courses are never visible to non-owners.
type CourseService struct {
	ownedCore[domain.Course, *domain.CoursePatch, ports.CourseFilter]
	sanitizer *TextSanitizer
}

func NewCourseService(repo ports.CourseRepository, sanitizer *TextSanitizer, logger zerolog.Logger) *CourseService {
	return &CourseService{
		ownedCore: ownedCore[domain.Course, *domain.CoursePatch, ports.CourseFilter]{
			repo:   repo,
			kind:   "course",
			owner:  func(c *domain.Course) primitive.ObjectID { return c.User },
			logger: logger,
			now:    utcNow,
		},
		sanitizer: sanitizer,
	}
}

func (s *CourseService) List(ctx context.Context, owner string, filter ports.CourseFilter, opts ports.ListOptions) (*ports.ListResult[domain.Course], error) {
	return s.list(ctx, owner, filter, opts)
}

func (s *CourseService) Get(ctx context.Context, requester, id string) (*domain.Course, error) {
	return s.get(ctx, requester, id)
}

func (s *CourseService) Create(ctx context.Context, owner string, input domain.CourseInput) (*domain.Course, error) {
	ownerID, err := parseOwner(owner)
	if err != nil {
		return nil, err
	}
	if input.Progress < domain.MinProgress || input.Progress > domain.MaxProgress {
		return nil, domain.NewValidationError("progress", "progress must be between 0 and 100")
	}

	input.Notes = s.sanitizer.Clean(input.Notes)

	course := domain.NewCourse(ownerID, input, s.now())
	if err := s.repo.Create(ctx, course); err != nil {
		return nil, fmt.Errorf("create course: %w", err)
	}

	s.logger.Info().Str("user_id", owner).Str("course_id", course.ID.Hex()).Msg("course created")
	return course, nil
}

// Update applies a partial update. A progress change goes through the same
// completion rule as UpdateProgress.
func (s *CourseService) Update(ctx context.Context, owner, id string, patch *domain.CoursePatch) (*domain.Course, error) {
	if patch == nil {
		patch = &domain.CoursePatch{}
	}
	s.sanitizer.CleanPtr(patch.Notes)
	patch.CompletionDate = nil

	if patch.Progress != nil {
		current, err := s.getOwned(ctx, owner, id)
		if err != nil {
			return nil, err
		}
		if err := domain.ApplyProgress(current, *patch.Progress, s.now()); err != nil {
			return nil, err
		}
		progress := domain.ProgressPatch(current)
		patch.CompletionDate = progress.CompletionDate
		if *patch.Progress == domain.MaxProgress {
			patch.Status = progress.Status
		}
	}

	return s.update(ctx, owner, id, patch)
}

func (s *CourseService) Delete(ctx context.Context, owner, id string) error {
	return s.delete(ctx, owner, id)
}

// UpdateProgress validates 0 <= progress <= 100 before touching the store.
// Reaching 100 completes the course and stamps its completion date once.
func (s *CourseService) UpdateProgress(ctx context.Context, owner, id string, progress int) (*domain.Course, error) {
	if progress < domain.MinProgress || progress > domain.MaxProgress {
		return nil, domain.NewValidationError("progress", "progress must be between 0 and 100")
	}

	course, err := s.getOwned(ctx, owner, id)
	if err != nil {
		return nil, err
	}
	alreadyCompleted := course.CompletionDate != nil
	if err := domain.ApplyProgress(course, progress, s.now()); err != nil {
		return nil, err
	}

	updated, err := s.update(ctx, owner, id, domain.ProgressPatch(course))
	if err != nil {
		return nil, err
	}
	if !alreadyCompleted && updated.CompletionDate != nil {
		s.logger.Info().Str("user_id", owner).Str("course_id", id).Msg("course completed")
	}
	return updated, nil
}
