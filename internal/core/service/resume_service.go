package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/resumeforge/resume-api/internal/core/domain"
	"github.com/resumeforge/resume-api/internal/core/ports"
)

type ResumeService struct {
	ownedCore[domain.Resume, *domain.ResumePatch, ports.ResumeFilter]
	repo      ports.ResumeRepository
	sanitizer *TextSanitizer
}

func NewResumeService(repo ports.ResumeRepository, sanitizer *TextSanitizer, logger zerolog.Logger) *ResumeService {
	return &ResumeService{
		ownedCore: ownedCore[domain.Resume, *domain.ResumePatch, ports.ResumeFilter]{
			repo:     repo,
			kind:     "resume",
			owner:    func(r *domain.Resume) primitive.ObjectID { return r.User },
			readable: func(r *domain.Resume) bool { return r.IsPublic },
			logger:   logger,
			now:      utcNow,
		},
		repo:      repo,
		sanitizer: sanitizer,
	}
}

func (s *ResumeService) List(ctx context.Context, owner string, filter ports.ResumeFilter, opts ports.ListOptions) (*ports.ListResult[domain.Resume], error) {
	return s.list(ctx, owner, filter, opts)
}

func (s *ResumeService) Get(ctx context.Context, requester, id string) (*domain.Resume, error) {
	return s.get(ctx, requester, id)
}

func (s *ResumeService) Create(ctx context.Context, owner string, input domain.ResumeInput) (*domain.Resume, error) {
	ownerID, err := parseOwner(owner)
	if err != nil {
		return nil, err
	}

	input.Title = s.sanitizer.Clean(input.Title)
	input.Summary = s.sanitizer.Clean(input.Summary)
	s.cleanSections(input.Experience, input.Education, input.CustomSections)

	resume := domain.NewResume(ownerID, input, s.now())
	if err := s.repo.Create(ctx, resume); err != nil {
		return nil, fmt.Errorf("create resume: %w", err)
	}

	s.logger.Info().Str("user_id", owner).Str("resume_id", resume.ID.Hex()).Msg("resume created")
	return resume, nil
}

// Update applies patch; the store bumps version by one on every match.
func (s *ResumeService) Update(ctx context.Context, owner, id string, patch *domain.ResumePatch) (*domain.Resume, error) {
	if patch == nil {
		patch = &domain.ResumePatch{}
	}
	s.sanitizer.CleanPtr(patch.Title)
	s.sanitizer.CleanPtr(patch.Summary)
	if patch.Experience != nil {
		s.cleanSections(*patch.Experience, nil, nil)
	}
	if patch.Education != nil {
		s.cleanSections(nil, *patch.Education, nil)
	}
	if patch.CustomSections != nil {
		s.cleanSections(nil, nil, *patch.CustomSections)
	}
	return s.update(ctx, owner, id, patch)
}

func (s *ResumeService) Delete(ctx context.Context, owner, id string) error {
	return s.delete(ctx, owner, id)
}

// Duplicate inserts a copy of an owned resume as a new version-1 document.
func (s *ResumeService) Duplicate(ctx context.Context, owner, id string) (*domain.Resume, error) {
	src, err := s.getOwned(ctx, owner, id)
	if err != nil {
		return nil, err
	}

	dup := domain.CloneForDuplicate(src, s.now())
	if err := s.repo.Create(ctx, dup); err != nil {
		return nil, fmt.Errorf("duplicate resume: %w", err)
	}

	s.logger.Info().Str("user_id", owner).Str("resume_id", id).Str("copy_id", dup.ID.Hex()).Msg("resume duplicated")
	return dup, nil
}

// GenerateSummary renders the template summary from the resume's own
// experience and skills and stores it as a regular update.
func (s *ResumeService) GenerateSummary(ctx context.Context, owner, id string) (*domain.Resume, error) {
	src, err := s.getOwned(ctx, owner, id)
	if err != nil {
		return nil, err
	}

	summary := domain.GenerateSummary(src)
	return s.update(ctx, owner, id, &domain.ResumePatch{Summary: &summary})
}

func (s *ResumeService) cleanSections(exp []domain.Experience, edu []domain.Education, custom []domain.CustomSection) {
	for i := range exp {
		exp[i].Description = s.sanitizer.Clean(exp[i].Description)
		for j := range exp[i].Achievements {
			exp[i].Achievements[j] = s.sanitizer.Clean(exp[i].Achievements[j])
		}
	}
	for i := range edu {
		edu[i].Description = s.sanitizer.Clean(edu[i].Description)
	}
	for i := range custom {
		custom[i].Title = s.sanitizer.Clean(custom[i].Title)
		custom[i].Content = s.sanitizer.Clean(custom[i].Content)
	}
}
