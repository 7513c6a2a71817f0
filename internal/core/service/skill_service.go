package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/resumeforge/resume-api/internal/core/domain"
	"github.com/resumeforge/resume-api/internal/core/ports"
)

// SkillService manages skills. Skills are never visible to non-owners and
// names are unique per owner.
type SkillService struct {
	ownedCore[domain.Skill, *domain.SkillPatch, ports.SkillFilter]
	sanitizer *TextSanitizer
}

func NewSkillService(repo ports.SkillRepository, sanitizer *TextSanitizer, logger zerolog.Logger) *SkillService {
	return &SkillService{
		ownedCore: ownedCore[domain.Skill, *domain.SkillPatch, ports.SkillFilter]{
			repo:   repo,
			kind:   "skill",
			owner:  func(s *domain.Skill) primitive.ObjectID { return s.User },
			logger: logger,
			now:    utcNow,
		},
		sanitizer: sanitizer,
	}
}

func (s *SkillService) List(ctx context.Context, owner string, filter ports.SkillFilter, opts ports.ListOptions) (*ports.ListResult[domain.Skill], error) {
	return s.list(ctx, owner, filter, opts)
}

func (s *SkillService) Get(ctx context.Context, requester, id string) (*domain.Skill, error) {
	return s.get(ctx, requester, id)
}

func (s *SkillService) Create(ctx context.Context, owner string, input domain.SkillInput) (*domain.Skill, error) {
	ownerID, err := parseOwner(owner)
	if err != nil {
		return nil, err
	}

	input.Name = s.sanitizer.Clean(input.Name)

	skill := domain.NewSkill(ownerID, input, s.now())
	if err := s.repo.Create(ctx, skill); err != nil {
		if errors.Is(err, domain.ErrDuplicateSkill) {
			return nil, err
		}
		return nil, fmt.Errorf("create skill: %w", err)
	}

	s.logger.Info().Str("user_id", owner).Str("skill_id", skill.ID.Hex()).Msg("skill created")
	return skill, nil
}

func (s *SkillService) Update(ctx context.Context, owner, id string, patch *domain.SkillPatch) (*domain.Skill, error) {
	if patch == nil {
		patch = &domain.SkillPatch{}
	}
	s.sanitizer.CleanPtr(patch.Name)
	return s.update(ctx, owner, id, patch)
}

func (s *SkillService) Delete(ctx context.Context, owner, id string) error {
	return s.delete(ctx, owner, id)
}

// Grouped returns all of the owner's skills bucketed by category, each bucket
// ordered by proficiency (highest first) and then name.
func (s *SkillService) Grouped(ctx context.Context, owner string) (map[domain.SkillCategory][]*domain.Skill, int, error) {
	ownerID, err := parseOwner(owner)
	if err != nil {
		return nil, 0, err
	}

	skills, err := s.repo.Find(ctx, ownerID, ports.SkillFilter{}, ports.ListOptions{
		Sort: []ports.SortField{{Field: "category"}, {Field: "name"}},
	})
	if err != nil {
		return nil, 0, fmt.Errorf("list skills: %w", err)
	}

	domain.SortSkills(skills)
	return domain.GroupByCategory(skills), len(skills), nil
}
