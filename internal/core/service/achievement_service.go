package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/resumeforge/resume-api/internal/core/domain"
	"github.com/resumeforge/resume-api/internal/core/ports"
)

type AchievementService struct {
	ownedCore[domain.Achievement, *domain.AchievementPatch, ports.AchievementFilter]
	sanitizer *TextSanitizer
}

func NewAchievementService(repo ports.AchievementRepository, sanitizer *TextSanitizer, logger zerolog.Logger) *AchievementService {
	return &AchievementService{
		ownedCore: ownedCore[domain.Achievement, *domain.AchievementPatch, ports.AchievementFilter]{
			repo:     repo,
			kind:     "achievement",
			owner:    func(a *domain.Achievement) primitive.ObjectID { return a.User },
			readable: func(a *domain.Achievement) bool { return a.Visibility.Readable() },
			logger:   logger,
			now:      utcNow,
		},
		sanitizer: sanitizer,
	}
}

func (s *AchievementService) List(ctx context.Context, owner string, filter ports.AchievementFilter, opts ports.ListOptions) (*ports.ListResult[domain.Achievement], error) {
	return s.list(ctx, owner, filter, opts)
}

func (s *AchievementService) Get(ctx context.Context, requester, id string) (*domain.Achievement, error) {
	return s.get(ctx, requester, id)
}

func (s *AchievementService) Create(ctx context.Context, owner string, input domain.AchievementInput) (*domain.Achievement, error) {
	ownerID, err := parseOwner(owner)
	if err != nil {
		return nil, err
	}

	input.Title = s.sanitizer.Clean(input.Title)
	input.Description = s.sanitizer.Clean(input.Description)
	input.Issuer = s.sanitizer.Clean(input.Issuer)

	achievement := domain.NewAchievement(ownerID, input, s.now())
	if err := s.repo.Create(ctx, achievement); err != nil {
		return nil, fmt.Errorf("create achievement: %w", err)
	}

	s.logger.Info().Str("user_id", owner).Str("achievement_id", achievement.ID.Hex()).Msg("achievement created")
	return achievement, nil
}

func (s *AchievementService) Update(ctx context.Context, owner, id string, patch *domain.AchievementPatch) (*domain.Achievement, error) {
	if patch == nil {
		patch = &domain.AchievementPatch{}
	}
	s.sanitizer.CleanPtr(patch.Title)
	s.sanitizer.CleanPtr(patch.Description)
	s.sanitizer.CleanPtr(patch.Issuer)
	return s.update(ctx, owner, id, patch)
}

func (s *AchievementService) Delete(ctx context.Context, owner, id string) error {
	return s.delete(ctx, owner, id)
}
