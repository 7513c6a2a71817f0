package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/resumeforge/resume-api/internal/core/domain"
	"github.com/resumeforge/resume-api/internal/core/ports"
)

type ProjectService struct {
	ownedCore[domain.Project, *domain.ProjectPatch, ports.ProjectFilter]
	sanitizer *TextSanitizer
}

func NewProjectService(repo ports.ProjectRepository, sanitizer *TextSanitizer, logger zerolog.Logger) *ProjectService {
	return &ProjectService{
		ownedCore: ownedCore[domain.Project, *domain.ProjectPatch, ports.ProjectFilter]{
			repo:     repo,
			kind:     "project",
			owner:    func(p *domain.Project) primitive.ObjectID { return p.User },
			readable: func(p *domain.Project) bool { return p.Visibility.Readable() },
			logger:   logger,
			now:      utcNow,
		},
		sanitizer: sanitizer,
	}
}

func (s *ProjectService) List(ctx context.Context, owner string, filter ports.ProjectFilter, opts ports.ListOptions) (*ports.ListResult[domain.Project], error) {
	return s.list(ctx, owner, filter, opts)
}

func (s *ProjectService) Get(ctx context.Context, requester, id string) (*domain.Project, error) {
	return s.get(ctx, requester, id)
}

func (s *ProjectService) Create(ctx context.Context, owner string, input domain.ProjectInput) (*domain.Project, error) {
	ownerID, err := parseOwner(owner)
	if err != nil {
		return nil, err
	}

	input.Title = s.sanitizer.Clean(input.Title)
	input.Description = s.sanitizer.Clean(input.Description)
	for i := range input.Highlights {
		input.Highlights[i] = s.sanitizer.Clean(input.Highlights[i])
	}

	project := domain.NewProject(ownerID, input, s.now())
	if err := s.repo.Create(ctx, project); err != nil {
		return nil, fmt.Errorf("create project: %w", err)
	}

	s.logger.Info().Str("user_id", owner).Str("project_id", project.ID.Hex()).Msg("project created")
	return project, nil
}

func (s *ProjectService) Update(ctx context.Context, owner, id string, patch *domain.ProjectPatch) (*domain.Project, error) {
	if patch == nil {
		patch = &domain.ProjectPatch{}
	}
	s.sanitizer.CleanPtr(patch.Title)
	s.sanitizer.CleanPtr(patch.Description)
	if patch.Highlights != nil {
		for i := range *patch.Highlights {
			(*patch.Highlights)[i] = s.sanitizer.Clean((*patch.Highlights)[i])
		}
	}
	return s.update(ctx, owner, id, patch)
}

func (s *ProjectService) Delete(ctx context.Context, owner, id string) error {
	return s.delete(ctx, owner, id)
}
