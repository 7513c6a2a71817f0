package ports

import (
	"context"

	"github.com/resumeforge/resume-api/internal/core/domain"
)

// RegisterInput carries the fields accepted by POST /auth/register.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// AuthResult is returned by every operation that issues a token.
type AuthResult struct {
	Token string
	User  *domain.User
}

// GoogleIdentity is the verified subset of a Google ID token.
type GoogleIdentity struct {
	Subject       string
	Email         string
	EmailVerified bool
	Name          string
	Picture       string
}

// GoogleVerifier checks a Google ID token and returns its identity.
type GoogleVerifier interface {
	Verify(ctx context.Context, rawIDToken string) (*GoogleIdentity, error)
}

type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	GoogleLogin(ctx context.Context, idToken string) (*AuthResult, error)
	Me(ctx context.Context, userID string) (*domain.User, error)
	UpdateProfile(ctx context.Context, userID string, update *domain.ProfileUpdate) (*domain.User, error)
	// ChangePassword verifies current, stores next and returns a fresh token.
	ChangePassword(ctx context.Context, userID, current, next string) (string, error)
}

// OwnedService is the common contract of the per-entity services. Get allows
// non-owners to read records whose visibility permits it; every mutation is
// owner-only.
type OwnedService[T any, I any, P any, F any] interface {
	List(ctx context.Context, owner string, filter F, opts ListOptions) (*ListResult[T], error)
	Get(ctx context.Context, requester, id string) (*T, error)
	Create(ctx context.Context, owner string, input I) (*T, error)
	Update(ctx context.Context, owner, id string, patch P) (*T, error)
	Delete(ctx context.Context, owner, id string) error
}

type ResumeService interface {
	OwnedService[domain.Resume, domain.ResumeInput, *domain.ResumePatch, ResumeFilter]
	Duplicate(ctx context.Context, owner, id string) (*domain.Resume, error)
	GenerateSummary(ctx context.Context, owner, id string) (*domain.Resume, error)
}

type ProjectService interface {
	OwnedService[domain.Project, domain.ProjectInput, *domain.ProjectPatch, ProjectFilter]
}

type CourseService interface {
	OwnedService[domain.Course, domain.CourseInput, *domain.CoursePatch, CourseFilter]
	UpdateProgress(ctx context.Context, owner, id string, progress int) (*domain.Course, error)
}

type SkillService interface {
	OwnedService[domain.Skill, domain.SkillInput, *domain.SkillPatch, SkillFilter]
	Grouped(ctx context.Context, owner string) (map[domain.SkillCategory][]*domain.Skill, int, error)
}

type AchievementService interface {
	OwnedService[domain.Achievement, domain.AchievementInput, *domain.AchievementPatch, AchievementFilter]
}
