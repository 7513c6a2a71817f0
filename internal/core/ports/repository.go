package ports

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/resumeforge/resume-api/internal/core/domain"
)

// OwnedRepository defines persistence for records that belong to exactly one
// user. Mutations are conditional on both id and owner in a single store call.
type OwnedRepository[T any, P any, F any] interface {
	Create(ctx context.Context, item *T) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*T, error)
	// Find returns the owner's records matching filter, paged and ordered by opts.
	Find(ctx context.Context, owner primitive.ObjectID, filter F, opts ListOptions) ([]*T, error)
	// FindProjected is Find for a field selection: only the selected fields
	// (and _id) of each record are returned, nothing is filled in.
	FindProjected(ctx context.Context, owner primitive.ObjectID, filter F, opts ListOptions) ([]map[string]any, error)
	Count(ctx context.Context, owner primitive.ObjectID, filter F) (int64, error)
	// UpdateOwned applies patch to the record matching id and owner and returns
	// the updated record, or domain.ErrNotFound when nothing matched.
	UpdateOwned(ctx context.Context, id, owner primitive.ObjectID, patch P) (*T, error)
	// DeleteOwned removes the record matching id and owner, or returns
	// domain.ErrNotFound when nothing matched.
	DeleteOwned(ctx context.Context, id, owner primitive.ObjectID) error
	Exists(ctx context.Context, id primitive.ObjectID) (bool, error)
}

type ResumeFilter struct {
	Template domain.Template
	IsPublic *bool
}

type ProjectFilter struct {
	Category   domain.ProjectCategory
	Status     domain.ProjectStatus
	Visibility domain.Visibility
	Featured   *bool
	Technology string
}

type CourseFilter struct {
	Platform domain.CoursePlatform
	Status   domain.CourseStatus
}

type SkillFilter struct {
	Category    domain.SkillCategory
	Proficiency domain.Proficiency
}

type AchievementFilter struct {
	Category   domain.AchievementCategory
	Visibility domain.Visibility
	Featured   *bool
}

// ResumeRepository bumps version and lastModified on every UpdateOwned.
type ResumeRepository interface {
	OwnedRepository[domain.Resume, *domain.ResumePatch, ResumeFilter]
}

type ProjectRepository interface {
	OwnedRepository[domain.Project, *domain.ProjectPatch, ProjectFilter]
}

type CourseRepository interface {
	OwnedRepository[domain.Course, *domain.CoursePatch, CourseFilter]
}

// SkillRepository reports domain.ErrDuplicateSkill when an owner already has a
// skill with the same name.
type SkillRepository interface {
	OwnedRepository[domain.Skill, *domain.SkillPatch, SkillFilter]
}

type AchievementRepository interface {
	OwnedRepository[domain.Achievement, *domain.AchievementPatch, AchievementFilter]
}

// UserRepository defines persistence for user accounts.
type UserRepository interface {
	// Create inserts user and assigns its ID. Returns domain.ErrUserExists on a
	// duplicate email.
	Create(ctx context.Context, user *domain.User) error
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
	UpdateProfile(ctx context.Context, id primitive.ObjectID, update *domain.ProfileUpdate) (*domain.User, error)
	UpdatePassword(ctx context.Context, id primitive.ObjectID, hash string) error
	LinkGoogle(ctx context.Context, id primitive.ObjectID, googleID, avatar string) error
	TouchLastLogin(ctx context.Context, id primitive.ObjectID, at time.Time) error
}
