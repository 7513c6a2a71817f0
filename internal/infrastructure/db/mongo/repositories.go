package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/resumeforge/resume-api/internal/core/domain"
	"github.com/resumeforge/resume-api/internal/core/ports"
)

const (
	collectionResumes      = "resumes"
	collectionProjects     = "projects"
	collectionCourses      = "courses"
	collectionSkills       = "skills"
	collectionAchievements = "achievements"
)

type ResumeRepository struct {
	ownedStore[domain.Resume, *domain.ResumePatch, ports.ResumeFilter]
}

func NewResumeRepository(db *mongo.Database) *ResumeRepository {
	return &ResumeRepository{ownedStore[domain.Resume, *domain.ResumePatch, ports.ResumeFilter]{
		col:   db.Collection(collectionResumes),
		setID: func(r *domain.Resume, id primitive.ObjectID) { r.ID = id },
		filter: func(f ports.ResumeFilter) bson.M {
			q := bson.M{}
			if f.Template != "" {
				q["template"] = f.Template
			}
			if f.IsPublic != nil {
				q["isPublic"] = *f.IsPublic
			}
			return q
		},
		update: resumeUpdate,
		now:    utcNow,
	}}
}

// resumeUpdate sets the patch, refreshes lastModified and bumps version by
// exactly one in the same atomic write.
func resumeUpdate(patch *domain.ResumePatch, now time.Time) (bson.M, error) {
	set, err := patchFields(patch)
	if err != nil {
		return nil, err
	}
	set["updatedAt"] = now
	set["lastModified"] = now
	return bson.M{
		"$set": set,
		"$inc": bson.M{"version": 1},
	}, nil
}

func (r *ResumeRepository) EnsureIndexes(ctx context.Context) error {
	return r.ensureOwnerIndexes(ctx)
}

type ProjectRepository struct {
	ownedStore[domain.Project, *domain.ProjectPatch, ports.ProjectFilter]
}

func NewProjectRepository(db *mongo.Database) *ProjectRepository {
	return &ProjectRepository{ownedStore[domain.Project, *domain.ProjectPatch, ports.ProjectFilter]{
		col:   db.Collection(collectionProjects),
		setID: func(p *domain.Project, id primitive.ObjectID) { p.ID = id },
		filter: func(f ports.ProjectFilter) bson.M {
			q := bson.M{}
			if f.Category != "" {
				q["category"] = f.Category
			}
			if f.Status != "" {
				q["status"] = f.Status
			}
			if f.Visibility != "" {
				q["visibility"] = f.Visibility
			}
			if f.Featured != nil {
				q["featured"] = *f.Featured
			}
			if f.Technology != "" {
				q["technologies"] = f.Technology
			}
			return q
		},
		now: utcNow,
	}}
}

func (r *ProjectRepository) EnsureIndexes(ctx context.Context) error {
	return r.ensureOwnerIndexes(ctx)
}

type CourseRepository struct {
	ownedStore[domain.Course, *domain.CoursePatch, ports.CourseFilter]
}

func NewCourseRepository(db *mongo.Database) *CourseRepository {
	return &CourseRepository{ownedStore[domain.Course, *domain.CoursePatch, ports.CourseFilter]{
		col:   db.Collection(collectionCourses),
		setID: func(c *domain.Course, id primitive.ObjectID) { c.ID = id },
		filter: func(f ports.CourseFilter) bson.M {
			q := bson.M{}
			if f.Platform != "" {
				q["platform"] = f.Platform
			}
			if f.Status != "" {
				q["status"] = f.Status
			}
			return q
		},
		now: utcNow,
	}}
}

func (r *CourseRepository) EnsureIndexes(ctx context.Context) error {
	return r.ensureOwnerIndexes(ctx)
}

type SkillRepository struct {
	ownedStore[domain.Skill, *domain.SkillPatch, ports.SkillFilter]
}

func NewSkillRepository(db *mongo.Database) *SkillRepository {
	return &SkillRepository{ownedStore[domain.Skill, *domain.SkillPatch, ports.SkillFilter]{
		col:   db.Collection(collectionSkills),
		setID: func(s *domain.Skill, id primitive.ObjectID) { s.ID = id },
		filter: func(f ports.SkillFilter) bson.M {
			q := bson.M{}
			if f.Category != "" {
				q["category"] = f.Category
			}
			if f.Proficiency != "" {
				q["proficiency"] = f.Proficiency
			}
			return q
		},
		dupErr: domain.ErrDuplicateSkill,
		now:    utcNow,
	}}
}

// EnsureIndexes makes skill names unique per owner.
func (r *SkillRepository) EnsureIndexes(ctx context.Context) error {
	return r.ensureOwnerIndexes(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "user", Value: 1}, {Key: "name", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
}

type AchievementRepository struct {
	ownedStore[domain.Achievement, *domain.AchievementPatch, ports.AchievementFilter]
}

func NewAchievementRepository(db *mongo.Database) *AchievementRepository {
	return &AchievementRepository{ownedStore[domain.Achievement, *domain.AchievementPatch, ports.AchievementFilter]{
		col:   db.Collection(collectionAchievements),
		setID: func(a *domain.Achievement, id primitive.ObjectID) { a.ID = id },
		filter: func(f ports.AchievementFilter) bson.M {
			q := bson.M{}
			if f.Category != "" {
				q["category"] = f.Category
			}
			if f.Visibility != "" {
				q["visibility"] = f.Visibility
			}
			if f.Featured != nil {
				q["featured"] = *f.Featured
			}
			return q
		},
		now: utcNow,
	}}
}

func (r *AchievementRepository) EnsureIndexes(ctx context.Context) error {
	return r.ensureOwnerIndexes(ctx)
}
