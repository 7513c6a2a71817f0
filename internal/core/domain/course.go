package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CoursePlatform string

const (
	PlatformCoursera         CoursePlatform = "coursera"
	PlatformUdemy            CoursePlatform = "udemy"
	PlatformEdX              CoursePlatform = "edx"
	PlatformLinkedInLearning CoursePlatform = "linkedin-learning"
	PlatformPluralsight      CoursePlatform = "pluralsight"
	PlatformUniversity       CoursePlatform = "university"
	PlatformYouTube          CoursePlatform = "youtube"
	PlatformOther            CoursePlatform = "other"
)

type CourseStatus string

const (
	CourseStatusEnrolled   CourseStatus = "enrolled"
	CourseStatusInProgress CourseStatus = "in-progress"
	CourseStatusCompleted  CourseStatus = "completed"
	CourseStatusDropped    CourseStatus = "dropped"
)

const (
	MinProgress = 0
	MaxProgress = 100
)

type Course struct {
	ID             primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	User           primitive.ObjectID `json:"user" bson:"user"`
	Name           string             `json:"name,omitempty" bson:"name"`
	Institution    string             `json:"institution,omitempty" bson:"institution"`
	Platform       CoursePlatform     `json:"platform,omitempty" bson:"platform"`
	Status         CourseStatus       `json:"status,omitempty" bson:"status"`
	Progress       int                `json:"progress" bson:"progress"`
	StartDate      *Date              `json:"startDate,omitempty" bson:"startDate,omitempty"`
	CompletionDate *time.Time         `json:"completionDate,omitempty" bson:"completionDate,omitempty"`
	CertificateURL string             `json:"certificateUrl,omitempty" bson:"certificateUrl,omitempty"`
	Skills         []string           `json:"skills,omitempty" bson:"skills,omitempty"`
	Notes          string             `json:"notes,omitempty" bson:"notes,omitempty"`
	Timestamps     `bson:",inline"`
}

type CourseInput struct {
	Name           string         `json:"name" validate:"required,max=200"`
	Institution    string         `json:"institution" validate:"required,max=200"`
	Platform       CoursePlatform `json:"platform" validate:"omitempty,oneof=coursera udemy edx linkedin-learning pluralsight university youtube other"`
	Status         CourseStatus   `json:"status" validate:"omitempty,oneof=enrolled in-progress completed dropped"`
	Progress       int            `json:"progress" validate:"min=0,max=100"`
	StartDate      *Date          `json:"startDate"`
	CertificateURL string         `json:"certificateUrl" validate:"omitempty,url"`
	Skills         []string       `json:"skills"`
	Notes          string         `json:"notes" validate:"max=2000"`
}

type CoursePatch struct {
	Name           *string         `json:"name" bson:"name,omitempty" validate:"omitempty,min=1,max=200"`
	Institution    *string         `json:"institution" bson:"institution,omitempty" validate:"omitempty,min=1,max=200"`
	Platform       *CoursePlatform `json:"platform" bson:"platform,omitempty" validate:"omitempty,oneof=coursera udemy edx linkedin-learning pluralsight university youtube other"`
	Status         *CourseStatus   `json:"status" bson:"status,omitempty" validate:"omitempty,oneof=enrolled in-progress completed dropped"`
	Progress       *int            `json:"progress" bson:"progress,omitempty" validate:"omitempty,min=0,max=100"`
	StartDate      *Date           `json:"startDate" bson:"startDate,omitempty"`
	CompletionDate *time.Time      `json:"-" bson:"completionDate,omitempty"`
	CertificateURL *string         `json:"certificateUrl" bson:"certificateUrl,omitempty" validate:"omitempty,url"`
	Skills         *[]string       `json:"skills" bson:"skills,omitempty"`
	Notes          *string         `json:"notes" bson:"notes,omitempty" validate:"omitempty,max=2000"`
}

func NewCourse(owner primitive.ObjectID, in CourseInput, now time.Time) *Course {
	c := &Course{
		User:           owner,
		Name:           in.Name,
		Institution:    in.Institution,
		Platform:       in.Platform,
		Status:         in.Status,
		StartDate:      in.StartDate,
		CertificateURL: in.CertificateURL,
		Skills:         in.Skills,
		Notes:          in.Notes,
	}
	if c.Platform == "" {
		c.Platform = PlatformOther
	}
	if c.Status == "" {
		c.Status = CourseStatusEnrolled
	}
	// Creation goes through the same progress rule as later patches.
	_ = ApplyProgress(c, in.Progress, now)
	RefreshTimestamps(&c.Timestamps, now)
	return c
}

// ApplyProgress validates progress and applies it to c. Reaching 100 moves
// the course to completed and stamps CompletionDate, but only the first time.
func ApplyProgress(c *Course, progress int, now time.Time) error {
	if progress < MinProgress || progress > MaxProgress {
		return NewValidationError("progress", "progress must be between 0 and 100")
	}
	c.Progress = progress
	if progress == MaxProgress {
		c.Status = CourseStatusCompleted
		if c.CompletionDate == nil {
			stamped := now
			c.CompletionDate = &stamped
		}
	}
	return nil
}

// ProgressPatch turns the outcome of ApplyProgress on c into a store patch.
func ProgressPatch(c *Course) *CoursePatch {
	progress := c.Progress
	status := c.Status
	return &CoursePatch{
		Progress:       &progress,
		Status:         &status,
		CompletionDate: c.CompletionDate,
	}
}
