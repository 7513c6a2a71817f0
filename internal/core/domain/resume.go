package domain

import (
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Template selects the rendering layout of a resume.
type Template string

const (
	TemplateModern       Template = "modern"
	TemplateClassic      Template = "classic"
	TemplateCreative     Template = "creative"
	TemplateMinimal      Template = "minimal"
	TemplateProfessional Template = "professional"
)

const copySuffix = " (Copy)"

type PersonalInfo struct {
	FullName string `json:"fullName,omitempty" bson:"fullName,omitempty" validate:"omitempty,max=100"`
	Email    string `json:"email,omitempty" bson:"email,omitempty" validate:"omitempty,email"`
	Phone    string `json:"phone,omitempty" bson:"phone,omitempty" validate:"omitempty,max=30"`
	Location string `json:"location,omitempty" bson:"location,omitempty" validate:"omitempty,max=100"`
	Website  string `json:"website,omitempty" bson:"website,omitempty" validate:"omitempty,url"`
	LinkedIn string `json:"linkedin,omitempty" bson:"linkedin,omitempty" validate:"omitempty,url"`
	GitHub   string `json:"github,omitempty" bson:"github,omitempty" validate:"omitempty,url"`
}

type Experience struct {
	Company      string   `json:"company" bson:"company" validate:"required,max=100"`
	Position     string   `json:"position" bson:"position" validate:"required,max=100"`
	Location     string   `json:"location,omitempty" bson:"location,omitempty"`
	StartDate    *Date    `json:"startDate,omitempty" bson:"startDate,omitempty"`
	EndDate      *Date    `json:"endDate,omitempty" bson:"endDate,omitempty"`
	Current      bool     `json:"current" bson:"current"`
	Description  string   `json:"description,omitempty" bson:"description,omitempty" validate:"omitempty,max=2000"`
	Achievements []string `json:"achievements,omitempty" bson:"achievements,omitempty"`
}

type Education struct {
	Institution  string `json:"institution" bson:"institution" validate:"required,max=150"`
	Degree       string `json:"degree" bson:"degree" validate:"required,max=100"`
	FieldOfStudy string `json:"fieldOfStudy,omitempty" bson:"fieldOfStudy,omitempty"`
	StartDate    *Date  `json:"startDate,omitempty" bson:"startDate,omitempty"`
	EndDate      *Date  `json:"endDate,omitempty" bson:"endDate,omitempty"`
	GPA          string `json:"gpa,omitempty" bson:"gpa,omitempty"`
	Description  string `json:"description,omitempty" bson:"description,omitempty" validate:"omitempty,max=1000"`
}

// SkillGroup is a resume-local skill category with its items.
type SkillGroup struct {
	Category string   `json:"category" bson:"category" validate:"required"`
	Items    []string `json:"items" bson:"items"`
}

type Certification struct {
	Name   string `json:"name" bson:"name" validate:"required"`
	Issuer string `json:"issuer,omitempty" bson:"issuer,omitempty"`
	Date   *Date  `json:"date,omitempty" bson:"date,omitempty"`
	URL    string `json:"url,omitempty" bson:"url,omitempty" validate:"omitempty,url"`
}

type CustomSection struct {
	Title   string `json:"title" bson:"title" validate:"required,max=100"`
	Content string `json:"content,omitempty" bson:"content,omitempty"`
}

// Resume is a user-owned resume document.
type Resume struct {
	ID             primitive.ObjectID   `json:"_id" bson:"_id,omitempty"`
	User           primitive.ObjectID   `json:"user" bson:"user"`
	Title          string               `json:"title,omitempty" bson:"title"`
	Template       Template             `json:"template,omitempty" bson:"template"`
	PersonalInfo   PersonalInfo         `json:"personalInfo" bson:"personalInfo"`
	Summary        string               `json:"summary,omitempty" bson:"summary,omitempty"`
	Experience     []Experience         `json:"experience,omitempty" bson:"experience"`
	Education      []Education          `json:"education,omitempty" bson:"education"`
	Skills         []SkillGroup         `json:"skills,omitempty" bson:"skills"`
	Projects       []primitive.ObjectID `json:"projects,omitempty" bson:"projects"`
	Certifications []Certification      `json:"certifications,omitempty" bson:"certifications"`
	Achievements   []primitive.ObjectID `json:"achievements,omitempty" bson:"achievements"`
	CustomSections []CustomSection      `json:"customSections,omitempty" bson:"customSections"`
	IsPublic       bool                 `json:"isPublic" bson:"isPublic"`
	Version        int                  `json:"version" bson:"version"`
	LastModified   time.Time            `json:"lastModified" bson:"lastModified"`
	Timestamps     `bson:",inline"`
}

// ResumeInput is the client-writable part of a resume. Owner, version and
// timestamps are never taken from it.
type ResumeInput struct {
	Title          string               `json:"title" validate:"required,max=100"`
	Template       Template             `json:"template" validate:"omitempty,oneof=modern classic creative minimal professional"`
	PersonalInfo   PersonalInfo         `json:"personalInfo"`
	Summary        string               `json:"summary" validate:"max=2000"`
	Experience     []Experience         `json:"experience" validate:"dive"`
	Education      []Education          `json:"education" validate:"dive"`
	Skills         []SkillGroup         `json:"skills" validate:"dive"`
	Projects       []primitive.ObjectID `json:"projects"`
	Certifications []Certification      `json:"certifications" validate:"dive"`
	Achievements   []primitive.ObjectID `json:"achievements"`
	CustomSections []CustomSection      `json:"customSections" validate:"dive"`
	IsPublic       bool                 `json:"isPublic"`
}

// ResumePatch is a partial resume update. Nil fields are left untouched.
type ResumePatch struct {
	Title          *string               `json:"title" bson:"title,omitempty" validate:"omitempty,min=1,max=100"`
	Template       *Template             `json:"template" bson:"template,omitempty" validate:"omitempty,oneof=modern classic creative minimal professional"`
	PersonalInfo   *PersonalInfo         `json:"personalInfo" bson:"personalInfo,omitempty"`
	Summary        *string               `json:"summary" bson:"summary,omitempty" validate:"omitempty,max=2000"`
	Experience     *[]Experience         `json:"experience" bson:"experience,omitempty" validate:"omitempty,dive"`
	Education      *[]Education          `json:"education" bson:"education,omitempty" validate:"omitempty,dive"`
	Skills         *[]SkillGroup         `json:"skills" bson:"skills,omitempty" validate:"omitempty,dive"`
	Projects       *[]primitive.ObjectID `json:"projects" bson:"projects,omitempty"`
	Certifications *[]Certification      `json:"certifications" bson:"certifications,omitempty" validate:"omitempty,dive"`
	Achievements   *[]primitive.ObjectID `json:"achievements" bson:"achievements,omitempty"`
	CustomSections *[]CustomSection      `json:"customSections" bson:"customSections,omitempty" validate:"omitempty,dive"`
	IsPublic       *bool                 `json:"isPublic" bson:"isPublic,omitempty"`
}

// NewResume builds a version-1 resume owned by owner from client input.
func NewResume(owner primitive.ObjectID, in ResumeInput, now time.Time) *Resume {
	tpl := in.Template
	if tpl == "" {
		tpl = TemplateModern
	}
	r := &Resume{
		User:           owner,
		Title:          in.Title,
		Template:       tpl,
		PersonalInfo:   in.PersonalInfo,
		Summary:        in.Summary,
		Experience:     in.Experience,
		Education:      in.Education,
		Skills:         in.Skills,
		Projects:       in.Projects,
		Certifications: in.Certifications,
		Achievements:   in.Achievements,
		CustomSections: in.CustomSections,
		IsPublic:       in.IsPublic,
		Version:        1,
		LastModified:   now,
	}
	RefreshTimestamps(&r.Timestamps, now)
	return r
}

// CloneForDuplicate returns a deep-enough copy of src with identity and
// timestamps cleared, " (Copy)" appended to the title and version reset to 1.
func CloneForDuplicate(src *Resume, now time.Time) *Resume {
	dup := *src
	dup.ID = primitive.NilObjectID
	dup.Title = src.Title + copySuffix
	dup.Version = 1
	dup.LastModified = now
	dup.Timestamps = Timestamps{}
	dup.Experience = append([]Experience(nil), src.Experience...)
	dup.Education = append([]Education(nil), src.Education...)
	dup.Skills = append([]SkillGroup(nil), src.Skills...)
	dup.Projects = append([]primitive.ObjectID(nil), src.Projects...)
	dup.Certifications = append([]Certification(nil), src.Certifications...)
	dup.Achievements = append([]primitive.ObjectID(nil), src.Achievements...)
	dup.CustomSections = append([]CustomSection(nil), src.CustomSections...)
	RefreshTimestamps(&dup.Timestamps, now)
	return &dup
}

// GenerateSummary renders the template summary for r. Years of experience are
// approximated by the number of experience entries.
func GenerateSummary(r *Resume) string {
	years := len(r.Experience)

	var names []string
	for _, group := range r.Skills {
		names = append(names, group.Items...)
	}
	skillCount := len(names)
	top := names
	if len(top) > 5 {
		top = top[:5]
	}

	topSkills := "a broad range of technologies"
	if len(top) > 0 {
		topSkills = strings.Join(top, ", ")
	}

	return fmt.Sprintf(
		"Results-driven professional with %d+ years of experience and expertise in %d skills. "+
			"Proficient in %s. Proven track record of delivering high-quality solutions and driving "+
			"business success through innovative problem-solving and collaborative teamwork.",
		years, skillCount, topSkills,
	)
}
