package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ProjectCategory string

const (
	ProjectCategoryWeb         ProjectCategory = "web"
	ProjectCategoryMobile      ProjectCategory = "mobile"
	ProjectCategoryDesktop     ProjectCategory = "desktop"
	ProjectCategoryAIML        ProjectCategory = "ai-ml"
	ProjectCategoryDataScience ProjectCategory = "data-science"
	ProjectCategoryDevOps      ProjectCategory = "devops"
	ProjectCategoryGame        ProjectCategory = "game"
	ProjectCategoryOther       ProjectCategory = "other"
)

type ProjectStatus string

const (
	ProjectStatusPlanning   ProjectStatus = "planning"
	ProjectStatusInProgress ProjectStatus = "in-progress"
	ProjectStatusCompleted  ProjectStatus = "completed"
	ProjectStatusOnHold     ProjectStatus = "on-hold"
)

// Project is a portfolio entry owned by a user.
type Project struct {
	ID           primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	User         primitive.ObjectID `json:"user" bson:"user"`
	Title        string             `json:"title,omitempty" bson:"title"`
	Description  string             `json:"description,omitempty" bson:"description"`
	Category     ProjectCategory    `json:"category,omitempty" bson:"category"`
	Technologies []string           `json:"technologies,omitempty" bson:"technologies"`
	StartDate    *Date              `json:"startDate,omitempty" bson:"startDate,omitempty"`
	EndDate      *Date              `json:"endDate,omitempty" bson:"endDate,omitempty"`
	Status       ProjectStatus      `json:"status,omitempty" bson:"status"`
	Visibility   Visibility         `json:"visibility,omitempty" bson:"visibility"`
	GitHubURL    string             `json:"githubUrl,omitempty" bson:"githubUrl,omitempty"`
	LiveURL      string             `json:"liveUrl,omitempty" bson:"liveUrl,omitempty"`
	Highlights   []string           `json:"highlights,omitempty" bson:"highlights,omitempty"`
	Featured     bool               `json:"featured" bson:"featured"`
	Timestamps   `bson:",inline"`
}

type ProjectInput struct {
	Title        string          `json:"title" validate:"required,max=100"`
	Description  string          `json:"description" validate:"required,max=2000"`
	Category     ProjectCategory `json:"category" validate:"omitempty,oneof=web mobile desktop ai-ml data-science devops game other"`
	Technologies []string        `json:"technologies" validate:"dive,required"`
	StartDate    *Date           `json:"startDate"`
	EndDate      *Date           `json:"endDate"`
	Status       ProjectStatus   `json:"status" validate:"omitempty,oneof=planning in-progress completed on-hold"`
	Visibility   Visibility      `json:"visibility" validate:"omitempty,oneof=public private unlisted"`
	GitHubURL    string          `json:"githubUrl" validate:"omitempty,url"`
	LiveURL      string          `json:"liveUrl" validate:"omitempty,url"`
	Highlights   []string        `json:"highlights"`
	Featured     bool            `json:"featured"`
}

type ProjectPatch struct {
	Title        *string          `json:"title" bson:"title,omitempty" validate:"omitempty,min=1,max=100"`
	Description  *string          `json:"description" bson:"description,omitempty" validate:"omitempty,min=1,max=2000"`
	Category     *ProjectCategory `json:"category" bson:"category,omitempty" validate:"omitempty,oneof=web mobile desktop ai-ml data-science devops game other"`
	Technologies *[]string        `json:"technologies" bson:"technologies,omitempty" validate:"omitempty,dive,required"`
	StartDate    *Date            `json:"startDate" bson:"startDate,omitempty"`
	EndDate      *Date            `json:"endDate" bson:"endDate,omitempty"`
	Status       *ProjectStatus   `json:"status" bson:"status,omitempty" validate:"omitempty,oneof=planning in-progress completed on-hold"`
	Visibility   *Visibility      `json:"visibility" bson:"visibility,omitempty" validate:"omitempty,oneof=public private unlisted"`
	GitHubURL    *string          `json:"githubUrl" bson:"githubUrl,omitempty" validate:"omitempty,url"`
	LiveURL      *string          `json:"liveUrl" bson:"liveUrl,omitempty" validate:"omitempty,url"`
	Highlights   *[]string        `json:"highlights" bson:"highlights,omitempty"`
	Featured     *bool            `json:"featured" bson:"featured,omitempty"`
}

// NewProject applies defaults (category other, status completed, visibility
// public) and stamps timestamps.
func NewProject(owner primitive.ObjectID, in ProjectInput, now time.Time) *Project {
	p := &Project{
		User:         owner,
		Title:        in.Title,
		Description:  in.Description,
		Category:     in.Category,
		Technologies: in.Technologies,
		StartDate:    in.StartDate,
		EndDate:      in.EndDate,
		Status:       in.Status,
		Visibility:   in.Visibility,
		GitHubURL:    in.GitHubURL,
		LiveURL:      in.LiveURL,
		Highlights:   in.Highlights,
		Featured:     in.Featured,
	}
	if p.Category == "" {
		p.Category = ProjectCategoryOther
	}
	if p.Status == "" {
		p.Status = ProjectStatusCompleted
	}
	if p.Visibility == "" {
		p.Visibility = VisibilityPublic
	}
	if p.Technologies == nil {
		p.Technologies = []string{}
	}
	RefreshTimestamps(&p.Timestamps, now)
	return p
}
