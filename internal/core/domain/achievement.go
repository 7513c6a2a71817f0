package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type AchievementCategory string

const (
	AchievementCategoryAward         AchievementCategory = "award"
	AchievementCategoryCertification AchievementCategory = "certification"
	AchievementCategoryPublication   AchievementCategory = "publication"
	AchievementCategoryCompetition   AchievementCategory = "competition"
	AchievementCategoryRecognition   AchievementCategory = "recognition"
	AchievementCategoryOther         AchievementCategory = "other"
)

type Achievement struct {
	ID          primitive.ObjectID  `json:"_id" bson:"_id,omitempty"`
	User        primitive.ObjectID  `json:"user" bson:"user"`
	Title       string              `json:"title,omitempty" bson:"title"`
	Description string              `json:"description,omitempty" bson:"description,omitempty"`
	Category    AchievementCategory `json:"category,omitempty" bson:"category"`
	Date        *Date               `json:"date,omitempty" bson:"date,omitempty"`
	Issuer      string              `json:"issuer,omitempty" bson:"issuer,omitempty"`
	URL         string              `json:"url,omitempty" bson:"url,omitempty"`
	Visibility  Visibility          `json:"visibility,omitempty" bson:"visibility"`
	Featured    bool                `json:"featured" bson:"featured"`
	Timestamps  `bson:",inline"`
}

type AchievementInput struct {
	Title       string              `json:"title" validate:"required,max=150"`
	Description string              `json:"description" validate:"max=2000"`
	Category    AchievementCategory `json:"category" validate:"required,oneof=award certification publication competition recognition other"`
	Date        *Date               `json:"date"`
	Issuer      string              `json:"issuer" validate:"max=150"`
	URL         string              `json:"url" validate:"omitempty,url"`
	Visibility  Visibility          `json:"visibility" validate:"omitempty,oneof=public private unlisted"`
	Featured    bool                `json:"featured"`
}

type AchievementPatch struct {
	Title       *string              `json:"title" bson:"title,omitempty" validate:"omitempty,min=1,max=150"`
	Description *string              `json:"description" bson:"description,omitempty" validate:"omitempty,max=2000"`
	Category    *AchievementCategory `json:"category" bson:"category,omitempty" validate:"omitempty,oneof=award certification publication competition recognition other"`
	Date        *Date                `json:"date" bson:"date,omitempty"`
	Issuer      *string              `json:"issuer" bson:"issuer,omitempty" validate:"omitempty,max=150"`
	URL         *string              `json:"url" bson:"url,omitempty" validate:"omitempty,url"`
	Visibility  *Visibility          `json:"visibility" bson:"visibility,omitempty" validate:"omitempty,oneof=public private unlisted"`
	Featured    *bool                `json:"featured" bson:"featured,omitempty"`
}

func NewAchievement(owner primitive.ObjectID, in AchievementInput, now time.Time) *Achievement {
	a := &Achievement{
		User:        owner,
		Title:       in.Title,
		Description: in.Description,
		Category:    in.Category,
		Date:        in.Date,
		Issuer:      in.Issuer,
		URL:         in.URL,
		Visibility:  in.Visibility,
		Featured:    in.Featured,
	}
	if a.Visibility == "" {
		a.Visibility = VisibilityPublic
	}
	RefreshTimestamps(&a.Timestamps, now)
	return a
}
