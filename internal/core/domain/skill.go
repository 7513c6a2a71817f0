package domain

import (
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type SkillCategory string

const (
	SkillCategoryProgramming SkillCategory = "programming"
	SkillCategoryFramework   SkillCategory = "framework"
	SkillCategoryDatabase    SkillCategory = "database"
	SkillCategoryCloud       SkillCategory = "cloud"
	SkillCategoryDevOps      SkillCategory = "devops"
	SkillCategoryTool        SkillCategory = "tool"
	SkillCategorySoftSkill   SkillCategory = "soft-skill"
	SkillCategoryOther       SkillCategory = "other"
)

type Proficiency string

const (
	ProficiencyBeginner     Proficiency = "beginner"
	ProficiencyIntermediate Proficiency = "intermediate"
	ProficiencyAdvanced     Proficiency = "advanced"
	ProficiencyExpert       Proficiency = "expert"
)

var proficiencyRank = map[Proficiency]int{
	ProficiencyBeginner:     1,
	ProficiencyIntermediate: 2,
	ProficiencyAdvanced:     3,
	ProficiencyExpert:       4,
}

// Rank orders proficiency levels from beginner (1) to expert (4); unknown is 0.
func (p Proficiency) Rank() int {
	return proficiencyRank[p]
}

type Skill struct {
	ID                primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	User              primitive.ObjectID `json:"user" bson:"user"`
	Name              string             `json:"name,omitempty" bson:"name"`
	Category          SkillCategory      `json:"category,omitempty" bson:"category"`
	Proficiency       Proficiency        `json:"proficiency,omitempty" bson:"proficiency"`
	YearsOfExperience float64            `json:"yearsOfExperience" bson:"yearsOfExperience"`
	Timestamps        `bson:",inline"`
}

type SkillInput struct {
	Name              string        `json:"name" validate:"required,max=50"`
	Category          SkillCategory `json:"category" validate:"required,oneof=programming framework database cloud devops tool soft-skill other"`
	Proficiency       Proficiency   `json:"proficiency" validate:"omitempty,oneof=beginner intermediate advanced expert"`
	YearsOfExperience float64       `json:"yearsOfExperience" validate:"min=0,max=50"`
}

type SkillPatch struct {
	Name              *string        `json:"name" bson:"name,omitempty" validate:"omitempty,min=1,max=50"`
	Category          *SkillCategory `json:"category" bson:"category,omitempty" validate:"omitempty,oneof=programming framework database cloud devops tool soft-skill other"`
	Proficiency       *Proficiency   `json:"proficiency" bson:"proficiency,omitempty" validate:"omitempty,oneof=beginner intermediate advanced expert"`
	YearsOfExperience *float64       `json:"yearsOfExperience" bson:"yearsOfExperience,omitempty" validate:"omitempty,min=0,max=50"`
}

func NewSkill(owner primitive.ObjectID, in SkillInput, now time.Time) *Skill {
	s := &Skill{
		User:              owner,
		Name:              in.Name,
		Category:          in.Category,
		Proficiency:       in.Proficiency,
		YearsOfExperience: in.YearsOfExperience,
	}
	if s.Proficiency == "" {
		s.Proficiency = ProficiencyIntermediate
	}
	RefreshTimestamps(&s.Timestamps, now)
	return s
}

// SortSkills orders skills by category, then proficiency (highest first),
// then name.
func SortSkills(skills []*Skill) {
	sort.SliceStable(skills, func(i, j int) bool {
		a, b := skills[i], skills[j]
		if a.Category != b.Category {
			return a.Category < b.Category
		}
		if a.Proficiency.Rank() != b.Proficiency.Rank() {
			return a.Proficiency.Rank() > b.Proficiency.Rank()
		}
		return a.Name < b.Name
	})
}

// GroupByCategory buckets skills by category, preserving input order within
// each bucket.
func GroupByCategory(skills []*Skill) map[SkillCategory][]*Skill {
	grouped := make(map[SkillCategory][]*Skill)
	for _, s := range skills {
		grouped[s.Category] = append(grouped[s.Category], s)
	}
	return grouped
}
