package types

import "time"

// GapLevel represents the current proficiency side of a skill gap.
// Unlike ProficiencyLevel it admits "None" for skills the candidate
// does not have at all.
type GapLevel string

// Gap current-level values
const (
	GapNone         GapLevel = "None"
	GapBeginner     GapLevel = "Beginner"
	GapIntermediate GapLevel = "Intermediate"
	GapAdvanced     GapLevel = "Advanced"
)

// Valid reports whether the level is a known gap level
func (g GapLevel) Valid() bool {
	switch g {
	case GapNone, GapBeginner, GapIntermediate, GapAdvanced:
		return true
	}
	return false
}

// SkillGap represents the delta between current and target proficiency
// in one named skill
type SkillGap struct {
	Skill         string           `json:"skill"`
	CurrentLevel  GapLevel         `json:"current_level"`
	TargetLevel   ProficiencyLevel `json:"target_level"`
	Priority      Priority         `json:"priority"`
	EstimatedTime string           `json:"estimated_learning_time,omitempty"`
}

// LearningResource represents one recommended learning resource
type LearningResource struct {
	Title       string `json:"title"`
	Type        string `json:"type,omitempty"` // course, book, documentation, practice
	URL         string `json:"url,omitempty"`
	Skill       string `json:"skill,omitempty"`
	Description string `json:"description,omitempty"`
}

// RoadmapStep is one ordered unit of a career-development plan.
// Prerequisites reference earlier steps by title, forming a linear
// chain, never a deep graph.
type RoadmapStep struct {
	ID            string             `json:"id"`
	Title         string             `json:"title"`
	Description   string             `json:"description,omitempty"`
	Skills        []string           `json:"skills,omitempty"`
	EstimatedTime string             `json:"estimated_time,omitempty"`
	Priority      Priority           `json:"priority"`
	Resources     []LearningResource `json:"resources,omitempty"`
	Prerequisites []string           `json:"prerequisites,omitempty"`
}

// CareerRoadmap is the complete typed output of roadmap generation
type CareerRoadmap struct {
	ID                string         `json:"id"`
	CreatedAt         time.Time      `json:"created_at"`
	CurrentLevel      SeniorityLevel `json:"current_level"`
	TargetRole        string         `json:"target_role"`
	Steps             []RoadmapStep  `json:"steps"`
	SkillGaps         []SkillGap     `json:"skill_gaps"`
	EstimatedTimeline string         `json:"estimated_timeline"`
	Priority          Priority       `json:"priority"`
}
