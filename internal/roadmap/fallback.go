package roadmap

import (
	"github.com/jonathan/resume-analyzer/internal/normalize"
	"github.com/jonathan/resume-analyzer/internal/types"
)

// roleProgression is the stage-one fallback: the next natural role per
// seniority level
var roleProgression = map[types.SeniorityLevel]string{
	types.SeniorityEntry:     "Junior Software Engineer",
	types.SeniorityJunior:    "Software Engineer",
	types.SeniorityMid:       "Senior Software Engineer",
	types.SenioritySenior:    "Staff Engineer",
	types.SeniorityLead:      "Engineering Manager",
	types.SeniorityPrincipal: "Distinguished Engineer",
}

// FallbackTargetRole returns the fixed role-progression entry for the
// given seniority
func FallbackTargetRole(level types.SeniorityLevel) string {
	if role, ok := roleProgression[level]; ok {
		return role
	}
	return "Senior Software Engineer"
}

// fallbackGaps is the stage-two fallback: a generic gap list applicable
// to most software candidates
func fallbackGaps() []types.SkillGap {
	return []types.SkillGap{
		{
			Skill:         "System Design",
			CurrentLevel:  types.GapBeginner,
			TargetLevel:   types.ProficiencyAdvanced,
			Priority:      types.PriorityHigh,
			EstimatedTime: "3 months",
		},
		{
			Skill:         "Testing and Code Quality",
			CurrentLevel:  types.GapIntermediate,
			TargetLevel:   types.ProficiencyAdvanced,
			Priority:      types.PriorityMedium,
			EstimatedTime: "2 months",
		},
		{
			Skill:         "Communication and Collaboration",
			CurrentLevel:  types.GapIntermediate,
			TargetLevel:   types.ProficiencyAdvanced,
			Priority:      types.PriorityMedium,
			EstimatedTime: "2 months",
		},
	}
}

// fallbackResources is the stage-three fallback: generic resources
// covering the generic gaps
func fallbackResources() []types.LearningResource {
	return []types.LearningResource{
		{
			Title:       "Designing Data-Intensive Applications",
			Type:        "book",
			Skill:       "System Design",
			Description: "Foundations of reliable, scalable system design.",
		},
		{
			Title:       "Official documentation of your primary stack",
			Type:        "documentation",
			Description: "Depth in the tools you already use daily.",
		},
		{
			Title:       "Open source contribution",
			Type:        "practice",
			Skill:       "Testing and Code Quality",
			Description: "Real code review exposure on an established codebase.",
		},
	}
}

// fallbackSteps is the stage-four fallback: a three-step generic
// roadmap toward the target role
func fallbackSteps(targetRole string) []types.RoadmapStep {
	strengthen := types.RoadmapStep{
		ID:            normalize.NewID(),
		Title:         "Strengthen core engineering skills",
		Description:   "Deepen expertise in your primary language and tooling through deliberate practice and code review.",
		Skills:        []string{"System Design", "Testing and Code Quality"},
		EstimatedTime: "3 months",
		Priority:      types.PriorityHigh,
	}
	broaden := types.RoadmapStep{
		ID:            normalize.NewID(),
		Title:         "Broaden scope beyond your own tasks",
		Description:   "Take ownership of a cross-team feature, mentor a teammate, and document design decisions.",
		Skills:        []string{"Communication and Collaboration"},
		EstimatedTime: "3 months",
		Priority:      types.PriorityMedium,
		Prerequisites: []string{strengthen.Title},
	}
	target := types.RoadmapStep{
		ID:            normalize.NewID(),
		Title:         "Operate at the " + targetRole + " level",
		Description:   "Seek out responsibilities of the target role before holding the title.",
		EstimatedTime: "6 months",
		Priority:      types.PriorityMedium,
		Prerequisites: []string{broaden.Title},
	}
	return []types.RoadmapStep{strengthen, broaden, target}
}
