package normalize

import (
	"strings"

	"github.com/jonathan/resume-analyzer/internal/types"
)

// SkillGaps normalizes a decoded skill-gap payload. Gaps lacking a skill
// name are dropped; levels and priority clamp to documented defaults.
func SkillGaps(v any) []types.SkillGap {
	items := listField(v, "skill_gaps", "gaps")
	out := make([]types.SkillGap, 0, len(items))
	for _, item := range items {
		m := asMap(item)
		if m == nil {
			continue
		}
		skill := stringField(m, "skill", "name")
		if skill == "" {
			continue
		}

		out = append(out, types.SkillGap{
			Skill:         skill,
			CurrentLevel:  gapLevel(stringField(m, "current_level", "current")),
			TargetLevel:   Proficiency(stringField(m, "target_level", "target")),
			Priority:      GapPriority(stringField(m, "priority")),
			EstimatedTime: stringField(m, "estimated_learning_time", "estimated_time"),
		})
	}
	return out
}

func gapLevel(s string) types.GapLevel {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "beginner", "novice", "basic":
		return types.GapBeginner
	case "intermediate", "medium":
		return types.GapIntermediate
	case "advanced", "expert":
		return types.GapAdvanced
	default:
		return types.GapNone
	}
}

// GapPriority clamps a free-text priority, defaulting to Medium
func GapPriority(s string) types.Priority {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "high", "critical":
		return types.PriorityHigh
	case "low":
		return types.PriorityLow
	default:
		return types.PriorityMedium
	}
}

// RoadmapSteps normalizes a decoded roadmap-step payload. Steps lacking a
// title are dropped. Nested resources are normalized recursively.
func RoadmapSteps(v any) []types.RoadmapStep {
	items := listField(v, "steps", "roadmap_steps")
	out := make([]types.RoadmapStep, 0, len(items))
	for _, item := range items {
		m := asMap(item)
		if m == nil {
			continue
		}
		title := stringField(m, "title", "name")
		if title == "" {
			continue
		}

		out = append(out, types.RoadmapStep{
			ID:            ensureID(stringField(m, "id")),
			Title:         title,
			Description:   stringField(m, "description"),
			Skills:        stringList(m["skills"]),
			EstimatedTime: stringField(m, "estimated_time", "duration"),
			Priority:      GapPriority(stringField(m, "priority")),
			Resources:     LearningResources(m["resources"]),
			Prerequisites: stringList(m["prerequisites"]),
		})
	}
	return out
}

// LearningResources normalizes a decoded resource payload. Resources
// lacking a title are dropped.
func LearningResources(v any) []types.LearningResource {
	items := listField(v, "resources", "learning_resources")
	out := make([]types.LearningResource, 0, len(items))
	for _, item := range items {
		m := asMap(item)
		if m == nil {
			continue
		}
		title := stringField(m, "title", "name")
		if title == "" {
			continue
		}

		out = append(out, types.LearningResource{
			Title:       title,
			Type:        strings.ToLower(stringField(m, "type")),
			URL:         stringField(m, "url", "link"),
			Skill:       stringField(m, "skill"),
			Description: stringField(m, "description"),
		})
	}
	return out
}
