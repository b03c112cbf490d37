package normalize

import (
	"strings"

	"github.com/jonathan/resume-analyzer/internal/types"
)

// DefaultCategory is assigned to skills the model returned without one
const DefaultCategory = "General"

// SkillSet normalizes the decoded skills payload into the five containers.
// Each container degrades independently: a malformed container yields an
// empty slice without affecting its siblings.
func SkillSet(v any) types.SkillSet {
	m := asMap(v)
	if m == nil {
		return types.SkillSet{}
	}
	return types.SkillSet{
		Technical:  SkillList(firstOf(m, "technical_skills", "technical")),
		Soft:       SkillList(firstOf(m, "soft_skills", "soft")),
		Languages:  SkillList(firstOf(m, "languages", "programming_languages")),
		Frameworks: SkillList(firstOf(m, "frameworks")),
		Tools:      SkillList(firstOf(m, "tools")),
	}
}

func firstOf(m map[string]any, keys ...string) any {
	for _, k := range keys {
		if v, ok := m[k]; ok {
			return v
		}
	}
	return nil
}

// SkillList normalizes one container. Elements lacking a name are
// dropped; bare strings are accepted as name-only skills.
func SkillList(v any) []types.Skill {
	items := asSlice(v)
	out := make([]types.Skill, 0, len(items))
	for _, item := range items {
		if name := coerceString(item); name != "" {
			out = append(out, types.Skill{
				ID:       NewID(),
				Name:     name,
				Category: DefaultCategory,
				Level:    types.ProficiencyIntermediate,
			})
			continue
		}

		m := asMap(item)
		if m == nil {
			continue
		}
		name := stringField(m, "name", "skill")
		if name == "" {
			continue
		}

		skill := types.Skill{
			ID:       ensureID(stringField(m, "id")),
			Name:     name,
			Category: stringField(m, "category"),
			Level:    Proficiency(stringField(m, "level", "proficiency")),
		}
		if skill.Category == "" {
			skill.Category = DefaultCategory
		}
		if years, ok := floatField(m, "years_of_experience", "years"); ok {
			skill.Years = years
		}
		out = append(out, skill)
	}
	return out
}

// Proficiency clamps a free-text level to a valid ProficiencyLevel,
// defaulting to Intermediate when invalid or missing
func Proficiency(s string) types.ProficiencyLevel {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "beginner", "novice", "basic":
		return types.ProficiencyBeginner
	case "advanced", "expert":
		return types.ProficiencyAdvanced
	default:
		return types.ProficiencyIntermediate
	}
}
