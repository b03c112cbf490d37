package normalize

import (
	"strings"

	"github.com/jonathan/resume-analyzer/internal/types"
)

// Default answer frameworks and time estimates per question type
const (
	technicalFramework  = "Outline your approach, discuss trade-offs, then walk through a concrete implementation."
	behavioralFramework = "Use the STAR method: Situation, Task, Action, Result."
	technicalTime       = "15-20 minutes"
	behavioralTime      = "5-10 minutes"
)

// Questions normalizes a decoded question payload. Every kept question
// carries the given type regardless of what the model claimed, so a
// technical-only call can never leak behavioral items. Questions with
// empty text are discarded. defaultLevel is the clamp target for invalid
// difficulties; it must be a concrete level, never Mixed.
func Questions(v any, qType types.QuestionType, defaultLevel types.Difficulty) []types.Question {
	if !defaultLevel.Valid() {
		defaultLevel = types.DifficultyIntermediate
	}

	items := listField(v, "questions", "items")
	out := make([]types.Question, 0, len(items))
	for _, item := range items {
		m := asMap(item)
		if m == nil {
			continue
		}
		text := stringField(m, "question", "text")
		if text == "" {
			continue
		}

		q := types.Question{
			ID:              ensureID(stringField(m, "id")),
			Type:            qType,
			Difficulty:      QuestionDifficulty(stringField(m, "difficulty"), defaultLevel),
			Question:        text,
			Category:        stringField(m, "category", "topic"),
			AnswerFramework: stringField(m, "answer_framework", "framework"),
			RelatedSkills:   stringList(m["related_skills"]),
			EstimatedTime:   stringField(m, "estimated_time", "time"),
		}
		if q.Category == "" {
			q.Category = DefaultCategory
		}
		if q.AnswerFramework == "" {
			q.AnswerFramework = DefaultAnswerFramework(qType)
		}
		if q.EstimatedTime == "" {
			q.EstimatedTime = DefaultEstimatedTime(qType)
		}
		out = append(out, q)
	}
	return out
}

// QuestionDifficulty clamps a free-text difficulty to a concrete level.
// Mixed is rejected here on purpose: it is a generation policy, not a
// per-question value.
func QuestionDifficulty(s string, fallback types.Difficulty) types.Difficulty {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "beginner", "easy":
		return types.DifficultyBeginner
	case "intermediate", "medium":
		return types.DifficultyIntermediate
	case "advanced", "hard", "expert":
		return types.DifficultyAdvanced
	default:
		return fallback
	}
}

// DefaultAnswerFramework returns the fixed fallback framework per type
func DefaultAnswerFramework(qType types.QuestionType) string {
	if qType == types.QuestionBehavioral {
		return behavioralFramework
	}
	return technicalFramework
}

// DefaultEstimatedTime returns the fixed fallback time estimate per type
func DefaultEstimatedTime(qType types.QuestionType) string {
	if qType == types.QuestionBehavioral {
		return behavioralTime
	}
	return technicalTime
}
