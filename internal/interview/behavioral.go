package interview

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/jonathan/resume-analyzer/internal/analyze"
	"github.com/jonathan/resume-analyzer/internal/normalize"
	"github.com/jonathan/resume-analyzer/internal/prompts"
	"github.com/jonathan/resume-analyzer/internal/types"
)

// fallbackBehavioral is used verbatim when behavioral generation fails,
// repeated or truncated to the requested count
var fallbackBehavioral = []string{
	"Tell me about a time you had to meet a tight deadline. How did you prioritize your work?",
	"Describe a situation where you disagreed with a teammate. How did you resolve it?",
	"Tell me about a project you are particularly proud of. What was your contribution?",
	"Describe a time you received critical feedback. How did you respond?",
	"Tell me about a time you had to learn a new technology quickly. What was your approach?",
}

// generateBehavioral requests all behavioral questions in one call and
// substitutes the fixed fallback list on any failure
func (g *Generator) generateBehavioral(ctx context.Context, analysis *types.ResumeAnalysis, cfg types.QuestionConfig) []types.Question {
	var prompt string
	if len(analysis.Experience) == 0 {
		prompt = prompts.Format(prompts.MustGet("interview.json", "behavioral-general"), map[string]string{
			"Count":      fmt.Sprintf("%d", cfg.BehavioralCount),
			"Difficulty": difficultyInstruction(cfg),
		})
	} else {
		prompt = prompts.Format(prompts.MustGet("interview.json", "behavioral"), map[string]string{
			"Count":             fmt.Sprintf("%d", cfg.BehavioralCount),
			"Difficulty":        difficultyInstruction(cfg),
			"ExperienceSummary": experienceSummary(analysis),
		})
	}

	var v any
	if err := g.dec.Structured(ctx, g.model, prompt, &v); err != nil {
		g.log.Warn("behavioral question generation failed, using fallback", zap.Error(err))
		return behavioralFallback(cfg)
	}
	questions := normalize.Questions(v, types.QuestionBehavioral, defaultLevel(cfg))
	if len(questions) == 0 {
		g.log.Warn("behavioral question generation returned no usable questions, using fallback")
		return behavioralFallback(cfg)
	}
	return sample(applyDifficulty(questions, cfg), cfg.BehavioralCount)
}

// behavioralFallback repeats the fixed list as needed to reach the
// requested count
func behavioralFallback(cfg types.QuestionConfig) []types.Question {
	level := defaultLevel(cfg)
	questions := make([]types.Question, 0, cfg.BehavioralCount)
	for i := 0; i < cfg.BehavioralCount; i++ {
		questions = append(questions, types.Question{
			ID:              normalize.NewID(),
			Type:            types.QuestionBehavioral,
			Question:        fallbackBehavioral[i%len(fallbackBehavioral)],
			Category:        "General",
			Difficulty:      level,
			AnswerFramework: normalize.DefaultAnswerFramework(types.QuestionBehavioral),
			EstimatedTime:   normalize.DefaultEstimatedTime(types.QuestionBehavioral),
		})
	}
	return questions
}

// experienceSummary condenses the analyzed work history into the prompt
// context for behavioral questions
func experienceSummary(analysis *types.ResumeAnalysis) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Total experience: %.1f years.", analysis.TotalExperienceYears)
	if analyze.HasLeadershipSignal(analysis.Experience) {
		b.WriteString(" Has leadership experience.")
	}

	var positions []string
	seen := make(map[string]bool)
	var technologies []string
	for _, e := range analysis.Experience {
		if e.Position != "" && len(positions) < 3 {
			positions = append(positions, e.Position)
		}
		for _, t := range e.Technologies {
			if !seen[t] {
				seen[t] = true
				technologies = append(technologies, t)
			}
		}
	}
	if len(positions) > 0 {
		fmt.Fprintf(&b, " Recent positions: %s.", strings.Join(positions, ", "))
	}
	if len(technologies) > 0 {
		fmt.Fprintf(&b, " Technologies used: %s.", strings.Join(technologies, ", "))
	}
	return b.String()
}
