// Package interview generates interview questions from a completed
// resume analysis. Technical questions fan out per skill category with
// counts allocated proportionally to category size; behavioral questions
// are requested in one call with a fixed fallback list on failure.
package interview

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/resume-analyzer/internal/decode"
	"github.com/jonathan/resume-analyzer/internal/normalize"
	"github.com/jonathan/resume-analyzer/internal/prompts"
	"github.com/jonathan/resume-analyzer/internal/types"
)

// InvalidConfigError indicates the question configuration failed
// validation before any model call was made
type InvalidConfigError struct {
	Cause error
}

func (e *InvalidConfigError) Error() string {
	return fmt.Sprintf("invalid question config: %v", e.Cause)
}

func (e *InvalidConfigError) Unwrap() error {
	return e.Cause
}

// Generator produces interview questions against one model
type Generator struct {
	dec      *decode.Decoder
	model    string
	log      *zap.Logger
	validate *validator.Validate
}

// New creates a question Generator
func New(dec *decode.Decoder, model string, log *zap.Logger) *Generator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Generator{
		dec:      dec,
		model:    model,
		log:      log,
		validate: validator.New(),
	}
}

// Generate produces the requested quantities of technical and behavioral
// questions. Configuration errors are rejected synchronously before any
// model call.
func (g *Generator) Generate(ctx context.Context, analysis *types.ResumeAnalysis, cfg types.QuestionConfig) ([]types.Question, error) {
	if err := g.validate.Struct(cfg); err != nil {
		return nil, &InvalidConfigError{Cause: err}
	}

	questions := g.generateTechnical(ctx, analysis, cfg)
	questions = append(questions, g.generateBehavioral(ctx, analysis, cfg)...)
	return questions, nil
}

// defaultLevel is the per-question clamp target for the configured
// difficulty. Mixed clamps to Intermediate: it is a distribution policy,
// not a storable value.
func defaultLevel(cfg types.QuestionConfig) types.Difficulty {
	if d := types.Difficulty(cfg.Difficulty); d.Valid() {
		return d
	}
	return types.DifficultyIntermediate
}

// applyDifficulty forces the configured level onto each question. A
// concrete configured level is a contract, not a hint: model-claimed
// levels are overwritten. Mixed keeps the per-question levels the model
// distributed.
func applyDifficulty(questions []types.Question, cfg types.QuestionConfig) []types.Question {
	if cfg.Difficulty == string(types.DifficultyMixed) {
		return questions
	}
	level := defaultLevel(cfg)
	for i := range questions {
		questions[i].Difficulty = level
	}
	return questions
}

// difficultyInstruction renders the difficulty for the prompt. Mixed
// becomes an explicit distribution instruction.
func difficultyInstruction(cfg types.QuestionConfig) string {
	if cfg.Difficulty == string(types.DifficultyMixed) {
		return "Mixed - distribute questions across Beginner, Intermediate and Advanced, labeling each with its concrete level"
	}
	return cfg.Difficulty
}

// generateTechnical fans out one generation call per non-empty skill
// category and merges the results down to the requested count
func (g *Generator) generateTechnical(ctx context.Context, analysis *types.ResumeAnalysis, cfg types.QuestionConfig) []types.Question {
	groups := categoryGroups(analysis.Skills)
	if len(groups) == 0 {
		return g.generalTechnical(ctx, cfg)
	}

	sizes := make([]int, len(groups))
	for i, grp := range groups {
		sizes[i] = len(grp.skills)
	}
	counts := allocate(cfg.TechnicalCount, sizes)

	results := make([][]types.Question, len(groups))
	eg, egctx := errgroup.WithContext(ctx)
	for i, grp := range groups {
		if counts[i] == 0 {
			continue
		}
		eg.Go(func() error {
			results[i] = g.categoryTechnical(egctx, grp, counts[i], cfg)
			return nil // branch failures already degraded to nil
		})
	}
	_ = eg.Wait()

	var merged []types.Question
	for _, qs := range results {
		merged = append(merged, qs...)
	}
	if len(merged) == 0 {
		return g.generalTechnical(ctx, cfg)
	}
	return sample(merged, cfg.TechnicalCount)
}

func (g *Generator) categoryTechnical(ctx context.Context, grp categoryGroup, count int, cfg types.QuestionConfig) []types.Question {
	prompt := prompts.Format(prompts.MustGet("interview.json", "technical-category"), map[string]string{
		"Count":      fmt.Sprintf("%d", count),
		"Category":   grp.name,
		"Skills":     strings.Join(grp.skills, ", "),
		"Difficulty": difficultyInstruction(cfg),
	})

	var v any
	if err := g.dec.Structured(ctx, g.model, prompt, &v); err != nil {
		g.log.Warn("technical question generation failed for category",
			zap.String("category", grp.name),
			zap.Error(err))
		return nil
	}
	return applyDifficulty(normalize.Questions(v, types.QuestionTechnical, defaultLevel(cfg)), cfg)
}

// generalTechnical covers the no-skills case with a single
// general-programming call
func (g *Generator) generalTechnical(ctx context.Context, cfg types.QuestionConfig) []types.Question {
	prompt := prompts.Format(prompts.MustGet("interview.json", "technical-general"), map[string]string{
		"Count":      fmt.Sprintf("%d", cfg.TechnicalCount),
		"Difficulty": difficultyInstruction(cfg),
	})

	var v any
	if err := g.dec.Structured(ctx, g.model, prompt, &v); err != nil {
		g.log.Warn("general technical question generation failed", zap.Error(err))
		return nil
	}
	questions := applyDifficulty(normalize.Questions(v, types.QuestionTechnical, defaultLevel(cfg)), cfg)
	return sample(questions, cfg.TechnicalCount)
}

// sample returns up to count questions. An oversized pool is uniformly
// down-sampled rather than truncated so category diversity survives.
// The selection is deliberately unseeded; callers may only rely on
// cardinality and uniqueness.
func sample(questions []types.Question, count int) []types.Question {
	if len(questions) <= count {
		return questions
	}
	shuffled := make([]types.Question, len(questions))
	copy(shuffled, questions)
	rand.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	return shuffled[:count]
}
