// Package roadmap builds career development roadmaps from a completed
// resume analysis. Generation is a four-stage sequential pipeline
// (target role, skill gaps, learning resources, ordered steps); each
// stage degrades to its own deterministic fallback on failure without
// cascading backward.
package roadmap

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jonathan/resume-analyzer/internal/decode"
	"github.com/jonathan/resume-analyzer/internal/normalize"
	"github.com/jonathan/resume-analyzer/internal/prompts"
	"github.com/jonathan/resume-analyzer/internal/types"
)

// Generator produces career roadmaps against one model
type Generator struct {
	dec   *decode.Decoder
	model string
	log   *zap.Logger
}

// New creates a roadmap Generator
func New(dec *decode.Decoder, model string, log *zap.Logger) *Generator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Generator{dec: dec, model: model, log: log}
}

// Generate runs the four roadmap stages in order. The result is always
// non-nil: every stage has a deterministic fallback.
func (g *Generator) Generate(ctx context.Context, analysis *types.ResumeAnalysis) (*types.CareerRoadmap, error) {
	targetRole := g.inferTargetRole(ctx, analysis)
	gaps := g.identifyGaps(ctx, analysis, targetRole)
	resources := g.recommendResources(ctx, gaps)
	steps := g.buildSteps(ctx, analysis, targetRole, gaps, resources)

	return &types.CareerRoadmap{
		ID:                uuid.NewString(),
		CreatedAt:         time.Now().UTC(),
		CurrentLevel:      analysis.Seniority,
		TargetRole:        targetRole,
		Steps:             steps,
		SkillGaps:         gaps,
		EstimatedTimeline: AggregateTimeline(steps),
		Priority:          OverallPriority(gaps, analysis.Seniority),
	}, nil
}

// inferTargetRole asks the model for the next natural role and falls
// back to a fixed seniority progression table
func (g *Generator) inferTargetRole(ctx context.Context, analysis *types.ResumeAnalysis) string {
	prompt := prompts.Format(prompts.MustGet("roadmap.json", "target-role"), map[string]string{
		"CurrentLevel": string(analysis.Seniority),
		"Skills":       strings.Join(topSkillNames(analysis, 8), ", "),
		"Positions":    strings.Join(recentPositions(analysis, 3), ", "),
	})

	role, err := g.dec.Text(ctx, g.model, prompt)
	if err != nil {
		g.log.Warn("target role inference failed, using progression table", zap.Error(err))
		return FallbackTargetRole(analysis.Seniority)
	}
	role = strings.Trim(strings.TrimSpace(role), `"'.`)
	if role == "" || strings.Count(role, " ") > 6 {
		// a full sentence is not a role title
		return FallbackTargetRole(analysis.Seniority)
	}
	return role
}

// identifyGaps asks for skill gaps against the target role and falls
// back to a generic gap list
func (g *Generator) identifyGaps(ctx context.Context, analysis *types.ResumeAnalysis, targetRole string) []types.SkillGap {
	prompt := prompts.Format(prompts.MustGet("roadmap.json", "skill-gaps"), map[string]string{
		"TargetRole": targetRole,
		"Skills":     strings.Join(topSkillNames(analysis, 12), ", "),
	})

	var v any
	if err := g.dec.Structured(ctx, g.model, prompt, &v); err != nil {
		g.log.Warn("skill gap identification failed, using generic gaps", zap.Error(err))
		return fallbackGaps()
	}
	gaps := normalize.SkillGaps(v)
	if len(gaps) == 0 {
		return fallbackGaps()
	}
	return gaps
}

// recommendResources requests learning resources for the High and
// Medium priority gaps only, falling back to a generic resource list
func (g *Generator) recommendResources(ctx context.Context, gaps []types.SkillGap) []types.LearningResource {
	var relevant []string
	for _, gap := range gaps {
		if gap.Priority == types.PriorityHigh || gap.Priority == types.PriorityMedium {
			relevant = append(relevant, gap.Skill)
		}
	}
	if len(relevant) == 0 {
		return fallbackResources()
	}

	prompt := prompts.Format(prompts.MustGet("roadmap.json", "resources"), map[string]string{
		"Gaps": strings.Join(relevant, ", "),
	})

	var v any
	if err := g.dec.Structured(ctx, g.model, prompt, &v); err != nil {
		g.log.Warn("resource recommendation failed, using generic resources", zap.Error(err))
		return fallbackResources()
	}
	resources := normalize.LearningResources(v)
	if len(resources) == 0 {
		return fallbackResources()
	}
	return resources
}

// buildSteps synthesizes the ordered roadmap steps, falling back to the
// three-step generic roadmap
func (g *Generator) buildSteps(ctx context.Context, analysis *types.ResumeAnalysis, targetRole string, gaps []types.SkillGap, resources []types.LearningResource) []types.RoadmapStep {
	prompt := prompts.Format(prompts.MustGet("roadmap.json", "steps"), map[string]string{
		"CurrentLevel": string(analysis.Seniority),
		"TargetRole":   targetRole,
		"Gaps":         describeGaps(gaps),
		"Resources":    describeResources(resources),
	})

	var v any
	if err := g.dec.Structured(ctx, g.model, prompt, &v); err != nil {
		g.log.Warn("roadmap step synthesis failed, using generic roadmap", zap.Error(err))
		return fallbackSteps(targetRole)
	}
	steps := normalize.RoadmapSteps(v)
	if len(steps) == 0 {
		return fallbackSteps(targetRole)
	}
	return steps
}

func describeGaps(gaps []types.SkillGap) string {
	parts := make([]string, 0, len(gaps))
	for _, gap := range gaps {
		parts = append(parts, fmt.Sprintf("%s (%s -> %s, %s priority)", gap.Skill, gap.CurrentLevel, gap.TargetLevel, gap.Priority))
	}
	return strings.Join(parts, "; ")
}

func describeResources(resources []types.LearningResource) string {
	parts := make([]string, 0, len(resources))
	for _, r := range resources {
		if r.Skill != "" {
			parts = append(parts, fmt.Sprintf("%s (%s, for %s)", r.Title, r.Type, r.Skill))
		} else {
			parts = append(parts, fmt.Sprintf("%s (%s)", r.Title, r.Type))
		}
	}
	return strings.Join(parts, "; ")
}

func topSkillNames(analysis *types.ResumeAnalysis, limit int) []string {
	var names []string
	for _, container := range [][]types.Skill{
		analysis.Skills.Technical,
		analysis.Skills.Languages,
		analysis.Skills.Frameworks,
		analysis.Skills.Tools,
	} {
		for _, sk := range container {
			if len(names) == limit {
				return names
			}
			names = append(names, sk.Name)
		}
	}
	return names
}

func recentPositions(analysis *types.ResumeAnalysis, limit int) []string {
	var positions []string
	for _, e := range analysis.Experience {
		if e.Position == "" {
			continue
		}
		if len(positions) == limit {
			break
		}
		positions = append(positions, e.Position)
	}
	return positions
}
