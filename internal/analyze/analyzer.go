// Package analyze turns raw resume text into a complete ResumeAnalysis.
// Five independent structured extractions run concurrently; each one
// soft-fails to its empty default so a single bad model reply can never
// abort the analysis.
package analyze

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/resume-analyzer/internal/decode"
	"github.com/jonathan/resume-analyzer/internal/normalize"
	"github.com/jonathan/resume-analyzer/internal/prompts"
	"github.com/jonathan/resume-analyzer/internal/types"
)

// ErrEmptyResume indicates the text-extraction collaborator produced no
// usable text. This is the only hard failure an analysis can surface.
var ErrEmptyResume = errors.New("resume text is empty")

// Analyzer orchestrates resume extraction against one model
type Analyzer struct {
	dec   *decode.Decoder
	model string
	log   *zap.Logger

	now func() time.Time // injectable for tests
}

// New creates an Analyzer using the given decoder and analysis model
func New(dec *decode.Decoder, model string, log *zap.Logger) *Analyzer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Analyzer{dec: dec, model: model, log: log, now: time.Now}
}

// AnalyzeResume runs the full extraction pipeline over raw resume text.
// The five independent extractions fan out concurrently and are joined
// before the dependent steps (seniority, summary) run. A sub-extraction
// failure degrades that slice to its empty default; only empty input
// fails the request.
func (a *Analyzer) AnalyzeResume(ctx context.Context, text, sourceFile string) (*types.ResumeAnalysis, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyResume
	}

	analysis := &types.ResumeAnalysis{
		ID:         uuid.NewString(),
		SourceFile: sourceFile,
		CreatedAt:  a.now().UTC(),
	}

	// Each branch writes only its own field, so the join needs no locking.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		analysis.PersonalInfo = a.extractPersonal(gctx, text)
		return nil
	})
	g.Go(func() error {
		analysis.Skills = a.extractSkills(gctx, text)
		return nil
	})
	g.Go(func() error {
		analysis.Experience = a.extractExperience(gctx, text)
		return nil
	})
	g.Go(func() error {
		analysis.Education = a.extractEducation(gctx, text)
		return nil
	})
	g.Go(func() error {
		analysis.Projects = a.extractProjects(gctx, text)
		return nil
	})
	_ = g.Wait() // branches never return errors

	// Dependent steps: these consume the joined extraction results.
	analysis.TotalExperienceYears = TotalExperienceYears(analysis.Experience, a.now())
	leadership := HasLeadershipSignal(analysis.Experience)
	analysis.Seniority = a.determineSeniority(ctx, analysis.TotalExperienceYears, leadership)
	analysis.Summary = a.generateSummary(ctx, analysis)

	return analysis, nil
}

// extract runs one structured extraction and hands the untyped value to
// the caller's normalizer. Any failure logs and yields nil, which every
// normalizer maps to its empty default.
func (a *Analyzer) extract(ctx context.Context, slice, promptKey, text string) any {
	prompt := prompts.Format(prompts.MustGet("extraction.json", promptKey), map[string]string{
		"ResumeText": text,
	})

	var v any
	if err := a.dec.Structured(ctx, a.model, prompt, &v); err != nil {
		a.log.Warn("extraction failed, degrading to empty default",
			zap.String("slice", slice),
			zap.Error(err))
		return nil
	}
	return v
}

func (a *Analyzer) extractPersonal(ctx context.Context, text string) types.PersonalInfo {
	return normalize.Personal(a.extract(ctx, "personal_info", "personal-info", text))
}

func (a *Analyzer) extractSkills(ctx context.Context, text string) types.SkillSet {
	return normalize.SkillSet(a.extract(ctx, "skills", "skills", text))
}

func (a *Analyzer) extractExperience(ctx context.Context, text string) []types.ExperienceEntry {
	return normalize.Experience(a.extract(ctx, "experience", "experience", text))
}

func (a *Analyzer) extractEducation(ctx context.Context, text string) []types.EducationEntry {
	return normalize.Education(a.extract(ctx, "education", "education", text))
}

func (a *Analyzer) extractProjects(ctx context.Context, text string) []types.ProjectEntry {
	return normalize.Projects(a.extract(ctx, "projects", "projects", text))
}

// generateSummary asks the model for a short professional summary and
// falls back to a deterministic template on failure
func (a *Analyzer) generateSummary(ctx context.Context, analysis *types.ResumeAnalysis) string {
	prompt := prompts.Format(prompts.MustGet("extraction.json", "summary"), map[string]string{
		"Years":     fmt.Sprintf("%.1f", analysis.TotalExperienceYears),
		"Positions": strings.Join(recentPositions(analysis.Experience, 3), ", "),
		"Skills":    strings.Join(topSkillNames(analysis.Skills, 8), ", "),
	})

	summary, err := a.dec.Text(ctx, a.model, prompt)
	if err != nil {
		a.log.Warn("summary generation failed, using template", zap.Error(err))
		return fallbackSummary(analysis)
	}
	summary = strings.TrimSpace(summary)
	if summary == "" {
		return fallbackSummary(analysis)
	}
	return summary
}

func fallbackSummary(analysis *types.ResumeAnalysis) string {
	skills := topSkillNames(analysis.Skills, 3)
	if len(skills) == 0 {
		return fmt.Sprintf("%s-level professional with %.1f years of experience.",
			analysis.Seniority, analysis.TotalExperienceYears)
	}
	return fmt.Sprintf("%s-level professional with %.1f years of experience, skilled in %s.",
		analysis.Seniority, analysis.TotalExperienceYears, strings.Join(skills, ", "))
}

func recentPositions(entries []types.ExperienceEntry, limit int) []string {
	var out []string
	for _, e := range entries {
		if e.Position == "" {
			continue
		}
		out = append(out, e.Position)
		if len(out) == limit {
			break
		}
	}
	return out
}

func topSkillNames(s types.SkillSet, limit int) []string {
	var out []string
	for _, container := range [][]types.Skill{s.Technical, s.Languages, s.Frameworks, s.Tools} {
		for _, skill := range container {
			out = append(out, skill.Name)
			if len(out) == limit {
				return out
			}
		}
	}
	return out
}
