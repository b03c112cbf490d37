package analyze

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jonathan/resume-analyzer/internal/decode"
	"github.com/jonathan/resume-analyzer/internal/ollama"
	"github.com/jonathan/resume-analyzer/internal/types"
)

// scriptedGateway routes prompts to canned responses by substring match.
// Prompts with no matching script fail with a generation error, and
// script keys listed in failing always fail.
type scriptedGateway struct {
	scripts map[string]string
	failing map[string]bool
}

func (f *scriptedGateway) GenerateWithRetry(_ context.Context, model, prompt string, _ ollama.Options, _ int, _ time.Duration) (string, error) {
	for key, response := range f.scripts {
		if strings.Contains(prompt, key) {
			if f.failing[key] {
				return "", &ollama.GenerationError{Model: model, Message: "scripted failure"}
			}
			return response, nil
		}
	}
	return "", &ollama.GenerationError{Model: model, Message: "no scripted response"}
}

// Script keys: stable substrings of each extraction prompt.
const (
	keyPersonal   = "contact and identity"
	keySkills     = "five containers"
	keyExperience = "work experience"
	keyEducation  = "education history"
	keyProjects   = "personal or professional projects"
	keySeniority  = "Classify their seniority"
	keySummary    = "professional summary"
)

func fullScripts() map[string]string {
	return map[string]string{
		keyPersonal:   `{"name":"Ada Lovelace","email":"ada@example.com"}`,
		keySkills:     `{"technical_skills":[{"name":"Go","level":"Advanced"},{"name":"PostgreSQL"},{"name":"Docker"}]}`,
		keyExperience: `{"experience":[{"company":"Acme","position":"Engineer","start_date":"2020-01"}]}`,
		keyEducation:  `{"education":[{"institution":"MIT","degree":"BSc"}]}`,
		keyProjects:   `{"projects":[{"name":"analyzer"}]}`,
		keySeniority:  "Senior",
		keySummary:    "Seasoned engineer focused on backend systems.",
	}
}

func newTestAnalyzer(gw decode.Gateway) *Analyzer {
	a := New(decode.New(gw, 1, time.Millisecond), "test-model", zap.NewNop())
	a.now = func() time.Time { return testNow }
	return a
}

func TestAnalyzeResumeEmptyText(t *testing.T) {
	a := newTestAnalyzer(&scriptedGateway{})
	_, err := a.AnalyzeResume(context.Background(), "   \n ", "resume.pdf")
	assert.ErrorIs(t, err, ErrEmptyResume)
}

func TestAnalyzeResumeFullPath(t *testing.T) {
	gw := &scriptedGateway{scripts: fullScripts()}
	a := newTestAnalyzer(gw)

	analysis, err := a.AnalyzeResume(context.Background(), "resume text", "resume.pdf")
	require.NoError(t, err)

	assert.NotEmpty(t, analysis.ID)
	assert.Equal(t, "resume.pdf", analysis.SourceFile)
	assert.Equal(t, "Ada Lovelace", analysis.PersonalInfo.Name)
	assert.Len(t, analysis.Skills.Technical, 3, "stubbed skills returned verbatim")
	require.Len(t, analysis.Experience, 1)
	assert.Len(t, analysis.Education, 1)
	assert.Len(t, analysis.Projects, 1)

	// 2020-01 open-ended to testNow (2026-08): 79 months.
	assert.InDelta(t, 6.6, analysis.TotalExperienceYears, 1e-9)
	assert.Equal(t, types.SenioritySenior, analysis.Seniority)
	assert.Equal(t, "Seasoned engineer focused on backend systems.", analysis.Summary)
}

func TestAnalyzeResumeSkillsSoftFail(t *testing.T) {
	gw := &scriptedGateway{
		scripts: fullScripts(),
		failing: map[string]bool{keySkills: true},
	}
	a := newTestAnalyzer(gw)

	analysis, err := a.AnalyzeResume(context.Background(), "resume text", "resume.pdf")
	require.NoError(t, err, "a failed sub-extraction never aborts the analysis")

	assert.True(t, analysis.Skills.Empty(), "failed slice degrades to the empty shape")
	assert.Len(t, analysis.Experience, 1, "sibling extractions unaffected")
	assert.Len(t, analysis.Education, 1)
}

func TestAnalyzeResumeMalformedSliceSoftFails(t *testing.T) {
	scripts := fullScripts()
	scripts[keyProjects] = "I could not find any projects, sorry!"
	a := newTestAnalyzer(&scriptedGateway{scripts: scripts})

	analysis, err := a.AnalyzeResume(context.Background(), "resume text", "resume.pdf")
	require.NoError(t, err)
	assert.Empty(t, analysis.Projects, "malformed reply degrades to empty slice")
	assert.Len(t, analysis.Experience, 1)
}

func TestAnalyzeResumeModelDownEverywhere(t *testing.T) {
	// Every call fails: the analysis still completes with defaults and
	// the threshold-table seniority.
	a := newTestAnalyzer(&scriptedGateway{})

	analysis, err := a.AnalyzeResume(context.Background(), "resume text", "resume.pdf")
	require.NoError(t, err)

	assert.True(t, analysis.Skills.Empty())
	assert.Empty(t, analysis.Experience)
	assert.Zero(t, analysis.TotalExperienceYears)
	assert.Equal(t, types.SeniorityEntry, analysis.Seniority, "0 years maps to Entry via threshold table")
	assert.NotEmpty(t, analysis.Summary, "summary falls back to deterministic template")
}

func TestAnalyzeResumeInvalidSeniorityAnswer(t *testing.T) {
	scripts := fullScripts()
	scripts[keySeniority] = "Probably quite senior, hard to say!"
	a := newTestAnalyzer(&scriptedGateway{scripts: scripts})

	analysis, err := a.AnalyzeResume(context.Background(), "resume text", "resume.pdf")
	require.NoError(t, err)

	// 6.6 years, no leadership keyword in "Engineer": threshold says Senior.
	assert.Equal(t, types.SenioritySenior, analysis.Seniority)
}

func TestAnalyzeResumeLeadershipSeniority(t *testing.T) {
	scripts := fullScripts()
	scripts[keyExperience] = `{"experience":[
		{"company":"Acme","position":"Engineering Manager","start_date":"2015-01"},
		{"company":"Init","position":"Developer","start_date":"2012-01","end_date":"2015-01"}
	]}`
	delete(scripts, keySeniority) // force the fallback path
	a := newTestAnalyzer(&scriptedGateway{scripts: scripts})

	analysis, err := a.AnalyzeResume(context.Background(), "resume text", "resume.pdf")
	require.NoError(t, err)

	assert.True(t, analysis.TotalExperienceYears >= 8)
	assert.Equal(t, types.SeniorityLead, analysis.Seniority)
}

func TestFallbackSummaryDeterministic(t *testing.T) {
	analysis := &types.ResumeAnalysis{
		Seniority:            types.SeniorityMid,
		TotalExperienceYears: 4.5,
		Skills: types.SkillSet{
			Technical: []types.Skill{{Name: "Go"}, {Name: "SQL"}},
		},
	}
	first := fallbackSummary(analysis)
	assert.Equal(t, first, fallbackSummary(analysis))
	assert.Contains(t, first, "Mid")
	assert.Contains(t, first, "4.5")
	assert.Contains(t, first, "Go")
}
