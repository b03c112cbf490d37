package prompts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet(t *testing.T) {
	prompt, err := Get("extraction.json", "skills")
	require.NoError(t, err)
	assert.Contains(t, prompt, "technical_skills")
	assert.Contains(t, prompt, "{{.ResumeText}}")
}

func TestGetMissingKey(t *testing.T) {
	_, err := Get("extraction.json", "does-not-exist")
	assert.Error(t, err)
}

func TestGetMissingFile(t *testing.T) {
	_, err := Get("nope.json", "skills")
	assert.Error(t, err)
}

func TestMustGetPanics(t *testing.T) {
	assert.Panics(t, func() {
		MustGet("extraction.json", "does-not-exist")
	})
}

func TestFormat(t *testing.T) {
	result := Format("Analyze {{.ResumeText}} at {{.Difficulty}} level", map[string]string{
		"ResumeText": "the resume",
		"Difficulty": "Advanced",
	})
	assert.Equal(t, "Analyze the resume at Advanced level", result)
}

func TestAllPromptFilesParse(t *testing.T) {
	files := map[string][]string{
		"extraction.json": {"personal-info", "skills", "experience", "education", "projects", "seniority", "summary"},
		"interview.json":  {"technical-category", "technical-general", "behavioral", "behavioral-general"},
		"roadmap.json":    {"target-role", "skill-gaps", "resources", "steps"},
	}

	for filename, keys := range files {
		for _, key := range keys {
			prompt, err := Get(filename, key)
			require.NoError(t, err, "%s/%s", filename, key)
			assert.NotEmpty(t, prompt)
		}
	}
}
