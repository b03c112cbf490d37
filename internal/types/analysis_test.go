package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseSeniority(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected SeniorityLevel
		ok       bool
	}{
		{"Exact match", "Senior", SenioritySenior, true},
		{"Lowercase", "senior", SenioritySenior, true},
		{"Uppercase", "LEAD", SeniorityLead, true},
		{"Surrounding whitespace", "  Mid  ", SeniorityMid, true},
		{"Quoted answer", "\"Principal\"", SeniorityPrincipal, true},
		{"Trailing period", "Junior.", SeniorityJunior, true},
		{"Entry level", "entry", SeniorityEntry, true},
		{"Sentence answer rejected", "The candidate is Senior", "", false},
		{"Unknown label", "Staff", "", false},
		{"Empty string", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, ok := ParseSeniority(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestSeniorityLevelValid(t *testing.T) {
	for _, level := range []SeniorityLevel{
		SeniorityEntry, SeniorityJunior, SeniorityMid,
		SenioritySenior, SeniorityLead, SeniorityPrincipal,
	} {
		assert.True(t, level.Valid(), "level %s should be valid", level)
	}
	assert.False(t, SeniorityLevel("Staff").Valid())
	assert.False(t, SeniorityLevel("").Valid())
}

func TestDifficultyValid(t *testing.T) {
	assert.True(t, DifficultyBeginner.Valid())
	assert.True(t, DifficultyIntermediate.Valid())
	assert.True(t, DifficultyAdvanced.Valid())
	// Mixed is a generation policy, never a stored per-question value
	assert.False(t, DifficultyMixed.Valid())
	assert.False(t, Difficulty("expert").Valid())
}

func TestSkillSetEmptyAndCount(t *testing.T) {
	var s SkillSet
	assert.True(t, s.Empty())
	assert.Equal(t, 0, s.Count())

	s.Technical = []Skill{{Name: "Go"}, {Name: "SQL"}}
	s.Tools = []Skill{{Name: "Docker"}}
	assert.False(t, s.Empty())
	assert.Equal(t, 3, s.Count())
}

func TestGapLevelValid(t *testing.T) {
	assert.True(t, GapNone.Valid())
	assert.True(t, GapAdvanced.Valid())
	assert.False(t, GapLevel("Expert").Valid())
}
