package analyze

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/resume-analyzer/internal/types"
)

var testNow = time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC)

func TestTotalExperienceYears(t *testing.T) {
	tests := []struct {
		name     string
		entries  []types.ExperienceEntry
		expected float64
	}{
		{
			name:     "No entries",
			entries:  nil,
			expected: 0,
		},
		{
			name: "Two full years",
			entries: []types.ExperienceEntry{
				{StartDate: "2020-01", EndDate: "2022-01"},
			},
			expected: 2.0,
		},
		{
			name: "Open-ended entry runs to now",
			entries: []types.ExperienceEntry{
				{StartDate: "2020-01"},
			},
			expected: 6.6, // 2020-01 .. 2026-08 = 79 months
		},
		{
			name: "Year-only dates",
			entries: []types.ExperienceEntry{
				{StartDate: "2018", EndDate: "2020"},
			},
			expected: 2.0,
		},
		{
			name: "Month name layout",
			entries: []types.ExperienceEntry{
				{StartDate: "Jan 2020", EndDate: "Jan 2021"},
			},
			expected: 1.0,
		},
		{
			name: "Negative span clamps to zero",
			entries: []types.ExperienceEntry{
				{StartDate: "2022-06", EndDate: "2021-01"},
				{StartDate: "2020-01", EndDate: "2021-01"},
			},
			expected: 1.0,
		},
		{
			name: "Unparseable start skipped",
			entries: []types.ExperienceEntry{
				{StartDate: "a while ago", EndDate: "2021-01"},
				{StartDate: "2019-01", EndDate: "2020-01"},
			},
			expected: 1.0,
		},
		{
			name: "Multiple entries sum",
			entries: []types.ExperienceEntry{
				{StartDate: "2015-01", EndDate: "2017-07"}, // 30 months
				{StartDate: "2018-01", EndDate: "2020-01"}, // 24 months
			},
			expected: 4.5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TotalExperienceYears(tt.entries, testNow)
			assert.InDelta(t, tt.expected, got, 1e-9)
			assert.GreaterOrEqual(t, got, 0.0)
		})
	}
}

func TestTotalExperienceYearsOrderInvariant(t *testing.T) {
	entries := []types.ExperienceEntry{
		{StartDate: "2015-03", EndDate: "2016-09"},
		{StartDate: "2017-01"},
		{StartDate: "2010", EndDate: "2012"},
	}
	reversed := []types.ExperienceEntry{entries[2], entries[1], entries[0]}

	assert.Equal(t,
		TotalExperienceYears(entries, testNow),
		TotalExperienceYears(reversed, testNow))
}

func TestHasLeadershipSignal(t *testing.T) {
	tests := []struct {
		name     string
		entries  []types.ExperienceEntry
		expected bool
	}{
		{
			name:     "No entries",
			expected: false,
		},
		{
			name:     "Plain engineer",
			entries:  []types.ExperienceEntry{{Position: "Software Engineer"}},
			expected: false,
		},
		{
			name:     "Lead in title",
			entries:  []types.ExperienceEntry{{Position: "Tech Lead"}},
			expected: true,
		},
		{
			name:     "Senior in title",
			entries:  []types.ExperienceEntry{{Position: "Senior Developer"}},
			expected: true,
		},
		{
			name: "Mentoring responsibility",
			entries: []types.ExperienceEntry{{
				Position:         "Engineer",
				Responsibilities: []string{"Mentored junior developers"},
			}},
			expected: true,
		},
		{
			name: "Management responsibility",
			entries: []types.ExperienceEntry{{
				Position:         "Engineer",
				Responsibilities: []string{"Managed a team of four"},
			}},
			expected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, HasLeadershipSignal(tt.entries))
		})
	}
}

func TestFallbackSeniority(t *testing.T) {
	tests := []struct {
		years      float64
		leadership bool
		expected   types.SeniorityLevel
	}{
		{0.5, false, types.SeniorityEntry},
		{2, false, types.SeniorityJunior},
		{4, false, types.SeniorityMid},
		{6, false, types.SenioritySenior},
		{9, true, types.SeniorityLead},
		{9, false, types.SenioritySenior},
		{0, false, types.SeniorityEntry},
		{0.5, true, types.SeniorityEntry}, // leadership only matters past 8y
	}

	for _, tt := range tests {
		got := FallbackSeniority(tt.years, tt.leadership)
		assert.Equal(t, tt.expected, got, "years=%v leadership=%v", tt.years, tt.leadership)
	}
}
