package analyze

import (
	"math"
	"strings"
	"time"

	"github.com/jonathan/resume-analyzer/internal/types"
)

// dateLayouts accepted for experience date strings, most common first
var dateLayouts = []string{"2006-01", "2006/01", "Jan 2006", "January 2006", "2006"}

// TotalExperienceYears computes the total experience from entry date
// ranges: whole-month spans, negative spans clamped to zero, summed and
// converted to years rounded to one decimal. The result is deterministic,
// order-invariant, and never delegated to the model.
func TotalExperienceYears(entries []types.ExperienceEntry, now time.Time) float64 {
	months := 0
	for _, e := range entries {
		start, ok := parseMonth(e.StartDate)
		if !ok {
			continue
		}
		end, ok := parseMonth(e.EndDate)
		if !ok {
			end = now // absent end date means the position is current
		}
		span := monthsBetween(start, end)
		if span < 0 {
			span = 0
		}
		months += span
	}
	return math.Round(float64(months)/12*10) / 10
}

func parseMonth(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func monthsBetween(start, end time.Time) int {
	return (end.Year()-start.Year())*12 + int(end.Month()) - int(start.Month())
}

// leadershipKeywords are matched against position titles and
// responsibilities to derive the leadership signal
var leadershipKeywords = []string{"lead", "senior", "manage", "mentor", "principal"}

// HasLeadershipSignal reports whether any position title or
// responsibility carries a leadership keyword
func HasLeadershipSignal(entries []types.ExperienceEntry) bool {
	for _, e := range entries {
		if containsKeyword(e.Position) {
			return true
		}
		for _, r := range e.Responsibilities {
			if containsKeyword(r) {
				return true
			}
		}
	}
	return false
}

func containsKeyword(s string) bool {
	lower := strings.ToLower(s)
	for _, kw := range leadershipKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
