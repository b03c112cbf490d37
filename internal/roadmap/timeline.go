package roadmap

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/jonathan/resume-analyzer/internal/types"
)

var estimatePattern = regexp.MustCompile(`(?i)(\d+)\s*(month|week)s?`)

// parseEstimateMonths extracts a month count from a free-text time
// estimate. Weeks round up to whole months. Returns false when the text
// matches nothing.
func parseEstimateMonths(estimate string) (int, bool) {
	m := estimatePattern.FindStringSubmatch(estimate)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	if strings.EqualFold(m[2], "week") {
		return (n + 3) / 4, true
	}
	return n, true
}

// AggregateTimeline sums the step time estimates into one overall
// figure. Unparseable estimates are skipped; if nothing parses the
// fixed "6-12 months" default is returned.
func AggregateTimeline(steps []types.RoadmapStep) string {
	totalMonths := 0
	parsed := false
	for _, step := range steps {
		if months, ok := parseEstimateMonths(step.EstimatedTime); ok {
			totalMonths += months
			parsed = true
		}
	}
	if !parsed {
		return "6-12 months"
	}
	return formatMonths(totalMonths)
}

func formatMonths(months int) string {
	if months == 1 {
		return "1 month"
	}
	if months < 12 {
		return fmt.Sprintf("%d months", months)
	}
	years := months / 12
	rest := months % 12
	if rest == 0 {
		if years == 1 {
			return "1 year"
		}
		return fmt.Sprintf("%d years", years)
	}
	if years == 1 {
		return fmt.Sprintf("1 year %d months", rest)
	}
	return fmt.Sprintf("%d years %d months", years, rest)
}

// OverallPriority derives the roadmap urgency from gap density and
// current seniority
func OverallPriority(gaps []types.SkillGap, seniority types.SeniorityLevel) types.Priority {
	high := 0
	for _, gap := range gaps {
		if gap.Priority == types.PriorityHigh {
			high++
		}
	}
	switch {
	case high >= 3,
		high*2 > len(gaps),
		seniority == types.SeniorityEntry,
		seniority == types.SeniorityJunior:
		return types.PriorityHigh
	case len(gaps) > 2:
		return types.PriorityMedium
	default:
		return types.PriorityLow
	}
}
