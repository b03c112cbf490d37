package analyze

import (
	"context"
	"strconv"

	"go.uber.org/zap"

	"github.com/jonathan/resume-analyzer/internal/prompts"
	"github.com/jonathan/resume-analyzer/internal/types"
)

// FallbackSeniority maps total experience years to a seniority label.
// It is the sole fallback when the model call fails or answers outside
// the six valid labels.
//
// Boundaries: <1y Entry, <3y Junior, <5y Mid, <8y Senior,
// >=8y Lead with a leadership signal, otherwise Senior.
func FallbackSeniority(years float64, leadership bool) types.SeniorityLevel {
	switch {
	case years < 1:
		return types.SeniorityEntry
	case years < 3:
		return types.SeniorityJunior
	case years < 5:
		return types.SeniorityMid
	case years < 8:
		return types.SenioritySenior
	default:
		if leadership {
			return types.SeniorityLead
		}
		return types.SenioritySenior
	}
}

// determineSeniority asks the model for one of the six labels and falls
// back to the deterministic threshold table on any failure or invalid
// answer
func (a *Analyzer) determineSeniority(ctx context.Context, years float64, leadership bool) types.SeniorityLevel {
	prompt := prompts.Format(prompts.MustGet("extraction.json", "seniority"), map[string]string{
		"Years":      strconv.FormatFloat(years, 'f', 1, 64),
		"Leadership": strconv.FormatBool(leadership),
	})

	reply, err := a.dec.Text(ctx, a.model, prompt)
	if err != nil {
		a.log.Warn("seniority generation failed, using threshold table", zap.Error(err))
		return FallbackSeniority(years, leadership)
	}

	if level, ok := types.ParseSeniority(reply); ok {
		return level
	}
	a.log.Warn("seniority answer not a valid label, using threshold table",
		zap.String("answer", reply))
	return FallbackSeniority(years, leadership)
}
