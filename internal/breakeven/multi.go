package breakeven

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/rgehrsitz/hpcalc/internal/calculation"
	"github.com/rgehrsitz/hpcalc/internal/domain"
)

// SolveFields solves the same goal for each field in turn. With no fields,
// every field that has a default range is tried. Fields that cannot meet the
// goal are listed in Unsolved; unknown fields and cancellation are errors.
func (s *Solver) SolveFields(
	ctx context.Context,
	base domain.Config,
	fields []string,
	goal Goal,
	tariff calculation.Tariff,
	targetYears float64,
) (*MultiFieldResult, error) {

	if len(fields) == 0 {
		for name := range defaultRanges {
			fields = append(fields, name)
		}
		sort.Strings(fields)
	}

	multi := &MultiFieldResult{
		Goal:     goal,
		Tariff:   tariff,
		Unsolved: make(map[string]string),
	}

	for _, name := range fields {
		result, err := s.Solve(ctx, Request{
			Base:        base,
			Field:       name,
			Goal:        goal,
			Tariff:      tariff,
			TargetYears: targetYears,
		})
		if err != nil {
			var be *BreakEvenError
			if errors.As(err, &be) && be.Cause == nil && be.Operation != "validate_request" {
				multi.Unsolved[name] = be.Message
				continue
			}
			return nil, err
		}
		multi.Results = append(multi.Results, *result)
		multi.Goal, multi.Tariff = result.Request.Goal, result.Request.Tariff
	}

	if len(multi.Results) == 0 {
		return nil, &BreakEvenError{
			Operation: "solve_fields",
			Message:   "no field can meet the goal within its range",
		}
	}
	if len(multi.Unsolved) == 0 {
		multi.Unsolved = nil
	}

	multi.Recommendations = generateRecommendations(multi)

	return multi, nil
}

// generateRecommendations summarises each solved field and points at the
// one needing the smallest relative change.
func generateRecommendations(multi *MultiFieldResult) []string {
	recommendations := make([]string, 0, len(multi.Results)+1)

	var closest *Result
	closestChange := math.Inf(1)

	for i := range multi.Results {
		res := &multi.Results[i]
		recommendations = append(recommendations, res.Summary())

		if res.BaseValue == 0 {
			continue
		}
		rel := math.Abs(res.Change / res.BaseValue)
		if rel < closestChange {
			closest, closestChange = res, rel
		}
	}

	if closest != nil {
		recommendations = append(recommendations,
			fmt.Sprintf("Smallest relative change: %s from %s to %s (%.1f%%)",
				closest.Field, formatValue(closest.BaseValue), formatValue(closest.Value), closest.Change/closest.BaseValue*100))
	}

	return recommendations
}
