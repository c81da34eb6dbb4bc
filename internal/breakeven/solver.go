package breakeven

import (
	"context"
	"fmt"
	"math"

	"github.com/rgehrsitz/hpcalc/internal/calculation"
	"github.com/rgehrsitz/hpcalc/internal/domain"
)

// Solver finds the value of one input at which a goal is met exactly
type Solver struct {
	CalcEngine *calculation.CalculationEngine
	Options    SolverOptions
}

// NewSolver creates a new break-even solver
func NewSolver(calcEngine *calculation.CalculationEngine, options SolverOptions) *Solver {
	if calcEngine == nil {
		calcEngine = calculation.NewCalculationEngine()
	}
	return &Solver{
		CalcEngine: calcEngine,
		Options:    options,
	}
}

// NewDefaultSolver creates a solver with default options
func NewDefaultSolver(calcEngine *calculation.CalculationEngine) *Solver {
	return NewSolver(calcEngine, DefaultSolverOptions())
}

// Solve bisects the requested field over its range until the goal's
// objective changes sign within the tolerance.
func (s *Solver) Solve(ctx context.Context, req Request) (*Result, error) {
	if req.Goal == "" {
		req.Goal = GoalBreakEven
	}
	if req.Tariff == "" {
		req.Tariff = calculation.TariffSmart
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	field, _ := domain.LookupField(req.Field)
	req.Field = field.Name

	if req.Range == nil {
		r, ok := DefaultRange(field.Name)
		if !ok {
			return nil, &BreakEvenError{
				Operation: "solve",
				Message:   fmt.Sprintf("no default search range for %s, give min and max", field.Name),
			}
		}
		req.Range = &r
	}

	maxIterations := s.Options.MaxIterations
	if maxIterations <= 0 {
		maxIterations = DefaultSolverOptions().MaxIterations
	}
	tolerance := s.Options.Tolerance
	if !(tolerance > 0) {
		tolerance = DefaultSolverOptions().Tolerance
	}

	f := objective(req, field)
	lo, hi := req.Range.Min, req.Range.Max
	flo, fhi := f(lo), f(hi)

	if math.IsNaN(flo) || math.IsNaN(fhi) {
		return nil, &BreakEvenError{
			Operation: "bracket",
			Message:   fmt.Sprintf("%s goal is undefined at the ends of %s [%g, %g]", req.Goal, field.Name, lo, hi),
		}
	}
	if flo != 0 && fhi != 0 && (flo > 0) == (fhi > 0) {
		return nil, &BreakEvenError{
			Operation: "bracket",
			Message: fmt.Sprintf("%s between %g and %g never meets the %s goal on the %s tariff",
				field.Name, lo, hi, req.Goal, req.Tariff),
		}
	}

	direction := "above"
	if flo > fhi {
		direction = "below"
	}

	iterations := 0
	switch {
	case flo == 0:
		hi = lo
	case fhi == 0:
		lo = hi
	}

	// Binary search on the sign of the objective
	for hi-lo > tolerance && iterations < maxIterations {
		select {
		case <-ctx.Done():
			return nil, &BreakEvenError{
				Operation: "solve",
				Message:   fmt.Sprintf("cancelled after %d iterations", iterations),
				Cause:     ctx.Err(),
			}
		default:
		}

		iterations++
		mid := lo + (hi-lo)/2
		fm := f(mid)

		if fm == 0 {
			lo, hi = mid, mid
			break
		}
		if (fm > 0) == (flo > 0) {
			lo, flo = mid, fm
		} else {
			hi = mid
		}
	}

	value := lo + (hi-lo)/2
	converged := hi-lo <= tolerance
	baseValue := field.Get(req.Base)

	result := &Result{
		Request:    req,
		Field:      field.Name,
		Unit:       field.Unit,
		Value:      value,
		BaseValue:  baseValue,
		Change:     value - baseValue,
		Direction:  direction,
		Residual:   f(value),
		Iterations: iterations,
		Converged:  converged,
		Report:     s.CalcEngine.Run(field.With(req.Base, value)),
		BaseReport: s.CalcEngine.Run(req.Base),
	}

	if converged {
		result.ConvergenceInfo = fmt.Sprintf("Bisection converged within %g after %d iterations", tolerance, iterations)
	} else {
		result.ConvergenceInfo = fmt.Sprintf("Max iterations (%d) reached", maxIterations)
	}

	return result, nil
}

// objective is zero where the goal is met exactly. Both forms stay finite
// when the saving is not positive, unlike payback itself.
func objective(req Request, field domain.Field) func(float64) float64 {
	return func(x float64) float64 {
		b := calculation.Evaluate(field.With(req.Base, x))
		saving := b.Saving(req.Tariff)
		if req.Goal == GoalPayback {
			return req.TargetYears*saving - b.NetCost
		}
		return saving
	}
}
