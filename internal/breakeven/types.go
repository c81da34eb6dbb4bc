package breakeven

import (
	"fmt"
	"math"

	"github.com/rgehrsitz/hpcalc/internal/calculation"
	"github.com/rgehrsitz/hpcalc/internal/domain"
)

// Goal defines what outcome the solver searches for
type Goal string

const (
	GoalBreakEven Goal = "break_even" // Annual saving on the tariff is zero
	GoalPayback   Goal = "payback"    // Payback on the tariff equals TargetYears
)

// ParseGoal accepts a goal name as typed on the command line.
func ParseGoal(s string) (Goal, bool) {
	switch s {
	case "break_even", "break-even", "breakeven":
		return GoalBreakEven, true
	case "payback":
		return GoalPayback, true
	}
	return "", false
}

// Range bounds the search for one field.
type Range struct {
	Min float64 `json:"min" yaml:"min"`
	Max float64 `json:"max" yaml:"max"`
}

// defaultRanges are the search bounds used when a request gives none.
// Each spans every value a real household might plausibly enter.
var defaultRanges = map[string]Range{
	"gas_usage":          {Min: 1000, Max: 50000},
	"gas_price":          {Min: 0.01, Max: 0.50},
	"elec_price":         {Min: 0.01, Max: 1.00},
	"hp_tariff_price":    {Min: 0.01, Max: 1.00},
	"gas_standing":       {Min: 0, Max: 1000},
	"elec_standing":      {Min: 0, Max: 1000},
	"boiler_efficiency":  {Min: 0.3, Max: 1.2},
	"cop":                {Min: 1, Max: 8},
	"install_cost":       {Min: 0, Max: 50000},
	"bus_grant":          {Min: 0, Max: 20000},
	"solar_generation":   {Min: 0, Max: 20000},
	"heat_pump_lifespan": {Min: 1, Max: 50},
}

// DefaultRange returns the default search bounds for a field.
func DefaultRange(field string) (Range, bool) {
	f, ok := domain.LookupField(field)
	if !ok {
		return Range{}, false
	}
	r, ok := defaultRanges[f.Name]
	return r, ok
}

// Request defines the parameters for one solver run
type Request struct {
	Base        domain.Config      `json:"-" yaml:"-"`
	Field       string             `json:"field" yaml:"field"`
	Range       *Range             `json:"range,omitempty" yaml:"range,omitempty"` // nil uses DefaultRange
	Goal        Goal               `json:"goal" yaml:"goal"`
	Tariff      calculation.Tariff `json:"tariff" yaml:"tariff"`
	TargetYears float64            `json:"targetYears,omitempty" yaml:"target_years,omitempty"` // payback goal only
}

// Result contains the outcome of a solver run
type Result struct {
	Request         Request `json:"request"`
	Field           string  `json:"field"`
	Unit            string  `json:"unit"`
	Value           float64 `json:"value"`
	BaseValue       float64 `json:"baseValue"`
	Change          float64 `json:"change"`
	Direction       string  `json:"direction"` // "above" or "below": which side of Value improves the outcome
	Residual        float64 `json:"residual"`
	Iterations      int     `json:"iterations"`
	Converged       bool    `json:"converged"`
	ConvergenceInfo string  `json:"convergenceInfo"`

	Report     domain.Report `json:"report"`     // at Value
	BaseReport domain.Report `json:"baseReport"` // at BaseValue
}

// Summary renders the result as one sentence.
func (r *Result) Summary() string {
	switch r.Request.Goal {
	case GoalPayback:
		return fmt.Sprintf("Payback on the %s tariff reaches %g years when %s is %s %s",
			r.Request.Tariff, r.Request.TargetYears, r.Field, r.Direction, formatValue(r.Value))
	default:
		return fmt.Sprintf("The heat pump saves money on the %s tariff when %s is %s %s",
			r.Request.Tariff, r.Field, r.Direction, formatValue(r.Value))
	}
}

// MultiFieldResult contains results when solving the same goal for several fields
type MultiFieldResult struct {
	Goal            Goal               `json:"goal"`
	Tariff          calculation.Tariff `json:"tariff"`
	Results         []Result           `json:"results"`
	Unsolved        map[string]string  `json:"unsolved,omitempty"` // field -> reason
	Recommendations []string           `json:"recommendations"`
}

// SolverOptions configures the solver algorithm
type SolverOptions struct {
	Tolerance     float64 // Width of the final bracket on the solved field
	MaxIterations int     // Maximum bisection steps
}

// DefaultSolverOptions returns default solver configuration
func DefaultSolverOptions() SolverOptions {
	return SolverOptions{
		Tolerance:     1e-6,
		MaxIterations: 200,
	}
}

// Validate checks if the request is internally consistent
func (r *Request) Validate() error {
	if _, ok := domain.LookupField(r.Field); !ok {
		return &BreakEvenError{
			Operation: "validate_request",
			Message:   fmt.Sprintf("cannot solve for %q", r.Field),
			Cause:     domain.ErrUnknownField,
		}
	}

	switch r.Goal {
	case GoalBreakEven:
	case GoalPayback:
		if !(r.TargetYears > 0) || math.IsInf(r.TargetYears, 0) {
			return &BreakEvenError{
				Operation: "validate_request",
				Message:   fmt.Sprintf("payback goal needs a positive target, got %g years", r.TargetYears),
			}
		}
	default:
		return &BreakEvenError{
			Operation: "validate_request",
			Message:   fmt.Sprintf("unsupported goal: %s", r.Goal),
		}
	}

	if r.Tariff != calculation.TariffStandard && r.Tariff != calculation.TariffSmart {
		return &BreakEvenError{
			Operation: "validate_request",
			Message:   fmt.Sprintf("unsupported tariff: %s", r.Tariff),
		}
	}

	if r.Range != nil {
		if math.IsNaN(r.Range.Min) || math.IsNaN(r.Range.Max) || math.IsInf(r.Range.Min, 0) || math.IsInf(r.Range.Max, 0) {
			return &BreakEvenError{
				Operation: "validate_request",
				Message:   "range bounds must be finite",
			}
		}
		if r.Range.Min >= r.Range.Max {
			return &BreakEvenError{
				Operation: "validate_request",
				Message:   fmt.Sprintf("min %g must be below max %g", r.Range.Min, r.Range.Max),
			}
		}
	}

	return nil
}

// BreakEvenError represents errors from break-even solver
type BreakEvenError struct {
	Operation string
	Message   string
	Cause     error
}

func (e *BreakEvenError) Error() string {
	if e.Cause != nil {
		return e.Operation + ": " + e.Message + ": " + e.Cause.Error()
	}
	return e.Operation + ": " + e.Message
}

func (e *BreakEvenError) Unwrap() error {
	return e.Cause
}
