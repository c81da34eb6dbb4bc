package calculation

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/hpcalc/internal/domain"
)

// Logger is the logging surface the engine needs. *zap.SugaredLogger
// satisfies it.
type Logger interface {
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

// NopLogger discards everything.
type NopLogger struct{}

func (NopLogger) Debugf(string, ...interface{}) {}
func (NopLogger) Infof(string, ...interface{})  {}
func (NopLogger) Warnf(string, ...interface{})  {}
func (NopLogger) Errorf(string, ...interface{}) {}

// BaseScenarioName names the base result of a scenario run.
const BaseScenarioName = "Base"

// CalculationEngine runs comparisons for one or more scenarios
type CalculationEngine struct {
	Logger Logger
	Debug  bool // Log every intermediate figure
}

// NewCalculationEngine creates a new calculation engine
func NewCalculationEngine() *CalculationEngine {
	return &CalculationEngine{Logger: NopLogger{}}
}

// SetLogger replaces the engine logger. nil restores the no-op logger.
func (ce *CalculationEngine) SetLogger(l Logger) {
	if l == nil {
		ce.Logger = NopLogger{}
		return
	}
	ce.Logger = l
}

func (ce *CalculationEngine) logger() Logger {
	if ce.Logger == nil {
		return NopLogger{}
	}
	return ce.Logger
}

// Run evaluates a complete configuration and returns its report.
func (ce *CalculationEngine) Run(c domain.Config) domain.Report {
	b := Evaluate(c)
	if ce.Debug {
		ce.logBreakdown(b)
	}
	return b.Report()
}

// RunScenario applies a scenario to the base configuration and evaluates it.
func (ce *CalculationEngine) RunScenario(ctx context.Context, base domain.Config, scenario domain.Scenario) (domain.ScenarioResult, error) {
	if err := ctx.Err(); err != nil {
		return domain.ScenarioResult{}, fmt.Errorf("scenario %s: %w", scenario.Name, err)
	}

	effective := scenario.Overrides.Apply(base)
	ce.logger().Debugf("running scenario %q with %d override(s)", scenario.Name, len(scenario.Overrides.Values()))

	return domain.ScenarioResult{
		Name:        scenario.Name,
		Description: scenario.Description,
		Config:      effective,
		Report:      ce.Run(effective),
	}, nil
}

// RunScenarios evaluates the base configuration and then each scenario on
// top of it. Scenarios never see each other's overrides.
func (ce *CalculationEngine) RunScenarios(ctx context.Context, base domain.Config, scenarios []domain.Scenario) (*domain.ScenarioComparison, error) {
	baseResult, err := ce.RunScenario(ctx, base, domain.Scenario{Name: BaseScenarioName})
	if err != nil {
		return nil, err
	}

	comparison := &domain.ScenarioComparison{
		Base:      baseResult,
		Scenarios: make([]domain.ScenarioResult, 0, len(scenarios)),
	}
	for _, sc := range scenarios {
		result, err := ce.RunScenario(ctx, base, sc)
		if err != nil {
			return nil, err
		}
		comparison.Scenarios = append(comparison.Scenarios, result)
	}

	ce.logger().Infof("evaluated %d scenario(s) plus base", len(scenarios))
	return comparison, nil
}

func (ce *CalculationEngine) logBreakdown(b Breakdown) {
	l := ce.logger()
	l.Debugf("gas consumption %.3f kWh, boiler annual %.3f", b.GasConsumption, b.GasAnnual)
	l.Debugf("heat pump electricity %.3f kWh, solar offset %.3f, grid %.3f", b.HPElecNeeded, b.SolarOffset, b.HPGridElec)
	l.Debugf("heat pump annual standard %.3f, smart %.3f", b.HPAnnualStandard, b.HPAnnualSmart)
	l.Debugf("net cost %.3f, saving standard %.3f, smart %.3f", b.NetCost, b.SavingStandard, b.SavingSmart)
	l.Debugf("payback standard %.3f, smart %.3f, lifetime %.3f", b.PaybackStandard, b.PaybackSmart, b.LifetimeSmart)
}
