package compare

import (
	"fmt"
	"math"

	"github.com/rgehrsitz/hpcalc/internal/domain"
	"github.com/shopspring/decimal"
)

// ComparisonResult represents a single scenario comparison with calculated metrics
type ComparisonResult struct {
	ScenarioName string        `json:"scenarioName"`
	Description  string        `json:"description"`
	Config       domain.Config `json:"config"`
	Report       domain.Report `json:"report"`

	// Key Metrics
	AnnualCostBoiler  domain.Figure         `json:"annualCostBoiler"`
	AnnualCostSmart   domain.Figure         `json:"annualCostSmart"`
	AnnualSavingSmart domain.Figure         `json:"annualSavingSmart"`
	PaybackYearsSmart domain.Figure         `json:"paybackYearsSmart"` // null when it never pays back
	LifetimeSavings   domain.Figure         `json:"lifetimeSavings"`
	NetCost           domain.Figure         `json:"netCost"`
	Recommendation    domain.Recommendation `json:"recommendation"`

	// Comparison to Base
	SavingDiffFromBase    domain.Figure `json:"savingDiffFromBase"`
	LifetimeDiffFromBase  domain.Figure `json:"lifetimeDiffFromBase"`
	PaybackDiffFromBase   domain.Figure `json:"paybackDiffFromBase"` // null unless both paybacks are finite
	RecommendationChanged bool          `json:"recommendationChanged"`
}

// ComparisonSet represents a collection of scenario comparisons
type ComparisonSet struct {
	BaseScenarioName   string             `json:"baseScenarioName"`
	BaseResult         *ComparisonResult  `json:"baseResult"`
	AlternativeResults []ComparisonResult `json:"alternativeResults"`
	Recommendations    []string           `json:"recommendations"`
	ConfigPath         string             `json:"configPath,omitempty"`
}

// ToScenarioComparison converts a ComparisonSet to a domain.ScenarioComparison
// so the report formatters can render it.
func (cs *ComparisonSet) ToScenarioComparison() *domain.ScenarioComparison {
	sc := &domain.ScenarioComparison{
		Scenarios: make([]domain.ScenarioResult, 0, len(cs.AlternativeResults)),
	}

	if cs.BaseResult != nil {
		sc.Base = cs.BaseResult.scenarioResult()
	}
	for _, result := range cs.AlternativeResults {
		sc.Scenarios = append(sc.Scenarios, result.scenarioResult())
	}

	return sc
}

func (cr ComparisonResult) scenarioResult() domain.ScenarioResult {
	return domain.ScenarioResult{
		Name:        cr.ScenarioName,
		Description: cr.Description,
		Config:      cr.Config,
		Report:      cr.Report,
	}
}

// MetricsCalculator extracts key metrics from reports
type MetricsCalculator struct{}

// NewMetricsCalculator creates a new metrics calculator
func NewMetricsCalculator() *MetricsCalculator {
	return &MetricsCalculator{}
}

// CalculateMetrics computes all comparison metrics for a scenario result
func (mc *MetricsCalculator) CalculateMetrics(result domain.ScenarioResult) ComparisonResult {
	report := result.Report

	return ComparisonResult{
		ScenarioName:      result.Name,
		Description:       result.Description,
		Config:            result.Config,
		Report:            report,
		AnnualCostBoiler:  report.GasBoiler.AnnualCost,
		AnnualCostSmart:   report.HeatPump.AnnualCostSmartTariff,
		AnnualSavingSmart: report.Savings.AnnualSmartTariff,
		PaybackYearsSmart: report.Savings.PaybackYearsSmartTariff,
		LifetimeSavings:   report.Savings.LifetimeSavings,
		NetCost:           report.Costs.NetCost,
		Recommendation:    report.Recommendation,
	}
}

// CalculateComparison computes comparison metrics between a scenario and a base
func (mc *MetricsCalculator) CalculateComparison(scenario, base ComparisonResult) ComparisonResult {
	scenario.SavingDiffFromBase = scenario.AnnualSavingSmart - base.AnnualSavingSmart
	scenario.LifetimeDiffFromBase = scenario.LifetimeSavings - base.LifetimeSavings

	scenario.PaybackDiffFromBase = domain.Figure(math.NaN())
	if scenario.PaybackYearsSmart.IsFinite() && base.PaybackYearsSmart.IsFinite() {
		diff := decimal.NewFromFloat(scenario.PaybackYearsSmart.Float64()).
			Sub(decimal.NewFromFloat(base.PaybackYearsSmart.Float64()))
		scenario.PaybackDiffFromBase = domain.Figure(diff.InexactFloat64())
	}

	scenario.RecommendationChanged = scenario.Recommendation != base.Recommendation

	return scenario
}

// GenerateRecommendations creates recommendations based on comparison results
func GenerateRecommendations(compSet *ComparisonSet) []string {
	recommendations := []string{}

	if len(compSet.AlternativeResults) == 0 || compSet.BaseResult == nil {
		return recommendations
	}

	// Find best scenario by lifetime savings
	bestLifetime := compSet.BaseResult
	for i := range compSet.AlternativeResults {
		alt := &compSet.AlternativeResults[i]
		if alt.LifetimeSavings.IsFinite() && alt.LifetimeSavings > bestLifetime.LifetimeSavings {
			bestLifetime = alt
		}
	}

	if bestLifetime != compSet.BaseResult {
		diff := bestLifetime.LifetimeSavings - compSet.BaseResult.LifetimeSavings
		recommendations = append(recommendations,
			"Best Lifetime Savings: "+bestLifetime.ScenarioName+" adds "+FormatFigure(diff, 0)+
				" over the heat pump's life")
	}

	// Find fastest payback
	fastest := compSet.BaseResult
	for i := range compSet.AlternativeResults {
		alt := &compSet.AlternativeResults[i]
		if alt.PaybackYearsSmart.IsFinite() && alt.PaybackYearsSmart >= 0 &&
			(!fastest.PaybackYearsSmart.IsFinite() || alt.PaybackYearsSmart < fastest.PaybackYearsSmart) {
			fastest = alt
		}
	}

	if fastest != compSet.BaseResult {
		recommendations = append(recommendations,
			fmt.Sprintf("Fastest Payback: %s pays back in %s years (base: %s)",
				fastest.ScenarioName,
				FormatYears(fastest.PaybackYearsSmart),
				FormatYears(compSet.BaseResult.PaybackYearsSmart)))
	}

	// Scenarios that change the verdict
	for _, alt := range compSet.AlternativeResults {
		if alt.RecommendationChanged {
			recommendations = append(recommendations,
				fmt.Sprintf("Recommendation Change: %s gives %q", alt.ScenarioName, string(alt.Recommendation)))
		}
	}

	return recommendations
}

// FormatFigure renders a figure with fixed decimal places, "n/a" when it is
// not finite.
func FormatFigure(f domain.Figure, places int32) string {
	if !f.IsFinite() {
		return "n/a"
	}
	return decimal.NewFromFloat(f.Float64()).StringFixed(places)
}

// FormatYears renders a payback period, "never" when it does not happen.
func FormatYears(f domain.Figure) string {
	if !f.IsFinite() {
		return "never"
	}
	return decimal.NewFromFloat(f.Float64()).StringFixed(1)
}
