package calculation

import (
	"context"
	"fmt"
	"math"

	"github.com/rgehrsitz/hpcalc/internal/domain"
	"github.com/shopspring/decimal"
)

// SensitivityAnalyzer performs parameter sweep analysis
type SensitivityAnalyzer struct {
	calculationEngine *CalculationEngine
}

// NewSensitivityAnalyzer creates a new sensitivity analyzer
func NewSensitivityAnalyzer() *SensitivityAnalyzer {
	return NewSensitivityAnalyzerWithEngine(NewCalculationEngine())
}

// NewSensitivityAnalyzerWithEngine creates an analyzer that evaluates through ce
func NewSensitivityAnalyzerWithEngine(ce *CalculationEngine) *SensitivityAnalyzer {
	if ce == nil {
		ce = NewCalculationEngine()
	}
	return &SensitivityAnalyzer{calculationEngine: ce}
}

// AnalyzeSingleParameter sweeps one field across its range, holding every
// other field at its base value.
func (sa *SensitivityAnalyzer) AnalyzeSingleParameter(
	ctx context.Context,
	base domain.Config,
	parameter domain.SensitivityParameter,
) (*domain.ParameterSensitivityAnalysis, error) {

	field, ok := domain.LookupField(parameter.Name)
	if !ok {
		return nil, fmt.Errorf("sensitivity parameter: %w: %s", domain.ErrUnknownField, parameter.Name)
	}
	parameter = withBaseValue(parameter, field, base)

	baseReport := sa.calculationEngine.Run(base)
	parameterValues := sa.generateParameterValues(parameter)
	results := make([]domain.SensitivityResult, 0, len(parameterValues))

	for _, value := range parameterValues {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("sensitivity analysis of %s: %w", parameter.Name, err)
		}

		modified := field.With(base, value.InexactFloat64())
		report := sa.calculationEngine.Run(modified)

		results = append(results, domain.SensitivityResult{
			ParameterValues: map[string]decimal.Decimal{parameter.Name: value},
			KeyMetrics:      sa.calculateSensitivityMetrics(report, baseReport),
		})
	}

	analysis := &domain.ParameterSensitivityAnalysis{
		Parameters:   []domain.SensitivityParameter{parameter},
		BaseReport:   baseReport,
		Results:      results,
		Summary:      sa.calculateSensitivitySummary(results, []domain.SensitivityParameter{parameter}),
		AnalysisType: "single",
	}

	return analysis, nil
}

// AnalyzeMultipleParameters performs a sequence of single-parameter sweeps
// and ranks the parameters by how far they move lifetime savings.
func (sa *SensitivityAnalyzer) AnalyzeMultipleParameters(
	ctx context.Context,
	base domain.Config,
	parameters []domain.SensitivityParameter,
) (*domain.ParameterSensitivityAnalysis, error) {

	if len(parameters) == 0 {
		return nil, fmt.Errorf("no sensitivity parameters given")
	}

	allResults := make([]domain.SensitivityResult, 0)
	allParameters := make([]domain.SensitivityParameter, 0, len(parameters))

	for _, param := range parameters {
		analysis, err := sa.AnalyzeSingleParameter(ctx, base, param)
		if err != nil {
			return nil, fmt.Errorf("failed to analyze parameter %s: %w", param.Name, err)
		}

		allResults = append(allResults, analysis.Results...)
		allParameters = append(allParameters, analysis.Parameters...)
	}

	analysis := &domain.ParameterSensitivityAnalysis{
		Parameters:   allParameters,
		BaseReport:   sa.calculationEngine.Run(base),
		Results:      allResults,
		Summary:      sa.calculateSensitivitySummary(allResults, allParameters),
		AnalysisType: "multi",
	}

	return analysis, nil
}

// AnalyzeParameterMatrix performs a 2D parameter matrix analysis
func (sa *SensitivityAnalyzer) AnalyzeParameterMatrix(
	ctx context.Context,
	base domain.Config,
	param1, param2 domain.SensitivityParameter,
) (*domain.SensitivityMatrix, error) {

	field1, ok := domain.LookupField(param1.Name)
	if !ok {
		return nil, fmt.Errorf("sensitivity parameter: %w: %s", domain.ErrUnknownField, param1.Name)
	}
	field2, ok := domain.LookupField(param2.Name)
	if !ok {
		return nil, fmt.Errorf("sensitivity parameter: %w: %s", domain.ErrUnknownField, param2.Name)
	}
	if field1.Name == field2.Name {
		return nil, fmt.Errorf("matrix analysis needs two different parameters, got %s twice", field1.Name)
	}
	param1 = withBaseValue(param1, field1, base)
	param2 = withBaseValue(param2, field2, base)

	baseReport := sa.calculationEngine.Run(base)
	values1 := sa.generateParameterValues(param1)
	values2 := sa.generateParameterValues(param2)

	matrix := &domain.SensitivityMatrix{
		Parameter1:    param1,
		Parameter2:    param2,
		BaseReport:    baseReport,
		MatrixResults: make([][]domain.SensitivityResult, len(values1)),
	}

	for i, value1 := range values1 {
		matrix.MatrixResults[i] = make([]domain.SensitivityResult, len(values2))

		for j, value2 := range values2 {
			if err := ctx.Err(); err != nil {
				return nil, fmt.Errorf("matrix analysis: %w", err)
			}

			modified := field1.With(base, value1.InexactFloat64())
			modified = field2.With(modified, value2.InexactFloat64())
			report := sa.calculationEngine.Run(modified)

			metrics := sa.calculateSensitivityMetrics(report, baseReport)
			if metrics.Recommendation.IsSwitch() {
				matrix.SwitchCount++
			}

			matrix.MatrixResults[i][j] = domain.SensitivityResult{
				ParameterValues: map[string]decimal.Decimal{
					param1.Name: value1,
					param2.Name: value2,
				},
				KeyMetrics: metrics,
			}
		}
	}

	return matrix, nil
}

// generateParameterValues generates evenly spaced values for a parameter sweep
func (sa *SensitivityAnalyzer) generateParameterValues(param domain.SensitivityParameter) []decimal.Decimal {
	if param.Steps <= 1 {
		return []decimal.Decimal{param.BaseValue}
	}

	values := make([]decimal.Decimal, 0, param.Steps)
	stepSize := param.MaxValue.Sub(param.MinValue).Div(decimal.NewFromInt(int64(param.Steps - 1)))

	for i := 0; i < param.Steps; i++ {
		values = append(values, param.MinValue.Add(stepSize.Mul(decimal.NewFromInt(int64(i)))))
	}
	// Division may leave the last step a hair short of MaxValue.
	values[len(values)-1] = param.MaxValue

	return values
}

func (sa *SensitivityAnalyzer) calculateSensitivityMetrics(report, baseReport domain.Report) domain.SensitivityMetrics {
	return domain.SensitivityMetrics{
		AnnualSavingSmart:  report.Savings.AnnualSmartTariff,
		AnnualSavingStd:    report.Savings.AnnualStandard,
		PaybackYearsSmart:  report.Savings.PaybackYearsSmartTariff,
		LifetimeSavings:    report.Savings.LifetimeSavings,
		LifetimeChange:     report.Savings.LifetimeSavings - baseReport.Savings.LifetimeSavings,
		Recommendation:     report.Recommendation,
		RecommendationFlip: report.Recommendation != baseReport.Recommendation,
	}
}

// calculateSensitivitySummary scores each parameter by the spread of lifetime
// savings across its sweep and records where the recommendation changes.
func (sa *SensitivityAnalyzer) calculateSensitivitySummary(results []domain.SensitivityResult, parameters []domain.SensitivityParameter) domain.SensitivitySummary {
	summary := domain.SensitivitySummary{
		SensitivityScores: make(map[string]decimal.Decimal),
		SwitchThresholds:  make(map[string]decimal.Decimal),
		Recommendations:   []string{},
	}

	maxScore := decimal.NewFromInt(-1)

	for _, param := range parameters {
		var (
			paramResults []domain.SensitivityResult
			minLifetime  = math.Inf(1)
			maxLifetime  = math.Inf(-1)
		)
		for _, r := range results {
			if _, ok := r.ParameterValues[param.Name]; !ok || len(r.ParameterValues) != 1 {
				continue
			}
			paramResults = append(paramResults, r)
			lifetime := r.KeyMetrics.LifetimeSavings.Float64()
			if r.KeyMetrics.LifetimeSavings.IsFinite() {
				minLifetime = math.Min(minLifetime, lifetime)
				maxLifetime = math.Max(maxLifetime, lifetime)
			}
		}
		if len(paramResults) == 0 {
			continue
		}

		score := decimal.Zero
		if maxLifetime >= minLifetime {
			score = decimal.NewFromFloat(maxLifetime - minLifetime)
		}
		summary.SensitivityScores[param.Name] = score
		if score.GreaterThan(maxScore) {
			maxScore = score
			summary.MostSensitiveParameter = param.Name
		}

		summary.Recommendations = append(summary.Recommendations, sweepRecommendation(param, paramResults, summary.SwitchThresholds))
	}

	if len(summary.SwitchThresholds) == 0 {
		summary.SwitchThresholds = nil
	}
	if summary.MostSensitiveParameter != "" && len(parameters) > 1 {
		summary.Recommendations = append(summary.Recommendations,
			fmt.Sprintf("Lifetime savings are most sensitive to %s", summary.MostSensitiveParameter))
	}

	return summary
}

func sweepRecommendation(param domain.SensitivityParameter, results []domain.SensitivityResult, thresholds map[string]decimal.Decimal) string {
	first := results[0].KeyMetrics.Recommendation
	for _, r := range results[1:] {
		if r.KeyMetrics.Recommendation != first {
			value := r.ParameterValues[param.Name]
			thresholds[param.Name] = value
			return fmt.Sprintf("Recommendation changes to %q at %s = %s", r.KeyMetrics.Recommendation, param.Name, value.String())
		}
	}
	if first.IsSwitch() {
		return fmt.Sprintf("Switching pays across the whole %s range", param.Name)
	}
	return fmt.Sprintf("Keeping the boiler is cheaper across the whole %s range", param.Name)
}

// withBaseValue pins BaseValue to the base config so results are measured
// from what is actually being evaluated.
func withBaseValue(param domain.SensitivityParameter, field domain.Field, base domain.Config) domain.SensitivityParameter {
	param.Name = field.Name
	if v := field.Get(base); !math.IsInf(v, 0) && !math.IsNaN(v) {
		param.BaseValue = decimal.NewFromFloat(v)
	}
	if param.Unit == "" {
		param.Unit = field.Unit
	}
	if param.Description == "" {
		param.Description = field.Description
	}
	return param
}
