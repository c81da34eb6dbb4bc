package compare

import (
	"context"
	"math"
	"testing"

	"github.com/rgehrsitz/hpcalc/internal/calculation"
	"github.com/rgehrsitz/hpcalc/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsCalculator_CalculateMetrics(t *testing.T) {
	calc := NewMetricsCalculator()
	cfg := domain.DefaultConfig()

	result := calc.CalculateMetrics(domain.ScenarioResult{
		Name:        "Base",
		Description: "defaults",
		Config:      cfg,
		Report:      calculation.CalculateConfig(cfg),
	})

	assert.Equal(t, "Base", result.ScenarioName)
	assert.Equal(t, "defaults", result.Description)
	assert.Equal(t, domain.Figure(906), result.AnnualCostBoiler)
	assert.Equal(t, domain.Figure(739), result.AnnualCostSmart)
	assert.Equal(t, domain.Figure(167), result.AnnualSavingSmart)
	assert.InDelta(t, 26.9, result.PaybackYearsSmart.Float64(), 1e-9)
	assert.Equal(t, domain.Figure(-824), result.LifetimeSavings)
	assert.Equal(t, domain.Figure(4500), result.NetCost)
	assert.Equal(t, domain.RecommendSwitch, result.Recommendation)
}

func TestMetricsCalculator_CalculateComparison(t *testing.T) {
	calc := NewMetricsCalculator()

	base := ComparisonResult{AnnualSavingSmart: 167, LifetimeSavings: -824, PaybackYearsSmart: 26.9, Recommendation: domain.RecommendSwitch}
	alt := ComparisonResult{AnnualSavingSmart: 340, LifetimeSavings: 2977, PaybackYearsSmart: 13.2, Recommendation: domain.RecommendSwitch}

	result := calc.CalculateComparison(alt, base)

	assert.Equal(t, domain.Figure(173), result.SavingDiffFromBase)
	assert.Equal(t, domain.Figure(3801), result.LifetimeDiffFromBase)
	assert.InDelta(t, -13.7, result.PaybackDiffFromBase.Float64(), 1e-9)
	assert.False(t, result.RecommendationChanged)

	never := ComparisonResult{PaybackYearsSmart: domain.Figure(math.Inf(1)), Recommendation: domain.RecommendKeep}
	result = calc.CalculateComparison(never, base)

	assert.False(t, result.PaybackDiffFromBase.IsFinite())
	assert.True(t, result.RecommendationChanged)
}

func TestGenerateRecommendations(t *testing.T) {
	recs := GenerateRecommendations(testComparisonSet())

	require.Len(t, recs, 3)
	assert.Equal(t, "Best Lifetime Savings: solar_3kw adds 3801 over the heat pump's life", recs[0])
	assert.Equal(t, "Fastest Payback: solar_3kw pays back in 13.2 years (base: 26.9)", recs[1])
	assert.Equal(t, `Recommendation Change: pricey_tariff gives "Keep gas boiler for now"`, recs[2])
}

func TestGenerateRecommendations_BaseIsBest(t *testing.T) {
	compSet := testComparisonSet()
	compSet.AlternativeResults = compSet.AlternativeResults[1:]

	recs := GenerateRecommendations(compSet)

	require.Len(t, recs, 1)
	assert.Contains(t, recs[0], "Recommendation Change")

	compSet.AlternativeResults = nil
	assert.Empty(t, GenerateRecommendations(compSet))
}

func TestComparisonSet_ToScenarioComparison(t *testing.T) {
	engine := NewCompareEngine(nil)

	compSet, err := engine.Compare(context.Background(), domain.DefaultConfig(), CompareOptions{Templates: []string{"no_grant"}})
	require.NoError(t, err)

	sc := compSet.ToScenarioComparison()

	assert.Equal(t, calculation.BaseScenarioName, sc.Base.Name)
	require.Len(t, sc.Scenarios, 1)
	assert.Equal(t, "no_grant", sc.Scenarios[0].Name)
	assert.Equal(t, 0.0, sc.Scenarios[0].Config.BUSGrant)
	assert.Equal(t, domain.Figure(12000), sc.Scenarios[0].Report.Costs.NetCost)
}

func TestComparisonSet_ToScenarioComparison_NilBaseResult(t *testing.T) {
	compSet := &ComparisonSet{
		AlternativeResults: []ComparisonResult{{ScenarioName: "alt"}},
	}

	sc := compSet.ToScenarioComparison()

	assert.Empty(t, sc.Base.Name)
	require.Len(t, sc.Scenarios, 1)
	assert.Equal(t, "alt", sc.Scenarios[0].Name)
}

func TestFormatYears(t *testing.T) {
	assert.Equal(t, "26.9", FormatYears(26.9))
	assert.Equal(t, "-18.0", FormatYears(-18))
	assert.Equal(t, "never", FormatYears(domain.Figure(math.Inf(1))))
	assert.Equal(t, "n/a", FormatFigure(domain.Figure(math.NaN()), 0))
	assert.Equal(t, "4500", FormatFigure(4500, 0))
}
