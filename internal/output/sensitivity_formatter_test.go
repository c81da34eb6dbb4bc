package output

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/rgehrsitz/hpcalc/internal/calculation"
	"github.com/rgehrsitz/hpcalc/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tariffSweep(t *testing.T) *domain.ParameterSensitivityAnalysis {
	t.Helper()
	analysis, err := calculation.NewSensitivityAnalyzer().AnalyzeSingleParameter(
		context.Background(), domain.DefaultConfig(), domain.HPTariffPriceParam)
	require.NoError(t, err)
	return analysis
}

func TestSensitivityConsoleFormatter_Single(t *testing.T) {
	out, err := SensitivityConsoleFormatter{}.FormatSensitivityAnalysis(tariffSweep(t))
	require.NoError(t, err)

	assert.Contains(t, out, "SENSITIVITY ANALYSIS: HP TARIFF PRICE")
	assert.Contains(t, out, "Range: 0.1 to 0.24 (8 steps)")
	assert.Contains(t, out, "0.16 ← BASE")
	assert.Contains(t, out, "⚠ Keep gas boiler for now")
	assert.Contains(t, out, "Recommendation flips at: 0.22")
	assert.Contains(t, out, "RECOMMENDATIONS:")
	assert.NotContains(t, out, "MOST SENSITIVE", "Ranking needs more than one parameter")
}

func TestSensitivityConsoleFormatter_Multi(t *testing.T) {
	analysis, err := calculation.NewSensitivityAnalyzer().AnalyzeMultipleParameters(
		context.Background(), domain.DefaultConfig(), domain.GetPriceParameters())
	require.NoError(t, err)

	out, err := SensitivityConsoleFormatter{}.FormatSensitivityAnalysis(analysis)
	require.NoError(t, err)

	assert.Contains(t, out, "SENSITIVITY ANALYSIS: GAS PRICE")
	assert.Contains(t, out, "SENSITIVITY ANALYSIS: ELEC PRICE")
	assert.Contains(t, out, "MOST SENSITIVE: ")
	assert.Contains(t, out, "  1. ")
}

func TestSensitivityConsoleFormatter_Matrix(t *testing.T) {
	cop := domain.COPParam
	cop.Steps = 3
	tariff := domain.HPTariffPriceParam
	tariff.Steps = 3

	matrix, err := calculation.NewSensitivityAnalyzer().AnalyzeParameterMatrix(
		context.Background(), domain.DefaultConfig(), cop, tariff)
	require.NoError(t, err)

	out, err := SensitivityConsoleFormatter{}.FormatSensitivityAnalysis(matrix)
	require.NoError(t, err)

	assert.Contains(t, out, "SENSITIVITY MATRIX ANALYSIS: LIFETIME SAVINGS")
	assert.Contains(t, out, "Rows:    cop (2.5 to 4.5)")
	assert.Contains(t, out, "Columns: hp_tariff_price (0.1 to 0.24)")
	assert.Contains(t, out, "of 9 points")
}

func TestSensitivityConsoleFormatter_Errors(t *testing.T) {
	_, err := SensitivityConsoleFormatter{}.FormatSensitivityAnalysis("nope")
	assert.EqualError(t, err, "unsupported analysis type: string")

	_, err = SensitivityConsoleFormatter{}.FormatSensitivityAnalysis(&domain.ParameterSensitivityAnalysis{})
	assert.Error(t, err)

	_, err = SensitivityConsoleFormatter{}.FormatSensitivityAnalysis(&domain.SensitivityMatrix{})
	assert.Error(t, err)
}

func TestSensitivityCSVFormatter(t *testing.T) {
	out, err := SensitivityCSVFormatter{}.FormatSensitivityAnalysis(tariffSweep(t))
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 9, "header plus eight steps")
	assert.Equal(t, "parameter_name,parameter_value,annual_saving_smart,annual_saving_standard,payback_years_smart,lifetime_savings,lifetime_change,recommendation", lines[0])
	assert.Equal(t, "hp_tariff_price,0.16,167,-124,26.9,-824,0,Switch with smart tariff", lines[4])
	assert.Equal(t, "hp_tariff_price,0.24,-107,-124,never,-6859,-6035,Keep gas boiler for now", lines[8])
}

func TestSensitivityJSONFormatter(t *testing.T) {
	out, err := SensitivityJSONFormatter{}.FormatSensitivityAnalysis(tariffSweep(t))
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, "single", decoded["analysisType"])

	_, err = SensitivityJSONFormatter{}.FormatSensitivityAnalysis(42)
	assert.Error(t, err)
}

func TestNewSensitivityFormatter(t *testing.T) {
	assert.Equal(t, "console", NewSensitivityFormatter("table").Name())
	assert.Equal(t, "csv", NewSensitivityFormatter("csv").Name())
	assert.Equal(t, "json", NewSensitivityFormatter("JSON").Name())
	assert.Equal(t, "console", NewSensitivityFormatter("html").Name())
}

func TestRankScores(t *testing.T) {
	got := SensitivityConsoleFormatter{}.rankScores(map[string]decimal.Decimal{
		"cop":       decimal.NewFromInt(500),
		"gas_price": decimal.NewFromInt(900),
		"elec":      decimal.NewFromInt(500),
	})

	assert.Equal(t, "  1. gas_price (900)\n  2. cop (500)\n  3. elec (500)", got)
}
