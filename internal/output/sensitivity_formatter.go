package output

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/rgehrsitz/hpcalc/internal/domain"
	"github.com/shopspring/decimal"
)

// SensitivityFormatter defines a formatter for sensitivity analysis
type SensitivityFormatter interface {
	FormatSensitivityAnalysis(analysis interface{}) (string, error)
	Name() string
}

// SensitivityConsoleFormatter formats sensitivity analysis output for console
type SensitivityConsoleFormatter struct{}

func (scf SensitivityConsoleFormatter) Name() string { return "console" }

func (scf SensitivityConsoleFormatter) FormatSensitivityAnalysis(analysis interface{}) (string, error) {
	var buf bytes.Buffer

	switch a := analysis.(type) {
	case *domain.ParameterSensitivityAnalysis:
		return scf.formatAnalysis(&buf, a)
	case *domain.SensitivityMatrix:
		return scf.formatMatrixAnalysis(&buf, a)
	default:
		return "", fmt.Errorf("unsupported analysis type: %T", analysis)
	}
}

func (scf SensitivityConsoleFormatter) formatAnalysis(buf *bytes.Buffer, analysis *domain.ParameterSensitivityAnalysis) (string, error) {
	if len(analysis.Parameters) == 0 || len(analysis.Results) == 0 {
		return "", fmt.Errorf("no parameters or results in analysis")
	}

	base := analysis.BaseReport.Savings
	fmt.Fprintf(buf, "Base Case: saving %s/year (smart), payback %s years, lifetime %s, %s\n",
		FormatSigned(base.AnnualSmartTariff), FormatYears(base.PaybackYearsSmartTariff),
		FormatSigned(base.LifetimeSavings), analysis.BaseReport.Recommendation)
	fmt.Fprintln(buf)

	for _, param := range analysis.Parameters {
		fmt.Fprintf(buf, "SENSITIVITY ANALYSIS: %s\n", strings.ToUpper(strings.ReplaceAll(param.Name, "_", " ")))
		fmt.Fprintf(buf, "=================================================================\n")
		fmt.Fprintf(buf, "Base Value: %s %s\n", param.BaseValue.String(), param.Unit)
		fmt.Fprintf(buf, "Range: %s to %s (%d steps)\n", param.MinValue.String(), param.MaxValue.String(), param.Steps)
		fmt.Fprintf(buf, "Description: %s\n", param.Description)
		fmt.Fprintln(buf)

		fmt.Fprintf(buf, "%-18s %-12s %-12s %-10s %-14s %-10s\n",
			param.Name, "Saving Smart", "Saving Std", "Payback", "Lifetime", "Change")
		fmt.Fprintln(buf, strings.Repeat("-", 80))

		for _, result := range parameterResults(analysis.Results, param.Name) {
			paramValue := result.ParameterValues[param.Name]

			paramValueStr := paramValue.String()
			if paramValue.Equal(param.BaseValue) {
				paramValueStr += " ← BASE"
			}
			flip := ""
			if result.KeyMetrics.RecommendationFlip {
				flip = "  ⚠ " + string(result.KeyMetrics.Recommendation)
			}

			fmt.Fprintf(buf, "%-18s %-12s %-12s %-10s %-14s %-10s%s\n",
				paramValueStr,
				FormatSigned(result.KeyMetrics.AnnualSavingSmart),
				FormatSigned(result.KeyMetrics.AnnualSavingStd),
				FormatYears(result.KeyMetrics.PaybackYearsSmart),
				FormatSigned(result.KeyMetrics.LifetimeSavings),
				FormatSigned(result.KeyMetrics.LifetimeChange),
				flip)
		}
		fmt.Fprintln(buf)

		if score, ok := analysis.Summary.SensitivityScores[param.Name]; ok {
			fmt.Fprintf(buf, "Lifetime savings swing: %s\n", score.StringFixed(0))
		}
		if threshold, ok := analysis.Summary.SwitchThresholds[param.Name]; ok {
			fmt.Fprintf(buf, "Recommendation flips at: %s\n", threshold.String())
		}
		fmt.Fprintln(buf)
	}

	if analysis.Summary.MostSensitiveParameter != "" && len(analysis.Parameters) > 1 {
		fmt.Fprintf(buf, "MOST SENSITIVE: %s\n", analysis.Summary.MostSensitiveParameter)
		fmt.Fprintln(buf, scf.rankScores(analysis.Summary.SensitivityScores))
		fmt.Fprintln(buf)
	}

	fmt.Fprintln(buf, "RECOMMENDATIONS:")
	for _, rec := range analysis.Summary.Recommendations {
		fmt.Fprintf(buf, "  • %s\n", rec)
	}

	return buf.String(), nil
}

func (scf SensitivityConsoleFormatter) rankScores(scores map[string]decimal.Decimal) string {
	names := make([]string, 0, len(scores))
	for name := range scores {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if !scores[names[i]].Equal(scores[names[j]]) {
			return scores[names[i]].GreaterThan(scores[names[j]])
		}
		return names[i] < names[j]
	})

	parts := make([]string, 0, len(names))
	for i, name := range names {
		parts = append(parts, fmt.Sprintf("  %d. %s (%s)", i+1, name, scores[name].StringFixed(0)))
	}
	return strings.Join(parts, "\n")
}

func (scf SensitivityConsoleFormatter) formatMatrixAnalysis(buf *bytes.Buffer, matrix *domain.SensitivityMatrix) (string, error) {
	if len(matrix.MatrixResults) == 0 || len(matrix.MatrixResults[0]) == 0 {
		return "", fmt.Errorf("no results in matrix")
	}

	fmt.Fprintf(buf, "SENSITIVITY MATRIX ANALYSIS: LIFETIME SAVINGS\n")
	fmt.Fprintf(buf, "=================================================================\n")
	fmt.Fprintf(buf, "Rows:    %s (%s to %s)\n",
		matrix.Parameter1.Name, matrix.Parameter1.MinValue.String(), matrix.Parameter1.MaxValue.String())
	fmt.Fprintf(buf, "Columns: %s (%s to %s)\n",
		matrix.Parameter2.Name, matrix.Parameter2.MinValue.String(), matrix.Parameter2.MaxValue.String())
	fmt.Fprintln(buf)

	fmt.Fprintf(buf, "%-12s", "")
	for j := range matrix.MatrixResults[0] {
		param2Value := matrix.MatrixResults[0][j].ParameterValues[matrix.Parameter2.Name]
		fmt.Fprintf(buf, " %-10s", param2Value.String())
	}
	fmt.Fprintln(buf)

	fmt.Fprintln(buf, strings.Repeat("-", 12+11*len(matrix.MatrixResults[0])))

	for i := range matrix.MatrixResults {
		param1Value := matrix.MatrixResults[i][0].ParameterValues[matrix.Parameter1.Name]
		fmt.Fprintf(buf, "%-12s", param1Value.String())

		for j := range matrix.MatrixResults[i] {
			result := matrix.MatrixResults[i][j]
			cell := FormatSigned(result.KeyMetrics.LifetimeSavings)
			if !result.KeyMetrics.Recommendation.IsSwitch() {
				cell += "*"
			}
			fmt.Fprintf(buf, " %-10s", cell)
		}
		fmt.Fprintln(buf)
	}

	fmt.Fprintln(buf)
	total := len(matrix.MatrixResults) * len(matrix.MatrixResults[0])
	fmt.Fprintf(buf, "Switch recommended at %d of %d points (* marks keep the boiler)\n", matrix.SwitchCount, total)

	return buf.String(), nil
}

// SensitivityCSVFormatter formats sensitivity analysis output as CSV
type SensitivityCSVFormatter struct{}

func (scf SensitivityCSVFormatter) Name() string { return "csv" }

func (scf SensitivityCSVFormatter) FormatSensitivityAnalysis(analysis interface{}) (string, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	switch a := analysis.(type) {
	case *domain.ParameterSensitivityAnalysis:
		if len(a.Parameters) == 0 || len(a.Results) == 0 {
			return "", fmt.Errorf("no parameters or results in analysis")
		}
		_ = w.Write([]string{"parameter_name", "parameter_value", "annual_saving_smart", "annual_saving_standard",
			"payback_years_smart", "lifetime_savings", "lifetime_change", "recommendation"})
		for _, param := range a.Parameters {
			for _, result := range parameterResults(a.Results, param.Name) {
				_ = w.Write(append([]string{param.Name, result.ParameterValues[param.Name].String()}, metricsRow(result.KeyMetrics)...))
			}
		}
	case *domain.SensitivityMatrix:
		_ = w.Write([]string{"parameter_1_name", "parameter_1_value", "parameter_2_name", "parameter_2_value",
			"annual_saving_smart", "annual_saving_standard", "payback_years_smart", "lifetime_savings",
			"lifetime_change", "recommendation"})
		for i := range a.MatrixResults {
			for j := range a.MatrixResults[i] {
				result := a.MatrixResults[i][j]
				row := []string{
					a.Parameter1.Name, result.ParameterValues[a.Parameter1.Name].String(),
					a.Parameter2.Name, result.ParameterValues[a.Parameter2.Name].String(),
				}
				_ = w.Write(append(row, metricsRow(result.KeyMetrics)...))
			}
		}
	default:
		return "", fmt.Errorf("unsupported analysis type: %T", analysis)
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func metricsRow(m domain.SensitivityMetrics) []string {
	return []string{
		FormatAmount(m.AnnualSavingSmart),
		FormatAmount(m.AnnualSavingStd),
		FormatYears(m.PaybackYearsSmart),
		FormatAmount(m.LifetimeSavings),
		FormatAmount(m.LifetimeChange),
		string(m.Recommendation),
	}
}

// SensitivityJSONFormatter formats sensitivity analysis output as JSON
type SensitivityJSONFormatter struct{}

func (sjf SensitivityJSONFormatter) Name() string { return "json" }

func (sjf SensitivityJSONFormatter) FormatSensitivityAnalysis(analysis interface{}) (string, error) {
	switch analysis.(type) {
	case *domain.ParameterSensitivityAnalysis, *domain.SensitivityMatrix:
	default:
		return "", fmt.Errorf("unsupported analysis type: %T", analysis)
	}
	data, err := json.MarshalIndent(analysis, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// NewSensitivityFormatter creates a sensitivity formatter based on the format name
func NewSensitivityFormatter(format string) SensitivityFormatter {
	switch NormalizeFormatName(format) {
	case "console", "verbose":
		return SensitivityConsoleFormatter{}
	case "csv":
		return SensitivityCSVFormatter{}
	case "json":
		return SensitivityJSONFormatter{}
	default:
		return SensitivityConsoleFormatter{} // Default to console
	}
}

// parameterResults returns the single-parameter results for one parameter.
func parameterResults(results []domain.SensitivityResult, name string) []domain.SensitivityResult {
	var out []domain.SensitivityResult
	for _, r := range results {
		if _, ok := r.ParameterValues[name]; ok && len(r.ParameterValues) == 1 {
			out = append(out, r)
		}
	}
	return out
}
