package compare

import (
	"encoding/csv"
	"strconv"
	"strings"
)

// CSVFormatter formats comparison results as CSV
type CSVFormatter struct{}

// Format generates CSV output for comparison results
func (cf *CSVFormatter) Format(compSet *ComparisonSet) (string, error) {
	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	// Write header
	header := []string{
		"Scenario",
		"Type",
		"Boiler Annual Cost",
		"Heat Pump Annual Cost (Smart)",
		"Annual Saving (Smart)",
		"Payback Years (Smart)",
		"Lifetime Savings",
		"Net Cost",
		"Recommendation",
		"Saving Diff from Base",
		"Lifetime Diff from Base",
		"Payback Diff from Base",
		"Recommendation Changed",
	}
	if err := writer.Write(header); err != nil {
		return "", err
	}

	// Write base scenario
	if compSet.BaseResult != nil {
		if err := writer.Write(cf.formatRow(compSet.BaseResult, "base")); err != nil {
			return "", err
		}
	}

	// Write alternative scenarios
	for _, alt := range compSet.AlternativeResults {
		if err := writer.Write(cf.formatRow(&alt, "alternative")); err != nil {
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}

	return sb.String(), nil
}

// formatRow formats a comparison result as a CSV row
func (cf *CSVFormatter) formatRow(result *ComparisonResult, scenarioType string) []string {
	row := []string{
		result.ScenarioName,
		scenarioType,
		FormatFigure(result.AnnualCostBoiler, 0),
		FormatFigure(result.AnnualCostSmart, 0),
		FormatFigure(result.AnnualSavingSmart, 0),
		FormatYears(result.PaybackYearsSmart),
		FormatFigure(result.LifetimeSavings, 0),
		FormatFigure(result.NetCost, 0),
		string(result.Recommendation),
	}

	// The base has nothing to be compared against.
	if scenarioType == "base" {
		return append(row, "", "", "", "")
	}

	return append(row,
		FormatFigure(result.SavingDiffFromBase, 0),
		FormatFigure(result.LifetimeDiffFromBase, 0),
		FormatFigure(result.PaybackDiffFromBase, 1),
		strconv.FormatBool(result.RecommendationChanged),
	)
}
