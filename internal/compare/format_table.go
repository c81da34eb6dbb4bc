package compare

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/hpcalc/internal/domain"
	"github.com/shopspring/decimal"
)

// TableFormatter formats comparison results as a console table
type TableFormatter struct{}

// Format generates a formatted table comparing scenarios
func (tf *TableFormatter) Format(compSet *ComparisonSet) string {
	var sb strings.Builder

	// Header
	sb.WriteString("HEAT PUMP SCENARIO COMPARISON\n")
	sb.WriteString(strings.Repeat("=", 80) + "\n")
	sb.WriteString(fmt.Sprintf("Base Scenario: %s\n", compSet.BaseScenarioName))
	if compSet.ConfigPath != "" {
		sb.WriteString(fmt.Sprintf("Configuration: %s\n", compSet.ConfigPath))
	}
	sb.WriteString("\n")

	// Column widths
	nameWidth := 24
	numWidth := 10

	// Table header
	sb.WriteString(fmt.Sprintf("%-*s %*s %*s %*s %*s %*s\n",
		nameWidth, "Scenario",
		numWidth, "Boiler/yr",
		numWidth, "HP/yr",
		numWidth, "Saving/yr",
		numWidth, "Payback",
		numWidth, "Lifetime"))
	sb.WriteString(strings.Repeat("-", 80) + "\n")

	// Base scenario row
	if base := compSet.BaseResult; base != nil {
		sb.WriteString(tf.formatRow(base, nameWidth, numWidth, true))
	}

	// Alternative scenarios
	if len(compSet.AlternativeResults) > 0 {
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		for _, alt := range compSet.AlternativeResults {
			sb.WriteString(tf.formatRow(&alt, nameWidth, numWidth, false))
		}
	}

	sb.WriteString(strings.Repeat("=", 80) + "\n")

	// Comparison details (deltas from base)
	if len(compSet.AlternativeResults) > 0 {
		sb.WriteString("\nCOMPARISON TO BASE\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")

		for _, alt := range compSet.AlternativeResults {
			sb.WriteString(fmt.Sprintf("\n%s:\n", alt.ScenarioName))
			if alt.Description != "" {
				sb.WriteString(fmt.Sprintf("  %s\n", alt.Description))
			}

			sb.WriteString(fmt.Sprintf("  Annual Saving:    %s\n", tf.formatDelta(alt.SavingDiffFromBase)))
			sb.WriteString(fmt.Sprintf("  Lifetime Savings: %s\n", tf.formatDelta(alt.LifetimeDiffFromBase)))

			if alt.PaybackDiffFromBase.IsFinite() && alt.PaybackDiffFromBase != 0 {
				// Shorter payback is better
				sb.WriteString(fmt.Sprintf("  Payback:          %s%s years\n",
					tf.deltaSymbol(alt.PaybackDiffFromBase),
					decimal.NewFromFloat(alt.PaybackDiffFromBase.Float64()).StringFixed(1)))
			} else if alt.PaybackYearsSmart.IsFinite() != compSet.BaseResult.PaybackYearsSmart.IsFinite() {
				sb.WriteString(fmt.Sprintf("  Payback:          %s (base: %s)\n",
					FormatYears(alt.PaybackYearsSmart), FormatYears(compSet.BaseResult.PaybackYearsSmart)))
			}

			if alt.RecommendationChanged {
				sb.WriteString(fmt.Sprintf("  Recommendation:   %s\n", alt.Recommendation))
			}
		}
		sb.WriteString("\n")
	}

	// Recommendations
	if len(compSet.Recommendations) > 0 {
		sb.WriteString("\nRECOMMENDATIONS\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		for _, rec := range compSet.Recommendations {
			sb.WriteString(fmt.Sprintf("• %s\n", rec))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// formatRow formats a single scenario row
func (tf *TableFormatter) formatRow(result *ComparisonResult, nameWidth, numWidth int, isBase bool) string {
	name := result.ScenarioName
	if isBase {
		name += " (base)"
	}

	payback := FormatYears(result.PaybackYearsSmart)
	if result.PaybackYearsSmart.IsFinite() {
		payback += "y"
	}

	return fmt.Sprintf("%-*s %*s %*s %*s %*s %*s\n",
		nameWidth, tf.truncate(name, nameWidth),
		numWidth, tf.formatFigure(result.AnnualCostBoiler),
		numWidth, tf.formatFigure(result.AnnualCostSmart),
		numWidth, tf.formatFigure(result.AnnualSavingSmart),
		numWidth, payback,
		numWidth, tf.formatFigure(result.LifetimeSavings))
}

// formatFigure formats a figure for display (in thousands past 10,000)
func (tf *TableFormatter) formatFigure(f domain.Figure) string {
	if !f.IsFinite() {
		return "n/a"
	}
	d := decimal.NewFromFloat(f.Float64())
	if d.Abs().GreaterThanOrEqual(decimal.NewFromInt(1000000)) {
		return d.Div(decimal.NewFromInt(1000000)).StringFixed(2) + "M"
	} else if d.Abs().GreaterThanOrEqual(decimal.NewFromInt(10000)) {
		return d.Div(decimal.NewFromInt(1000)).StringFixed(1) + "K"
	}
	return d.StringFixed(0)
}

func (tf *TableFormatter) formatDelta(f domain.Figure) string {
	if !f.IsFinite() {
		return "n/a"
	}
	return tf.deltaSymbol(f) + tf.formatFigure(f)
}

// deltaSymbol returns a + for positive deltas; negatives carry their own sign
func (tf *TableFormatter) deltaSymbol(delta domain.Figure) string {
	if delta > 0 {
		return "+"
	}
	return ""
}

// truncate truncates a string to maxLen
func (tf *TableFormatter) truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

// FormatCompact creates a compact single-line summary for each scenario
func (tf *TableFormatter) FormatCompact(compSet *ComparisonSet) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Base: %s | ", compSet.BaseScenarioName))

	for i, alt := range compSet.AlternativeResults {
		if i > 0 {
			sb.WriteString(" | ")
		}
		change := "="
		if alt.LifetimeDiffFromBase != 0 {
			change = tf.formatDelta(alt.LifetimeDiffFromBase)
		}

		sb.WriteString(fmt.Sprintf("%s: %s", alt.ScenarioName, change))
	}

	return sb.String()
}
