package breakeven

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/rgehrsitz/hpcalc/internal/domain"
	"github.com/shopspring/decimal"
)

// TableFormatter formats solver results as a console table
type TableFormatter struct{}

// Format generates a formatted table for one solver result
func (tf *TableFormatter) Format(result *Result) string {
	var sb strings.Builder

	sb.WriteString("BREAK-EVEN ANALYSIS\n")
	sb.WriteString(strings.Repeat("=", 80) + "\n")

	sb.WriteString(fmt.Sprintf("Field:        %s (%s)\n", result.Field, result.Unit))
	sb.WriteString(fmt.Sprintf("Goal:         %s\n", tf.describeGoal(result.Request)))
	sb.WriteString(fmt.Sprintf("Tariff:       %s\n", result.Request.Tariff))
	if result.Request.Range != nil {
		sb.WriteString(fmt.Sprintf("Search Range: %s to %s\n",
			formatValue(result.Request.Range.Min), formatValue(result.Request.Range.Max)))
	}
	sb.WriteString(fmt.Sprintf("Status:       %s\n", tf.formatStatus(result.Converged)))
	sb.WriteString(fmt.Sprintf("Iterations:   %d\n", result.Iterations))
	if result.ConvergenceInfo != "" {
		sb.WriteString(fmt.Sprintf("Convergence:  %s\n", result.ConvergenceInfo))
	}
	sb.WriteString("\n")

	sb.WriteString("THRESHOLD\n")
	sb.WriteString(strings.Repeat("-", 80) + "\n")
	sb.WriteString(fmt.Sprintf("Current Value:   %s\n", formatValue(result.BaseValue)))
	sb.WriteString(fmt.Sprintf("Threshold Value: %s\n", formatValue(result.Value)))
	sb.WriteString(fmt.Sprintf("Change Needed:   %s%s%s\n",
		tf.deltaSymbol(result.Change), formatValue(result.Change), tf.formatPercent(result.Change, result.BaseValue)))
	sb.WriteString(fmt.Sprintf("Better When:     %s %s\n", result.Direction, formatValue(result.Value)))
	sb.WriteString("\n")

	sb.WriteString("RESULTS AT THRESHOLD\n")
	sb.WriteString(strings.Repeat("-", 80) + "\n")
	sb.WriteString(fmt.Sprintf("%-28s %12s %12s\n", "", "Current", "Threshold"))
	tf.writeRow(&sb, "Annual Saving (standard)", result.BaseReport.Savings.AnnualStandard, result.Report.Savings.AnnualStandard)
	tf.writeRow(&sb, "Annual Saving (smart)", result.BaseReport.Savings.AnnualSmartTariff, result.Report.Savings.AnnualSmartTariff)
	tf.writeYearsRow(&sb, "Payback (standard)", result.BaseReport.Savings.PaybackYearsStandard, result.Report.Savings.PaybackYearsStandard)
	tf.writeYearsRow(&sb, "Payback (smart)", result.BaseReport.Savings.PaybackYearsSmartTariff, result.Report.Savings.PaybackYearsSmartTariff)
	tf.writeRow(&sb, "Lifetime Savings", result.BaseReport.Savings.LifetimeSavings, result.Report.Savings.LifetimeSavings)
	sb.WriteString("\n")

	sb.WriteString(result.Summary() + "\n")

	return sb.String()
}

// FormatMulti formats results from solving several fields
func (tf *TableFormatter) FormatMulti(result *MultiFieldResult) string {
	var sb strings.Builder

	sb.WriteString("BREAK-EVEN ANALYSIS: ALL FIELDS\n")
	sb.WriteString(strings.Repeat("=", 80) + "\n")
	sb.WriteString(fmt.Sprintf("Goal:   %s\n", result.Goal))
	sb.WriteString(fmt.Sprintf("Tariff: %s\n\n", result.Tariff))

	sb.WriteString(fmt.Sprintf("%-20s %12s %12s %12s %8s\n", "Field", "Current", "Threshold", "Change", "Better"))
	sb.WriteString(strings.Repeat("-", 80) + "\n")

	for _, res := range result.Results {
		sb.WriteString(fmt.Sprintf("%-20s %12s %12s %12s %8s\n",
			tf.truncate(res.Field, 20),
			formatValue(res.BaseValue),
			formatValue(res.Value),
			tf.deltaSymbol(res.Change)+formatValue(res.Change),
			res.Direction))
	}
	sb.WriteString("\n")

	if len(result.Unsolved) > 0 {
		sb.WriteString("NOT REACHABLE\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		names := make([]string, 0, len(result.Unsolved))
		for name := range result.Unsolved {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			sb.WriteString(fmt.Sprintf("%-20s %s\n", name, result.Unsolved[name]))
		}
		sb.WriteString("\n")
	}

	if len(result.Recommendations) > 0 {
		sb.WriteString("RECOMMENDATIONS\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		for _, rec := range result.Recommendations {
			sb.WriteString(fmt.Sprintf("• %s\n", rec))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// JSONFormatter formats results as JSON
type JSONFormatter struct {
	Pretty bool
}

// Format generates JSON output
func (jf *JSONFormatter) Format(result *Result) (string, error) {
	return jf.marshal(result)
}

// FormatMulti formats multi-field results as JSON
func (jf *JSONFormatter) FormatMulti(result *MultiFieldResult) (string, error) {
	return jf.marshal(result)
}

func (jf *JSONFormatter) marshal(v interface{}) (string, error) {
	var data []byte
	var err error

	if jf.Pretty {
		data, err = json.MarshalIndent(v, "", "  ")
	} else {
		data, err = json.Marshal(v)
	}

	if err != nil {
		return "", err
	}

	return string(data), nil
}

// Helper methods

// formatValue prints a solved value with precision suited to its size:
// prices and ratios need four places, annual amounts two.
func formatValue(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "n/a"
	}
	d := decimal.NewFromFloat(v)
	if d.Abs().GreaterThanOrEqual(decimal.NewFromInt(100)) {
		return d.Round(2).String()
	}
	return d.Round(4).String()
}

func (tf *TableFormatter) describeGoal(req Request) string {
	if req.Goal == GoalPayback {
		return fmt.Sprintf("payback in %g years", req.TargetYears)
	}
	return "zero annual saving"
}

func (tf *TableFormatter) formatStatus(converged bool) string {
	if converged {
		return "✓ Converged"
	}
	return "⚠ Did not converge"
}

func (tf *TableFormatter) formatPercent(change, base float64) string {
	pct := change / base * 100
	if base == 0 || math.IsInf(pct, 0) || math.IsNaN(pct) {
		return ""
	}
	return fmt.Sprintf(" (%s%%)", decimal.NewFromFloat(pct).StringFixed(1))
}

func (tf *TableFormatter) writeRow(sb *strings.Builder, label string, current, threshold domain.Figure) {
	sb.WriteString(fmt.Sprintf("%-28s %12s %12s\n", label, tf.formatFigure(current), tf.formatFigure(threshold)))
}

func (tf *TableFormatter) writeYearsRow(sb *strings.Builder, label string, current, threshold domain.Figure) {
	sb.WriteString(fmt.Sprintf("%-28s %12s %12s\n", label, tf.formatYears(current), tf.formatYears(threshold)))
}

func (tf *TableFormatter) formatFigure(f domain.Figure) string {
	if !f.IsFinite() {
		return "n/a"
	}
	return decimal.NewFromFloat(f.Float64()).StringFixed(0)
}

func (tf *TableFormatter) formatYears(f domain.Figure) string {
	if !f.IsFinite() {
		return "never"
	}
	return decimal.NewFromFloat(f.Float64()).StringFixed(1)
}

func (tf *TableFormatter) deltaSymbol(delta float64) string {
	if delta > 0 {
		return "+"
	}
	return ""
}

func (tf *TableFormatter) truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
