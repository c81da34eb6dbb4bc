package output

import (
	"fmt"
	"math"
	"os"

	"github.com/rgehrsitz/hpcalc/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Recommendation is the cross-scenario verdict shown at the end of a report.
type Recommendation struct {
	BestScenario        string
	BestLifetimeSavings domain.Figure
	FastestScenario     string
	FastestPayback      domain.Figure
	SwitchCount         int // results recommending the switch, base included
	Total               int
	Summary             string
}

// AnalyzeScenarios picks the best result by lifetime savings and by smart
// tariff payback. Ties go to the earlier result, so the base wins a tie.
func AnalyzeScenarios(results *domain.ScenarioComparison) Recommendation {
	all := results.All()
	rec := Recommendation{Total: len(all)}

	var best, fastest *domain.ScenarioResult
	for i := range all {
		r := &all[i]
		if r.Report.Recommendation.IsSwitch() {
			rec.SwitchCount++
		}
		if lifetime := r.Report.Savings.LifetimeSavings; lifetime.IsFinite() &&
			(best == nil || lifetime > best.Report.Savings.LifetimeSavings) {
			best = r
		}
		if payback := r.Report.Savings.PaybackYearsSmartTariff; payback.IsFinite() &&
			(fastest == nil || payback < fastest.Report.Savings.PaybackYearsSmartTariff) {
			fastest = r
		}
	}

	if best != nil {
		rec.BestScenario = best.Name
		rec.BestLifetimeSavings = best.Report.Savings.LifetimeSavings
	}
	if fastest != nil {
		rec.FastestScenario = fastest.Name
		rec.FastestPayback = fastest.Report.Savings.PaybackYearsSmartTariff
	}

	switch {
	case rec.SwitchCount == 0:
		rec.Summary = "Keep the gas boiler: the heat pump costs more to run in every scenario"
	case best != nil && best.Report.Savings.LifetimeSavings > 0:
		rec.Summary = fmt.Sprintf("%s pays for itself with %s to spare over the heat pump's life",
			best.Name, FormatAmount(best.Report.Savings.LifetimeSavings))
	default:
		rec.Summary = "Running costs fall with a heat pump, but no scenario recovers the net cost within its lifespan"
	}

	return rec
}

// SaveConfiguration writes a scenario file.
func SaveConfiguration(config *domain.Configuration, filename string) error {
	data, err := yaml.Marshal(config)
	if err != nil {
		return err
	}

	return os.WriteFile(filename, data, 0644)
}

// FormatAmount formats a whole-unit figure; non-finite figures print as n/a.
func FormatAmount(f domain.Figure) string {
	if !f.IsFinite() {
		return "n/a"
	}
	return decimal.NewFromFloat(f.Float64()).StringFixed(0)
}

// FormatSigned formats a figure with an explicit sign.
func FormatSigned(f domain.Figure) string {
	if f.IsFinite() && f > 0 {
		return "+" + FormatAmount(f)
	}
	return FormatAmount(f)
}

// FormatYears formats a payback period; a payback that never happens prints as never.
func FormatYears(f domain.Figure) string {
	if !f.IsFinite() {
		return "never"
	}
	return decimal.NewFromFloat(f.Float64()).StringFixed(1)
}

// FormatValue formats an input value the way it would be typed.
func FormatValue(v float64) string {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return fmt.Sprint(v)
	}
	return decimal.NewFromFloat(v).String()
}
