package output

import (
	"bytes"
	"encoding/csv"
	"sort"

	"github.com/rgehrsitz/hpcalc/internal/domain"
)

// CSVSummarizer implements the simple summary CSV output (one row per scenario).
// The base comes first, then the scenarios by name.
type CSVSummarizer struct{}

func (c CSVSummarizer) Name() string { return "csv" }

func (c CSVSummarizer) Format(results *domain.ScenarioComparison) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{
		"Scenario", "GasBoilerAnnual", "HeatPumpStandardAnnual", "HeatPumpSmartAnnual",
		"NetCost", "SavingStandard", "SavingSmart", "PaybackStandard", "PaybackSmart",
		"LifetimeSavings", "Recommendation",
	}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	scenarios := append([]domain.ScenarioResult(nil), results.Scenarios...)
	sort.SliceStable(scenarios, func(i, j int) bool { return scenarios[i].Name < scenarios[j].Name })
	for _, sc := range append([]domain.ScenarioResult{results.Base}, scenarios...) {
		r := sc.Report
		row := []string{
			sc.Name,
			FormatAmount(r.GasBoiler.AnnualCost),
			FormatAmount(r.HeatPump.AnnualCostStandard),
			FormatAmount(r.HeatPump.AnnualCostSmartTariff),
			FormatAmount(r.Costs.NetCost),
			FormatAmount(r.Savings.AnnualStandard),
			FormatAmount(r.Savings.AnnualSmartTariff),
			FormatYears(r.Savings.PaybackYearsStandard),
			FormatYears(r.Savings.PaybackYearsSmartTariff),
			FormatAmount(r.Savings.LifetimeSavings),
			string(r.Recommendation),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
