package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/rgehrsitz/hpcalc/internal/domain"
)

// ConsoleFormatter renders the plain-text report. Verbose adds the inputs,
// the energy breakdown and the grant schemes to every scenario.
type ConsoleFormatter struct {
	Verbose bool
}

func (c ConsoleFormatter) Name() string {
	if c.Verbose {
		return "verbose"
	}
	return "console"
}

func (c ConsoleFormatter) Format(results *domain.ScenarioComparison) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintln(&buf, "=================================================================================")
	fmt.Fprintln(&buf, "GAS BOILER VS HEAT PUMP RUNNING COST COMPARISON")
	fmt.Fprintln(&buf, "=================================================================================")
	fmt.Fprintln(&buf)

	if c.Verbose {
		fmt.Fprintln(&buf, "KEY ASSUMPTIONS:")
		for _, a := range DefaultAssumptions {
			fmt.Fprintf(&buf, "• %s\n", a)
		}
		fmt.Fprintln(&buf)
	}

	for i, scenario := range results.All() {
		title := scenario.Name
		if i == 0 {
			title += " (base)"
		}
		fmt.Fprintf(&buf, "SCENARIO %d: %s\n", i+1, title)
		fmt.Fprintln(&buf, strings.Repeat("=", 50))
		if scenario.Description != "" {
			fmt.Fprintln(&buf, scenario.Description)
		}
		if c.Verbose {
			writeInputs(&buf, scenario.Config)
			writeEnergy(&buf, scenario.Report)
		}
		writeCosts(&buf, scenario.Report)
		if c.Verbose {
			writeGrants(&buf, scenario.Report.Grants)
		}
		fmt.Fprintln(&buf)
	}

	if len(results.Scenarios) > 0 {
		writeScenarioTable(&buf, results)
	}

	rec := AnalyzeScenarios(results)
	fmt.Fprintln(&buf, "SUMMARY & RECOMMENDATIONS")
	fmt.Fprintln(&buf, "=========================")
	if rec.BestScenario != "" {
		fmt.Fprintf(&buf, "Best Lifetime Savings: %s (%s)\n", rec.BestScenario, FormatSigned(rec.BestLifetimeSavings))
	}
	if rec.FastestScenario != "" {
		fmt.Fprintf(&buf, "Fastest Payback:       %s (%s years)\n", rec.FastestScenario, FormatYears(rec.FastestPayback))
	}
	fmt.Fprintf(&buf, "Switch Recommended:    %d of %d\n", rec.SwitchCount, rec.Total)
	fmt.Fprintln(&buf, rec.Summary)

	return buf.Bytes(), nil
}

func writeInputs(buf *bytes.Buffer, cfg domain.Config) {
	fmt.Fprintln(buf, "INPUTS:")
	for _, f := range domain.Fields() {
		fmt.Fprintf(buf, "  %-20s %12s %s\n", f.Name, FormatValue(f.Get(cfg)), f.Unit)
	}
	fmt.Fprintln(buf)
}

func writeEnergy(buf *bytes.Buffer, r domain.Report) {
	fmt.Fprintln(buf, "ENERGY (kWh/year):")
	fmt.Fprintf(buf, "  Gas Burned:             %s\n", FormatAmount(r.GasBoiler.GasConsumption))
	fmt.Fprintf(buf, "  Heat Pump Electricity:  %s\n", FormatAmount(r.HeatPump.ElectricityNeeded))
	fmt.Fprintf(buf, "  Solar Offset:           %s\n", FormatAmount(r.HeatPump.SolarOffset))
	fmt.Fprintf(buf, "  From the Grid:          %s\n", FormatAmount(r.HeatPump.GridElectricity))
	fmt.Fprintln(buf)
}

func writeCosts(buf *bytes.Buffer, r domain.Report) {
	fmt.Fprintln(buf, "ANNUAL RUNNING COSTS:")
	fmt.Fprintf(buf, "  Gas Boiler:             %s\n", FormatAmount(r.GasBoiler.AnnualCost))
	fmt.Fprintf(buf, "  Heat Pump (standard):   %s\n", FormatAmount(r.HeatPump.AnnualCostStandard))
	fmt.Fprintf(buf, "  Heat Pump (smart):      %s\n", FormatAmount(r.HeatPump.AnnualCostSmartTariff))
	fmt.Fprintln(buf)
	fmt.Fprintln(buf, "INSTALLATION:")
	fmt.Fprintf(buf, "  Install Cost:           %s\n", FormatAmount(r.Costs.InstallCost))
	fmt.Fprintf(buf, "  BUS Grant:              %s\n", FormatAmount(r.Costs.BUSGrant))
	fmt.Fprintf(buf, "  Net Cost:               %s\n", FormatAmount(r.Costs.NetCost))
	fmt.Fprintln(buf)
	fmt.Fprintln(buf, "SAVINGS:")
	fmt.Fprintf(buf, "  Annual (standard):      %s\n", FormatSigned(r.Savings.AnnualStandard))
	fmt.Fprintf(buf, "  Annual (smart):         %s\n", FormatSigned(r.Savings.AnnualSmartTariff))
	fmt.Fprintf(buf, "  Payback (standard):     %s\n", formatPayback(r.Savings.PaybackYearsStandard))
	fmt.Fprintf(buf, "  Payback (smart):        %s\n", formatPayback(r.Savings.PaybackYearsSmartTariff))
	fmt.Fprintf(buf, "  Lifetime (smart):       %s\n", FormatSigned(r.Savings.LifetimeSavings))
	fmt.Fprintln(buf)
	fmt.Fprintf(buf, "RECOMMENDATION: %s\n", r.Recommendation)
}

func writeGrants(buf *bytes.Buffer, grants domain.GrantCatalog) {
	fmt.Fprintln(buf)
	fmt.Fprintln(buf, "GRANTS:")
	for _, g := range grants.Schemes {
		fmt.Fprintf(buf, "  %s: %s\n", g.Name, g.Description)
		fmt.Fprintf(buf, "    %s\n", g.URL)
	}
	fmt.Fprintf(buf, "  Check eligibility: %s\n", grants.EligibilityChecker)
}

func writeScenarioTable(buf *bytes.Buffer, results *domain.ScenarioComparison) {
	fmt.Fprintln(buf, "SCENARIO COMPARISON")
	fmt.Fprintln(buf, strings.Repeat("-", 81))
	fmt.Fprintf(buf, "%-20s %10s %10s %10s %10s %16s\n", "Scenario", "Boiler", "HP Smart", "Saving", "Payback", "Lifetime")
	for _, sc := range results.All() {
		fmt.Fprintf(buf, "%-20s %10s %10s %10s %10s %16s\n",
			truncate(sc.Name, 20),
			FormatAmount(sc.Report.GasBoiler.AnnualCost),
			FormatAmount(sc.Report.HeatPump.AnnualCostSmartTariff),
			FormatSigned(sc.Report.Savings.AnnualSmartTariff),
			FormatYears(sc.Report.Savings.PaybackYearsSmartTariff),
			cmpLifetime(sc.Report.Savings.LifetimeSavings, results.Base.Report.Savings.LifetimeSavings))
	}
	fmt.Fprintln(buf)
}

// cmpLifetime shows lifetime savings with the difference from the base in brackets.
func cmpLifetime(lifetime, base domain.Figure) string {
	diff := lifetime - base
	if !diff.IsFinite() || diff == 0 {
		return FormatAmount(lifetime)
	}
	return fmt.Sprintf("%s (%s)", FormatAmount(lifetime), FormatSigned(diff))
}

func formatPayback(f domain.Figure) string {
	if !f.IsFinite() {
		return "never"
	}
	return FormatYears(f) + " years"
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
