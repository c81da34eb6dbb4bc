package calculation

import (
	"math"

	"github.com/rgehrsitz/hpcalc/internal/domain"
)

// SolarSelfConsumptionRate is the share of annual solar generation assumed to
// be used directly by the heat pump.
const SolarSelfConsumptionRate = 0.4

// Tariff selects which heat pump electricity price a figure refers to.
type Tariff string

const (
	TariffStandard Tariff = "standard"
	TariffSmart    Tariff = "smart"
)

// ParseTariff accepts "standard" or "smart" (also "smart_tariff", "hp").
func ParseTariff(s string) (Tariff, bool) {
	switch s {
	case "standard", "std":
		return TariffStandard, true
	case "smart", "smart_tariff", "hp":
		return TariffSmart, true
	}
	return "", false
}

// Breakdown holds every intermediate of one comparison, unrounded.
type Breakdown struct {
	Config domain.Config

	GasConsumption float64
	GasAnnual      float64

	HPElecNeeded     float64
	SolarOffset      float64
	HPGridElec       float64
	HPAnnualStandard float64
	HPAnnualSmart    float64

	NetCost         float64
	SavingStandard  float64
	SavingSmart     float64
	PaybackStandard float64
	PaybackSmart    float64
	LifetimeSmart   float64
}

// Evaluate runs the comparison arithmetic on a complete configuration.
// Nothing is validated: zero efficiency or COP yields +Inf consumption and
// a non-positive saving yields a +Inf payback.
func Evaluate(c domain.Config) Breakdown {
	b := Breakdown{Config: c}

	b.GasConsumption = c.GasUsage / c.BoilerEfficiency
	b.GasAnnual = b.GasConsumption*c.GasPrice + c.GasStanding

	b.HPElecNeeded = c.GasUsage / c.COP
	b.SolarOffset = math.Min(c.SolarGeneration*SolarSelfConsumptionRate, b.HPElecNeeded)
	b.HPGridElec = b.HPElecNeeded - b.SolarOffset

	b.HPAnnualStandard = b.HPGridElec*c.ElecPrice + c.ElecStanding
	b.HPAnnualSmart = b.HPGridElec*c.HPTariffPrice + c.ElecStanding

	b.NetCost = c.InstallCost - c.BUSGrant

	b.SavingStandard = b.GasAnnual - b.HPAnnualStandard
	b.SavingSmart = b.GasAnnual - b.HPAnnualSmart
	b.PaybackStandard = payback(b.NetCost, b.SavingStandard)
	b.PaybackSmart = payback(b.NetCost, b.SavingSmart)

	b.LifetimeSmart = b.SavingSmart*c.HeatPumpLifespan - b.NetCost

	return b
}

// Saving returns the unrounded annual saving on the given tariff.
func (b Breakdown) Saving(t Tariff) float64 {
	if t == TariffStandard {
		return b.SavingStandard
	}
	return b.SavingSmart
}

// Payback returns the unrounded payback in years on the given tariff.
func (b Breakdown) Payback(t Tariff) float64 {
	if t == TariffStandard {
		return b.PaybackStandard
	}
	return b.PaybackSmart
}

// Report rounds the breakdown into a report.
func (b Breakdown) Report() domain.Report {
	return domain.Report{
		GasBoiler: domain.GasBoilerCosts{
			AnnualCost:     whole(b.GasAnnual),
			GasConsumption: whole(b.GasConsumption),
		},
		HeatPump: domain.HeatPumpCosts{
			AnnualCostStandard:    whole(b.HPAnnualStandard),
			AnnualCostSmartTariff: whole(b.HPAnnualSmart),
			ElectricityNeeded:     whole(b.HPElecNeeded),
			SolarOffset:           whole(b.SolarOffset),
			GridElectricity:       whole(b.HPGridElec),
		},
		Costs: domain.InstallCosts{
			InstallCost: whole(b.Config.InstallCost),
			BUSGrant:    whole(b.Config.BUSGrant),
			NetCost:     whole(b.NetCost),
		},
		Savings: domain.Savings{
			AnnualStandard:          whole(b.SavingStandard),
			AnnualSmartTariff:       whole(b.SavingSmart),
			PaybackYearsStandard:    tenths(b.PaybackStandard),
			PaybackYearsSmartTariff: tenths(b.PaybackSmart),
			LifetimeSavings:         whole(b.LifetimeSmart),
		},
		Grants:         domain.GrantSchemes(),
		Recommendation: domain.RecommendationFor(b.SavingSmart),
	}
}

// CalculateConfig produces the report for a complete configuration.
func CalculateConfig(c domain.Config) domain.Report {
	return Evaluate(c).Report()
}

// Calculate overlays the overrides onto the defaults and produces the report.
func Calculate(overrides domain.Overrides) domain.Report {
	return CalculateConfig(overrides.Apply(domain.DefaultConfig()))
}

func payback(netCost, saving float64) float64 {
	if saving > 0 {
		return netCost / saving
	}
	return math.Inf(1)
}

// roundHalfUp rounds to the nearest integer, ties towards +Inf. Infinities
// and NaN pass through unchanged.
func roundHalfUp(x float64) float64 {
	r := math.Floor(x)
	if x-r >= 0.5 {
		return r + 1
	}
	return r
}

func whole(x float64) domain.Figure {
	return domain.Figure(roundHalfUp(x))
}

func tenths(x float64) domain.Figure {
	return domain.Figure(roundHalfUp(x*10) / 10)
}
