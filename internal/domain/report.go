package domain

import (
	"encoding/json"
	"math"
	"strconv"
)

// Figure is a rounded report quantity. Non-finite values (a payback that
// never happens, consumption with zero efficiency) encode to JSON null.
type Figure float64

// Float64 returns the figure as a plain float.
func (f Figure) Float64() float64 { return float64(f) }

// IsFinite reports whether the figure is neither infinite nor NaN.
func (f Figure) IsFinite() bool {
	v := float64(f)
	return !math.IsInf(v, 0) && !math.IsNaN(v)
}

// MarshalJSON implements json.Marshaler.
func (f Figure) MarshalJSON() ([]byte, error) {
	if !f.IsFinite() {
		return []byte("null"), nil
	}
	return []byte(strconv.FormatFloat(float64(f), 'f', -1, 64)), nil
}

// UnmarshalJSON implements json.Unmarshaler. null decodes to +Inf, the only
// non-finite value a report carries for a payback that never happens. The
// decode is lossy: -Inf and NaN also encode to null and come back as +Inf.
func (f *Figure) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*f = Figure(math.Inf(1))
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*f = Figure(v)
	return nil
}

// Report is the result of one comparison. It is built fresh per call and
// carries no state beyond its contents.
type Report struct {
	GasBoiler      GasBoilerCosts `json:"gasBoiler" yaml:"gas_boiler"`
	HeatPump       HeatPumpCosts  `json:"heatPump" yaml:"heat_pump"`
	Costs          InstallCosts   `json:"costs" yaml:"costs"`
	Savings        Savings        `json:"savings" yaml:"savings"`
	Grants         GrantCatalog   `json:"grants" yaml:"grants"`
	Recommendation Recommendation `json:"recommendation" yaml:"recommendation"`
}

// GasBoilerCosts covers the existing boiler.
type GasBoilerCosts struct {
	AnnualCost     Figure `json:"annualCost" yaml:"annual_cost"`
	GasConsumption Figure `json:"gasConsumption" yaml:"gas_consumption"` // kWh of gas burned
}

// HeatPumpCosts covers the heat pump under both tariffs.
type HeatPumpCosts struct {
	AnnualCostStandard    Figure `json:"annualCostStandard" yaml:"annual_cost_standard"`
	AnnualCostSmartTariff Figure `json:"annualCostSmartTariff" yaml:"annual_cost_smart_tariff"`
	ElectricityNeeded     Figure `json:"electricityNeeded" yaml:"electricity_needed"`
	SolarOffset           Figure `json:"solarOffset" yaml:"solar_offset"`
	GridElectricity       Figure `json:"gridElectricity" yaml:"grid_electricity"`
}

// InstallCosts covers the upfront spend. NetCost may be negative when the
// grant exceeds the install cost.
type InstallCosts struct {
	InstallCost Figure `json:"installCost" yaml:"install_cost"`
	BUSGrant    Figure `json:"busGrant" yaml:"bus_grant"`
	NetCost     Figure `json:"netCost" yaml:"net_cost"`
}

// Savings compares the heat pump against the boiler. Payback figures are
// +Inf when the annual saving on that tariff is not positive.
type Savings struct {
	AnnualStandard          Figure `json:"annualStandard" yaml:"annual_standard"`
	AnnualSmartTariff       Figure `json:"annualSmartTariff" yaml:"annual_smart_tariff"`
	PaybackYearsStandard    Figure `json:"paybackYearsStandard" yaml:"payback_years_standard"`
	PaybackYearsSmartTariff Figure `json:"paybackYearsSmartTariff" yaml:"payback_years_smart_tariff"`
	LifetimeSavings         Figure `json:"lifetimeSavings" yaml:"lifetime_savings"` // smart tariff only
}

// Recommendation is the headline verdict of a report.
type Recommendation string

const (
	RecommendSwitch Recommendation = "Switch with smart tariff"
	RecommendKeep   Recommendation = "Keep gas boiler for now"
)

// RecommendationFor classifies on the sign of the unrounded smart tariff saving.
func RecommendationFor(savingSmart float64) Recommendation {
	if savingSmart > 0 {
		return RecommendSwitch
	}
	return RecommendKeep
}

// IsSwitch reports whether the recommendation is to switch.
func (r Recommendation) IsSwitch() bool {
	return r == RecommendSwitch
}
