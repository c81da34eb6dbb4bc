package domain

import (
	"github.com/shopspring/decimal"
)

// SensitivityParameter represents a config field to sweep in sensitivity analysis
type SensitivityParameter struct {
	Name        string          `yaml:"name" json:"name"` // canonical field name, see Fields()
	MinValue    decimal.Decimal `yaml:"min_value" json:"minValue"`
	MaxValue    decimal.Decimal `yaml:"max_value" json:"maxValue"`
	Steps       int             `yaml:"steps" json:"steps"`
	BaseValue   decimal.Decimal `yaml:"base_value" json:"baseValue"`
	Unit        string          `yaml:"unit" json:"unit"`
	Description string          `yaml:"description" json:"description"`
}

// ParameterSensitivityAnalysis represents a complete parameter sensitivity analysis
type ParameterSensitivityAnalysis struct {
	Parameters   []SensitivityParameter `json:"parameters"`
	BaseReport   Report                 `json:"baseReport"`
	Results      []SensitivityResult    `json:"results"`
	Summary      SensitivitySummary     `json:"summary"`
	AnalysisType string                 `json:"analysisType"` // "single", "multi"
}

// SensitivityResult represents the outcome at one point of a sweep
type SensitivityResult struct {
	ParameterValues map[string]decimal.Decimal `json:"parameterValues"`
	KeyMetrics      SensitivityMetrics         `json:"keyMetrics"`
}

// SensitivityMetrics are the report figures tracked across a sweep
type SensitivityMetrics struct {
	AnnualSavingSmart  Figure         `json:"annualSavingSmart"`
	AnnualSavingStd    Figure         `json:"annualSavingStandard"`
	PaybackYearsSmart  Figure         `json:"paybackYearsSmart"`
	LifetimeSavings    Figure         `json:"lifetimeSavings"`
	LifetimeChange     Figure         `json:"lifetimeChange"` // against the base report
	Recommendation     Recommendation `json:"recommendation"`
	RecommendationFlip bool           `json:"recommendationFlip"` // differs from the base report
}

// SensitivitySummary provides overall analysis summary
type SensitivitySummary struct {
	MostSensitiveParameter string                     `json:"mostSensitiveParameter"`
	SensitivityScores      map[string]decimal.Decimal `json:"sensitivityScores"` // lifetime savings swing per parameter
	SwitchThresholds       map[string]decimal.Decimal `json:"switchThresholds,omitempty"`
	Recommendations        []string                   `json:"recommendations"`
}

// SensitivityMatrix represents a 2D parameter sweep
type SensitivityMatrix struct {
	Parameter1    SensitivityParameter  `json:"parameter1"`
	Parameter2    SensitivityParameter  `json:"parameter2"`
	BaseReport    Report                `json:"baseReport"`
	MatrixResults [][]SensitivityResult `json:"matrixResults"`
	SwitchCount   int                   `json:"switchCount"` // grid points recommending a switch
}

// Common sensitivity parameters
var (
	GasPriceParam = SensitivityParameter{
		Name:        "gas_price",
		MinValue:    decimal.NewFromFloat(0.04),
		MaxValue:    decimal.NewFromFloat(0.10),
		Steps:       7,
		BaseValue:   decimal.NewFromFloat(0.061),
		Unit:        "per kWh",
		Description: "Unit price of gas",
	}

	ElecPriceParam = SensitivityParameter{
		Name:        "elec_price",
		MinValue:    decimal.NewFromFloat(0.18),
		MaxValue:    decimal.NewFromFloat(0.32),
		Steps:       8,
		BaseValue:   decimal.NewFromFloat(0.245),
		Unit:        "per kWh",
		Description: "Unit price of standard electricity",
	}

	HPTariffPriceParam = SensitivityParameter{
		Name:        "hp_tariff_price",
		MinValue:    decimal.NewFromFloat(0.10),
		MaxValue:    decimal.NewFromFloat(0.24),
		Steps:       8,
		BaseValue:   decimal.NewFromFloat(0.16),
		Unit:        "per kWh",
		Description: "Unit price on a heat pump tariff",
	}

	COPParam = SensitivityParameter{
		Name:        "cop",
		MinValue:    decimal.NewFromFloat(2.5),
		MaxValue:    decimal.NewFromFloat(4.5),
		Steps:       5,
		BaseValue:   decimal.NewFromFloat(3.5),
		Unit:        "ratio",
		Description: "Heat pump coefficient of performance",
	}

	InstallCostParam = SensitivityParameter{
		Name:        "install_cost",
		MinValue:    decimal.NewFromInt(8000),
		MaxValue:    decimal.NewFromInt(16000),
		Steps:       5,
		BaseValue:   decimal.NewFromInt(12000),
		Unit:        "amount",
		Description: "Upfront heat pump installation cost",
	}

	SolarGenerationParam = SensitivityParameter{
		Name:        "solar_generation",
		MinValue:    decimal.Zero,
		MaxValue:    decimal.NewFromInt(4000),
		Steps:       5,
		BaseValue:   decimal.Zero,
		Unit:        "kWh/year",
		Description: "Annual solar electricity production",
	}
)

// GetCommonParameters returns the parameters most worth sweeping
func GetCommonParameters() []SensitivityParameter {
	return []SensitivityParameter{
		GasPriceParam,
		HPTariffPriceParam,
		COPParam,
		InstallCostParam,
		SolarGenerationParam,
	}
}

// GetPriceParameters returns the energy price parameters
func GetPriceParameters() []SensitivityParameter {
	return []SensitivityParameter{
		GasPriceParam,
		ElecPriceParam,
		HPTariffPriceParam,
	}
}
