package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Config holds every input of the boiler vs heat pump comparison.
// All fields are plain numbers; nothing here is validated for plausibility.
type Config struct {
	GasUsage         float64 `yaml:"gas_usage" json:"gasUsage"`                  // kWh annual heating demand
	GasPrice         float64 `yaml:"gas_price" json:"gasPrice"`                  // per kWh
	ElecPrice        float64 `yaml:"elec_price" json:"elecPrice"`                // per kWh, standard tariff
	HPTariffPrice    float64 `yaml:"hp_tariff_price" json:"hpTariffPrice"`       // per kWh, heat pump tariff
	GasStanding      float64 `yaml:"gas_standing" json:"gasStanding"`            // per year
	ElecStanding     float64 `yaml:"elec_standing" json:"elecStanding"`          // per year
	BoilerEfficiency float64 `yaml:"boiler_efficiency" json:"boilerEfficiency"`  // fraction, 0.92 for modern condensing
	COP              float64 `yaml:"cop" json:"cop"`                             // coefficient of performance
	InstallCost      float64 `yaml:"install_cost" json:"installCost"`            // typical ASHP install
	BUSGrant         float64 `yaml:"bus_grant" json:"busGrant"`                  // Boiler Upgrade Scheme
	SolarGeneration  float64 `yaml:"solar_generation" json:"solarGeneration"`    // kWh annual solar output
	BoilerLifespan   float64 `yaml:"boiler_lifespan" json:"boilerLifespan"`      // years
	HeatPumpLifespan float64 `yaml:"heat_pump_lifespan" json:"heatPumpLifespan"` // years
}

var defaultConfig = Config{
	GasUsage:         12000,
	GasPrice:         0.061,
	ElecPrice:        0.245,
	HPTariffPrice:    0.16,
	GasStanding:      110,
	ElecStanding:     190,
	BoilerEfficiency: 0.92,
	COP:              3.5,
	InstallCost:      12000,
	BUSGrant:         7500,
	SolarGeneration:  0,
	BoilerLifespan:   12,
	HeatPumpLifespan: 22,
}

// DefaultConfig returns a copy of the default inputs. The shared record is
// never handed out, so callers cannot change the defaults seen by others.
func DefaultConfig() Config {
	return defaultConfig
}

// Overrides is a partial Config. A nil field keeps whatever the base holds.
type Overrides struct {
	GasUsage         *float64 `yaml:"gas_usage,omitempty" json:"gasUsage,omitempty"`
	GasPrice         *float64 `yaml:"gas_price,omitempty" json:"gasPrice,omitempty"`
	ElecPrice        *float64 `yaml:"elec_price,omitempty" json:"elecPrice,omitempty"`
	HPTariffPrice    *float64 `yaml:"hp_tariff_price,omitempty" json:"hpTariffPrice,omitempty"`
	GasStanding      *float64 `yaml:"gas_standing,omitempty" json:"gasStanding,omitempty"`
	ElecStanding     *float64 `yaml:"elec_standing,omitempty" json:"elecStanding,omitempty"`
	BoilerEfficiency *float64 `yaml:"boiler_efficiency,omitempty" json:"boilerEfficiency,omitempty"`
	COP              *float64 `yaml:"cop,omitempty" json:"cop,omitempty"`
	InstallCost      *float64 `yaml:"install_cost,omitempty" json:"installCost,omitempty"`
	BUSGrant         *float64 `yaml:"bus_grant,omitempty" json:"busGrant,omitempty"`
	SolarGeneration  *float64 `yaml:"solar_generation,omitempty" json:"solarGeneration,omitempty"`
	BoilerLifespan   *float64 `yaml:"boiler_lifespan,omitempty" json:"boilerLifespan,omitempty"`
	HeatPumpLifespan *float64 `yaml:"heat_pump_lifespan,omitempty" json:"heatPumpLifespan,omitempty"`
}

// Float returns a pointer to v, handy for building Overrides literals.
func Float(v float64) *float64 {
	return &v
}

// Apply overlays the set fields onto base and returns the merged value.
// The overlay is shallow and field-by-field; base itself is not modified.
func (o Overrides) Apply(base Config) Config {
	merged := base
	for _, f := range fieldCatalog {
		if p := *f.override(&o); p != nil {
			*f.value(&merged) = *p
		}
	}
	return merged
}

// Merge returns a new Overrides where every field set in top replaces the
// corresponding field of o. Pointers are copied, never shared.
func (o Overrides) Merge(top Overrides) Overrides {
	merged := o.Clone()
	for _, f := range fieldCatalog {
		if p := *f.override(&top); p != nil {
			*f.override(&merged) = Float(*p)
		}
	}
	return merged
}

// Clone deep-copies the overrides.
func (o Overrides) Clone() Overrides {
	var c Overrides
	for _, f := range fieldCatalog {
		if p := *f.override(&o); p != nil {
			*f.override(&c) = Float(*p)
		}
	}
	return c
}

// Set returns a copy of o with the named field set to v.
func (o Overrides) Set(name string, v float64) (Overrides, error) {
	f, ok := LookupField(name)
	if !ok {
		return o, fmt.Errorf("%w: %s (known fields: %s)", ErrUnknownField, name, strings.Join(FieldNames(), ", "))
	}
	c := o.Clone()
	*f.override(&c) = Float(v)
	return c, nil
}

// Values lists the set fields by canonical name.
func (o Overrides) Values() map[string]float64 {
	values := make(map[string]float64)
	for _, f := range fieldCatalog {
		if p := *f.override(&o); p != nil {
			values[f.Name] = *p
		}
	}
	return values
}

// IsEmpty reports whether no field is set.
func (o Overrides) IsEmpty() bool {
	return len(o.Values()) == 0
}

// ErrUnknownField is returned when a field name matches no Config field.
var ErrUnknownField = errors.New("unknown config field")

// Field describes one Config input and gives by-name access to it.
type Field struct {
	Name        string `json:"name" yaml:"name"`   // canonical snake_case name
	Alias       string `json:"alias" yaml:"alias"` // camelCase name used in JSON
	Unit        string `json:"unit" yaml:"unit"`
	Description string `json:"description" yaml:"description"`

	value    func(*Config) *float64
	override func(*Overrides) **float64
}

// Get reads the field from c.
func (f Field) Get(c Config) float64 {
	return *f.value(&c)
}

// With returns a copy of c with the field set to v.
func (f Field) With(c Config, v float64) Config {
	*f.value(&c) = v
	return c
}

var fieldCatalog = []Field{
	{
		Name: "gas_usage", Alias: "gasUsage", Unit: "kWh/year",
		Description: "Annual heating demand",
		value:       func(c *Config) *float64 { return &c.GasUsage },
		override:    func(o *Overrides) **float64 { return &o.GasUsage },
	},
	{
		Name: "gas_price", Alias: "gasPrice", Unit: "per kWh",
		Description: "Unit price of gas",
		value:       func(c *Config) *float64 { return &c.GasPrice },
		override:    func(o *Overrides) **float64 { return &o.GasPrice },
	},
	{
		Name: "elec_price", Alias: "elecPrice", Unit: "per kWh",
		Description: "Unit price of standard electricity",
		value:       func(c *Config) *float64 { return &c.ElecPrice },
		override:    func(o *Overrides) **float64 { return &o.ElecPrice },
	},
	{
		Name: "hp_tariff_price", Alias: "hpTariffPrice", Unit: "per kWh",
		Description: "Unit price on a heat pump (smart) tariff",
		value:       func(c *Config) *float64 { return &c.HPTariffPrice },
		override:    func(o *Overrides) **float64 { return &o.HPTariffPrice },
	},
	{
		Name: "gas_standing", Alias: "gasStanding", Unit: "per year",
		Description: "Fixed annual gas supply charge",
		value:       func(c *Config) *float64 { return &c.GasStanding },
		override:    func(o *Overrides) **float64 { return &o.GasStanding },
	},
	{
		Name: "elec_standing", Alias: "elecStanding", Unit: "per year",
		Description: "Fixed annual electricity supply charge",
		value:       func(c *Config) *float64 { return &c.ElecStanding },
		override:    func(o *Overrides) **float64 { return &o.ElecStanding },
	},
	{
		Name: "boiler_efficiency", Alias: "boilerEfficiency", Unit: "fraction",
		Description: "Gas-to-heat conversion efficiency",
		value:       func(c *Config) *float64 { return &c.BoilerEfficiency },
		override:    func(o *Overrides) **float64 { return &o.BoilerEfficiency },
	},
	{
		Name: "cop", Alias: "cop", Unit: "ratio",
		Description: "Heat pump coefficient of performance",
		value:       func(c *Config) *float64 { return &c.COP },
		override:    func(o *Overrides) **float64 { return &o.COP },
	},
	{
		Name: "install_cost", Alias: "installCost", Unit: "amount",
		Description: "Upfront heat pump installation cost",
		value:       func(c *Config) *float64 { return &c.InstallCost },
		override:    func(o *Overrides) **float64 { return &o.InstallCost },
	},
	{
		Name: "bus_grant", Alias: "busGrant", Unit: "amount",
		Description: "Flat grant subtracted from the install cost",
		value:       func(c *Config) *float64 { return &c.BUSGrant },
		override:    func(o *Overrides) **float64 { return &o.BUSGrant },
	},
	{
		Name: "solar_generation", Alias: "solarGeneration", Unit: "kWh/year",
		Description: "Annual solar electricity production",
		value:       func(c *Config) *float64 { return &c.SolarGeneration },
		override:    func(o *Overrides) **float64 { return &o.SolarGeneration },
	},
	{
		Name: "boiler_lifespan", Alias: "boilerLifespan", Unit: "years",
		Description: "Expected gas boiler lifespan",
		value:       func(c *Config) *float64 { return &c.BoilerLifespan },
		override:    func(o *Overrides) **float64 { return &o.BoilerLifespan },
	},
	{
		Name: "heat_pump_lifespan", Alias: "heatPumpLifespan", Unit: "years",
		Description: "Expected heat pump lifespan",
		value:       func(c *Config) *float64 { return &c.HeatPumpLifespan },
		override:    func(o *Overrides) **float64 { return &o.HeatPumpLifespan },
	},
}

// Fields returns the catalog of Config fields in declaration order.
func Fields() []Field {
	return append([]Field(nil), fieldCatalog...)
}

// FieldNames returns the canonical field names, sorted.
func FieldNames() []string {
	names := make([]string, 0, len(fieldCatalog))
	for _, f := range fieldCatalog {
		names = append(names, f.Name)
	}
	sort.Strings(names)
	return names
}

// LookupField finds a field by canonical name or camelCase alias.
// Matching ignores case and treats '-' like '_'.
func LookupField(name string) (Field, bool) {
	key := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(name), "-", "_"))
	for _, f := range fieldCatalog {
		if key == f.Name || key == strings.ToLower(f.Alias) {
			return f, true
		}
	}
	return Field{}, false
}
