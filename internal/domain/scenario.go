package domain

// Configuration is the top-level structure of a scenario file: a base block
// applied on top of the defaults, and any number of named variations.
type Configuration struct {
	Base      Overrides  `yaml:"base" json:"base"`
	Scenarios []Scenario `yaml:"scenarios" json:"scenarios" validate:"unique=Name,dive"`
}

// Scenario is a named set of overrides applied on top of the base.
type Scenario struct {
	Name        string    `yaml:"name" json:"name" validate:"required"`
	Description string    `yaml:"description,omitempty" json:"description,omitempty"`
	Overrides   Overrides `yaml:"overrides" json:"overrides"`
}

// ScenarioResult pairs an effective configuration with its report.
type ScenarioResult struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Config      Config `json:"config" yaml:"config"`
	Report      Report `json:"report" yaml:"report"`
}

// ScenarioComparison holds the base result followed by every scenario.
type ScenarioComparison struct {
	Base      ScenarioResult   `json:"base" yaml:"base"`
	Scenarios []ScenarioResult `json:"scenarios" yaml:"scenarios"`
}

// All returns the base result followed by the scenarios.
func (sc *ScenarioComparison) All() []ScenarioResult {
	all := make([]ScenarioResult, 0, len(sc.Scenarios)+1)
	all = append(all, sc.Base)
	return append(all, sc.Scenarios...)
}

// FindScenario looks a scenario up by name.
func (c *Configuration) FindScenario(name string) (*Scenario, bool) {
	for i := range c.Scenarios {
		if c.Scenarios[i].Name == name {
			return &c.Scenarios[i], true
		}
	}
	return nil, false
}
