package transform

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rgehrsitz/hpcalc/internal/domain"
)

// TemplateRegistry manages built-in scenario templates
type TemplateRegistry struct {
	templates map[string]Template
}

// Template represents a named collection of transforms
type Template struct {
	Name        string              `json:"name" yaml:"name"`
	Description string              `json:"description" yaml:"description"`
	Transforms  []ScenarioTransform `json:"-" yaml:"-"`
}

// NewTemplateRegistry creates an empty template registry
func NewTemplateRegistry() *TemplateRegistry {
	return &TemplateRegistry{
		templates: make(map[string]Template),
	}
}

// Register adds a template to the registry
func (tr *TemplateRegistry) Register(t Template) {
	tr.templates[strings.ToLower(t.Name)] = t
}

// Get retrieves a template by name (case-insensitive)
func (tr *TemplateRegistry) Get(name string) (Template, bool) {
	t, ok := tr.templates[strings.ToLower(name)]
	return t, ok
}

// List returns all registered template names, sorted
func (tr *TemplateRegistry) List() []string {
	names := make([]string, 0, len(tr.templates))
	for name := range tr.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Templates returns every registered template ordered by name
func (tr *TemplateRegistry) Templates() []Template {
	out := make([]Template, 0, len(tr.templates))
	for _, name := range tr.List() {
		out = append(out, tr.templates[name])
	}
	return out
}

// CreateBuiltInTemplates creates a template registry with common what-if scenarios
func CreateBuiltInTemplates() *TemplateRegistry {
	registry := NewTemplateRegistry()

	// Grants and install cost
	registry.Register(Template{
		Name:        "no_grant",
		Description: "Install without the Boiler Upgrade Scheme grant",
		Transforms:  []ScenarioTransform{&RemoveGrant{}},
	})

	registry.Register(Template{
		Name:        "cheap_install",
		Description: "Install quote of 10,000 instead of the typical 12,000",
		Transforms: []ScenarioTransform{
			&SetParameter{Field: "install_cost", Value: 10000},
		},
	})

	// Solar
	registry.Register(Template{
		Name:        "solar_3kw",
		Description: "Add a 3 kW solar array (2,700 kWh/year)",
		Transforms:  []ScenarioTransform{&AddSolar{KW: 3}},
	})

	registry.Register(Template{
		Name:        "solar_4kw",
		Description: "Add a 4 kW solar array (3,600 kWh/year)",
		Transforms:  []ScenarioTransform{&AddSolar{KW: 4}},
	})

	// Energy prices
	registry.Register(Template{
		Name:        "gas_price_up_20",
		Description: "Gas unit price rises 20%",
		Transforms: []ScenarioTransform{
			&ScaleParameter{Field: "gas_price", Factor: 1.2},
		},
	})

	registry.Register(Template{
		Name:        "elec_price_up_20",
		Description: "Standard and heat pump electricity prices rise 20%",
		Transforms: []ScenarioTransform{
			&ScaleParameter{Field: "elec_price", Factor: 1.2},
			&ScaleParameter{Field: "hp_tariff_price", Factor: 1.2},
		},
	})

	// Heat pump performance
	registry.Register(Template{
		Name:        "high_cop",
		Description: "Well-designed low flow temperature system (COP 4.0)",
		Transforms: []ScenarioTransform{
			&SetParameter{Field: "cop", Value: 4.0},
		},
	})

	registry.Register(Template{
		Name:        "low_cop",
		Description: "Poorly insulated home or high flow temperature (COP 2.8)",
		Transforms: []ScenarioTransform{
			&SetParameter{Field: "cop", Value: 2.8},
		},
	})

	// Household
	registry.Register(Template{
		Name:        "high_demand",
		Description: "Heating demand 25% above the base",
		Transforms: []ScenarioTransform{
			&ScaleParameter{Field: "gas_usage", Factor: 1.25},
		},
	})

	return registry
}

// ApplyTemplate applies a template to a base configuration
func ApplyTemplate(base domain.Config, template Template) (domain.Config, error) {
	return ApplyTransforms(base, template.Transforms)
}

// ParseTemplateList parses a comma-separated list of template names
func ParseTemplateList(templateList string) []string {
	if templateList == "" {
		return nil
	}

	parts := strings.Split(templateList, ",")
	templates := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			templates = append(templates, trimmed)
		}
	}
	return templates
}

var templateCategories = []string{
	"Grants and Install Cost",
	"Solar",
	"Energy Prices",
	"Heat Pump Performance",
	"Household",
}

func templateCategory(name string) string {
	switch {
	case name == "no_grant" || strings.HasSuffix(name, "_install"):
		return "Grants and Install Cost"
	case strings.HasPrefix(name, "solar_"):
		return "Solar"
	case strings.Contains(name, "_price_"):
		return "Energy Prices"
	case strings.HasSuffix(name, "_cop"):
		return "Heat Pump Performance"
	default:
		return "Household"
	}
}

// GetTemplateHelp returns formatted help text for all templates
func GetTemplateHelp(registry *TemplateRegistry) string {
	if len(registry.templates) == 0 {
		return "No templates registered"
	}

	var sb strings.Builder
	sb.WriteString("Available Templates:\n\n")

	categories := make(map[string][]Template)
	for _, template := range registry.Templates() {
		category := templateCategory(template.Name)
		categories[category] = append(categories[category], template)
	}

	for _, category := range templateCategories {
		templates := categories[category]
		if len(templates) == 0 {
			continue
		}

		sb.WriteString(fmt.Sprintf("%s:\n", category))
		for _, t := range templates {
			sb.WriteString(fmt.Sprintf("  %-20s %s\n", t.Name, t.Description))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("Usage:\n")
	sb.WriteString("  hpcalc compare --with solar_3kw,no_grant\n")
	sb.WriteString("  hpcalc compare scenarios.yaml --with high_cop,low_cop\n")

	return sb.String()
}
