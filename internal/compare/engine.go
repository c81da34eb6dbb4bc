package compare

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/hpcalc/internal/calculation"
	"github.com/rgehrsitz/hpcalc/internal/domain"
	"github.com/rgehrsitz/hpcalc/internal/transform"
)

// CompareEngine orchestrates scenario comparison
type CompareEngine struct {
	CalcEngine        *calculation.CalculationEngine
	MetricsCalculator *MetricsCalculator
	TemplateRegistry  *transform.TemplateRegistry
}

// NewCompareEngine creates a new comparison engine
func NewCompareEngine(calcEngine *calculation.CalculationEngine) *CompareEngine {
	if calcEngine == nil {
		calcEngine = calculation.NewCalculationEngine()
	}
	return &CompareEngine{
		CalcEngine:        calcEngine,
		MetricsCalculator: NewMetricsCalculator(),
		TemplateRegistry:  transform.CreateBuiltInTemplates(),
	}
}

// CompareOptions configures comparison behavior
type CompareOptions struct {
	BaseScenarioName string   // Label for the base configuration
	Templates        []string // List of template names to apply
	ConfigPath       string   // Scenario file the base came from, for display
}

// Compare runs the base configuration and one alternative per template
func (ce *CompareEngine) Compare(
	ctx context.Context,
	base domain.Config,
	options CompareOptions,
) (*ComparisonSet, error) {

	baseName := options.BaseScenarioName
	if baseName == "" {
		baseName = calculation.BaseScenarioName
	}

	baseResult, err := ce.CalcEngine.RunScenario(ctx, base, domain.Scenario{Name: baseName})
	if err != nil {
		return nil, fmt.Errorf("failed to calculate base scenario: %w", err)
	}
	baseMetrics := ce.MetricsCalculator.CalculateMetrics(baseResult)

	alternatives := []ComparisonResult{}

	for _, templateName := range options.Templates {
		template, ok := ce.TemplateRegistry.Get(templateName)
		if !ok {
			return nil, fmt.Errorf("template %s not found", templateName)
		}

		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("comparison cancelled: %w", err)
		}

		modified, err := transform.ApplyTemplate(base, template)
		if err != nil {
			return nil, fmt.Errorf("failed to apply template %s: %w", templateName, err)
		}

		altMetrics := ce.MetricsCalculator.CalculateMetrics(domain.ScenarioResult{
			Name:        template.Name,
			Description: template.Description,
			Config:      modified,
			Report:      ce.CalcEngine.Run(modified),
		})
		alternatives = append(alternatives, ce.MetricsCalculator.CalculateComparison(altMetrics, baseMetrics))
	}

	compSet := &ComparisonSet{
		BaseScenarioName:   baseName,
		BaseResult:         &baseMetrics,
		AlternativeResults: alternatives,
		ConfigPath:         options.ConfigPath,
	}

	compSet.Recommendations = GenerateRecommendations(compSet)

	return compSet, nil
}

// CompareScenarios compares named scenarios from a scenario file against the
// base. With no names, every scenario is compared.
func (ce *CompareEngine) CompareScenarios(
	ctx context.Context,
	base domain.Config,
	scenarios []domain.Scenario,
	names []string,
) (*ComparisonSet, error) {

	selected := scenarios
	if len(names) > 0 {
		selected = make([]domain.Scenario, 0, len(names))
		for _, name := range names {
			sc, ok := findScenario(scenarios, name)
			if !ok {
				return nil, fmt.Errorf("alternative scenario %s not found", name)
			}
			selected = append(selected, sc)
		}
	}

	comparison, err := ce.CalcEngine.RunScenarios(ctx, base, selected)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate scenarios: %w", err)
	}

	baseMetrics := ce.MetricsCalculator.CalculateMetrics(comparison.Base)
	alternatives := make([]ComparisonResult, 0, len(comparison.Scenarios))
	for _, result := range comparison.Scenarios {
		altMetrics := ce.MetricsCalculator.CalculateMetrics(result)
		alternatives = append(alternatives, ce.MetricsCalculator.CalculateComparison(altMetrics, baseMetrics))
	}

	compSet := &ComparisonSet{
		BaseScenarioName:   comparison.Base.Name,
		BaseResult:         &baseMetrics,
		AlternativeResults: alternatives,
	}

	compSet.Recommendations = GenerateRecommendations(compSet)

	return compSet, nil
}

func findScenario(scenarios []domain.Scenario, name string) (domain.Scenario, bool) {
	for _, sc := range scenarios {
		if sc.Name == name {
			return sc, true
		}
	}
	return domain.Scenario{}, false
}
