package output

import (
	"encoding/json"

	"github.com/rgehrsitz/hpcalc/internal/domain"
	"gopkg.in/yaml.v3"
)

// JSONFormatter writes the comparison as JSON. Non-finite figures become null.
type JSONFormatter struct {
	Pretty bool
}

func (j JSONFormatter) Name() string { return "json" }

func (j JSONFormatter) Format(results *domain.ScenarioComparison) ([]byte, error) {
	if j.Pretty {
		return json.MarshalIndent(results, "", "  ")
	}
	return json.Marshal(results)
}

// YAMLFormatter writes the comparison as YAML. Non-finite figures print as .inf or .nan.
type YAMLFormatter struct{}

func (y YAMLFormatter) Name() string { return "yaml" }

func (y YAMLFormatter) Format(results *domain.ScenarioComparison) ([]byte, error) {
	return yaml.Marshal(results)
}
