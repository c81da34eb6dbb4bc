package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/rgehrsitz/hpcalc/internal/domain"
	"gopkg.in/yaml.v3"
)

// InputParser handles parsing of scenario files
type InputParser struct {
	validate *validator.Validate
}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{validate: validator.New()}
}

// LoadFromFile loads a scenario file. YAML is expected; JSON parses too,
// being a subset of it.
func (ip *InputParser) LoadFromFile(filename string) (*domain.Configuration, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	config, err := ip.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return config, nil
}

// Parse decodes and validates a scenario file. Unknown keys are rejected so
// a misspelt field is reported rather than silently ignored. An empty
// document is a valid configuration with no overrides and no scenarios.
func (ip *InputParser) Parse(data []byte) (*domain.Configuration, error) {
	var config domain.Configuration

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&config); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := ip.ValidateConfiguration(&config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &config, nil
}

// ValidateConfiguration checks the file structure: every scenario is named
// and names are unique. Values must be finite but are never range-checked.
func (ip *InputParser) ValidateConfiguration(config *domain.Configuration) error {
	if err := ip.ValidateStruct(config); err != nil {
		return err
	}
	if err := checkFinite("base", config.Base); err != nil {
		return err
	}
	for _, s := range config.Scenarios {
		if err := checkFinite("scenario "+s.Name, s.Overrides); err != nil {
			return err
		}
	}
	return nil
}

func checkFinite(where string, o domain.Overrides) error {
	values := o.Values()
	for _, name := range domain.FieldNames() {
		v, ok := values[name]
		if ok && (math.IsInf(v, 0) || math.IsNaN(v)) {
			return fmt.Errorf("%s: %s is not a finite number", where, name)
		}
	}
	return nil
}

// ValidateStruct validates a struct using go-playground/validator
func (ip *InputParser) ValidateStruct(s interface{}) error {
	if err := ip.validate.Struct(s); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			return NewValidationError(validationErrors)
		}
		return err
	}
	return nil
}
