package config

import (
	"fmt"

	"github.com/rgehrsitz/hpcalc/internal/domain"
)

// Sources holds the override layers that sit on top of the defaults, from
// lowest to highest precedence. File may be nil.
type Sources struct {
	File *domain.Configuration
	Env  domain.Overrides
	Set  domain.Overrides
}

// Overrides merges the layers below any scenario block.
func (s Sources) Overrides() domain.Overrides {
	var merged domain.Overrides
	if s.File != nil {
		merged = s.File.Base.Clone()
	}
	return merged.Merge(s.Env).Merge(s.Set)
}

// Base returns the effective configuration before any scenario is applied.
func (s Sources) Base() domain.Config {
	return s.Overrides().Apply(domain.DefaultConfig())
}

// Scenarios returns the scenarios of the file, if any.
func (s Sources) Scenarios() []domain.Scenario {
	if s.File == nil {
		return nil
	}
	return s.File.Scenarios
}

// Scenario returns the effective configuration of a named scenario; an
// empty name returns the base.
func (s Sources) Scenario(name string) (domain.Config, error) {
	base := s.Base()
	if name == "" {
		return base, nil
	}
	if s.File == nil {
		return domain.Config{}, fmt.Errorf("scenario %q requested but no configuration file given", name)
	}
	scenario, ok := s.File.FindScenario(name)
	if !ok {
		return domain.Config{}, fmt.Errorf("scenario %q not found", name)
	}
	if scenario.Overrides.IsEmpty() {
		return base, nil
	}
	return scenario.Overrides.Apply(base), nil
}

// Load gathers every layer: the optional file, HPCALC_* variables, and --set
// arguments. A named envFile is read without touching the process
// environment and sits below it; otherwise ./.env is loaded when present.
func Load(file, envFile string, set []string) (Sources, error) {
	var src Sources

	if file != "" {
		cfg, err := NewInputParser().LoadFromFile(file)
		if err != nil {
			return Sources{}, err
		}
		src.File = cfg
	}

	var err error
	if envFile != "" {
		if src.Env, err = ReadEnvFile(envFile); err != nil {
			return Sources{}, err
		}
	} else if err = LoadDotEnv(); err != nil {
		return Sources{}, err
	}
	process, err := LoadEnvOverrides()
	if err != nil {
		return Sources{}, err
	}
	src.Env = src.Env.Merge(process)

	if src.Set, err = ParseSetFlags(set); err != nil {
		return Sources{}, err
	}
	return src, nil
}
