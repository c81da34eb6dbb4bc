package transform

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// TransformRegistry provides a central registry for all available transforms.
// It enables creation of transforms from string parameters, useful for CLI commands.
type TransformRegistry struct {
	factories map[string]TransformFactory
}

// TransformFactory is a function that creates a transform from parameters.
type TransformFactory func(params map[string]string) (ScenarioTransform, error)

// NewTransformRegistry creates a new registry with all built-in transforms registered.
func NewTransformRegistry() *TransformRegistry {
	registry := &TransformRegistry{
		factories: make(map[string]TransformFactory),
	}

	registry.Register("set_parameter", createSetParameter)
	registry.Register("scale_parameter", createScaleParameter)
	registry.Register("adjust_parameter", createAdjustParameter)
	registry.Register("add_solar", createAddSolar)
	registry.Register("remove_grant", createRemoveGrant)

	return registry
}

// Register adds a transform factory to the registry.
func (r *TransformRegistry) Register(name string, factory TransformFactory) {
	r.factories[name] = factory
}

// Create creates a transform by name with the given parameters.
func (r *TransformRegistry) Create(name string, params map[string]string) (ScenarioTransform, error) {
	factory, exists := r.factories[name]
	if !exists {
		return nil, fmt.Errorf("unknown transform: %s", name)
	}

	return factory(params)
}

// List returns the names of all registered transforms, sorted.
func (r *TransformRegistry) List() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ParseTransformSpec parses a transform specification string.
// Format: "transform_name:param1=value1,param2=value2"
// Example: "scale_parameter:field=gas_price,factor=1.2"
// Transforms without parameters may omit the colon ("remove_grant").
func (r *TransformRegistry) ParseTransformSpec(spec string) (ScenarioTransform, error) {
	parts := strings.SplitN(spec, ":", 2)
	name := strings.TrimSpace(parts[0])
	if name == "" {
		return nil, fmt.Errorf("invalid transform spec format, expected 'name:params', got: %s", spec)
	}

	params := make(map[string]string)
	if len(parts) == 2 {
		paramsStr := strings.TrimSpace(parts[1])
		if paramsStr != "" {
			for _, paramPair := range strings.Split(paramsStr, ",") {
				kv := strings.SplitN(paramPair, "=", 2)
				if len(kv) != 2 {
					return nil, fmt.Errorf("invalid parameter format, expected 'key=value', got: %s", paramPair)
				}
				params[strings.TrimSpace(kv[0])] = strings.TrimSpace(kv[1])
			}
		}
	}

	return r.Create(name, params)
}

// Factory functions for each transform

func createSetParameter(params map[string]string) (ScenarioTransform, error) {
	field, ok := params["field"]
	if !ok {
		return nil, fmt.Errorf("set_parameter requires 'field' parameter")
	}

	value, err := floatParam(params, "set_parameter", "value")
	if err != nil {
		return nil, err
	}

	return &SetParameter{Field: field, Value: value}, nil
}

func createScaleParameter(params map[string]string) (ScenarioTransform, error) {
	field, ok := params["field"]
	if !ok {
		return nil, fmt.Errorf("scale_parameter requires 'field' parameter")
	}

	factor, err := floatParam(params, "scale_parameter", "factor")
	if err != nil {
		return nil, err
	}

	return &ScaleParameter{Field: field, Factor: factor}, nil
}

func createAdjustParameter(params map[string]string) (ScenarioTransform, error) {
	field, ok := params["field"]
	if !ok {
		return nil, fmt.Errorf("adjust_parameter requires 'field' parameter")
	}

	delta, err := floatParam(params, "adjust_parameter", "delta")
	if err != nil {
		return nil, err
	}

	return &AdjustParameter{Field: field, Delta: delta}, nil
}

func createAddSolar(params map[string]string) (ScenarioTransform, error) {
	kw, err := floatParam(params, "add_solar", "kw")
	if err != nil {
		return nil, err
	}

	return &AddSolar{KW: kw}, nil
}

func createRemoveGrant(params map[string]string) (ScenarioTransform, error) {
	return &RemoveGrant{}, nil
}

func floatParam(params map[string]string, transform, key string) (float64, error) {
	raw, ok := params[key]
	if !ok {
		return 0, fmt.Errorf("%s requires '%s' parameter", transform, key)
	}

	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return v, nil
}
