package transform

import (
	"fmt"

	"github.com/rgehrsitz/hpcalc/internal/domain"
)

// ScenarioTransform defines the interface for all configuration transformations.
// Transforms are composable operations that modify a configuration in predictable
// ways, enabling scenario comparison and named what-if templates.
type ScenarioTransform interface {
	// Apply transforms a base configuration and returns the modified copy.
	// Returns an error if the transformation cannot be applied.
	Apply(base domain.Config) (domain.Config, error)

	// Name returns a short identifier for this transform (e.g., "add_solar").
	Name() string

	// Description returns a human-readable description of what this transform does.
	Description() string

	// Validate checks if the transform parameters are valid without applying it.
	Validate(base domain.Config) error
}

// ApplyTransforms applies a sequence of transforms to a base configuration.
// Transforms are applied in order, each receiving the output of the previous one.
// Config is a value type, so base is never modified.
func ApplyTransforms(base domain.Config, transforms []ScenarioTransform) (domain.Config, error) {
	current := base

	for i, transform := range transforms {
		if transform == nil {
			return base, fmt.Errorf("transform at index %d is nil", i)
		}

		// Validate before applying
		if err := transform.Validate(current); err != nil {
			return base, fmt.Errorf("transform %s validation failed: %w", transform.Name(), err)
		}

		next, err := transform.Apply(current)
		if err != nil {
			return base, fmt.Errorf("transform %s failed: %w", transform.Name(), err)
		}

		current = next
	}

	return current, nil
}

// TransformError represents an error that occurred during transformation.
type TransformError struct {
	TransformName string
	Operation     string
	Reason        string
	Err           error
}

func (e *TransformError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("transform %s (%s): %s: %v", e.TransformName, e.Operation, e.Reason, e.Err)
	}
	return fmt.Sprintf("transform %s (%s): %s", e.TransformName, e.Operation, e.Reason)
}

func (e *TransformError) Unwrap() error {
	return e.Err
}

// NewTransformError creates a new TransformError.
func NewTransformError(transformName, operation, reason string, err error) error {
	return &TransformError{
		TransformName: transformName,
		Operation:     operation,
		Reason:        reason,
		Err:           err,
	}
}
