package transform

import (
	"fmt"
	"math"

	"github.com/rgehrsitz/hpcalc/internal/domain"
)

// SolarYieldPerKW is the assumed annual generation of one installed kW of
// panels, in kWh.
const SolarYieldPerKW = 900

// SetParameter sets one configuration field to an absolute value.
type SetParameter struct {
	Field string  // Canonical field name or alias
	Value float64 // The new value
}

func (sp *SetParameter) Name() string {
	return "set_parameter"
}

func (sp *SetParameter) Description() string {
	return fmt.Sprintf("Set %s to %g", sp.Field, sp.Value)
}

func (sp *SetParameter) Validate(base domain.Config) error {
	if _, ok := domain.LookupField(sp.Field); !ok {
		return NewTransformError(sp.Name(), "validate", fmt.Sprintf("field %q not recognised", sp.Field), domain.ErrUnknownField)
	}
	if math.IsNaN(sp.Value) {
		return NewTransformError(sp.Name(), "validate", "value must be a number", nil)
	}
	return nil
}

func (sp *SetParameter) Apply(base domain.Config) (domain.Config, error) {
	field, ok := domain.LookupField(sp.Field)
	if !ok {
		return base, NewTransformError(sp.Name(), "apply", fmt.Sprintf("field %q not recognised", sp.Field), domain.ErrUnknownField)
	}
	return field.With(base, sp.Value), nil
}

// ScaleParameter multiplies one configuration field by a factor.
// Useful for price rises and demand changes expressed as percentages.
type ScaleParameter struct {
	Field  string
	Factor float64 // 1.2 for a 20% rise
}

func (sc *ScaleParameter) Name() string {
	return "scale_parameter"
}

func (sc *ScaleParameter) Description() string {
	return fmt.Sprintf("Scale %s by %g", sc.Field, sc.Factor)
}

func (sc *ScaleParameter) Validate(base domain.Config) error {
	if _, ok := domain.LookupField(sc.Field); !ok {
		return NewTransformError(sc.Name(), "validate", fmt.Sprintf("field %q not recognised", sc.Field), domain.ErrUnknownField)
	}
	if sc.Factor < 0 || math.IsNaN(sc.Factor) || math.IsInf(sc.Factor, 0) {
		return NewTransformError(sc.Name(), "validate", fmt.Sprintf("factor must be a non-negative number, got %g", sc.Factor), nil)
	}
	return nil
}

func (sc *ScaleParameter) Apply(base domain.Config) (domain.Config, error) {
	field, ok := domain.LookupField(sc.Field)
	if !ok {
		return base, NewTransformError(sc.Name(), "apply", fmt.Sprintf("field %q not recognised", sc.Field), domain.ErrUnknownField)
	}
	return field.With(base, field.Get(base)*sc.Factor), nil
}

// AdjustParameter adds a signed delta to one configuration field.
type AdjustParameter struct {
	Field string
	Delta float64
}

func (ap *AdjustParameter) Name() string {
	return "adjust_parameter"
}

func (ap *AdjustParameter) Description() string {
	return fmt.Sprintf("Adjust %s by %+g", ap.Field, ap.Delta)
}

func (ap *AdjustParameter) Validate(base domain.Config) error {
	if _, ok := domain.LookupField(ap.Field); !ok {
		return NewTransformError(ap.Name(), "validate", fmt.Sprintf("field %q not recognised", ap.Field), domain.ErrUnknownField)
	}
	if math.IsNaN(ap.Delta) {
		return NewTransformError(ap.Name(), "validate", "delta must be a number", nil)
	}
	return nil
}

func (ap *AdjustParameter) Apply(base domain.Config) (domain.Config, error) {
	field, ok := domain.LookupField(ap.Field)
	if !ok {
		return base, NewTransformError(ap.Name(), "apply", fmt.Sprintf("field %q not recognised", ap.Field), domain.ErrUnknownField)
	}
	return field.With(base, field.Get(base)+ap.Delta), nil
}

// AddSolar adds a panel array of the given size to the annual solar generation.
type AddSolar struct {
	KW float64 // Installed peak capacity
}

func (as *AddSolar) Name() string {
	return "add_solar"
}

func (as *AddSolar) Description() string {
	return fmt.Sprintf("Add a %g kW solar array (%g kWh/year)", as.KW, as.Generation())
}

// Generation returns the annual output the array adds.
func (as *AddSolar) Generation() float64 {
	return as.KW * SolarYieldPerKW
}

func (as *AddSolar) Validate(base domain.Config) error {
	if as.KW <= 0 || math.IsNaN(as.KW) || math.IsInf(as.KW, 0) {
		return NewTransformError(as.Name(), "validate", fmt.Sprintf("array size must be positive, got %g", as.KW), nil)
	}
	return nil
}

func (as *AddSolar) Apply(base domain.Config) (domain.Config, error) {
	modified := base
	modified.SolarGeneration += as.Generation()
	return modified, nil
}

// RemoveGrant drops the Boiler Upgrade Scheme grant, for households that are
// not eligible or have already claimed it.
type RemoveGrant struct{}

func (rg *RemoveGrant) Name() string {
	return "remove_grant"
}

func (rg *RemoveGrant) Description() string {
	return "Remove the Boiler Upgrade Scheme grant"
}

func (rg *RemoveGrant) Validate(base domain.Config) error {
	return nil
}

func (rg *RemoveGrant) Apply(base domain.Config) (domain.Config, error) {
	modified := base
	modified.BUSGrant = 0
	return modified, nil
}
