package transform

import (
	"errors"
	"testing"

	"github.com/rgehrsitz/hpcalc/internal/domain"
)

func TestApplyTransforms_EmptyTransforms(t *testing.T) {
	base := domain.DefaultConfig()

	result, err := ApplyTransforms(base, nil)
	if err != nil {
		t.Fatalf("Expected no error for empty transforms, got: %v", err)
	}

	if result != base {
		t.Error("Expected result to equal base")
	}
}

func TestApplyTransforms_Sequence(t *testing.T) {
	base := domain.DefaultConfig()
	transforms := []ScenarioTransform{
		&SetParameter{Field: "gas_price", Value: 0.05},
		&ScaleParameter{Field: "gas_price", Factor: 2},
		&AddSolar{KW: 2},
		&RemoveGrant{},
	}

	result, err := ApplyTransforms(base, transforms)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if result.GasPrice != 0.1 {
		t.Errorf("Expected gas price 0.1, got %v", result.GasPrice)
	}
	if result.SolarGeneration != 1800 {
		t.Errorf("Expected solar generation 1800, got %v", result.SolarGeneration)
	}
	if result.BUSGrant != 0 {
		t.Errorf("Expected grant removed, got %v", result.BUSGrant)
	}

	// Original should be unchanged
	if base != domain.DefaultConfig() {
		t.Error("Base config was modified")
	}
}

func TestApplyTransforms_NilTransform(t *testing.T) {
	_, err := ApplyTransforms(domain.DefaultConfig(), []ScenarioTransform{&RemoveGrant{}, nil})
	if err == nil {
		t.Error("Expected error for nil transform, got nil")
	}
}

func TestApplyTransforms_ValidationFailureReturnsBase(t *testing.T) {
	base := domain.DefaultConfig()
	transforms := []ScenarioTransform{
		&RemoveGrant{},
		&SetParameter{Field: "loft_depth", Value: 300},
	}

	result, err := ApplyTransforms(base, transforms)
	if err == nil {
		t.Fatal("Expected validation error, got nil")
	}
	if result != base {
		t.Error("Expected base config back on failure")
	}

	var te *TransformError
	if !errors.As(err, &te) {
		t.Fatalf("Expected TransformError, got %T", err)
	}
	if te.Operation != "validate" {
		t.Errorf("Expected validate operation, got %s", te.Operation)
	}
	if !errors.Is(err, domain.ErrUnknownField) {
		t.Error("Expected error to wrap ErrUnknownField")
	}
}

func TestSetParameter(t *testing.T) {
	tr := &SetParameter{Field: "installCost", Value: 9000}

	if err := tr.Validate(domain.DefaultConfig()); err != nil {
		t.Fatalf("Expected alias to validate, got: %v", err)
	}

	result, err := tr.Apply(domain.DefaultConfig())
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if result.InstallCost != 9000 {
		t.Errorf("Expected install cost 9000, got %v", result.InstallCost)
	}
}

func TestScaleParameter_Validate(t *testing.T) {
	tests := []struct {
		name    string
		factor  float64
		wantErr bool
	}{
		{"rise", 1.2, false},
		{"zero", 0, false},
		{"negative", -1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := &ScaleParameter{Field: "elec_price", Factor: tt.factor}
			err := tr.Validate(domain.DefaultConfig())
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestAdjustParameter(t *testing.T) {
	tr := &AdjustParameter{Field: "cop", Delta: -0.5}

	result, err := tr.Apply(domain.DefaultConfig())
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if result.COP != 3.0 {
		t.Errorf("Expected COP 3.0, got %v", result.COP)
	}
	if tr.Description() != "Adjust cop by -0.5" {
		t.Errorf("Unexpected description: %s", tr.Description())
	}
}

func TestAddSolar(t *testing.T) {
	base := domain.DefaultConfig()
	base.SolarGeneration = 1000

	tr := &AddSolar{KW: 3}
	if err := tr.Validate(base); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	result, _ := tr.Apply(base)
	if result.SolarGeneration != 3700 {
		t.Errorf("Expected solar generation 3700, got %v", result.SolarGeneration)
	}

	if err := (&AddSolar{KW: 0}).Validate(base); err == nil {
		t.Error("Expected error for zero-size array")
	}
}

func TestTransformError(t *testing.T) {
	inner := errors.New("boom")
	err := NewTransformError("add_solar", "apply", "failed", inner)

	if err.Error() != "transform add_solar (apply): failed: boom" {
		t.Errorf("Unexpected message: %s", err.Error())
	}
	if !errors.Is(err, inner) {
		t.Error("Expected Unwrap to expose the cause")
	}

	plain := NewTransformError("remove_grant", "validate", "nothing to remove", nil)
	if plain.Error() != "transform remove_grant (validate): nothing to remove" {
		t.Errorf("Unexpected message: %s", plain.Error())
	}
}
