package server

import (
	"github.com/rgehrsitz/hpcalc/internal/breakeven"
	"github.com/rgehrsitz/hpcalc/internal/calculation"
	"github.com/rgehrsitz/hpcalc/internal/domain"
)

// CalculateResponse is the body of POST /api/v1/calculate.
type CalculateResponse struct {
	Config domain.Config `json:"config"`
	Report domain.Report `json:"report"`
}

// DefaultsResponse is the body of GET /api/v1/defaults.
type DefaultsResponse struct {
	Config domain.Config  `json:"config"`
	Fields []domain.Field `json:"fields"`
}

// CompareRequest runs templates against the overridden defaults.
type CompareRequest struct {
	Overrides domain.Overrides `json:"overrides"`
	Templates []string         `json:"templates" validate:"required,min=1,dive,required"`
}

// BreakEvenRequest solves one field, or every field with a default range
// when Field and Fields are both empty.
type BreakEvenRequest struct {
	Overrides   domain.Overrides `json:"overrides"`
	Field       string           `json:"field"`
	Fields      []string         `json:"fields" validate:"omitempty,dive,required"`
	Min         *float64         `json:"min" validate:"required_with=Max"`
	Max         *float64         `json:"max" validate:"required_with=Min"`
	Goal        string           `json:"goal" validate:"omitempty,oneof=break_even payback"`
	Tariff      string           `json:"tariff" validate:"omitempty,oneof=standard smart"`
	TargetYears float64          `json:"targetYears" validate:"required_if=Goal payback,gte=0"`
}

func (r BreakEvenRequest) goal() breakeven.Goal {
	if g, ok := breakeven.ParseGoal(r.Goal); ok {
		return g
	}
	return breakeven.GoalBreakEven
}

func (r BreakEvenRequest) tariff() calculation.Tariff {
	if t, ok := calculation.ParseTariff(r.Tariff); ok {
		return t
	}
	return calculation.TariffSmart
}

func (r BreakEvenRequest) solverRequest(base domain.Config) breakeven.Request {
	req := breakeven.Request{
		Base:        base,
		Field:       r.Field,
		Goal:        r.goal(),
		Tariff:      r.tariff(),
		TargetYears: r.TargetYears,
	}
	if r.Min != nil && r.Max != nil {
		req.Range = &breakeven.Range{Min: *r.Min, Max: *r.Max}
	}
	return req
}

// ProjectResponse is the body of POST /api/v1/project.
type ProjectResponse struct {
	Config     domain.Config     `json:"config"`
	Projection domain.Projection `json:"projection"`
}
