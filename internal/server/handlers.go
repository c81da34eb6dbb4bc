package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rgehrsitz/hpcalc/internal/breakeven"
	"github.com/rgehrsitz/hpcalc/internal/calculation"
	"github.com/rgehrsitz/hpcalc/internal/compare"
	"github.com/rgehrsitz/hpcalc/internal/config"
	"github.com/rgehrsitz/hpcalc/internal/domain"
	"go.uber.org/zap"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	_ = WriteOK(w, map[string]string{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleDefaults(w http.ResponseWriter, r *http.Request) {
	_ = WriteOK(w, DefaultsResponse{
		Config: domain.DefaultConfig(),
		Fields: domain.Fields(),
	})
}

func (s *Server) handleTemplates(w http.ResponseWriter, r *http.Request) {
	_ = WriteOK(w, s.compare.TemplateRegistry.Templates())
}

// handleCalculate takes a partial config, camelCase keys, and returns the
// report for it. An empty body computes the defaults.
func (s *Server) handleCalculate(w http.ResponseWriter, r *http.Request) {
	var overrides domain.Overrides
	if !s.decode(w, r, &overrides) {
		return
	}

	cfg := overrides.Apply(domain.DefaultConfig())
	_ = WriteOK(w, CalculateResponse{Config: cfg, Report: s.calc.Run(cfg)})
}

func (s *Server) handleProject(w http.ResponseWriter, r *http.Request) {
	var overrides domain.Overrides
	if !s.decode(w, r, &overrides) {
		return
	}

	cfg := overrides.Apply(domain.DefaultConfig())
	_ = WriteOK(w, ProjectResponse{Config: cfg, Projection: calculation.Project(cfg)})
}

func (s *Server) handleCompare(w http.ResponseWriter, r *http.Request) {
	var req CompareRequest
	if !s.decode(w, r, &req) || !s.validate(w, &req) {
		return
	}

	unknown := map[string]interface{}{}
	for i, name := range req.Templates {
		if _, ok := s.compare.TemplateRegistry.Get(name); !ok {
			unknown[fmt.Sprintf("templates[%d]", i)] = fmt.Sprintf("unknown template %q", name)
		}
	}
	if len(unknown) > 0 {
		_ = WriteBadRequest(w, "Unknown template", unknown)
		return
	}

	set, err := s.compare.Compare(r.Context(), req.Overrides.Apply(domain.DefaultConfig()), compare.CompareOptions{
		Templates: req.Templates,
	})
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	_ = WriteOK(w, set)
}

func (s *Server) handleBreakEven(w http.ResponseWriter, r *http.Request) {
	var req BreakEvenRequest
	if !s.decode(w, r, &req) || !s.validate(w, &req) {
		return
	}
	base := req.Overrides.Apply(domain.DefaultConfig())

	if req.Field != "" {
		result, err := s.solver.Solve(r.Context(), req.solverRequest(base))
		if err != nil {
			s.breakEvenError(w, r, err)
			return
		}
		_ = WriteOK(w, result)
		return
	}

	multi, err := s.solver.SolveFields(r.Context(), base, req.Fields, req.goal(), req.tariff(), req.TargetYears)
	if err != nil {
		s.breakEvenError(w, r, err)
		return
	}
	_ = WriteOK(w, multi)
}

// decode reads a JSON body into v. Unknown keys are rejected; an empty body
// leaves v untouched.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()

	if err := dec.Decode(v); err != nil && !errors.Is(err, io.EOF) {
		_ = WriteBadRequest(w, "Invalid JSON body", map[string]interface{}{"body": err.Error()})
		return false
	}
	return true
}

func (s *Server) validate(w http.ResponseWriter, v interface{}) bool {
	err := s.parser.ValidateStruct(v)
	if err == nil {
		return true
	}

	details := map[string]interface{}{}
	for field, reason := range config.GetValidationFields(err) {
		details[field] = reason
	}
	_ = WriteBadRequest(w, "Validation failed", details)
	return false
}

func (s *Server) breakEvenError(w http.ResponseWriter, r *http.Request, err error) {
	var be *breakeven.BreakEvenError
	if !errors.As(err, &be) {
		s.internalError(w, r, err)
		return
	}

	details := map[string]interface{}{"operation": be.Operation}
	if be.Operation == "validate_request" {
		_ = WriteBadRequest(w, be.Error(), details)
		return
	}
	if be.Cause != nil {
		s.internalError(w, r, err)
		return
	}
	_ = WriteError(w, http.StatusUnprocessableEntity, be.Error(), details)
}

func (s *Server) internalError(w http.ResponseWriter, r *http.Request, err error) {
	s.logger.Error("request failed", zap.String("path", r.URL.Path), zap.Error(err))
	_ = WriteError(w, http.StatusInternalServerError, "Internal server error", nil)
}
