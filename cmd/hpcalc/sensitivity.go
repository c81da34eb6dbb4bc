package main

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/rgehrsitz/hpcalc/internal/calculation"
	"github.com/rgehrsitz/hpcalc/internal/domain"
	"github.com/rgehrsitz/hpcalc/internal/output"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func sensitivityCmd(a *app) *cobra.Command {
	var (
		parameters   []string
		rangeSpec    string
		steps        int
		parameterSet string
		analysisType string
		format       string
	)

	cmd := &cobra.Command{
		Use:   "sensitivity",
		Short: "Sweep inputs and see how savings and the recommendation respond",
		Long: `Sweep one or more inputs across a range to test how robust the result is.

Examples:
  # Single parameter sweep
  hpcalc sensitivity --parameter hp_tariff_price --range 0.10-0.24 --steps 8

  # Multiple parameter sweep
  hpcalc sensitivity --parameter gas_price:0.04-0.10:7 --parameter cop:2.5-4.5:5

  # Matrix analysis
  hpcalc sensitivity --parameter gas_price:0.04-0.10:4 --parameter cop:2.5-4.5:5 --analysis-type matrix

  # Predefined parameter sets
  hpcalc sensitivity --parameter-set common`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var params []domain.SensitivityParameter
			switch {
			case parameterSet != "":
				set, err := predefinedParameterSet(parameterSet)
				if err != nil {
					return err
				}
				params = set
			case rangeSpec != "":
				if len(parameters) != 1 {
					return fmt.Errorf("--range needs exactly one --parameter name")
				}
				param, err := parseSingleParameter(parameters[0], rangeSpec, steps)
				if err != nil {
					return err
				}
				params = []domain.SensitivityParameter{param}
			case len(parameters) > 0:
				for _, spec := range parameters {
					param, err := parseParameterSpec(spec)
					if err != nil {
						return err
					}
					params = append(params, param)
				}
			default:
				return fmt.Errorf("must specify either --parameter, --parameter-set, or --range")
			}

			src, err := a.load()
			if err != nil {
				return err
			}
			base := src.Base()
			analyzer := calculation.NewSensitivityAnalyzerWithEngine(a.engine())

			var analysis interface{}
			switch strings.ToLower(analysisType) {
			case "matrix":
				if len(params) != 2 {
					return fmt.Errorf("matrix analysis needs exactly two parameters, got %d", len(params))
				}
				analysis, err = analyzer.AnalyzeParameterMatrix(cmd.Context(), base, params[0], params[1])
			case "single", "multi", "":
				if len(params) == 1 {
					analysis, err = analyzer.AnalyzeSingleParameter(cmd.Context(), base, params[0])
				} else {
					analysis, err = analyzer.AnalyzeMultipleParameters(cmd.Context(), base, params)
				}
			default:
				return fmt.Errorf("unknown analysis type: %s (valid: single, multi, matrix)", analysisType)
			}
			if err != nil {
				return fmt.Errorf("sensitivity analysis failed: %w", err)
			}

			text, err := output.NewSensitivityFormatter(format).FormatSensitivityAnalysis(analysis)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), strings.TrimRight(text, "\n"))
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&parameters, "parameter", nil, "Parameter to analyze (format: name:min-max:steps, or a name with --range)")
	cmd.Flags().StringVar(&rangeSpec, "range", "", "Range for single parameter analysis (format: min-max)")
	cmd.Flags().IntVar(&steps, "steps", 5, "Number of steps for parameter sweep")
	cmd.Flags().StringVar(&parameterSet, "parameter-set", "", "Use predefined parameter set (common, prices)")
	cmd.Flags().StringVar(&analysisType, "analysis-type", "single", "Analysis type (single, multi, matrix)")
	cmd.Flags().StringVarP(&format, "format", "f", "table", "Output format (table, csv, json)")
	return cmd
}

func predefinedParameterSet(name string) ([]domain.SensitivityParameter, error) {
	switch strings.ToLower(name) {
	case "common":
		return domain.GetCommonParameters(), nil
	case "prices":
		return domain.GetPriceParameters(), nil
	default:
		return nil, fmt.Errorf("unknown parameter set: %s (valid: common, prices)", name)
	}
}

// parseParameterSpec parses name:min-max:steps.
func parseParameterSpec(spec string) (domain.SensitivityParameter, error) {
	parts := strings.Split(spec, ":")
	if len(parts) != 3 {
		return domain.SensitivityParameter{}, fmt.Errorf("invalid parameter %q: expected name:min-max:steps", spec)
	}
	steps, err := strconv.Atoi(strings.TrimSpace(parts[2]))
	if err != nil {
		return domain.SensitivityParameter{}, fmt.Errorf("invalid parameter %q: steps must be an integer", spec)
	}
	return parseSingleParameter(parts[0], parts[1], steps)
}

func parseSingleParameter(name, rangeSpec string, steps int) (domain.SensitivityParameter, error) {
	field, ok := domain.LookupField(name)
	if !ok {
		return domain.SensitivityParameter{}, fmt.Errorf("%w: %s", domain.ErrUnknownField, name)
	}
	if steps < 2 {
		return domain.SensitivityParameter{}, fmt.Errorf("parameter %s: at least 2 steps are needed, got %d", name, steps)
	}
	lo, hi, err := parseBounds(rangeSpec)
	if err != nil {
		return domain.SensitivityParameter{}, fmt.Errorf("parameter %s: %w", name, err)
	}
	return domain.SensitivityParameter{
		Name:     field.Name,
		MinValue: decimal.NewFromFloat(lo),
		MaxValue: decimal.NewFromFloat(hi),
		Steps:    steps,
	}, nil
}

// parseBounds splits "min-max"; a leading minus belongs to min.
func parseBounds(spec string) (float64, float64, error) {
	spec = strings.TrimSpace(spec)
	i := -1
	if len(spec) > 1 {
		i = strings.Index(spec[1:], "-")
	}
	if i < 0 {
		return 0, 0, fmt.Errorf("invalid range %q: expected min-max", spec)
	}
	lo, err := parseFloat(spec[:i+1])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid range %q: %w", spec, err)
	}
	hi, err := parseFloat(spec[i+2:])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid range %q: %w", spec, err)
	}
	if lo >= hi {
		return 0, 0, fmt.Errorf("invalid range %q: min must be below max", spec)
	}
	return lo, hi, nil
}

func parseFloat(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("%q is not a number", strings.TrimSpace(s))
	}
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, fmt.Errorf("%q is not a finite number", strings.TrimSpace(s))
	}
	return v, nil
}
