package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/rgehrsitz/hpcalc/internal/breakeven"
	"github.com/rgehrsitz/hpcalc/internal/calculation"
	"github.com/spf13/cobra"
)

func breakEvenCmd(a *app) *cobra.Command {
	var (
		fields      []string
		goalName    string
		tariffName  string
		targetYears float64
		rangeSpec   string
		format      string
	)

	cmd := &cobra.Command{
		Use:   "break-even",
		Short: "Find the input value at which the heat pump breaks even",
		Long: `Solve for the value of one or more inputs at which the heat pump's annual
saving reaches zero, or at which payback equals a target number of years.

Examples:
  hpcalc break-even --field hp_tariff_price
  hpcalc break-even --field install_cost --goal payback --target-years 10
  hpcalc break-even --field cop --range 2-5 --tariff standard
  hpcalc break-even                      # every field with a default range`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			goal, ok := breakeven.ParseGoal(goalName)
			if !ok {
				return fmt.Errorf("unknown goal: %s (valid: break_even, payback)", goalName)
			}
			tariff, ok := calculation.ParseTariff(tariffName)
			if !ok {
				return fmt.Errorf("unknown tariff: %s (valid: smart, standard)", tariffName)
			}

			src, err := a.load()
			if err != nil {
				return err
			}
			solver := breakeven.NewDefaultSolver(a.engine())
			out := cmd.OutOrStdout()

			if len(fields) == 1 {
				req := breakeven.Request{
					Base:        src.Base(),
					Field:       fields[0],
					Goal:        goal,
					Tariff:      tariff,
					TargetYears: targetYears,
				}
				if rangeSpec != "" {
					r, err := parseRange(rangeSpec)
					if err != nil {
						return err
					}
					req.Range = &r
				}

				result, err := solver.Solve(cmd.Context(), req)
				if err != nil {
					return err
				}
				return writeBreakEven(out, format,
					func() string { return (&breakeven.TableFormatter{}).Format(result) },
					func() (string, error) { return (&breakeven.JSONFormatter{Pretty: true}).Format(result) })
			}

			if rangeSpec != "" {
				return fmt.Errorf("--range applies to a single --field")
			}
			multi, err := solver.SolveFields(cmd.Context(), src.Base(), fields, goal, tariff, targetYears)
			if err != nil {
				return err
			}
			return writeBreakEven(out, format,
				func() string { return (&breakeven.TableFormatter{}).FormatMulti(multi) },
				func() (string, error) { return (&breakeven.JSONFormatter{Pretty: true}).FormatMulti(multi) })
		},
	}

	cmd.Flags().StringSliceVar(&fields, "field", nil, "Field(s) to solve for (default: every field with a default range)")
	cmd.Flags().StringVar(&goalName, "goal", string(breakeven.GoalBreakEven), "Goal (break_even, payback)")
	cmd.Flags().StringVar(&tariffName, "tariff", string(calculation.TariffSmart), "Heat pump tariff (smart, standard)")
	cmd.Flags().Float64Var(&targetYears, "target-years", 0, "Payback target in years (payback goal)")
	cmd.Flags().StringVar(&rangeSpec, "range", "", "Search range min-max (default: the field's default range)")
	cmd.Flags().StringVarP(&format, "format", "f", "table", "Output format (table, json)")
	return cmd
}

func writeBreakEven(out io.Writer, format string, table func() string, json func() (string, error)) error {
	switch strings.ToLower(format) {
	case "table", "console", "":
		_, err := fmt.Fprint(out, table())
		return err
	case "json":
		text, err := json()
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(out, text)
		return err
	default:
		return fmt.Errorf("unknown output format: %s (valid: table, json)", format)
	}
}

// parseRange parses "min-max".
func parseRange(spec string) (breakeven.Range, error) {
	lo, hi, err := parseBounds(spec)
	if err != nil {
		return breakeven.Range{}, err
	}
	return breakeven.Range{Min: lo, Max: hi}, nil
}
