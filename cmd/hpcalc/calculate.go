package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rgehrsitz/hpcalc/internal/config"
	"github.com/rgehrsitz/hpcalc/internal/domain"
	"github.com/rgehrsitz/hpcalc/internal/output"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func calculateCmd(a *app) *cobra.Command {
	var (
		format    string
		scenarios []string
		save      bool
	)

	cmd := &cobra.Command{
		Use:   "calculate",
		Short: "Compare the boiler and heat pump for the base inputs and every scenario",
		Long: `Compare the boiler and heat pump for the layered base inputs, followed by
each scenario of the --config file.

Examples:
  hpcalc calculate
  hpcalc calculate --set solar_generation=2700
  hpcalc calculate -c house.yaml --scenario no_grant -f json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := output.GetFormatterByName(format)
			if formatter == nil {
				return fmt.Errorf("unsupported format: %s (available: %s)", format, strings.Join(output.AvailableFormatterNames(), ", "))
			}

			src, err := a.load()
			if err != nil {
				return err
			}

			selected := src.Scenarios()
			if len(scenarios) > 0 {
				if src.File == nil {
					return fmt.Errorf("--scenario needs a --config file")
				}
				selected = make([]domain.Scenario, 0, len(scenarios))
				for _, name := range scenarios {
					sc, ok := src.File.FindScenario(name)
					if !ok {
						return fmt.Errorf("scenario %q not found", name)
					}
					selected = append(selected, *sc)
				}
			}

			results, err := a.engine().RunScenarios(cmd.Context(), src.Base(), selected)
			if err != nil {
				return err
			}

			if save {
				filename, err := output.WriteFormatted(formatter, results, "")
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", filename)
				return nil
			}
			return output.GenerateReport(cmd.OutOrStdout(), results, format)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "console",
		fmt.Sprintf("Output format (%s)", strings.Join(output.AvailableFormatterNames(), ", ")))
	cmd.Flags().StringSliceVar(&scenarios, "scenario", nil, "Only run the named scenarios")
	cmd.Flags().BoolVar(&save, "save", false, "Write the report to a timestamped file instead of stdout")
	return cmd
}

func defaultsCmd(a *app) *cobra.Command {
	var (
		format string
		fields bool
	)

	cmd := &cobra.Command{
		Use:   "defaults",
		Short: "Print the default inputs, or the effective inputs after overrides",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			if fields {
				for _, f := range domain.Fields() {
					fmt.Fprintf(out, "%-20s %-18s %-10s %s\n", f.Name, f.Alias, f.Unit, f.Description)
				}
				return nil
			}

			src, err := a.load()
			if err != nil {
				return err
			}
			cfg := src.Base()

			switch output.NormalizeFormatName(format) {
			case "yaml", "console":
				data, err := yaml.Marshal(cfg)
				if err != nil {
					return err
				}
				_, err = out.Write(data)
				return err
			case "json":
				data, err := json.MarshalIndent(cfg, "", "  ")
				if err != nil {
					return err
				}
				fmt.Fprintln(out, string(data))
				return nil
			default:
				return fmt.Errorf("unsupported format: %s (valid: yaml, json)", format)
			}
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "yaml", "Output format (yaml, json)")
	cmd.Flags().BoolVar(&fields, "fields", false, "List field names, JSON aliases and units")
	return cmd
}

func validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [input-file]",
		Short: "Validate a scenario file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.NewInputParser().LoadFromFile(args[0])
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Configuration file %s is valid (%d base override(s), %d scenario(s))\n",
				args[0], len(cfg.Base.Values()), len(cfg.Scenarios))
			return nil
		},
	}
}
