package main

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/hpcalc/internal/compare"
	"github.com/rgehrsitz/hpcalc/internal/transform"
	"github.com/spf13/cobra"
)

func compareCmd(a *app) *cobra.Command {
	var (
		with          string
		scenarios     []string
		format        string
		listTemplates bool
	)

	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Compare the base inputs against built-in templates or file scenarios",
		Long: `Compare the base inputs against alternatives and show what changes.

Examples:
  hpcalc compare --with no_grant,solar_3kw
  hpcalc compare --with gas_price_up_20,high_cop --format csv
  hpcalc compare -c house.yaml                  # every scenario in the file
  hpcalc compare --list-templates`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			if listTemplates {
				fmt.Fprint(out, transform.GetTemplateHelp(transform.CreateBuiltInTemplates()))
				return nil
			}

			src, err := a.load()
			if err != nil {
				return err
			}

			compareEngine := compare.NewCompareEngine(a.engine())

			var set *compare.ComparisonSet
			if with != "" {
				templates := transform.ParseTemplateList(with)
				if len(templates) == 0 {
					return fmt.Errorf("no valid templates specified in --with flag")
				}
				set, err = compareEngine.Compare(cmd.Context(), src.Base(), compare.CompareOptions{
					Templates:  templates,
					ConfigPath: a.configFile,
				})
			} else {
				if len(src.Scenarios()) == 0 {
					return fmt.Errorf("--with is required unless --config names scenarios (use --list-templates)")
				}
				set, err = compareEngine.CompareScenarios(cmd.Context(), src.Base(), src.Scenarios(), scenarios)
			}
			if err != nil {
				return fmt.Errorf("comparison failed: %w", err)
			}
			set.ConfigPath = a.configFile

			switch strings.ToLower(format) {
			case "csv":
				text, err := (&compare.CSVFormatter{}).Format(set)
				if err != nil {
					return fmt.Errorf("failed to format CSV: %w", err)
				}
				fmt.Fprint(out, text)
			case "json":
				text, err := (&compare.JSONFormatter{Pretty: true}).Format(set)
				if err != nil {
					return fmt.Errorf("failed to format JSON: %w", err)
				}
				fmt.Fprint(out, text)
			case "compact":
				fmt.Fprint(out, (&compare.TableFormatter{}).FormatCompact(set))
			case "table", "console", "":
				fmt.Fprint(out, (&compare.TableFormatter{}).Format(set))
			default:
				return fmt.Errorf("unknown output format: %s (valid: table, compact, csv, json)", format)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&with, "with", "", "Comma-separated list of templates to compare")
	cmd.Flags().StringSliceVar(&scenarios, "scenario", nil, "File scenarios to compare (default: all)")
	cmd.Flags().StringVarP(&format, "format", "f", "table", "Output format (table, compact, csv, json)")
	cmd.Flags().BoolVar(&listTemplates, "list-templates", false, "List all available scenario templates")
	return cmd
}
