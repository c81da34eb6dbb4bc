package main

import (
	"fmt"

	"github.com/rgehrsitz/hpcalc/internal/calculation"
	"github.com/rgehrsitz/hpcalc/internal/output"
	"github.com/spf13/cobra"
)

func projectCmd(a *app) *cobra.Command {
	var (
		format   string
		scenario string
	)

	cmd := &cobra.Command{
		Use:   "project",
		Short: "Show the cumulative position of switching year by year",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := a.load()
			if err != nil {
				return err
			}
			cfg, err := src.Scenario(scenario)
			if err != nil {
				return err
			}

			text, err := output.NewProjectionFormatter(format).FormatProjection(calculation.Project(cfg))
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), text)
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "table", "Output format (table, csv, json)")
	cmd.Flags().StringVar(&scenario, "scenario", "", "Project a named scenario from --config instead of the base")
	return cmd
}
