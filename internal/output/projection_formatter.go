package output

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/rgehrsitz/hpcalc/internal/domain"
)

// ProjectionFormatter defines a formatter for year-by-year projections
type ProjectionFormatter interface {
	FormatProjection(p domain.Projection) (string, error)
	Name() string
}

// NewProjectionFormatter creates a projection formatter based on the format name
func NewProjectionFormatter(format string) ProjectionFormatter {
	switch NormalizeFormatName(format) {
	case "csv":
		return &ProjectionCSVFormatter{}
	case "json":
		return &ProjectionJSONFormatter{}
	default:
		return &ProjectionTableFormatter{}
	}
}

// ProjectionTableFormatter formats projections as a table
type ProjectionTableFormatter struct{}

func (f *ProjectionTableFormatter) Name() string { return "table" }

func (f *ProjectionTableFormatter) FormatProjection(p domain.Projection) (string, error) {
	var out strings.Builder

	out.WriteString("CUMULATIVE POSITION AFTER SWITCHING\n")
	out.WriteString("=================================================================\n")
	out.WriteString(fmt.Sprintf("Break-even (standard): %s\n", formatBreakEvenYear(p.BreakEvenYearStandard)))
	out.WriteString(fmt.Sprintf("Break-even (smart):    %s\n", formatBreakEvenYear(p.BreakEvenYearSmartTariff)))
	out.WriteString(fmt.Sprintf("Boiler replacements avoided: %d\n\n", p.BoilerReplacementsAvoided))

	out.WriteString(fmt.Sprintf("%-6s %14s %14s\n", "Year", "Standard", "Smart"))
	out.WriteString(strings.Repeat("-", 36) + "\n")
	for _, y := range p.Years {
		marker := ""
		if y.Year > 0 && (y.Year == p.BreakEvenYearStandard || y.Year == p.BreakEvenYearSmartTariff) {
			marker = "  ← break-even"
		}
		out.WriteString(fmt.Sprintf("%-6d %14s %14s%s\n",
			y.Year, FormatSigned(y.CumulativeStandard), FormatSigned(y.CumulativeSmartTariff), marker))
	}

	return out.String(), nil
}

func formatBreakEvenYear(year int) string {
	if year == 0 {
		return "never"
	}
	return fmt.Sprintf("year %d", year)
}

// ProjectionCSVFormatter formats projections as CSV
type ProjectionCSVFormatter struct{}

func (f *ProjectionCSVFormatter) Name() string { return "csv" }

func (f *ProjectionCSVFormatter) FormatProjection(p domain.Projection) (string, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"year", "cumulative_standard", "cumulative_smart"}); err != nil {
		return "", err
	}
	for _, y := range p.Years {
		row := []string{strconv.Itoa(y.Year), FormatAmount(y.CumulativeStandard), FormatAmount(y.CumulativeSmartTariff)}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}
	w.Flush()
	return buf.String(), w.Error()
}

// ProjectionJSONFormatter formats projections as JSON
type ProjectionJSONFormatter struct{}

func (f *ProjectionJSONFormatter) Name() string { return "json" }

func (f *ProjectionJSONFormatter) FormatProjection(p domain.Projection) (string, error) {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal projection: %w", err)
	}
	return string(data), nil
}
