package output

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/rgehrsitz/hpcalc/internal/domain"
)

// Formatter renders a scenario comparison in one output format.
type Formatter interface {
	Name() string
	Format(results *domain.ScenarioComparison) ([]byte, error)
}

// FormatterFunc adapts a plain function to the Formatter interface.
type FormatterFunc struct {
	ID string
	F  func(results *domain.ScenarioComparison) ([]byte, error)
}

func (f FormatterFunc) Name() string { return f.ID }

func (f FormatterFunc) Format(results *domain.ScenarioComparison) ([]byte, error) {
	return f.F(results)
}

var formatters = map[string]Formatter{
	"console": ConsoleFormatter{},
	"verbose": ConsoleFormatter{Verbose: true},
	"json":    JSONFormatter{Pretty: true},
	"yaml":    YAMLFormatter{},
	"csv":     CSVSummarizer{},
	"html":    HTMLFormatter{},
}

var extensions = map[string]string{
	"console": "txt",
	"verbose": "txt",
	"json":    "json",
	"yaml":    "yaml",
	"csv":     "csv",
	"html":    "html",
}

var aliases = map[string]string{
	"":                "console",
	"text":            "console",
	"table":           "console",
	"console-verbose": "verbose",
	"detailed":        "verbose",
	"yml":             "yaml",
	"htm":             "html",
}

// NormalizeFormatName maps aliases onto registered format names.
func NormalizeFormatName(name string) string {
	n := strings.ToLower(strings.TrimSpace(name))
	if canonical, ok := aliases[n]; ok {
		return canonical
	}
	return n
}

// GetFormatterByName returns the formatter registered under name or one of
// its aliases, or nil.
func GetFormatterByName(name string) Formatter {
	return formatters[NormalizeFormatName(name)]
}

// AvailableFormatterNames lists the registered format names.
func AvailableFormatterNames() []string {
	names := make([]string, 0, len(formatters))
	for name := range formatters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// AvailableFormatAliases lists the accepted aliases.
func AvailableFormatAliases() []string {
	names := make([]string, 0, len(aliases))
	for alias := range aliases {
		if alias != "" {
			names = append(names, alias)
		}
	}
	sort.Strings(names)
	return names
}

// GenerateReport renders results in the named format to w.
func GenerateReport(w io.Writer, results *domain.ScenarioComparison, format string) error {
	f := GetFormatterByName(format)
	if f == nil {
		return fmt.Errorf("unsupported format: %s (available: %s)", format, strings.Join(AvailableFormatterNames(), ", "))
	}
	data, err := f.Format(results)
	if err != nil {
		return fmt.Errorf("format %s: %w", f.Name(), err)
	}
	_, err = w.Write(data)
	return err
}

// WriteFormatted renders results and saves them to a timestamped file in the
// working directory. An empty ext picks the formatter's usual extension.
func WriteFormatted(f Formatter, results *domain.ScenarioComparison, ext string) (string, error) {
	data, err := f.Format(results)
	if err != nil {
		return "", fmt.Errorf("format %s: %w", f.Name(), err)
	}

	if ext == "" {
		ext = extensions[f.Name()]
	}
	if ext == "" {
		ext = "txt"
	}
	filename := fmt.Sprintf("hpcalc_report_%s.%s", time.Now().Format("20060102_150405"), ext)

	if err := os.WriteFile(filename, data, 0644); err != nil {
		return "", fmt.Errorf("write report: %w", err)
	}
	return filename, nil
}
