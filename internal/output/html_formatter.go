package output

import (
	"bytes"
	_ "embed"
	"html/template"
	"time"

	"github.com/rgehrsitz/hpcalc/internal/domain"
)

// HTMLFormatter produces a standalone HTML report.
type HTMLFormatter struct{}

func (h HTMLFormatter) Name() string { return "html" }

//go:embed templates/report.html.tmpl
var htmlTemplateSource string

var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"amount": FormatAmount,
	"signed": FormatSigned,
	"years":  FormatYears,
}).Parse(htmlTemplateSource))

func (h HTMLFormatter) Format(results *domain.ScenarioComparison) ([]byte, error) {
	var buf bytes.Buffer
	rec := AnalyzeScenarios(results)
	data := struct {
		Results        []domain.ScenarioResult
		Grants         domain.GrantCatalog
		Recommendation Recommendation
		Assumptions    []string
		Generated      string
	}{results.All(), results.Base.Report.Grants, rec, DefaultAssumptions, time.Now().Format("2006-01-02 15:04:05")}
	if err := htmlTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
