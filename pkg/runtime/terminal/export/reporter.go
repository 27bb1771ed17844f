package export

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/template"

	"github.com/de-tools/factory-atlas/pkg/models/domain"
)

type TableConfig struct {
	TimeKeyWidth    int
	ProductionWidth int
	FaultyWidth     int
	RateWidth       int
}

func DefaultTableConfig() TableConfig {
	return TableConfig{
		TimeKeyWidth:    24,
		ProductionWidth: 12,
		FaultyWidth:     8,
		RateWidth:       12,
	}
}

// Reporter renders a dashboard report as a plain-text summary for the
// terminal runtime.
type Reporter struct {
	writer io.Writer
	config TableConfig
}

func NewReporter(writer io.Writer) *Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &Reporter{
		writer: writer,
		config: DefaultTableConfig(),
	}
}

func (c *Reporter) Handle(report *domain.DashboardReport) error {
	funcMap := template.FuncMap{
		"formatRow": func(timeKey string, production, faulty, rate interface{}) string {
			return fmt.Sprintf("| %-*s | %-*v | %-*v | %-*v |",
				c.config.TimeKeyWidth, timeKey,
				c.config.ProductionWidth, production,
				c.config.FaultyWidth, faulty,
				c.config.RateWidth, rate)
		},
		"separator": func() string {
			return fmt.Sprintf("+%s+%s+%s+%s+",
				strings.Repeat("-", c.config.TimeKeyWidth+2),
				strings.Repeat("-", c.config.ProductionWidth+2),
				strings.Repeat("-", c.config.FaultyWidth+2),
				strings.Repeat("-", c.config.RateWidth+2))
		},
		"percent": func(v float64) string {
			return fmt.Sprintf("%.1f%%", v*100)
		},
		"marker": func(severity domain.Severity) string {
			switch severity {
			case domain.SeverityWarning:
				return "!"
			case domain.SeveritySuccess:
				return "+"
			default:
				return "*"
			}
		},
	}

	tmpl := `
Factory Dashboard ({{.Period}})
{{if .NoData}}
No data available. Run a simulation first.
{{else}}
Total Production: {{.KPI.TotalProduction}} units
Fault Rate: {{percent .KPI.FaultRate}}
Avg Production Time: {{printf "%.2f" .KPI.AvgProductionTime}} units

{{separator}}
{{formatRow "Period" "Production" "Faulty" "Fault Rate"}}
{{separator}}
{{range .Trend}}{{formatRow .TimeKey .Production .Faulty (percent .FaultyRate)}}
{{end}}{{separator}}

=== Executive Summary ===
{{range .Insights.Executive}}{{marker .Severity}} {{.Text}}
{{end}}
=== Station Analysis ===
{{range .Insights.Station}}{{marker .Severity}} {{.Text}}
{{end}}
=== Supply Chain ===
{{range .Insights.Material}}{{marker .Severity}} {{.Text}}
{{end}}
=== Advanced Analysis ===
{{range .Insights.Correlation}}{{marker .Severity}} {{.Text}}
{{end}}{{end}}
`

	t, err := template.New("report").Funcs(funcMap).Parse(tmpl)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	return t.Execute(c.writer, report)
}
