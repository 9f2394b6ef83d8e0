package export

import (
	"fmt"
	"io"
	"os"
	"text/template"

	"github.com/bi-tools/weekly-pulse/pkg/services/insights"
	"github.com/bi-tools/weekly-pulse/pkg/services/report"
)

// Reporter outputs reports to the console in a formatted text form
type Reporter struct {
	writer io.Writer
}

// NewReporter creates a new console reporter
func NewReporter(writer io.Writer) *Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &Reporter{writer: writer}
}

func (c *Reporter) Handle(rep *report.Report) error {
	tmpl := `
Weekly Business Report ({{.Snapshot.Historical.WeeksCount}} weeks analyzed)
Period: {{.Snapshot.CurrentWeek.WeekStart.Format "2006-01-02"}} to {{.Snapshot.CurrentWeek.WeekEnd.Format "2006-01-02"}}

=== Current Week ===
Sales: {{printf "%.2f" .Snapshot.CurrentWeek.Sales}} ({{printf "%+.1f" .Snapshot.Changes.SalesChange}}%)
Orders: {{.Snapshot.CurrentWeek.Orders}} ({{printf "%+.1f" .Snapshot.Changes.OrdersChange}}%)
AOV: {{printf "%.2f" .Snapshot.AOV.Current}} ({{printf "%+.1f" .Snapshot.AOV.Change}}%)
Top Product: {{.Snapshot.CurrentWeek.TopProduct}}
Top Customer: {{.Snapshot.CurrentWeek.TopCustomer}}

=== Historical ===
Total Sales: {{printf "%.2f" .Snapshot.Historical.TotalSales}}
Average Weekly Sales: {{printf "%.2f" .Snapshot.Historical.AverageWeeklySales}}
Sales Growth Rate: {{printf "%.2f" .Snapshot.Historical.SalesGrowthRate}}% per week
Orders Growth Rate: {{printf "%.2f" .Snapshot.Historical.OrdersGrowthRate}}% per week
{{if .Snapshot.Trend}}
=== Trend ===
Sales: {{.Snapshot.Trend.SalesDirection}} (slope {{printf "%.2f" .Snapshot.Trend.SalesSlope}}, volatility {{printf "%.3f" .Snapshot.Trend.SalesVolatility}})
Orders: {{.Snapshot.Trend.OrdersDirection}} (slope {{printf "%.2f" .Snapshot.Trend.OrdersSlope}}, volatility {{printf "%.3f" .Snapshot.Trend.OrdersVolatility}})
{{end}}
=== Performance ===
{{range .Insights.Performance}}
[{{.Status}}] {{.Metric}}
  {{.Message}}
{{end}}
{{if .Insights.Recommendations}}
=== Recommendations ===
{{range .Insights.Recommendations}}
({{.Priority}}) {{.Category}}: {{.Title}} [{{.Timeline}}]
  {{.Description}}
{{end}}
{{end}}
{{if .Insights.Risks}}
=== Risks ===
{{range .Insights.Risks}}
({{.Level}}) {{.Category}}
  {{.Description}}
  Mitigation: {{.Mitigation}}
{{end}}
{{end}}
{{if .Insights.Opportunities}}
=== Opportunities ===
{{range .Insights.Opportunities}}
({{.Potential}}) {{.Category}}
  {{.Description}}
  Action: {{.Action}}
{{end}}
{{end}}
`
	t, err := template.New("report").Parse(tmpl)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	return t.Execute(c.writer, rep)
}

// HandleSummary prints the condensed insight digest.
func (c *Reporter) HandleSummary(rep *report.Report) error {
	_, err := io.WriteString(c.writer, insights.Summarize(rep.Insights))
	return err
}
