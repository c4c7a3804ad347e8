package writer

import (
	"fmt"
	"html/template"
	"io"

	"github.com/Manoj-Myana/smart-finance-tracker-sub000/internal/report"
)

// HTMLWriter renders a self-contained, print-ready HTML document. Opening it
// in a browser and printing produces the PDF export.
type HTMLWriter struct {
	// Charts embeds inline SVG pie, bar and line charts.
	Charts bool
}

type htmlView struct {
	Title        string
	Subtitle     string
	Period       string
	Generated    string
	Blocks       []block
	Charts       *chartSet
	Transactions [][]string
	Header       []string
	PieRadius    float64
	NotAvailable string
}

func (w *HTMLWriter) Write(out io.Writer, r *report.Report) error {
	view := htmlView{
		Title:        orNA(r.Title),
		Subtitle:     r.Subtitle,
		Period:       orNA(r.Period),
		Generated:    r.GeneratedAt.UTC().Format("02 Jan 2006 15:04 UTC"),
		Blocks:       append([]block{summaryBlock(r)}, payloadBlocks(r)...),
		Transactions: transactionRows(r),
		Header:       transactionHeader,
		PieRadius:    pieRadius,
		NotAvailable: NotAvailable,
	}
	if w.Charts {
		if c := buildCharts(r); !c.empty() {
			view.Charts = c
		}
	}

	if err := htmlTemplate.Execute(out, view); err != nil {
		return fmt.Errorf("failed to render HTML report: %w", err)
	}
	return nil
}

var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"f2": func(v float64) string { return fmt.Sprintf("%.2f", v) },
}).Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: -apple-system, "Segoe UI", Roboto, sans-serif; color: #1f2937; margin: 32px; }
h1 { margin-bottom: 4px; }
.subtitle { color: #6b7280; margin-top: 0; }
section { margin: 24px 0; page-break-inside: avoid; }
table { border-collapse: collapse; width: 100%; font-size: 13px; }
th, td { border: 1px solid #e5e7eb; padding: 6px 8px; text-align: left; }
th { background: #f3f4f6; }
.charts { display: flex; flex-wrap: wrap; gap: 24px; }
.legend span { display: inline-block; margin-right: 12px; font-size: 12px; }
.swatch { display: inline-block; width: 10px; height: 10px; margin-right: 4px; }
@media print { body { margin: 0; } }
</style>
</head>
<body>
<header>
<h1>{{.Title}}</h1>
<p class="subtitle">{{.Subtitle}}</p>
<p>Period: {{.Period}}<br>Generated: {{.Generated}}</p>
</header>
{{range .Blocks}}
<section>
<h2>{{.Heading}}</h2>
{{range .Lines}}<p>{{.}}</p>
{{end}}{{if .Header}}<table>
<thead><tr>{{range .Header}}<th>{{.}}</th>{{end}}</tr></thead>
<tbody>
{{range .Rows}}<tr>{{range .}}<td>{{.}}</td>{{end}}</tr>
{{else}}<tr><td colspan="{{len .Header}}">{{$.NotAvailable}}</td></tr>
{{end}}</tbody>
</table>{{end}}
</section>
{{end}}
{{with .Charts}}
<section>
<h2>Charts</h2>
<div class="charts">
{{if .Pie}}<figure>
<svg width="220" height="220" viewBox="0 0 42 42" role="img" aria-label="Spending by category">
<circle cx="21" cy="21" r="{{$.PieRadius}}" fill="transparent" stroke="#e5e7eb" stroke-width="6"></circle>
{{range .Pie}}<circle cx="21" cy="21" r="{{$.PieRadius}}" fill="transparent" stroke="{{.Color}}" stroke-width="6" stroke-dasharray="{{.Dash}}" stroke-dashoffset="{{.Offset}}"><title>{{.Label}} {{.Percent}}</title></circle>
{{end}}</svg>
<figcaption class="legend">{{range .Pie}}<span><i class="swatch" style="background: {{.Color}}"></i>{{.Label}} {{.Percent}}</span>{{end}}</figcaption>
</figure>{{end}}
{{with .Bars}}<figure>
<svg width="{{f2 .Width}}" height="{{f2 .Height}}" viewBox="0 0 {{f2 .Width}} {{f2 .Height}}" role="img" aria-label="Monthly income and expense">
{{range .Bars}}<rect x="{{f2 .X}}" y="{{f2 .Y}}" width="{{f2 .W}}" height="{{f2 .H}}" fill="{{.Color}}"><title>{{.Title}}</title></rect>
{{end}}{{range .Labels}}<text x="{{f2 .X}}" y="190" font-size="10" text-anchor="middle">{{.Text}}</text>
{{end}}</svg>
<figcaption>Income and expense by month</figcaption>
</figure>{{end}}
{{with .Line}}<figure>
<svg width="{{f2 .Width}}" height="{{f2 .Height}}" viewBox="0 0 {{f2 .Width}} {{f2 .Height}}" role="img" aria-label="Running balance">
<polyline points="{{.Points}}" fill="none" stroke="#4f46e5" stroke-width="2"></polyline>
{{range .Dots}}<circle cx="{{f2 .X}}" cy="{{f2 .Y}}" r="3" fill="#4f46e5"><title>{{.Title}}</title></circle>
{{end}}{{range .Labels}}<text x="{{f2 .X}}" y="190" font-size="10" text-anchor="middle">{{.Text}}</text>
{{end}}</svg>
<figcaption>Running balance</figcaption>
</figure>{{end}}
</div>
</section>
{{end}}
<section>
<h2>Transactions</h2>
<table>
<thead><tr>{{range .Header}}<th>{{.}}</th>{{end}}</tr></thead>
<tbody>
{{range .Transactions}}<tr>{{range .}}<td>{{.}}</td>{{end}}</tr>
{{else}}<tr><td colspan="5">No transactions match the selected filters.</td></tr>
{{end}}</tbody>
</table>
</section>
</body>
</html>
`))
