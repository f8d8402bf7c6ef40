package printing

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/khata/backend/internal/domain/report"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ReportTemplate lays a report tree out as a printable HTML document
type ReportTemplate struct {
	tmpl *template.Template
}

// NewReportTemplate parses the built-in report layout
func NewReportTemplate() *ReportTemplate {
	funcs := template.FuncMap{
		"title": titleCase,
	}
	return &ReportTemplate{
		tmpl: template.Must(template.New("report").Funcs(funcs).Parse(reportLayout)),
	}
}

// Render executes the layout over r
func (t *ReportTemplate) Render(r *report.Report) (string, error) {
	if r == nil {
		return "", NewRenderError(ErrCodeTemplate, "report is nil", nil)
	}
	var buf bytes.Buffer
	if err := t.tmpl.Execute(&buf, newPageView(r)); err != nil {
		return "", NewRenderError(ErrCodeTemplate, "failed to execute report template", err)
	}
	return buf.String(), nil
}

type pageView struct {
	Title    string
	From     string
	To       string
	Index    []string
	Headings []headingView
}

type headingView struct {
	Title      string
	Subs       []subView
	Cumulative *report.Cumulative
}

type subView struct {
	Title      string
	Columns    []string
	Rows       [][]string
	Before     [][]string
	After      [][]string
	Cumulative *report.Cumulative
}

func newPageView(r *report.Report) pageView {
	v := pageView{Title: r.Title, From: r.From, To: r.To}
	for _, h := range r.Headings {
		hv := headingView{Title: h.Title, Cumulative: h.Cumulative}
		v.Index = append(v.Index, h.Title)
		for i := range h.Subheadings {
			sub := &h.Subheadings[i]
			if sub.DisplayOnIndex && sub.Title != "" {
				v.Index = append(v.Index, "    "+sub.Title)
			}
			hv.Subs = append(hv.Subs, newSubView(sub))
		}
		v.Headings = append(v.Headings, hv)
	}
	return v
}

func newSubView(sub *report.Subheading) subView {
	keys := columnKeys(sub.DataRows)
	v := subView{Title: sub.Title, Cumulative: sub.Cumulative}
	for _, k := range keys {
		v.Columns = append(v.Columns, columnLabel(k))
	}
	for _, row := range sub.DataRows {
		cells := make([]string, len(keys))
		for i, k := range keys {
			if val, ok := row.Get(k); ok && !report.IsEmptyValue(val) {
				cells[i] = fmt.Sprint(val)
			}
		}
		v.Rows = append(v.Rows, cells)
	}
	for _, sr := range sub.SpecialRows {
		cells := specialCells(keys, sr)
		if sr.BeforeData {
			v.Before = append(v.Before, cells)
		} else {
			v.After = append(v.After, cells)
		}
	}
	return v
}

// columnKeys is the union of the row keys in order of first appearance
func columnKeys(rows []report.Row) []string {
	seen := map[string]bool{}
	var keys []string
	for _, row := range rows {
		for _, k := range row.Keys() {
			if !seen[k] {
				seen[k] = true
				keys = append(keys, k)
			}
		}
	}
	return keys
}

// specialCells puts the label one column left of the value, or in the same
// cell when the value sits in the first column
func specialCells(keys []string, sr report.SpecialRow) []string {
	cells := make([]string, max(len(keys), 1))
	col := 0
	for i, k := range keys {
		if k == sr.Column {
			col = i
			break
		}
	}
	if col == 0 {
		cells[0] = sr.Name + " " + sr.Value
		return cells
	}
	cells[col-1] = sr.Name
	cells[col] = sr.Value
	return cells
}

func columnLabel(key string) string {
	return titleCase(strings.TrimSuffix(strings.ReplaceAll(key, "_", " "), "."))
}

func titleCase(s string) string {
	return cases.Title(language.English, cases.NoLower).String(s)
}

const reportLayout = `<!DOCTYPE html>
<html>
<head>
<meta charset="UTF-8">
<title>{{.Title}}</title>
<style>
body { font-family: "DejaVu Sans", Arial, sans-serif; font-size: 10px; }
h1 { font-size: 16px; margin: 0 0 4px 0; }
h2 { font-size: 13px; margin: 14px 0 4px 0; page-break-after: avoid; }
h3 { font-size: 11px; margin: 8px 0 4px 0; page-break-after: avoid; }
table { border-collapse: collapse; width: 100%; margin-bottom: 6px; }
th, td { border: 1px solid #999; padding: 2px 4px; text-align: left; }
th { background: #eee; }
tr.special td { font-weight: bold; border: none; }
.range { color: #555; margin-bottom: 10px; }
.index { white-space: pre; margin-bottom: 12px; }
.cumulative { font-weight: bold; margin: 4px 0 10px 0; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
<div class="range">From {{.From}} to {{.To}}</div>
{{if .Index}}<div class="index">{{range .Index}}{{title .}}
{{end}}</div>{{end}}
{{range .Headings}}
<h2>{{title .Title}}</h2>
{{range .Subs}}
{{if .Title}}<h3>{{title .Title}}</h3>{{end}}
<table>
<thead><tr>{{range .Columns}}<th>{{.}}</th>{{end}}</tr></thead>
<tbody>
{{range .Before}}<tr class="special">{{range .}}<td>{{.}}</td>{{end}}</tr>
{{end}}{{range .Rows}}<tr>{{range .}}<td>{{.}}</td>{{end}}</tr>
{{end}}{{range .After}}<tr class="special">{{range .}}<td>{{.}}</td>{{end}}</tr>
{{end}}</tbody>
</table>
{{with .Cumulative}}<div class="cumulative">{{.Name}}: {{.Value}}</div>{{end}}
{{end}}
{{with .Cumulative}}<div class="cumulative">{{.Name}}: {{.Value}}</div>{{end}}
{{end}}
</body>
</html>
`
