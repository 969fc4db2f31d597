package export

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"unitflow/internal/bucket"
	"unitflow/internal/model"
)

// Self-contained printable document: inline styles only, no external
// resources, so it renders the same in a popup or a saved file.
var tableTmpl = template.Must(template.New("table").Parse(`<!doctype html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
  body { font-family: system-ui, sans-serif; margin: 24px; color: #111; }
  h1 { font-size: 18px; margin-bottom: 4px; }
  .sub { color: #666; font-size: 12px; margin-bottom: 16px; }
  table { border-collapse: collapse; width: 100%; font-size: 13px; }
  th, td { border: 1px solid #ccc; padding: 6px 8px; text-align: left; vertical-align: top; }
  th { background: #f2f2f2; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
<p class="sub">Generated {{.Generated}}</p>
<table>
<thead>
<tr><th>Timestamp</th><th>Author</th><th>Shift</th><th>Unit</th><th>Type</th><th>Severity</th><th>Qty</th><th>Notes</th></tr>
</thead>
<tbody>
{{range .Rows}}<tr><td>{{.When}}</td><td>{{.Author}}</td><td>{{.Shift}}</td><td>{{.Unit}}</td><td>{{.Type}}</td><td>{{.Severity}}</td><td>{{.Qty}}</td><td>{{.Notes}}</td></tr>
{{end}}</tbody>
</table>
</body>
</html>
`))

type tableRow struct {
	When     string
	Author   string
	Shift    string
	Unit     string
	Type     string
	Severity string
	Qty      string
	Notes    string
}

type tableDoc struct {
	Title     string
	Generated string
	Rows      []tableRow
}

// TableHTML builds the standalone printable document with the given title.
// User-supplied text is escaped by the template engine.
func TableHTML(logs []model.LogRecord, title string, now time.Time) (string, error) {
	logs = sortAscending(logs)

	doc := tableDoc{
		Title:     title,
		Generated: now.Format("2006-01-02 15:04"),
	}
	for _, l := range logs {
		sev := l.Severity
		if sev == "" {
			sev = model.SeverityLow
		}
		doc.Rows = append(doc.Rows, tableRow{
			When:     Timestamp(l.Ts),
			Author:   l.Author,
			Shift:    l.Shift,
			Unit:     l.Unit,
			Type:     l.Type,
			Severity: sev,
			Qty:      l.Qty,
			Notes:    l.Notes,
		})
	}

	var buf bytes.Buffer
	if err := tableTmpl.Execute(&buf, doc); err != nil {
		return "", fmt.Errorf("render table document: %w", err)
	}
	return buf.String(), nil
}

// SelectionTitle names the document for a selection scoped to a bucket.
func SelectionTitle(scope string) string {
	if scope == bucket.ScopeWeek {
		return "UnitFlow Log — selected entries, this week"
	}
	return "UnitFlow Log — selected entries, today"
}

// BucketTitle names the document for a whole bucket's print-all view.
func BucketTitle(scope string) string {
	if scope == bucket.ScopeWeek {
		return "UnitFlow Log — all entries, this week"
	}
	return "UnitFlow Log — all entries, today"
}
