package rendering

import (
	"bytes"
	"html/template"
	"strings"
	"unicode/utf8"

	"github.com/jordan/talentbridge/internal/db"
)

// snippetPreviewChars bounds the job description excerpt shown in the header.
const snippetPreviewChars = 220

var reportTemplate = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>TalentBridge ATS Report</title>
<style>
  body { font-family: Helvetica, Arial, sans-serif; margin: 40px; color: #1a1a1a; }
  h1 { font-size: 18pt; margin-bottom: 4px; }
  h2 { font-size: 12pt; margin-top: 18px; margin-bottom: 6px; }
  p, li { font-size: 10pt; margin: 2px 0; }
  ul { margin: 4px 0; padding-left: 18px; }
  .meta { color: #555; }
  .pass { color: #1a7f37; }
  .fail { color: #b42318; }
  .severity { font-weight: bold; text-transform: uppercase; }
  .example { margin-bottom: 8px; }
</style>
</head>
<body>
<h1>TalentBridge ATS Report</h1>
<p class="meta">Generated: {{.GeneratedAt}}</p>
<p class="meta">Resume: {{.ResumeName}}</p>
{{if .JobDescPreview}}<p class="meta">Job Desc: {{.JobDescPreview}}</p>{{end}}

<h2>Score Summary</h2>
<p>Score: {{.Report.Score}}/100</p>
<p>Level: {{.Report.Level}}</p>
{{if .Report.KeywordMatchPercent}}<p>Keyword Match: {{.Report.KeywordMatchPercent}}%</p>{{end}}

<h2>Breakdown</h2>
<p>Keywords: {{.Report.Breakdown.Keywords}}</p>
<p>Sections: {{.Report.Breakdown.Sections}}</p>
<p>Format: {{.Report.Breakdown.Format}}</p>

<h2>Section Status</h2>
<p>education: {{if .Report.Sections.Education}}OK{{else}}Missing{{end}}</p>
<p>skills: {{if .Report.Sections.Skills}}OK{{else}}Missing{{end}}</p>
<p>experience: {{if .Report.Sections.Experience}}OK{{else}}Missing{{end}}</p>
<p>projects: {{if .Report.Sections.Projects}}OK{{else}}Missing{{end}}</p>

<h2>ATS Checklist</h2>
<ul>
{{range .Report.Checklist}}  <li>{{.Label}}: {{if .Pass}}<span class="pass">PASS</span>{{else}}<span class="fail">FAIL</span>{{end}}</li>
{{end}}</ul>

<h2>Detected Issues</h2>
{{if .Report.Issues}}<ul>
{{range .Report.Issues}}  <li><span class="severity">[{{.Severity}}]</span> {{.Message}} ({{.Type}}){{if .Fix}}<br>Fix: {{.Fix}}{{end}}</li>
{{end}}</ul>{{else}}<p>No major issues found.</p>{{end}}

<h2>Action Plan (Fixes)</h2>
{{if .Report.Fixes}}<ul>
{{range .Report.Fixes}}  <li>{{.}}</li>
{{end}}</ul>{{else}}<p>No fixes suggested.</p>{{end}}

<h2>Rewrite Examples</h2>
{{if .Report.Examples}}{{range .Report.Examples}}<div class="example">
<p><strong>{{.Title}}</strong></p>
<p>Bad: {{.Bad}}</p>
<p>Good: {{.Good}}</p>
</div>
{{end}}{{else}}<p>No rewrite examples generated.</p>{{end}}
</body>
</html>
`))

type reportData struct {
	Report         *db.Report
	ResumeName     string
	GeneratedAt    string
	JobDescPreview string
}

// ReportHTML renders a stored report as a self-contained HTML document.
func ReportHTML(report *db.Report) (string, error) {
	name := report.ResumeName
	if name == "" {
		name = "resume"
	}

	var buf bytes.Buffer
	err := reportTemplate.Execute(&buf, reportData{
		Report:         report,
		ResumeName:     name,
		GeneratedAt:    report.CreatedAt.Format("Jan 2, 2006 3:04 PM"),
		JobDescPreview: previewSnippet(report.JobDescSnippet),
	})
	if err != nil {
		return "", &TemplateError{Message: "failed to execute report template", Cause: err}
	}
	return buf.String(), nil
}

func previewSnippet(snippet string) string {
	snippet = strings.TrimSpace(snippet)
	if len(snippet) <= snippetPreviewChars {
		return snippet
	}
	cut := snippetPreviewChars
	for cut > 0 && !utf8.RuneStart(snippet[cut]) {
		cut--
	}
	return snippet[:cut] + "..."
}
