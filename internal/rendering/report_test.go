package rendering

import (
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jordan/talentbridge/internal/ats"
	"github.com/jordan/talentbridge/internal/db"
)

func sampleReport() *db.Report {
	pct := 40
	return &db.Report{
		ResumeName:          "jane_resume.pdf",
		Score:               62,
		Level:               ats.LevelGood,
		KeywordMatchPercent: &pct,
		Breakdown:           ats.Breakdown{Keywords: 14, Sections: 26, Format: 22},
		Sections:            ats.SectionStatus{Education: true, Skills: true, Experience: true},
		Checklist: []ats.ChecklistItem{
			{Key: "email", Label: "Email address found", Pass: true},
			{Key: "bullets", Label: "Bullet points used", Pass: false},
		},
		Issues: []ats.Issue{
			{Type: ats.IssueFormat, Severity: ats.SeverityHigh, Field: "bullets",
				Message: "Bullet points is missing", Fix: "Use bullet points for responsibilities and achievements."},
		},
		Fixes:          []string{"Use bullet points for responsibilities and achievements."},
		Examples:       []ats.Example{{Title: "Use bullet points", Bad: "worked on stuff", Good: "• Built the thing"}},
		JobDescSnippet: "We are hiring a backend engineer.",
		SchemaVersion:  ats.SchemaVersion,
		CreatedAt:      time.Date(2026, 3, 14, 15, 9, 0, 0, time.UTC),
	}
}

func TestReportHTML_ContainsAllSections(t *testing.T) {
	html, err := ReportHTML(sampleReport())
	require.NoError(t, err)

	for _, want := range []string{
		"TalentBridge ATS Report",
		"Resume: jane_resume.pdf",
		"Job Desc: We are hiring a backend engineer.",
		"Score: 62/100",
		"Level: Good",
		"Keyword Match: 40%",
		"Keywords: 14",
		"education: OK",
		"projects: Missing",
		"Email address found",
		"Bullet points is missing",
		"Use bullet points for responsibilities and achievements.",
		"worked on stuff",
	} {
		assert.Contains(t, html, want)
	}
}

func TestReportHTML_EmptyReport(t *testing.T) {
	html, err := ReportHTML(&db.Report{CreatedAt: time.Now()})
	require.NoError(t, err)

	assert.Contains(t, html, "Resume: resume")
	assert.Contains(t, html, "No major issues found.")
	assert.Contains(t, html, "No fixes suggested.")
	assert.Contains(t, html, "No rewrite examples generated.")
	assert.NotContains(t, html, "Keyword Match:")
	assert.NotContains(t, html, "Job Desc:")
}

func TestReportHTML_EscapesUserContent(t *testing.T) {
	r := sampleReport()
	r.ResumeName = `<script>alert("x")</script>.pdf`
	html, err := ReportHTML(r)
	require.NoError(t, err)

	assert.NotContains(t, html, "<script>alert")
	assert.Contains(t, html, "&lt;script&gt;")
}

func TestPreviewSnippet_Truncation(t *testing.T) {
	assert.Equal(t, "", previewSnippet("   "))
	assert.Equal(t, "short", previewSnippet("short"))

	long := strings.Repeat("a", 300)
	got := previewSnippet(long)
	assert.Len(t, got, 223)
	assert.True(t, strings.HasSuffix(got, "..."))
}

func TestPreviewSnippet_MultibyteBoundary(t *testing.T) {
	// Byte 220 falls inside the "é"; the cut must back up to a rune start.
	got := previewSnippet(strings.Repeat("a", 219) + "é" + strings.Repeat("b", 100))
	assert.True(t, utf8.ValidString(got))
	assert.Equal(t, strings.Repeat("a", 219)+"...", got)
}
