// Package ats provides heuristic ATS-compatibility scoring of resume text
// against an optional job description.
package ats

// SchemaVersion identifies the current shape of Result. Stored reports
// carry the version they were written with so readers can migrate old rows.
const SchemaVersion = 1

// Level is the qualitative rating derived from the total score.
type Level string

// Qualitative levels, from best to worst.
const (
	LevelStrong           Level = "Strong"
	LevelGood             Level = "Good"
	LevelAverage          Level = "Average"
	LevelNeedsImprovement Level = "Needs Improvement"
)

// IssueKind classifies a detected problem.
type IssueKind string

// Issue kinds.
const (
	IssueFormat  IssueKind = "format"
	IssueSection IssueKind = "section"
	IssueContent IssueKind = "content"
)

// Severity indicates how strongly an issue affects ATS compatibility.
type Severity string

// Severities.
const (
	SeverityHigh   Severity = "high"
	SeverityMedium Severity = "medium"
	SeverityLow    Severity = "low"
)

// issueSeverity maps each issue kind to its severity. Declared once so new
// kinds cannot silently drift to the wrong severity.
var issueSeverity = map[IssueKind]Severity{
	IssueFormat:  SeverityHigh,
	IssueSection: SeverityMedium,
	IssueContent: SeverityLow,
}

// severityFor returns the severity for an issue kind, defaulting to low.
func severityFor(kind IssueKind) Severity {
	if s, ok := issueSeverity[kind]; ok {
		return s
	}
	return SeverityLow
}

// Breakdown holds the three weighted sub-scores that sum to the total.
type Breakdown struct {
	Keywords int `json:"keywords"` // 0-35
	Sections int `json:"sections"` // 0-35
	Format   int `json:"format"`   // 0-30
}

// SectionStatus records which of the four recognized resume sections were
// detected in the text.
type SectionStatus struct {
	Education  bool `json:"education"`
	Skills     bool `json:"skills"`
	Experience bool `json:"experience"`
	Projects   bool `json:"projects"`
}

// AllPresent reports whether every section was detected.
func (s SectionStatus) AllPresent() bool {
	return s.Education && s.Skills && s.Experience && s.Projects
}

// ChecklistItem is one formatting/contact-info check.
type ChecklistItem struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Pass  bool   `json:"pass"`
}

// Issue is one detected problem with an optional suggested fix.
type Issue struct {
	Type     IssueKind `json:"type"`
	Severity Severity  `json:"severity"`
	Field    string    `json:"field"`
	Message  string    `json:"message"`
	Fix      string    `json:"fix,omitempty"`
}

// Example is a before/after rewrite illustrating one improvement.
type Example struct {
	Title string `json:"title"`
	Bad   string `json:"bad"`
	Good  string `json:"good"`
}

// Detected summarizes the contact info and links found in the resume.
type Detected struct {
	WordCount int      `json:"wordCount"`
	Emails    []string `json:"emails"`
	Phones    []string `json:"phones"`
	Links     []string `json:"links"`
}

// Insights is a small summary for quick display.
type Insights struct {
	WordCount     int    `json:"wordCount"`
	KeywordAdvice string `json:"keywordAdvice"`
	TopFix        string `json:"topFix"`
}

// Result is the aggregate output of a scoring run. It is the sole return
// value of Score and the sole input to report persistence and rendering.
type Result struct {
	SchemaVersion int `json:"schemaVersion"`

	Score int   `json:"score"`
	Level Level `json:"level"`

	Breakdown     Breakdown     `json:"breakdown"`
	SectionStatus SectionStatus `json:"sectionStatus"`

	// KeywordMatchPercent is nil when no usable job description was supplied.
	KeywordMatchPercent *int     `json:"keywordMatchPercent"`
	MatchedKeywords     []string `json:"matchedKeywords"`
	MissingKeywords     []string `json:"missingKeywords"`

	Checklist []ChecklistItem `json:"checklist"`
	Detected  Detected        `json:"detected"`

	Fixes    []string  `json:"fixes"`
	Issues   []Issue   `json:"issues"`
	Examples []Example `json:"examples"`
	Insights Insights  `json:"insights"`
}
