package ats

import (
	"fmt"
	"strings"
)

const (
	maxFixes = 12

	// weakKeywordMatchPercent is the threshold below which keyword-coverage
	// fixes and examples are suggested.
	weakKeywordMatchPercent = 60

	fallbackTopFix = "Improve formatting and add measurable achievements"
)

// Fix texts for failed checklist items, declared once and shared by the
// fixes list and the issue linker.
const (
	fixEmail    = "Add an email address at the top."
	fixPhone    = "Add a phone number at the top."
	fixLinkedIn = "Add your LinkedIn profile link."
	fixGitHub   = "Add your GitHub link (if you have projects)."
	fixBullets  = "Use bullet points for impact-based achievements."
	fixDates    = "Add dates for education/experience (e.g., Jan 2026 – Mar 2026)."

	fixSkillsSection     = "Add a clear Skills section with tools/tech."
	fixProjectsSection   = "Add a Projects section with 2–3 projects and results."
	fixExperienceSection = "Add Internship/Experience section (even small ones)."
	fixEducationSection  = "Add Education section (college, degree, year)."

	fixKeywords = "Add missing job keywords (only if you truly know them)."
	fixPasteJD  = "Paste a Job Description for a more accurate ATS score."
	fixTooShort = "Resume is too short. Add more detail & measurable outcomes."
	fixTooLong  = "Resume is too long. Keep it concise (1–2 pages)."
)

// checklistFix links each checklist key to its fix text directly. Unknown
// keys yield "" so issue records stay shape-compatible with older reports.
var checklistFix = map[string]string{
	"email":    fixEmail,
	"phone":    fixPhone,
	"linkedin": fixLinkedIn,
	"github":   fixGitHub,
	"dates":    fixDates,
	"bullets":  fixBullets,
}

type feedbackInput struct {
	checklist           []ChecklistItem
	sections            SectionStatus
	wordCount           int
	hasJobDescription   bool
	keywordMatchPercent *int
}

func failed(checklist []ChecklistItem, key string) bool {
	for _, c := range checklist {
		if c.Key == key {
			return !c.Pass
		}
	}
	return false
}

// buildFixes emits actionable suggestions in fixed precedence: contact
// info, formatting, sections, keyword coverage, then length. Capped at 12.
func buildFixes(in feedbackInput) []string {
	var fixes []string

	if failed(in.checklist, "email") {
		fixes = append(fixes, fixEmail)
	}
	if failed(in.checklist, "phone") {
		fixes = append(fixes, fixPhone)
	}
	if failed(in.checklist, "linkedin") {
		fixes = append(fixes, fixLinkedIn)
	}
	if failed(in.checklist, "github") {
		fixes = append(fixes, fixGitHub)
	}
	if failed(in.checklist, "bullets") {
		fixes = append(fixes, fixBullets)
	}
	if failed(in.checklist, "dates") {
		fixes = append(fixes, fixDates)
	}

	if !in.sections.Skills {
		fixes = append(fixes, fixSkillsSection)
	}
	if !in.sections.Projects {
		fixes = append(fixes, fixProjectsSection)
	}
	if !in.sections.Experience {
		fixes = append(fixes, fixExperienceSection)
	}
	if !in.sections.Education {
		fixes = append(fixes, fixEducationSection)
	}

	if in.hasJobDescription {
		if in.keywordMatchPercent != nil && *in.keywordMatchPercent < weakKeywordMatchPercent {
			fixes = append(fixes, fixKeywords)
		}
	} else {
		fixes = append(fixes, fixPasteJD)
	}

	if in.wordCount < okMinWords {
		fixes = append(fixes, fixTooShort)
	}
	if in.wordCount > tooLongWords {
		fixes = append(fixes, fixTooLong)
	}

	if len(fixes) > maxFixes {
		fixes = fixes[:maxFixes]
	}
	return fixes
}

// buildIssues derives categorized issues from the failed checks: one per
// failed checklist item, one per missing section, plus length issues.
func buildIssues(checklist []ChecklistItem, sections SectionStatus, wordCount int) []Issue {
	var issues []Issue

	for _, c := range checklist {
		if c.Pass {
			continue
		}
		issues = append(issues, Issue{
			Type:     IssueFormat,
			Severity: severityFor(IssueFormat),
			Field:    c.Key,
			Message:  fmt.Sprintf("%s is missing", c.Label),
			Fix:      checklistFix[c.Key],
		})
	}

	for _, s := range []struct {
		name    string
		present bool
	}{
		{"education", sections.Education},
		{"skills", sections.Skills},
		{"experience", sections.Experience},
		{"projects", sections.Projects},
	} {
		if s.present {
			continue
		}
		issues = append(issues, Issue{
			Type:     IssueSection,
			Severity: severityFor(IssueSection),
			Field:    s.name,
			Message:  fmt.Sprintf("Missing section: %s", s.name),
			Fix:      fmt.Sprintf("Add a %q heading with relevant details.", strings.ToUpper(s.name)),
		})
	}

	if wordCount < okMinWords {
		issues = append(issues, Issue{
			Type:     IssueContent,
			Severity: severityFor(IssueContent),
			Field:    "length",
			Message:  "Resume content is too short",
			Fix:      "Add more bullet points with measurable impact (numbers, scale, results).",
		})
	}
	if wordCount > tooLongWords {
		issues = append(issues, Issue{
			Type:     IssueContent,
			Severity: severityFor(IssueContent),
			Field:    "length",
			Message:  "Resume content is too long",
			Fix:      "Reduce to key achievements. Keep 1–2 pages.",
		})
	}

	return issues
}

// buildExamples emits before/after rewrites, one per triggered condition.
func buildExamples(checklist []ChecklistItem, hasJobDescription bool, keywordMatchPercent *int) []Example {
	var examples []Example

	if failed(checklist, "bullets") {
		examples = append(examples, Example{
			Title: "Bullet Rewrite Example",
			Bad:   "Worked on backend APIs",
			Good:  "Built 8 REST APIs in Node.js + MySQL, improved response time by 35% via indexing and query optimization.",
		})
	}
	if failed(checklist, "dates") {
		examples = append(examples, Example{
			Title: "Date Formatting Example",
			Bad:   "Internship at Company",
			Good:  "Internship — Company | Jan 2026 – Mar 2026",
		})
	}
	if hasJobDescription && keywordMatchPercent != nil && *keywordMatchPercent < weakKeywordMatchPercent {
		examples = append(examples, Example{
			Title: "Keyword Matching Example",
			Bad:   "Skills: Java, HTML, CSS",
			Good:  "Skills: Node.js, Express, MySQL, REST APIs, JWT, Docker, Git (aligned with JD keywords)",
		})
	}

	return examples
}

func buildInsights(wordCount int, keywordMatchPercent *int, matched, missing, fixes []string) Insights {
	advice := "Paste Job Description to calculate keyword match."
	if keywordMatchPercent != nil {
		advice = fmt.Sprintf("Matched %d keywords, missing %d.", len(matched), len(missing))
	}

	topFix := fallbackTopFix
	if len(fixes) > 0 {
		topFix = fixes[0]
	}

	return Insights{
		WordCount:     wordCount,
		KeywordAdvice: advice,
		TopFix:        topFix,
	}
}
