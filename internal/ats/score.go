package ats

import "math"

// Score weights: 35 keywords + 35 sections + 30 format/quality = 100.
const (
	maxSectionPoints      = 35
	maxKeywordPoints      = 35
	baselineKeywordPoints = 15 // used when no job description is supplied

	checklistPoints = 18 // format sub-score from the 6-item checklist
	checklistSize   = 6

	// Word-count quality bands (up to 12 points).
	idealLengthPoints = 12
	okLengthPoints    = 8
	poorLengthPoints  = 4
	idealMinWords     = 250
	idealMaxWords     = 900
	okMinWords        = 180
	tooLongWords      = 1000
)

// Per-section points. Education is weighted slightly lower; a +3 bonus
// applies when all four sections are present, capped at maxSectionPoints.
const (
	educationPoints   = 8
	skillsPoints      = 9
	experiencePoints  = 9
	projectsPoints    = 9
	allSectionsBonus  = 3
)

// levelFor maps a total score to its qualitative level using inclusive
// lower bounds.
func levelFor(score int) Level {
	switch {
	case score >= 80:
		return LevelStrong
	case score >= 60:
		return LevelGood
	case score >= 40:
		return LevelAverage
	default:
		return LevelNeedsImprovement
	}
}

func round(v float64) int {
	return int(math.Round(v))
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// keywordScore converts a match percentage into the keyword sub-score, or
// returns the fixed baseline when no job description was usable.
func keywordScore(matchPercent *int) int {
	if matchPercent == nil {
		return baselineKeywordPoints
	}
	return round(float64(*matchPercent) / 100 * maxKeywordPoints)
}

// sectionScore sums per-section points, adding the all-sections bonus
// capped at the sub-score maximum.
func sectionScore(sections SectionStatus) int {
	points := 0
	if sections.Education {
		points += educationPoints
	}
	if sections.Skills {
		points += skillsPoints
	}
	if sections.Experience {
		points += experiencePoints
	}
	if sections.Projects {
		points += projectsPoints
	}
	if sections.AllPresent() {
		points = min(maxSectionPoints, points+allSectionsBonus)
	}
	return points
}

// formatScore combines the checklist pass ratio (up to 18) with a
// word-count quality band (12 in [250,900], 8 at >=180, 4 otherwise).
func formatScore(checklist []ChecklistItem, wordCount int) int {
	passed := 0
	for _, c := range checklist {
		if c.Pass {
			passed++
		}
	}
	points := round(float64(passed) / checklistSize * checklistPoints)

	switch {
	case wordCount >= idealMinWords && wordCount <= idealMaxWords:
		points += idealLengthPoints
	case wordCount >= okMinWords:
		points += okLengthPoints
	default:
		points += poorLengthPoints
	}
	return points
}

const (
	maxKeywordListLen = 25 // matched/missing keyword list cap in the result
	maxDetectedLinks  = 10
)

func capList(values []string, limit int) []string {
	if len(values) > limit {
		return values[:limit]
	}
	return values
}

// Score runs the full ATS evaluation of resume text against an optional
// job description. It is pure and deterministic: identical inputs always
// produce identical results, and it never fails for any string inputs,
// including empty ones.
func Score(resumeText, jobDescription string) *Result {
	raw := resumeText
	normalized := Normalize(raw)
	normalizedJD := Normalize(jobDescription)

	sections := DetectSections(normalized)

	emails := ExtractEmails(raw)
	phones := ExtractPhones(raw)
	links := ExtractLinks(raw)

	checklist := []ChecklistItem{
		{Key: "email", Label: "Email present", Pass: len(emails) > 0},
		{Key: "phone", Label: "Phone present", Pass: len(phones) > 0},
		{Key: "linkedin", Label: "LinkedIn link present", Pass: links.HasLinkedIn},
		{Key: "github", Label: "GitHub link present", Pass: links.HasGitHub},
		{Key: "dates", Label: "Dates/timelines present", Pass: HasDates(normalized)},
		{Key: "bullets", Label: "Bullet points used", Pass: HasBullets(raw)},
	}

	wordCount := WordCount(normalized)

	var matchedKeywords, missingKeywords []string
	var keywordMatchPercent *int
	if HasJobDescription(normalizedJD) {
		keywords := ExtractKeywords(normalizedJD)
		matchedKeywords, missingKeywords = MatchKeywords(normalized, keywords)
		percent := round(float64(len(matchedKeywords)) / float64(max(1, len(keywords))) * 100)
		keywordMatchPercent = &percent
	}

	breakdown := Breakdown{
		Keywords: keywordScore(keywordMatchPercent),
		Sections: sectionScore(sections),
		Format:   formatScore(checklist, wordCount),
	}
	score := clamp(breakdown.Keywords+breakdown.Sections+breakdown.Format, 0, 100)

	fixes := buildFixes(feedbackInput{
		checklist:           checklist,
		sections:            sections,
		wordCount:           wordCount,
		hasJobDescription:   HasJobDescription(normalizedJD),
		keywordMatchPercent: keywordMatchPercent,
	})
	issues := buildIssues(checklist, sections, wordCount)
	examples := buildExamples(checklist, HasJobDescription(normalizedJD), keywordMatchPercent)
	insights := buildInsights(wordCount, keywordMatchPercent, matchedKeywords, missingKeywords, fixes)

	return &Result{
		SchemaVersion:       SchemaVersion,
		Score:               score,
		Level:               levelFor(score),
		Breakdown:           breakdown,
		SectionStatus:       sections,
		KeywordMatchPercent: keywordMatchPercent,
		MatchedKeywords:     capList(matchedKeywords, maxKeywordListLen),
		MissingKeywords:     capList(missingKeywords, maxKeywordListLen),
		Checklist:           checklist,
		Detected: Detected{
			WordCount: wordCount,
			Emails:    emails,
			Phones:    phones,
			Links:     capList(links.URLs, maxDetectedLinks),
		},
		Fixes:    fixes,
		Issues:   issues,
		Examples: examples,
		Insights: insights,
	}
}
