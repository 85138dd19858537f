package ats

import (
	"regexp"
	"strings"
)

const (
	// minJobDescriptionChars is the normalized length a job description must
	// exceed before keyword matching runs at all.
	minJobDescriptionChars = 20

	// maxKeywords caps how many keywords are extracted from a job description.
	maxKeywords = 35

	// minKeywordLength drops short tokens that carry no signal.
	minKeywordLength = 3
)

// stopWords are common English function words excluded from keyword
// extraction.
var stopWords = map[string]bool{
	"the": true, "and": true, "for": true, "with": true, "to": true,
	"in": true, "of": true, "a": true, "an": true, "is": true,
	"are": true, "on": true, "as": true, "at": true, "you": true,
	"your": true, "we": true, "our": true, "will": true, "have": true,
	"has": true, "be": true, "this": true, "that": true, "from": true,
	"or": true, "by": true,
}

var nonAlphanumeric = regexp.MustCompile(`[^a-z0-9\s]`)

// HasJobDescription reports whether the normalized job description is long
// enough for keyword matching. Callers must check this before relying on a
// keyword match percentage.
func HasJobDescription(normalized string) bool {
	return len(normalized) > minJobDescriptionChars
}

// ExtractKeywords derives up to 35 unique lowercase alphanumeric tokens of
// length >= 3 from a job description, in first-occurrence order, after
// stop-word filtering. Returns nil for an absent or too-short description.
func ExtractKeywords(jobDescription string) []string {
	normalized := Normalize(jobDescription)
	if !HasJobDescription(normalized) {
		return nil
	}

	words := strings.Fields(nonAlphanumeric.ReplaceAllString(normalized, " "))

	keywords := make([]string, 0, maxKeywords)
	seen := make(map[string]bool, len(words))
	for _, w := range words {
		if len(w) < minKeywordLength || stopWords[w] || seen[w] {
			continue
		}
		seen[w] = true
		keywords = append(keywords, w)
		if len(keywords) == maxKeywords {
			break
		}
	}
	return keywords
}

// MatchKeywords partitions keywords into those found as substrings of the
// normalized resume text and those missing from it.
func MatchKeywords(normalizedResume string, keywords []string) (matched, missing []string) {
	for _, k := range keywords {
		if strings.Contains(normalizedResume, k) {
			matched = append(matched, k)
		} else {
			missing = append(missing, k)
		}
	}
	return matched, missing
}
