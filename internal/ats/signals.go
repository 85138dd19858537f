package ats

import (
	"regexp"
	"strings"
)

var (
	emailPattern = regexp.MustCompile(`(?i)[a-z0-9._%+-]+@[a-z0-9.-]+\.[a-z]{2,}`)
	phonePattern = regexp.MustCompile(`(\+?\d{1,3}[\s-]?)?(\(?\d{3,5}\)?[\s-]?)?\d{3,4}[\s-]?\d{4}`)
	linkPattern  = regexp.MustCompile(`(?i)https?://[^\s)]+`)
	yearPattern  = regexp.MustCompile(`\b(19|20)\d{2}\b`)
	monthPattern = regexp.MustCompile(`\b(jan|feb|mar|apr|may|jun|jul|aug|sep|sept|oct|nov|dec)\b`)
	nonDigit     = regexp.MustCompile(`\D`)
)

// bulletMarkers are the literal markers that count as bullet-point usage.
var bulletMarkers = []string{"•", "- ", "– ", "· "}

// sectionSynonyms maps each recognized section to the heading substrings
// that signal its presence in normalized text.
var sectionSynonyms = map[string][]string{
	"education":  {"education", "academic", "b.tech", "bachelor", "masters", "university", "college"},
	"skills":     {"skills", "technical skills", "technologies", "tool", "tooling"},
	"experience": {"experience", "work experience", "internship", "employment", "professional experience"},
	"projects":   {"projects", "project", "personal projects", "academic projects"},
}

// uniq de-duplicates while preserving first-appearance order.
func uniq(values []string) []string {
	seen := make(map[string]bool, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}

// ExtractEmails returns the de-duplicated email addresses found in text,
// in order of first appearance.
func ExtractEmails(text string) []string {
	return uniq(emailPattern.FindAllString(text, -1))
}

// ExtractPhones returns phone-number candidates with at least 10 digits.
// Shorter numeric noise (years, zip codes) is rejected.
func ExtractPhones(text string) []string {
	candidates := phonePattern.FindAllString(text, -1)
	for i, c := range candidates {
		candidates[i] = strings.TrimSpace(c)
	}

	phones := make([]string, 0, len(candidates))
	for _, c := range uniq(candidates) {
		if len(nonDigit.ReplaceAllString(c, "")) >= 10 {
			phones = append(phones, c)
		}
	}
	return phones
}

// Links holds detected hyperlinks and profile-link flags.
type Links struct {
	URLs        []string
	HasLinkedIn bool
	HasGitHub   bool
}

// ExtractLinks returns the de-duplicated http(s) URLs found in text and
// flags whether any of them point at LinkedIn or GitHub.
func ExtractLinks(text string) Links {
	links := Links{URLs: uniq(linkPattern.FindAllString(text, -1))}
	for _, u := range links.URLs {
		lower := strings.ToLower(u)
		if strings.Contains(lower, "linkedin.com") {
			links.HasLinkedIn = true
		}
		if strings.Contains(lower, "github.com") {
			links.HasGitHub = true
		}
	}
	return links
}

// HasBullets reports whether the raw (unnormalized) text uses any bullet
// markers. Normalization would destroy the "- " marker, so raw text is
// required here.
func HasBullets(raw string) bool {
	for _, m := range bulletMarkers {
		if strings.Contains(raw, m) {
			return true
		}
	}
	return false
}

// HasDates reports whether normalized text mentions a 1900-2099 year or a
// month name abbreviation.
func HasDates(normalized string) bool {
	return yearPattern.MatchString(normalized) || monthPattern.MatchString(normalized)
}

// DetectSections checks the normalized text for each section's heading
// synonyms.
func DetectSections(normalized string) SectionStatus {
	present := func(section string) bool {
		for _, synonym := range sectionSynonyms[section] {
			if strings.Contains(normalized, synonym) {
				return true
			}
		}
		return false
	}

	return SectionStatus{
		Education:  present("education"),
		Skills:     present("skills"),
		Experience: present("experience"),
		Projects:   present("projects"),
	}
}
