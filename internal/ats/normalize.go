package ats

import "strings"

// Normalize lowercases text, collapses every run of whitespace to a single
// space, and trims leading/trailing whitespace. Empty input yields "".
func Normalize(text string) string {
	return strings.Join(strings.Fields(strings.ToLower(text)), " ")
}

// WordCount counts whitespace-separated words in already-normalized text.
func WordCount(normalized string) int {
	return len(strings.Fields(normalized))
}
