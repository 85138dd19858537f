package ats

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractEmails(t *testing.T) {
	text := "Contact: Jane.Doe@Example.COM or jane.doe@example.com backup jd+work@mail.co"
	emails := ExtractEmails(text)

	// Case-preserving, de-duplicated by exact token, first-appearance order.
	assert.Equal(t, []string{"Jane.Doe@Example.COM", "jane.doe@example.com", "jd+work@mail.co"}, emails)
}

func TestExtractEmails_None(t *testing.T) {
	assert.Empty(t, ExtractEmails("no contact info here"))
}

func TestExtractPhones_RequiresTenDigits(t *testing.T) {
	// Years and short sequences must be rejected.
	assert.Empty(t, ExtractPhones("Graduated 2019, GPA 3.9"))

	phones := ExtractPhones("Call +1 (555) 123-4567 or 9876543210")
	assert.Len(t, phones, 2)
	assert.Contains(t, phones[0], "555")
}

func TestExtractPhones_Dedup(t *testing.T) {
	phones := ExtractPhones("9876543210 9876543210")
	assert.Equal(t, []string{"9876543210"}, phones)
}

func TestExtractLinks(t *testing.T) {
	text := "See https://www.linkedin.com/in/jane and https://github.com/jane (plus http://example.com/page)"
	links := ExtractLinks(text)

	assert.True(t, links.HasLinkedIn)
	assert.True(t, links.HasGitHub)
	assert.Equal(t, []string{
		"https://www.linkedin.com/in/jane",
		"https://github.com/jane",
		"http://example.com/page",
	}, links.URLs)
}

func TestExtractLinks_NoProfiles(t *testing.T) {
	links := ExtractLinks("homepage at https://janedoe.dev")
	assert.False(t, links.HasLinkedIn)
	assert.False(t, links.HasGitHub)
	assert.Len(t, links.URLs, 1)
}

func TestHasBullets(t *testing.T) {
	assert.True(t, HasBullets("• Shipped the thing"))
	assert.True(t, HasBullets("- Shipped the thing"))
	assert.True(t, HasBullets("– Shipped the thing"))
	assert.True(t, HasBullets("· Shipped the thing"))
	assert.False(t, HasBullets("Shipped the thing"))
	// A hyphen without a trailing space is not a bullet.
	assert.False(t, HasBullets("state-of-the-art"))
}

func TestHasDates(t *testing.T) {
	assert.True(t, HasDates("worked there 2021 to 2023"))
	assert.True(t, HasDates("jan 2020"))
	assert.True(t, HasDates("sept cohort"))
	assert.False(t, HasDates("worked there for three years"))
	// Out-of-range years and embedded digits don't count.
	assert.False(t, HasDates("badge 18990 and id 21000"))
	// Month fragments inside words don't count.
	assert.False(t, HasDates("a decade of novel sepia"))
}

func TestDetectSections_Synonyms(t *testing.T) {
	status := DetectSections("b.tech degree, technical skills, internship, personal projects")
	assert.True(t, status.Education)
	assert.True(t, status.Skills)
	assert.True(t, status.Experience)
	assert.True(t, status.Projects)
	assert.True(t, status.AllPresent())
}

func TestDetectSections_Absent(t *testing.T) {
	status := DetectSections("alpha bravo charlie delta")
	assert.False(t, status.Education)
	assert.False(t, status.Skills)
	assert.False(t, status.Experience)
	assert.False(t, status.Projects)
	assert.False(t, status.AllPresent())
}

func TestUniq_PreservesOrder(t *testing.T) {
	assert.Equal(t, []string{"b", "a", "c"}, uniq([]string{"b", "a", "b", "c", "a"}))
}
