package ingestion

import (
	"bytes"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// extractHTML strips markup from an HTML resume export, dropping script
// and style content, and keeps block elements on their own lines.
func extractHTML(data []byte) (string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		return "", err
	}

	doc.Find("script, style, noscript").Remove()

	// Break block-level elements onto separate lines before flattening,
	// otherwise headings run into the text that follows them.
	var sb strings.Builder
	doc.Find("body").Each(func(_ int, body *goquery.Selection) {
		body.Find("p, div, li, h1, h2, h3, h4, h5, h6, br, tr").Each(func(_ int, s *goquery.Selection) {
			s.AfterHtml("\n")
		})
		sb.WriteString(body.Text())
	})

	text := sb.String()
	if text == "" {
		// Fragment without a body element; fall back to the whole tree.
		text = doc.Text()
	}
	return text, nil
}
