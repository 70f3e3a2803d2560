// Package htmltext turns feed HTML fragments into plain display text.
package htmltext

import (
	"html"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var tagPattern = regexp.MustCompile(`<[^>]+>`)

// Clean strips tags, collapses whitespace and unescapes entities.
func Clean(s string) string {
	if s == "" {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		// goquery rarely fails on fragments; fall back to a crude strip.
		plain := tagPattern.ReplaceAllString(s, " ")
		return collapse(html.UnescapeString(plain))
	}
	return collapse(doc.Text())
}

// Truncate caps s at max runes, appending "..." when anything was cut.
func Truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
