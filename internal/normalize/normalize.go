// Package normalize folds text for accent-insensitive matching.
package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripMarks decomposes (NFKD) and drops combining marks, so "É" and "e"
// compare equal after Text.
var stripMarks = transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)))

// Text lower-cases s and removes diacritics. Total: on any transform
// error the lower-cased input is returned unchanged.
func Text(s string) string {
	lowered := strings.ToLower(s)
	result, _, err := transform.String(stripMarks, lowered)
	if err != nil {
		return lowered
	}
	return result
}
