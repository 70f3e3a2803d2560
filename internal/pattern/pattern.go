// Package pattern compiles client names into boundary-anchored matchers.
//
// Each name yields four literal variants: the bare name, the possessive
// form ("name's" with a straight, curly or modifier-letter apostrophe),
// "@name" and "#name". A variant only matches when it is not adjacent to
// a word character, so "Art" never matches inside "Artisan" while
// "(Corby)" and "Corby," still hit.
package pattern

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"mentionwatch/internal/normalize"
)

// apostrophes accepted in possessive forms: U+0027, U+2019, U+02BC.
const aposClass = `['\x{2019}\x{02BC}]`

// RE2 has no lookbehind, so the word boundary is spelled out as guards:
// the variant must sit at the text edge or next to a non-word rune.
const (
	startBound = `(?:\A|[^\p{L}\p{N}_])`
	endBound   = `(?:[^\p{L}\p{N}_]|\z)`
)

// MinNameRunes is the minimum normalized length for a usable client name.
// Shorter names are too noisy to match.
const MinNameRunes = 3

// Pattern is a compiled matcher for one client name.
type Pattern struct {
	Client string // original name as supplied by the caller
	re     *regexp.Regexp
}

// Compile builds the matcher for one client name. It returns nil (and no
// error) for names whose normalized form is shorter than MinNameRunes.
func Compile(name string) (*Pattern, error) {
	base := strings.TrimSpace(normalize.Text(name))
	if utf8.RuneCountInString(base) < MinNameRunes {
		return nil, nil
	}

	quoted := regexp.QuoteMeta(base)
	variants := []string{
		quoted,
		quoted + aposClass + "s",
		"@" + quoted,
		"#" + quoted,
	}

	expr := "(?i)" + startBound + "(?:" + strings.Join(variants, "|") + ")" + endBound
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("compile pattern for %q: %w", name, err)
	}
	return &Pattern{Client: name, re: re}, nil
}

// MatchString reports whether the already-normalized text mentions the client.
func (p *Pattern) MatchString(normText string) bool {
	return p.re.MatchString(normText)
}

// Set holds the compiled matchers for a scan, in client order.
type Set struct {
	patterns []*Pattern
}

// CompileAll compiles every usable client name. Too-short names are skipped
// silently; a name that fails to compile loses only its own matcher.
func CompileAll(names []string) *Set {
	s := &Set{}
	for _, name := range names {
		p, err := Compile(name)
		if err != nil || p == nil {
			continue
		}
		s.patterns = append(s.patterns, p)
	}
	return s
}

// Len returns the number of compiled matchers.
func (s *Set) Len() int { return len(s.patterns) }

// Match returns the clients mentioned in the normalized text, preserving
// the order the names were supplied in.
func (s *Set) Match(normText string) []string {
	var matched []string
	for _, p := range s.patterns {
		if p.MatchString(normText) {
			matched = append(matched, p.Client)
		}
	}
	return matched
}
