// Package score computes the relevance heuristic for one matched client.
package score

import (
	"strings"

	"mentionwatch/internal/normalize"
)

// Score bounds.
const (
	Min = 1.0
	Max = 5.0
)

// leadRunes is how much of the body counts as the "lead" for the early
// mention bonus.
const leadRunes = 200

// boostKeywords each add 0.3 when present in the body, once per keyword.
var boostKeywords = []string{
	"album", "single", "tour", "concert", "release", "new", "announces", "performs",
}

// Relevance rates how strongly an entry is about the given client.
// Base 1.0; +2.0 for a title mention; +0.7 for a mention in the first 200
// normalized runes; +0.5 per repeat mention beyond the first; +0.3 per
// boost keyword. Clamped to [1.0, 5.0].
func Relevance(text, client, title string) float64 {
	score := Min

	nt := normalize.Text(text)
	nc := normalize.Text(client)
	ntitle := normalize.Text(title)

	if strings.Contains(ntitle, nc) {
		score += 2.0
	}

	lead := nt
	if r := []rune(nt); len(r) > leadRunes {
		lead = string(r[:leadRunes])
	}
	if strings.Contains(lead, nc) {
		score += 0.7
	}

	if mentions := strings.Count(nt, nc); mentions > 1 {
		score += 0.5 * float64(mentions-1)
	}

	for _, kw := range boostKeywords {
		if strings.Contains(nt, kw) {
			score += 0.3
		}
	}

	if score > Max {
		score = Max
	}
	return score
}
