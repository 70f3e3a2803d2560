package feed

import (
	"net/url"
	"strings"
	"time"

	"mentionwatch/internal/htmltext"
)

// Placeholder values for entries missing basic fields. Such entries are
// kept, not dropped.
const (
	NoTitle     = "No Title"
	NoLink      = "No Link"
	UnknownDate = "Unknown Date"
)

// maxSearchableRunes bounds matching cost on pathological feeds.
const maxSearchableRunes = 20000

// Entry is one parsed feed item. Optional fields are pointers or empty
// strings; absence is a value, not a lookup failure.
type Entry struct {
	Title       string
	Description string
	Content     string
	Link        string
	GUID        string
	Published   *time.Time
	Updated     *time.Time
}

// Timestamp resolves the entry's recency instant by trying the published
// and updated fields in that priority order. Nil when the feed supplied
// no parsable date.
func (e *Entry) Timestamp() *time.Time {
	for _, t := range []*time.Time{e.Published, e.Updated} {
		if t != nil {
			return t
		}
	}
	return nil
}

// WithinWindow reports whether the entry falls inside the lookback window
// ending at now. Entries with no resolvable timestamp are accepted.
func (e *Entry) WithinWindow(now time.Time, days int) bool {
	ts := e.Timestamp()
	if ts == nil {
		return true
	}
	cutoff := now.Add(-time.Duration(days) * 24 * time.Hour)
	return !ts.Before(cutoff)
}

// DisplayDate renders the timestamp in local time, or UnknownDate.
func (e *Entry) DisplayDate() string {
	ts := e.Timestamp()
	if ts == nil {
		return UnknownDate
	}
	return ts.Local().Format("2006-01-02 15:04")
}

// SearchableText joins title, description and content into the text the
// client patterns run against, capped at 20k runes.
func (e *Entry) SearchableText() string {
	parts := make([]string, 0, 3)
	for _, p := range []string{e.Title, e.Description, e.Content} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	joined := strings.Join(parts, " ")
	if runes := []rune(joined); len(runes) > maxSearchableRunes {
		return string(runes[:maxSearchableRunes])
	}
	return joined
}

// DisplayTitle returns the title or its placeholder.
func (e *Entry) DisplayTitle() string {
	if e.Title == "" {
		return NoTitle
	}
	return e.Title
}

// DisplayLink returns the link or its placeholder.
func (e *Entry) DisplayLink() string {
	if e.Link == "" {
		return NoLink
	}
	return e.Link
}

// CleanDescription is the HTML-stripped description capped at max runes,
// with an ellipsis marker when truncated.
func (e *Entry) CleanDescription(max int) string {
	return htmltext.Truncate(htmltext.Clean(e.Description), max)
}

// Domain extracts the lower-cased host of the entry link, minus a leading
// "www.". Entries without a usable link report "unknown".
func (e *Entry) Domain() string {
	u, err := url.Parse(e.Link)
	if err != nil || u.Host == "" {
		return "unknown"
	}
	host := strings.ToLower(u.Host)
	return strings.TrimPrefix(host, "www.")
}
