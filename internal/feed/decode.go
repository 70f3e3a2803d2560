// Package feed decodes fetched payloads into entries ready for matching.
//
// Decoding is best-effort and total: anything that is not recognizable
// feed XML, or that the lenient parser cannot salvage, yields zero
// entries rather than an error.
package feed

import (
	"bytes"
	"strings"
	"unicode/utf8"

	"github.com/mmcdole/gofeed"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/htmlindex"

	"mentionwatch/internal/logger"
)

// sniffLen is how many leading bytes are inspected for feed markers.
const sniffLen = 200

var feedMarkers = [][]byte{
	[]byte("<rss"),
	[]byte("<feed"),
	[]byte("<?xml"),
}

// looksLikeFeed reports whether the payload starts like RSS/Atom XML.
// HTML error pages and other junk are rejected before any parse effort.
func looksLikeFeed(data []byte) bool {
	head := data
	if len(head) > sniffLen {
		head = head[:sniffLen]
	}
	head = bytes.ToLower(head)
	for _, marker := range feedMarkers {
		if bytes.Contains(head, marker) {
			return true
		}
	}
	return false
}

// utf8Hints are charset names handled by the validity check below, not by
// a table decoder.
func isUTF8Hint(hint string) bool {
	switch hint {
	case "", "utf-8", "utf8", "utf-8-sig":
		return true
	}
	return false
}

// decodeText converts raw bytes to text trying, in order: the hinted
// charset, UTF-8, and Latin-1. Latin-1 accepts any byte sequence, so the
// function always produces something.
func decodeText(data []byte, hint string) string {
	hint = strings.ToLower(strings.TrimSpace(hint))
	if !isUTF8Hint(hint) {
		if enc, err := htmlindex.Get(hint); err == nil && enc != nil {
			if out, err := enc.NewDecoder().Bytes(data); err == nil {
				return string(out)
			}
		}
	}
	if utf8.Valid(data) {
		return string(data)
	}
	if out, err := charmap.ISO8859_1.NewDecoder().Bytes(data); err == nil {
		return string(out)
	}
	return string(data)
}

// Parse turns a fetched payload into entries. hint is the charset declared
// by the server, if any.
func Parse(data []byte, hint string) []Entry {
	if !looksLikeFeed(data) {
		return nil
	}

	text := decodeText(data, hint)
	text = strings.TrimLeft(text, "\ufeff \t\r\n")

	parsed, err := gofeed.NewParser().ParseString(text)
	if err != nil || parsed == nil {
		logger.Debug("feed parse failed", "error", err)
		return nil
	}

	entries := make([]Entry, 0, len(parsed.Items))
	for _, item := range parsed.Items {
		if item == nil {
			continue
		}
		entries = append(entries, fromItem(item))
	}
	return entries
}

func fromItem(item *gofeed.Item) Entry {
	e := Entry{
		Title:       item.Title,
		Description: item.Description,
		Content:     item.Content,
		Link:        item.Link,
		GUID:        item.GUID,
	}
	if item.PublishedParsed != nil {
		t := item.PublishedParsed.UTC()
		e.Published = &t
	}
	if item.UpdatedParsed != nil {
		t := item.UpdatedParsed.UTC()
		e.Updated = &t
	}
	return e
}
