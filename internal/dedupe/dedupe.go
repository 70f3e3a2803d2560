// Package dedupe derives stable identity keys for feed entries and tracks
// which keys a scan has already seen, so the same story syndicated through
// several feeds is only reported once.
package dedupe

import (
	"crypto/sha1"
	"encoding/hex"
	"net/url"
	"strings"
	"sync"
)

// trackingParams are query parameters stripped during link canonicalization.
// Any "utm_"-prefixed parameter is stripped as well.
var trackingParams = map[string]struct{}{
	"fbclid": {},
	"gclid":  {},
	"igshid": {},
}

func isTrackingParam(key string) bool {
	if strings.HasPrefix(key, "utm_") {
		return true
	}
	_, ok := trackingParams[key]
	return ok
}

// CanonicalURL normalizes a link for identity comparison: the host is
// lower-cased, the fragment dropped and tracking parameters removed while
// the remaining query order is preserved. Unparsable input is returned
// unchanged.
func CanonicalURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	u.Host = strings.ToLower(u.Host)
	u.Fragment = ""

	if u.RawQuery != "" {
		// url.Values would reorder parameters; filter the raw string instead.
		parts := strings.Split(u.RawQuery, "&")
		kept := parts[:0]
		for _, part := range parts {
			key := part
			if i := strings.IndexByte(part, '='); i >= 0 {
				key = part[:i]
			}
			if !isTrackingParam(key) {
				kept = append(kept, part)
			}
		}
		u.RawQuery = strings.Join(kept, "&")
	}
	return u.String()
}

// Key builds the dedupe key for an entry: the guid when present, otherwise
// canonical link plus lower-cased trimmed title. The key is hashed only to
// bound memory; collisions are an accepted negligible risk.
func Key(guid, link, title string) string {
	raw := strings.TrimSpace(guid)
	if raw == "" {
		raw = CanonicalURL(link) + "|" + strings.ToLower(strings.TrimSpace(title))
	}
	sum := sha1.Sum([]byte(raw))
	return hex.EncodeToString(sum[:])
}

// Seen is the scan-wide set of observed keys. The check-then-insert step is
// serialized so two feeds cannot both claim a not-yet-seen key.
type Seen struct {
	mu   sync.Mutex
	keys map[string]struct{}
}

// NewSeen returns an empty set scoped to one scan.
func NewSeen() *Seen {
	return &Seen{keys: make(map[string]struct{})}
}

// CheckAndAdd records the key and reports whether it was new.
func (s *Seen) CheckAndAdd(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, dup := s.keys[key]; dup {
		return false
	}
	s.keys[key] = struct{}{}
	return true
}

// Len returns how many distinct keys have been recorded.
func (s *Seen) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.keys)
}
