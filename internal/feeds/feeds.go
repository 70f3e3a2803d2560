// Package feeds loads the watchlist: the clients to look for and the
// feeds to look in.
package feeds

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Watchlist is the YAML config structure
// clients:
//   - Matt Corby
// feeds:
//   - https://...
type Watchlist struct {
	Clients []string `yaml:"clients"`
	Feeds   []string `yaml:"feeds"`
}

// Load reads the watchlist from a YAML file. Entries are trimmed and
// case-insensitively deduplicated, preserving first-seen order.
func Load(path string) (*Watchlist, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var wl Watchlist
	dec := yaml.NewDecoder(f)
	if err := dec.Decode(&wl); err != nil {
		return nil, fmt.Errorf("parse watchlist %s: %w", path, err)
	}

	wl.Clients = uniqueTrimmed(wl.Clients)
	wl.Feeds = uniqueTrimmed(wl.Feeds)

	if len(wl.Feeds) == 0 {
		return nil, fmt.Errorf("watchlist %s has no feeds", path)
	}
	return &wl, nil
}

func uniqueTrimmed(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		key := strings.ToLower(v)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, v)
	}
	return out
}
