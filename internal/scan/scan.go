// Package scan runs the fetch→parse→match→score→dedupe→rank pipeline
// across all feeds concurrently.
package scan

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"mentionwatch/internal/dedupe"
	"mentionwatch/internal/feed"
	"mentionwatch/internal/logger"
	"mentionwatch/internal/metrics"
	"mentionwatch/internal/normalize"
	"mentionwatch/internal/pattern"
	"mentionwatch/internal/score"
)

// descriptionRunes caps the HTML-stripped description on a match record.
const descriptionRunes = 300

// Match is one (entry, client) hit. Records are immutable once collected;
// ownership passes to the caller when Scan returns.
type Match struct {
	Client      string  `json:"client"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Link        string  `json:"link"`
	Published   string  `json:"published"`
	Source      string  `json:"source"`
	Domain      string  `json:"domain"`
	FoundAt     string  `json:"found_at"`
	Relevance   float64 `json:"relevance_score"`
}

// FetchFunc retrieves and decodes one feed. The seam exists so callers
// can substitute a cached or fake fetcher without touching scan logic.
type FetchFunc func(ctx context.Context, feedURL string) ([]feed.Entry, error)

// Options controls one scan invocation.
type Options struct {
	LookbackDays int
	Workers      int
	Fetch        FetchFunc
	OnProgress   func(done, total int) // optional; completion order only
	Now          func() time.Time      // optional clock override
}

func (o *Options) validate() error {
	if o.LookbackDays <= 0 {
		return fmt.Errorf("lookback days must be positive, got %d", o.LookbackDays)
	}
	if o.Workers <= 0 {
		return fmt.Errorf("worker count must be positive, got %d", o.Workers)
	}
	if o.Fetch == nil {
		return fmt.Errorf("fetch function is required")
	}
	return nil
}

// Monitor matches feed entries against a fixed client watchlist. The
// compiled patterns live for the monitor's lifetime; feeds are stateless
// inputs.
type Monitor struct {
	patterns *pattern.Set
	feeds    []string
}

// NewMonitor compiles the client patterns once. Clients whose normalized
// names are too short simply never match.
func NewMonitor(clients, feeds []string) *Monitor {
	return &Monitor{
		patterns: pattern.CompileAll(clients),
		feeds:    feeds,
	}
}

// Clients returns how many usable client patterns were compiled.
func (m *Monitor) Clients() int { return m.patterns.Len() }

type fetchResult struct {
	feedURL string
	entries []feed.Entry
	err     error
}

// Scan fans fetch work out across a bounded worker pool and folds results
// into a ranked match list as they complete. A feed that fails after its
// retry budget contributes zero entries; only invalid options abort the
// scan. Partial results are always returned.
func (m *Monitor) Scan(ctx context.Context, opts Options) ([]Match, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	now := time.Now
	if opts.Now != nil {
		now = opts.Now
	}

	started := now()
	defer func() {
		metrics.Global.RecordScanTime(time.Since(started))
		metrics.Global.SetLastRun()
	}()

	total := len(m.feeds)
	workers := opts.Workers
	if workers > total {
		workers = total
	}

	jobs := make(chan string)
	results := make(chan fetchResult)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for feedURL := range jobs {
				entries, err := opts.Fetch(ctx, feedURL)
				results <- fetchResult{feedURL: feedURL, entries: entries, err: err}
			}
		}()
	}

	go func() {
		defer close(jobs)
		for _, feedURL := range m.feeds {
			select {
			case jobs <- feedURL:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	// Results arrive in completion order; the final sort makes the output
	// independent of it. Draining in one goroutine serializes the
	// check-then-insert dedupe step and the match list appends.
	seen := dedupe.NewSeen()
	var matches []Match
	done := 0

	for result := range results {
		done++
		if opts.OnProgress != nil {
			opts.OnProgress(done, total)
		}

		if result.err != nil {
			logger.Error("feed failed", "url", result.feedURL, "error", result.err)
			metrics.Global.IncrementFeedErrors()
			continue
		}
		metrics.Global.IncrementFeedsFetched()
		logger.Debug("feed fetched", "url", result.feedURL, "entries", len(result.entries))

		matches = append(matches, m.collect(result, seen, opts.LookbackDays, now())...)
	}

	sortMatches(matches)
	metrics.Global.AddMatchesFound(int64(len(matches)))
	return matches, nil
}

// collect filters, dedupes, matches and scores one feed's entries.
func (m *Monitor) collect(result fetchResult, seen *dedupe.Seen, lookbackDays int, now time.Time) []Match {
	var out []Match
	foundAt := now.Format("2006-01-02 15:04:05")

	for i := range result.entries {
		entry := &result.entries[i]
		metrics.Global.AddEntriesProcessed(1)

		if !entry.WithinWindow(now, lookbackDays) {
			continue
		}

		key := dedupe.Key(entry.GUID, entry.Link, entry.Title)
		if !seen.CheckAndAdd(key) {
			metrics.Global.IncrementDuplicatesFiltered()
			continue
		}

		text := entry.SearchableText()
		if strings.TrimSpace(text) == "" {
			continue
		}

		matched := m.patterns.Match(normalize.Text(text))
		if len(matched) == 0 {
			continue
		}

		title := entry.DisplayTitle()
		record := Match{
			Title:       title,
			Description: entry.CleanDescription(descriptionRunes),
			Link:        entry.DisplayLink(),
			Published:   entry.DisplayDate(),
			Source:      result.feedURL,
			Domain:      entry.Domain(),
			FoundAt:     foundAt,
		}
		for _, client := range matched {
			record.Client = client
			record.Relevance = score.Relevance(text, client, title)
			out = append(out, record)
		}
	}
	return out
}

// sortMatches orders by relevance descending, then domain and title
// ascending, so equal-score output is deterministic.
func sortMatches(matches []Match) {
	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Relevance != matches[j].Relevance {
			return matches[i].Relevance > matches[j].Relevance
		}
		if matches[i].Domain != matches[j].Domain {
			return matches[i].Domain < matches[j].Domain
		}
		return matches[i].Title < matches[j].Title
	})
}
