// Package app wires the configuration, fetch pipeline and scanner
// together for one monitoring run.
package app

import (
	"context"
	"fmt"

	"mentionwatch/internal/cache"
	"mentionwatch/internal/config"
	"mentionwatch/internal/feed"
	"mentionwatch/internal/feeds"
	"mentionwatch/internal/fetch"
	"mentionwatch/internal/logger"
	"mentionwatch/internal/scan"
)

// previewLimit caps the per-run stdout listing; the full ranked list is
// what Run's caller consumes.
const previewLimit = 25

// Run executes one scan using environment configuration and prints a
// ranked summary.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	wl, err := feeds.Load(cfg.WatchlistPath)
	if err != nil {
		return fmt.Errorf("load watchlist: %w", err)
	}

	fetcher := fetch.NewClient(fetch.Config{
		ConnectTimeout:    cfg.ConnectTimeout,
		ReadTimeout:       cfg.ReadTimeout,
		ConnectRetries:    cfg.ConnectRetries,
		ConnectRetryDelay: cfg.ConnectRetryDelay,
		RequestRetries:    cfg.RequestRetries,
		RequestRetryDelay: cfg.RequestRetryDelay,
		UserAgent:         cfg.UserAgent,
		HostMinInterval:   cfg.HostMinInterval,
	})

	fetchFeed := FeedPipeline(fetcher)
	if cfg.CacheTTL > 0 {
		fetchFeed = CachedFetch(cache.New(), cfg.CacheTTL, fetchFeed)
	}

	monitor := scan.NewMonitor(wl.Clients, wl.Feeds)
	logger.Info("starting scan",
		"clients", monitor.Clients(),
		"feeds", len(wl.Feeds),
		"lookback_days", cfg.LookbackDays,
		"workers", cfg.Workers,
	)

	matches, err := monitor.Scan(ctx, scan.Options{
		LookbackDays: cfg.LookbackDays,
		Workers:      cfg.Workers,
		Fetch:        fetchFeed,
		OnProgress: func(done, total int) {
			logger.Debug("scan progress", "done", done, "total", total)
		},
	})
	if err != nil {
		return fmt.Errorf("scan: %w", err)
	}

	printMatches(matches)
	return nil
}

// FeedPipeline composes the HTTP fetcher with the feed decoder into the
// scanner's fetch seam.
func FeedPipeline(client *fetch.Client) scan.FetchFunc {
	return func(ctx context.Context, feedURL string) ([]feed.Entry, error) {
		res, err := client.Get(ctx, feedURL)
		if err != nil {
			return nil, err
		}
		return feed.Parse(res.Body, res.Encoding), nil
	}
}

func printMatches(matches []scan.Match) {
	fmt.Printf("Found %d mentions\n", len(matches))
	for i, m := range matches {
		if i >= previewLimit {
			fmt.Printf("... and %d more\n", len(matches)-previewLimit)
			break
		}
		fmt.Println("---")
		fmt.Printf("[%.1f] %s: %s\n", m.Relevance, m.Client, m.Title)
		fmt.Printf("%s | %s\n", m.Domain, m.Published)
		if m.Description != "" {
			fmt.Printf("%s\n", m.Description)
		}
		fmt.Printf("%s\n", m.Link)
	}
}
