package app

import (
	"context"
	"time"

	"mentionwatch/internal/cache"
	"mentionwatch/internal/feed"
	"mentionwatch/internal/logger"
	"mentionwatch/internal/scan"
)

// CachedFetch layers the in-memory feed cache over a fetch function using
// the scanner's fetch seam. Failed fetches are never cached.
func CachedFetch(c *cache.Cache, ttl time.Duration, next scan.FetchFunc) scan.FetchFunc {
	return func(ctx context.Context, feedURL string) ([]feed.Entry, error) {
		if entries, ok := c.Get(feedURL); ok {
			logger.Debug("feed cache hit", "url", feedURL)
			return entries, nil
		}
		entries, err := next(ctx, feedURL)
		if err != nil {
			return nil, err
		}
		c.Set(feedURL, entries, ttl)
		return entries, nil
	}
}
