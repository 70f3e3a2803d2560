package metrics

import (
	"sync"
	"time"
)

type Metrics struct {
	mu sync.RWMutex

	// Counters
	FeedsFetched       int64
	FeedErrors         int64
	EntriesProcessed   int64
	DuplicatesFiltered int64
	MatchesFound       int64

	// Timings
	LastScanTime    time.Duration
	AverageScanTime time.Duration
	TotalScanTime   time.Duration
	ScanCount       int64

	// Status
	LastRunTime   time.Time
	LastErrorTime time.Time
	LastError     string
	IsHealthy     bool
}

var Global = &Metrics{IsHealthy: true}

func (m *Metrics) IncrementFeedsFetched() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FeedsFetched++
}

func (m *Metrics) IncrementFeedErrors() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FeedErrors++
}

func (m *Metrics) AddEntriesProcessed(n int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.EntriesProcessed += n
}

func (m *Metrics) IncrementDuplicatesFiltered() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DuplicatesFiltered++
}

func (m *Metrics) AddMatchesFound(n int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.MatchesFound += n
}

func (m *Metrics) RecordScanTime(duration time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.LastScanTime = duration
	m.TotalScanTime += duration
	m.ScanCount++

	if m.ScanCount > 0 {
		m.AverageScanTime = m.TotalScanTime / time.Duration(m.ScanCount)
	}
}

func (m *Metrics) SetLastRun() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastRunTime = time.Now()
	m.IsHealthy = true
}

func (m *Metrics) SetError(err string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastError = err
	m.LastErrorTime = time.Now()
	m.IsHealthy = false
}

func (m *Metrics) GetStats() map[string]interface{} {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return map[string]interface{}{
		"feeds_fetched":        m.FeedsFetched,
		"feed_errors":          m.FeedErrors,
		"entries_processed":    m.EntriesProcessed,
		"duplicates_filtered":  m.DuplicatesFiltered,
		"matches_found":        m.MatchesFound,
		"last_scan_time_ms":    m.LastScanTime.Milliseconds(),
		"average_scan_time_ms": m.AverageScanTime.Milliseconds(),
		"last_run_time":        m.LastRunTime.Format(time.RFC3339),
		"last_error_time":      m.LastErrorTime.Format(time.RFC3339),
		"last_error":           m.LastError,
		"is_healthy":           m.IsHealthy,
	}
}
