package tracker

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	clicksTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "stashclicker_clicks_total",
		Help: "The total number of synthetic clicks issued, partitioned by click mode",
	}, []string{"mode"})

	macroRunsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "stashclicker_macro_runs_total",
		Help: "The total number of macro runs, partitioned by part and outcome",
	}, []string{"part", "outcome"})

	hotkeyEdgesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "stashclicker_hotkey_edges_total",
		Help: "The total number of hotkey rising edges, partitioned by role",
	}, []string{"role"})

	autoclickEnabled = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "stashclicker_autoclick_enabled",
		Help: "1 while autoclicking is enabled",
	})
)

// FlushInterval is how often buffered counts are written to the database.
const FlushInterval = 5 * time.Second

type TimePoint struct {
	Time  int64 `json:"time"` // Unix timestamp
	Count int   `json:"count"`
}

type MacroCount struct {
	Part    string `json:"part"`
	Outcome string `json:"outcome"`
	Count   int    `json:"count"`
}

type Stats struct {
	Clicks       int            `json:"clicks"`
	ClicksByMode map[string]int `json:"clicks_by_mode"`
	Macros       []MacroCount   `json:"macros"`
	History      []TimePoint    `json:"history"`
	PeakPerMin   int            `json:"peak_per_minute"`
}

type clickKey struct {
	minute int64
	mode   string
}

type macroKey struct {
	minute        int64
	part, outcome string
}

// Tracker counts clicks and macro runs. Counts go to prometheus
// immediately and to sqlite in per-minute buckets on every flush.
type Tracker struct {
	mu     sync.Mutex
	db     *sql.DB
	logger *slog.Logger
	now    func() time.Time

	clicks map[clickKey]int
	macros map[macroKey]int
}

// DefaultDataDir returns $XDG_DATA_HOME/stashclicker or its home fallback.
func DefaultDataDir() (string, error) {
	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("get user home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataDir, "stashclicker"), nil
}

// Open opens (creating if needed) the activity database in dir.
func Open(dir string, logger *slog.Logger) (*Tracker, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create data directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", filepath.Join(dir, "activity.db"))
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	db.SetMaxOpenConns(1)

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS clicks (
			minute INTEGER,
			mode TEXT,
			count INTEGER,
			PRIMARY KEY (minute, mode)
		);
		CREATE TABLE IF NOT EXISTS macro_runs (
			minute INTEGER,
			part TEXT,
			outcome TEXT,
			count INTEGER,
			PRIMARY KEY (minute, part, outcome)
		);
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("create tables: %w", err)
	}

	return &Tracker{
		db:     db,
		logger: logger,
		now:    time.Now,
		clicks: make(map[clickKey]int),
		macros: make(map[macroKey]int),
	}, nil
}

// Run flushes buffered counts every FlushInterval until ctx is done, then
// flushes once more.
func (t *Tracker) Run(ctx context.Context) {
	ticker := time.NewTicker(FlushInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			t.Flush()
			return
		case <-ticker.C:
			t.Flush()
		}
	}
}

// Close flushes and closes the database.
func (t *Tracker) Close() error {
	t.Flush()
	return t.db.Close()
}

func (t *Tracker) bucket() int64 {
	return t.now().Truncate(time.Minute).Unix()
}

// TrackClick counts one click of mode.
func (t *Tracker) TrackClick(mode string) {
	clicksTotal.WithLabelValues(mode).Inc()

	t.mu.Lock()
	defer t.mu.Unlock()
	t.clicks[clickKey{minute: t.bucket(), mode: mode}]++
}

// TrackMacro counts one macro run.
func (t *Tracker) TrackMacro(part, outcome string) {
	macroRunsTotal.WithLabelValues(part, outcome).Inc()

	t.mu.Lock()
	defer t.mu.Unlock()
	t.macros[macroKey{minute: t.bucket(), part: part, outcome: outcome}]++
}

// TrackHotkey counts a hotkey edge. Edges are not persisted.
func (t *Tracker) TrackHotkey(role string) {
	hotkeyEdgesTotal.WithLabelValues(role).Inc()
}

// SetEnabled mirrors the autoclick enabled flag.
func (t *Tracker) SetEnabled(enabled bool) {
	if enabled {
		autoclickEnabled.Set(1)
	} else {
		autoclickEnabled.Set(0)
	}
}

// Flush writes buffered counts.
func (t *Tracker) Flush() {
	t.mu.Lock()
	defer t.mu.Unlock()

	for k, n := range t.clicks {
		_, err := t.db.Exec(`
			INSERT INTO clicks (minute, mode, count) VALUES (?, ?, ?)
			ON CONFLICT(minute, mode) DO UPDATE SET count = count + ?
		`, k.minute, k.mode, n, n)
		if err != nil {
			t.logger.Error("Failed to flush clicks", "mode", k.mode, "err", err)
			continue
		}
		delete(t.clicks, k)
	}

	for k, n := range t.macros {
		_, err := t.db.Exec(`
			INSERT INTO macro_runs (minute, part, outcome, count) VALUES (?, ?, ?, ?)
			ON CONFLICT(minute, part, outcome) DO UPDATE SET count = count + ?
		`, k.minute, k.part, k.outcome, n, n)
		if err != nil {
			t.logger.Error("Failed to flush macro runs", "part", k.part, "err", err)
			continue
		}
		delete(t.macros, k)
	}
}

// GetStats summarises flushed activity for "1h" (default), "24h" or "7d".
func (t *Tracker) GetStats(timeRange string) Stats {
	t.mu.Lock()
	defer t.mu.Unlock()

	stats := Stats{
		ClicksByMode: make(map[string]int),
		Macros:       make([]MacroCount, 0),
		History:      make([]TimePoint, 0),
	}

	now := t.now()
	var startTime int64
	var points int
	switch timeRange {
	case "24h":
		startTime = now.Add(-24 * time.Hour).Unix()
		points = 24 * 60
	case "7d":
		startTime = now.Add(-7 * 24 * time.Hour).Unix()
		points = 7 * 24 * 60
	default: // "1h"
		startTime = now.Add(-60 * time.Minute).Unix()
		points = 60
	}

	rows, err := t.db.Query(`
		SELECT mode, SUM(count) FROM clicks WHERE minute >= ? GROUP BY mode
	`, startTime)
	if err == nil {
		for rows.Next() {
			var mode string
			var n int
			rows.Scan(&mode, &n)
			stats.ClicksByMode[mode] = n
			stats.Clicks += n
		}
		rows.Close()
	}

	rows, err = t.db.Query(`
		SELECT part, outcome, SUM(count) FROM macro_runs
		WHERE minute >= ?
		GROUP BY part, outcome
		ORDER BY part, outcome
	`, startTime)
	if err == nil {
		for rows.Next() {
			var mc MacroCount
			rows.Scan(&mc.Part, &mc.Outcome, &mc.Count)
			stats.Macros = append(stats.Macros, mc)
		}
		rows.Close()
	}

	historyMap := make(map[int64]int)
	rows, err = t.db.Query(`
		SELECT minute, SUM(count) FROM clicks WHERE minute >= ? GROUP BY minute
	`, startTime)
	if err == nil {
		for rows.Next() {
			var ts int64
			var n int
			rows.Scan(&ts, &n)
			historyMap[ts] = n
			stats.PeakPerMin = max(stats.PeakPerMin, n)
		}
		rows.Close()
	}

	// Fill gaps, oldest first.
	nowBucket := now.Truncate(time.Minute).Unix()
	for i := points - 1; i >= 0; i-- {
		ts := nowBucket - int64(i)*60
		if ts < startTime {
			continue
		}
		stats.History = append(stats.History, TimePoint{Time: ts, Count: historyMap[ts]})
	}

	return stats
}
