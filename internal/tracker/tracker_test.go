package tracker

import (
	"io"
	"log/slog"
	"testing"
	"time"
)

func openTest(t *testing.T) *Tracker {
	t.Helper()
	tr, err := Open(t.TempDir(), slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { tr.Close() })
	return tr
}

func TestFlushPersistsClicksAndMacros(t *testing.T) {
	tr := openTest(t)
	fixed := time.Now().Truncate(time.Minute).Add(10 * time.Second)
	tr.now = func() time.Time { return fixed }

	tr.TrackClick("left")
	tr.TrackClick("left")
	tr.TrackClick("double")
	tr.TrackMacro("part1", "completed")
	tr.TrackMacro("part2", "aborted")

	if got := tr.GetStats("1h").Clicks; got != 0 {
		t.Fatalf("clicks before flush = %d, want 0", got)
	}

	tr.Flush()
	stats := tr.GetStats("1h")
	if stats.Clicks != 3 {
		t.Fatalf("clicks = %d, want 3", stats.Clicks)
	}
	if stats.ClicksByMode["left"] != 2 || stats.ClicksByMode["double"] != 1 {
		t.Fatalf("clicks by mode = %v", stats.ClicksByMode)
	}
	if stats.PeakPerMin != 3 {
		t.Fatalf("peak = %d, want 3", stats.PeakPerMin)
	}
	if len(stats.Macros) != 2 {
		t.Fatalf("macros = %v", stats.Macros)
	}
	if stats.Macros[0] != (MacroCount{Part: "part1", Outcome: "completed", Count: 1}) {
		t.Fatalf("unexpected first macro row %+v", stats.Macros[0])
	}
}

func TestFlushAccumulatesIntoSameBucket(t *testing.T) {
	tr := openTest(t)
	fixed := time.Now().Truncate(time.Minute)
	tr.now = func() time.Time { return fixed }

	tr.TrackClick("right")
	tr.Flush()
	tr.TrackClick("right")
	tr.Flush()

	if got := tr.GetStats("1h").ClicksByMode["right"]; got != 2 {
		t.Fatalf("right clicks = %d, want 2", got)
	}
}

func TestHistoryCoversRange(t *testing.T) {
	tr := openTest(t)
	fixed := time.Now().Truncate(time.Minute)
	tr.now = func() time.Time { return fixed }
	tr.TrackClick("left")
	tr.Flush()

	history := tr.GetStats("1h").History
	if len(history) == 0 || len(history) > 61 {
		t.Fatalf("history length = %d", len(history))
	}
	last := history[len(history)-1]
	if last.Time != fixed.Unix() || last.Count != 1 {
		t.Fatalf("last point = %+v, want count 1 at %d", last, fixed.Unix())
	}
	for i := 1; i < len(history); i++ {
		if history[i].Time <= history[i-1].Time {
			t.Fatalf("history not ascending at %d", i)
		}
	}
}
