package perf

import (
	"sort"
	"testing"
	"time"
)

func resetPerfState() {
	statsMu.Lock()
	statsMap = map[string]*stat{}
	statsMu.Unlock()

	countersMu.Lock()
	counterMap = map[string]*counter{}
	countersMu.Unlock()

	lastLog.Store(0)
}

func withPerfConfig(t *testing.T, enabledValue bool, interval time.Duration) {
	t.Helper()
	prevEnabled := enabled.Load()
	prevInterval := logInterval.Load()
	enabled.Store(enabledValue)
	logInterval.Store(int64(interval))
	resetPerfState()

	t.Cleanup(func() {
		enabled.Store(prevEnabled)
		logInterval.Store(prevInterval)
		resetPerfState()
	})
}

func TestComputeP95(t *testing.T) {
	samples := []time.Duration{
		1 * time.Millisecond,
		2 * time.Millisecond,
		3 * time.Millisecond,
		4 * time.Millisecond,
		5 * time.Millisecond,
	}
	if got := computeP95(samples, len(samples), true); got != 5*time.Millisecond {
		t.Fatalf("expected p95=5ms, got %s", got)
	}

	partial := []time.Duration{9 * time.Millisecond, 1 * time.Millisecond, 5 * time.Millisecond, 0}
	if got := computeP95(partial, 3, false); got != 9*time.Millisecond {
		t.Fatalf("expected p95=9ms for partial window, got %s", got)
	}

	if got := computeP95(nil, 0, false); got != 0 {
		t.Fatalf("expected p95=0 for empty window, got %s", got)
	}
}

func TestSnapshotAndReset(t *testing.T) {
	withPerfConfig(t, true, 0)

	Record("frame", 4*time.Millisecond)
	Record("dispatch", 1*time.Millisecond)
	Record("frame", 12*time.Millisecond)
	Count("autoscroll_write", 3)
	Count("frame_dropped", 1)

	stats, counters := snapshotAndReset()
	if len(stats) != 2 {
		t.Fatalf("expected 2 stat snapshots, got %d", len(stats))
	}
	if len(counters) != 2 {
		t.Fatalf("expected 2 counter snapshots, got %d", len(counters))
	}
	if !sort.SliceIsSorted(stats, func(i, j int) bool { return stats[i].name < stats[j].name }) {
		t.Fatalf("expected stats sorted by name: %+v", stats)
	}
	if stats[1].name != "frame" || stats[1].count != 2 || stats[1].avg != 8*time.Millisecond {
		t.Fatalf("unexpected frame stat: %+v", stats[1])
	}
	if stats[1].min != 4*time.Millisecond || stats[1].max != 12*time.Millisecond {
		t.Fatalf("unexpected frame min/max: %+v", stats[1])
	}
	if counters[0].name != "autoscroll_write" || counters[0].value != 3 {
		t.Fatalf("unexpected counter: %+v", counters[0])
	}

	stats, counters = snapshotAndReset()
	if len(stats) != 0 || len(counters) != 0 {
		t.Fatalf("expected reset to clear snapshots, got stats=%d counters=%d", len(stats), len(counters))
	}
}

func TestDisabledIgnoresSamples(t *testing.T) {
	withPerfConfig(t, false, 0)

	Record("frame", time.Millisecond)
	Count("autoscroll_write", 1)
	Time("frame")()

	stats, counters := snapshotAndReset()
	if len(stats) != 0 || len(counters) != 0 {
		t.Fatalf("expected nothing recorded while disabled, got stats=%d counters=%d", len(stats), len(counters))
	}
}

func TestEnableRestores(t *testing.T) {
	withPerfConfig(t, false, time.Second)

	restore := Enable()
	if !Enabled() {
		t.Fatal("expected collection enabled")
	}
	Count("autoscroll_write", 2)
	_, counters := Snapshot()
	if len(counters) != 1 || counters[0].Value != 2 {
		t.Fatalf("unexpected counters: %+v", counters)
	}
	restore()
	if Enabled() {
		t.Fatal("expected collection disabled after restore")
	}
	if time.Duration(logInterval.Load()) != time.Second {
		t.Fatalf("expected interval restored, got %s", time.Duration(logInterval.Load()))
	}
}

func TestIsEnabledAndIntervalEnv(t *testing.T) {
	cases := map[string]bool{
		"":      false,
		"0":     false,
		"false": false,
		"no":    false,
		"1":     true,
		"true":  true,
		"yes":   true,
	}
	for raw, expected := range cases {
		t.Setenv(envProfile, raw)
		if got := isEnabled(); got != expected {
			t.Fatalf("isEnabled(%q)=%v, want %v", raw, got, expected)
		}
	}

	t.Setenv(envInterval, "")
	if got := defaultLogInterval(); got != defaultIntervalMs*time.Millisecond {
		t.Fatalf("expected default interval, got %s", got)
	}

	t.Setenv(envInterval, "250")
	if got := defaultLogInterval(); got != 250*time.Millisecond {
		t.Fatalf("expected 250ms interval, got %s", got)
	}

	t.Setenv(envInterval, "-3")
	if got := defaultLogInterval(); got != defaultIntervalMs*time.Millisecond {
		t.Fatalf("expected default interval for negative value, got %s", got)
	}
}
