package perf

import "time"

// StatSnapshot is an exported view of a duration stat.
type StatSnapshot struct {
	Name  string
	Count int64
	Avg   time.Duration
	Min   time.Duration
	Max   time.Duration
	P95   time.Duration
}

// CounterSnapshot is an exported view of a counter.
type CounterSnapshot struct {
	Name  string
	Value int64
}

// Enable turns collection on without periodic logging and returns a
// function restoring the previous settings. The harness and tests use it.
func Enable() func() {
	prevEnabled := enabled.Load()
	prevInterval := logInterval.Load()
	enabled.Store(true)
	logInterval.Store(0)
	lastLog.Store(0)
	return func() {
		enabled.Store(prevEnabled)
		logInterval.Store(prevInterval)
	}
}

// Snapshot returns and resets the collected stats and counters.
func Snapshot() ([]StatSnapshot, []CounterSnapshot) {
	stats, counters := snapshotAndReset()
	statsOut := make([]StatSnapshot, 0, len(stats))
	for _, s := range stats {
		statsOut = append(statsOut, StatSnapshot{
			Name:  s.name,
			Count: s.count,
			Avg:   s.avg,
			Min:   s.min,
			Max:   s.max,
			P95:   s.p95,
		})
	}
	counterOut := make([]CounterSnapshot, 0, len(counters))
	for _, c := range counters {
		counterOut = append(counterOut, CounterSnapshot{Name: c.name, Value: c.value})
	}
	return statsOut, counterOut
}
