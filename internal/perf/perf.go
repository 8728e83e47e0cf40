// Package perf collects frame timings and scroll counters. Collection is
// off unless DRAGSCROLL_PROFILE is set; summaries go to the log file.
package perf

import (
	"math"
	"os"
	"sort"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/andyrewlee/dragscroll/internal/logging"
)

const (
	defaultSampleWindow = 128
	defaultIntervalMs   = 5000

	envProfile  = "DRAGSCROLL_PROFILE"
	envInterval = "DRAGSCROLL_PROFILE_INTERVAL_MS"
)

type stat struct {
	mu      sync.Mutex
	count   int64
	total   time.Duration
	min     time.Duration
	max     time.Duration
	samples []time.Duration
	idx     int
	full    bool
}

type counter struct {
	value atomic.Int64
}

type statSnapshot struct {
	name  string
	count int64
	avg   time.Duration
	min   time.Duration
	max   time.Duration
	p95   time.Duration
}

type counterSnapshot struct {
	name  string
	value int64
}

var (
	enabled     atomic.Bool
	logInterval atomic.Int64 // nanoseconds
	lastLog     atomic.Int64

	statsMu  sync.Mutex
	statsMap = map[string]*stat{}

	countersMu sync.Mutex
	counterMap = map[string]*counter{}
)

func init() {
	enabled.Store(isEnabled())
	logInterval.Store(int64(defaultLogInterval()))
}

// Enabled reports whether collection is on.
func Enabled() bool {
	return enabled.Load()
}

// Time returns a function that records the elapsed time when called.
func Time(name string) func() {
	if !enabled.Load() {
		return func() {}
	}
	start := time.Now()
	return func() {
		Record(name, time.Since(start))
	}
}

// Record adds a duration sample.
func Record(name string, d time.Duration) {
	if !enabled.Load() {
		return
	}
	s := getStat(name)
	s.mu.Lock()
	s.count++
	s.total += d
	if s.count == 1 || d < s.min {
		s.min = d
	}
	if d > s.max {
		s.max = d
	}
	if s.samples == nil {
		s.samples = make([]time.Duration, defaultSampleWindow)
	}
	s.samples[s.idx] = d
	s.idx++
	if s.idx >= len(s.samples) {
		s.idx = 0
		s.full = true
	}
	s.mu.Unlock()

	maybeLog()
}

// Count adds delta to a named counter.
func Count(name string, delta int64) {
	if !enabled.Load() {
		return
	}
	getCounter(name).value.Add(delta)
	maybeLog()
}

func getStat(name string) *stat {
	statsMu.Lock()
	defer statsMu.Unlock()
	s, ok := statsMap[name]
	if !ok {
		s = &stat{}
		statsMap[name] = s
	}
	return s
}

func getCounter(name string) *counter {
	countersMu.Lock()
	defer countersMu.Unlock()
	c, ok := counterMap[name]
	if !ok {
		c = &counter{}
		counterMap[name] = c
	}
	return c
}

func maybeLog() {
	interval := time.Duration(logInterval.Load())
	if interval <= 0 {
		return
	}
	now := time.Now().UnixNano()
	last := lastLog.Load()
	if last != 0 && time.Duration(now-last) < interval {
		return
	}
	if !lastLog.CompareAndSwap(last, now) {
		return
	}
	logSnapshots("PERF")
}

// Flush logs and resets the current stats. reason, if set, is appended to
// the log prefix.
func Flush(reason string) {
	if !enabled.Load() {
		return
	}
	prefix := "PERF SUMMARY"
	if strings.TrimSpace(reason) != "" {
		prefix += " " + reason
	}
	logSnapshots(prefix)
}

func logSnapshots(prefix string) {
	stats, counters := snapshotAndReset()
	for _, s := range stats {
		logging.Info("%s %s count=%d avg=%s p95=%s min=%s max=%s",
			prefix, s.name, s.count, s.avg, s.p95, s.min, s.max)
	}
	for _, c := range counters {
		logging.Info("%s %s count=%d", prefix, c.name, c.value)
	}
}

func snapshotAndReset() ([]statSnapshot, []counterSnapshot) {
	statsMu.Lock()
	statList := make(map[string]*stat, len(statsMap))
	for name, s := range statsMap {
		statList[name] = s
	}
	statsMu.Unlock()

	stats := make([]statSnapshot, 0, len(statList))
	for name, s := range statList {
		s.mu.Lock()
		if s.count == 0 {
			s.mu.Unlock()
			continue
		}
		snap := statSnapshot{
			name:  name,
			count: s.count,
			avg:   time.Duration(int64(s.total) / s.count),
			min:   s.min,
			max:   s.max,
			p95:   computeP95(s.samples, s.idx, s.full),
		}
		s.count, s.total, s.min, s.max = 0, 0, 0, 0
		s.idx, s.full = 0, false
		s.mu.Unlock()
		stats = append(stats, snap)
	}

	countersMu.Lock()
	counterList := make(map[string]*counter, len(counterMap))
	for name, c := range counterMap {
		counterList[name] = c
	}
	countersMu.Unlock()

	counters := make([]counterSnapshot, 0, len(counterList))
	for name, c := range counterList {
		if value := c.value.Swap(0); value != 0 {
			counters = append(counters, counterSnapshot{name: name, value: value})
		}
	}

	sort.Slice(stats, func(i, j int) bool { return stats[i].name < stats[j].name })
	sort.Slice(counters, func(i, j int) bool { return counters[i].name < counters[j].name })
	return stats, counters
}

func computeP95(samples []time.Duration, idx int, full bool) time.Duration {
	n := idx
	if full {
		n = len(samples)
	}
	if n == 0 {
		return 0
	}
	window := make([]time.Duration, n)
	copy(window, samples[:n])
	sort.Slice(window, func(i, j int) bool { return window[i] < window[j] })
	pos := int(math.Ceil(0.95*float64(n))) - 1
	pos = max(0, min(pos, n-1))
	return window[pos]
}

func isEnabled() bool {
	raw := strings.TrimSpace(os.Getenv(envProfile))
	switch strings.ToLower(raw) {
	case "", "0", "false", "no":
		return false
	default:
		return true
	}
}

func defaultLogInterval() time.Duration {
	interval := defaultIntervalMs
	if raw := strings.TrimSpace(os.Getenv(envInterval)); raw != "" {
		if val, err := strconv.Atoi(raw); err == nil && val > 0 {
			interval = val
		}
	}
	return time.Duration(interval) * time.Millisecond
}
