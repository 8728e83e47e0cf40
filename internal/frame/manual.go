package frame

import "time"

// Manual is a deterministic Scheduler driven by explicit Step calls. Tests
// and the headless harness use it in place of the Bubble Tea loop.
type Manual struct {
	now     time.Time
	nextID  uint64
	pending map[uint64]Func
	order   []uint64
}

// NewManual returns a scheduler whose clock starts at start.
func NewManual(start time.Time) *Manual {
	return &Manual{
		now:     start,
		pending: make(map[uint64]Func),
	}
}

// RequestFrame queues fn for the next Step.
func (m *Manual) RequestFrame(fn Func) Handle {
	if fn == nil {
		return cancelFunc(func() {})
	}
	m.nextID++
	id := m.nextID
	m.pending[id] = fn
	m.order = append(m.order, id)
	return cancelFunc(func() {
		delete(m.pending, id)
	})
}

// Now returns the scheduler clock.
func (m *Manual) Now() time.Time {
	return m.now
}

// Pending reports how many callbacks are waiting for the next Step.
func (m *Manual) Pending() int {
	return len(m.pending)
}

// Step advances the clock by d and runs every callback that was pending
// before the call. Callbacks requested during the step wait for the next
// one. It returns the number of callbacks that ran.
func (m *Manual) Step(d time.Duration) int {
	ids := m.order
	m.order = nil
	m.now = m.now.Add(d)

	ran := 0
	for _, id := range ids {
		fn, ok := m.pending[id]
		if !ok {
			continue
		}
		delete(m.pending, id)
		fn(m.now)
		ran++
	}
	return ran
}

// Run steps every interval until total has elapsed or nothing is pending.
// It returns the number of steps taken.
func (m *Manual) Run(total, interval time.Duration) int {
	if interval <= 0 {
		return 0
	}
	steps := 0
	for elapsed := time.Duration(0); elapsed+interval <= total; elapsed += interval {
		if m.Pending() == 0 {
			break
		}
		m.Step(interval)
		steps++
	}
	return steps
}
