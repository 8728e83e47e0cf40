package frame

import (
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/andyrewlee/dragscroll/internal/perf"
	"github.com/andyrewlee/dragscroll/internal/ui/common"
)

// Msg is delivered to the Bubble Tea program when a requested frame is due.
type Msg struct {
	ID uint64
	At time.Time
}

// Loop is a Scheduler backed by Bubble Tea ticks. RequestFrame only records
// the callback; the owning model must return Cmd() from Update so the tick
// is armed, and route Msg values back through Dispatch. Loop is not safe for
// concurrent use: every method must be called from the Update goroutine.
type Loop struct {
	interval time.Duration
	nextID   uint64
	pending  map[uint64]Func
	unarmed  []uint64
}

// NewLoop creates a loop ticking at fps frames per second.
func NewLoop(fps int) *Loop {
	return &Loop{
		interval: IntervalForFPS(fps),
		pending:  make(map[uint64]Func),
	}
}

// SetFPS changes the tick interval for frames armed from now on.
func (l *Loop) SetFPS(fps int) {
	l.interval = IntervalForFPS(fps)
}

// Interval returns the current tick interval.
func (l *Loop) Interval() time.Duration {
	return l.interval
}

// RequestFrame records fn for the next tick.
func (l *Loop) RequestFrame(fn Func) Handle {
	if fn == nil {
		return cancelFunc(func() {})
	}
	l.nextID++
	id := l.nextID
	l.pending[id] = fn
	l.unarmed = append(l.unarmed, id)
	return cancelFunc(func() {
		delete(l.pending, id)
	})
}

// Pending reports callbacks that have not run or been cancelled yet.
func (l *Loop) Pending() int {
	return len(l.pending)
}

// Cmd arms a tick for every frame requested since the last call. It returns
// nil when there is nothing new to arm.
func (l *Loop) Cmd() tea.Cmd {
	if len(l.unarmed) == 0 {
		return nil
	}
	ids := l.unarmed
	l.unarmed = nil

	cmds := make([]tea.Cmd, 0, len(ids))
	for _, id := range ids {
		if _, ok := l.pending[id]; !ok {
			continue
		}
		frameID := id
		cmds = append(cmds, common.SafeTick(l.interval, func(t time.Time) tea.Msg {
			return Msg{ID: frameID, At: t}
		}))
	}
	return common.SafeBatch(cmds...)
}

// Dispatch runs the callback for msg. Ticks for cancelled frames are
// dropped and reported as false.
func (l *Loop) Dispatch(msg Msg) bool {
	fn, ok := l.pending[msg.ID]
	if !ok {
		perf.Count("frame_dropped", 1)
		return false
	}
	delete(l.pending, msg.ID)
	defer perf.Time("frame")()
	fn(msg.At)
	return true
}
