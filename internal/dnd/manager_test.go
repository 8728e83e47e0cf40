package dnd

import (
	"reflect"
	"testing"

	"github.com/andyrewlee/dragscroll/internal/geom"
)

type recorder struct {
	events *[]string
	name   string
}

func (r recorder) DragStarted(item Item, p geom.Point) {
	*r.events = append(*r.events, r.name+":start:"+item.ID)
}

func (r recorder) DragEnded() {
	*r.events = append(*r.events, r.name+":end")
}

type fakeTarget struct {
	drops []Item
	at    []geom.Point
	moved bool
}

func (t *fakeTarget) Drop(item Item, p geom.Point) bool {
	t.drops = append(t.drops, item)
	t.at = append(t.at, p)
	return t.moved
}

func pt(x, y int) geom.Point { return geom.Point{X: x, Y: y} }

func TestMoveStartsDragAtThreshold(t *testing.T) {
	tests := []struct {
		name      string
		threshold int
		move      geom.Point
		button    Button
		want      bool
	}{
		{name: "one cell default", threshold: 1, move: pt(11, 10), button: ButtonLeft, want: true},
		{name: "no travel", threshold: 1, move: pt(10, 10), button: ButtonLeft, want: false},
		{name: "below threshold", threshold: 3, move: pt(12, 11), button: ButtonLeft, want: false},
		{name: "diagonal uses max axis", threshold: 3, move: pt(11, 13), button: ButtonLeft, want: true},
		{name: "wrong button", threshold: 1, move: pt(20, 20), button: ButtonRight, want: false},
		{name: "no button", threshold: 1, move: pt(20, 20), button: ButtonNone, want: false},
		{name: "threshold floor", threshold: 0, move: pt(11, 10), button: ButtonLeft, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewManager()
			m.SetThreshold(tt.threshold)
			m.Press(pt(10, 10), &Item{ID: "a"})
			m.Move(tt.move, tt.button)
			if got := m.Dragging(); got != tt.want {
				t.Fatalf("Dragging() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPressWithoutItemNeverDrags(t *testing.T) {
	m := NewManager()
	m.Press(pt(0, 0), nil)
	m.Move(pt(10, 10), ButtonLeft)
	if m.Armed() || m.Dragging() {
		t.Fatal("press on empty space should not drag")
	}
}

func TestHandlersNotifiedInOrder(t *testing.T) {
	var events []string
	m := NewManager()
	m.AddHandler(recorder{events: &events, name: "a"})
	m.AddHandler(recorder{events: &events, name: "b"})

	m.Press(pt(0, 0), &Item{ID: "x"})
	m.Move(pt(2, 0), ButtonLeft)
	m.Move(pt(3, 0), ButtonLeft)
	m.Release(pt(3, 0))

	want := []string{"a:start:x", "b:start:x", "a:end", "b:end"}
	if !reflect.DeepEqual(events, want) {
		t.Fatalf("events = %v, want %v", events, want)
	}
	if item, ok := m.Item(); ok {
		t.Fatalf("Item() = %+v after release", item)
	}
}

func TestPointerPreviewPrecedesDragStart(t *testing.T) {
	var events []string
	m := NewManager()
	m.AddPointerHandler(func(ev PointerEvent) {
		events = append(events, "pointer")
	})
	m.AddHandler(recorder{events: &events, name: "h"})

	m.Press(pt(0, 0), &Item{ID: "x"})
	m.Move(pt(1, 0), ButtonLeft)

	want := []string{"pointer", "h:start:x"}
	if !reflect.DeepEqual(events, want) {
		t.Fatalf("events = %v, want %v", events, want)
	}
}

func TestReleaseDropsOnTarget(t *testing.T) {
	target := &fakeTarget{moved: true}
	m := NewManager()
	m.SetDropTarget(target)

	m.Press(pt(0, 0), &Item{ID: "x", Label: "card"})
	m.Move(pt(5, 5), ButtonLeft)
	if got := m.Position(); got != pt(5, 5) {
		t.Fatalf("Position() = %v", got)
	}
	m.Release(pt(6, 7))

	if len(target.drops) != 1 || target.drops[0].ID != "x" || target.at[0] != pt(6, 7) {
		t.Fatalf("drops = %+v at %v", target.drops, target.at)
	}
	if m.Dragging() {
		t.Fatal("drag still active after release")
	}
}

func TestReleaseWithoutDragDoesNotDrop(t *testing.T) {
	target := &fakeTarget{}
	m := NewManager()
	m.SetDropTarget(target)

	m.Press(pt(0, 0), &Item{ID: "x"})
	m.Release(pt(0, 0))
	if len(target.drops) != 0 {
		t.Fatal("click without drag should not drop")
	}
	if m.Armed() {
		t.Fatal("release should disarm")
	}
}

func TestInterruptSkipsDrop(t *testing.T) {
	var events []string
	target := &fakeTarget{}
	m := NewManager()
	m.SetDropTarget(target)
	m.AddHandler(recorder{events: &events, name: "h"})

	m.Press(pt(0, 0), &Item{ID: "x"})
	m.Move(pt(3, 3), ButtonLeft)
	m.Interrupt()
	m.Interrupt()
	m.Release(pt(3, 3))

	if len(target.drops) != 0 {
		t.Fatal("interrupted drag was dropped")
	}
	want := []string{"h:start:x", "h:end"}
	if !reflect.DeepEqual(events, want) {
		t.Fatalf("events = %v, want %v", events, want)
	}
}

func TestPressDuringDragEndsIt(t *testing.T) {
	var events []string
	m := NewManager()
	m.AddHandler(recorder{events: &events, name: "h"})

	m.Press(pt(0, 0), &Item{ID: "x"})
	m.Move(pt(3, 3), ButtonLeft)
	m.Press(pt(9, 9), &Item{ID: "y"})

	want := []string{"h:start:x", "h:end"}
	if !reflect.DeepEqual(events, want) {
		t.Fatalf("events = %v, want %v", events, want)
	}
	if !m.Armed() || m.Dragging() {
		t.Fatal("new press should arm without dragging")
	}
}

func TestRegistrationRemove(t *testing.T) {
	var events []string
	m := NewManager()
	reg := m.AddHandler(recorder{events: &events, name: "h"})
	pointers := 0
	preg := m.AddPointerHandler(func(PointerEvent) { pointers++ })

	reg.Remove()
	reg.Remove()
	preg.Remove()
	preg.Remove()

	m.Press(pt(0, 0), &Item{ID: "x"})
	m.Move(pt(3, 3), ButtonLeft)
	m.Release(pt(3, 3))
	if len(events) != 0 || pointers != 0 {
		t.Fatalf("removed handlers invoked: events=%v pointers=%d", events, pointers)
	}
}

func TestHandlerAddedDuringDispatchWaits(t *testing.T) {
	m := NewManager()
	late := 0
	var reg Registration
	m.AddPointerHandler(func(PointerEvent) {
		if reg == nil {
			reg = m.AddPointerHandler(func(PointerEvent) { late++ })
		}
	})

	m.Move(pt(1, 1), ButtonNone)
	if late != 0 {
		t.Fatalf("handler added during dispatch ran %d times", late)
	}
	m.Move(pt(2, 2), ButtonNone)
	if late != 1 {
		t.Fatalf("late handler ran %d times, want 1", late)
	}
}

func TestHandlerRemovedDuringDispatchSkipped(t *testing.T) {
	m := NewManager()
	second := 0
	var reg Registration
	m.AddPointerHandler(func(PointerEvent) { reg.Remove() })
	reg = m.AddPointerHandler(func(PointerEvent) { second++ })

	m.Move(pt(1, 1), ButtonNone)
	if second != 0 {
		t.Fatalf("removed handler ran %d times", second)
	}
}
