package board

import (
	"fmt"

	"github.com/andyrewlee/dragscroll/internal/config"
)

var demoColumns = []struct {
	title string
	cards int
}{
	{"Backlog", 24},
	{"Todo", 14},
	{"In Progress", 9},
	{"Blocked", 3},
	{"In Review", 11},
	{"QA", 6},
	{"Done", 30},
	{"Archived", 18},
}

var demoTasks = []string{
	"Wire frame loop into update",
	"Clamp scroll offset on resize",
	"Rebound dead-zone after fast drag",
	"Document config reload",
	"Handle wide runes in titles",
	"Trim trailing whitespace in cards",
	"Profile frame dispatch",
	"Add harness trace output",
	"Support shift+wheel scrolling",
	"Cancel drag on escape",
	"Persist UI toggles",
	"Fix drop marker off by one",
}

var demoLabels = [][]string{
	{"bug"},
	{"feature"},
	{"chore"},
	{"ui", "bug"},
	nil,
	{"perf"},
	{"docs"},
}

var demoPeople = []string{"Ada Lovelace", "Grace Hopper", "", "Alan Turing", "Barbara Liskov"}

// DemoColumns returns the built-in sample board. It is large enough to
// scroll on both axes in a typical terminal.
func DemoColumns() []Column {
	cols := make([]Column, 0, len(demoColumns))
	n := 0
	for _, def := range demoColumns {
		col := Column{Title: def.title, Cards: make([]Card, 0, def.cards)}
		for i := 0; i < def.cards; i++ {
			n++
			col.Cards = append(col.Cards, Card{
				ID:       fmt.Sprintf("DS-%d", n),
				Title:    fmt.Sprintf("DS-%d %s", n, demoTasks[n%len(demoTasks)]),
				Labels:   demoLabels[n%len(demoLabels)],
				Assignee: demoPeople[n%len(demoPeople)],
			})
		}
		cols = append(cols, col)
	}
	return cols
}

// ColumnsFromConfig converts a configured board. An empty configuration
// yields the demo board.
func ColumnsFromConfig(cfg []config.ColumnConfig) []Column {
	if len(cfg) == 0 {
		return DemoColumns()
	}
	cols := make([]Column, 0, len(cfg))
	for _, c := range cfg {
		col := Column{Title: c.Title, Cards: make([]Card, 0, len(c.Cards))}
		for _, card := range c.Cards {
			col.Cards = append(col.Cards, Card{
				ID:       card.ID,
				Title:    card.Title,
				Labels:   append([]string(nil), card.Labels...),
				Assignee: card.Assignee,
			})
		}
		cols = append(cols, col)
	}
	return cols
}
