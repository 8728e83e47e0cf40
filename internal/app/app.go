package app

import (
	"reflect"
	"time"

	tea "charm.land/bubbletea/v2"
	zone "github.com/lrstanley/bubblezone"

	"github.com/andyrewlee/dragscroll/internal/autoscroll"
	"github.com/andyrewlee/dragscroll/internal/config"
	"github.com/andyrewlee/dragscroll/internal/dnd"
	"github.com/andyrewlee/dragscroll/internal/frame"
	"github.com/andyrewlee/dragscroll/internal/geom"
	"github.com/andyrewlee/dragscroll/internal/keymap"
	"github.com/andyrewlee/dragscroll/internal/logging"
	"github.com/andyrewlee/dragscroll/internal/messages"
	"github.com/andyrewlee/dragscroll/internal/ui/board"
	"github.com/andyrewlee/dragscroll/internal/ui/common"
)

// Layout rows outside the board.
const (
	toolbarHeight = 1
	statusHeight  = 1
	hintsHeight   = 1
)

// App is the root Bubbletea model
type App struct {
	config *config.Config

	// UI Components
	board  *board.Model
	keymap keymap.KeyMap
	styles common.Styles
	zone   *zone.Manager
	// zonePrefix keeps toolbar zone IDs unique per App.
	zonePrefix string

	// Overlays
	helpOverlay *common.HelpOverlay
	toast       *common.ToastModel
	showDebug   bool
	showHints   bool

	// Drag and autoscroll
	drag      *dnd.Manager
	scroll    *autoscroll.Coordinator
	scheduler frame.Scheduler
	loop      *frame.Loop // nil when frames are stepped by hand

	status string

	// Layout
	width, height int

	// Lifecycle
	ready    bool
	quitting bool

	// Perf tracking
	lastInputAt         time.Time
	pendingInputLatency bool
}

// New creates the app driven by Bubble Tea frame ticks.
func New(cfg *config.Config) *App {
	loop := frame.NewLoop(cfg.Autoscroll.FPS)
	a := newApp(cfg, loop)
	a.loop = loop
	return a
}

// newApp wires the board, drag manager and autoscroll coordinator around
// scheduler.
func newApp(cfg *config.Config, scheduler frame.Scheduler) *App {
	km := keymap.New(cfg.KeyMap)
	styles := common.DefaultStyles()

	b := board.New(board.ColumnsFromConfig(cfg.Board))
	b.SetKeyMap(km)
	b.SetStyles(styles)
	b.Focus()

	a := &App{
		config:      cfg,
		board:       b,
		keymap:      km,
		styles:      styles,
		zone:        zone.New(),
		helpOverlay: common.NewHelpOverlay(helpSections(km)),
		toast:       common.NewToastModel(),
		showDebug:   cfg.UI.ShowDebug,
		showHints:   cfg.UI.ShowKeymapHints,
		drag:        dnd.NewManager(),
		scheduler:   scheduler,
	}

	a.zonePrefix = a.zone.NewPrefix()

	a.drag.SetThreshold(cfg.Autoscroll.DragThreshold)
	a.drag.SetDropTarget(b)
	a.drag.AddHandler(boardDragHandler{board: b})

	a.scroll = autoscroll.NewCoordinator(engineConfig(cfg.Autoscroll), scheduler, a.scrollRegion)
	a.scroll.Attach(a.drag)
	return a
}

// engineConfig converts the file settings into engine tuning.
func engineConfig(cfg config.AutoscrollConfig) autoscroll.Config {
	return autoscroll.Config{
		TriggerZone: cfg.TriggerZone,
		MinInterior: cfg.MinInterior,
		MaxSpeed:    cfg.MaxSpeed,
		ReboundRate: cfg.ReboundRate,
		MinGradient: cfg.MinGradient,
	}
}

// scrollRegion resolves the autoscroll target. The board is not a region
// until it has been laid out.
func (a *App) scrollRegion() autoscroll.Region {
	if a.board.Bounds().Empty() {
		return nil
	}
	return a.board
}

// boardDragHandler mirrors the drag lifecycle into the board highlight.
type boardDragHandler struct {
	board *board.Model
}

func (h boardDragHandler) DragStarted(item dnd.Item, p geom.Point) {
	h.board.BeginDrag(item.ID, p)
}

func (h boardDragHandler) DragEnded() {
	h.board.EndDrag()
}

func (a *App) markInput() {
	a.lastInputAt = time.Now()
	a.pendingInputLatency = true
}

// Init initializes the application
func (a *App) Init() tea.Cmd {
	return nil
}

// Update handles all messages. Frames requested while handling msg are
// armed before returning.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmd := a.update(msg)
	return a, common.SafeBatch(cmd, a.frameCmd())
}

func (a *App) frameCmd() tea.Cmd {
	if a.loop == nil {
		return nil
	}
	return a.loop.Cmd()
}

func (a *App) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		a.layout()
		return nil

	case frame.Msg:
		if a.loop != nil {
			a.loop.Dispatch(msg)
		}
		return nil

	case tea.KeyPressMsg:
		a.markInput()
		return a.handleKeyPress(msg)

	case tea.MouseClickMsg, tea.MouseMotionMsg, tea.MouseReleaseMsg, tea.MouseWheelMsg:
		a.markInput()
		return a.handleMouseMsg(msg)

	case messages.CardMoved:
		return a.toast.ShowSuccess(describeMove(msg))

	case messages.CopyCard:
		return a.copyCard(msg)

	case messages.ResetBoard:
		a.resetBoard()
		return a.toast.ShowInfo("Board reset")

	case messages.ToggleDebug:
		a.showDebug = !a.showDebug
		return nil

	case messages.ConfigReloaded:
		return a.handleConfigReloaded(msg)

	case messages.Toast:
		return a.toast.ShowMsg(msg)

	case messages.Error:
		if !msg.Logged {
			logging.Error("%s", msg.Error())
		}
		return a.toast.ShowError(msg.Error())

	case common.ToastDismissed:
		newToast, cmd := a.toast.Update(msg)
		a.toast = newToast
		return cmd
	}
	return nil
}

// layout places the board between the toolbar and the footer.
func (a *App) layout() {
	boardHeight := a.height - toolbarHeight - a.footerHeight()
	a.board.SetBounds(0, toolbarHeight, a.width, max(0, boardHeight))
	a.helpOverlay.SetSize(a.width, a.height)
}

func (a *App) footerHeight() int {
	if a.showHints {
		return statusHeight + hintsHeight
	}
	return statusHeight
}

func (a *App) resetBoard() {
	a.drag.Interrupt()
	a.board.Reset(board.ColumnsFromConfig(a.config.Board))
	a.status = ""
	logging.Info("Board reset")
}

func (a *App) copyCard(msg messages.CopyCard) tea.Cmd {
	if err := common.CopyToClipboard(msg.Title); err != nil {
		return common.ReportError("copying card", err, "Copy failed")
	}
	return a.toast.ShowSuccess("Copied " + msg.CardID)
}

// handleConfigReloaded applies a config re-read from disk. A failed reload
// keeps the running settings.
func (a *App) handleConfigReloaded(msg messages.ConfigReloaded) tea.Cmd {
	if msg.Err != nil {
		logging.Warn("Config reload failed: %v", msg.Err)
		return a.toast.ShowError("Config reload failed: " + msg.Err.Error())
	}
	if msg.Config == nil {
		return nil
	}
	a.applyConfig(msg.Config)
	return a.toast.ShowInfo("Config reloaded")
}

func (a *App) applyConfig(cfg *config.Config) {
	prev := a.config
	if cfg.Paths == nil && prev != nil {
		cfg.Paths = prev.Paths
	}
	a.config = cfg

	a.keymap = keymap.New(cfg.KeyMap)
	a.board.SetKeyMap(a.keymap)
	a.helpOverlay.SetSections(helpSections(a.keymap))

	a.drag.SetThreshold(cfg.Autoscroll.DragThreshold)
	a.scroll.SetConfig(engineConfig(cfg.Autoscroll))
	if a.loop != nil {
		a.loop.SetFPS(cfg.Autoscroll.FPS)
	}

	a.showDebug = cfg.UI.ShowDebug
	if a.showHints != cfg.UI.ShowKeymapHints {
		a.showHints = cfg.UI.ShowKeymapHints
		a.layout()
	}

	if prev == nil || !reflect.DeepEqual(prev.Board, cfg.Board) {
		a.resetBoard()
	}
	logging.Info("Config applied")
}

// toggleHints flips the key hint bar and persists the choice.
func (a *App) toggleHints() tea.Cmd {
	a.showHints = !a.showHints
	a.config.UI.ShowKeymapHints = a.showHints
	a.layout()
	if err := a.config.SaveUISettings(); err != nil {
		return common.ReportError("saving UI settings", err, "")
	}
	return nil
}

// Board exposes the board model.
func (a *App) Board() *board.Model { return a.board }

// Coordinator exposes the autoscroll coordinator.
func (a *App) Coordinator() *autoscroll.Coordinator { return a.scroll }

// Status returns the status line text.
func (a *App) Status() string { return a.status }

// Shutdown releases resources held by the app.
func (a *App) Shutdown() {
	a.scroll.Detach()
	a.zone.Close()
}
