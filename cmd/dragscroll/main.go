package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"
	"strconv"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/term"

	"github.com/andyrewlee/dragscroll/internal/app"
	"github.com/andyrewlee/dragscroll/internal/config"
	"github.com/andyrewlee/dragscroll/internal/logging"
	"github.com/andyrewlee/dragscroll/internal/messages"
	"github.com/andyrewlee/dragscroll/internal/safego"
	"github.com/andyrewlee/dragscroll/internal/validation"
)

// Version info set by GoReleaser via ldflags
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	showVersion := flag.Bool("version", false, "print version and exit")
	configPath := flag.String("config", "", "config file (default ~/.dragscroll/config.yaml)")
	logLevel := flag.String("log-level", "info", "log level: debug, info, warn, error")
	debug := flag.Bool("debug", false, "show the autoscroll debug overlay")
	flag.Parse()

	if *showVersion {
		fmt.Printf("dragscroll %s (commit: %s, built: %s)\n", version, commit, date)
		os.Exit(0)
	}

	if !term.IsTerminal(os.Stdin.Fd()) || !term.IsTerminal(os.Stdout.Fd()) {
		fmt.Fprintln(os.Stderr, "dragscroll needs an interactive terminal")
		os.Exit(1)
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if *debug {
		cfg.UI.ShowDebug = true
	}

	level, ok := logging.ParseLevel(*logLevel)
	if !ok {
		fmt.Fprintf(os.Stderr, "Warning: unknown log level %q, using info\n", *logLevel)
	}
	if err := logging.Initialize(cfg.Paths.LogDir, level); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not initialize logging: %v\n", err)
	}

	logging.Info("Starting dragscroll %s", version)

	code := runTUI(cfg)
	_ = logging.Close()
	os.Exit(code)
}

func loadConfig(path string) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if strings.TrimSpace(path) != "" {
		if err := validation.ValidateConfigPath(path); err != nil {
			return nil, err
		}
		cfg, err = config.LoadFile(path)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}
	if err := cfg.Paths.EnsureDirectories(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runTUI(cfg *config.Config) int {
	a := app.New(cfg)
	defer a.Shutdown()
	startPprof()

	p := tea.NewProgram(
		a,
		tea.WithFilter(mouseEventFilter),
	)
	safego.SetPanicHandler(func(name string, recovered any, _ []byte) {
		p.Send(messages.Error{Err: fmt.Errorf("%v", recovered), Context: "panic in " + name, Logged: true})
	})
	defer safego.SetPanicHandler(nil)

	ctx, cancel := context.WithCancel(context.Background())
	watcherDone := startConfigWatcher(ctx, cfg, p)

	_, err := p.Run()
	cancel()
	if watcherDone != nil {
		<-watcherDone
	}
	if err != nil {
		logging.Error("App exited with error: %v", err)
		fmt.Fprintf(os.Stderr, "Error running app: %v\n", err)
		if path := logging.GetLogPath(); path != "" {
			fmt.Fprintf(os.Stderr, "See %s for details\n", path)
		}
		return 1
	}
	logging.Info("dragscroll shutdown complete")
	return 0
}

// startConfigWatcher forwards config file changes to the program until ctx
// is done. It returns nil when hot reload is unavailable.
func startConfigWatcher(ctx context.Context, cfg *config.Config, p *tea.Program) <-chan struct{} {
	watcher, err := config.NewWatcher(cfg.Paths, func(next *config.Config, err error) {
		p.Send(messages.ConfigReloaded{Config: next, Err: err})
	})
	if err != nil {
		logging.Warn("Config hot reload disabled: %v", err)
		return nil
	}
	return safego.GoDone("config-watcher", func() {
		defer func() { logging.WithError(watcher.Close(), "closing config watcher") }()
		if err := watcher.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logging.Warn("Config watcher stopped: %v", err)
		}
	})
}

var (
	lastMouseMotionEvent   time.Time
	lastMouseWheelEvent    time.Time
	lastMouseX, lastMouseY int
)

// mouseEventFilter drops repeated motion at the same cell and bursts of
// wheel events. Motion to a new cell always passes so the drag tracks the
// pointer exactly.
func mouseEventFilter(m tea.Model, msg tea.Msg) tea.Msg {
	switch msg := msg.(type) {
	case tea.MouseMotionMsg:
		if msg.X != lastMouseX || msg.Y != lastMouseY {
			lastMouseX = msg.X
			lastMouseY = msg.Y
			lastMouseMotionEvent = time.Now()
			return msg
		}
		now := time.Now()
		if now.Sub(lastMouseMotionEvent) < 15*time.Millisecond {
			return nil
		}
		lastMouseMotionEvent = now
	case tea.MouseWheelMsg:
		now := time.Now()
		if now.Sub(lastMouseWheelEvent) < 15*time.Millisecond {
			return nil
		}
		lastMouseWheelEvent = now
	}
	return msg
}

func startPprof() {
	raw := strings.TrimSpace(os.Getenv("DRAGSCROLL_PPROF"))
	if raw == "" {
		return
	}
	switch strings.ToLower(raw) {
	case "0", "false", "no":
		return
	}

	addr := raw
	if raw == "1" || strings.ToLower(raw) == "true" {
		addr = "127.0.0.1:6060"
	} else if _, err := strconv.Atoi(raw); err == nil {
		addr = "127.0.0.1:" + raw
	}

	safego.Go("pprof", func() {
		logging.Info("pprof listening on %s", addr)
		if err := http.ListenAndServe(addr, nil); err != nil {
			logging.Warn("pprof server stopped: %v", err)
		}
	})
}
