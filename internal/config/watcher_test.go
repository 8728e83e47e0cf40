package config

import (
	"context"
	"os"
	"testing"
	"time"
)

type reloadResult struct {
	cfg *Config
	err error
}

func startWatcherForTest(t *testing.T, paths *Paths) chan reloadResult {
	t.Helper()
	results := make(chan reloadResult, 8)
	w, err := NewWatcher(paths, func(cfg *Config, err error) {
		results <- reloadResult{cfg: cfg, err: err}
	})
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	w.debounce = 20 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		_ = w.Run(ctx)
		close(done)
	}()
	t.Cleanup(func() {
		cancel()
		_ = w.Close()
		<-done
	})
	return results
}

func waitForReload(t *testing.T, results chan reloadResult) reloadResult {
	t.Helper()
	select {
	case r := <-results:
		return r
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for reload")
	}
	return reloadResult{}
}

func TestWatcher_ReloadsOnWrite(t *testing.T) {
	paths := writeConfig(t, "autoscroll:\n  max_speed: 10\n")
	results := startWatcherForTest(t, paths)

	if err := os.WriteFile(paths.ConfigPath, []byte("autoscroll:\n  max_speed: 55\n"), 0o644); err != nil {
		t.Fatalf("rewrite config: %v", err)
	}
	r := waitForReload(t, results)
	if r.err != nil {
		t.Fatalf("reload error = %v", r.err)
	}
	if r.cfg.Autoscroll.MaxSpeed != 55 {
		t.Fatalf("MaxSpeed = %v, want 55", r.cfg.Autoscroll.MaxSpeed)
	}
}

func TestWatcher_ReportsParseErrors(t *testing.T) {
	paths := writeConfig(t, "ui: {}\n")
	results := startWatcherForTest(t, paths)

	if err := os.WriteFile(paths.ConfigPath, []byte("ui: [\n"), 0o644); err != nil {
		t.Fatalf("rewrite config: %v", err)
	}
	r := waitForReload(t, results)
	if r.err == nil {
		t.Fatal("expected reload error")
	}
}

func TestWatcher_IgnoresSiblingFiles(t *testing.T) {
	paths := writeConfig(t, "ui: {}\n")
	results := startWatcherForTest(t, paths)

	if err := os.WriteFile(paths.ConfigPath+".bak", []byte("x"), 0o644); err != nil {
		t.Fatalf("write sibling: %v", err)
	}
	select {
	case r := <-results:
		t.Fatalf("unexpected reload: %+v", r)
	case <-time.After(200 * time.Millisecond):
	}
}

func TestWatcher_CloseIsIdempotent(t *testing.T) {
	paths := PathsAt(t.TempDir())
	w, err := NewWatcher(paths, nil)
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("first Close: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
}
