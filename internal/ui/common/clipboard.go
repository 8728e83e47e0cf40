package common

import (
	"os/exec"
	"runtime"
	"strings"

	"github.com/atotto/clipboard"
)

// clipboardWriter is swapped out in tests.
var clipboardWriter = writeSystemClipboard

// CopyToClipboard writes text to the system clipboard.
func CopyToClipboard(text string) error {
	return clipboardWriter(text)
}

// SetClipboardWriter replaces the clipboard backend and returns a restore
// function.
func SetClipboardWriter(fn func(string) error) func() {
	prev := clipboardWriter
	clipboardWriter = fn
	return func() { clipboardWriter = prev }
}

func writeSystemClipboard(text string) error {
	// pbcopy is more reliable than the library on macOS.
	if runtime.GOOS == "darwin" {
		cmd := exec.Command("pbcopy")
		cmd.Stdin = strings.NewReader(text)
		if err := cmd.Run(); err == nil {
			return nil
		}
	}
	return clipboard.WriteAll(text)
}
