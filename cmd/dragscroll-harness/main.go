package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/andyrewlee/dragscroll/internal/app"
	"github.com/andyrewlee/dragscroll/internal/geom"
	"github.com/andyrewlee/dragscroll/internal/perf"
)

func main() {
	width := flag.Int("width", 120, "screen width in columns")
	height := flag.Int("height", 36, "screen height in rows")
	card := flag.String("card", "", "card id to drag (default: first card)")
	targetX := flag.Int("target-x", -1, "pointer target column (-1: bottom-right of the board)")
	targetY := flag.Int("target-y", -1, "pointer target row (-1: bottom-right of the board)")
	steps := flag.Int("steps", 8, "motion events between press and target")
	hold := flag.Duration("hold", 2*time.Second, "time the pointer rests on the target")
	fps := flag.Int("fps", 60, "frame rate")
	release := flag.Bool("release", true, "drop the card after holding")
	every := flag.Int("every", 10, "print every Nth frame (0 prints none)")
	flag.Parse()

	restore := perf.Enable()
	defer restore()

	h, err := app.NewHarness(app.HarnessOptions{
		Width:     *width,
		Height:    *height,
		CardID:    *card,
		Target:    geom.Point{X: *targetX, Y: *targetY},
		MoveSteps: *steps,
		Hold:      *hold,
		FPS:       *fps,
		Release:   *release,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "harness init failed: %v\n", err)
		os.Exit(1)
	}
	defer h.App().Shutdown()

	res, err := h.Run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "harness run failed: %v\n", err)
		os.Exit(1)
	}
	_ = h.Render()

	fmt.Printf("card=%s start=%d,%d target=%d,%d size=%dx%d fps=%d frames=%d\n",
		res.CardID, res.Start.X, res.Start.Y, res.Target.X, res.Target.Y,
		*width, *height, *fps, len(res.Frames))
	if *every > 0 {
		for _, f := range res.Frames {
			if f.Index%*every != 0 && f.Index != len(res.Frames)-1 {
				continue
			}
			fmt.Printf("%5d %8s ptr=%3d,%-3d off=%4d,%-4d speed=%+7.1f,%+7.1f\n",
				f.Index, f.Elapsed, f.Pointer.X, f.Pointer.Y, f.OffsetX, f.OffsetY, f.SpeedX, f.SpeedY)
		}
	}
	fmt.Printf("offset x=%d y=%d\n", res.OffsetX, res.OffsetY)
	if res.Move != nil {
		fmt.Printf("moved %s %s -> %s index %d\n", res.Move.CardID, res.Move.FromColumn, res.Move.ToColumn, res.Move.Index)
	} else {
		fmt.Println("no move")
	}

	stats, counters := perf.Snapshot()
	for _, s := range stats {
		fmt.Printf("perf %s count=%d avg=%s p95=%s max=%s\n", s.Name, s.Count, s.Avg, s.P95, s.Max)
	}
	for _, c := range counters {
		fmt.Printf("perf %s=%d\n", c.Name, c.Value)
	}
}
