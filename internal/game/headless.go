package game

import (
	"context"
	"fmt"
	"io"
	"time"
)

// HeadlessConfig controls the no-window runner.
type HeadlessConfig struct {
	Hz    int
	Ticks uint64    // stop after this many frames; 0 runs until ctx ends
	Out   io.Writer // status line once per simulated second; nil is silent
}

// RunHeadless drives loop from a ticker with a fixed frame delta.
func RunHeadless(ctx context.Context, loop *Loop, cfg HeadlessConfig) error {
	if cfg.Hz <= 0 {
		cfg.Hz = 60
	}
	d := time.Second / time.Duration(cfg.Hz)
	if d <= 0 {
		return fmt.Errorf("invalid headless hz: %d", cfg.Hz)
	}
	dt := d.Seconds()

	t := time.NewTicker(d)
	defer t.Stop()

	var tick uint64
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
			loop.Frame(dt)
			tick++
			if cfg.Out != nil && tick%uint64(cfg.Hz) == 0 {
				fmt.Fprintf(cfg.Out, "%s | %s | %s\n", loop.Session.CountLine(), loop.Session.SpawnLine(), loop.Session.StatsLine())
			}
			if cfg.Ticks > 0 && tick >= cfg.Ticks {
				return nil
			}
		}
	}
}
