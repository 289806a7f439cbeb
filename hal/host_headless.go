//go:build !tinygo

package hal

import (
	"context"
	"fmt"
	"io"
	"time"
)

// HeadlessConfig controls the no-window host runner.
type HeadlessConfig struct {
	Hz    int
	Ticks uint64
	// Keys, when set, is read as typed input.
	Keys io.Reader
	Log  io.Writer
}

// RunHeadless runs the calculator without opening a window. It returns when
// ctx is done, after cfg.Ticks steps, or when step reports an error.
func RunHeadless(ctx context.Context, newApp func(HAL) func() error, cfg HeadlessConfig) error {
	if cfg.Hz <= 0 {
		cfg.Hz = 60
	}
	d := time.Second / time.Duration(cfg.Hz)
	if d <= 0 {
		return fmt.Errorf("invalid headless hz: %d", cfg.Hz)
	}

	h := newHost(Options{Log: cfg.Log})
	step := newApp(h)

	if cfg.Keys != nil {
		go func() {
			if err := h.kbd.feed(cfg.Keys); err != nil {
				h.logger.WriteLineString("headless: key input: " + err.Error())
			}
		}()
	}

	t := time.NewTicker(d)
	defer t.Stop()

	var n uint64
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
			h.t.step()
			if step != nil {
				if err := step(); err != nil {
					return err
				}
			}
			n++
			if cfg.Ticks > 0 && n >= cfg.Ticks {
				return nil
			}
		}
	}
}
