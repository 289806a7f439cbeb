package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/gosuri/uilive"

	"pocketcalc/internal/filewatch"
)

type watchOptions struct {
	debounce time.Duration
	quiet    bool
	// live redraws in place; otherwise each replay is appended.
	live bool
}

// watchTapes replays paths once, then again after every burst of changes,
// until ctx is done or fw closes. Tape errors are shown rather than returned.
func watchTapes(ctx context.Context, fw filewatch.Watcher, out io.Writer, paths []string, opts watchOptions) error {
	defer fw.Close()
	for _, p := range paths {
		if err := fw.Add(p); err != nil {
			return fmt.Errorf("watch %s: %w", p, err)
		}
	}

	var ui *uilive.Writer
	errOut := out
	if opts.live {
		ui = uilive.New()
		ui.Out = out
		errOut = ui.Bypass()
	}
	runs := 0
	render := func(reason string) {
		runs++
		var buf bytes.Buffer
		fmt.Fprintf(&buf, "-- run %d: %s\n", runs, reason)
		if err := replayFiles(&buf, paths, opts.quiet); err != nil {
			fmt.Fprintf(&buf, "error: %v\n", err)
		}
		if ui == nil {
			_, _ = out.Write(buf.Bytes())
			return
		}
		_, _ = ui.Write(buf.Bytes())
		_ = ui.Flush()
	}

	render("start")

	fire := make(chan string, 1)
	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-fw.Events():
			if !ok {
				return nil
			}
			if !filewatch.Changed(ev) {
				continue
			}
			name := ev.Name
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(opts.debounce, func() {
				select {
				case fire <- name + " changed":
				default:
				}
			})
		case reason := <-fire:
			render(reason)
		case err, ok := <-fw.Errors():
			if !ok {
				return nil
			}
			fmt.Fprintf(errOut, "watch: %v\n", err)
		}
	}
}
