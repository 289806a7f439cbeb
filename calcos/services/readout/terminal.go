//go:build !tinygo

package readout

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/gosuri/uilive"
	"github.com/mattn/go-isatty"

	"pocketcalc/calcos/proto"
)

// Terminal renders readouts to a text stream. On an interactive terminal the
// readout is redrawn in place; otherwise each change is printed as a line.
type Terminal struct {
	mu   sync.Mutex
	out  io.Writer
	live *uilive.Writer
	last string

	closeOnce sync.Once
}

// NewTerminal picks live or line mode for out.
func NewTerminal(out io.Writer) *Terminal {
	t := &Terminal{out: out}
	if f, ok := out.(*os.File); ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())) {
		w := uilive.New()
		w.Out = f
		w.RefreshInterval = 50 * time.Millisecond
		w.Start()
		t.live = w
	}
	return t
}

func (t *Terminal) Live() bool { return t.live != nil }

// LogWriter returns a writer for log lines that does not disturb the live
// readout.
func (t *Terminal) LogWriter() io.Writer {
	if t.live != nil {
		return t.live.Bypass()
	}
	return t.out
}

// Show renders r unless it matches the previous readout.
func (t *Terminal) Show(r proto.Readout) error {
	line := FormatLine(r)

	t.mu.Lock()
	defer t.mu.Unlock()
	if line == t.last {
		return nil
	}
	t.last = line
	if t.live != nil {
		fmt.Fprintln(t.live, line)
		return t.live.Flush()
	}
	_, err := fmt.Fprintln(t.out, line)
	return err
}

// Close stops live redrawing. Both the readout service and main close the
// terminal; only the first call does anything.
func (t *Terminal) Close() {
	t.closeOnce.Do(func() {
		if t.live != nil {
			t.live.Stop()
		}
	})
}

// FormatLine lays out a readout as "<pending> | <display>".
func FormatLine(r proto.Readout) string {
	display := r.Display
	if r.Clipped {
		display = "…" + display
	}
	return fmt.Sprintf("%16s | %s", r.Pending, display)
}
