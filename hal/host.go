//go:build !tinygo

package hal

import (
	"io"
	"os"
	"sync"
)

// Options configures the host HAL.
type Options struct {
	// Log receives log lines. It defaults to os.Stdout.
	Log io.Writer
}

type hostHAL struct {
	logger *hostLogger
	fb     *hostFramebuffer
	kbd    *hostKeyboard
	t      *hostTime
}

// New returns a host HAL implementation.
func New(opts Options) HAL { return newHost(opts) }

func newHost(opts Options) *hostHAL {
	w := opts.Log
	if w == nil {
		w = os.Stdout
	}
	return &hostHAL{
		logger: &hostLogger{w: w},
		fb:     newHostFramebuffer(ScreenWidth, ScreenHeight),
		kbd:    newHostKeyboard(),
		t:      newHostTime(),
	}
}

func (h *hostHAL) Logger() Logger   { return h.logger }
func (h *hostHAL) Display() Display { return display{fb: h.fb} }
func (h *hostHAL) Input() Input     { return input{kbd: h.kbd} }
func (h *hostHAL) Time() Time       { return h.t }

type hostLogger struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *hostLogger) WriteLineString(s string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	io.WriteString(l.w, s+"\n")
}

func (l *hostLogger) WriteLineBytes(b []byte) {
	l.mu.Lock()
	defer l.mu.Unlock()
	line := make([]byte, 0, len(b)+1)
	line = append(line, b...)
	l.w.Write(append(line, '\n'))
}
