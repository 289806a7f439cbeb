package calc

import (
	"fmt"

	logclient "pocketcalc/calcos/client/logger"
	"pocketcalc/calcos/engine"
	"pocketcalc/calcos/gfx"
	"pocketcalc/calcos/kernel"
	"pocketcalc/calcos/proto"
	"pocketcalc/hal"
)

const (
	// maxPendingInput bounds a partial escape sequence kept between messages.
	maxPendingInput = 8
	// escTimeoutTicks is how long a lone ESC waits for the rest of a sequence.
	escTimeoutTicks = 50
)

// Config wires the task's optional outputs.
type Config struct {
	Theme Theme
	// LogCap receives trace lines when Trace is set.
	LogCap kernel.Capability
	Trace  bool
	// ReadoutCap receives a MsgReadout after every state change.
	ReadoutCap kernel.Capability
}

// Task is the calculator widget: a keypad and readout over one engine.State.
type Task struct {
	disp hal.Display
	ep   kernel.Capability
	cfg  Config

	fb hal.Framebuffer
	d  *gfx.Display

	state  engine.State
	cursor cursor
	inbuf  []byte
}

func New(disp hal.Display, ep kernel.Capability, cfg Config) *Task {
	if cfg.Theme == (Theme{}) {
		cfg.Theme = DefaultTheme()
	}
	return &Task{
		disp:   disp,
		ep:     ep,
		cfg:    cfg,
		state:  engine.New(),
		cursor: cursor{row: 4, col: 3},
	}
}

func (t *Task) Run(ctx *kernel.Context) {
	ch, ok := ctx.RecvChan(t.ep)
	if !ok {
		return
	}
	if t.disp != nil {
		t.fb = t.disp.Framebuffer()
		if t.fb != nil {
			t.d = gfx.NewDisplay(t.fb)
		}
	}

	done := make(chan struct{})
	defer close(done)
	escFired := make(chan uint64)
	var escGen uint64

	t.render()
	t.publish(ctx)

	for {
		var pressed []engine.Button
		moved := false
		hadEsc := t.loneEsc()

		select {
		case msg, ok := <-ch:
			if !ok {
				t.stop(ctx)
				return
			}
			switch proto.Kind(msg.Kind) {
			case proto.MsgAppShutdown:
				t.stop(ctx)
				return
			case proto.MsgKeyInput:
				before := t.cursor
				pressed = t.handleInput(msg.Payload())
				moved = t.cursor != before
			case proto.MsgButtonPress:
				b, ok := proto.DecodeButtonPressPayload(msg.Payload())
				if !ok || !engine.Button(b).Valid() {
					continue
				}
				pressed = []engine.Button{engine.Button(b)}
			default:
				continue
			}
		case gen := <-escFired:
			if gen != escGen {
				continue
			}
			pressed = t.expireEsc()
		}

		if t.loneEsc() && !hadEsc {
			escGen++
			go escTimer(ctx, ctx.NowTick()+escTimeoutTicks, escGen, escFired, done)
		}

		before := t.state
		for _, b := range pressed {
			t.state = t.state.Press(b)
			if t.cfg.Trace {
				logclient.Log(ctx, t.cfg.LogCap, fmt.Sprintf("calc: press %s -> %s", b.ASCII(), t.state.Display))
			}
		}
		if t.state != before || moved {
			t.render()
		}
		if t.state != before {
			t.publish(ctx)
		}
	}
}

// escTimer reports gen once the clock passes deadline.
func escTimer(ctx *kernel.Context, deadline, gen uint64, fired chan<- uint64, done <-chan struct{}) {
	ctx.WaitTick(deadline)
	select {
	case fired <- gen:
	case <-done:
	}
}

func (t *Task) loneEsc() bool {
	return len(t.inbuf) == 1 && t.inbuf[0] == 0x1b
}

// expireEsc resolves a lone ESC that no '[' followed in time.
func (t *Task) expireEsc() []engine.Button {
	if !t.loneEsc() {
		return nil
	}
	t.inbuf = t.inbuf[:0]
	if btn, ok := t.handleKey(key{kind: keyEsc}); ok {
		return []engine.Button{btn}
	}
	return nil
}

// stop passes the shutdown on so the readout drains what it was sent.
func (t *Task) stop(ctx *kernel.Context) {
	if !t.cfg.ReadoutCap.Valid() {
		return
	}
	ctx.SendToCapRetry(t.cfg.ReadoutCap, uint16(proto.MsgAppShutdown), nil, kernel.Capability{}, 4)
}

// handleInput decodes VT100 bytes, moves the cursor, and returns the buttons
// to press in order.
func (t *Task) handleInput(b []byte) []engine.Button {
	t.inbuf = append(t.inbuf, b...)
	var out []engine.Button
	for len(t.inbuf) > 0 {
		n, k, ok := nextKey(t.inbuf)
		if !ok {
			if len(t.inbuf) > maxPendingInput {
				t.inbuf = t.inbuf[1:]
				continue
			}
			break
		}
		t.inbuf = t.inbuf[n:]
		if btn, ok := t.handleKey(k); ok {
			out = append(out, btn)
		}
	}
	return out
}

func (t *Task) handleKey(k key) (engine.Button, bool) {
	switch k.kind {
	case keyUp:
		t.cursor = t.cursor.move(-1, 0)
	case keyDown:
		t.cursor = t.cursor.move(1, 0)
	case keyLeft:
		t.cursor = t.cursor.move(0, -1)
	case keyRight:
		t.cursor = t.cursor.move(0, 1)
	case keyEnter:
		return keypad[t.cursor.focused()].button, true
	case keyBackspace, keyDelete:
		return engine.ButtonBackspace, true
	case keyEsc:
		return engine.ButtonClear, true
	case keyRune:
		return shortcut(k.r)
	}
	return engine.ButtonNone, false
}

// shortcut maps a typed character to a button.
func shortcut(r rune) (engine.Button, bool) {
	switch r {
	case 'n', 'N', '_':
		return engine.ButtonToggleSign, true
	case ',':
		return engine.ButtonDecimal, true
	}
	if b, ok := engine.DigitButton(r); ok {
		return b, true
	}
	b, ok := engine.ParseButton(string(r))
	if !ok || b == engine.ButtonBackspace {
		return engine.ButtonNone, false
	}
	return b, true
}

func (t *Task) publish(ctx *kernel.Context) {
	if !t.cfg.ReadoutCap.Valid() {
		return
	}
	r := proto.Readout{
		Display: t.state.Display,
		Pending: t.state.Pending(),
		Op:      uint8(t.state.Op),
	}
	ctx.SendToCapRetry(t.cfg.ReadoutCap, uint16(proto.MsgReadout), proto.ReadoutPayload(r, kernel.MaxMessageBytes), kernel.Capability{}, 4)
}
