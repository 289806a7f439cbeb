package keypad

import (
	"unicode/utf8"

	"pocketcalc/calcos/kernel"
	"pocketcalc/calcos/proto"
	"pocketcalc/hal"
)

// Ticks are 1ms on every platform.
const (
	repeatDelayTicks = 350
	repeatRateTicks  = 60
)

// Service encodes HAL key events as VT100 bytes and forwards them as
// MsgKeyInput. Held navigation and erase keys auto-repeat.
type Service struct {
	in     hal.Input
	outCap kernel.Capability

	pending []byte

	held     hal.KeyCode
	heldData []byte
	nextRep  uint64
}

func New(in hal.Input, outCap kernel.Capability) *Service {
	return &Service{in: in, outCap: outCap}
}

func (s *Service) Run(ctx *kernel.Context) {
	if s.in == nil {
		return
	}
	kbd := s.in.Keyboard()
	if kbd == nil {
		return
	}
	events := kbd.Events()
	if events == nil {
		return
	}

	done := make(chan struct{})
	defer close(done)
	ticks := make(chan uint64, 1)
	go func() {
		last := ctx.NowTick()
		for {
			last = ctx.WaitTick(last)
			select {
			case <-done:
				return
			case ticks <- last:
			default:
			}
		}
	}()

	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return
			}
			s.handle(ev, ctx.NowTick())
		case tick := <-ticks:
			s.repeat(tick)
		}
		s.flush(ctx)
	}
}

func (s *Service) handle(ev hal.KeyEvent, now uint64) {
	if !ev.Press {
		if s.heldData != nil && ev.Code == s.held {
			s.heldData = nil
		}
		return
	}
	data := vt100FromKey(ev)
	if len(data) == 0 {
		return
	}
	s.pending = append(s.pending, data...)

	if !repeatable(ev.Code) {
		return
	}
	s.held = ev.Code
	s.heldData = append(s.heldData[:0], data...)
	s.nextRep = now + repeatDelayTicks
}

func (s *Service) repeat(tick uint64) {
	if s.heldData == nil || tick < s.nextRep {
		return
	}
	s.pending = append(s.pending, s.heldData...)
	s.nextRep = tick + repeatRateTicks
}

// flush sends as much pending input as fits in one message. Input stays
// queued while the consumer is full and is dropped on any other failure.
func (s *Service) flush(ctx *kernel.Context) {
	if len(s.pending) == 0 {
		return
	}
	chunk := s.pending[:chunkEnd(s.pending, kernel.MaxMessageBytes)]
	switch ctx.SendToCapResult(s.outCap, uint16(proto.MsgKeyInput), chunk, kernel.Capability{}) {
	case kernel.SendOK:
		s.pending = s.pending[len(chunk):]
	case kernel.SendErrQueueFull:
	default:
		s.pending = nil
	}
}

// chunkEnd returns how many bytes of p fit in a message of limit bytes
// without splitting an escape sequence or a UTF-8 rune.
func chunkEnd(p []byte, limit int) int {
	if len(p) <= limit {
		return len(p)
	}
	n := limit
	for i := n - 1; i >= 0 && i > n-4; i-- {
		if p[i] == 0x1b {
			if i+seqLen(p[i:]) > n {
				n = i
			}
			break
		}
	}
	for n > 0 && !utf8.RuneStart(p[n]) {
		n--
	}
	if n == 0 {
		return limit
	}
	return n
}

// seqLen is the length of the sequence vt100FromKey emits starting at p[0].
func seqLen(p []byte) int {
	switch {
	case len(p) >= 3 && p[1] == '[' && p[2] == '3':
		return 4
	case len(p) >= 2 && p[1] == '[':
		return 3
	}
	return 1
}

func repeatable(code hal.KeyCode) bool {
	switch code {
	case hal.KeyUp, hal.KeyDown, hal.KeyLeft, hal.KeyRight, hal.KeyBackspace, hal.KeyDelete:
		return true
	}
	return false
}

func vt100FromKey(ev hal.KeyEvent) []byte {
	if ev.Rune != 0 {
		return []byte(string(ev.Rune))
	}
	switch ev.Code {
	case hal.KeyEnter:
		return []byte{'\r'}
	case hal.KeyEscape:
		return []byte{0x1b}
	case hal.KeyBackspace:
		return []byte{0x7f}
	case hal.KeyUp:
		return []byte("\x1b[A")
	case hal.KeyDown:
		return []byte("\x1b[B")
	case hal.KeyRight:
		return []byte("\x1b[C")
	case hal.KeyLeft:
		return []byte("\x1b[D")
	case hal.KeyDelete:
		return []byte("\x1b[3~")
	}
	return nil
}
