package keypad

import (
	"testing"
	"time"

	"pocketcalc/calcos/kernel"
	"pocketcalc/calcos/proto"
	"pocketcalc/hal"
)

func TestVT100FromKey(t *testing.T) {
	tests := []struct {
		ev   hal.KeyEvent
		want string
	}{
		{hal.KeyEvent{Rune: '7', Press: true}, "7"},
		{hal.KeyEvent{Rune: '÷', Press: true}, "÷"},
		{hal.KeyEvent{Code: hal.KeyEnter, Press: true}, "\r"},
		{hal.KeyEvent{Code: hal.KeyEscape, Press: true}, "\x1b"},
		{hal.KeyEvent{Code: hal.KeyBackspace, Press: true}, "\x7f"},
		{hal.KeyEvent{Code: hal.KeyLeft, Press: true}, "\x1b[D"},
		{hal.KeyEvent{Code: hal.KeyDelete, Press: true}, "\x1b[3~"},
		{hal.KeyEvent{Code: hal.KeyUnknown, Press: true}, ""},
	}
	for _, tt := range tests {
		if got := string(vt100FromKey(tt.ev)); got != tt.want {
			t.Fatalf("vt100FromKey(%+v) = %q, want %q", tt.ev, got, tt.want)
		}
	}
}

func TestRepeatAfterDelay(t *testing.T) {
	s := &Service{}
	s.handle(hal.KeyEvent{Code: hal.KeyRight, Press: true}, 100)
	if string(s.pending) != "\x1b[C" {
		t.Fatalf("pending = %q", s.pending)
	}
	s.pending = nil

	s.repeat(100 + repeatDelayTicks - 1)
	if len(s.pending) != 0 {
		t.Fatalf("repeated before delay: %q", s.pending)
	}
	s.repeat(100 + repeatDelayTicks)
	s.repeat(100 + repeatDelayTicks + repeatRateTicks)
	if string(s.pending) != "\x1b[C\x1b[C" {
		t.Fatalf("pending = %q, want two repeats", s.pending)
	}

	s.pending = nil
	s.handle(hal.KeyEvent{Code: hal.KeyRight}, 1000)
	s.repeat(5000)
	if len(s.pending) != 0 {
		t.Fatalf("repeated after release: %q", s.pending)
	}
}

func TestDigitsDoNotRepeat(t *testing.T) {
	s := &Service{}
	s.handle(hal.KeyEvent{Rune: '5', Press: true}, 0)
	s.repeat(10_000)
	if string(s.pending) != "5" {
		t.Fatalf("pending = %q, want %q", s.pending, "5")
	}
}

type fakeKeyboard struct{ ch chan hal.KeyEvent }

func (k fakeKeyboard) Events() <-chan hal.KeyEvent { return k.ch }

type fakeInput struct{ kbd fakeKeyboard }

func (in fakeInput) Keyboard() hal.Keyboard { return in.kbd }

type recvTask struct {
	from kernel.Capability
	out  chan kernel.Message
}

func (t *recvTask) Run(ctx *kernel.Context) {
	for {
		msg, ok := ctx.Recv(t.from)
		if !ok {
			return
		}
		t.out <- msg
	}
}

func TestServiceForwardsKeyInput(t *testing.T) {
	k := kernel.New()
	ep := k.NewEndpoint(kernel.RightSend | kernel.RightRecv)
	kbd := fakeKeyboard{ch: make(chan hal.KeyEvent, 4)}

	out := make(chan kernel.Message, 4)
	k.AddTask(&recvTask{from: ep.Restrict(kernel.RightRecv), out: out})
	k.AddTask(New(fakeInput{kbd: kbd}, ep.Restrict(kernel.RightSend)))

	kbd.ch <- hal.KeyEvent{Rune: '9', Press: true}

	select {
	case msg := <-out:
		if proto.Kind(msg.Kind) != proto.MsgKeyInput || string(msg.Payload()) != "9" {
			t.Fatalf("got kind=%s payload=%q", proto.Kind(msg.Kind), msg.Payload())
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for key input")
	}
}

func TestChunkEndKeepsSequencesWhole(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		limit int
		want  int
	}{
		{"fits", "12\x1b[A", 8, 5},
		{"arrow split after esc", "12\x1b[A", 3, 2},
		{"arrow split after bracket", "12\x1b[A", 4, 2},
		{"arrow ends at limit", "12\x1b[A3", 5, 5},
		{"delete split", "1\x1b[3~", 4, 1},
		{"lone esc before digit", "12\x1b3", 3, 3},
		{"rune split", "1÷2", 2, 1},
	}
	for _, tt := range tests {
		if got := chunkEnd([]byte(tt.in), tt.limit); got != tt.want {
			t.Errorf("%s: chunkEnd(%q, %d) = %d, want %d", tt.name, tt.in, tt.limit, got, tt.want)
		}
	}
}
