package calc

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"pocketcalc/calcos/engine"
	"pocketcalc/calcos/gfx"
	"pocketcalc/calcos/kernel"
	"pocketcalc/calcos/proto"
	"pocketcalc/hal"
)

func TestHandleInputShortcuts(t *testing.T) {
	task := New(nil, kernel.Capability{}, Config{})
	got := task.handleInput([]byte("12.5*x/÷-+=%n_,c\x1b\x7f\x1b[3~q"))
	want := []engine.Button{
		engine.Button1, engine.Button2, engine.ButtonDecimal, engine.Button5,
		engine.ButtonMul, engine.ButtonMul, engine.ButtonDiv, engine.ButtonDiv,
		engine.ButtonSub, engine.ButtonAdd, engine.ButtonEquals, engine.ButtonPercent,
		engine.ButtonToggleSign, engine.ButtonToggleSign, engine.ButtonDecimal,
		engine.ButtonClear, engine.ButtonClear,
		engine.ButtonBackspace, engine.ButtonBackspace,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("buttons mismatch (-want +got):\n%s", diff)
	}
}

func TestHandleInputSplitSequence(t *testing.T) {
	task := New(nil, kernel.Capability{}, Config{})
	if got := task.handleInput([]byte("\x1b[")); len(got) != 0 {
		t.Fatalf("partial sequence pressed %v", got)
	}
	before := task.cursor
	task.handleInput([]byte("A"))
	if task.cursor.row != before.row-1 {
		t.Fatalf("cursor row = %d, want %d", task.cursor.row, before.row-1)
	}
	if len(task.inbuf) != 0 {
		t.Fatalf("inbuf = %q, want empty", task.inbuf)
	}
}

func TestHandleInputEscSplitFromArrow(t *testing.T) {
	task := New(nil, kernel.Capability{}, Config{})
	got := task.handleInput([]byte("12\x1b"))
	if diff := cmp.Diff([]engine.Button{engine.Button1, engine.Button2}, got); diff != "" {
		t.Fatalf("buttons mismatch (-want +got):\n%s", diff)
	}
	before := task.cursor
	if got := task.handleInput([]byte("[A")); len(got) != 0 {
		t.Fatalf("arrow tail pressed %v", got)
	}
	if task.cursor.row != before.row-1 {
		t.Fatalf("cursor row = %d, want %d", task.cursor.row, before.row-1)
	}
}

func TestLoneEscResolves(t *testing.T) {
	task := New(nil, kernel.Capability{}, Config{})
	if got := task.handleInput([]byte("\x1b")); len(got) != 0 {
		t.Fatalf("lone ESC pressed %v before more input", got)
	}
	got := task.handleInput([]byte("5"))
	if diff := cmp.Diff([]engine.Button{engine.ButtonClear, engine.Button5}, got); diff != "" {
		t.Fatalf("buttons mismatch (-want +got):\n%s", diff)
	}

	task.handleInput([]byte("\x1b"))
	if diff := cmp.Diff([]engine.Button{engine.ButtonClear}, task.expireEsc()); diff != "" {
		t.Fatalf("expireEsc mismatch (-want +got):\n%s", diff)
	}
	if got := task.expireEsc(); got != nil {
		t.Fatalf("second expireEsc = %v, want nil", got)
	}
}

func TestEnterPressesFocusedKey(t *testing.T) {
	task := New(nil, kernel.Capability{}, Config{})
	// Starts on "=", up two rows is "-", left of that is "6".
	got := task.handleInput([]byte("\x1b[A\x1b[A\r\x1b[D\r"))
	want := []engine.Button{engine.ButtonSub, engine.Button6}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("buttons mismatch (-want +got):\n%s", diff)
	}
}

type memFB struct {
	w, h int
	buf  []byte
}

func (f *memFB) Width() int              { return f.w }
func (f *memFB) Height() int             { return f.h }
func (f *memFB) Format() hal.PixelFormat { return hal.PixelFormatRGB565 }
func (f *memFB) StrideBytes() int        { return f.w * 2 }
func (f *memFB) Buffer() []byte          { return f.buf }
func (f *memFB) ClearRGB(r, g, b uint8)  {}
func (f *memFB) Present() error          { return nil }

func (f *memFB) pixel(x, y int16) uint16 {
	off := int(y)*f.w*2 + int(x)*2
	return uint16(f.buf[off]) | uint16(f.buf[off+1])<<8
}

type memDisplay struct{ fb *memFB }

func (d memDisplay) Framebuffer() hal.Framebuffer { return d.fb }

func TestRenderHighlightsActiveOperator(t *testing.T) {
	fb := &memFB{w: hal.ScreenWidth, h: hal.ScreenHeight, buf: make([]byte, hal.ScreenWidth*hal.ScreenHeight*2)}
	task := New(memDisplay{fb: fb}, kernel.Capability{}, Config{})
	task.fb = fb
	task.d = gfx.NewDisplay(fb)
	th := task.cfg.Theme

	for _, b := range task.handleInput([]byte("8/")) {
		task.state = task.state.Press(b)
	}
	task.render()

	divX, divY, _, _ := cellRect(keypad[cellAt(0, 3)])
	if got := fb.pixel(divX+focusWidth+1, divY+focusWidth+1); got != gfx.RGB565(th.OperatorActive) {
		t.Fatalf("÷ key = %#04x, want active color %#04x", got, gfx.RGB565(th.OperatorActive))
	}
	mulX, mulY, _, _ := cellRect(keypad[cellAt(1, 3)])
	if got := fb.pixel(mulX+focusWidth+1, mulY+focusWidth+1); got != gfx.RGB565(th.Operator) {
		t.Fatalf("× key = %#04x, want operator color %#04x", got, gfx.RGB565(th.Operator))
	}
	eqX, eqY, _, _ := cellRect(keypad[cellAt(4, 3)])
	if got := fb.pixel(eqX, eqY); got != gfx.RGB565(th.Focus) {
		t.Fatalf("focused = key corner = %#04x, want focus color %#04x", got, gfx.RGB565(th.Focus))
	}
}

type driverTask struct {
	to   kernel.Capability
	msgs []kernel.Message
}

func (t *driverTask) Run(ctx *kernel.Context) {
	for _, m := range t.msgs {
		ctx.SendToCapRetry(t.to, m.Kind, m.Payload(), kernel.Capability{}, 8)
	}
}

type collectTask struct {
	from kernel.Capability
	out  chan proto.Readout
}

func (t *collectTask) Run(ctx *kernel.Context) {
	for {
		msg, ok := ctx.Recv(t.from)
		if !ok {
			return
		}
		if r, ok := proto.DecodeReadoutPayload(msg.Payload()); ok {
			t.out <- r
		}
	}
}

func message(kind proto.Kind, payload []byte) kernel.Message {
	m := kernel.Message{Kind: uint16(kind), Len: uint16(len(payload))}
	copy(m.Data[:], payload)
	return m
}

func TestRunEscClearsAfterTimeout(t *testing.T) {
	k := kernel.New()
	calcEP := k.NewEndpoint(kernel.RightSend | kernel.RightRecv)
	readEP := k.NewEndpoint(kernel.RightSend | kernel.RightRecv)

	out := make(chan proto.Readout, 16)
	k.AddTask(&collectTask{from: readEP.Restrict(kernel.RightRecv), out: out})
	k.AddTask(New(nil, calcEP.Restrict(kernel.RightRecv), Config{ReadoutCap: readEP.Restrict(kernel.RightSend)}))
	k.AddTask(&driverTask{to: calcEP.Restrict(kernel.RightSend), msgs: []kernel.Message{
		message(proto.MsgKeyInput, []byte("7")),
		message(proto.MsgKeyInput, []byte{0x1b}),
	}})

	deadline := time.After(2 * time.Second)
	var got []string
	for tick := uint64(1); ; tick++ {
		k.TickTo(tick * escTimeoutTicks)
		select {
		case r := <-out:
			got = append(got, r.Display)
			if len(got) == 3 {
				if diff := cmp.Diff([]string{"0", "7", "0"}, got); diff != "" {
					t.Fatalf("readouts mismatch (-want +got):\n%s", diff)
				}
				return
			}
		case <-time.After(5 * time.Millisecond):
		case <-deadline:
			t.Fatalf("timeout; got %q", got)
		}
	}
}

func TestRunForwardsShutdownToReadout(t *testing.T) {
	k := kernel.New()
	calcEP := k.NewEndpoint(kernel.RightSend | kernel.RightRecv)
	readEP := k.NewEndpoint(kernel.RightSend | kernel.RightRecv)

	kinds := make(chan proto.Kind, 16)
	k.AddTask(&kindTask{from: readEP.Restrict(kernel.RightRecv), out: kinds})
	k.AddTask(New(nil, calcEP.Restrict(kernel.RightRecv), Config{ReadoutCap: readEP.Restrict(kernel.RightSend)}))
	if res := k.Post(calcEP.Restrict(kernel.RightSend), uint16(proto.MsgAppShutdown), nil); res != kernel.SendOK {
		t.Fatalf("Post() = %s", res)
	}

	want := []proto.Kind{proto.MsgReadout, proto.MsgAppShutdown}
	var got []proto.Kind
	for len(got) < len(want) {
		select {
		case kind := <-kinds:
			got = append(got, kind)
		case <-time.After(2 * time.Second):
			t.Fatalf("timeout; got %v", got)
		}
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("kinds mismatch (-want +got):\n%s", diff)
	}
}

type kindTask struct {
	from kernel.Capability
	out  chan<- proto.Kind
}

func (t *kindTask) Run(ctx *kernel.Context) {
	for {
		msg, ok := ctx.Recv(t.from)
		if !ok {
			return
		}
		t.out <- proto.Kind(msg.Kind)
	}
}

func TestRunPublishesReadouts(t *testing.T) {
	k := kernel.New()
	calcEP := k.NewEndpoint(kernel.RightSend | kernel.RightRecv)
	readEP := k.NewEndpoint(kernel.RightSend | kernel.RightRecv)

	out := make(chan proto.Readout, 16)
	k.AddTask(&collectTask{from: readEP.Restrict(kernel.RightRecv), out: out})
	k.AddTask(New(nil, calcEP.Restrict(kernel.RightRecv), Config{ReadoutCap: readEP.Restrict(kernel.RightSend)}))
	k.AddTask(&driverTask{to: calcEP.Restrict(kernel.RightSend), msgs: []kernel.Message{
		message(proto.MsgKeyInput, []byte("1÷")),
		message(proto.MsgButtonPress, proto.ButtonPressPayload(uint8(engine.Button3))),
		message(proto.MsgButtonPress, proto.ButtonPressPayload(0xFF)),
		message(proto.MsgKeyInput, []byte("=")),
	}})

	var got []proto.Readout
	for len(got) < 4 {
		select {
		case r := <-out:
			got = append(got, r)
		case <-time.After(2 * time.Second):
			t.Fatalf("timeout; got %+v", got)
		}
	}
	want := []proto.Readout{
		{Display: "0"},
		{Display: "1", Pending: "1 ÷", Op: uint8(engine.OpDiv)},
		{Display: "3", Pending: "1 ÷", Op: uint8(engine.OpDiv)},
		{Display: "0.33333333"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("readouts mismatch (-want +got):\n%s", diff)
	}
}
