package proto

// ButtonPressPayload encodes a MsgButtonPress payload: one byte, the
// engine.Button value.
func ButtonPressPayload(button uint8) []byte {
	return []byte{button}
}

func DecodeButtonPressPayload(b []byte) (button uint8, ok bool) {
	if len(b) != 1 {
		return 0, false
	}
	return b[0], true
}

// Readout is the calculator's visible state as published to readout sinks.
type Readout struct {
	Display string
	Pending string
	// Op is the pending engine.Op, 0 when none.
	Op uint8
	// Clipped is set when Display lost leading characters to fit a message.
	Clipped bool
}

const (
	readoutHeader     = 3
	readoutMaxPending = 40

	readoutFlagClipped = 1 << 0
)

// ReadoutPayload encodes r into at most max bytes.
//
// Layout:
//   - u8: op
//   - u8: flags (bit 0: display clipped)
//   - u8: display length
//   - bytes: display
//   - bytes: pending (rest of the payload)
//
// Long values keep their rightmost characters.
func ReadoutPayload(r Readout, max int) []byte {
	pending := tail(r.Pending, readoutMaxPending)
	room := max - readoutHeader - len(pending)
	if room > 255 {
		room = 255
	}
	if room < 0 {
		room = 0
	}
	display := tail(r.Display, room)

	flags := byte(0)
	if r.Clipped || len(display) < len(r.Display) {
		flags |= readoutFlagClipped
	}

	buf := make([]byte, 0, readoutHeader+len(display)+len(pending))
	buf = append(buf, r.Op, flags, byte(len(display)))
	buf = append(buf, display...)
	buf = append(buf, pending...)
	return buf
}

func DecodeReadoutPayload(b []byte) (Readout, bool) {
	if len(b) < readoutHeader {
		return Readout{}, false
	}
	n := int(b[2])
	if readoutHeader+n > len(b) {
		return Readout{}, false
	}
	return Readout{
		Op:      b[0],
		Clipped: b[1]&readoutFlagClipped != 0,
		Display: string(b[readoutHeader : readoutHeader+n]),
		Pending: string(b[readoutHeader+n:]),
	}, true
}

func tail(s string, n int) string {
	if len(s) <= n {
		return s
	}
	s = s[len(s)-n:]
	// Drop a partial UTF-8 sequence at the cut.
	for len(s) > 0 && s[0]&0xC0 == 0x80 {
		s = s[1:]
	}
	return s
}
