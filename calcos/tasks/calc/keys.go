package calc

import "unicode/utf8"

type keyKind uint8

const (
	keyRune keyKind = iota
	keyEnter
	keyBackspace
	keyEsc
	keyUp
	keyDown
	keyLeft
	keyRight
	keyDelete
	keyIgnored
)

type key struct {
	kind keyKind
	r    rune
}

// nextKey decodes one key from VT100 input. It reports ok=false when b ends in
// the middle of a sequence; the caller keeps the bytes for the next message.
func nextKey(b []byte) (consumed int, k key, ok bool) {
	if len(b) == 0 {
		return 0, key{}, false
	}
	switch b[0] {
	case 0x1b:
		return escapeKey(b)
	case '\r', '\n':
		return 1, key{kind: keyEnter}, true
	case 0x7f, 0x08:
		return 1, key{kind: keyBackspace}, true
	}
	if b[0] < 0x20 {
		return 1, key{kind: keyIgnored}, true
	}
	if !utf8.FullRune(b) {
		return 0, key{}, false
	}
	r, sz := utf8.DecodeRune(b)
	if r == utf8.RuneError && sz == 1 {
		return 1, key{kind: keyIgnored}, true
	}
	return sz, key{kind: keyRune, r: r}, true
}

// escapeKey decodes a sequence starting with ESC. A lone ESC is reported as
// incomplete since it may be the front of an arrow split across messages; the
// task resolves it as Esc on the next input or after escTimeoutTicks.
func escapeKey(b []byte) (int, key, bool) {
	if len(b) < 2 {
		return 0, key{}, false
	}
	if b[1] != '[' {
		return 1, key{kind: keyEsc}, true
	}
	if len(b) < 3 {
		return 0, key{}, false
	}
	switch b[2] {
	case 'A':
		return 3, key{kind: keyUp}, true
	case 'B':
		return 3, key{kind: keyDown}, true
	case 'C':
		return 3, key{kind: keyRight}, true
	case 'D':
		return 3, key{kind: keyLeft}, true
	case '3':
		if len(b) < 4 {
			return 0, key{}, false
		}
		if b[3] == '~' {
			return 4, key{kind: keyDelete}, true
		}
	}
	// Unknown CSI: swallow the final byte so stray sequences do not type.
	for i := 2; i < len(b); i++ {
		if b[i] >= 0x40 && b[i] <= 0x7e {
			return i + 1, key{kind: keyIgnored}, true
		}
	}
	return 0, key{}, false
}
