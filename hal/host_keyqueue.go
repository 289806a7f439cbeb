//go:build !tinygo

package hal

import (
	"bufio"
	"io"
)

type hostKeyboard struct {
	ch chan KeyEvent
}

func newHostKeyboard() *hostKeyboard {
	return &hostKeyboard{ch: make(chan KeyEvent, 64)}
}

func (k *hostKeyboard) Events() <-chan KeyEvent { return k.ch }

func (k *hostKeyboard) emit(ev KeyEvent) {
	select {
	case k.ch <- ev:
	default:
	}
}

// feed forwards runes read from r as key presses until r is exhausted.
// Line breaks are skipped so piped text does not press the focused button.
func (k *hostKeyboard) feed(r io.Reader) error {
	br := bufio.NewReader(r)
	for {
		c, _, err := br.ReadRune()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		switch c {
		case '\r', '\n':
			continue
		case 0x7F, 0x08:
			k.ch <- KeyEvent{Code: KeyBackspace, Press: true}
			k.ch <- KeyEvent{Code: KeyBackspace}
		default:
			k.ch <- KeyEvent{Rune: c, Press: true}
		}
	}
}
