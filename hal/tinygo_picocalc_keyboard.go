//go:build tinygo && baremetal

package hal

import (
	"errors"
	"machine"
	"time"
)

const (
	picoCalcKbdAddr uint16 = 0x1F
	picoCalcKbdFIFO byte   = 0x09

	picoCalcKeyAlt  byte = 0xA1
	picoCalcKeyCtrl byte = 0xA5
)

var picoCalcSpecial = map[byte]KeyCode{
	0x08: KeyBackspace,
	0xB1: KeyEscape,
	0xD4: KeyDelete,
	0xB4: KeyLeft,
	0xB7: KeyRight,
	0xB5: KeyUp,
	0xB6: KeyDown,
	'\r': KeyEnter,
	'\n': KeyEnter,
}

// i2cKeyboard polls the PicoCalc keyboard controller's event FIFO.
type i2cKeyboard struct {
	bus  *machine.I2C
	req  [1]byte
	resp [2]byte
}

func initI2CKeyboard() (*i2cKeyboard, error) {
	for _, bus := range []*machine.I2C{machine.I2C1, machine.I2C0} {
		if bus == nil {
			continue
		}
		for _, freq := range []uint32{100_000, 400_000} {
			if err := bus.Configure(machine.I2CConfig{
				SCL:       machine.GP7,
				SDA:       machine.GP6,
				Frequency: freq,
			}); err != nil {
				continue
			}
			k := &i2cKeyboard{bus: bus, req: [1]byte{picoCalcKbdFIFO}}
			// The controller can be slow to answer right after power-up.
			for try := 0; try < 50; try++ {
				if k.bus.Tx(picoCalcKbdAddr, k.req[:], k.resp[:]) == nil {
					return k, nil
				}
				time.Sleep(10 * time.Millisecond)
			}
		}
	}
	return nil, errors.New("keyboard: I2C unavailable")
}

func (k *i2cKeyboard) readEvent() (KeyEvent, bool) {
	if err := k.bus.Tx(picoCalcKbdAddr, k.req[:], k.resp[:]); err != nil {
		return KeyEvent{}, false
	}
	state, code := k.resp[0], k.resp[1]
	if code == 0 || code == picoCalcKeyAlt || code == picoCalcKeyCtrl {
		return KeyEvent{}, false
	}
	switch state {
	case 0x01:
		return translatePicoCalcKey(code, true)
	case 0x03:
		return translatePicoCalcKey(code, false)
	default:
		// Held keys repeat in the keypad service.
		return KeyEvent{}, false
	}
}

func translatePicoCalcKey(code byte, press bool) (KeyEvent, bool) {
	if kc, ok := picoCalcSpecial[code]; ok {
		return KeyEvent{Code: kc, Press: press}, true
	}
	if !press {
		return KeyEvent{}, false
	}
	return KeyEvent{Rune: rune(code), Press: true}, true
}
