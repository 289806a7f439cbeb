//go:build tinygo && baremetal

package hal

// stubKeyboard stands in when the keyboard controller does not answer.
type stubKeyboard struct{}

func (stubKeyboard) Events() <-chan KeyEvent { return nil }
