//go:build !tinygo && !cgo

package hal

// poll is a no-op without the window backend; headless input comes from feed.
func (k *hostKeyboard) poll() {}
