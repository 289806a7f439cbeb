//go:build !tinygo && !cgo

package hal

import (
	"errors"
	"io"
)

// WindowConfig controls the desktop window.
type WindowConfig struct {
	Title string
	Scale int
	Log   io.Writer
}

func RunWindow(_ func(HAL) func() error, _ WindowConfig) error {
	return errors.New("window mode requires cgo (build/run with CGO_ENABLED=1)")
}
