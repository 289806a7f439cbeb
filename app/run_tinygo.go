//go:build tinygo

package app

import "pocketcalc/hal"

// RunDevice shows the boot splash, starts the calculator and blocks forever.
func RunDevice(h hal.HAL) {
	bootScreen(h, "starting")
	Run(h)
}
