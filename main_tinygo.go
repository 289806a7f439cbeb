//go:build tinygo && baremetal

package main

import (
	"pocketcalc/app"
	"pocketcalc/hal"
)

func main() {
	app.RunDevice(hal.New())
}
