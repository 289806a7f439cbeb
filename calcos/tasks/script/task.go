// Package script presses a fixed button sequence on the calculator, one press
// per interval, as if typed on the keypad.
package script

import (
	logclient "pocketcalc/calcos/client/logger"
	timeclient "pocketcalc/calcos/client/time"
	"pocketcalc/calcos/engine"
	"pocketcalc/calcos/kernel"
	"pocketcalc/calcos/proto"
)

// Config describes one script run.
type Config struct {
	Buttons []engine.Button
	// Interval is the number of ticks between presses.
	Interval uint32
	LogCap   kernel.Capability
	// Done is closed once every press has been delivered and one more
	// interval has passed.
	Done chan<- struct{}
}

type Task struct {
	timeCap kernel.Capability
	calcCap kernel.Capability
	cfg     Config
}

func New(timeCap, calcCap kernel.Capability, cfg Config) *Task {
	return &Task{timeCap: timeCap, calcCap: calcCap, cfg: cfg}
}

func (t *Task) Run(ctx *kernel.Context) {
	if t.cfg.Done != nil {
		defer close(t.cfg.Done)
	}
	clock := timeclient.New(t.timeCap)

	for i, b := range t.cfg.Buttons {
		if err := clock.Sleep(ctx, t.cfg.Interval); err != nil {
			logclient.LogRetry(ctx, t.cfg.LogCap, "script: "+err.Error(), 4)
			return
		}
		res := ctx.SendToCapRetry(t.calcCap, uint16(proto.MsgButtonPress), proto.ButtonPressPayload(uint8(b)), kernel.Capability{}, 8)
		if res != kernel.SendOK {
			logclient.Logf(ctx, t.cfg.LogCap, "script: press %d (%s): %s", i+1, b.ASCII(), res)
			return
		}
	}
	_ = clock.Sleep(ctx, t.cfg.Interval)
	logclient.Logf(ctx, t.cfg.LogCap, "script: %d presses done", len(t.cfg.Buttons))
}
