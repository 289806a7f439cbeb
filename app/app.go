package app

import (
	"errors"
	"sync"
	"time"

	"pocketcalc/calcos/engine"
	"pocketcalc/calcos/kernel"
	"pocketcalc/calcos/proto"
	"pocketcalc/calcos/services/keypad"
	"pocketcalc/calcos/services/logger"
	timesvc "pocketcalc/calcos/services/time"
	"pocketcalc/calcos/tasks/calc"
	"pocketcalc/calcos/tasks/script"
	"pocketcalc/hal"
	"pocketcalc/internal/buildinfo"
)

var (
	// ErrScriptDone is returned by the step function once a configured
	// script has been fully pressed.
	ErrScriptDone = errors.New("script done")
	// ErrPanicked is returned by the step function after a task panic when
	// Config.ExitOnPanic is set.
	ErrPanicked = errors.New("task panicked")
)

// Config selects what the system runs.
type Config struct {
	Theme calc.Theme
	Trace bool

	// Script, when non-empty, is pressed on the calculator one button per
	// ScriptInterval ticks.
	Script         []engine.Button
	ScriptInterval uint32

	// Readout, when set, builds a task that receives MsgReadout updates.
	Readout func(recv kernel.Capability) kernel.Task

	ExitOnPanic bool
}

// shutdownWait bounds how long shutdown waits for the readout to drain.
const shutdownWait = 500 * time.Millisecond

type system struct {
	k           *kernel.Kernel
	calcCap     kernel.Capability
	scriptDone  chan struct{}
	readoutDone chan struct{}
	exitOnPanic bool

	stopOnce sync.Once
}

// New starts the calculator with the default config.
func New(h hal.HAL) func() error {
	return NewWithConfig(h, Config{})
}

// Run starts the calculator and blocks forever (TinyGo entrypoint).
func Run(h hal.HAL) {
	_ = New(h)
	select {}
}

// NewWithConfig wires the kernel, services and the calculator task. The
// returned step function is called once per host frame.
func NewWithConfig(h hal.HAL, cfg Config) func() error {
	s := newSystem(h, cfg)
	return s.step
}

func newSystem(h hal.HAL, cfg Config) *system {
	installPanicHandler(h)

	k := kernel.New()
	logEP := k.NewEndpoint(kernel.RightSend | kernel.RightRecv)
	timeEP := k.NewEndpoint(kernel.RightSend | kernel.RightRecv)
	calcEP := k.NewEndpoint(kernel.RightSend | kernel.RightRecv)

	s := &system{k: k, calcCap: calcEP.Restrict(kernel.RightSend), exitOnPanic: cfg.ExitOnPanic}

	k.AddTask(logger.New(h.Logger(), logEP.Restrict(kernel.RightRecv)))
	k.AddTask(timesvc.New(h.Time(), k, timeEP.Restrict(kernel.RightRecv)))

	calcCfg := calc.Config{
		Theme:  cfg.Theme,
		LogCap: logEP.Restrict(kernel.RightSend),
		Trace:  cfg.Trace,
	}
	if cfg.Readout != nil {
		readEP := k.NewEndpoint(kernel.RightSend | kernel.RightRecv)
		s.readoutDone = make(chan struct{})
		k.AddTask(trackedTask{Task: cfg.Readout(readEP.Restrict(kernel.RightRecv)), done: s.readoutDone})
		calcCfg.ReadoutCap = readEP.Restrict(kernel.RightSend)
	}
	k.AddTask(calc.New(h.Display(), calcEP.Restrict(kernel.RightRecv), calcCfg))
	k.AddTask(keypad.New(h.Input(), calcEP.Restrict(kernel.RightSend)))

	if len(cfg.Script) > 0 {
		interval := cfg.ScriptInterval
		if interval == 0 {
			interval = 150
		}
		s.scriptDone = make(chan struct{})
		k.AddTask(script.New(timeEP.Restrict(kernel.RightSend), calcEP.Restrict(kernel.RightSend), script.Config{
			Buttons:  cfg.Script,
			Interval: interval,
			LogCap:   logEP.Restrict(kernel.RightSend),
			Done:     s.scriptDone,
		}))
	}

	if l := h.Logger(); l != nil {
		l.WriteLineString("pocketcalc " + buildinfo.Short() + ": ready")
	}
	return s
}

func (s *system) step() error {
	if s.exitOnPanic && kernel.InPanicMode() {
		s.shutdown()
		return ErrPanicked
	}
	if s.scriptDone == nil {
		return nil
	}
	select {
	case <-s.scriptDone:
		s.shutdown()
		return ErrScriptDone
	default:
		return nil
	}
}

// shutdown stops the calculator, which passes the shutdown on to the
// readout, and waits a bounded time for the readout to finish. Late input
// then fails with SendErrNoEndpoint.
func (s *system) shutdown() {
	s.stopOnce.Do(func() {
		s.k.Post(s.calcCap, uint16(proto.MsgAppShutdown), nil)
		if s.readoutDone != nil {
			select {
			case <-s.readoutDone:
			case <-time.After(shutdownWait):
			}
		}
		s.k.CloseEndpoint(s.calcCap)
	})
}

// trackedTask closes done when the wrapped task returns.
type trackedTask struct {
	kernel.Task
	done chan struct{}
}

func (t trackedTask) Run(ctx *kernel.Context) {
	defer close(t.done)
	t.Task.Run(ctx)
}
