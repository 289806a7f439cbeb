//go:build !tinygo

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/mattn/go-isatty"

	"pocketcalc/app"
	"pocketcalc/calcos/engine"
	"pocketcalc/calcos/kernel"
	"pocketcalc/calcos/services/readout"
	"pocketcalc/hal"
	"pocketcalc/internal/buildinfo"
	"pocketcalc/internal/config"
)

func main() {
	var (
		configPath  string
		headless    bool
		hz          int
		ticks       uint64
		scriptPath  string
		interval    uint
		trace       bool
		showVersion bool
	)
	flag.StringVar(&configPath, "config", "", "HCL config file.")
	flag.BoolVar(&headless, "headless", false, "Run without a window.")
	flag.IntVar(&hz, "hz", 0, "Tick rate in headless mode (default from config, 60).")
	flag.Uint64Var(&ticks, "ticks", 0, "Stop after N ticks in headless mode (0 = run forever).")
	flag.StringVar(&scriptPath, "script", "", "Button tape to press after start.")
	flag.UintVar(&interval, "interval", 150, "Milliseconds between scripted presses.")
	flag.BoolVar(&trace, "trace", false, "Log every button press.")
	flag.BoolVar(&showVersion, "version", false, "Print version and exit.")
	flag.Parse()

	if showVersion {
		fmt.Println("pocketcalc " + buildinfo.Long())
		return
	}

	cfg := config.Default()
	if configPath != "" {
		var err error
		if cfg, err = config.Load(configPath); err != nil {
			fatalf("%v", err)
		}
	}
	if hz > 0 {
		cfg.Headless.Hz = hz
	}
	cfg.Trace = cfg.Trace || trace

	var script []engine.Button
	if scriptPath != "" {
		f, err := os.Open(scriptPath)
		if err != nil {
			fatalf("open script: %v", err)
		}
		script, err = engine.ParseTape(f)
		f.Close()
		if err != nil {
			fatalf("%s: %v", scriptPath, err)
		}
	}

	term := readout.NewTerminal(os.Stdout)
	defer term.Close()

	appCfg := app.Config{
		Theme:          cfg.Theme,
		Trace:          cfg.Trace,
		Script:         script,
		ScriptInterval: uint32(interval),
		Readout: func(recv kernel.Capability) kernel.Task {
			return readout.New(term, recv)
		},
		ExitOnPanic: headless,
	}
	newApp := func(h hal.HAL) func() error { return app.NewWithConfig(h, appCfg) }

	var err error
	if headless {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		hcfg := hal.HeadlessConfig{Hz: cfg.Headless.Hz, Ticks: ticks, Log: term.LogWriter()}
		// Piped stdin is typed into the calculator.
		if !isatty.IsTerminal(os.Stdin.Fd()) && !isatty.IsCygwinTerminal(os.Stdin.Fd()) {
			hcfg.Keys = os.Stdin
		}
		err = hal.RunHeadless(ctx, newApp, hcfg)
	} else {
		err = hal.RunWindow(newApp, hal.WindowConfig{
			Title: cfg.Window.Title + " (" + buildinfo.Short() + ")",
			Scale: cfg.Window.Scale,
			Log:   term.LogWriter(),
		})
	}

	switch {
	case err == nil, errors.Is(err, context.Canceled), errors.Is(err, app.ErrScriptDone):
	default:
		term.Close()
		fatalf("%v", err)
	}
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "pocketcalc: "+format+"\n", args...)
	os.Exit(1)
}
