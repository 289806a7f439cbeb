package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"pocketcalc/calcos/engine"
)

// replayFiles replays each tape from a fresh calculator and stops at the
// first file that cannot be read or parsed.
func replayFiles(w io.Writer, paths []string, quiet bool) error {
	for i, path := range paths {
		buttons, err := loadTape(path)
		if err != nil {
			return err
		}
		if i > 0 && !quiet {
			fmt.Fprintln(w)
		}
		writeReplay(w, path, buttons, quiet)
	}
	return nil
}

func loadTape(path string) ([]engine.Button, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	buttons, err := engine.ParseTape(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return buttons, nil
}

// writeReplay prints one row per press (button, display, pending operation)
// followed by the final display. quiet keeps only the final line.
func writeReplay(w io.Writer, name string, buttons []engine.Button, quiet bool) {
	steps := engine.Replay(engine.New(), buttons)
	final := engine.New()
	if n := len(steps); n > 0 {
		final = steps[n-1].State
	}
	if quiet {
		fmt.Fprintf(w, "%s: %s\n", name, final.Display)
		return
	}

	fmt.Fprintf(w, "== %s (%d presses)\n", name, len(steps))
	for _, st := range steps {
		row := fmt.Sprintf("%-4s %16s  %s", st.Button.ASCII(), st.State.Display, st.State.PendingASCII())
		fmt.Fprintln(w, strings.TrimRight(row, " "))
	}
	fmt.Fprintf(w, "=> %s\n", final.Display)
}
