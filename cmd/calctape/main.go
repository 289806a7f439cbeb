// Command calctape replays button tapes through the calculator engine.
//
//	calctape [-q] [-watch [-d 300ms] [-poll]] file.tape...
//
// A tape is whitespace-separated button tokens ("12.5 x 4 =", "AC",
// "neg", "%"); '#' comments run to the end of the line.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mattn/go-isatty"

	"pocketcalc/internal/buildinfo"
	"pocketcalc/internal/filewatch"
)

func main() {
	var (
		watch    = flag.Bool("watch", false, "Replay again whenever a tape changes.")
		debounce = flag.Duration("d", 300*time.Millisecond, "Delay before replaying after a change (-watch).")
		poll     = flag.Bool("poll", false, "Poll for changes instead of using filesystem events (-watch).")
		quiet    = flag.Bool("q", false, "Print only the final display of each tape.")
		version  = flag.Bool("version", false, "Print version and exit.")
	)
	flag.Parse()

	if *version {
		fmt.Println("calctape " + buildinfo.Long())
		return
	}
	if flag.NArg() == 0 {
		fatalf("usage: calctape [-q] [-watch [-d 300ms] [-poll]] file.tape...")
	}
	paths := flag.Args()

	if !*watch {
		if err := replayFiles(os.Stdout, paths, *quiet); err != nil {
			fatalf("%v", err)
		}
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var fw filewatch.Watcher
	if *poll {
		fw = filewatch.NewPoller(filewatch.DefaultPollInterval)
	} else {
		fw = filewatch.New()
	}
	opts := watchOptions{
		debounce: *debounce,
		quiet:    *quiet,
		live:     isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()),
	}
	if err := watchTapes(ctx, fw, os.Stdout, paths, opts); err != nil {
		fatalf("%v", err)
	}
}

func fatalf(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(2)
}
