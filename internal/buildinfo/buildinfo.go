// Package buildinfo carries release identifiers stamped in by the linker:
//
//	go build -ldflags "-X pocketcalc/internal/buildinfo.Version=v1.2.0 \
//	    -X pocketcalc/internal/buildinfo.Commit=$(git rev-parse --short HEAD)"
//
// When nothing is stamped, the module build info recorded by the go tool
// fills in what it can.
package buildinfo

import (
	"runtime/debug"
	"strings"
	"sync"
)

// Version is set at build time via -ldflags.
var Version = "dev"

// Commit is set at build time via -ldflags.
var Commit = "unknown"

// Date is set at build time via -ldflags.
var Date = "unknown"

var fillOnce sync.Once

// fill copies VCS settings from the embedded build info into unset fields.
func fill() {
	fillOnce.Do(func() {
		bi, ok := debug.ReadBuildInfo()
		if !ok {
			return
		}
		fillFrom(bi)
	})
}

func fillFrom(bi *debug.BuildInfo) {
	if Version == "dev" || Version == "" {
		if v := bi.Main.Version; v != "" && v != "(devel)" {
			Version = v
		}
	}
	dirty := false
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			if Commit == "unknown" || Commit == "" {
				Commit = s.Value
				if len(Commit) > 12 {
					Commit = Commit[:12]
				}
			}
		case "vcs.time":
			if Date == "unknown" || Date == "" {
				Date = s.Value
			}
		case "vcs.modified":
			dirty = s.Value == "true"
		}
	}
	if dirty && Commit != "unknown" && !strings.HasSuffix(Commit, "-dirty") {
		Commit += "-dirty"
	}
}

// Short returns a compact build identifier for the UI and logs.
func Short() string {
	fill()
	if Version != "" && Version != "dev" {
		return Version
	}
	if Commit != "" && Commit != "unknown" {
		return Commit
	}
	return "dev"
}

// Long is the -version line: "v1.2.0 (commit abc123, built 2024-05-01)".
func Long() string {
	fill()
	return Version + " (commit " + Commit + ", built " + Date + ")"
}
