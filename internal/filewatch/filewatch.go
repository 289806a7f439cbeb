// Package filewatch reports changes to a fixed set of files.
//
// It prefers fsnotify and falls back to stat polling where inotify and
// friends are unavailable (some containers, network mounts).
package filewatch

import (
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// Watcher delivers change events for the files it was given.
type Watcher interface {
	Events() <-chan fsnotify.Event
	Errors() <-chan error
	Add(name string) error
	Close() error
}

// New returns an fsnotify-backed watcher, or a poller when fsnotify cannot
// be initialised.
func New() Watcher {
	w, err := NewEventWatcher()
	if err != nil {
		return NewPoller(DefaultPollInterval)
	}
	return w
}

// Changed reports whether ev is an edit that should trigger a rerun. Editors
// that save by rename show up as Create on the watched path.
func Changed(ev fsnotify.Event) bool {
	return ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create)
}

// EventWatcher watches parent directories and filters to the added files so
// that atomic saves (write temp, rename over) keep being seen.
type EventWatcher struct {
	w      *fsnotify.Watcher
	events chan fsnotify.Event
	errors chan error
	stop   chan struct{}
	done   chan struct{}
	once   sync.Once

	mu    sync.Mutex
	files map[string]bool
	dirs  map[string]bool
}

func NewEventWatcher() (*EventWatcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	w := &EventWatcher{
		w:      fw,
		events: make(chan fsnotify.Event, 16),
		errors: make(chan error, 4),
		stop:   make(chan struct{}),
		done:   make(chan struct{}),
		files:  make(map[string]bool),
		dirs:   make(map[string]bool),
	}
	go w.forward()
	return w, nil
}

func (w *EventWatcher) Events() <-chan fsnotify.Event { return w.events }
func (w *EventWatcher) Errors() <-chan error          { return w.errors }

func (w *EventWatcher) Add(name string) error {
	name = filepath.Clean(name)
	w.mu.Lock()
	defer w.mu.Unlock()
	dir := filepath.Dir(name)
	if !w.dirs[dir] {
		if err := w.w.Add(dir); err != nil {
			return err
		}
		w.dirs[dir] = true
	}
	w.files[name] = true
	return nil
}

func (w *EventWatcher) Close() error {
	w.once.Do(func() { close(w.stop) })
	err := w.w.Close()
	<-w.done
	return err
}

func (w *EventWatcher) forward() {
	defer close(w.done)
	defer close(w.events)
	defer close(w.errors)
	for {
		select {
		case ev, ok := <-w.w.Events:
			if !ok {
				return
			}
			ev.Name = filepath.Clean(ev.Name)
			w.mu.Lock()
			watched := w.files[ev.Name]
			w.mu.Unlock()
			if !watched {
				continue
			}
			select {
			case w.events <- ev:
			case <-w.stop:
				return
			}
		case err, ok := <-w.w.Errors:
			if !ok {
				return
			}
			select {
			case w.errors <- err:
			default:
			}
		}
	}
}
