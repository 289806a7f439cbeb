package filewatch

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const DefaultPollInterval = 200 * time.Millisecond

type fileInfo struct {
	modTime time.Time
	size    int64
	exists  bool
}

func (f fileInfo) same(o fileInfo) bool {
	return f.exists == o.exists && f.size == o.size && f.modTime.Equal(o.modTime)
}

// Poller compares modification time and size on every interval.
type Poller struct {
	interval time.Duration

	mu    sync.Mutex
	files map[string]fileInfo

	events chan fsnotify.Event
	errors chan error
	stop   chan struct{}
	done   chan struct{}
	once   sync.Once
}

func NewPoller(interval time.Duration) *Poller {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	p := &Poller{
		interval: interval,
		files:    make(map[string]fileInfo),
		events:   make(chan fsnotify.Event, 16),
		errors:   make(chan error, 4),
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
	go p.run()
	return p
}

func (p *Poller) Events() <-chan fsnotify.Event { return p.events }
func (p *Poller) Errors() <-chan error          { return p.errors }

func (p *Poller) Add(name string) error {
	name = filepath.Clean(name)
	info, err := stat(name)
	if err != nil {
		return err
	}
	if !info.exists {
		return &fs.PathError{Op: "watch", Path: name, Err: fs.ErrNotExist}
	}
	p.mu.Lock()
	p.files[name] = info
	p.mu.Unlock()
	return nil
}

func (p *Poller) Close() error {
	p.once.Do(func() { close(p.stop) })
	<-p.done
	return nil
}

func (p *Poller) run() {
	defer close(p.done)
	defer close(p.events)
	defer close(p.errors)

	t := time.NewTicker(p.interval)
	defer t.Stop()
	for {
		select {
		case <-p.stop:
			return
		case <-t.C:
			for _, ev := range p.check() {
				select {
				case p.events <- ev:
				case <-p.stop:
					return
				}
			}
		}
	}
}

// check returns one event per file whose state moved since the last poll.
// A file that disappears stays watched so that a later re-create is seen.
func (p *Poller) check() []fsnotify.Event {
	p.mu.Lock()
	defer p.mu.Unlock()

	var out []fsnotify.Event
	for name, old := range p.files {
		cur, err := stat(name)
		if err != nil {
			select {
			case p.errors <- err:
			default:
			}
			continue
		}
		if cur.same(old) {
			continue
		}
		p.files[name] = cur
		switch {
		case !cur.exists:
			out = append(out, fsnotify.Event{Name: name, Op: fsnotify.Remove})
		case !old.exists:
			out = append(out, fsnotify.Event{Name: name, Op: fsnotify.Create})
		default:
			out = append(out, fsnotify.Event{Name: name, Op: fsnotify.Write})
		}
	}
	return out
}

func stat(name string) (fileInfo, error) {
	fi, err := os.Stat(name)
	if errors.Is(err, fs.ErrNotExist) {
		return fileInfo{}, nil
	}
	if err != nil {
		return fileInfo{}, err
	}
	return fileInfo{modTime: fi.ModTime(), size: fi.Size(), exists: true}, nil
}
