package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"
)

const defaultDebounce = 150 * time.Millisecond

// DataWatcher reports changes to the data file made by other processes,
// such as a CLI command run in another terminal.
type DataWatcher struct {
	watcher  *fsnotify.Watcher
	changes  chan struct{}
	done     chan struct{}
	base     string
	debounce time.Duration
	once     sync.Once
}

// NewDataWatcher watches the directory holding path. Only events for path
// itself (or its sqlite -wal and -journal siblings) are reported.
func NewDataWatcher(path string, debounce time.Duration) (*DataWatcher, error) {
	if debounce <= 0 {
		debounce = defaultDebounce
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}

	// Watch the directory, not the file: editors and atomic writers replace
	// the file, which drops a direct watch.
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		_ = w.Close()
		return nil, fmt.Errorf("creating %s: %w", dir, err)
	}
	if err := w.Add(dir); err != nil {
		_ = w.Close()
		return nil, fmt.Errorf("watching %s: %w", dir, err)
	}

	dw := &DataWatcher{
		watcher:  w,
		changes:  make(chan struct{}, 1),
		done:     make(chan struct{}),
		base:     filepath.Base(path),
		debounce: debounce,
	}
	go dw.run()
	return dw, nil
}

// Changes delivers one value per burst of changes.
func (d *DataWatcher) Changes() <-chan struct{} {
	return d.changes
}

// Close stops the watcher and closes the Changes channel.
func (d *DataWatcher) Close() error {
	var err error
	d.once.Do(func() {
		close(d.done)
		err = d.watcher.Close()
	})
	return err
}

func (d *DataWatcher) matches(name string) bool {
	return strings.HasPrefix(filepath.Base(name), d.base)
}

func (d *DataWatcher) run() {
	defer close(d.changes)

	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-d.done:
			if timer != nil {
				timer.Stop()
			}
			return

		case ev, ok := <-d.watcher.Events:
			if !ok {
				return
			}
			if !d.matches(ev.Name) || ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(d.debounce)
			} else {
				timer.Reset(d.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			select {
			case d.changes <- struct{}{}:
			default:
			}

		case _, ok := <-d.watcher.Errors:
			if !ok {
				return
			}
		}
	}
}

// waitForChange blocks until the watcher reports a change.
func waitForChange(w *DataWatcher) tea.Cmd {
	if w == nil {
		return nil
	}
	return func() tea.Msg {
		if _, ok := <-w.Changes(); !ok {
			return nil
		}
		return FileChangedMsg{}
	}
}
