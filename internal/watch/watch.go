// Package watch re-runs the corpus check when files under the watched root
// change. File events are debounced so editor save bursts trigger one run.
package watch

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/dgallion1/doclint/internal/corpus"
	"github.com/fsnotify/fsnotify"
)

// Watcher watches a directory tree and invokes a callback after Markdown
// file changes settle.
type Watcher struct {
	root     string
	debounce time.Duration
	onChange func()
	log      *slog.Logger

	mu      sync.Mutex
	watcher *fsnotify.Watcher
	timer   *time.Timer
	started bool
}

// New creates a watcher over root. onChange runs after each settled burst
// of relevant events.
func New(root string, debounce time.Duration, onChange func(), log *slog.Logger) *Watcher {
	return &Watcher{
		root:     root,
		debounce: debounce,
		onChange: onChange,
		log:      log,
	}
}

// Start begins watching. It returns once the watch is established; events
// are handled until ctx is cancelled or Stop is called.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.started {
		w.mu.Unlock()
		return nil
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		w.mu.Unlock()
		return err
	}
	w.watcher = fw
	w.started = true
	w.mu.Unlock()

	if err := w.addTree(w.root); err != nil {
		fw.Close()
		return err
	}
	w.log.Info("watching", "root", w.root, "debounce", w.debounce)

	go w.run(ctx)
	return nil
}

// Stop closes the watch and cancels any pending debounce.
func (w *Watcher) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.started {
		return
	}
	w.started = false
	if w.timer != nil {
		w.timer.Stop()
	}
	w.watcher.Close()
}

func (w *Watcher) run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			w.Stop()
			return
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(ev)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			if err != nil {
				w.log.Warn("watch error", "error", err)
			}
		}
	}
}

func (w *Watcher) handleEvent(ev fsnotify.Event) {
	switch {
	case ev.Op.Has(fsnotify.Create):
		// A new directory must be added to the watch before its
		// contents produce events.
		if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
			if err := w.addTree(ev.Name); err != nil {
				w.log.Warn("watch add failed", "path", ev.Name, "error", err)
			}
			w.trigger()
			return
		}
		if corpus.IsMarkdown(ev.Name) {
			w.trigger()
		}
	case ev.Op.Has(fsnotify.Write), ev.Op.Has(fsnotify.Remove), ev.Op.Has(fsnotify.Rename):
		if corpus.IsMarkdown(ev.Name) {
			w.trigger()
		}
	}
}

// trigger schedules the change callback, restarting the debounce window.
func (w *Watcher) trigger() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.started {
		return
	}
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, w.onChange)
}

// addTree registers root and every non-hidden subdirectory.
func (w *Watcher) addTree(root string) error {
	return filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if p != root && strings.HasPrefix(d.Name(), ".") {
			return fs.SkipDir
		}
		return w.watcher.Add(p)
	})
}
