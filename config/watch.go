package config

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watcher reloads a profiles file when it changes.
type Watcher struct {
	path string
	w    *fsnotify.Watcher
}

// NewWatcher starts watching path. The directory is watched rather than
// the file so that editors replacing the file are noticed.
func NewWatcher(path string) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("config: watch: %w", err)
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("config: watch: %w", err)
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		w.Close()
		return nil, fmt.Errorf("config: watch %s: %w", path, err)
	}
	return &Watcher{path: abs, w: w}, nil
}

// Run calls fn with the reloaded file, or the load error, after every
// change until ctx is done. It closes the watcher before returning.
func (w *Watcher) Run(ctx context.Context, fn func(*File, error)) {
	defer w.w.Close()
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-w.w.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path || !ev.Has(fsnotify.Write|fsnotify.Create) {
				continue
			}
			fn(Load(w.path))
		case err, ok := <-w.w.Errors:
			if !ok {
				return
			}
			fn(nil, fmt.Errorf("config: watch: %w", err))
		}
	}
}

// Watch watches path and calls fn on every change until ctx is done.
func Watch(ctx context.Context, path string, fn func(*File, error)) error {
	w, err := NewWatcher(path)
	if err != nil {
		return err
	}
	w.Run(ctx, fn)
	return nil
}
