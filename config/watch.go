package config

import (
	"log"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/phroun/purfectrender"
)

// Watcher reloads a theme file when it changes on disk and delivers the
// parsed result to a callback, typically the host's SetTheme wrapper.
type Watcher struct {
	watcher *fsnotify.Watcher
	done    chan struct{}
}

// WatchTheme watches path and invokes onChange with each successfully
// parsed theme. The containing directory is watched rather than the file
// itself so editors that replace the file atomically still trigger a
// reload. Parse failures are logged and skipped; the previous theme stays
// in effect.
func WatchTheme(path string, onChange func(purfectrender.Theme)) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fw.Add(filepath.Dir(path)); err != nil {
		fw.Close()
		return nil, err
	}

	w := &Watcher{watcher: fw, done: make(chan struct{})}
	go w.run(path, onChange)
	return w, nil
}

func (w *Watcher) run(path string, onChange func(purfectrender.Theme)) {
	base := filepath.Base(path)
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != base {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			theme, err := LoadThemeFile(path)
			if err != nil {
				log.Printf("Warning: theme reload failed for %s: %v", path, err)
				continue
			}
			onChange(theme)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("Warning: theme watcher error: %v", err)
		case <-w.done:
			return
		}
	}
}

// Close stops watching.
func (w *Watcher) Close() error {
	close(w.done)
	return w.watcher.Close()
}
