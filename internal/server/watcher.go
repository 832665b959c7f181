package server

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	debounceDuration = 500 * time.Millisecond
	// settleDuration lets editors finish their save-swap before onChange runs.
	settleDuration = 100 * time.Millisecond
)

// Watcher reports changes below a set of paths.
type Watcher struct {
	fsw      *fsnotify.Watcher
	watched  map[string]bool
	debounce time.Duration
	settle   time.Duration
	logger   zerolog.Logger
}

// NewWatcher watches every directory below the given paths. Plain files are
// watched through their parent directory. Missing paths are skipped.
func NewWatcher(paths ...string) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("could not create file watcher: %w", err)
	}
	w := &Watcher{
		fsw:      fsw,
		watched:  make(map[string]bool),
		debounce: debounceDuration,
		settle:   settleDuration,
		logger:   log.With().Str("component", "watcher").Logger(),
	}
	for _, path := range paths {
		if err := w.add(path); err != nil {
			fsw.Close()
			return nil, err
		}
	}
	return w, nil
}

func (w *Watcher) add(path string) error {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("could not stat path %s: %w", path, err)
	}
	if !info.IsDir() {
		w.addDir(filepath.Dir(path))
		return nil
	}
	err = filepath.WalkDir(path, func(walkPath string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			w.addDir(walkPath)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to watch directory %s: %w", path, err)
	}
	return nil
}

func (w *Watcher) addDir(dir string) {
	dir = filepath.Clean(dir)
	if w.watched[dir] {
		return
	}
	if err := w.fsw.Add(dir); err != nil {
		w.logger.Error().Err(err).Str("dir", dir).Msg("error adding watch")
		return
	}
	w.logger.Debug().Str("dir", dir).Msg("watching directory")
	w.watched[dir] = true
}

// Dirs lists the watched directories.
func (w *Watcher) Dirs() []string {
	return w.fsw.WatchList()
}

// Run calls onChange for changes until ctx is done. Changes arriving within
// the debounce window of the last call are folded into it.
func (w *Watcher) Run(ctx context.Context, onChange func(name string)) error {
	defer w.fsw.Close()

	var last time.Time
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
				!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
				continue
			}
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					w.addDir(event.Name)
				}
			}
			if time.Since(last) <= w.debounce {
				continue
			}
			time.Sleep(w.settle)
			w.logger.Info().Str("path", event.Name).Msg("change detected")
			onChange(event.Name)
			last = time.Now()
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Error().Err(err).Msg("watcher error")
		}
	}
}
