package devconfig

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/hpcv/vrpninput/internal/logging"
)

// Snapshot is the result of one (re)load of a watched file.
type Snapshot struct {
	Devices  []Device
	Problems []Problem
	Err      error
}

// LoadDevices loads path and validates it in one step.
func LoadDevices(path string, enabled []string) Snapshot {
	f, err := Load(path)
	if err != nil {
		return Snapshot{Err: err}
	}
	devices, problems := f.Devices(enabled)
	return Snapshot{Devices: devices, Problems: problems}
}

// Watch calls fn with the current contents of path and again after every
// write, create or rename that touches it. It blocks until ctx is done.
//
// The parent directory is watched so editors that replace the file on save
// are still followed.
func Watch(ctx context.Context, path string, enabled []string, fn func(Snapshot)) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to resolve %s: %w", path, err)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer w.Close()

	if err := w.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(abs), err)
	}

	fn(LoadDevices(abs, enabled))

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != abs {
				continue
			}
			if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename) {
				logging.Debug("device config changed", "path", abs, "op", ev.Op.String())
				fn(LoadDevices(abs, enabled))
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logging.Warn("watch error", "path", abs, "error", err)
		}
	}
}
