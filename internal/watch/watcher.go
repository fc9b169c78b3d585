// Package watch keeps a directory organized by re-running the engine
// whenever the directory changes and then settles down.
package watch

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"clair/internal/errors"
	"clair/internal/log"
	"clair/internal/organize"
	"clair/pkg/types"
)

// Watcher monitors a single directory with fsnotify and triggers an
// organize run once a burst of changes has been quiet for the debounce
// interval. Runs are serialized on the watch loop; the engine itself
// stays synchronous.
type Watcher struct {
	engine   *organize.Engine
	dir      string
	opts     organize.Options
	debounce time.Duration
	onReport func(*types.Report)
}

// New creates a watcher for dir. The directory must exist.
func New(engine *organize.Engine, dir string, opts organize.Options, debounce time.Duration) (*Watcher, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, errors.NewFileError("cannot access directory", dir, err)
	}
	if !info.IsDir() {
		return nil, errors.Newf("not a directory: %s", dir)
	}
	if debounce <= 0 {
		debounce = 2 * time.Second
	}
	return &Watcher{
		engine:   engine,
		dir:      filepath.Clean(dir),
		opts:     opts,
		debounce: debounce,
	}, nil
}

// SetReportFunc installs a callback invoked with the report of every
// watch-triggered run.
func (w *Watcher) SetReportFunc(fn func(*types.Report)) {
	w.onReport = fn
}

// Run watches until the context is cancelled. An initial run fires after
// the first debounce interval so a directory that is already messy gets
// organized without waiting for an event.
func (w *Watcher) Run(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "failed to create fsnotify watcher")
	}
	defer fsw.Close()

	if err := fsw.Add(w.dir); err != nil {
		return errors.NewFileError("failed to watch directory", w.dir, err)
	}
	log.LogWithFields(log.F("directory", w.dir)).Info("Watching directory")

	timer := time.NewTimer(w.debounce)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) == 0 {
				continue
			}
			log.LogWithFields(log.F("file", event.Name), log.F("op", event.Op.String())).
				Debug("Change detected")
			if !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
			timer.Reset(w.debounce)
		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			log.LogWithFields(log.F("error", err)).Error("fsnotify watcher error")
		case <-timer.C:
			w.organize(ctx)
		}
	}
}

func (w *Watcher) organize(ctx context.Context) {
	report, err := w.engine.Organize(ctx, w.dir, w.opts)
	if err != nil {
		log.LogWithFields(log.F("directory", w.dir), log.F("error", err)).
			Error("Watch-triggered run failed")
		return
	}
	// A run that moved nothing is the steady state; only report activity.
	if report.TotalMoved() > 0 || len(report.Errors) > 0 {
		log.Info("Watch run: %s", report.Summary())
		if w.onReport != nil {
			w.onReport(report)
		}
	}
}
