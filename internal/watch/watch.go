// Package watch implements the optional live-refresh mode behind
// `status --watch`: it re-renders status whenever the working
// directory changes, without altering what a single, non-watching
// status call prints.
package watch

import (
	"context"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"gitlet/internal/logging"
)

// Watch blocks, invoking render every time a file under root is
// created, written, removed, or renamed, until ctx is canceled.
// ignoreDir is skipped entirely — it is the persistence root, whose own
// churn (lock file, index) must never trigger a redundant refresh.
func Watch(ctx context.Context, root, ignoreDir string, log *logging.Logger, render func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.Add(root); err != nil {
		return err
	}

	render()
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Dir(event.Name) == filepath.Join(root, ignoreDir) {
				continue
			}
			if filepath.Base(event.Name) == ignoreDir {
				continue
			}
			if event.Op == fsnotify.Chmod {
				continue
			}
			render()
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			if log != nil {
				log.Warn("watch error", zap.Error(err))
			}
		}
	}
}
