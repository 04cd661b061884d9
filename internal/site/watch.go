package site

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// WatchTemplate loads the template at path and reloads it whenever the file is
// written or replaced, until ctx is done. The directory is watched so editors
// that save by rename are picked up.
func (r *Renderer) WatchTemplate(ctx context.Context, path string, log *zap.SugaredLogger) error {
	if err := r.LoadTemplate(path); err != nil {
		return err
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch template: %w", err)
	}
	defer w.Close()

	if err := w.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("watch template: %w", err)
	}

	clean := filepath.Clean(path)
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != clean || ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if err := r.LoadTemplate(path); err != nil {
				log.Warnw("reload template", "path", path, "err", err)
				continue
			}
			log.Infow("reloaded template", "path", path)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Warnw("template watcher", "err", err)
		}
	}
}
