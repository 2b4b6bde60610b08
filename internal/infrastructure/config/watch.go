package config

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/doeshing/shai-term/internal/domain"
	"github.com/doeshing/shai-term/internal/ports"
)

// reloadDelay batches the burst of events editors emit for one save.
const reloadDelay = 150 * time.Millisecond

// Watch reloads the config file whenever it changes and hands the result to
// onChange. Files that fail to parse are logged and skipped. The watcher
// stops when ctx is cancelled.
func Watch(ctx context.Context, loader *FileLoader, onChange func(domain.AppConfig), log ports.Logger) error {
	path := filepath.Clean(loader.Path())

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create config watcher: %w", err)
	}
	// The directory is watched because editors replace the file on save.
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		_ = watcher.Close()
		return fmt.Errorf("watch %s: %w", filepath.Dir(path), err)
	}

	go func() {
		defer watcher.Close()

		timer := time.NewTimer(reloadDelay)
		timer.Stop()
		defer timer.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != path {
					continue
				}
				if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
					timer.Reset(reloadDelay)
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Warn("config watcher error", map[string]interface{}{"error": err.Error()})
			case <-timer.C:
				cfg, err := loader.Load(ctx)
				if err != nil {
					log.Warn("config reload failed", map[string]interface{}{"path": path, "error": err.Error()})
					continue
				}
				log.Debug("config reloaded", map[string]interface{}{"path": path})
				onChange(cfg)
			}
		}
	}()
	return nil
}
