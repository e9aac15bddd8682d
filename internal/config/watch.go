package config

import (
	"context"
	"log/slog"
	"time"

	"github.com/fsnotify/fsnotify"
)

// debounceDelay coalesces editor write bursts into one reload.
const debounceDelay = 100 * time.Millisecond

// Watch reloads the config file whenever it changes and delivers the
// result to onReload. It blocks until the context is cancelled. Used
// in development so flag and worker tweaks apply without a restart.
func Watch(ctx context.Context, dir string, logger *slog.Logger, onReload func(*Config)) error {
	path := FindConfigFile(dir)
	if path == "" {
		logger.Debug("no config file to watch", "dir", dir)
		<-ctx.Done()
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer func() { _ = watcher.Close() }()

	if err := watcher.Add(path); err != nil {
		return err
	}

	var debounceTimer *time.Timer

	for {
		select {
		case <-ctx.Done():
			return nil

		case event := <-watcher.Events:
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}

			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(debounceDelay, func() {
				cfg, err := Load(dir)
				if err != nil {
					logger.Error("config reload failed", "error", err)
					return
				}
				logger.Info("config reloaded", "file", path)
				onReload(cfg)
			})

		case err := <-watcher.Errors:
			logger.Error("config watcher error", "error", err)
		}
	}
}
