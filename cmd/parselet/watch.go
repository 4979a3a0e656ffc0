package main

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// settleDelay lets editors finish writing before the file is parsed again.
const settleDelay = 100 * time.Millisecond

// updateOps are the events of a file being written in place or replaced by renaming a new file.
const updateOps = fsnotify.Write | fsnotify.Create

// isUpdate tells whether the event reports new content of a watched file.
func isUpdate(event fsnotify.Event, watched map[string]bool) bool {
	return event.Op&updateOps != 0 && watched[filepath.Clean(event.Name)]
}

// watch parses a file again every time it is written to or replaced, until ctx is cancelled.
// Directories are watched instead of files, so files replaced by renaming are still tracked.
func (r *parseRun) watch(ctx context.Context, names []string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	watched := make(map[string]bool)
	dirs := make(map[string]bool)
	for _, name := range names {
		if name == stdinName {
			return errors.New("cannot watch standard input")
		}
		name = filepath.Clean(name)
		watched[name] = true

		dir := filepath.Dir(name)
		if dirs[dir] {
			continue
		}
		if err = watcher.Add(dir); err != nil {
			return fmt.Errorf("watching %s: %w", name, err)
		}
		dirs[dir] = true
	}

	r.logger.Info("watching files", zap.Strings("files", names))
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !isUpdate(event, watched) {
				continue
			}

			time.Sleep(settleDelay)
			failed, total, err := r.runFiles(ctx, []string{event.Name})
			if err != nil {
				r.logger.Error("parsing modified file", zap.String("file", event.Name), zap.Error(err))
			} else {
				r.logger.Info("file parsed", zap.String("file", event.Name), zap.Int("samples", total), zap.Int("failed", failed))
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			r.logger.Error("watcher error", zap.Error(err))
		}
	}
}
