// Package watcher notifies the engine when a mesh source file changes
// on disk, so the owning context can be rebuilt.
package watcher

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// SourceWatcher watches mesh source files and triggers callbacks on
// change. Rapid successive writes are debounced.
type SourceWatcher struct {
	watcher   *fsnotify.Watcher
	mu        sync.Mutex
	callbacks map[string]func(string)
	debounce  time.Duration
	timers    map[string]*time.Timer
	logger    *slog.Logger
	done      chan struct{}
}

// NewSourceWatcher creates a watcher with the given debounce window
func NewSourceWatcher(debounce time.Duration, logger *slog.Logger) (*SourceWatcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	sw := &SourceWatcher{
		watcher:   fsw,
		callbacks: make(map[string]func(string)),
		debounce:  debounce,
		timers:    make(map[string]*time.Timer),
		logger:    logger,
		done:      make(chan struct{}),
	}
	go sw.run()
	return sw, nil
}

// Watch registers a file; callback runs when it is written or
// recreated
func (sw *SourceWatcher) Watch(file string, callback func(string)) error {
	absPath, err := filepath.Abs(file)
	if err != nil {
		return fmt.Errorf("failed to resolve path %s: %w", file, err)
	}
	if err := sw.watcher.Add(absPath); err != nil {
		return fmt.Errorf("failed to watch %s: %w", absPath, err)
	}

	sw.mu.Lock()
	sw.callbacks[absPath] = callback
	sw.mu.Unlock()
	return nil
}

// Unwatch removes a file from the watch set
func (sw *SourceWatcher) Unwatch(file string) error {
	absPath, err := filepath.Abs(file)
	if err != nil {
		return fmt.Errorf("failed to resolve path %s: %w", file, err)
	}

	sw.mu.Lock()
	delete(sw.callbacks, absPath)
	if timer, ok := sw.timers[absPath]; ok {
		timer.Stop()
		delete(sw.timers, absPath)
	}
	sw.mu.Unlock()

	return sw.watcher.Remove(absPath)
}

func (sw *SourceWatcher) run() {
	for {
		select {
		case event, ok := <-sw.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				sw.handleChange(event.Name)
			}

		case err, ok := <-sw.watcher.Errors:
			if !ok {
				return
			}
			sw.logger.Warn("watcher error", "error", err)

		case <-sw.done:
			return
		}
	}
}

// handleChange schedules the file's callback after the debounce
// window, resetting the timer on every new event
func (sw *SourceWatcher) handleChange(filePath string) {
	sw.mu.Lock()
	defer sw.mu.Unlock()

	callback, exists := sw.callbacks[filePath]
	if !exists {
		return
	}

	if timer, ok := sw.timers[filePath]; ok {
		timer.Stop()
	}
	sw.timers[filePath] = time.AfterFunc(sw.debounce, func() {
		callback(filePath)
	})
}

// Close stops the watcher and releases its resources
func (sw *SourceWatcher) Close() error {
	close(sw.done)
	return sw.watcher.Close()
}
