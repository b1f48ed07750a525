// Package watcher reruns generation when the routes file, or any file matching
// the configured include patterns, changes on disk.
package watcher

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"
	"github.com/tristendillon/easyroutes/core/cache"
	"github.com/tristendillon/easyroutes/core/logger"
)

var skipDirs = map[string]bool{
	".git":         true,
	"node_modules": true,
}

type FileWatcher struct {
	RootDir  string
	Patterns []string
	Debounce time.Duration
	OnChange func(ctx context.Context) error

	watcher  *fsnotify.Watcher
	contents *cache.ContentCache

	mutex    sync.Mutex
	timer    *time.Timer
	inFlight bool
	pending  bool
	stopped  bool
	runs     int
}

// NewFileWatcher watches rootDir for files matching patterns. Patterns are
// doublestar globs relative to rootDir, with forward slashes.
func NewFileWatcher(rootDir string, patterns []string, debounce time.Duration, onChange func(ctx context.Context) error) (*FileWatcher, error) {
	for _, pattern := range patterns {
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("invalid watch pattern %q", pattern)
		}
	}

	return &FileWatcher{
		RootDir:  rootDir,
		Patterns: patterns,
		Debounce: debounce,
		OnChange: onChange,
		contents: cache.NewContentCache(),
	}, nil
}

// Matches reports whether path (absolute or relative to RootDir) matches any pattern.
func (fw *FileWatcher) Matches(path string) bool {
	if filepath.IsAbs(path) {
		rel, err := filepath.Rel(fw.RootDir, path)
		if err != nil {
			return false
		}
		path = rel
	}
	path = filepath.ToSlash(filepath.Clean(path))

	for _, pattern := range fw.Patterns {
		matched, err := doublestar.Match(pattern, path)
		if err != nil {
			logger.Debug("Pattern match error for %s: %v", pattern, err)
			continue
		}
		if matched {
			return true
		}
	}
	return false
}

// watchRoots returns the directories to register: the static prefix of every
// pattern, resolved against RootDir.
func (fw *FileWatcher) watchRoots() []string {
	seen := map[string]bool{}
	var roots []string
	for _, pattern := range fw.Patterns {
		base, _ := doublestar.SplitPattern(pattern)
		dir := filepath.Join(fw.RootDir, filepath.FromSlash(base))
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			dir = filepath.Dir(dir)
		}
		if !seen[dir] {
			seen[dir] = true
			roots = append(roots, dir)
		}
	}
	return roots
}

func (fw *FileWatcher) addWatchersRecursively(root string) error {
	return filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return err
		}
		if !info.IsDir() {
			// Prime the cache so the first real edit is compared against this state.
			if fw.Matches(path) {
				if _, _, err := fw.contents.UpdateContent(path); err != nil {
					logger.Debug("Failed to hash %s: %v", path, err)
				}
			}
			return nil
		}
		if skipDirs[info.Name()] && path != root {
			return filepath.SkipDir
		}

		logger.Debug("Adding watcher for: %s", path)
		if err := fw.watcher.Add(path); err != nil {
			return fmt.Errorf("failed to add watcher for %s: %w", path, err)
		}
		return nil
	})
}

// Watch blocks until ctx is cancelled or the underlying watcher fails.
func (fw *FileWatcher) Watch(ctx context.Context) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	fw.watcher = w
	defer fw.Close()

	for _, root := range fw.watchRoots() {
		if err := fw.addWatchersRecursively(root); err != nil {
			return fmt.Errorf("failed to add watchers: %w", err)
		}
	}
	logger.Info("Watching for changes (%v)...", fw.Patterns)

	for {
		select {
		case <-ctx.Done():
			stats := fw.contents.Stats()
			logger.Info("Stopped watching (%d regenerations, %d files tracked, %d unchanged saves)", fw.Runs(), stats.TotalFiles, stats.Hits)
			return nil

		case event, ok := <-w.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}
			fw.handleEvent(ctx, event)

		case err, ok := <-w.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			logger.Error("Watcher error: %v", err)
		}
	}
}

func (fw *FileWatcher) handleEvent(ctx context.Context, event fsnotify.Event) {
	if event.Has(fsnotify.Create) {
		if stat, err := os.Stat(event.Name); err == nil && stat.IsDir() && !skipDirs[stat.Name()] {
			logger.Debug("Adding watcher for new directory: %s", event.Name)
			if err := fw.watcher.Add(event.Name); err != nil {
				logger.Error("Failed to watch %s: %v", event.Name, err)
			}
			return
		}
	}

	if event.Op == fsnotify.Chmod || !fw.Matches(event.Name) {
		return
	}
	logger.Debug("File event: %s %s", event.Op, event.Name)

	_, changed, err := fw.contents.UpdateContent(event.Name)
	if err != nil {
		logger.Error("Failed to read %s: %v", event.Name, err)
		return
	}
	if !changed {
		logger.Debug("Content unchanged for %s", event.Name)
		return
	}

	fw.debounceGenerate(ctx)
}

// debounceGenerate restarts the timer. Runs never overlap: a trigger that
// fires while OnChange is running schedules exactly one more run.
func (fw *FileWatcher) debounceGenerate(ctx context.Context) {
	fw.mutex.Lock()
	defer fw.mutex.Unlock()

	if fw.stopped {
		return
	}
	if fw.timer != nil {
		fw.timer.Stop()
	}
	fw.timer = time.AfterFunc(fw.Debounce, func() { fw.flush(ctx) })
}

func (fw *FileWatcher) flush(ctx context.Context) {
	fw.mutex.Lock()
	if fw.stopped {
		fw.mutex.Unlock()
		return
	}
	if fw.inFlight {
		fw.pending = true
		fw.mutex.Unlock()
		return
	}
	fw.inFlight = true
	fw.mutex.Unlock()

	logger.Info("Change detected, regenerating...")
	if err := fw.OnChange(ctx); err != nil {
		logger.Error("Regeneration failed: %v", err)
	}

	fw.mutex.Lock()
	fw.inFlight = false
	fw.runs++
	if fw.pending && !fw.stopped {
		fw.pending = false
		fw.timer = time.AfterFunc(fw.Debounce, func() { fw.flush(ctx) })
	}
	fw.mutex.Unlock()
}

// Runs is how many times OnChange has completed.
func (fw *FileWatcher) Runs() int {
	fw.mutex.Lock()
	defer fw.mutex.Unlock()
	return fw.runs
}

func (fw *FileWatcher) Close() error {
	fw.mutex.Lock()
	defer fw.mutex.Unlock()

	fw.stopped = true
	if fw.timer != nil {
		fw.timer.Stop()
	}
	if fw.watcher == nil {
		return nil
	}
	return fw.watcher.Close()
}
