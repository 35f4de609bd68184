// Package watch reruns a build when documentation folders change.
package watch

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is the quiet period after the last change before rebuilding.
const DefaultDebounce = 500 * time.Millisecond

// Watcher watches directory trees and calls Rebuild after changes settle.
type Watcher struct {
	Rebuild  func() error
	Debounce time.Duration
	Logger   *slog.Logger
	// Ignore lists directories whose changes never trigger a rebuild,
	// typically the output directory.
	Ignore []string
	// Files are single files watched on their own. Only their parent
	// directory is watched, without descending, and sibling changes are
	// dropped.
	Files []string
}

// scope is the set of paths whose changes count.
type scope struct {
	roots []string
	files []string
}

func (s *scope) contains(path string) bool {
	abs, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	for _, f := range s.files {
		if abs == f {
			return true
		}
	}
	return s.underRoot(abs)
}

func (s *scope) underRoot(path string) bool {
	abs, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	for _, root := range s.roots {
		if abs == root || strings.HasPrefix(abs, root+string(filepath.Separator)) {
			return true
		}
	}
	return false
}

func newScope(roots, files []string) *scope {
	s := &scope{}
	for _, root := range roots {
		if abs, err := filepath.Abs(root); err == nil {
			s.roots = append(s.roots, abs)
		}
	}
	for _, file := range files {
		if abs, err := filepath.Abs(file); err == nil {
			s.files = append(s.files, abs)
		}
	}
	return s
}

// Run watches roots and their subdirectories, plus Files, until ctx is
// cancelled. Missing roots are skipped with a log line.
func (w *Watcher) Run(ctx context.Context, roots ...string) error {
	logger := w.Logger
	if logger == nil {
		logger = slog.Default()
	}
	debounce := w.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer watcher.Close()

	for _, root := range roots {
		if _, statErr := os.Stat(root); os.IsNotExist(statErr) {
			logger.Warn("directory not found, not watching", "dir", root)
			continue
		}
		w.addTree(watcher, logger, root)
	}
	for _, file := range w.Files {
		dir := filepath.Dir(file)
		if err := watcher.Add(dir); err != nil {
			logger.Warn("failed to watch file", "path", file, "err", err)
		}
	}
	inScope := newScope(roots, w.Files)

	rebuilds := make(chan struct{}, 1)
	var buildTimer *time.Timer
	defer func() {
		if buildTimer != nil {
			buildTimer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if w.ignored(event.Name) || !inScope.contains(event.Name) {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
				continue
			}
			logger.Debug("change detected", "path", event.Name, "op", event.Op.String())

			// New subdirectories are not watched automatically.
			if event.Has(fsnotify.Create) && isDir(event.Name) && inScope.underRoot(event.Name) {
				w.addTree(watcher, logger, event.Name)
			}

			if buildTimer != nil {
				buildTimer.Stop()
			}
			buildTimer = time.AfterFunc(debounce, func() {
				select {
				case rebuilds <- struct{}{}:
				default:
				}
			})
		case <-rebuilds:
			logger.Info("rebuilding due to changes")
			if err := w.Rebuild(); err != nil {
				logger.Error("rebuild failed", "err", err)
			} else {
				logger.Info("rebuild complete")
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Error("watcher error", "err", err)
		}
	}
}

func (w *Watcher) ignored(path string) bool {
	abs, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	for _, dir := range w.Ignore {
		ignoreAbs, err := filepath.Abs(dir)
		if err != nil {
			continue
		}
		if abs == ignoreAbs || strings.HasPrefix(abs, ignoreAbs+string(filepath.Separator)) {
			return true
		}
	}
	return false
}

func (w *Watcher) addTree(watcher *fsnotify.Watcher, logger *slog.Logger, root string) {
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			logger.Warn("error walking directory", "path", path, "err", err)
			return nil
		}
		if d.IsDir() && w.ignored(path) {
			return filepath.SkipDir
		}
		if d.IsDir() {
			if watchErr := watcher.Add(path); watchErr != nil {
				logger.Warn("failed to watch directory", "path", path, "err", watchErr)
			}
		}
		return nil
	})
	if err != nil {
		logger.Warn("error during directory walk for watching", "root", root, "err", err)
	}
}

func isDir(path string) bool {
	fileInfo, err := os.Stat(path)
	if err != nil {
		return false
	}
	return fileInfo.IsDir()
}
