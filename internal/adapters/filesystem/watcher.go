// Package filesystem provides file system implementations of the core ports.
package filesystem

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/madstone-tech/appstream-go/internal/core/ports"
)

// shortDebounce is used after a Write event: a content flush is very
// rarely followed by more structural events for the same path, so a short
// wait is enough to let the writer finish. longDebounce is used after
// Create/Rename/Remove events, which may be the first half of a
// multi-event sequence (atomic save, rename pair) still in flight.
const (
	shortDebounce = 50 * time.Millisecond
	longDebounce  = 800 * time.Millisecond
)

// FileMonitor implements ports.FileWatcher over fsnotify: recursive
// directory registration, hidden/swap-file filtering, and two-tier
// debounced event coalescing.
type FileMonitor struct {
	watcher *fsnotify.Watcher
	events  chan ports.FileChangeEvent
	done    chan struct{}
	wg      sync.WaitGroup
	mu      sync.Mutex
	stopped bool
}

// NewFileMonitor creates a new file system monitor.
func NewFileMonitor() (*FileMonitor, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	return &FileMonitor{
		watcher: w,
		events:  make(chan ports.FileChangeEvent, 16),
		done:    make(chan struct{}),
	}, nil
}

// Watch starts monitoring rootPath and all subdirectories for changes.
// The returned channel is closed when Stop is called; cancelling ctx ends
// event delivery for this root but does not close the channel.
func (fm *FileMonitor) Watch(ctx context.Context, rootPath string) (<-chan ports.FileChangeEvent, error) {
	fm.mu.Lock()
	if fm.stopped {
		fm.mu.Unlock()
		return nil, fmt.Errorf("monitor already stopped")
	}
	fm.mu.Unlock()

	info, err := os.Stat(rootPath)
	if err != nil {
		return nil, fmt.Errorf("invalid root path: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("root path is not a directory")
	}

	known, err := fm.addRecursive(rootPath)
	if err != nil {
		return nil, fmt.Errorf("failed to add watch paths: %w", err)
	}

	fm.wg.Add(1)
	go func() {
		defer fm.wg.Done()
		fm.processEvents(ctx, rootPath, known)
	}()

	return fm.events, nil
}

// Stop halts monitoring and closes the event channel.
func (fm *FileMonitor) Stop() error {
	fm.mu.Lock()
	if fm.stopped {
		fm.mu.Unlock()
		return nil
	}
	fm.stopped = true
	fm.mu.Unlock()

	close(fm.done)
	err := fm.watcher.Close()
	fm.wg.Wait()
	close(fm.events)

	if err != nil {
		return fmt.Errorf("failed to close monitor: %w", err)
	}
	return nil
}

// addRecursive adds rootPath and every non-ignored subdirectory to the
// watcher, and returns the set of plain files already present (the
// known-files set atomic-replacement/suppressed-delete decisions are
// made against).
func (fm *FileMonitor) addRecursive(rootPath string) (map[string]bool, error) {
	known := make(map[string]bool)
	err := filepath.Walk(rootPath, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if info.IsDir() {
			if fm.shouldIgnoreDir(path, rootPath) {
				return filepath.SkipDir
			}
			_ = fm.watcher.Add(path)
			return nil
		}
		if !isHiddenOrSwap(filepath.Base(path)) {
			known[path] = true
		}
		return nil
	})
	return known, err
}

var ignoredDirs = map[string]bool{
	"dist":          true,
	".git":          true,
	"node_modules":  true,
	".venv":         true,
	"venv":          true,
	"__pycache__":   true,
	".pytest_cache": true,
	"build":         true,
	"target":        true,
}

func (fm *FileMonitor) shouldIgnoreDir(path, rootPath string) bool {
	rel, err := filepath.Rel(rootPath, path)
	if err != nil {
		return true
	}
	rel = filepath.ToSlash(rel)
	for _, part := range strings.Split(rel, "/") {
		if ignoredDirs[part] {
			return true
		}
	}
	return false
}

// isHiddenOrSwap filters dot-prefixed basenames and editor swap files.
func isHiddenOrSwap(name string) bool {
	if strings.HasPrefix(name, ".") && name != "." && name != ".." {
		return true
	}
	return strings.HasSuffix(name, ".swp") || strings.HasSuffix(name, ".swx")
}

// processEvents coalesces raw fsnotify events into added/changed/removed
// signals, using three pending queues (add, change, temp-rename) and a
// debounce timer whose duration depends on which kind of event last fired.
func (fm *FileMonitor) processEvents(ctx context.Context, rootPath string, known map[string]bool) {
	timer := time.NewTimer(longDebounce)
	if !timer.Stop() {
		<-timer.C
	}
	timerRunning := false

	pendingAdd := map[string]bool{}
	pendingChange := map[string]bool{}
	pendingRemove := map[string]bool{}
	pendingTemp := map[string]bool{} // paths created-then-renamed-away this window, awaiting a pairing create

	reset := func(d time.Duration) {
		if timerRunning && !timer.Stop() {
			<-timer.C
		}
		timer.Reset(d)
		timerRunning = true
	}

	flush := func() {
		for p := range pendingAdd {
			known[p] = true
			fm.emit(ctx, ports.FileChangeEvent{Path: p, Op: ports.FileAdded})
		}
		for p := range pendingChange {
			known[p] = true
			fm.emit(ctx, ports.FileChangeEvent{Path: p, Op: ports.FileChanged})
		}
		for p := range pendingRemove {
			delete(known, p)
			fm.emit(ctx, ports.FileChangeEvent{Path: p, Op: ports.FileRemoved})
		}
		// Anything still in pendingTemp was renamed away and never
		// claimed by a later create: the file genuinely left the tree.
		for p := range pendingTemp {
			if known[p] {
				delete(known, p)
				fm.emit(ctx, ports.FileChangeEvent{Path: p, Op: ports.FileRemoved})
			}
		}
		pendingAdd = map[string]bool{}
		pendingChange = map[string]bool{}
		pendingRemove = map[string]bool{}
		pendingTemp = map[string]bool{}
	}

	claimTempSlot := func() bool {
		for p := range pendingTemp {
			delete(pendingTemp, p)
			return true
		}
		return false
	}

	handleCreate := func(path string) {
		if fm.shouldIgnoreEntry(path, rootPath) {
			return
		}
		if fi, err := os.Stat(path); err == nil && fi.IsDir() {
			if !fm.shouldIgnoreDir(path, rootPath) {
				_ = fm.watcher.Add(path)
			}
			return
		}
		switch {
		case known[path]:
			// Atomic replacement: a create for a path already tracked.
			delete(pendingRemove, path)
			pendingChange[path] = true
		case claimTempSlot():
			// Atomic save: this create is the final name of an earlier
			// create-then-rename-away; the temp name itself never
			// surfaces as an event.
			pendingAdd[path] = true
		default:
			pendingAdd[path] = true
		}
	}

	handleWrite := func(path string) {
		if fm.shouldIgnoreEntry(path, rootPath) {
			return
		}
		if !pendingAdd[path] {
			pendingChange[path] = true
		}
	}

	handleRemove := func(path string) {
		if fm.shouldIgnoreEntry(path, rootPath) {
			return
		}
		delete(pendingAdd, path)
		delete(pendingChange, path)
		if known[path] {
			pendingRemove[path] = true
		}
		// A delete for a path not in the known-files set is suppressed.
	}

	handleRename := func(path string) {
		if fm.shouldIgnoreEntry(path, rootPath) {
			return
		}
		if pendingAdd[path] {
			// This path was created earlier in the same window and is
			// now being renamed away: park it as a pending temp file
			// awaiting the create of its final name.
			delete(pendingAdd, path)
			pendingTemp[path] = true
			return
		}
		// Rename with no preceding create this window: queue removed(old)
		// for the next flush; a paired added(new) follows from the create event
		// fsnotify reports for the destination path.
		if known[path] {
			pendingRemove[path] = true
		}
	}

	for {
		select {
		case <-fm.done:
			return
		case <-ctx.Done():
			return

		case event, ok := <-fm.watcher.Events:
			if !ok {
				return
			}
			switch {
			case event.Op&fsnotify.Create == fsnotify.Create:
				handleCreate(event.Name)
				reset(longDebounce)
			case event.Op&fsnotify.Rename == fsnotify.Rename:
				handleRename(event.Name)
				reset(longDebounce)
			case event.Op&fsnotify.Remove == fsnotify.Remove:
				handleRemove(event.Name)
				reset(longDebounce)
			case event.Op&fsnotify.Write == fsnotify.Write:
				handleWrite(event.Name)
				reset(shortDebounce)
			default:
				// Chmod and anything else carries no content change.
			}

		case <-timer.C:
			timerRunning = false
			flush()

		case _, ok := <-fm.watcher.Errors:
			if !ok {
				return
			}
		}
	}
}

func (fm *FileMonitor) shouldIgnoreEntry(path, rootPath string) bool {
	if isHiddenOrSwap(filepath.Base(path)) {
		return true
	}
	dir := filepath.Dir(path)
	return fm.shouldIgnoreDir(dir, rootPath)
}

func (fm *FileMonitor) emit(ctx context.Context, evt ports.FileChangeEvent) {
	select {
	case fm.events <- evt:
	case <-fm.done:
	case <-ctx.Done():
	}
}
