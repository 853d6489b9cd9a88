package workspace

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"javaxify/internal/logging"

	"github.com/fsnotify/fsnotify"
	"github.com/google/uuid"
)

// Watcher regenerates classes when scripts under a directory tree change.
type Watcher struct {
	mu          sync.RWMutex
	watcher     *fsnotify.Watcher
	ws          *Workspace
	dir         string
	dirs        []string
	debounceMap map[string]time.Time
	debounceDur time.Duration
	onResult    func(Result)
	sessionID   string
	audit       *logging.AuditLogger
	stopCh      chan struct{}
	doneCh      chan struct{}
	running     bool
	closeOnce   sync.Once

	stats WatcherStats
}

// WatcherStats tracks watcher activity.
type WatcherStats struct {
	FilesCreated  int
	FilesModified int
	FilesDeleted  int
	Conversions   int
	Errors        int
	LastEventTime time.Time
	LastEventPath string
	LastEventType string
}

// NewWatcher returns a Watcher over dir. onResult, if non-nil, receives every
// conversion result from the watcher goroutine.
func NewWatcher(ws *Workspace, dir string, onResult func(Result)) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	sessionID := uuid.New().String()
	return &Watcher{
		sessionID:   sessionID,
		audit:       logging.AuditWithRun(sessionID),
		watcher:     fw,
		ws:          ws,
		dir:         dir,
		debounceMap: make(map[string]time.Time),
		debounceDur: ws.cfg.GetWatchDebounce(),
		onResult:    onResult,
		stopCh:      make(chan struct{}),
		doneCh:      make(chan struct{}),
	}, nil
}

// Start registers dir and its subdirectories and begins watching.
// It is non-blocking.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = true
	w.mu.Unlock()

	if err := w.addTree(w.dir, false); err != nil {
		w.mu.Lock()
		w.running = false
		w.mu.Unlock()
		return err
	}
	logging.Watch("Watcher %s: watching %s (debounce %v)", w.sessionID, w.dir, w.debounceDur)
	w.audit.Log(logging.AuditEvent{EventType: logging.AuditWatchStart, Target: w.dir, Success: true})

	go w.run(ctx)
	return nil
}

// Stop stops the watcher and waits for the event loop to exit.
func (w *Watcher) Stop() {
	w.mu.Lock()
	wasRunning := w.running
	w.running = false
	w.mu.Unlock()

	if wasRunning {
		close(w.stopCh)
		<-w.doneCh
	}

	w.closeOnce.Do(func() {
		if err := w.watcher.Close(); err != nil {
			logging.Get(logging.CategoryWatch).Error("Watcher: error closing watcher: %v", err)
		}
	})
	stats := w.GetStats()
	w.audit.Log(logging.AuditEvent{
		EventType: logging.AuditWatchStop,
		Target:    w.dir,
		Success:   true,
		Fields:    map[string]interface{}{"conversions": stats.Conversions, "errors": stats.Errors},
	})
	logging.Watch("Watcher %s: stopped", w.sessionID)
}

// addTree registers root and its subdirectories. With queue set, scripts
// already inside the tree are scheduled for conversion; a directory moved or
// copied in produces no per-file events.
func (w *Watcher) addTree(root string, queue bool) error {
	return filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !entry.IsDir() {
			if queue && filepath.Ext(path) == w.ws.cfg.ScriptExt {
				logging.WatchDebug("Watcher: queueing %s from new directory", path)
				w.mu.Lock()
				w.stats.FilesCreated++
				w.debounceMap[path] = time.Now()
				w.mu.Unlock()
			}
			return nil
		}
		if path != root && strings.HasPrefix(entry.Name(), ".") {
			return filepath.SkipDir
		}
		if err := w.watcher.Add(path); err != nil {
			return err
		}
		w.mu.Lock()
		w.dirs = append(w.dirs, path)
		w.mu.Unlock()
		return nil
	})
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.doneCh)

	debounceTicker := time.NewTicker(50 * time.Millisecond)
	defer debounceTicker.Stop()

	for {
		select {
		case <-ctx.Done():
			logging.WatchDebug("Watcher: context cancelled")
			return

		case <-w.stopCh:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			logging.Get(logging.CategoryWatch).Error("Watcher error: %v", err)
			w.mu.Lock()
			w.stats.Errors++
			w.mu.Unlock()

		case <-debounceTicker.C:
			w.processDebouncedEvents()
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if event.Op&fsnotify.Create != 0 {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := w.addTree(event.Name, true); err != nil {
				logging.Get(logging.CategoryWatch).Warn("Watcher: failed to watch %s: %v", event.Name, err)
			}
			return
		}
	}

	if filepath.Ext(event.Name) != w.ws.cfg.ScriptExt {
		return
	}

	var eventType string
	switch {
	case event.Op&fsnotify.Create != 0:
		eventType = "create"
	case event.Op&fsnotify.Write != 0:
		eventType = "modify"
	case event.Op&fsnotify.Remove != 0:
		eventType = "delete"
	case event.Op&fsnotify.Rename != 0:
		eventType = "rename"
	default:
		return
	}

	logging.WatchDebug("Watcher: %s event for %s", eventType, event.Name)

	w.mu.Lock()
	defer w.mu.Unlock()
	w.stats.LastEventTime = time.Now()
	w.stats.LastEventPath = event.Name
	w.stats.LastEventType = eventType

	switch eventType {
	case "create":
		w.stats.FilesCreated++
	case "modify":
		w.stats.FilesModified++
	case "delete", "rename":
		w.stats.FilesDeleted++
		delete(w.debounceMap, event.Name)
		return
	}
	w.debounceMap[event.Name] = time.Now()
}

// processDebouncedEvents converts scripts whose last event is older than the
// debounce window.
func (w *Watcher) processDebouncedEvents() {
	w.mu.Lock()
	now := time.Now()
	var settled []string
	for path, at := range w.debounceMap {
		if now.Sub(at) >= w.debounceDur {
			settled = append(settled, path)
			delete(w.debounceMap, path)
		}
	}
	w.mu.Unlock()

	for _, path := range settled {
		w.convert(path)
	}
}

func (w *Watcher) convert(path string) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		logging.WatchDebug("Watcher: %s vanished before conversion", path)
		return
	}

	res := w.ws.writeClass(path, w.audit)

	w.mu.Lock()
	w.stats.Conversions++
	if res.Err != nil {
		w.stats.Errors++
	}
	w.mu.Unlock()

	if res.Err != nil {
		logging.Get(logging.CategoryWatch).Warn("Watcher: %s failed: %v", path, res.Err)
	} else {
		logging.Watch("Watcher: regenerated %s", res.Output)
	}
	if w.onResult != nil {
		w.onResult(res)
	}
}

// GetStats returns the current watcher statistics.
func (w *Watcher) GetStats() WatcherStats {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.stats
}

// IsWatching reports whether the event loop is running.
func (w *Watcher) IsWatching() bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.running
}

// WatchedDirs returns the directories registered with the watcher.
func (w *Watcher) WatchedDirs() []string {
	w.mu.RLock()
	defer w.mu.RUnlock()
	out := make([]string, len(w.dirs))
	copy(out, w.dirs)
	return out
}
