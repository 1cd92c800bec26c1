// Package watcher turns file system notifications under the host project into batched incremental sync requests.
package watcher

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/jcaballol94/com.jcaballol94.ide.sublime/logging"
	"github.com/jcaballol94/com.jcaballol94.ide.sublime/logging/colors"
	"github.com/jcaballol94/com.jcaballol94.ide.sublime/utils"
	"github.com/pkg/errors"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// DefaultDebounce is the quiet period used when a Watcher is created with a non-positive debounce.
const DefaultDebounce = 500 * time.Millisecond

// minTickInterval is the shortest interval at which pending changes are checked for a quiet period.
const minTickInterval = time.Millisecond

// SyncFunc receives one debounced batch. affected holds created, removed and renamed paths, reimported holds paths
// whose content changed. Both are relative to the project root, use forward slashes, and are sorted.
type SyncFunc func(affected []string, reimported []string) error

// ChangeKind describes how a single file system event is reported in a batch.
type ChangeKind int

const (
	// ChangeIgnored marks events that never reach a batch, such as permission changes.
	ChangeIgnored ChangeKind = iota
	// ChangeAffected marks a path that was created, removed or renamed.
	ChangeAffected
	// ChangeReimported marks a path whose content was written.
	ChangeReimported
)

// String returns a human-readable representation of the change kind.
func (k ChangeKind) String() string {
	switch k {
	case ChangeIgnored:
		return "ignored"
	case ChangeAffected:
		return "affected"
	case ChangeReimported:
		return "reimported"
	default:
		return "unknown"
	}
}

// ClassifyOp maps an fsnotify operation to the way it is reported. Structural operations win over writes so a
// file created and written within one event is reported as affected.
func ClassifyOp(op fsnotify.Op) ChangeKind {
	switch {
	case op.Has(fsnotify.Create), op.Has(fsnotify.Remove), op.Has(fsnotify.Rename):
		return ChangeAffected
	case op.Has(fsnotify.Write):
		return ChangeReimported
	default:
		return ChangeIgnored
	}
}

// Watcher recursively watches directories under a project root and delivers debounced batches to a SyncFunc.
type Watcher struct {
	// root is the absolute project root every reported path is relative to.
	root string

	// directories are the absolute directories watched recursively.
	directories []string

	// debounce is the quiet period after the last event before a batch is delivered.
	debounce time.Duration

	// onBatch receives every non-empty batch.
	onBatch SyncFunc

	fsWatcher *fsnotify.Watcher

	// pendingLock guards the pending sets and lastEvent.
	pendingLock sync.Mutex
	affected    map[string]struct{}
	reimported  map[string]struct{}
	lastEvent   time.Time

	// lock guards running.
	lock    sync.Mutex
	running bool
	done    chan struct{}
	wg      sync.WaitGroup

	// stopped is closed once the last Stop has delivered the final batch.
	stopped chan struct{}

	logger *logging.Logger
}

// NewWatcher creates a Watcher for the given directories, which are resolved against root when relative. The
// watcher does not observe anything until Start is called.
func NewWatcher(root string, directories []string, debounce time.Duration, onBatch SyncFunc) (*Watcher, error) {
	if onBatch == nil {
		return nil, errors.New("a batch callback is required")
	}
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	absDirectories := make([]string, 0, len(directories))
	for _, directory := range directories {
		if !filepath.IsAbs(directory) {
			directory = filepath.Join(absRoot, directory)
		}
		absDirectories = append(absDirectories, filepath.Clean(directory))
	}

	return &Watcher{
		root:        absRoot,
		directories: utils.SliceDistinct(absDirectories),
		debounce:    debounce,
		onBatch:     onBatch,
		affected:    make(map[string]struct{}),
		reimported:  make(map[string]struct{}),
		logger:      logging.GlobalLogger.NewSubLogger("module", logging.WATCHER_SERVICE),
	}, nil
}

// Start registers the watched directory trees and begins delivering batches until ctx is done or Stop is called.
// Configured directories that do not exist are skipped with a warning.
func (w *Watcher) Start(ctx context.Context) error {
	w.lock.Lock()
	defer w.lock.Unlock()

	if w.running {
		return errors.New("watcher already running")
	}

	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "failed to create file system watcher")
	}
	w.fsWatcher = fsWatcher

	watched := 0
	for _, directory := range w.directories {
		info, err := os.Stat(directory)
		if err != nil || !info.IsDir() {
			w.logger.Warn("Skipping watch directory ", colors.Bold, directory, colors.Reset, ", it does not exist")
			continue
		}
		if err := w.addTree(directory, false); err != nil {
			_ = fsWatcher.Close()
			return err
		}
		watched++
	}
	if watched == 0 {
		_ = fsWatcher.Close()
		return errors.New("none of the configured watch directories exist")
	}

	w.done = make(chan struct{})
	w.stopped = make(chan struct{})
	w.running = true
	w.wg.Add(2)
	go w.processEvents()
	go w.processBatches(ctx)

	w.logger.Info("Watching ", colors.Bold, watched, colors.Reset, " directories under ", colors.Bold, w.root)
	return nil
}

// Stop stops watching, delivers any pending batch and blocks until the background goroutines have exited. Calling
// Stop while another Stop is in progress waits for it to finish. Calling Stop on a watcher that never started is a
// no-op.
func (w *Watcher) Stop() error {
	w.lock.Lock()
	if !w.running {
		stopped := w.stopped
		w.lock.Unlock()
		if stopped != nil {
			<-stopped
		}
		return nil
	}
	w.running = false
	close(w.done)
	stopped := w.stopped
	w.lock.Unlock()

	defer close(stopped)
	err := w.fsWatcher.Close()
	w.wg.Wait()
	w.flush()

	if err != nil {
		return errors.Wrap(err, "failed to close file system watcher")
	}
	return nil
}

// IsRunning returns true if the watcher is currently running.
func (w *Watcher) IsRunning() bool {
	w.lock.Lock()
	defer w.lock.Unlock()
	return w.running
}

// addTree adds a watch for directory and every directory below it. When reportFiles is set, files found in the
// tree are queued as affected, since they may have been created before the watch was registered.
func (w *Watcher) addTree(directory string, reportFiles bool) error {
	return filepath.WalkDir(directory, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			// The tree may change underneath us
			if os.IsNotExist(err) {
				return nil
			}
			return errors.WithStack(err)
		}
		if entry.IsDir() {
			if err := w.fsWatcher.Add(path); err != nil {
				return errors.Wrapf(err, "failed to watch directory %s", path)
			}
			return nil
		}
		if reportFiles {
			w.queue(path, ChangeAffected)
		}
		return nil
	})
}

// processEvents converts fsnotify events into pending changes.
func (w *Watcher) processEvents() {
	defer w.wg.Done()

	for {
		select {
		case <-w.done:
			return

		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("File system watcher error", err)
		}
	}
}

// handleEvent queues a single event and extends the watch to newly created directories.
func (w *Watcher) handleEvent(event fsnotify.Event) {
	kind := ClassifyOp(event.Op)
	if kind == ChangeIgnored {
		return
	}

	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := w.addTree(event.Name, true); err != nil {
				w.logger.Warn("Failed to watch new directory ", colors.Bold, event.Name, colors.Reset, err)
			}
		}
	}

	w.queue(event.Name, kind)
}

// queue records a change for the next batch. Paths outside the project root are dropped.
func (w *Watcher) queue(path string, kind ChangeKind) {
	relative, ok := w.relativePath(path)
	if !ok {
		return
	}

	w.pendingLock.Lock()
	defer w.pendingLock.Unlock()

	if kind == ChangeAffected {
		w.affected[relative] = struct{}{}
	} else {
		w.reimported[relative] = struct{}{}
	}
	w.lastEvent = time.Now()
	w.logger.Trace("Queued ", kind.String(), " path ", relative)
}

// relativePath converts an absolute event path into a forward-slash path relative to the project root.
func (w *Watcher) relativePath(path string) (string, bool) {
	relative, err := filepath.Rel(w.root, path)
	if err != nil {
		return "", false
	}
	relative = filepath.ToSlash(relative)
	if relative == "." || relative == ".." || strings.HasPrefix(relative, "../") {
		return "", false
	}
	return relative, true
}

// processBatches delivers the pending changes once no event arrived for a full debounce period.
func (w *Watcher) processBatches(ctx context.Context) {
	defer w.wg.Done()

	ticker := time.NewTicker(tickInterval(w.debounce))
	defer ticker.Stop()

	for {
		select {
		case <-w.done:
			return

		case <-ctx.Done():
			// Stop waits for this goroutine, so it must run elsewhere
			go func() {
				if err := w.Stop(); err != nil {
					w.logger.Error("Failed to stop watcher", err)
				}
			}()
			return

		case <-ticker.C:
			w.pendingLock.Lock()
			quiet := !w.lastEvent.IsZero() && time.Since(w.lastEvent) >= w.debounce
			w.pendingLock.Unlock()
			if quiet {
				w.flush()
			}
		}
	}
}

// tickInterval returns how often a watcher with the given debounce checks for a quiet period: half the debounce,
// but never below minTickInterval.
func tickInterval(debounce time.Duration) time.Duration {
	return max(debounce/2, minTickInterval)
}

// takeBatch empties the pending sets and returns their sorted contents.
func (w *Watcher) takeBatch() ([]string, []string) {
	w.pendingLock.Lock()
	defer w.pendingLock.Unlock()

	affected := sortedKeys(w.affected)
	reimported := sortedKeys(w.reimported)
	w.affected = make(map[string]struct{})
	w.reimported = make(map[string]struct{})
	w.lastEvent = time.Time{}
	return affected, reimported
}

// flush delivers the pending batch, if any. Callback errors are logged and the watcher keeps running.
func (w *Watcher) flush() {
	affected, reimported := w.takeBatch()
	if len(affected) == 0 && len(reimported) == 0 {
		return
	}

	w.logger.Debug("Delivering batch with ", len(affected), " affected and ", len(reimported), " reimported paths")
	if err := w.onBatch(affected, reimported); err != nil {
		w.logger.Error("Incremental sync failed", err)
	}
}

func sortedKeys(set map[string]struct{}) []string {
	keys := maps.Keys(set)
	slices.Sort(keys)
	return keys
}
