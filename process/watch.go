package process

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// debounce interval after a write event, so editors that write in
// several bursts trigger a single reload.
const watchSettle = 100 * time.Millisecond

// Watcher re-processes SGF files as they change on disk.
type Watcher struct {
	watcher    *fsnotify.Watcher
	logger     *zap.Logger
	watchDirs  []string
	extensions []string
	isWatching atomic.Bool
}

// NewWatcher builds a Watcher over the given directories.
func NewWatcher(logger *zap.Logger, dirs []string, extensions ...string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if len(extensions) == 0 {
		extensions = []string{".sgf"}
	}
	return &Watcher{
		watcher:    fw,
		logger:     logger,
		watchDirs:  dirs,
		extensions: extensions,
	}, nil
}

// Start registers every directory under the watch roots and begins the
// event loop.
func (w *Watcher) Start() error {
	if !w.isWatching.CompareAndSwap(false, true) {
		return fmt.Errorf("already watching")
	}

	for _, dir := range w.watchDirs {
		err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if info.IsDir() {
				return w.watcher.Add(path)
			}
			return nil
		})
		if err != nil {
			w.isWatching.Store(false)
			return fmt.Errorf("error adding directory to watcher: %w", err)
		}
	}

	go w.watchLoop()
	return nil
}

// Stop ends the event loop and releases the underlying watcher.
func (w *Watcher) Stop() error {
	if !w.isWatching.Swap(false) {
		w.logger.Warn("not watching")
	}

	return w.watcher.Close()
}

func (w *Watcher) watchLoop() {
	for w.isWatching.Load() {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleFileEvent(event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("watch error", zap.Error(err))
		}
	}
}

func (w *Watcher) handleFileEvent(event fsnotify.Event) {
	if event.Op&fsnotify.Write != fsnotify.Write {
		return
	}
	if !w.hasWatchedExtension(event.Name) {
		return
	}

	// wait for a while after file change to consider multiple changes as one
	time.Sleep(watchSettle)
	report, err := File(event.Name)
	if err != nil {
		w.logger.Error("error reloading file", zap.String("file", event.Name), zap.Error(err))
		return
	}
	w.logger.Info("reloaded",
		zap.String("file", report.Path),
		zap.Int("nodes", report.Nodes),
		zap.Uint64("tree_size", report.TreeSize),
		zap.Uint64("proof_tree_size", report.ProofTreeSize),
		zap.Bool("solved", report.Solved),
	)
}

func (w *Watcher) hasWatchedExtension(path string) bool {
	for _, ext := range w.extensions {
		if strings.HasSuffix(path, ext) {
			return true
		}
	}
	return false
}
