package theme

import (
	"context"
	"log/slog"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// Watcher reloads a Store when its storage file is changed by another
// process, the way a browser tab hears about storage writes from other tabs.
type Watcher struct {
	mu     sync.Mutex
	logger *slog.Logger

	store    *Store
	filePath string

	watcher *fsnotify.Watcher
	stopCh  chan struct{}
	doneCh  chan struct{}

	running bool
}

// NewWatcher creates a watcher for the storage file at filePath.
func NewWatcher(store *Store, filePath string, logger *slog.Logger) *Watcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Watcher{
		logger:   logger,
		store:    store,
		filePath: filePath,
	}
}

// Start begins watching. Calling Start on a running watcher does nothing.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.running {
		return nil
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}

	// Watch the directory: the file is replaced by rename on every write.
	if err := fw.Add(filepath.Dir(w.filePath)); err != nil {
		_ = fw.Close()
		return err
	}

	w.watcher = fw
	w.stopCh = make(chan struct{})
	w.doneCh = make(chan struct{})
	w.running = true

	go w.watchLoop(ctx, fw, w.stopCh, w.doneCh)

	w.logger.Debug("storage watcher started", "path", w.filePath)
	return nil
}

// Stop stops watching and waits for the loop to exit.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	w.running = false
	close(w.stopCh)
	doneCh := w.doneCh
	fw := w.watcher
	w.mu.Unlock()

	<-doneCh
	_ = fw.Close()
	w.logger.Debug("storage watcher stopped")
}

// IsRunning returns whether the watcher is currently running.
func (w *Watcher) IsRunning() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.running
}

func (w *Watcher) watchLoop(ctx context.Context, fw *fsnotify.Watcher, stopCh <-chan struct{}, doneCh chan<- struct{}) {
	defer close(doneCh)

	filename := filepath.Base(w.filePath)

	for {
		select {
		case <-ctx.Done():
			return
		case <-stopCh:
			return

		case event, ok := <-fw.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != filename {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				if w.store.Reload() {
					w.logger.Info("theme changed in storage", "theme", w.store.Get())
				}
			}

		case err, ok := <-fw.Errors:
			if !ok {
				return
			}
			w.logger.Warn("storage watcher error", "error", err)
		}
	}
}
