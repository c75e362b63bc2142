package resources

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

const _debounceTimeout = 200 * time.Millisecond

type changeHandler interface {
	FileChanged(ctx context.Context, path string, created bool) error
}

// watcher forwards filesystem events under the workspace folders to a changeHandler.
// Bursts of events for the same path are collapsed into one notification.
type watcher struct {
	handler   changeHandler
	dirExists func(path string) (bool, error)
	logger    *zap.SugaredLogger

	fsw    *fsnotify.Watcher
	closer chan struct{}
	done   chan struct{}

	debounceMu     sync.Mutex
	debounceTimers map[string]*time.Timer
	pendingCreate  map[string]bool
}

func newWatcher(handler changeHandler, dirExists func(string) (bool, error), logger *zap.SugaredLogger) *watcher {
	return &watcher{
		handler:        handler,
		dirExists:      dirExists,
		logger:         logger,
		debounceTimers: make(map[string]*time.Timer),
		pendingCreate:  make(map[string]bool),
	}
}

func (w *watcher) start(dirs []string) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create fs watcher for resources: %w", err)
	}
	for _, dir := range dirs {
		if err := fsw.Add(dir); err != nil {
			w.logger.Warnf("Unable to watch %q: %v", dir, err)
		}
	}

	w.fsw = fsw
	w.closer = make(chan struct{})
	w.done = make(chan struct{})
	go w.handleChanges()
	return nil
}

func (w *watcher) stop() error {
	if w.fsw == nil {
		return nil
	}
	close(w.closer)
	<-w.done

	w.debounceMu.Lock()
	for _, timer := range w.debounceTimers {
		timer.Stop()
	}
	w.debounceTimers = make(map[string]*time.Timer)
	w.debounceMu.Unlock()

	return w.fsw.Close()
}

func (w *watcher) handleChanges() {
	defer close(w.done)
	for {
		select {
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			w.handleEvent(event)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.logger.Warnf("Failure in resource change watcher: %v", err)
		case <-w.closer:
			return
		}
	}
}

func (w *watcher) handleEvent(event fsnotify.Event) {
	created := event.Has(fsnotify.Create) || event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename)
	if !created && !event.Has(fsnotify.Write) {
		return
	}

	if event.Has(fsnotify.Create) {
		// New directories are not covered by the existing watches.
		if isDir, _ := w.dirExists(event.Name); isDir {
			if err := w.fsw.Add(event.Name); err != nil {
				w.logger.Warnf("Unable to watch %q: %v", event.Name, err)
			}
		}
	}

	w.debounce(event.Name, created)
}

func (w *watcher) debounce(path string, created bool) {
	w.debounceMu.Lock()
	defer w.debounceMu.Unlock()

	if timer, exists := w.debounceTimers[path]; exists {
		timer.Stop()
	}
	w.pendingCreate[path] = w.pendingCreate[path] || created

	w.debounceTimers[path] = time.AfterFunc(_debounceTimeout, func() {
		w.debounceMu.Lock()
		delete(w.debounceTimers, path)
		created := w.pendingCreate[path]
		delete(w.pendingCreate, path)
		w.debounceMu.Unlock()

		if err := w.handler.FileChanged(context.Background(), path, created); err != nil {
			w.logger.Warnf("Failed to publish change of %q: %v", path, err)
		}
	})
}
