package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	apperrors "tradcv/internal/errors"
)

// MatrixWatcher watches the archetype matrix file for changes and reloads the
// active matrix when it is rewritten
type MatrixWatcher struct {
	mu sync.RWMutex

	file        string
	lastModTime time.Time

	fsWatcher     *fsnotify.Watcher
	debounceDelay time.Duration
	debounceTimer *time.Timer

	stopChan   chan struct{}
	reloadChan chan struct{}

	logger *apperrors.Logger

	running bool
}

// NewMatrixWatcher creates a watcher for the given archetype matrix file
func NewMatrixWatcher(file string, debounceDelay time.Duration, logger *apperrors.Logger) (*MatrixWatcher, error) {
	if file == "" {
		return nil, fmt.Errorf("matrix file path is required")
	}
	if debounceDelay == 0 {
		debounceDelay = time.Second
	}

	return &MatrixWatcher{
		file:          file,
		debounceDelay: debounceDelay,
		stopChan:      make(chan struct{}),
		reloadChan:    make(chan struct{}, 1), // Buffered to prevent blocking
		logger:        logger,
	}, nil
}

// Start begins watching the matrix file for changes
func (mw *MatrixWatcher) Start() error {
	mw.mu.Lock()
	defer mw.mu.Unlock()

	if mw.running {
		return fmt.Errorf("matrix watcher is already running")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	mw.fsWatcher = watcher

	if stat, err := os.Stat(mw.file); err == nil {
		mw.lastModTime = stat.ModTime()
	}

	if err := mw.addFileToWatcher(); err != nil {
		if closeErr := mw.fsWatcher.Close(); closeErr != nil && mw.logger != nil {
			mw.logger.LogError(closeErr, "Failed to close file watcher during cleanup")
		}
		return err
	}

	mw.running = true
	go mw.watchLoop()

	if mw.logger != nil {
		mw.logger.Info("Archetype matrix watcher started",
			"file", mw.file,
			"debounce_delay", mw.debounceDelay)
	}
	return nil
}

// Stop stops the matrix file watcher
func (mw *MatrixWatcher) Stop() error {
	mw.mu.Lock()
	defer mw.mu.Unlock()

	if !mw.running {
		return nil
	}

	close(mw.stopChan)

	if mw.debounceTimer != nil {
		mw.debounceTimer.Stop()
	}

	if mw.fsWatcher != nil {
		if err := mw.fsWatcher.Close(); err != nil {
			if mw.logger != nil {
				mw.logger.LogError(err, "Failed to close file system watcher")
			}
			return err
		}
	}

	mw.running = false

	if mw.logger != nil {
		mw.logger.Info("Archetype matrix watcher stopped")
	}
	return nil
}

// addFileToWatcher adds the matrix file and its directory to the watcher
func (mw *MatrixWatcher) addFileToWatcher() error {
	if err := mw.fsWatcher.Add(mw.file); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to watch file %s: %w", mw.file, err)
		}
	}

	// Also watch the directory to catch atomic writes (rename operations)
	dir := filepath.Dir(mw.file)
	if err := mw.fsWatcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch directory %s: %w", dir, err)
	}

	return nil
}

// watchLoop is the main event loop for file watching
func (mw *MatrixWatcher) watchLoop() {
	for {
		select {
		case event, ok := <-mw.fsWatcher.Events:
			if !ok {
				return
			}

			if mw.shouldProcessEvent(event) {
				mw.scheduleReload()
			}

		case err, ok := <-mw.fsWatcher.Errors:
			if !ok {
				return
			}
			if mw.logger != nil {
				mw.logger.LogError(err, "Matrix file watcher error")
			}

		case <-mw.reloadChan:
			// Debounced reload trigger
			if mw.hasFileChanged() {
				mw.reload()
			}

		case <-mw.stopChan:
			return
		}
	}
}

// shouldProcessEvent filters events down to writes affecting the matrix file
func (mw *MatrixWatcher) shouldProcessEvent(event fsnotify.Event) bool {
	if event.Name != mw.file && filepath.Base(event.Name) != filepath.Base(mw.file) {
		return false
	}
	return event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0
}

// hasFileChanged checks if the matrix file has been modified since last check
func (mw *MatrixWatcher) hasFileChanged() bool {
	mw.mu.Lock()
	defer mw.mu.Unlock()

	stat, err := os.Stat(mw.file)
	if err != nil {
		return false
	}
	if stat.ModTime().After(mw.lastModTime) {
		mw.lastModTime = stat.ModTime()
		return true
	}
	return false
}

// reload re-reads the matrix file and swaps the active matrix text
func (mw *MatrixWatcher) reload() {
	text, err := readMatrixFile(mw.file)
	if err != nil {
		if mw.logger != nil {
			mw.logger.LogError(err, "Failed to reload archetype matrix, keeping previous matrix",
				"file", mw.file)
		}
		return
	}

	setArchetypeMatrix(text)
	if mw.logger != nil {
		mw.logger.Info("Archetype matrix reloaded", "file", mw.file, "bytes", len(text))
	}
}

// scheduleReload schedules a debounced reload
func (mw *MatrixWatcher) scheduleReload() {
	mw.mu.Lock()
	defer mw.mu.Unlock()

	if mw.debounceTimer != nil {
		mw.debounceTimer.Stop()
	}

	mw.debounceTimer = time.AfterFunc(mw.debounceDelay, func() {
		select {
		case mw.reloadChan <- struct{}{}:
		default:
			// Reload already scheduled
		}
	})
}

// IsRunning returns whether the watcher is currently running
func (mw *MatrixWatcher) IsRunning() bool {
	mw.mu.RLock()
	defer mw.mu.RUnlock()
	return mw.running
}
