package control

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// DefaultDebounce coalesces the burst of events editors emit on save.
const DefaultDebounce = 100 * time.Millisecond

// FileWatcher forwards the contents of a control file to a Handle each time
// the file is written. The first non-blank line is taken as the end date.
//
// The parent directory is watched rather than the file itself so that
// editors which save via rename-and-replace keep working.
type FileWatcher struct {
	path     string
	handle   *Handle
	watcher  *fsnotify.Watcher
	logger   *zap.Logger
	debounce time.Duration
}

// NewFileWatcher starts watching path's directory. The file itself does not
// need to exist yet.
func NewFileWatcher(path string, handle *Handle, logger *zap.Logger) (*FileWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve control file %s: %w", path, err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create fsnotify watcher: %w", err)
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watch directory %s: %w", filepath.Dir(abs), err)
	}

	return &FileWatcher{
		path:     abs,
		handle:   handle,
		watcher:  fsw,
		logger:   logger,
		debounce: DefaultDebounce,
	}, nil
}

// Path returns the absolute path of the control file.
func (w *FileWatcher) Path() string { return w.path }

// Run processes filesystem events until ctx is cancelled or the watcher is
// closed. Each debounced write results in at most one SetEndDate call.
func (w *FileWatcher) Run(ctx context.Context) {
	// Stopped timer; armed by the first relevant event.
	timer := time.NewTimer(0)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	pending := false
	for {
		select {
		case <-ctx.Done():
			return

		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			pending = true
			timer.Reset(w.debounce)

		case <-timer.C:
			if !pending {
				continue
			}
			pending = false
			w.apply()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("Control file watch error", zap.Error(err))
		}
	}
}

// Close stops watching.
func (w *FileWatcher) Close() error {
	return w.watcher.Close()
}

func (w *FileWatcher) apply() {
	data, err := os.ReadFile(w.path)
	if err != nil {
		w.logger.Warn("Reading control file failed", zap.String("path", w.path), zap.Error(err))
		return
	}
	date := FirstLine(data)
	if date == "" {
		return
	}

	if w.handle.SetEndDate(date) {
		w.logger.Info("End date set from control file", zap.String("end_date", date))
	} else {
		w.logger.Debug("Control file update dropped, no dashboard mounted", zap.String("end_date", date))
	}
}

// FirstLine returns the first non-blank line of data, trimmed.
func FirstLine(data []byte) string {
	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		if line := strings.TrimSpace(sc.Text()); line != "" {
			return line
		}
	}
	return ""
}
