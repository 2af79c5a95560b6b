package locales

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/covidstats/internal/core/ports/driven"
	"github.com/custodia-labs/covidstats/internal/logger"
)

// Ensure DirSource implements the interface.
var _ driven.TranslationSource = (*DirSource)(nil)

// DefaultDebounce coalesces bursts of file events into one reload.
const DefaultDebounce = 200 * time.Millisecond

// DirSource overlays <lng>.json files from a directory on the embedded
// resources. A file replaces the whole document of its language.
type DirSource struct {
	dir      string
	debounce time.Duration
}

// NewDirSource creates a source reading from dir.
func NewDirSource(dir string) *DirSource {
	return &DirSource{dir: dir, debounce: DefaultDebounce}
}

// Dir returns the watched directory.
func (s *DirSource) Dir() string {
	return s.dir
}

// Load returns the embedded resources with the directory's files applied.
func (s *DirSource) Load() (driven.Resources, error) {
	res, err := EmbeddedSource{}.Load()
	if err != nil {
		return nil, err
	}

	overlay, err := loadFS(os.DirFS(s.dir))
	if err != nil {
		return nil, fmt.Errorf("load locales from %s: %w", s.dir, err)
	}
	for lng, doc := range overlay {
		res[lng] = doc
	}
	logger.Debug("locales: %d languages from %s overlaid", len(overlay), s.dir)
	return res, nil
}

// Watch reloads the resources after every change to a resource file and
// sends the result on the returned channel. Reload failures are logged and
// skipped. The channel is closed when ctx is done.
func (s *DirSource) Watch(ctx context.Context) (<-chan driven.Resources, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := watcher.Add(s.dir); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("watch %s: %w", s.dir, err)
	}

	out := make(chan driven.Resources, 1)
	go func() {
		defer close(out)
		defer watcher.Close()

		var timer *time.Timer
		var fire <-chan time.Time
		for {
			select {
			case <-ctx.Done():
				if timer != nil {
					timer.Stop()
				}
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if !handleFsEvent(event) {
					continue
				}
				logger.Debug("locales: %s %s", event.Op, filepath.Base(event.Name))
				if timer == nil {
					timer = time.NewTimer(s.debounce)
				} else {
					timer.Reset(s.debounce)
				}
				fire = timer.C
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Warn("locales: watcher error: %v", err)
			case <-fire:
				fire = nil
				res, err := s.Load()
				if err != nil {
					logger.Error("locales: reload failed: %v", err)
					continue
				}
				select {
				case out <- res:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out, nil
}

// handleFsEvent reports whether event should trigger a reload.
func handleFsEvent(event fsnotify.Event) bool {
	if _, ok := languageOf(filepath.Base(event.Name)); !ok {
		return false
	}
	return event.Has(fsnotify.Create) ||
		event.Has(fsnotify.Write) ||
		event.Has(fsnotify.Remove) ||
		event.Has(fsnotify.Rename)
}
