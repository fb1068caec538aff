package batch

import (
	"context"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
	"golang.org/x/sync/semaphore"

	"github.com/niloysannyal/form-summary/internal/config"
	"github.com/niloysannyal/form-summary/internal/extract"
)

// settleDelay is how long a file must stay quiet before it is processed.
// PDFs dropped into the input directory arrive as a burst of write events.
const settleDelay = 500 * time.Millisecond

// WatchExtract processes PDFs as they appear in cfg.InputDir, writing a
// record per document exactly like RunExtract. It blocks until ctx is
// cancelled. Per-document failures are logged and do not stop the watch.
func WatchExtract(ctx context.Context, cfg *config.Config, ex *extract.Extractor, logger zerolog.Logger) error {
	if err := config.EnsureDir(cfg.RecordDir); err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.Add(cfg.InputDir); err != nil {
		return err
	}
	logger.Info().Str("dir", cfg.InputDir).Msg("watching for PDF files")

	var (
		mu     sync.Mutex
		timers = make(map[string]*time.Timer)
	)

	// Settled files each fire in their own timer goroutine; the semaphore
	// keeps a burst of drops within the configured concurrency.
	sem := semaphore.NewWeighted(int64(cfg.Concurrency))

	process := func(path string) {
		mu.Lock()
		delete(timers, path)
		mu.Unlock()

		if err := sem.Acquire(ctx, 1); err != nil {
			return
		}
		defer sem.Release(1)

		outPath, err := ExtractOne(cfg, ex, path)
		if err != nil {
			logger.Error().Err(err).Str("file", path).Msg("skipping document")
			return
		}
		logger.Info().Str("file", filepath.Base(path)).Str("record", outPath).Msg("record written")
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Write) {
				continue
			}
			if !strings.EqualFold(filepath.Ext(event.Name), ".pdf") {
				continue
			}
			path := event.Name
			mu.Lock()
			if timer, ok := timers[path]; ok {
				timer.Reset(settleDelay)
			} else {
				timers[path] = time.AfterFunc(settleDelay, func() { process(path) })
			}
			mu.Unlock()
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Error().Err(err).Msg("watch error")
		}
	}
}
