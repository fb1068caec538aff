package batch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/niloysannyal/form-summary/internal/config"
	"github.com/niloysannyal/form-summary/internal/extract"
)

// RunExtract extracts a Record from every PDF in cfg.InputDir and writes one
// JSON file per document into cfg.RecordDir, keyed by the document's base
// name. Pre-existing records with the same key are overwritten, so re-runs
// are idempotent.
func RunExtract(ctx context.Context, cfg *config.Config, ex *extract.Extractor, logger zerolog.Logger) (*Result, error) {
	if err := config.EnsureDir(cfg.RecordDir); err != nil {
		return nil, err
	}

	pdfs, err := listFiles(cfg.InputDir, ".pdf")
	if err != nil {
		return nil, fmt.Errorf("cannot read input directory %s: %w", cfg.InputDir, err)
	}
	if len(pdfs) == 0 {
		logger.Warn().Str("dir", cfg.InputDir).Msg("no PDF files found")
		return &Result{}, nil
	}

	var (
		mu     sync.Mutex
		result Result
	)

	eg, gctx := errgroup.WithContext(ctx)
	eg.SetLimit(cfg.Concurrency)

	for _, path := range pdfs {
		path := path
		eg.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			outPath, err := ExtractOne(cfg, ex, path)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				// Unwritable output is fatal to the run; anything
				// else only skips this one document.
				if !extract.IsDecodeError(err) {
					return err
				}
				logger.Error().Err(err).Str("file", path).Msg("skipping document")
				result.Skipped = append(result.Skipped, Skip{File: filepath.Base(path), Reason: err.Error()})
				return nil
			}
			logger.Info().Str("file", filepath.Base(path)).Str("record", outPath).Msg("record written")
			result.Processed = append(result.Processed, filepath.Base(path))
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}

	logResult(logger, "extract", &result)
	return result.sorted(), nil
}

// ExtractOne extracts a single document and writes its record, returning
// the record path.
func ExtractOne(cfg *config.Config, ex *extract.Extractor, path string) (string, error) {
	rec, err := ex.ExtractFile(path)
	if err != nil {
		return "", err
	}

	data, err := rec.Marshal()
	if err != nil {
		return "", fmt.Errorf("failed to serialize record for %s: %w", path, err)
	}

	outPath := filepath.Join(cfg.RecordDir, Key(path)+".json")
	if err := os.WriteFile(outPath, data, 0o644); err != nil {
		return "", fmt.Errorf("cannot write record %s: %w", outPath, err)
	}
	return outPath, nil
}

// Key derives the output key for a document: its base name with the
// extension dropped.
func Key(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// listFiles returns the sorted paths of regular files in dir with the given
// extension (case-insensitive).
func listFiles(dir, ext string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(entry.Name()), ext) {
			paths = append(paths, filepath.Join(dir, entry.Name()))
		}
	}
	return paths, nil
}

func logResult(logger zerolog.Logger, stage string, result *Result) {
	logger.Info().
		Str("stage", stage).
		Int("processed", len(result.Processed)).
		Int("skipped", len(result.Skipped)).
		Msg("batch complete")
}
