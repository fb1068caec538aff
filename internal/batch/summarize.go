package batch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/niloysannyal/form-summary/internal/config"
	"github.com/niloysannyal/form-summary/internal/summarize"
)

// RunSummarize renders every record JSON in cfg.RecordDir into a narrative
// summary file (<key>.txt) and, when enabled, a prompts file
// (<key>.prompts.txt) in cfg.SummaryDir. A record missing the fixed key set
// is skipped and logged; it never aborts the batch.
func RunSummarize(ctx context.Context, cfg *config.Config, sum *summarize.Summarizer, logger zerolog.Logger) (*Result, error) {
	if err := config.EnsureDir(cfg.SummaryDir); err != nil {
		return nil, err
	}

	records, err := listFiles(cfg.RecordDir, ".json")
	if err != nil {
		return nil, fmt.Errorf("cannot read record directory %s: %w", cfg.RecordDir, err)
	}
	if len(records) == 0 {
		logger.Warn().Str("dir", cfg.RecordDir).Msg("no record files found, run extraction first")
		return &Result{}, nil
	}

	var (
		mu     sync.Mutex
		result Result
	)

	eg, gctx := errgroup.WithContext(ctx)
	eg.SetLimit(cfg.Concurrency)

	for _, path := range records {
		path := path
		eg.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			err := summarizeOne(cfg, sum, path)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				var tie *summarize.TemplateInputError
				if !errors.As(err, &tie) {
					return err
				}
				logger.Error().Err(err).Str("file", path).Msg("skipping record")
				result.Skipped = append(result.Skipped, Skip{File: filepath.Base(path), Reason: err.Error()})
				return nil
			}
			logger.Info().Str("record", filepath.Base(path)).Msg("summary written")
			result.Processed = append(result.Processed, filepath.Base(path))
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}

	logResult(logger, "summarize", &result)
	return result.sorted(), nil
}

func summarizeOne(cfg *config.Config, sum *summarize.Summarizer, path string) error {
	key := Key(path)

	data, err := os.ReadFile(path)
	if err != nil {
		return &summarize.TemplateInputError{Key: key, Err: err}
	}

	rendered, err := sum.RenderBytes(key, data)
	if err != nil {
		return err
	}

	summaryPath := filepath.Join(cfg.SummaryDir, key+".txt")
	if err := os.WriteFile(summaryPath, []byte(rendered.Summary), 0o644); err != nil {
		return fmt.Errorf("cannot write summary %s: %w", summaryPath, err)
	}

	if cfg.IncludePrompts {
		promptsPath := filepath.Join(cfg.SummaryDir, key+".prompts.txt")
		if err := os.WriteFile(promptsPath, []byte(rendered.Prompts), 0o644); err != nil {
			return fmt.Errorf("cannot write prompts %s: %w", promptsPath, err)
		}
	}

	return nil
}
