package cli

import (
	"github.com/spf13/cobra"

	"github.com/niloysannyal/form-summary/internal/batch"
	"github.com/niloysannyal/form-summary/internal/config"
	"github.com/niloysannyal/form-summary/internal/summarize"
)

func newSummarizeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "summarize",
		Short: "Render summaries from extracted records",
		Long: "Reads every record JSON in the records directory and writes a narrative\n" +
			"summary plus LLM prompt renderings per record. Records missing the fixed\n" +
			"key set are skipped and reported.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			logger := newLogger(cfg)
			sum := summarize.New(logger)

			_, err = batch.RunSummarize(cmd.Context(), cfg, sum, logger)
			return err
		},
	}
}
