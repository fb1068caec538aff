package cli

import (
	"github.com/spf13/cobra"

	"github.com/niloysannyal/form-summary/internal/batch"
	"github.com/niloysannyal/form-summary/internal/config"
	"github.com/niloysannyal/form-summary/internal/extract"
	"github.com/niloysannyal/form-summary/internal/form"
)

func newExtractCmd() *cobra.Command {
	var watch bool

	cmd := &cobra.Command{
		Use:   "extract",
		Short: "Extract structured records from ADT-1 PDFs",
		Long: "Reads every PDF in the input directory, extracts the ADT-1 field set from\n" +
			"its form fields and page text, and writes one JSON record per document.\n" +
			"Documents that fail to decode are skipped and reported; they do not abort\n" +
			"the batch.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			logger := newLogger(cfg)
			ex := extract.New(form.DefaultSpecs(), cfg.MaxFileSize, logger)

			if watch {
				return batch.WatchExtract(cmd.Context(), cfg, ex, logger)
			}
			_, err = batch.RunExtract(cmd.Context(), cfg, ex, logger)
			return err
		},
	}

	cmd.Flags().BoolVar(&watch, "watch", false, "Keep running and process PDFs as they appear in the input directory")

	return cmd
}
