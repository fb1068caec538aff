package cli

import (
	"github.com/spf13/cobra"

	"github.com/niloysannyal/form-summary/internal/config"
	"github.com/niloysannyal/form-summary/internal/extract"
	"github.com/niloysannyal/form-summary/internal/form"
	"github.com/niloysannyal/form-summary/internal/server"
	"github.com/niloysannyal/form-summary/internal/summarize"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve single-document processing over HTTP",
		Long: "Starts an HTTP server that accepts one ADT-1 PDF per request, runs both\n" +
			"pipeline stages, and returns the record, summary and prompts as JSON.",
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			logger := newLogger(cfg)

			ex := extract.New(form.DefaultSpecs(), cfg.MaxFileSize, logger)
			sum := summarize.New(logger)
			handler := server.NewHandler(ex, sum, cfg.MaxFileSize, cfg.IncludePrompts, logger)

			return server.New(cfg.Address(), handler, logger).Start()
		},
	}

	config.BindServeFlags(cmd.Flags())

	return cmd
}
