// Package cli wires the adt1 command tree: independent batch commands for
// extraction and summarization, plus the optional upload server.
package cli

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/niloysannyal/form-summary/internal/config"
)

var rootCmd = &cobra.Command{
	Use:           "adt1",
	Short:         "Extract and summarize ADT-1 auditor appointment filings",
	Long:          "adt1 extracts structured records from ADT-1 PDF forms and renders them into\nnarrative summaries and LLM-ready prompts.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	config.BindFlags(rootCmd.PersistentFlags())

	rootCmd.AddCommand(
		newExtractCmd(),
		newSummarizeCmd(),
		newServeCmd(),
		newVersionCmd(),
	)
}

// Execute runs the command tree.
func Execute() error {
	return rootCmd.Execute()
}

// newLogger builds the process logger at the configured level.
func newLogger(cfg *config.Config) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	return zerolog.New(os.Stdout).Level(level).With().Timestamp().Logger()
}
