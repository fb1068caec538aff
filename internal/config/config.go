// Package config carries runtime configuration for the ADT-1 pipeline.
// Values resolve flag > environment (ADT1_ prefix) > default via viper.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	// Default directory layout, relative to the working directory.
	DefaultInputDir   = "pdf"
	DefaultRecordDir  = "structured_data"
	DefaultSummaryDir = "summary"

	DefaultHost        = "127.0.0.1"
	DefaultPort        = 8080
	DefaultLogLevel    = "info"
	DefaultMaxFileSize = 100 * 1024 * 1024 // 100MB
	DefaultConcurrency = 4

	// Directory permissions
	DefaultDirPerm = 0o750
)

// Config holds all configuration for the extraction and summarization runs.
type Config struct {
	// Pipeline directories
	InputDir   string
	RecordDir  string
	SummaryDir string

	// Extraction configuration
	MaxFileSize int64
	Concurrency int

	// Summarization configuration
	IncludePrompts bool

	// Server configuration (serve mode only)
	Host string
	Port int

	// Application configuration
	LogLevel string
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		InputDir:       DefaultInputDir,
		RecordDir:      DefaultRecordDir,
		SummaryDir:     DefaultSummaryDir,
		MaxFileSize:    DefaultMaxFileSize,
		Concurrency:    DefaultConcurrency,
		IncludePrompts: true,
		Host:           DefaultHost,
		Port:           DefaultPort,
		LogLevel:       DefaultLogLevel,
	}
}

// BindFlags registers the shared flag set on fs and wires it, together with
// ADT1_* environment variables, into viper.
func BindFlags(fs *pflag.FlagSet) {
	cfg := DefaultConfig()

	viper.SetEnvPrefix("ADT1")
	viper.AutomaticEnv()

	fs.String("input", cfg.InputDir, "Directory containing ADT-1 PDF files")
	fs.String("records", cfg.RecordDir, "Directory for extracted record JSON files")
	fs.String("summaries", cfg.SummaryDir, "Directory for rendered summary files")
	fs.Int64("maxfilesize", cfg.MaxFileSize, "Maximum PDF file size in bytes")
	fs.Int("concurrency", cfg.Concurrency, "Number of documents processed in parallel")
	fs.Bool("prompts", cfg.IncludePrompts, "Also write LLM prompt renderings per record")
	fs.String("loglevel", cfg.LogLevel, "Log level (debug, info, warn, error)")

	for _, name := range []string{"input", "records", "summaries", "maxfilesize", "concurrency", "prompts", "loglevel"} {
		_ = viper.BindPFlag(name, fs.Lookup(name))
	}

	viper.SetDefault("host", cfg.Host)
	viper.SetDefault("port", cfg.Port)
}

// BindServeFlags registers the server flags on fs and wires them into viper.
func BindServeFlags(fs *pflag.FlagSet) {
	cfg := DefaultConfig()

	fs.String("host", cfg.Host, "Server host address")
	fs.Int("port", cfg.Port, "Server port")

	_ = viper.BindPFlag("host", fs.Lookup("host"))
	_ = viper.BindPFlag("port", fs.Lookup("port"))
}

// Load populates a Config from viper and validates it.
func Load() (*Config, error) {
	cfg := DefaultConfig()
	cfg.InputDir = viper.GetString("input")
	cfg.RecordDir = viper.GetString("records")
	cfg.SummaryDir = viper.GetString("summaries")
	cfg.MaxFileSize = viper.GetInt64("maxfilesize")
	cfg.Concurrency = viper.GetInt("concurrency")
	cfg.IncludePrompts = viper.GetBool("prompts")
	cfg.Host = viper.GetString("host")
	cfg.Port = viper.GetInt("port")
	cfg.LogLevel = viper.GetString("loglevel")

	for _, dir := range []*string{&cfg.InputDir, &cfg.RecordDir, &cfg.SummaryDir} {
		if *dir == "" {
			continue
		}
		if expanded, err := filepath.Abs(*dir); err == nil {
			*dir = expanded
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.InputDir == "" {
		return errors.New("input directory cannot be empty")
	}
	if c.RecordDir == "" {
		return errors.New("record directory cannot be empty")
	}
	if c.SummaryDir == "" {
		return errors.New("summary directory cannot be empty")
	}
	if c.MaxFileSize <= 0 {
		return errors.New("maximum file size must be positive")
	}
	if c.Concurrency < 1 {
		return errors.New("concurrency must be at least 1")
	}
	if c.Port < 1 || c.Port > 65535 {
		return errors.New("port must be between 1 and 65535")
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log level: %s (must be one of: debug, info, warn, error)", c.LogLevel)
	}

	return nil
}

// EnsureDir creates dir when missing and verifies it is accessible.
// An inaccessible directory is the one error class that is fatal to a run.
func EnsureDir(dir string) error {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		if err := os.MkdirAll(dir, DefaultDirPerm); err != nil {
			return fmt.Errorf("cannot create directory %s: %w", dir, err)
		}
	} else if err != nil {
		return fmt.Errorf("cannot access directory %s: %w", dir, err)
	}
	return nil
}

// Address returns the server address as host:port.
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// IsDebug returns true if debug logging is enabled.
func (c *Config) IsDebug() bool {
	return c.LogLevel == "debug"
}
