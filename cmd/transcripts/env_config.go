package main

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/szymon-off/discord-html-transcripts/internal/config"
)

// envPrefix namespaces the CLI's environment variables.
const envPrefix = "TRANSCRIPTS_"

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath    string        // TRANSCRIPTS_CONFIG: config file path
	Style         string        // TRANSCRIPTS_STYLE: theme name or CSS path
	Timeout       time.Duration // TRANSCRIPTS_TIMEOUT: PDF generation timeout
	InputDir      string        // TRANSCRIPTS_INPUT_DIR: default export directory
	OutputDir     string        // TRANSCRIPTS_OUTPUT_DIR: default output directory
	TimeZone      string        // TRANSCRIPTS_TIMEZONE: IANA zone for timestamps
	PageSize      string        // TRANSCRIPTS_PAGE_SIZE: a4, letter, legal
	WatermarkText string        // TRANSCRIPTS_WATERMARK_TEXT: watermark text
	Workers       int           // TRANSCRIPTS_WORKERS: parallel workers
}

// knownEnvVars lists valid TRANSCRIPTS_* environment variables.
var knownEnvVars = map[string]bool{
	"TRANSCRIPTS_CONFIG":         true,
	"TRANSCRIPTS_STYLE":          true,
	"TRANSCRIPTS_TIMEOUT":        true,
	"TRANSCRIPTS_INPUT_DIR":      true,
	"TRANSCRIPTS_OUTPUT_DIR":     true,
	"TRANSCRIPTS_TIMEZONE":       true,
	"TRANSCRIPTS_PAGE_SIZE":      true,
	"TRANSCRIPTS_WATERMARK_TEXT": true,
	"TRANSCRIPTS_WORKERS":        true,
	"TRANSCRIPTS_CONTAINER":      true,
}

// loadEnvConfig reads configuration from environment variables.
// Unparseable or non-positive timeout and worker values are ignored.
func loadEnvConfig() *envConfig {
	cfg := &envConfig{
		ConfigPath:    os.Getenv("TRANSCRIPTS_CONFIG"),
		Style:         os.Getenv("TRANSCRIPTS_STYLE"),
		InputDir:      os.Getenv("TRANSCRIPTS_INPUT_DIR"),
		OutputDir:     os.Getenv("TRANSCRIPTS_OUTPUT_DIR"),
		TimeZone:      os.Getenv("TRANSCRIPTS_TIMEZONE"),
		PageSize:      os.Getenv("TRANSCRIPTS_PAGE_SIZE"),
		WatermarkText: os.Getenv("TRANSCRIPTS_WATERMARK_TEXT"),
	}

	if timeout := os.Getenv("TRANSCRIPTS_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}

	if workers := os.Getenv("TRANSCRIPTS_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		}
	}

	return cfg
}

// warnUnknownEnvVars logs a warning for each unrecognized TRANSCRIPTS_* variable.
func warnUnknownEnvVars(logger *slog.Logger) {
	for _, env := range os.Environ() {
		if !strings.HasPrefix(env, envPrefix) {
			continue
		}
		name, _, _ := strings.Cut(env, "=")
		if !knownEnvVars[name] {
			logger.Warn("unknown environment variable (typo?)", "name", name)
		}
	}
}

// applyEnvConfig fills config fields that are still empty from the environment.
// Precedence: CLI flags > env vars > config file > defaults
// (CLI flags are applied later via mergeFlags).
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.Style != "" && cfg.Transcript.Style == "" {
		cfg.Transcript.Style = env.Style
	}
	if env.TimeZone != "" && cfg.Transcript.TimeZone == "" {
		cfg.Transcript.TimeZone = env.TimeZone
	}
	if env.InputDir != "" && cfg.Input.DefaultDir == "" {
		cfg.Input.DefaultDir = env.InputDir
	}
	if env.OutputDir != "" && cfg.Output.DefaultDir == "" {
		cfg.Output.DefaultDir = env.OutputDir
	}
	if env.PageSize != "" && cfg.Page.Size == "" {
		cfg.Page.Size = env.PageSize
	}

	// Watermark text auto-enables the watermark.
	if env.WatermarkText != "" && cfg.Watermark.Text == "" {
		cfg.Watermark.Text = env.WatermarkText
		cfg.Watermark.Enabled = true
	}
}
