package main

// Notes:
// - Tests use t.Setenv(), which prevents t.Parallel().

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/szymon-off/discord-html-transcripts/internal/config"
)

func TestLoadEnvConfig(t *testing.T) {
	t.Setenv("TRANSCRIPTS_CONFIG", "/etc/transcripts/team.yaml")
	t.Setenv("TRANSCRIPTS_STYLE", "light")
	t.Setenv("TRANSCRIPTS_TIMEOUT", "2m")
	t.Setenv("TRANSCRIPTS_INPUT_DIR", "/exports")
	t.Setenv("TRANSCRIPTS_OUTPUT_DIR", "/out")
	t.Setenv("TRANSCRIPTS_TIMEZONE", "Europe/Paris")
	t.Setenv("TRANSCRIPTS_PAGE_SIZE", "a4")
	t.Setenv("TRANSCRIPTS_WATERMARK_TEXT", "ARCHIVE")
	t.Setenv("TRANSCRIPTS_WORKERS", "3")

	cfg := loadEnvConfig()

	checks := []struct {
		name string
		got  any
		want any
	}{
		{"ConfigPath", cfg.ConfigPath, "/etc/transcripts/team.yaml"},
		{"Style", cfg.Style, "light"},
		{"Timeout", cfg.Timeout, 2 * time.Minute},
		{"InputDir", cfg.InputDir, "/exports"},
		{"OutputDir", cfg.OutputDir, "/out"},
		{"TimeZone", cfg.TimeZone, "Europe/Paris"},
		{"PageSize", cfg.PageSize, "a4"},
		{"WatermarkText", cfg.WatermarkText, "ARCHIVE"},
		{"Workers", cfg.Workers, 3},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s = %v, want %v", c.name, c.got, c.want)
		}
	}
}

func TestLoadEnvConfig_InvalidNumbersIgnored(t *testing.T) {
	tests := []struct {
		name    string
		timeout string
		workers string
	}{
		{"unparseable", "soon", "many"},
		{"negative", "-5s", "-2"},
		{"zero", "0s", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TRANSCRIPTS_TIMEOUT", tt.timeout)
			t.Setenv("TRANSCRIPTS_WORKERS", tt.workers)

			cfg := loadEnvConfig()
			if cfg.Timeout != 0 {
				t.Errorf("Timeout = %v, want 0", cfg.Timeout)
			}
			if cfg.Workers != 0 {
				t.Errorf("Workers = %d, want 0", cfg.Workers)
			}
		})
	}
}

func TestWarnUnknownEnvVars(t *testing.T) {
	t.Setenv("TRANSCRIPTS_STYLE", "dark")
	t.Setenv("TRANSCRIPTS_STYEL", "dark")

	var buf bytes.Buffer
	warnUnknownEnvVars(slog.New(slog.NewTextHandler(&buf, nil)))

	out := buf.String()
	if !strings.Contains(out, "name=TRANSCRIPTS_STYEL") {
		t.Errorf("output should warn about TRANSCRIPTS_STYEL, got %q", out)
	}
	if strings.Contains(out, "name=TRANSCRIPTS_STYLE ") || strings.Count(out, "level=WARN") != 1 {
		t.Errorf("known variables should not warn, got %q", out)
	}
}

func TestApplyEnvConfig(t *testing.T) {
	t.Parallel()

	env := &envConfig{
		Style:         "light",
		TimeZone:      "Asia/Tokyo",
		InputDir:      "/exports",
		OutputDir:     "/out",
		PageSize:      "a4",
		WatermarkText: "ARCHIVE",
	}

	t.Run("fills empty fields", func(t *testing.T) {
		t.Parallel()

		cfg := config.DefaultConfig()
		applyEnvConfig(env, cfg)

		if cfg.Transcript.Style != "light" || cfg.Transcript.TimeZone != "Asia/Tokyo" {
			t.Errorf("transcript = %+v, want style light and zone Asia/Tokyo", cfg.Transcript)
		}
		if cfg.Input.DefaultDir != "/exports" || cfg.Output.DefaultDir != "/out" {
			t.Errorf("dirs = %q, %q", cfg.Input.DefaultDir, cfg.Output.DefaultDir)
		}
		if cfg.Page.Size != "a4" {
			t.Errorf("Page.Size = %q, want a4", cfg.Page.Size)
		}
		if !cfg.Watermark.Enabled || cfg.Watermark.Text != "ARCHIVE" {
			t.Errorf("watermark = %+v, want enabled ARCHIVE", cfg.Watermark)
		}
	})

	t.Run("config file wins over env", func(t *testing.T) {
		t.Parallel()

		cfg := config.DefaultConfig()
		cfg.Transcript.Style = "dark"
		cfg.Output.DefaultDir = "/configured"
		applyEnvConfig(env, cfg)

		if cfg.Transcript.Style != "dark" {
			t.Errorf("Style = %q, want dark", cfg.Transcript.Style)
		}
		if cfg.Output.DefaultDir != "/configured" {
			t.Errorf("Output.DefaultDir = %q, want /configured", cfg.Output.DefaultDir)
		}
	})
}
