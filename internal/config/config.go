// Package config loads YAML configuration for the transcripts CLI.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/szymon-off/discord-html-transcripts/internal/dateutil"
	"github.com/szymon-off/discord-html-transcripts/internal/fileutil"
	"github.com/szymon-off/discord-html-transcripts/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// appDirName is the directory under the user config dir searched by name.
const appDirName = "transcripts"

// Field length limits for multi-tenant safety.
const (
	MaxPathLength           = 4096 // Directories and asset paths
	MaxURLLength            = 2048 // Browser limit
	MaxNameLength           = 100  // Style, template and highlight names
	MaxTimeZoneLength       = 64   // "America/Argentina/ComodRivadavia"
	MaxPageSizeLength       = 10   // "letter", "a4", "legal"
	MaxOrientationLength    = 10   // "portrait", "landscape"
	MaxWatermarkTextLength  = 50   // "DRAFT", "CONFIDENTIAL"
	MaxWatermarkColorLength = 20   // "#888888"
)

// Field name modes accepted by transcript.fieldNames.
const (
	FieldNamesLegacy = "legacy"
	FieldNamesStrict = "strict"
)

// Config holds all configuration for transcript generation.
type Config struct {
	Input      InputConfig      `yaml:"input"`
	Output     OutputConfig     `yaml:"output"`
	Transcript TranscriptConfig `yaml:"transcript"`
	Assets     AssetsConfig     `yaml:"assets"`
	Page       PageConfig       `yaml:"page"`
	Watermark  WatermarkConfig  `yaml:"watermark"`
}

// InputConfig defines input source options.
type InputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Default export directory (empty = must specify)
}

// OutputConfig defines output destination and formats.
type OutputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Empty = next to the export
	PDF        bool   `yaml:"pdf"`        // Also write a PDF (requires Chrome)
	SkipHTML   bool   `yaml:"skipHTML"`   // Only meaningful with pdf: true
}

// TranscriptConfig defines how messages are rendered.
type TranscriptConfig struct {
	Style          string `yaml:"style"`          // Theme name or CSS path (empty = dark)
	Template       string `yaml:"template"`       // Skeleton name (empty = transcript)
	HighlightStyle string `yaml:"highlightStyle"` // Chroma style for code blocks
	TimeZone       string `yaml:"timezone"`       // IANA name (empty = UTC)
	TimeFormat     string `yaml:"timeFormat"`     // Tokens or preset (empty = HH:mm:ss)
	IncludeBots    bool   `yaml:"includeBots"`    // Render messages from bots
	FieldNames     string `yaml:"fieldNames"`     // "legacy" (default) or "strict"
	GuildIcon      string `yaml:"guildIcon"`      // Header icon when the export has none
	DefaultAvatar  string `yaml:"defaultAvatar"`  // Avatar for authors without one
}

// AssetsConfig defines asset loading options.
type AssetsConfig struct {
	BasePath string `yaml:"basePath"` // Empty = use embedded assets
}

// PageConfig defines PDF page settings.
type PageConfig struct {
	Size        string  `yaml:"size"`        // "letter", "a4", "legal" (default: "letter")
	Orientation string  `yaml:"orientation"` // "portrait", "landscape" (default: "portrait")
	Margin      float64 `yaml:"margin"`      // inches (default: 0.5)
}

// WatermarkConfig defines background watermark options for PDF output.
type WatermarkConfig struct {
	Enabled bool    `yaml:"enabled"`
	Text    string  `yaml:"text"`    // Text to display (e.g., "CONFIDENTIAL")
	Color   string  `yaml:"color"`   // Hex color (default: "#888888")
	Opacity float64 `yaml:"opacity"` // 0.0 to 1.0 (default: 0.1)
	Angle   float64 `yaml:"angle"`   // Rotation in degrees (default: -45)
}

// Validate checks field lengths and enumerated values.
// Called automatically by LoadConfig, but available for consumers
// who construct Config manually.
func (c *Config) Validate() error {
	lengths := []struct {
		field string
		value string
		max   int
	}{
		{"input.defaultDir", c.Input.DefaultDir, MaxPathLength},
		{"output.defaultDir", c.Output.DefaultDir, MaxPathLength},
		{"transcript.style", c.Transcript.Style, MaxPathLength},
		{"transcript.template", c.Transcript.Template, MaxNameLength},
		{"transcript.highlightStyle", c.Transcript.HighlightStyle, MaxNameLength},
		{"transcript.timezone", c.Transcript.TimeZone, MaxTimeZoneLength},
		{"transcript.timeFormat", c.Transcript.TimeFormat, dateutil.MaxTimeFormatLength},
		{"transcript.guildIcon", c.Transcript.GuildIcon, MaxURLLength},
		{"transcript.defaultAvatar", c.Transcript.DefaultAvatar, MaxURLLength},
		{"assets.basePath", c.Assets.BasePath, MaxPathLength},
		{"page.size", c.Page.Size, MaxPageSizeLength},
		{"page.orientation", c.Page.Orientation, MaxOrientationLength},
	}
	for _, l := range lengths {
		if err := validateFieldLength(l.field, l.value, l.max); err != nil {
			return err
		}
	}

	switch strings.ToLower(c.Transcript.FieldNames) {
	case "", FieldNamesLegacy, FieldNamesStrict:
	default:
		return fmt.Errorf("%w: transcript.fieldNames %q (must be legacy or strict)", ErrInvalidValue, c.Transcript.FieldNames)
	}

	if c.Transcript.TimeFormat != "" {
		if _, err := dateutil.ResolveLayout(c.Transcript.TimeFormat); err != nil {
			return fmt.Errorf("transcript.timeFormat: %w", err)
		}
	}

	if c.Output.SkipHTML && !c.Output.PDF {
		return fmt.Errorf("%w: output.skipHTML requires output.pdf", ErrInvalidValue)
	}

	if c.Watermark.Enabled {
		if c.Watermark.Text == "" {
			return fmt.Errorf("%w: watermark.text is required when watermark is enabled", ErrInvalidValue)
		}
		if err := validateFieldLength("watermark.text", c.Watermark.Text, MaxWatermarkTextLength); err != nil {
			return err
		}
		if err := validateFieldLength("watermark.color", c.Watermark.Color, MaxWatermarkColorLength); err != nil {
			return err
		}
		if c.Watermark.Opacity < 0 || c.Watermark.Opacity > 1 {
			return fmt.Errorf("%w: watermark.opacity must be between 0 and 1, got %.2f", ErrInvalidValue, c.Watermark.Opacity)
		}
		if c.Watermark.Angle < -90 || c.Watermark.Angle > 90 {
			return fmt.Errorf("%w: watermark.angle must be between -90 and 90, got %.2f", ErrInvalidValue, c.Watermark.Angle)
		}
	}

	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// DefaultWatermarkAngle is preset so an explicit 0 (horizontal) survives loading.
const DefaultWatermarkAngle = -45.0

// DefaultConfig returns a configuration that renders HTML with the embedded
// dark theme and skips bot messages.
func DefaultConfig() *Config {
	return &Config{
		Transcript: TranscriptConfig{FieldNames: FieldNamesLegacy},
		Watermark:  WatermarkConfig{Angle: DefaultWatermarkAngle},
	}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !fileutil.IsFilePath(nameOrPath) {
		var err error
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// resolveConfigPath searches for a config file by name in standard locations.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, <user config dir>/transcripts/
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	triedPaths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		localPath := name + ext
		if fileutil.FileExists(localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	userConfigDir, err := os.UserConfigDir()
	if err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(userConfigDir, appDirName, name+ext)
			if fileutil.FileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}
