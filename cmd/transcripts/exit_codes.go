package main

import (
	"errors"
	"os"

	transcripts "github.com/szymon-off/discord-html-transcripts"
	"github.com/szymon-off/discord-html-transcripts/internal/config"
	"github.com/szymon-off/discord-html-transcripts/internal/export"
)

// Exit codes for the transcripts CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Successful render
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, export or template
	ExitIO      = 3 // File not found, permission denied
	ExitBrowser = 4 // Browser/Chrome errors
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Browser errors (exit 4)
	if errors.Is(err, transcripts.ErrBrowserConnect) ||
		errors.Is(err, transcripts.ErrPageCreate) ||
		errors.Is(err, transcripts.ErrPageLoad) ||
		errors.Is(err, transcripts.ErrPDFGeneration) {
		return ExitBrowser
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrNoInput) ||
		errors.Is(err, ErrReadCSS) ||
		errors.Is(err, ErrWriteOutput) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, ErrInvalidFlags) ||
		errors.Is(err, ErrInvalidWorkerCount) ||
		errors.Is(err, ErrInvalidTimeout) ||
		errors.Is(err, ErrNoExports) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, export.ErrInvalidExport) ||
		errors.Is(err, export.ErrInvalidTimestamp) ||
		errors.Is(err, export.ErrUnsupportedType) ||
		errors.Is(err, transcripts.ErrEmptyInput) ||
		errors.Is(err, transcripts.ErrTemplateMissingElement) ||
		errors.Is(err, transcripts.ErrTemplateParse) ||
		errors.Is(err, transcripts.ErrMissingRequiredField) ||
		errors.Is(err, transcripts.ErrInvalidPageSize) ||
		errors.Is(err, transcripts.ErrInvalidOrientation) ||
		errors.Is(err, transcripts.ErrInvalidMargin) ||
		errors.Is(err, transcripts.ErrInvalidWatermarkColor) ||
		errors.Is(err, transcripts.ErrStyleNotFound) ||
		errors.Is(err, transcripts.ErrTemplateNotFound) ||
		errors.Is(err, transcripts.ErrInvalidAssetPath) ||
		errors.Is(err, transcripts.ErrInvalidTimeFormat) ||
		errors.Is(err, transcripts.ErrInvalidTimeZone) {
		return ExitUsage
	}

	return ExitGeneral
}
