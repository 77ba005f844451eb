package transcripts

import (
	"errors"

	"github.com/szymon-off/discord-html-transcripts/internal/assets"
	"github.com/szymon-off/discord-html-transcripts/internal/dateutil"
)

// Sentinel errors for library operations.
var (
	// ErrEmptyInput indicates there are no messages to render.
	ErrEmptyInput = errors.New("no messages to render")

	// ErrTemplateMissingElement indicates the skeleton lacks a required anchor.
	// The wrapping message names the first missing selector.
	ErrTemplateMissingElement = errors.New("template missing required element")

	// ErrMissingRequiredField indicates a present author without id or username.
	ErrMissingRequiredField = errors.New("message missing required field")

	// ErrTemplateParse indicates the skeleton could not be parsed as HTML.
	ErrTemplateParse = errors.New("template parse failed")

	// PDF export errors.
	ErrPDFGeneration  = errors.New("PDF generation failed")
	ErrBrowserConnect = errors.New("failed to connect to browser")
	ErrPageCreate     = errors.New("failed to create browser page")
	ErrPageLoad       = errors.New("failed to load page")

	// Page settings validation errors.
	ErrInvalidPageSize    = errors.New("invalid page size")
	ErrInvalidOrientation = errors.New("invalid orientation")
	ErrInvalidMargin      = errors.New("invalid margin")

	// Watermark validation errors.
	ErrInvalidWatermarkColor = errors.New("invalid watermark color")

	// ErrInvalidAssetPath indicates the custom asset directory is unusable.
	ErrInvalidAssetPath = errors.New("invalid asset path")
)

// Errors shared with internal packages, re-exported so callers can match
// them with errors.Is without importing internal paths.
var (
	ErrStyleNotFound     = assets.ErrStyleNotFound
	ErrTemplateNotFound  = assets.ErrTemplateNotFound
	ErrInvalidTimeFormat = dateutil.ErrInvalidTimeFormat
	ErrInvalidTimeZone   = dateutil.ErrInvalidTimeZone
)
