package main

import (
	"io"

	flag "github.com/spf13/pflag"
)

// watermarkAngleSentinel detects if --wm-angle was explicitly set.
// Since 0 is a valid angle (horizontal), we use an out-of-range sentinel.
const watermarkAngleSentinel = -999.0

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// transcriptFlags holds message rendering flags.
type transcriptFlags struct {
	timeZone         string
	timeFormat       string
	includeBots      bool
	strictFieldNames bool
	guildIcon        string
	defaultAvatar    string
	highlightStyle   string
}

// assetFlags holds theme and skeleton flags.
type assetFlags struct {
	style     string // theme name or CSS file path
	template  string // skeleton name
	assetPath string // override asset directory
	css       string // extra CSS file appended after the theme
}

// pageFlags holds PDF page layout flags.
type pageFlags struct {
	size        string
	orientation string
	margin      float64
}

// watermarkFlags holds PDF watermark flags.
type watermarkFlags struct {
	text     string
	color    string
	opacity  float64
	angle    float64
	disabled bool
}

// outputFlags selects which documents are written.
type outputFlags struct {
	pdf    bool // also write a PDF
	noHTML bool // skip the HTML file (requires --pdf)
}

// renderFlags holds all flags for the render command.
type renderFlags struct {
	common     commonFlags
	output     string
	workers    int
	timeout    string
	transcript transcriptFlags
	assets     assetFlags
	page       pageFlags
	watermark  watermarkFlags
	outputMode outputFlags
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show detailed timing")
}

// addTranscriptFlags adds message rendering flags to a FlagSet.
func addTranscriptFlags(fs *flag.FlagSet, f *transcriptFlags) {
	fs.StringVar(&f.timeZone, "timezone", "", "IANA time zone for timestamps (default UTC)")
	fs.StringVar(&f.timeFormat, "time-format", "", "timestamp format: tokens (HH:mm:ss) or preset")
	fs.BoolVar(&f.includeBots, "include-bots", false, "render messages sent by bots")
	fs.BoolVar(&f.strictFieldNames, "strict-field-names", false, "format embed field names like values")
	fs.StringVar(&f.guildIcon, "guild-icon", "", "header icon URL when the export has none")
	fs.StringVar(&f.defaultAvatar, "default-avatar", "", "avatar URL for authors without one")
	fs.StringVar(&f.highlightStyle, "highlight-style", "", "code block highlighting style")
}

// addAssetFlags adds asset-related flags to a FlagSet.
func addAssetFlags(fs *flag.FlagSet, f *assetFlags) {
	fs.StringVar(&f.style, "style", "", "theme name or CSS file path")
	fs.StringVar(&f.template, "template", "", "skeleton name")
	fs.StringVar(&f.assetPath, "asset-path", "", "custom asset directory")
	fs.StringVar(&f.css, "css", "", "extra CSS file appended after the theme")
}

// addPageFlags adds page layout flags to a FlagSet.
func addPageFlags(fs *flag.FlagSet, f *pageFlags) {
	fs.StringVarP(&f.size, "page-size", "p", "", "page size: letter, a4, legal")
	fs.StringVar(&f.orientation, "orientation", "", "page orientation: portrait, landscape")
	fs.Float64Var(&f.margin, "margin", 0, "page margin in inches (0.25-3.0)")
}

// addWatermarkFlags adds watermark flags to a FlagSet.
func addWatermarkFlags(fs *flag.FlagSet, f *watermarkFlags) {
	fs.StringVar(&f.text, "wm-text", "", "watermark text")
	fs.StringVar(&f.color, "wm-color", "", "watermark color (hex)")
	fs.Float64Var(&f.opacity, "wm-opacity", 0, "watermark opacity (0.0-1.0)")
	fs.Float64Var(&f.angle, "wm-angle", watermarkAngleSentinel, "watermark angle in degrees")
	fs.BoolVar(&f.disabled, "no-watermark", false, "disable watermark")
}

// addOutputFlags adds output mode flags to a FlagSet.
func addOutputFlags(fs *flag.FlagSet, f *outputFlags) {
	fs.BoolVar(&f.pdf, "pdf", false, "also write a PDF (requires Chrome)")
	fs.BoolVar(&f.noHTML, "no-html", false, "skip the HTML file (with --pdf)")
}

// parseRenderFlags parses render command flags and returns positional args.
// Usage errors are printed to usageOut; nil discards them.
func parseRenderFlags(args []string, usageOut io.Writer) (*renderFlags, []string, error) {
	if usageOut == nil {
		usageOut = io.Discard
	}
	fs := flag.NewFlagSet("render", flag.ContinueOnError)
	fs.SetOutput(usageOut)
	f := &renderFlags{}

	// I/O flags
	fs.StringVarP(&f.output, "output", "o", "", "output file or directory")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "PDF generation timeout (e.g., 30s, 2m)")

	addCommonFlags(fs, &f.common)
	addTranscriptFlags(fs, &f.transcript)
	addAssetFlags(fs, &f.assets)
	addPageFlags(fs, &f.page)
	addWatermarkFlags(fs, &f.watermark)
	addOutputFlags(fs, &f.outputMode)

	fs.Usage = func() { printRenderUsage(usageOut) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	return f, fs.Args(), nil
}
