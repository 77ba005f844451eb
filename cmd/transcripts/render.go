package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"strings"
	"time"

	flag "github.com/spf13/pflag"

	transcripts "github.com/szymon-off/discord-html-transcripts"
	"github.com/szymon-off/discord-html-transcripts/internal/config"
	"github.com/szymon-off/discord-html-transcripts/internal/dateutil"
	"github.com/szymon-off/discord-html-transcripts/internal/export"
)

// Sentinel errors for the render command.
var (
	ErrInvalidFlags   = errors.New("invalid flags")
	ErrInvalidTimeout = errors.New("invalid timeout")
)

// runRender orchestrates a render run: configuration, discovery, batch.
func runRender(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseRenderFlags(args, env.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return fmt.Errorf("%w: %v", ErrInvalidFlags, err)
	}

	logger := newLogger(env.Stderr, flags.common.quiet, flags.common.verbose)
	warnUnknownEnvVars(logger)
	envCfg := loadEnvConfig()

	// Validate worker count early
	if err := validateWorkers(flags.workers); err != nil {
		return err
	}

	cfg, err := loadConfig(flags.common.config, envCfg)
	if err != nil {
		return err
	}
	applyEnvConfig(envCfg, cfg)
	mergeFlags(flags, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	timeout, err := resolveTimeout(flags.timeout, envCfg.Timeout)
	if err != nil {
		return err
	}

	inputPath, err := resolveInputPath(positional, cfg)
	if err != nil {
		return err
	}
	files, err := discoverFiles(inputPath, resolveOutputDir(flags.output, cfg))
	if err != nil {
		return fmt.Errorf("discovering exports: %w", err)
	}

	css, err := readExtraCSS(flags.assets.css)
	if err != nil {
		return err
	}

	opts, err := buildRendererOptions(cfg, timeout, logger)
	if err != nil {
		return err
	}

	workers := flags.workers
	if workers == 0 {
		workers = envCfg.Workers
	}
	poolSize := min(transcripts.ResolvePoolSize(workers), len(files))
	logger.Debug("starting render",
		"files", len(files),
		"workers", poolSize,
		"gomaxprocs", runtime.GOMAXPROCS(0),
		"pdf", cfg.Output.PDF,
	)

	pool := env.NewPool(poolSize, opts...)
	defer pool.Close()

	// Fail fast on asset and format errors before fanning out.
	r, err := pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrRendererInit, err)
	}
	pool.Release(r)

	params := &renderParams{
		css:       css,
		pdf:       buildPDFOptions(cfg),
		writeHTML: !cfg.Output.SkipHTML,
		logger:    logger,
	}
	results := renderBatch(ctx, pool, files, params)

	failed := printResults(results, flags.common.quiet, flags.common.verbose, env)
	switch {
	case failed == 0:
		return nil
	case len(results) == 1:
		// Keep the cause so the exit code reflects it; printResults already
		// reported the details.
		return fmt.Errorf("%w: %w", ErrRenderFailed, results[0].Err)
	default:
		return fmt.Errorf("%w: %d of %d exports", ErrRenderFailed, failed, len(results))
	}
}

// loadConfig loads the config named by the flag, then by TRANSCRIPTS_CONFIG.
// Without either, defaults are used.
func loadConfig(flagConfig string, env *envConfig) (*config.Config, error) {
	name := flagConfig
	if name == "" {
		name = env.ConfigPath
	}
	if name == "" {
		return config.DefaultConfig(), nil
	}
	cfg, err := config.LoadConfig(name)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// mergeFlags merges CLI flags into config. CLI values override config values.
func mergeFlags(flags *renderFlags, cfg *config.Config) {
	// Transcript flags
	if flags.transcript.timeZone != "" {
		cfg.Transcript.TimeZone = flags.transcript.timeZone
	}
	if flags.transcript.timeFormat != "" {
		cfg.Transcript.TimeFormat = flags.transcript.timeFormat
	}
	if flags.transcript.includeBots {
		cfg.Transcript.IncludeBots = true
	}
	if flags.transcript.strictFieldNames {
		cfg.Transcript.FieldNames = config.FieldNamesStrict
	}
	if flags.transcript.guildIcon != "" {
		cfg.Transcript.GuildIcon = flags.transcript.guildIcon
	}
	if flags.transcript.defaultAvatar != "" {
		cfg.Transcript.DefaultAvatar = flags.transcript.defaultAvatar
	}
	if flags.transcript.highlightStyle != "" {
		cfg.Transcript.HighlightStyle = flags.transcript.highlightStyle
	}

	// Asset flags
	if flags.assets.style != "" {
		cfg.Transcript.Style = flags.assets.style
	}
	if flags.assets.template != "" {
		cfg.Transcript.Template = flags.assets.template
	}
	if flags.assets.assetPath != "" {
		cfg.Assets.BasePath = flags.assets.assetPath
	}

	// Output flags
	if flags.outputMode.pdf {
		cfg.Output.PDF = true
	}
	if flags.outputMode.noHTML {
		cfg.Output.SkipHTML = true
	}

	// Page flags
	if flags.page.size != "" {
		cfg.Page.Size = flags.page.size
	}
	if flags.page.orientation != "" {
		cfg.Page.Orientation = flags.page.orientation
	}
	if flags.page.margin > 0 {
		cfg.Page.Margin = flags.page.margin
	}

	// Watermark flags; text auto-enables
	if flags.watermark.text != "" {
		cfg.Watermark.Text = flags.watermark.text
		cfg.Watermark.Enabled = true
	}
	if flags.watermark.color != "" {
		cfg.Watermark.Color = flags.watermark.color
	}
	if flags.watermark.opacity > 0 {
		cfg.Watermark.Opacity = flags.watermark.opacity
	}
	if flags.watermark.angle != watermarkAngleSentinel {
		cfg.Watermark.Angle = flags.watermark.angle
	}
	if flags.watermark.disabled {
		cfg.Watermark.Enabled = false
	}
}

// resolveTimeout returns the PDF timeout from the flag, then the environment.
// Zero means the library default.
func resolveTimeout(flagValue string, envTimeout time.Duration) (time.Duration, error) {
	if flagValue == "" {
		return envTimeout, nil
	}
	d, err := time.ParseDuration(flagValue)
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %v", ErrInvalidTimeout, flagValue, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%w: %q (must be positive)", ErrInvalidTimeout, flagValue)
	}
	return d, nil
}

// resolveInputPath determines the input path from args or config.
func resolveInputPath(args []string, cfg *config.Config) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	if cfg.Input.DefaultDir != "" {
		return cfg.Input.DefaultDir, nil
	}
	return "", ErrNoInput
}

// resolveOutputDir determines the output directory from flag or config.
func resolveOutputDir(flagOutput string, cfg *config.Config) string {
	if flagOutput != "" {
		return flagOutput
	}
	return cfg.Output.DefaultDir
}

// readExtraCSS reads the --css file, if any.
func readExtraCSS(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	content, err := os.ReadFile(path) // #nosec G304 -- user-provided path
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrReadCSS, err)
	}
	return string(content), nil
}

// buildRendererOptions translates the merged config into renderer options.
func buildRendererOptions(cfg *config.Config, timeout time.Duration, logger *slog.Logger) ([]transcripts.Option, error) {
	t := cfg.Transcript

	var loc *time.Location
	if t.TimeZone != "" {
		var err error
		loc, err = dateutil.LoadLocation(t.TimeZone)
		if err != nil {
			return nil, err
		}
	}

	fieldNames := transcripts.FieldNamesLegacy
	if strings.EqualFold(t.FieldNames, config.FieldNamesStrict) {
		fieldNames = transcripts.FieldNamesStrict
	}

	opts := []transcripts.Option{
		transcripts.WithLocation(loc),
		transcripts.WithTimeFormat(t.TimeFormat),
		transcripts.WithIncludeBotMessages(t.IncludeBots),
		transcripts.WithFieldNameMode(fieldNames),
		transcripts.WithFallbackGuildIcon(t.GuildIcon),
		transcripts.WithDefaultAvatar(t.DefaultAvatar),
		transcripts.WithHighlightStyle(t.HighlightStyle),
		transcripts.WithStyle(t.Style),
		transcripts.WithTemplate(t.Template),
		transcripts.WithAssetPath(cfg.Assets.BasePath),
		transcripts.WithLogger(logger),
	}
	if timeout > 0 {
		opts = append(opts, transcripts.WithTimeout(timeout))
	}
	return opts, nil
}

// buildPDFOptions returns PDF settings, or nil when PDF output is off.
func buildPDFOptions(cfg *config.Config) *transcripts.PDFOptions {
	if !cfg.Output.PDF {
		return nil
	}

	page := transcripts.DefaultPageSettings()
	if cfg.Page.Size != "" {
		page.Size = cfg.Page.Size
	}
	if cfg.Page.Orientation != "" {
		page.Orientation = cfg.Page.Orientation
	}
	if cfg.Page.Margin > 0 {
		page.Margin = cfg.Page.Margin
	}

	return &transcripts.PDFOptions{
		Page:      page,
		Watermark: buildWatermark(cfg),
	}
}

// buildWatermark returns the watermark settings, or nil when disabled.
func buildWatermark(cfg *config.Config) *transcripts.Watermark {
	w := cfg.Watermark
	if !w.Enabled || w.Text == "" {
		return nil
	}

	wm := &transcripts.Watermark{
		Text:    w.Text,
		Color:   w.Color,
		Opacity: w.Opacity,
		Angle:   w.Angle,
	}
	if wm.Color == "" {
		wm.Color = transcripts.DefaultWatermarkColor
	}
	if wm.Opacity == 0 {
		wm.Opacity = transcripts.DefaultWatermarkOpacity
	}
	return wm
}

// looksLikeExport reports whether a bare argument names an export file.
func looksLikeExport(arg string) bool {
	return !strings.HasPrefix(arg, "-") && export.IsExportFile(arg)
}
