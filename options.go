package transcripts

import (
	"io"
	"log/slog"
	"time"
)

// Default header and avatar images.
const (
	DefaultGuildIconURL = "https://guild-studio.com/wp-content/uploads/2021/05/s9biyhs4lix61.jpg"
	DefaultBotAvatarURL = "default_bot_avatar_url"
	DefaultAvatarURL    = "https://cdn.discordapp.com/embed/avatars/0.png"
)

const (
	defaultTimeout        = 30 * time.Second
	defaultHighlightStyle = "monokai"
)

// FieldNameMode selects how embed field names are written.
type FieldNameMode int

const (
	// FieldNamesLegacy inserts field names as raw markup, unescaped.
	FieldNamesLegacy FieldNameMode = iota

	// FieldNamesStrict runs field names through the formatter like values.
	FieldNamesStrict
)

// Option configures a Renderer.
type Option func(*Renderer)

// rendererConfig holds internal configuration for Renderer.
type rendererConfig struct {
	timeout            time.Duration
	includeBotMessages bool
	fieldNameMode      FieldNameMode
	location           *time.Location
	timeFormat         string
	guildIconURL       string
	avatarURL          string
	botAvatarURL       string
	styleInput         string
	templateName       string
	assetPath          string
	highlightStyle     string
	logger             *slog.Logger
}

func defaultConfig() rendererConfig {
	return rendererConfig{
		timeout:        defaultTimeout,
		fieldNameMode:  FieldNamesLegacy,
		location:       time.UTC,
		guildIconURL:   DefaultGuildIconURL,
		avatarURL:      DefaultAvatarURL,
		botAvatarURL:   DefaultBotAvatarURL,
		highlightStyle: defaultHighlightStyle,
		logger:         slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// WithIncludeBotMessages renders messages from automated senders when true.
// By default they are skipped.
func WithIncludeBotMessages(include bool) Option {
	return func(r *Renderer) {
		r.cfg.includeBotMessages = include
	}
}

// WithFieldNameMode selects legacy (raw) or strict (formatted) embed field names.
func WithFieldNameMode(mode FieldNameMode) Option {
	return func(r *Renderer) {
		r.cfg.fieldNameMode = mode
	}
}

// WithLocation sets the time zone for timestamps. Nil keeps UTC.
func WithLocation(loc *time.Location) Option {
	return func(r *Renderer) {
		if loc != nil {
			r.cfg.location = loc
		}
	}
}

// WithTimeFormat sets the timestamp format as tokens (HH:mm:ss) or a preset
// name (clock, short, iso, us). NewRenderer rejects invalid formats.
func WithTimeFormat(format string) Option {
	return func(r *Renderer) {
		r.cfg.timeFormat = format
	}
}

// WithFallbackGuildIcon sets the header icon used when the channel has none.
func WithFallbackGuildIcon(url string) Option {
	return func(r *Renderer) {
		if url != "" {
			r.cfg.guildIconURL = url
		}
	}
}

// WithDefaultAvatar sets the avatar used for authors without one.
func WithDefaultAvatar(url string) Option {
	return func(r *Renderer) {
		if url != "" {
			r.cfg.avatarURL = url
		}
	}
}

// WithDefaultBotAvatar sets the avatar of the "Bot" placeholder author.
func WithDefaultBotAvatar(url string) Option {
	return func(r *Renderer) {
		if url != "" {
			r.cfg.botAvatarURL = url
		}
	}
}

// WithStyle sets the theme as a name ("dark", "light") or a CSS file path.
func WithStyle(style string) Option {
	return func(r *Renderer) {
		r.cfg.styleInput = style
	}
}

// WithTemplate sets the skeleton name loaded from the asset loader.
func WithTemplate(name string) Option {
	return func(r *Renderer) {
		r.cfg.templateName = name
	}
}

// WithAssetPath loads themes and skeletons from a directory first,
// falling back to the embedded assets.
func WithAssetPath(path string) Option {
	return func(r *Renderer) {
		r.cfg.assetPath = path
	}
}

// WithAssetLoader replaces the asset loader entirely. Takes precedence over
// WithAssetPath.
func WithAssetLoader(loader AssetLoader) Option {
	return func(r *Renderer) {
		r.assetLoader = loader
	}
}

// WithHighlightStyle sets the chroma style for code blocks.
func WithHighlightStyle(name string) Option {
	return func(r *Renderer) {
		if name != "" {
			r.cfg.highlightStyle = name
		}
	}
}

// WithLogger sets the logger for debug output. Nil keeps the discard logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Renderer) {
		if logger != nil {
			r.cfg.logger = logger
		}
	}
}

// WithTimeout sets the PDF page-load timeout.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("transcripts: WithTimeout duration must be positive")
	}
	return func(r *Renderer) {
		r.cfg.timeout = d
	}
}

const (
	botPlaceholderName     = "Bot"
	referencePreviewLength = 42
	referencePreviewSuffix = "..."
)
