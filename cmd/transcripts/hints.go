package main

import (
	"context"
	"errors"
	"strings"

	transcripts "github.com/szymon-off/discord-html-transcripts"
	"github.com/szymon-off/discord-html-transcripts/internal/assets"
	"github.com/szymon-off/discord-html-transcripts/internal/config"
	"github.com/szymon-off/discord-html-transcripts/internal/hints"
)

// hintFor returns an actionable hint for err, or "" when none applies.
func hintFor(err error) string {
	switch {
	case errors.Is(err, transcripts.ErrBrowserConnect):
		return hints.ForBrowserConnect(hints.DetectRuntime())
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, transcripts.ErrPageLoad):
		return hints.ForTimeout()
	case errors.Is(err, config.ErrConfigNotFound):
		return hints.ForConfigNotFound(triedPaths(err))
	case errors.Is(err, transcripts.ErrStyleNotFound):
		return hints.ForStyleNotFound(assets.BuiltinStyles())
	case errors.Is(err, transcripts.ErrTemplateMissingElement):
		return hints.ForTemplateAnchors()
	case errors.Is(err, transcripts.ErrMissingRequiredField):
		return hints.ForMissingField()
	case errors.Is(err, ErrCreateOutputDir):
		return hints.ForOutputDirectory()
	}
	return ""
}

// triedPaths extracts the searched locations from a config-not-found error,
// which lists them after "tried ".
func triedPaths(err error) []string {
	_, list, ok := strings.Cut(err.Error(), "tried ")
	if !ok {
		return nil
	}
	return strings.Split(list, ", ")
}
