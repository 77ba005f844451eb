// Package dateutil converts user-friendly timestamp formats to Go layouts.
package dateutil

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Sentinel errors for timestamp format and zone resolution.
var (
	ErrInvalidTimeFormat = errors.New("invalid time format")
	ErrInvalidTimeZone   = errors.New("invalid time zone")
)

// MaxTimeFormatLength limits format string length to prevent abuse.
const MaxTimeFormatLength = 50

// DefaultTimeFormat is the transcript clock format.
const DefaultTimeFormat = "HH:mm:ss"

// timeTokens maps user-friendly tokens to Go time format components.
// Ordered by length descending for greedy matching. Matching is case-sensitive:
// "MM" is the month, "mm" the minute.
var timeTokens = []struct {
	token string
	goFmt string
}{
	{"YYYY", "2006"},
	{"MMMM", "January"},
	{"MMM", "Jan"},
	{"YY", "06"},
	{"MM", "01"},
	{"DD", "02"},
	{"HH", "15"},
	{"hh", "03"},
	{"mm", "04"},
	{"ss", "05"},
	{"M", "1"},
	{"D", "2"},
	{"h", "3"},
	{"A", "PM"},
}

// TimePresets provides named shortcuts for common timestamp formats.
var TimePresets = map[string]string{
	"clock": "HH:mm:ss",
	"short": "HH:mm",
	"iso":   "YYYY-MM-DD HH:mm:ss",
	"us":    "MM/DD/YYYY h:mm A",
}

// ParseTimeFormat converts a user-friendly format string to Go's time layout.
// Tokens: YYYY, YY, MMMM, MMM, MM, M, DD, D, HH, hh, h, mm, ss, A.
// Use brackets to escape literal text: [at] preserves "at" literally.
// Any non-token characters outside brackets are preserved as literals.
// Returns ErrInvalidTimeFormat if the format is empty, too long, or has unclosed brackets.
func ParseTimeFormat(format string) (string, error) {
	if format == "" {
		return "", fmt.Errorf("%w: format cannot be empty", ErrInvalidTimeFormat)
	}
	if len(format) > MaxTimeFormatLength {
		return "", fmt.Errorf("%w: format exceeds %d characters", ErrInvalidTimeFormat, MaxTimeFormatLength)
	}

	var result strings.Builder
	result.Grow(len(format) + 10)

	i := 0
	for i < len(format) {
		if format[i] == '[' {
			end := strings.Index(format[i+1:], "]")
			if end == -1 {
				return "", fmt.Errorf("%w: unclosed bracket at position %d", ErrInvalidTimeFormat, i)
			}
			result.WriteString(format[i+1 : i+1+end])
			i += end + 2
			continue
		}

		matched := false
		for _, t := range timeTokens {
			if strings.HasPrefix(format[i:], t.token) {
				result.WriteString(t.goFmt)
				i += len(t.token)
				matched = true
				break
			}
		}

		if !matched {
			result.WriteByte(format[i])
			i++
		}
	}

	return result.String(), nil
}

// ResolveLayout accepts a preset name (case-insensitive) or a token format
// and returns the Go layout. An empty value resolves to DefaultTimeFormat.
func ResolveLayout(value string) (string, error) {
	if value == "" {
		value = DefaultTimeFormat
	}
	if preset, ok := TimePresets[strings.ToLower(value)]; ok {
		value = preset
	}
	return ParseTimeFormat(value)
}

// LoadLocation resolves an IANA zone name. Empty and "UTC" return time.UTC;
// "Local" returns time.Local.
func LoadLocation(name string) (*time.Location, error) {
	switch name {
	case "", "UTC", "utc":
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrInvalidTimeZone, name, err)
	}
	return loc, nil
}
