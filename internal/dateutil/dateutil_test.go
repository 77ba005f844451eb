package dateutil

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestParseTimeFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		format  string
		want    string
		wantErr error
	}{
		// Clock tokens
		{
			name:   "HH:mm:ss converts to 24-hour clock",
			format: "HH:mm:ss",
			want:   "15:04:05",
		},
		{
			name:   "hh converts to zero-padded 12-hour",
			format: "hh",
			want:   "03",
		},
		{
			name:   "h with A converts to 12-hour with meridiem",
			format: "h:mm A",
			want:   "3:04 PM",
		},
		// Date tokens
		{
			name:   "YYYY converts to Go year format",
			format: "YYYY",
			want:   "2006",
		},
		{
			name:   "MM is month and mm is minute",
			format: "MM mm",
			want:   "01 04",
		},
		{
			name:   "MMMM converts to full month name",
			format: "MMMM",
			want:   "January",
		},
		{
			name:   "ISO date time",
			format: "YYYY-MM-DD HH:mm:ss",
			want:   "2006-01-02 15:04:05",
		},
		// Literal preservation
		{
			name:   "preserves separators",
			format: "HH.mm",
			want:   "15.04",
		},
		{
			name:   "brackets preserve literal text",
			format: "[at] HH:mm",
			want:   "at 15:04",
		},
		{
			name:   "brackets preserve tokens as literals",
			format: "[HH]:mm",
			want:   "HH:04",
		},
		// Errors
		{
			name:    "empty format returns error",
			format:  "",
			wantErr: ErrInvalidTimeFormat,
		},
		{
			name:    "unclosed bracket returns error",
			format:  "[at HH:mm",
			wantErr: ErrInvalidTimeFormat,
		},
		{
			name:    "too long format returns error",
			format:  strings.Repeat("H", MaxTimeFormatLength+1),
			wantErr: ErrInvalidTimeFormat,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ParseTimeFormat(tt.format)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("ParseTimeFormat(%q) error = %v, want %v", tt.format, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseTimeFormat(%q) unexpected error: %v", tt.format, err)
			}
			if got != tt.want {
				t.Errorf("ParseTimeFormat(%q) = %q, want %q", tt.format, got, tt.want)
			}
		})
	}
}

func TestResolveLayout(t *testing.T) {
	t.Parallel()

	fixed := time.Date(2024, 3, 9, 14, 5, 7, 0, time.UTC)

	tests := []struct {
		name  string
		value string
		want  string
	}{
		{name: "empty uses default clock", value: "", want: "14:05:07"},
		{name: "clock preset", value: "clock", want: "14:05:07"},
		{name: "preset is case-insensitive", value: "SHORT", want: "14:05"},
		{name: "iso preset", value: "iso", want: "2024-03-09 14:05:07"},
		{name: "us preset", value: "us", want: "03/09/2024 2:05 PM"},
		{name: "custom format", value: "HH[h]mm", want: "14h05"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			layout, err := ResolveLayout(tt.value)
			if err != nil {
				t.Fatalf("ResolveLayout(%q) unexpected error: %v", tt.value, err)
			}
			if got := fixed.Format(layout); got != tt.want {
				t.Errorf("ResolveLayout(%q) formats to %q, want %q", tt.value, got, tt.want)
			}
		})
	}
}

func TestLoadLocation(t *testing.T) {
	t.Parallel()

	t.Run("empty resolves to UTC", func(t *testing.T) {
		t.Parallel()

		loc, err := LoadLocation("")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if loc != time.UTC {
			t.Errorf("LoadLocation(\"\") = %v, want UTC", loc)
		}
	})

	t.Run("unknown zone returns ErrInvalidTimeZone", func(t *testing.T) {
		t.Parallel()

		_, err := LoadLocation("Mars/Olympus_Mons")
		if !errors.Is(err, ErrInvalidTimeZone) {
			t.Errorf("LoadLocation() error = %v, want ErrInvalidTimeZone", err)
		}
	})
}
