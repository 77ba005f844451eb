package main

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
)

func TestRunMain(t *testing.T) {
	t.Parallel()

	dir := setupTestDir(t, map[string]string{"general.json": testExport})

	tests := []struct {
		name         string
		args         []string
		wantCode     int
		wantInStdout []string
		wantInStderr []string
	}{
		{
			name:         "no args shows usage",
			args:         []string{"transcripts"},
			wantCode:     ExitUsage,
			wantInStderr: []string{"Usage: transcripts"},
		},
		{
			name:         "version command",
			args:         []string{"transcripts", "version"},
			wantCode:     ExitSuccess,
			wantInStdout: []string{"transcripts dev"},
		},
		{
			name:         "version flag",
			args:         []string{"transcripts", "--version"},
			wantCode:     ExitSuccess,
			wantInStdout: []string{"transcripts dev"},
		},
		{
			name:         "help",
			args:         []string{"transcripts", "help"},
			wantCode:     ExitSuccess,
			wantInStdout: []string{"Usage: transcripts", "Commands:"},
		},
		{
			name:         "help render",
			args:         []string{"transcripts", "help", "render"},
			wantCode:     ExitSuccess,
			wantInStdout: []string{"Usage: transcripts render", "--time-format"},
		},
		{
			name:         "help unknown",
			args:         []string{"transcripts", "help", "bogus"},
			wantCode:     ExitUsage,
			wantInStderr: []string{"unknown command: bogus"},
		},
		{
			name:         "unknown command",
			args:         []string{"transcripts", "bogus"},
			wantCode:     ExitUsage,
			wantInStderr: []string{"unknown command: bogus"},
		},
		{
			name:         "render command",
			args:         []string{"transcripts", "render", filepath.Join(dir, "general.json"), "-o", filepath.Join(t.TempDir(), "a.html")},
			wantCode:     ExitSuccess,
			wantInStdout: []string{"Created", "a.html"},
		},
		{
			name:         "bare export path renders",
			args:         []string{"transcripts", filepath.Join(dir, "general.json"), "-o", filepath.Join(t.TempDir(), "b.html")},
			wantCode:     ExitSuccess,
			wantInStdout: []string{"b.html"},
		},
		{
			name:         "missing export maps to IO exit code",
			args:         []string{"transcripts", "render", filepath.Join(dir, "missing.json")},
			wantCode:     ExitIO,
			wantInStderr: []string{"missing.json"},
		},
		{
			name:         "unknown style prints hint",
			args:         []string{"transcripts", "render", filepath.Join(dir, "general.json"), "--style", "neon"},
			wantCode:     ExitUsage,
			wantInStderr: []string{"style not found", "hint: available: dark, light"},
		},
		{
			name:     "render help flag",
			args:     []string{"transcripts", "render", "--help"},
			wantCode: ExitSuccess,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env, stdout, stderr := newTestEnv(nil)
			code := runMain(context.Background(), tt.args, env)

			if code != tt.wantCode {
				t.Errorf("runMain() = %d, want %d\nstderr: %s", code, tt.wantCode, stderr.String())
			}
			for _, want := range tt.wantInStdout {
				if !strings.Contains(stdout.String(), want) {
					t.Errorf("stdout should contain %q, got %q", want, stdout.String())
				}
			}
			for _, want := range tt.wantInStderr {
				if !strings.Contains(stderr.String(), want) {
					t.Errorf("stderr should contain %q, got %q", want, stderr.String())
				}
			}
		})
	}
}

func TestLooksLikeExport(t *testing.T) {
	t.Parallel()

	tests := []struct {
		arg  string
		want bool
	}{
		{"general.json", true},
		{"exports/general.yaml", true},
		{"general.YML", true},
		{"--pdf", false},
		{"render", false},
		{"notes.md", false},
	}

	for _, tt := range tests {
		if got := looksLikeExport(tt.arg); got != tt.want {
			t.Errorf("looksLikeExport(%q) = %v, want %v", tt.arg, got, tt.want)
		}
	}
}
