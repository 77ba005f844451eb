package assets

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewAssetResolver(t *testing.T) {
	t.Parallel()

	t.Run("empty path uses embedded only", func(t *testing.T) {
		t.Parallel()

		resolver, err := NewAssetResolver("")
		if err != nil {
			t.Fatalf("NewAssetResolver(\"\") error = %v", err)
		}
		if resolver.HasCustomLoader() {
			t.Error("expected no custom loader for empty path")
		}
	})

	t.Run("valid custom path", func(t *testing.T) {
		t.Parallel()

		resolver, err := NewAssetResolver(t.TempDir())
		if err != nil {
			t.Fatalf("NewAssetResolver() error = %v", err)
		}
		if !resolver.HasCustomLoader() {
			t.Error("expected custom loader for valid path")
		}
	})

	t.Run("invalid custom path returns error", func(t *testing.T) {
		t.Parallel()

		_, err := NewAssetResolver("/nonexistent/path/abc123xyz")
		if !errors.Is(err, ErrInvalidBasePath) {
			t.Errorf("NewAssetResolver() error = %v, want ErrInvalidBasePath", err)
		}
	})
}

func TestAssetResolver_Fallback(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeAsset(t, tmpDir, "styles", "dark.css", "/* overridden */")

	resolver, err := NewAssetResolver(tmpDir)
	if err != nil {
		t.Fatalf("NewAssetResolver() error = %v", err)
	}

	t.Run("custom style takes precedence", func(t *testing.T) {
		t.Parallel()

		got, err := resolver.LoadStyle("dark")
		if err != nil {
			t.Fatalf("LoadStyle() error = %v", err)
		}
		if got != "/* overridden */" {
			t.Errorf("LoadStyle() = %q, want custom content", got)
		}
	})

	t.Run("falls back to embedded style", func(t *testing.T) {
		t.Parallel()

		got, err := resolver.LoadStyle("light")
		if err != nil {
			t.Fatalf("LoadStyle() error = %v", err)
		}
		if !strings.Contains(got, ".chatlog") {
			t.Error("LoadStyle() should return embedded light theme")
		}
	})

	t.Run("falls back to embedded template", func(t *testing.T) {
		t.Parallel()

		got, err := resolver.LoadTemplate(DefaultTemplateName)
		if err != nil {
			t.Fatalf("LoadTemplate() error = %v", err)
		}
		if !strings.Contains(got, `id="chatlog"`) {
			t.Error("LoadTemplate() should return embedded skeleton")
		}
	})

	t.Run("missing everywhere returns not found", func(t *testing.T) {
		t.Parallel()

		_, err := resolver.LoadStyle("nonexistent-xyz")
		if !errors.Is(err, ErrStyleNotFound) {
			t.Errorf("LoadStyle() error = %v, want ErrStyleNotFound", err)
		}
	})
}

func TestAssetResolver_NoFallbackOnReadError(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	// A directory where a file is expected produces a read error, not not-found.
	if err := os.MkdirAll(filepath.Join(tmpDir, "styles", "dark.css"), 0o755); err != nil {
		t.Fatal(err)
	}

	resolver, err := NewAssetResolver(tmpDir)
	if err != nil {
		t.Fatalf("NewAssetResolver() error = %v", err)
	}

	_, err = resolver.LoadStyle("dark")
	if !errors.Is(err, ErrAssetRead) {
		t.Errorf("LoadStyle() error = %v, want ErrAssetRead", err)
	}
}
