package main

import (
	"errors"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/szymon-off/discord-html-transcripts/internal/export"
)

func TestResolveOutputPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		input     string
		outputDir string
		baseDir   string
		want      string
	}{
		{"next to input", "exports/general.json", "", "", filepath.Join("exports", "general.html")},
		{"yaml input", "general.yml", "", "", "general.html"},
		{"explicit html file", "general.json", "out/archive.html", "", "out/archive.html"},
		{"explicit pdf file maps to html", "general.json", "out/archive.pdf", "", "out/archive.html"},
		{"output directory", "exports/general.json", "out", "", filepath.Join("out", "general.html")},
		{"mirrors subdirectories", filepath.Join("exports", "2024", "general.json"), "out", "exports", filepath.Join("out", "2024", "general.html")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := resolveOutputPath(tt.input, tt.outputDir, tt.baseDir); got != tt.want {
				t.Errorf("resolveOutputPath(%q, %q, %q) = %q, want %q", tt.input, tt.outputDir, tt.baseDir, got, tt.want)
			}
		})
	}
}

func TestFileToRender_PDFPath(t *testing.T) {
	t.Parallel()

	f := FileToRender{HTMLPath: filepath.Join("out", "general.html")}
	if got, want := f.PDFPath(), filepath.Join("out", "general.pdf"); got != want {
		t.Errorf("PDFPath() = %q, want %q", got, want)
	}
}

func TestDiscoverFiles(t *testing.T) {
	t.Parallel()

	dir := setupTestDir(t, map[string]string{
		"general.json":       testExport,
		"nested/alerts.yaml": botOnlyExport,
		"nested/deep/x.yml":  botOnlyExport,
		"notes.txt":          "not an export",
		"README.md":          "# exports",
	})

	t.Run("directory walks supported extensions", func(t *testing.T) {
		t.Parallel()

		files, err := discoverFiles(dir, "")
		if err != nil {
			t.Fatalf("discoverFiles() unexpected error: %v", err)
		}

		var got []string
		for _, f := range files {
			rel, _ := filepath.Rel(dir, f.InputPath)
			got = append(got, filepath.ToSlash(rel))
		}
		sort.Strings(got)
		want := []string{"general.json", "nested/alerts.yaml", "nested/deep/x.yml"}
		if len(got) != len(want) {
			t.Fatalf("discovered %v, want %v", got, want)
		}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("file[%d] = %q, want %q", i, got[i], want[i])
			}
		}
	})

	t.Run("directory mirrors into output dir", func(t *testing.T) {
		t.Parallel()

		out := t.TempDir()
		files, err := discoverFiles(dir, out)
		if err != nil {
			t.Fatalf("discoverFiles() unexpected error: %v", err)
		}
		for _, f := range files {
			if filepath.Base(f.InputPath) == "x.yml" {
				if want := filepath.Join(out, "nested", "deep", "x.html"); f.HTMLPath != want {
					t.Errorf("HTMLPath = %q, want %q", f.HTMLPath, want)
				}
			}
		}
	})

	t.Run("single file", func(t *testing.T) {
		t.Parallel()

		files, err := discoverFiles(filepath.Join(dir, "general.json"), "")
		if err != nil {
			t.Fatalf("discoverFiles() unexpected error: %v", err)
		}
		if len(files) != 1 || files[0].HTMLPath != filepath.Join(dir, "general.html") {
			t.Errorf("discoverFiles() = %+v", files)
		}
	})

	t.Run("unsupported single file", func(t *testing.T) {
		t.Parallel()

		_, err := discoverFiles(filepath.Join(dir, "notes.txt"), "")
		if !errors.Is(err, export.ErrUnsupportedType) {
			t.Errorf("error = %v, want ErrUnsupportedType", err)
		}
	})

	t.Run("missing path", func(t *testing.T) {
		t.Parallel()

		_, err := discoverFiles(filepath.Join(dir, "missing.json"), "")
		if !errors.Is(err, os.ErrNotExist) {
			t.Errorf("error = %v, want os.ErrNotExist", err)
		}
	})
}

func TestDiscoverFiles_EmptyDirectory(t *testing.T) {
	t.Parallel()

	dir := setupTestDir(t, map[string]string{"notes.txt": "x"})
	_, err := discoverFiles(dir, "")
	if !errors.Is(err, ErrNoExports) {
		t.Errorf("error = %v, want ErrNoExports", err)
	}
}

func TestValidateWorkers(t *testing.T) {
	t.Parallel()

	tests := []struct {
		n       int
		wantErr bool
	}{
		{0, false},
		{1, false},
		{8, false},
		{-1, true},
		{9, true},
	}

	for _, tt := range tests {
		err := validateWorkers(tt.n)
		if (err != nil) != tt.wantErr {
			t.Errorf("validateWorkers(%d) = %v, wantErr %v", tt.n, err, tt.wantErr)
		}
		if err != nil && !errors.Is(err, ErrInvalidWorkerCount) {
			t.Errorf("validateWorkers(%d) = %v, want ErrInvalidWorkerCount", tt.n, err)
		}
	}
}
