package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	transcripts "github.com/szymon-off/discord-html-transcripts"
	"github.com/szymon-off/discord-html-transcripts/internal/export"
	"github.com/szymon-off/discord-html-transcripts/internal/fileutil"
)

// Sentinel errors for file discovery.
var (
	ErrNoExports          = errors.New("no export files found")
	ErrInvalidWorkerCount = errors.New("invalid worker count")
)

// FileToRender pairs an export with the HTML path it renders to.
// The PDF path, when requested, is derived from HTMLPath.
type FileToRender struct {
	InputPath string
	HTMLPath  string
}

// PDFPath returns the PDF output path next to the HTML output.
func (f FileToRender) PDFPath() string {
	return fileutil.ReplaceExt(f.HTMLPath, "pdf")
}

// discoverFiles finds all export files to render.
func discoverFiles(inputPath, outputDir string) ([]FileToRender, error) {
	info, err := os.Stat(inputPath)
	if err != nil {
		return nil, err
	}

	if !info.IsDir() {
		if !export.IsExportFile(inputPath) {
			return nil, fmt.Errorf("%w: %s (want %s)", export.ErrUnsupportedType, inputPath, strings.Join(export.Extensions, ", "))
		}
		return []FileToRender{{InputPath: inputPath, HTMLPath: resolveOutputPath(inputPath, outputDir, "")}}, nil
	}

	var files []FileToRender
	err = filepath.WalkDir(inputPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("scanning %s: %w", path, err)
		}
		if d.IsDir() || !export.IsExportFile(path) {
			return nil
		}
		files = append(files, FileToRender{InputPath: path, HTMLPath: resolveOutputPath(path, outputDir, inputPath)})
		return nil
	})
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoExports, inputPath)
	}
	return files, nil
}

// resolveOutputPath determines the HTML output path for an export.
// An outputDir ending in .html or .pdf names the output file directly;
// otherwise directory inputs mirror their layout under outputDir.
func resolveOutputPath(inputPath, outputDir, baseInputDir string) string {
	htmlName := fileutil.ReplaceExt(filepath.Base(inputPath), "html")

	if outputDir == "" {
		return filepath.Join(filepath.Dir(inputPath), htmlName)
	}

	switch strings.ToLower(filepath.Ext(outputDir)) {
	case ".html", ".pdf":
		return fileutil.ReplaceExt(outputDir, "html")
	}

	if baseInputDir != "" {
		relPath, err := filepath.Rel(baseInputDir, inputPath)
		if err == nil {
			return filepath.Join(outputDir, filepath.Dir(relPath), htmlName)
		}
	}

	return filepath.Join(outputDir, htmlName)
}

// validateWorkers checks that the worker count is within valid bounds.
func validateWorkers(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: %d (must be >= 0, 0 means auto)", ErrInvalidWorkerCount, n)
	}
	if n > transcripts.MaxPoolSize {
		return fmt.Errorf("%w: %d (maximum is %d)", ErrInvalidWorkerCount, n, transcripts.MaxPoolSize)
	}
	return nil
}
