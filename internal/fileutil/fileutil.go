// Package fileutil holds the path and file helpers shared by the renderer and
// the CLI.
package fileutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// stagePattern names documents staged for the headless browser.
const stagePattern = "transcript-*.html"

// StageHTML writes doc to a temp file the browser can open by file URL.
// The returned cleanup removes it; it is nil when err is non-nil.
func StageHTML(doc string) (path string, cleanup func(), err error) {
	f, err := os.CreateTemp("", stagePattern)
	if err != nil {
		return "", nil, fmt.Errorf("staging transcript: %w", err)
	}
	path = f.Name()
	cleanup = func() { _ = os.Remove(path) }

	if _, err := f.WriteString(doc); err != nil {
		_ = f.Close()
		cleanup()
		return "", nil, fmt.Errorf("staging transcript: %w", err)
	}
	if err := f.Close(); err != nil {
		cleanup()
		return "", nil, fmt.Errorf("staging transcript: %w", err)
	}
	return path, cleanup, nil
}

// WriteFileAtomic writes data next to path and renames it into place, so a
// reader never sees a half-written transcript.
func WriteFileAtomic(path string, data []byte, perm os.FileMode) error {
	f, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	tmp := f.Name()

	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	if err := os.Chmod(tmp, perm); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return nil
}

// FileExists reports whether path is an existing regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// IsFilePath reports whether s names a file rather than a built-in asset.
// Anything containing a separator is a path: "dark" is a name,
// "./custom.css" and "themes/dark.css" are paths.
func IsFilePath(s string) bool {
	return strings.ContainsAny(s, `/\`)
}

// ReplaceExt swaps the extension of path for ext (given without the dot).
// "exports/general.json" with "html" becomes "exports/general.html".
func ReplaceExt(path, ext string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + "." + ext
}
