package assets

import (
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"
)

//go:embed styles/*.css templates/*.html
var embedded embed.FS

// EmbeddedLoader loads assets compiled into the binary.
// Implements AssetLoader interface.
type EmbeddedLoader struct{}

// NewEmbeddedLoader creates an EmbeddedLoader.
func NewEmbeddedLoader() *EmbeddedLoader {
	return &EmbeddedLoader{}
}

// LoadStyle loads a built-in theme by name.
func (e *EmbeddedLoader) LoadStyle(name string) (string, error) {
	return e.read("styles/", name, ".css", ErrStyleNotFound)
}

// LoadTemplate loads a built-in skeleton by name.
func (e *EmbeddedLoader) LoadTemplate(name string) (string, error) {
	return e.read("templates/", name, ".html", ErrTemplateNotFound)
}

func (e *EmbeddedLoader) read(dir, name, ext string, notFound error) (string, error) {
	if err := ValidateAssetName(name); err != nil {
		return "", err
	}

	content, err := embedded.ReadFile(dir + name + ext)
	if err != nil {
		return "", fmt.Errorf("%w: %q", notFound, name)
	}

	return string(content), nil
}

// BuiltinStyles returns the names of the embedded themes, sorted.
func BuiltinStyles() []string {
	entries, err := fs.ReadDir(embedded, "styles")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if name, ok := strings.CutSuffix(e.Name(), ".css"); ok {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// Compile-time interface check.
var _ AssetLoader = (*EmbeddedLoader)(nil)
