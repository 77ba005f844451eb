package assets

import (
	"errors"
	"strings"
	"testing"
)

func TestEmbeddedLoader_LoadStyle(t *testing.T) {
	t.Parallel()

	loader := NewEmbeddedLoader()

	tests := []struct {
		name        string
		styleName   string
		wantErr     error
		wantContain string
	}{
		{name: "loads dark theme", styleName: "dark", wantContain: "--background: #36393e"},
		{name: "loads light theme", styleName: "light", wantContain: "--background: #ffffff"},
		{name: "returns ErrStyleNotFound for nonexistent", styleName: "nonexistent-style-xyz", wantErr: ErrStyleNotFound},
		{name: "returns ErrInvalidAssetName for empty name", styleName: "", wantErr: ErrInvalidAssetName},
		{name: "returns ErrInvalidAssetName for path traversal", styleName: "../secret", wantErr: ErrInvalidAssetName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := loader.LoadStyle(tt.styleName)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("LoadStyle(%q) error = %v, want %v", tt.styleName, err, tt.wantErr)
				}
				return
			}

			if err != nil {
				t.Fatalf("LoadStyle(%q) unexpected error: %v", tt.styleName, err)
			}
			if !strings.Contains(got, tt.wantContain) {
				t.Errorf("LoadStyle(%q) content should contain %q", tt.styleName, tt.wantContain)
			}
		})
	}
}

func TestEmbeddedLoader_LoadTemplate(t *testing.T) {
	t.Parallel()

	loader := NewEmbeddedLoader()

	tests := []struct {
		name         string
		templateName string
		wantErr      error
	}{
		{name: "loads transcript template", templateName: "transcript"},
		{name: "returns ErrTemplateNotFound for nonexistent", templateName: "nonexistent-template-xyz", wantErr: ErrTemplateNotFound},
		{name: "styles are not templates", templateName: "dark", wantErr: ErrTemplateNotFound},
		{name: "returns ErrInvalidAssetName for empty name", templateName: "", wantErr: ErrInvalidAssetName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := loader.LoadTemplate(tt.templateName)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("LoadTemplate(%q) error = %v, want %v", tt.templateName, err, tt.wantErr)
				}
				return
			}

			if err != nil {
				t.Fatalf("LoadTemplate(%q) unexpected error: %v", tt.templateName, err)
			}
			if !strings.Contains(got, "<!DOCTYPE html>") {
				t.Errorf("LoadTemplate(%q) should return a full document", tt.templateName)
			}
		})
	}
}

func TestBuiltinStyles(t *testing.T) {
	t.Parallel()

	got := strings.Join(BuiltinStyles(), ",")
	if got != "dark,light" {
		t.Errorf("BuiltinStyles() = %q, want %q", got, "dark,light")
	}
}
