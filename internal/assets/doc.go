// Package assets provides the transcript HTML skeleton and CSS themes.
// Assets can be loaded from embedded files or custom filesystem paths.
//
// # Loader Architecture
//
// The package implements a layered loading system:
//
//	AssetLoader (interface)
//	    │
//	    ├── EmbeddedLoader    - loads from go:embed filesystem (built-in themes)
//	    ├── FilesystemLoader  - loads from custom directory on disk
//	    └── AssetResolver     - combines both with custom-first fallback
//
// EmbeddedLoader provides the built-in themes (dark, light) and the default
// transcript skeleton.
//
// FilesystemLoader allows users to provide custom assets from a directory,
// with path traversal protection and symlink resolution.
//
// AssetResolver is the loader used by the renderer. It tries the custom
// FilesystemLoader first, falling back to EmbeddedLoader if the asset is not
// found. This allows overriding one theme while keeping the built-in skeleton.
//
// # Directory Structure
//
//	{basePath}/
//	├── styles/
//	│   └── {name}.css           # theme stylesheet (e.g., dark.css)
//	└── templates/
//	    └── {name}.html          # transcript skeleton (e.g., transcript.html)
//
// A skeleton must contain the anchors the renderer fills in: an element with
// class preamble__guild-icon and elements with ids transcriptTitle,
// guildname, ticketname and chatlog.
//
// # Security
//
// Asset names are validated to prevent path traversal attacks.
// FilesystemLoader resolves symlinks and verifies paths stay within basePath.
package assets
