// Package hints turns common render failures into a short suggestion that the
// CLI appends to its error line as "\n  hint: <text>".
package hints

import (
	"os"
	"strings"

	"github.com/szymon-off/discord-html-transcripts/internal/fileutil"
)

// ciVars are set by the CI systems the browser hints know about.
var ciVars = []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL", "CIRCLECI"}

// Runtime describes the parts of the host that decide whether headless
// Chrome can start.
type Runtime struct {
	CI            bool
	Container     bool
	ContainerHint string // which signal detected the container
	NoSandbox     bool   // ROD_NO_SANDBOX=1
	BrowserBin    string // ROD_BROWSER_BIN
}

// DetectRuntime inspects the process environment and well-known container
// markers.
func DetectRuntime() Runtime {
	rt := Runtime{
		NoSandbox:  os.Getenv("ROD_NO_SANDBOX") == "1",
		BrowserBin: os.Getenv("ROD_BROWSER_BIN"),
	}
	for _, v := range ciVars {
		if os.Getenv(v) != "" {
			rt.CI = true
			break
		}
	}
	rt.Container, rt.ContainerHint = detectContainer()
	return rt
}

func detectContainer() (bool, string) {
	switch {
	case os.Getenv("TRANSCRIPTS_CONTAINER") == "1":
		return true, "TRANSCRIPTS_CONTAINER=1"
	case fileutil.FileExists("/.dockerenv"):
		return true, "/.dockerenv"
	case os.Getenv("container") != "":
		return true, "container=" + os.Getenv("container")
	case os.Getenv("KUBERNETES_SERVICE_HOST") != "":
		return true, "KUBERNETES_SERVICE_HOST"
	}
	return false, ""
}

// NeedsNoSandbox reports whether Chrome will likely refuse to start because
// the sandbox is unavailable.
func (rt Runtime) NeedsNoSandbox() bool {
	return (rt.CI || rt.Container) && !rt.NoSandbox
}

// ForBrowserConnect suggests the rod environment variables that usually fix
// a failed Chrome launch on rt.
func ForBrowserConnect(rt Runtime) string {
	var parts []string
	if rt.NeedsNoSandbox() {
		parts = append(parts, "set ROD_NO_SANDBOX=1 for Docker/CI")
	}
	if rt.BrowserBin == "" {
		parts = append(parts, "set ROD_BROWSER_BIN to use custom Chrome")
	}
	parts = append(parts, "run 'transcripts doctor' to check PDF prerequisites")
	return format(strings.Join(parts, "; "))
}

// ForTimeout is shown when PDF export runs out of time.
func ForTimeout() string {
	return format("for long transcripts with many images, use --timeout flag")
}

// ForConfigNotFound suggests --config, or creating the first user-level
// location among tried.
func ForConfigNotFound(tried []string) string {
	hint := "use --config /path/to/file.yaml"
	for _, p := range tried {
		if strings.Contains(slashPath(p), ".config/transcripts") {
			return format(hint + " or create " + p)
		}
	}
	return format(hint)
}

// slashPath normalizes Windows separators so user paths match on every OS.
func slashPath(p string) string {
	return strings.ReplaceAll(p, `\`, "/")
}

func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// ForStyleNotFound lists the built-in themes. No themes, no hint.
func ForStyleNotFound(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return format("available: " + strings.Join(available, ", "))
}

// ForTemplateAnchors lists the elements a custom skeleton must provide.
func ForTemplateAnchors() string {
	return format("custom templates need .preamble__guild-icon, #transcriptTitle, #guildname, #ticketname, #chatlog")
}

func ForMissingField() string {
	return format("every author needs id and username; attachments need url; embed fields need name")
}

func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}
