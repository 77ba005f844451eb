package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/go-rod/rod/lib/launcher"
	flag "github.com/spf13/pflag"

	transcripts "github.com/szymon-off/discord-html-transcripts"
	"github.com/szymon-off/discord-html-transcripts/internal/assets"
	"github.com/szymon-off/discord-html-transcripts/internal/hints"
)

// Doctor statuses.
const (
	statusReady    = "ready"
	statusWarnings = "warnings"
	statusErrors   = "errors"
)

// doctorResult is printed as text or, with --json, encoded as is.
type doctorResult struct {
	Status   string     `json:"status"`
	Assets   assetsInfo `json:"assets"`
	Chrome   chromeInfo `json:"chrome"`
	Env      envInfo    `json:"environment"`
	System   systemInfo `json:"system"`
	Warnings []string   `json:"warnings,omitempty"`
	Errors   []string   `json:"errors,omitempty"`
}

// assetsInfo reports whether HTML output works with the selected assets.
type assetsInfo struct {
	Styles       []string `json:"styles"`
	AssetPath    string   `json:"asset_path,omitempty"`
	SampleRender bool     `json:"sample_render"`
}

type chromeInfo struct {
	Found   bool   `json:"found"`
	Path    string `json:"path,omitempty"`
	Version string `json:"version,omitempty"`
	Sandbox bool   `json:"sandbox"`
}

type envInfo struct {
	OS            string `json:"os"`
	Arch          string `json:"arch"`
	Container     bool   `json:"container"`
	ContainerHint string `json:"container_hint,omitempty"`
	CI            bool   `json:"ci"`
	NoSandbox     bool   `json:"rod_no_sandbox"`
	BrowserBin    string `json:"rod_browser_bin,omitempty"`
}

type systemInfo struct {
	TempWritable bool `json:"temp_writable"`
}

// doctorSample is rendered to prove the skeleton and theme load.
var doctorSample = []transcripts.Message{{
	ID:        "1",
	CreatedAt: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
	Author:    &transcripts.User{ID: "1", Username: "doctor"},
	Content:   "**ok**",
}}

// runDoctorCmd checks HTML and PDF prerequisites and returns an exit code.
// Missing Chrome only breaks --pdf, but is still reported as an error.
func runDoctorCmd(args []string, env *Environment) int {
	fs := flag.NewFlagSet("doctor", flag.ContinueOnError)
	fs.SetOutput(env.Stderr)
	jsonOutput := fs.Bool("json", false, "print results as JSON")
	assetPath := fs.String("asset-path", "", "custom asset directory to check")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return ExitSuccess
		}
		return ExitUsage
	}

	result := runDoctor(*assetPath, hints.DetectRuntime())

	if *jsonOutput {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(result)
	} else {
		printDoctorResult(env.Stdout, result)
	}

	if result.Status == statusErrors {
		return ExitGeneral
	}
	return ExitSuccess
}

func runDoctor(assetPath string, rt hints.Runtime) *doctorResult {
	result := &doctorResult{
		Status: statusReady,
		Env: envInfo{
			OS:         runtime.GOOS,
			Arch:       runtime.GOARCH,
			NoSandbox:  rt.NoSandbox,
			BrowserBin: rt.BrowserBin,
		},
	}

	checkAssets(result, assetPath)
	checkChrome(result)
	checkEnvironment(result, rt)
	checkSystem(result)

	switch {
	case len(result.Errors) > 0:
		result.Status = statusErrors
	case len(result.Warnings) > 0:
		result.Status = statusWarnings
	}

	return result
}

// checkAssets renders a one-message transcript with the default theme and
// skeleton, read from assetPath when set.
func checkAssets(result *doctorResult, assetPath string) {
	result.Assets.Styles = assets.BuiltinStyles()
	result.Assets.AssetPath = assetPath

	r, err := transcripts.NewRenderer(transcripts.WithAssetPath(assetPath))
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Loading assets: %v", err))
		return
	}
	defer func() { _ = r.Close() }()

	_, err = r.Render(context.Background(), transcripts.Input{
		Messages: doctorSample,
		Channel:  transcripts.Channel{Name: "doctor"},
	})
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Sample render failed: %v", err))
		return
	}
	result.Assets.SampleRender = true
}

// checkChrome locates Chrome through ROD_BROWSER_BIN or rod's launcher.
func checkChrome(result *doctorResult) {
	chromePath := result.Env.BrowserBin
	if chromePath == "" {
		var found bool
		if chromePath, found = launcher.LookPath(); !found {
			result.Errors = append(result.Errors,
				"Chrome/Chromium not found: PDF export unavailable. Install Chrome or set ROD_BROWSER_BIN")
			return
		}
	}

	if _, err := os.Stat(chromePath); err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Chrome not found at %s", chromePath))
		return
	}

	result.Chrome.Found = true
	result.Chrome.Path = chromePath
	result.Chrome.Sandbox = !result.Env.NoSandbox

	out, err := exec.Command(chromePath, "--version").Output() // #nosec G204 -- browser path from env or launcher
	if err != nil {
		result.Warnings = append(result.Warnings, fmt.Sprintf("Could not get Chrome version: %v", err))
		return
	}
	result.Chrome.Version = strings.TrimSpace(string(out))
}

// checkEnvironment records the detected runtime and warns when Chrome
// will need its sandbox disabled.
func checkEnvironment(result *doctorResult, rt hints.Runtime) {
	result.Env.Container = rt.Container
	result.Env.ContainerHint = rt.ContainerHint
	result.Env.CI = rt.CI

	if rt.NeedsNoSandbox() {
		result.Warnings = append(result.Warnings,
			"Container/CI detected but ROD_NO_SANDBOX not set. Set ROD_NO_SANDBOX=1")
	}
}

// checkSystem verifies the temp directory used to stage PDF pages is writable.
func checkSystem(result *doctorResult) {
	probe := filepath.Join(os.TempDir(), "transcripts-doctor-probe")
	if err := os.WriteFile(probe, nil, 0o600); err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Temp directory not writable: %s", os.TempDir()))
		return
	}
	_ = os.Remove(probe)
	result.System.TempWritable = true
}

func printDoctorResult(w io.Writer, r *doctorResult) {
	ok := func(format string, a ...any) { fmt.Fprintf(w, "  [OK] "+format+"\n", a...) }

	fmt.Fprintln(w, "transcripts doctor")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Assets (HTML output)")
	if r.Assets.AssetPath != "" {
		ok("Asset path: %s", r.Assets.AssetPath)
	}
	if len(r.Assets.Styles) > 0 {
		ok("Built-in styles: %s", strings.Join(r.Assets.Styles, ", "))
	}
	if r.Assets.SampleRender {
		ok("Sample transcript rendered")
	} else {
		fmt.Fprintln(w, "  [ERROR] Sample transcript failed")
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Chrome/Chromium (PDF export)")
	switch {
	case !r.Chrome.Found:
		fmt.Fprintln(w, "  [ERROR] Not found")
	default:
		ok("Found at %s", r.Chrome.Path)
		if r.Chrome.Version != "" {
			ok("Version: %s", r.Chrome.Version)
		}
		if r.Chrome.Sandbox {
			ok("Sandbox: enabled")
		} else {
			ok("Sandbox: disabled (ROD_NO_SANDBOX=1)")
		}
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Environment")
	ok("Platform: %s/%s", r.Env.OS, r.Env.Arch)
	if r.Env.Container {
		ok("Container: detected (%s)", r.Env.ContainerHint)
	}
	if r.Env.CI {
		ok("CI: detected")
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "System")
	if r.System.TempWritable {
		ok("Temp directory: writable")
	} else {
		fmt.Fprintln(w, "  [ERROR] Temp directory: not writable")
	}
	fmt.Fprintln(w)

	for _, warn := range r.Warnings {
		fmt.Fprintf(w, "  [WARN] %s\n", warn)
	}
	for _, e := range r.Errors {
		fmt.Fprintf(w, "  [ERROR] %s\n", e)
	}
	if len(r.Warnings)+len(r.Errors) > 0 {
		fmt.Fprintln(w)
	}

	switch {
	case r.Status == statusReady:
		fmt.Fprintln(w, "Status: Ready for HTML and PDF output")
	case r.Status == statusWarnings:
		fmt.Fprintln(w, "Status: Ready with warnings")
	case r.Assets.SampleRender:
		fmt.Fprintln(w, "Status: HTML output only (see errors above)")
	default:
		fmt.Fprintln(w, "Status: Not ready (see errors above)")
	}
}
