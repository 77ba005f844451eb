package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: transcripts <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  render     Render chat exports to HTML (and PDF)")
	fmt.Fprintln(w, "  doctor     Check assets and PDF export prerequisites")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'transcripts help <command>' for details on a specific command.")
}

// printRenderUsage prints usage for the render command.
func printRenderUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: transcripts render <input> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Render chat exports (.json, .yaml, .yml) to self-contained HTML.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  input    Export file or directory (optional if config has input.defaultDir)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <path>        Output file or directory")
	fmt.Fprintln(w, "  -c, --config <name>        Config file name or path")
	fmt.Fprintln(w, "  -w, --workers <n>          Parallel workers (0 = auto)")
	fmt.Fprintln(w, "  -t, --timeout <d>          PDF generation timeout (e.g., 30s, 2m)")
	fmt.Fprintln(w, "      --pdf                  Also write a PDF (requires Chrome)")
	fmt.Fprintln(w, "      --no-html              Skip the HTML file (with --pdf)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Transcript:")
	fmt.Fprintln(w, "      --timezone <tz>        IANA time zone for timestamps (default UTC)")
	fmt.Fprintln(w, "      --time-format <s>      Tokens: YYYY, MM, DD, HH, hh, h, mm, ss, A")
	fmt.Fprintln(w, "                             Presets: clock, short, iso, us")
	fmt.Fprintln(w, "                             Use [text] to escape literals")
	fmt.Fprintln(w, "      --include-bots         Render messages sent by bots")
	fmt.Fprintln(w, "      --strict-field-names   Format embed field names like values")
	fmt.Fprintln(w, "      --guild-icon <url>     Header icon when the export has none")
	fmt.Fprintln(w, "      --default-avatar <url> Avatar for authors without one")
	fmt.Fprintln(w, "      --highlight-style <s>  Code block highlighting style")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Styling:")
	fmt.Fprintln(w, "      --style <s>            Theme name (dark, light) or CSS file path")
	fmt.Fprintln(w, "      --template <s>         Skeleton name")
	fmt.Fprintln(w, "      --asset-path <dir>     Custom asset directory")
	fmt.Fprintln(w, "      --css <path>           Extra CSS appended after the theme")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Page (PDF):")
	fmt.Fprintln(w, "  -p, --page-size <s>        Page size: letter, a4, legal")
	fmt.Fprintln(w, "      --orientation <s>      Orientation: portrait, landscape")
	fmt.Fprintln(w, "      --margin <f>           Margin in inches (0.25-3.0)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Watermark (PDF):")
	fmt.Fprintln(w, "      --wm-text <s>          Watermark text")
	fmt.Fprintln(w, "      --wm-color <s>         Watermark color (hex)")
	fmt.Fprintln(w, "      --wm-opacity <f>       Watermark opacity (0.0-1.0)")
	fmt.Fprintln(w, "      --wm-angle <f>         Watermark angle in degrees")
	fmt.Fprintln(w, "      --no-watermark         Disable watermark")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet                Only show errors")
	fmt.Fprintln(w, "  -v, --verbose              Show detailed timing")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  TRANSCRIPTS_CONFIG, TRANSCRIPTS_STYLE, TRANSCRIPTS_TIMEOUT,")
	fmt.Fprintln(w, "  TRANSCRIPTS_INPUT_DIR, TRANSCRIPTS_OUTPUT_DIR, TRANSCRIPTS_TIMEZONE,")
	fmt.Fprintln(w, "  TRANSCRIPTS_PAGE_SIZE, TRANSCRIPTS_WATERMARK_TEXT, TRANSCRIPTS_WORKERS")
}

// runHelp prints help for a specific command and returns the exit code.
func runHelp(args []string, env *Environment) int {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return ExitSuccess
	}

	switch args[0] {
	case "render":
		printRenderUsage(env.Stdout)
	case "doctor":
		fmt.Fprintln(env.Stdout, "Usage: transcripts doctor [--json] [--asset-path DIR]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Render a sample transcript with the selected assets and check that")
		fmt.Fprintln(env.Stdout, "Chrome is available for PDF export.")
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: transcripts version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: transcripts help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "%v: %s\n", ErrUnknownCommand, args[0])
		printUsage(env.Stderr)
		return ExitUsage
	}
	return ExitSuccess
}
