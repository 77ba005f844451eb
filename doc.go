// Package transcripts renders chat message history into a single,
// self-contained HTML document, with optional PDF export.
//
// # Quick Start
//
// The pure entry point takes messages and a skeleton document:
//
//	out, err := transcripts.RenderTranscript(messages, skeleton, transcripts.Channel{
//	    Name:      "support-1234",
//	    GuildName: "Example Guild",
//	})
//
// For repeated use, create a Renderer once. It loads the skeleton and theme
// from the embedded assets (or a custom directory) and can export PDF:
//
//	r, err := transcripts.NewRenderer(transcripts.WithStyle("light"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer r.Close()
//
//	result, err := r.Render(ctx, transcripts.Input{
//	    Messages: messages,
//	    Channel:  channel,
//	})
//	os.WriteFile("transcript.html", result.HTML, 0644)
//
// # Rendering Pipeline
//
//  1. Messages are stably sorted by creation time.
//  2. The skeleton is parsed and its anchors located (guild icon, title,
//     guild name, channel name, chat log).
//  3. Each message becomes one chatlog__message-group element: reply
//     preview, author block, bot tag, timestamp, formatted content,
//     attachments by media kind, then embeds.
//  4. Theme, code highlighting and caller CSS are injected as one <style>.
//  5. The document is serialized; with Input.PDF set it is also printed to
//     PDF through headless Chrome (go-rod).
//
// Rendering never mutates the input and parses the skeleton fresh on every
// call, so a Renderer is safe for sequential reuse. The HTML stage does not
// block; PDF export holds a browser and should be pooled for batch work
// (see RendererPool).
//
// # Message Text
//
// Message content, embed descriptions and field values go through a
// constrained formatter: bold, underline, italic, strike, spoiler, inline
// code and fenced code blocks. Everything else is escaped and shown
// literally. See internal/markup for the exact emphasis order.
//
// # Browser Requirements
//
// PDF generation requires Chrome/Chromium. The go-rod library downloads a
// managed Chromium instance on first run (~/.cache/rod/browser/). Use
// ROD_BROWSER_BIN to point at a custom binary; set CI=true or
// ROD_BROWSER_BIN to run without the Chrome sandbox.
package transcripts
