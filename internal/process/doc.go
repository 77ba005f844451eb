// Package process terminates the browser process trees started for PDF
// export, so Chrome helpers never outlive the renderer that launched them.
package process
