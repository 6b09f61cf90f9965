// Package output writes the human-readable console lines of tinifycli.
package output

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/sagarc03/tinifycli"
)

// HumanFormatter writes progress, results and errors as text lines.
// It implements tinifycli.Reporter.
type HumanFormatter struct {
	w     io.Writer
	Quiet bool

	name    lipgloss.Style
	errTag  lipgloss.Style
	okTag   lipgloss.Style
	command lipgloss.Style
}

// NewFormatter returns a formatter writing to w. Colors are only used when w
// is a terminal that supports them. In quiet mode the per-file
// "Compressing" lines are left out.
func NewFormatter(w io.Writer, quiet bool) *HumanFormatter {
	r := lipgloss.NewRenderer(w)
	green := lipgloss.Color("2")
	red := lipgloss.Color("1")

	return &HumanFormatter{
		w:       w,
		Quiet:   quiet,
		name:    r.NewStyle().Foreground(green),
		errTag:  r.NewStyle().Foreground(red).Bold(true),
		okTag:   r.NewStyle().Foreground(green).Bold(true),
		command: r.NewStyle().Foreground(green),
	}
}

// Compressing announces that name is being uploaded.
func (f *HumanFormatter) Compressing(name string) {
	if f.Quiet {
		return
	}
	_, _ = fmt.Fprintf(f.w, "Compressing %s...\n", name)
}

// Compressed prints the output file, its size, the original size and the ratio.
func (f *HumanFormatter) Compressed(r tinifycli.Result) {
	_, _ = fmt.Fprintf(f.w, "Output: %s (%s bytes) original: %d bytes, ratio: %.2f%%\n",
		f.name.Render(r.OutputName),
		f.name.Render(fmt.Sprint(r.CompressedSize)),
		r.OriginalSize,
		r.Ratio(),
	)
}

// DownloadFailed reports a compressed copy that could not be fetched or
// written. Download failures name the output URL, write failures the image.
func (f *HumanFormatter) DownloadFailed(name string, err error) {
	var downloadErr *tinifycli.DownloadError
	if errors.As(err, &downloadErr) {
		_, _ = fmt.Fprintf(f.w, "Failed to download compressed image (%s): %v\n", downloadErr.URL, downloadErr.Err)
		return
	}
	_, _ = fmt.Fprintf(f.w, "Failed to download compressed image (%s): %v\n", name, err)
}

// FormatSummary prints the closing tally of a run. Nothing is printed when
// the run saw no images.
func (f *HumanFormatter) FormatSummary(s tinifycli.Summary) {
	if s.Total() == 0 {
		return
	}
	_, _ = fmt.Fprintf(f.w, "Done: %d compressed, %d skipped, %d failed, saved %s\n",
		s.Compressed, s.Skipped, s.Failed, formatSize(s.Saved()))
}

// FormatSaved confirms that key was saved to path.
func (f *HumanFormatter) FormatSaved(path, key string) {
	_, _ = fmt.Fprintf(f.w, "%s saved KEY %s to %s\n", f.okTag.Render("Ok:"), MaskSecret(key), path)
}

// FormatError prints err prefixed with "Error:".
func (f *HumanFormatter) FormatError(err error) {
	_, _ = fmt.Fprintf(f.w, "%s %v\n", f.errTag.Render("Error:"), err)
}

// FormatMissingKey prints the error for a run without any key, naming the
// commands that provide one.
func (f *HumanFormatter) FormatMissingKey(err error) {
	_, _ = fmt.Fprintf(f.w, "%s %v. Use %s or %s\n",
		f.errTag.Render("Error:"), err,
		f.command.Render("tinifycli set <KEY>"),
		f.command.Render("tinifycli <KEY>"),
	)
}

// FormatUsage prints the short usage help.
func (f *HumanFormatter) FormatUsage(configDir string) {
	_, _ = fmt.Fprintf(f.w, "%s compresses every image in the current directory.\n", f.command.Render("tinifycli"))
	_, _ = fmt.Fprintln(f.w, "Usage:")
	_, _ = fmt.Fprintf(f.w, "  tinifycli set <TINIFY KEY>    # save KEY to %s\n", configDir)
	_, _ = fmt.Fprintln(f.w, "  tinifycli <TINIFY KEY>        # use KEY for this run only")
	_, _ = fmt.Fprintln(f.w, "  tinifycli                     # use the saved KEY")
	_, _ = fmt.Fprintln(f.w, "  tinifycli -- <KEY>            # KEY starting with \"-\"")
}

// formatSize formats bytes as human-readable size.
func formatSize(bytes int64) string {
	const (
		KB = 1024
		MB = KB * 1024
		GB = MB * 1024
		TB = GB * 1024
	)

	neg := ""
	if bytes < 0 {
		neg = "-"
		bytes = -bytes
	}

	switch {
	case bytes >= TB:
		return fmt.Sprintf("%s%.1f TB", neg, float64(bytes)/TB)
	case bytes >= GB:
		return fmt.Sprintf("%s%.1f GB", neg, float64(bytes)/GB)
	case bytes >= MB:
		return fmt.Sprintf("%s%.1f MB", neg, float64(bytes)/MB)
	case bytes >= KB:
		return fmt.Sprintf("%s%.1f KB", neg, float64(bytes)/KB)
	default:
		return fmt.Sprintf("%s%d B", neg, bytes)
	}
}

// MaskSecret masks a secret string, showing only first 4 and last 4 characters.
// If the secret is too short, returns all asterisks.
func MaskSecret(secret string) string {
	if secret == "" {
		return "(not set)"
	}
	if len(secret) <= 8 {
		return "********"
	}
	return secret[:4] + "..." + secret[len(secret)-4:]
}
