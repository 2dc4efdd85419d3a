package changelog

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/term"
)

var (
	headerStyle     = color.New(color.Bold)
	unreleasedStyle = color.New(color.FgYellow, color.Bold)
	bulletStyle     = color.New(color.FgGreen)
	sourceStyle     = color.New(color.FgRed)
	targetStyle     = color.New(color.FgGreen)
)

// FormatOptions controls the terminal output formatting.
type FormatOptions struct {
	Plain           bool   // Disable colors
	MaxWidth        int    // Maximum line width (0 = auto-detect)
	UnreleasedLabel string // Header shown for the unreleased section (default "Unreleased")
}

func (o FormatOptions) label() string {
	if o.UnreleasedLabel == "" {
		return DefaultUnreleasedLabel
	}
	return o.UnreleasedLabel
}

// FormatTerminal writes every non-empty section with terminal styling. Sections are
// separated by a blank line and long changes are wrapped to the terminal width.
func FormatTerminal(entries []VersionEntry, w io.Writer, opts FormatOptions) error {
	width := resolveWidth(opts.MaxWidth)

	first := true
	for _, e := range entries {
		if e.IsUnreleased() && len(e.Changes) == 0 {
			continue
		}
		if !first {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		first = false

		if err := formatEntry(e, w, opts, width); err != nil {
			return fmt.Errorf("formatting version %s: %w", e.Label(opts.label()), err)
		}
	}
	return nil
}

// FormatEntry writes a single section to the writer.
func FormatEntry(e VersionEntry, w io.Writer, opts FormatOptions) error {
	return formatEntry(e, w, opts, resolveWidth(opts.MaxWidth))
}

func formatEntry(e VersionEntry, w io.Writer, opts FormatOptions, width int) error {
	if err := writeHeader(e, w, opts); err != nil {
		return err
	}
	if len(e.Changes) == 0 {
		_, err := fmt.Fprintln(w, "  (no changes)")
		return err
	}
	for _, change := range e.Changes {
		if err := writeChange(change, w, opts, width); err != nil {
			return err
		}
	}
	return nil
}

// FormatDifference writes a comparison result, marking source-only sections with "-"
// and target-only sections with "+".
func FormatDifference(d Difference, w io.Writer, opts FormatOptions) error {
	if d.Empty() {
		_, err := fmt.Fprintln(w, "No differences found.")
		return err
	}

	sides := []struct {
		marker  string
		style   *color.Color
		entries []VersionEntry
	}{
		{"-", sourceStyle, d.OnlyInSource},
		{"+", targetStyle, d.OnlyInTarget},
	}
	for _, side := range sides {
		for _, e := range side.entries {
			line := fmt.Sprintf("%s %s (%d changes)", side.marker, e.Label(opts.label()), len(e.Changes))
			if !opts.Plain {
				line = side.style.Sprint(line)
			}
			if _, err := fmt.Fprintln(w, line); err != nil {
				return err
			}
			for _, change := range e.Changes {
				if _, err := fmt.Fprintf(w, "    %s\n", truncateText(change, 72)); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// writeHeader writes the version header line.
func writeHeader(e VersionEntry, w io.Writer, opts FormatOptions) error {
	header := e.Label(opts.label())

	if opts.Plain {
		_, err := fmt.Fprintf(w, "## %s\n", header)
		return err
	}

	style := headerStyle
	if e.IsUnreleased() {
		style = unreleasedStyle
	}
	_, err := fmt.Fprintf(w, "## %s\n", style.Sprint(header))
	return err
}

// writeChange writes a single change with optional wrapping.
func writeChange(change string, w io.Writer, opts FormatOptions, width int) error {
	prefix := "  - "

	if opts.Plain {
		_, err := fmt.Fprintf(w, "%s%s\n", prefix, change)
		return err
	}

	wrapped := wrapText(change, width-len(prefix), "    ")
	_, err := fmt.Fprintf(w, "  %s %s\n", bulletStyle.Sprint("-"), wrapped)
	return err
}

// resolveWidth determines the terminal width to use.
func resolveWidth(maxWidth int) int {
	if maxWidth > 0 {
		return maxWidth
	}
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	return 80
}

// wrapText wraps text to fit within maxWidth, using indent for continuation lines.
func wrapText(text string, maxWidth int, indent string) string {
	if maxWidth <= 0 || len(text) <= maxWidth {
		return text
	}

	var lines []string
	remaining := text

	for len(remaining) > maxWidth {
		// Find the last space within maxWidth
		breakPoint := maxWidth
		for i := maxWidth - 1; i > 0; i-- {
			if remaining[i] == ' ' {
				breakPoint = i
				break
			}
		}

		lines = append(lines, remaining[:breakPoint])
		remaining = strings.TrimLeft(remaining[breakPoint:], " ")
	}

	if len(remaining) > 0 {
		lines = append(lines, remaining)
	}

	return strings.Join(lines, "\n"+indent)
}

// FormatEntrySummary returns a brief one-line summary of a section.
func FormatEntrySummary(e VersionEntry, opts FormatOptions) string {
	summary := fmt.Sprintf("%s: %d changes", e.Label(opts.label()), len(e.Changes))
	if len(e.Changes) > 0 {
		summary += " (latest: " + truncateText(e.Changes[0], 40) + ")"
	}
	if opts.Plain {
		return summary
	}
	return headerStyle.Sprint(summary)
}

// truncateText truncates text to maxLen, adding ellipsis if needed.
func truncateText(text string, maxLen int) string {
	if len(text) <= maxLen {
		return text
	}
	return text[:maxLen-3] + "..."
}
