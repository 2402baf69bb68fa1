package changelog

import (
	"fmt"
	"io"
	"iter"
	"os"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// FormatOptions controls the terminal output formatting.
type FormatOptions struct {
	Plain    bool // Disable colors and glyphs
	MaxWidth int  // Maximum line width (0 = auto-detect)
	// IsUnread marks entries the reader has not acknowledged yet.
	// When nil, no entry is marked.
	IsUnread func(Entry) bool
	// Details includes each entry's description, details and doc link.
	Details bool
}

// FormatGroups writes grouped entries to the writer with terminal styling.
func FormatGroups(groups iter.Seq[Group], w io.Writer, opts FormatOptions) error {
	width := resolveWidth(opts.MaxWidth)

	first := true
	for g := range groups {
		if err := formatGroup(g, w, opts, width, !first); err != nil {
			return fmt.Errorf("formatting group %s: %w", g.Key, err)
		}
		first = false
	}

	return nil
}

// formatGroup writes a single group with its entries in source order.
func formatGroup(g Group, w io.Writer, opts FormatOptions, width int, addSeparator bool) error {
	if addSeparator {
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}

	if err := writeGroupHeader(g, w, opts); err != nil {
		return err
	}

	for _, e := range g.Entries {
		if err := writeEntry(e, w, opts, width); err != nil {
			return err
		}
	}

	return nil
}

// writeGroupHeader writes the group header line.
func writeGroupHeader(g Group, w io.Writer, opts FormatOptions) error {
	header := g.Label
	if date := groupDate(g); date != "" && date != g.Label {
		header = fmt.Sprintf("%s (%s)", header, date)
	}
	if g.Malformed {
		header += " [unversioned]"
	}

	if opts.Plain {
		_, err := fmt.Fprintf(w, "## %s\n", header)
		return err
	}

	bold := color.New(color.Bold).SprintFunc()
	_, err := fmt.Fprintf(w, "## %s\n", bold(header))
	return err
}

// groupDate returns the date shared by the group's first entry.
func groupDate(g Group) string {
	if len(g.Entries) == 0 {
		return ""
	}
	return g.Entries[0].Date
}

// writeEntry writes a single entry with optional wrapping.
func writeEntry(e Entry, w io.Writer, opts FormatOptions, width int) error {
	unread := opts.IsUnread != nil && opts.IsUnread(e)

	if opts.Plain {
		marker := " "
		if unread {
			marker = "*"
		}
		if _, err := fmt.Fprintf(w, "%s [%s] %s\n", marker, e.Type, e.Title); err != nil {
			return err
		}
		return writeEntryDetails(e, w, opts, width)
	}

	style := StyleFor(e.Type)
	colored := style.Color.SprintFunc()
	prefix := "  "
	if unread {
		prefix = color.New(color.FgCyan, color.Bold).Sprint("● ")
	}

	title := wrapText(e.Title, width-4, "    ")
	if _, err := fmt.Fprintf(w, "%s%s %s\n", prefix, colored(GlyphFor(e)), title); err != nil {
		return err
	}
	return writeEntryDetails(e, w, opts, width)
}

// writeEntryDetails writes description, detail bullets and the doc link.
func writeEntryDetails(e Entry, w io.Writer, opts FormatOptions, width int) error {
	if !opts.Details {
		return nil
	}

	dim := fmt.Sprint
	if !opts.Plain {
		dim = color.New(color.Faint).Sprint
	}

	if e.Description != "" {
		if _, err := fmt.Fprintf(w, "    %s\n", dim(wrapText(e.Description, width-4, "    "))); err != nil {
			return err
		}
	}
	for _, d := range e.Details {
		if _, err := fmt.Fprintf(w, "    - %s\n", wrapText(d, width-6, "      ")); err != nil {
			return err
		}
	}
	if e.DocLink != "" {
		label := e.DocTitle
		if label == "" {
			label = "Documentation"
		}
		if _, err := fmt.Fprintf(w, "    %s: %s\n", label, e.DocLink); err != nil {
			return err
		}
	}
	return nil
}

// FormatEntrySummary returns a brief one-line summary of an entry.
func FormatEntrySummary(e Entry, opts FormatOptions) string {
	text := truncateText(e.Title, 60)

	if opts.Plain {
		return fmt.Sprintf("[%s] %s", e.Type, text)
	}

	colored := StyleFor(e.Type).Color.SprintFunc()
	return fmt.Sprintf("%s %s", colored(GlyphFor(e)), text)
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

// truncateText truncates text to maxLen, adding ellipsis if needed.
func truncateText(text string, maxLen int) string {
	if len(text) <= maxLen {
		return text
	}
	return text[:maxLen-3] + "..."
}
