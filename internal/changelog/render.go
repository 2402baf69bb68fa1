package changelog

import (
	"fmt"
	"io"
	"iter"
	"strings"
)

// RenderMarkdown writes grouped entries as a markdown document, one section
// per group and one bullet per entry.
//
// The function is idempotent - given the same input, it produces identical output.
func RenderMarkdown(groups iter.Seq[Group], w io.Writer) error {
	if _, err := io.WriteString(w, "# What's new\n"); err != nil {
		return fmt.Errorf("rendering header: %w", err)
	}

	for g := range groups {
		if err := renderGroup(g, w); err != nil {
			return fmt.Errorf("rendering group %s: %w", g.Key, err)
		}
	}

	return nil
}

// RenderMarkdownString is a convenience function that renders to a string.
func RenderMarkdownString(groups iter.Seq[Group]) (string, error) {
	var b strings.Builder
	if err := RenderMarkdown(groups, &b); err != nil {
		return "", err
	}
	return b.String(), nil
}

// renderGroup writes a single group section with its entries.
func renderGroup(g Group, w io.Writer) error {
	header := "\n## " + g.Label
	if date := groupDate(g); date != "" && date != g.Label {
		header += " - " + date
	}
	if _, err := io.WriteString(w, header+"\n\n"); err != nil {
		return err
	}

	for _, e := range g.Entries {
		if err := renderEntry(e, w); err != nil {
			return err
		}
	}

	return nil
}

// renderEntry writes one bullet, with the description and doc link nested.
func renderEntry(e Entry, w io.Writer) error {
	line := fmt.Sprintf("- **%s**: %s\n", e.Type.Label(), e.Title)
	if e.Description != "" {
		line += "  " + e.Description + "\n"
	}
	for _, d := range e.Details {
		line += "  - " + d + "\n"
	}
	if e.DocLink != "" {
		title := e.DocTitle
		if title == "" {
			title = e.DocLink
		}
		line += fmt.Sprintf("  [%s](%s)\n", title, e.DocLink)
	}
	_, err := io.WriteString(w, line)
	return err
}
