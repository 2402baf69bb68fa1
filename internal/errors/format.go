package errors

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// style paints one part of a formatted error.
type style func(a ...any) string

// palette holds the styles used by Format. The plain palette leaves text as is.
type palette struct {
	label, message, category, usage, usageText, fix, bullet style
}

var (
	colored = palette{
		label:     color.New(color.FgRed, color.Bold).SprintFunc(),
		message:   color.New(color.FgRed).SprintFunc(),
		category:  color.New(color.FgYellow).SprintFunc(),
		usage:     color.New(color.FgCyan, color.Bold).SprintFunc(),
		usageText: color.New(color.FgCyan).SprintFunc(),
		fix:       color.New(color.FgGreen, color.Bold).SprintFunc(),
		bullet:    color.New(color.FgGreen).SprintFunc(),
	}
	plain = palette{
		label: fmt.Sprint, message: fmt.Sprint, category: fmt.Sprint,
		usage: fmt.Sprint, usageText: fmt.Sprint, fix: fmt.Sprint, bullet: fmt.Sprint,
	}
)

// Format renders err as the multi-line block printed on stderr:
//
//	Error [Argument Error]: invalid grouping: week
//
//	Usage: whatsnew list --by version|date
//
//	To fix this:
//	  • Group by version (default) or by release date
func Format(err *CLIError, useColors bool) string {
	if err == nil {
		return ""
	}
	p := plain
	if useColors {
		p = colored
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s [%s]: %s\n", p.label("Error"), p.category(err.Category.String()), p.message(err.Message))

	if err.Usage != "" {
		fmt.Fprintf(&sb, "\n%s%s\n", p.usage("Usage: "), p.usageText(err.Usage))
	}

	if len(err.Remediation) > 0 {
		fmt.Fprintf(&sb, "\n%s\n", p.fix("To fix this:"))
		for _, step := range err.Remediation {
			fmt.Fprintf(&sb, "  %s %s\n", p.bullet("•"), step)
		}
	}
	return sb.String()
}

// Fprint writes err to w. Errors that are not CLIErrors are shown as
// runtime errors.
func Fprint(w io.Writer, err error, useColors bool) {
	if err == nil {
		return
	}
	cliErr := AsCLIError(err)
	if cliErr == nil {
		cliErr = &CLIError{Category: Runtime, Message: err.Error(), Err: err}
	}
	fmt.Fprint(w, Format(cliErr, useColors))
}
