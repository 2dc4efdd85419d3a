package errors

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// palette styles the parts of a formatted error.
type palette struct {
	label    func(a ...any) string
	category func(a ...any) string
	message  func(a ...any) string
	usage    func(a ...any) string
	fix      func(a ...any) string
	bullet   func(a ...any) string
}

// colored follows fatih/color's own detection, so it degrades to plain text when
// stdout is not a terminal or NO_COLOR is set.
var colored = palette{
	label:    color.New(color.FgRed, color.Bold).SprintFunc(),
	category: color.New(color.FgYellow).SprintFunc(),
	message:  color.New(color.FgRed).SprintFunc(),
	usage:    color.New(color.FgCyan).SprintFunc(),
	fix:      color.New(color.FgGreen, color.Bold).SprintFunc(),
	bullet:   color.New(color.FgGreen).SprintFunc(),
}

var monochrome = palette{
	label:    fmt.Sprint,
	category: fmt.Sprint,
	message:  fmt.Sprint,
	usage:    fmt.Sprint,
	fix:      fmt.Sprint,
	bullet:   fmt.Sprint,
}

// FormatError renders a CLIError for the terminal: a headline with the category,
// the correct usage when known, then the remediation steps.
func FormatError(err *CLIError) string {
	return render(err, colored)
}

// FormatErrorPlain renders a CLIError without colors.
func FormatErrorPlain(err *CLIError) string {
	return render(err, monochrome)
}

func render(err *CLIError, p palette) string {
	if err == nil {
		return ""
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s [%s]: %s\n", p.label("Error"), p.category(err.Category.String()), p.message(err.Message))

	if err.Usage != "" {
		fmt.Fprintf(&sb, "\n%s %s\n", p.usage("Usage:"), p.usage(err.Usage))
	}

	if len(err.Remediation) > 0 {
		fmt.Fprintf(&sb, "\n%s\n", p.fix("To fix this:"))
		for _, step := range err.Remediation {
			fmt.Fprintf(&sb, "  %s %s\n", p.bullet("•"), step)
		}
	}
	return sb.String()
}

// FprintError writes err to w, without colors when plain is set.
func FprintError(w io.Writer, err *CLIError, plain bool) {
	if plain {
		fmt.Fprint(w, FormatErrorPlain(err))
		return
	}
	fmt.Fprint(w, FormatError(err))
}
