package changelog

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ariel-frischer/changelogtxt/internal/fsutil"
	"github.com/ariel-frischer/changelogtxt/internal/version"
)

// maxLineSize bounds a single CHANGELOG.txt line.
const maxLineSize = 1024 * 1024

// FormatError reports text that does not follow the CHANGELOG.txt layout.
type FormatError struct {
	Line    int
	Message string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("invalid changelog format at line %d: %s", e.Line, e.Message)
}

// IsFormatError returns true if the error is a FormatError.
func IsFormatError(err error) bool {
	var fe *FormatError
	return errors.As(err, &fe)
}

// ParseOption configures Parse and Load.
type ParseOption func(*parseOptions)

type parseOptions struct {
	strictContinuation bool
}

// WithStrictContinuation rejects a non-bullet line when the current section has no
// change to continue. By default such a line starts a new change.
func WithStrictContinuation() ParseOption {
	return func(o *parseOptions) {
		o.strictContinuation = true
	}
}

// Load resolves path, reads it and parses the changelog it contains.
func Load(path string, opts ...ParseOption) (*Changelog, error) {
	resolved, err := fsutil.ResolvePath(path, false)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(resolved)
	if err != nil {
		return nil, fmt.Errorf("opening changelog file: %w", err)
	}
	defer f.Close()

	return Parse(f, opts...)
}

// ParseString parses changelog text held in memory.
func ParseString(text string, opts ...ParseOption) (*Changelog, error) {
	return Parse(strings.NewReader(text), opts...)
}

// Parse reads a CHANGELOG.txt from r.
//
// Blank lines are ignored. A line recognized as a version starts a new section, a line
// starting with "-" adds a change to the current section, and any other line continues
// the previous change. Line numbers in errors are 1-based.
func Parse(r io.Reader, opts ...ParseOption) (*Changelog, error) {
	var o parseOptions
	for _, opt := range opts {
		opt(&o)
	}

	c := New()
	cur := 0

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		raw := scanner.Text()
		if lineNo == 1 {
			raw = strings.TrimPrefix(raw, "\ufeff")
		}
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		switch {
		case version.IsVersion(line):
			c.Entries = append(c.Entries, VersionEntry{Version: line})
			cur = len(c.Entries) - 1

		case strings.HasPrefix(line, "-"):
			change := strings.TrimSpace(strings.TrimLeft(line, "-"))
			if change == "" {
				return nil, &FormatError{Line: lineNo, Message: "Expected content after '-'"}
			}
			c.Entries[cur].Changes = append(c.Entries[cur].Changes, change)

		case len(c.Entries[cur].Changes) > 0:
			changes := c.Entries[cur].Changes
			changes[len(changes)-1] += " " + line

		case o.strictContinuation:
			return nil, &FormatError{Line: lineNo, Message: "Expected '-' and then text content"}

		default:
			c.Entries[cur].Changes = append(c.Entries[cur].Changes, line)
		}
	}
	if err := scanner.Err(); err != nil {
		if errors.Is(err, bufio.ErrTooLong) {
			return nil, &FormatError{
				Line:    lineNo + 1,
				Message: fmt.Sprintf("line longer than %d bytes", maxLineSize),
			}
		}
		return nil, fmt.Errorf("reading changelog: %w", err)
	}

	return c, nil
}
