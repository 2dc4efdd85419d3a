package changelog

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ariel-frischer/changelogtxt/internal/fsutil"
)

// Dump writes the changelog in CHANGELOG.txt layout.
//
// Each section is its header line (omitted for the unreleased section) followed by one
// "- " line per change. Sections are separated by a single blank line and the document
// ends with exactly one newline. An empty unreleased section produces no output, and a
// changelog with nothing to write produces an empty document.
//
// The function is idempotent - given the same input, it produces identical output.
func Dump(c *Changelog, w io.Writer) error {
	_, err := io.WriteString(w, DumpString(c))
	return err
}

// DumpString is a convenience function that renders to a string.
func DumpString(c *Changelog) string {
	sections := make([]string, 0, len(c.Entries))
	for _, e := range c.Entries {
		if e.IsUnreleased() && len(e.Changes) == 0 {
			continue
		}
		sections = append(sections, renderSection(e))
	}
	if len(sections) == 0 {
		return ""
	}
	return strings.Join(sections, "\n\n") + "\n"
}

// renderSection renders one entry without a trailing newline.
func renderSection(e VersionEntry) string {
	lines := make([]string, 0, len(e.Changes)+1)
	if !e.IsUnreleased() {
		lines = append(lines, e.Version)
	}
	for _, change := range e.Changes {
		lines = append(lines, "- "+change)
	}
	return strings.Join(lines, "\n")
}

// Save writes the changelog to path, creating parent directories as needed.
func Save(c *Changelog, path string) (err error) {
	resolved, err := fsutil.ResolvePath(path, true)
	if err != nil {
		return err
	}

	f, err := os.Create(resolved)
	if err != nil {
		return fmt.Errorf("creating changelog file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing changelog file: %w", cerr)
		}
	}()

	bw := bufio.NewWriter(f)
	if err := Dump(c, bw); err != nil {
		return fmt.Errorf("writing changelog file: %w", err)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("writing changelog file: %w", err)
	}
	return nil
}
