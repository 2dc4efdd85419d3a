package changelog

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/ariel-frischer/changelogtxt/internal/version"
)

// ValidationError represents a rejected request with context.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return e.Message
}

// IsValidationError returns true if the error is a ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// OverwriteError is returned when Update targets an existing release without force.
type OverwriteError struct {
	Version string
}

func (e *OverwriteError) Error() string {
	return fmt.Sprintf("cannot overwrite an existing version %s (use force to add to it)", e.Version)
}

// IsOverwriteError returns true if the error is an OverwriteError.
func IsOverwriteError(err error) bool {
	var oe *OverwriteError
	return errors.As(err, &oe)
}

// IsUnreleasedTag reports whether tag refers to the unreleased section: it is empty or
// spells "unreleased" in any case, with or without a "v" prefix.
func IsUnreleasedTag(tag string) bool {
	t := strings.TrimPrefix(strings.TrimSpace(tag), "v")
	return t == "" || strings.EqualFold(t, "unreleased")
}

// Unreleased returns the unreleased section.
func (c *Changelog) Unreleased() VersionEntry {
	if len(c.Entries) == 0 || !c.Entries[0].IsUnreleased() {
		return VersionEntry{Version: Unreleased}
	}
	return c.Entries[0]
}

// Releases returns every entry except the unreleased section, in document order.
func (c *Changelog) Releases() []VersionEntry {
	var out []VersionEntry
	for _, e := range c.Entries {
		if !e.IsUnreleased() {
			out = append(out, e)
		}
	}
	return out
}

// ListVersions returns the header text of every release, in document order.
func (c *Changelog) ListVersions() []string {
	var versions []string
	for _, e := range c.Entries {
		if !e.IsUnreleased() {
			versions = append(versions, e.Version)
		}
	}
	return versions
}

// ChangeCount returns the total number of changes across all sections.
func (c *Changelog) ChangeCount() int {
	n := 0
	for _, e := range c.Entries {
		n += len(e.Changes)
	}
	return n
}

// Find returns the index of the first release whose version equals v, or -1.
// Duplicate headers are kept as separate entries; only the first is matched.
func (c *Changelog) Find(v version.Version) int {
	for i, e := range c.Entries {
		if e.IsUnreleased() {
			continue
		}
		if ev, ok := version.Parse(e.Version); ok && ev.Equal(v) {
			return i
		}
	}
	return -1
}

// Get looks up a section by tag. "unreleased" (or an empty tag) selects the
// unreleased section; anything else must be a recognizable version.
func (c *Changelog) Get(tag string) (VersionEntry, error) {
	if IsUnreleasedTag(tag) {
		return c.Unreleased(), nil
	}
	return c.CheckTag(tag)
}

// CheckTag returns the release matching tag. Tags are compared as versions, so "1.0.0"
// finds a "v1.0.0" header.
func (c *Changelog) CheckTag(tag string) (VersionEntry, error) {
	v, ok := version.Parse(tag)
	if !ok {
		return VersionEntry{}, poorlyFormatted(tag)
	}
	header, v := headerVersion(v)
	idx := c.Find(v)
	if idx < 0 {
		return VersionEntry{}, &ValidationError{
			Message: fmt.Sprintf("tag '%s' not found in changelog", header),
		}
	}
	return c.Entries[idx], nil
}

// Update returns a copy of the changelog with message recorded under tag. The receiver is
// not modified.
//
//   - An unreleased tag prepends message to the unreleased section; message is required.
//   - An existing release is only touched when force is set, and then message is prepended.
//   - A new release is inserted right after the unreleased section. It takes message
//     followed by every unreleased change, and the unreleased section is emptied.
func (c *Changelog) Update(tag, message string, force bool) (*Changelog, error) {
	message = normalizeChange(message)
	out := c.Clone()
	out.ensureUnreleased()

	if IsUnreleasedTag(tag) {
		if message == "" {
			return nil, &ValidationError{Field: "message", Message: "message must not be empty"}
		}
		out.Entries[0].Changes = prepend(message, out.Entries[0].Changes)
		return out, nil
	}

	v, ok := version.Parse(tag)
	if !ok {
		return nil, poorlyFormatted(tag)
	}
	header, v := headerVersion(v)

	if idx := out.Find(v); idx >= 0 {
		if !force {
			return nil, &OverwriteError{Version: out.Entries[idx].Version}
		}
		if message != "" {
			out.Entries[idx].Changes = prepend(message, out.Entries[idx].Changes)
		}
		return out, nil
	}

	var changes []string
	if message != "" {
		changes = append(changes, message)
	}
	changes = append(changes, out.Entries[0].Changes...)
	out.Entries[0].Changes = nil

	entry := VersionEntry{Version: header, Changes: changes}
	out.Entries = slices.Insert(out.Entries, 1, entry)
	return out, nil
}

// headerVersion renders v the way it is written as a header, with a lowercase "v"
// prefix, and returns the version that header parses back to. Lookups use the latter so
// "V1.0" and "v1.0" find the same section.
func headerVersion(v version.Version) (string, version.Version) {
	text := v.Original()
	if strings.HasPrefix(text, "v") || strings.HasPrefix(text, "V") {
		text = text[1:]
	}
	header := "v" + text
	if hv, ok := version.Parse(header); ok {
		return header, hv
	}
	return header, v
}

func poorlyFormatted(tag string) error {
	return &ValidationError{
		Field:   "version",
		Message: fmt.Sprintf("poorly formatted version value %q", tag),
	}
}

// prepend returns a new slice with s in front of list.
func prepend(s string, list []string) []string {
	out := make([]string, 0, len(list)+1)
	out = append(out, s)
	return append(out, list...)
}

// normalizeChange folds a multi-line message into one line, the same way Parse joins
// continuation lines.
func normalizeChange(message string) string {
	var parts []string
	for _, line := range strings.Split(message, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			parts = append(parts, line)
		}
	}
	return strings.Join(parts, " ")
}
