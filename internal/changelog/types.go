package changelog

import "slices"

// Unreleased is the sentinel version of the implicit section that collects
// changes not yet assigned to a version. It is never written as a header.
const Unreleased = ""

// DefaultUnreleasedLabel is how the unreleased section is shown to users.
const DefaultUnreleasedLabel = "Unreleased"

// Changelog is a parsed CHANGELOG.txt. Entries are in document order and the first
// entry is always the unreleased section.
type Changelog struct {
	Entries []VersionEntry `json:"entries" yaml:"entries"`
}

// VersionEntry is one section of a changelog: a version header and its changes.
// Version holds the header text exactly as written (e.g. "v1.0.1"), or Unreleased.
type VersionEntry struct {
	Version string   `json:"version" yaml:"version"`
	Changes []string `json:"changes" yaml:"changes"`
}

// New returns a changelog holding only an empty unreleased section.
func New() *Changelog {
	return &Changelog{Entries: []VersionEntry{{Version: Unreleased}}}
}

// IsUnreleased returns true if this entry is the unreleased section.
func (e VersionEntry) IsUnreleased() bool {
	return e.Version == Unreleased
}

// Label returns the version text, or unreleasedLabel for the unreleased section.
func (e VersionEntry) Label(unreleasedLabel string) string {
	if e.IsUnreleased() {
		return unreleasedLabel
	}
	return e.Version
}

// Equal reports whether two entries have the same version text and the same changes
// in the same order.
func (e VersionEntry) Equal(other VersionEntry) bool {
	return e.Version == other.Version && slices.Equal(e.Changes, other.Changes)
}

// Clone returns a deep copy of the changelog. Mutating operations work on clones so
// callers never observe a shared Changes slice.
func (c *Changelog) Clone() *Changelog {
	out := &Changelog{Entries: make([]VersionEntry, len(c.Entries))}
	for i, e := range c.Entries {
		out.Entries[i] = VersionEntry{Version: e.Version, Changes: slices.Clone(e.Changes)}
	}
	return out
}

// ensureUnreleased guarantees the unreleased section is present at index 0.
func (c *Changelog) ensureUnreleased() {
	if len(c.Entries) == 0 || !c.Entries[0].IsUnreleased() {
		c.Entries = slices.Insert(c.Entries, 0, VersionEntry{Version: Unreleased})
	}
}
