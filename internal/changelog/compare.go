package changelog

import (
	"errors"
	"strconv"
	"strings"
)

// ErrNoDifferences is returned by callers that require two changelogs to differ.
var ErrNoDifferences = errors.New("comparison failed: no differences found between the changelogs")

// Difference is the structural difference between a source and a target changelog.
type Difference struct {
	// OnlyInSource holds entries of the source with no identical entry in the target.
	OnlyInSource []VersionEntry `json:"only_in_source" yaml:"only_in_source"`
	// OnlyInTarget holds entries of the target with no identical entry in the source.
	OnlyInTarget []VersionEntry `json:"only_in_target" yaml:"only_in_target"`
}

// Empty reports whether the two changelogs had the same set of entries.
func (d Difference) Empty() bool {
	return len(d.OnlyInSource) == 0 && len(d.OnlyInTarget) == 0
}

// Entries returns the symmetric difference: source-only entries, then target-only entries.
func (d Difference) Entries() []VersionEntry {
	out := make([]VersionEntry, 0, len(d.OnlyInSource)+len(d.OnlyInTarget))
	out = append(out, d.OnlyInSource...)
	return append(out, d.OnlyInTarget...)
}

// Diff compares two changelogs entry by entry. Entries are equal when their version
// text and change lists are identical, so a release whose changes were edited shows up
// on both sides. Entries are treated as a set: duplicates are reported once.
func Diff(source, target *Changelog) Difference {
	srcKeys := entryKeys(source)
	trgKeys := entryKeys(target)
	return Difference{
		OnlyInSource: missingFrom(source, trgKeys),
		OnlyInTarget: missingFrom(target, srcKeys),
	}
}

// Compare returns the symmetric difference of the entries of a and b.
// Compare(a, b) and Compare(b, a) contain the same entries.
func Compare(a, b *Changelog) []VersionEntry {
	return Diff(a, b).Entries()
}

func missingFrom(c *Changelog, other map[string]struct{}) []VersionEntry {
	var out []VersionEntry
	seen := make(map[string]struct{})
	for _, e := range c.Entries {
		key := entryKey(e)
		if _, ok := other[key]; ok {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, e)
	}
	return out
}

func entryKeys(c *Changelog) map[string]struct{} {
	keys := make(map[string]struct{}, len(c.Entries))
	for _, e := range c.Entries {
		keys[entryKey(e)] = struct{}{}
	}
	return keys
}

// entryKey encodes an entry unambiguously for set membership.
func entryKey(e VersionEntry) string {
	var b strings.Builder
	b.WriteString(strconv.Quote(e.Version))
	for _, change := range e.Changes {
		b.WriteByte(',')
		b.WriteString(strconv.Quote(change))
	}
	return b.String()
}
