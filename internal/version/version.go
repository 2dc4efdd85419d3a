package version

import (
	"strings"

	"github.com/Masterminds/semver/v3"
)

// Kind identifies the grammar that produced a Version.
type Kind int

const (
	// KindPEP440 is a dotted-numeric version with optional pre/post/dev/local parts.
	KindPEP440 Kind = iota + 1
	// KindSemVer is a strict semantic version.
	KindSemVer
	// KindLoose is the fallback grammar for informally written tags.
	KindLoose
)

// String returns the grammar name.
func (k Kind) String() string {
	switch k {
	case KindPEP440:
		return "pep440"
	case KindSemVer:
		return "semver"
	case KindLoose:
		return "loose"
	default:
		return "unknown"
	}
}

// Version is a recognized version token. The zero value is not a valid version.
type Version struct {
	kind      Kind
	original  string
	canonical string
	key       string
	// major, minor and micro are decimal digit strings without leading zeros, so
	// components of any length compare by string equality.
	major     string
	minor     string
	micro     string
	local     string
	sem       *semver.Version
}

// grammar is one attempt in the recognition chain.
type grammar struct {
	kind  Kind
	parse func(string) (Version, bool)
}

// grammars is ordered by priority: later entries override earlier successes.
var grammars = []grammar{
	{kind: KindPEP440, parse: parsePEP440},
	{kind: KindSemVer, parse: parseSemVer},
	{kind: KindLoose, parse: parseLoose},
}

// Parse recognizes text as a version token. Surrounding whitespace and one leading
// lowercase "v" are removed before matching. The boolean is false when no grammar accepts
// the text.
func Parse(text string) (Version, bool) {
	trimmed := strings.TrimSpace(text)
	s := strings.TrimPrefix(trimmed, "v")

	var result Version
	found := false
	for _, g := range grammars {
		if v, ok := g.parse(s); ok {
			result = v
			found = true
		}
	}
	if !found {
		return Version{}, false
	}

	result.original = trimmed
	return result, true
}

// MustParse is like Parse but panics when text is not a version.
func MustParse(text string) Version {
	v, ok := Parse(text)
	if !ok {
		panic("version: not a version: " + text)
	}
	return v
}

// IsVersion reports whether text is recognized as a version token.
func IsVersion(text string) bool {
	_, ok := Parse(text)
	return ok
}

// Kind returns the grammar that recognized the version.
func (v Version) Kind() Kind { return v.kind }

// Original returns the trimmed text the version was parsed from.
func (v Version) Original() string { return v.original }

// Major returns the first release component in decimal.
func (v Version) Major() string { return v.major }

// Minor returns the second release component, "0" when absent.
func (v Version) Minor() string { return v.minor }

// Micro returns the third release component, "0" when absent.
func (v Version) Micro() string { return v.micro }

// Local returns the local or trailing suffix, empty when absent.
func (v Version) Local() string { return v.local }

// String returns the canonical form defined by the recognizing grammar,
// independent of how the original text was spelled.
func (v Version) String() string { return v.canonical }

// Equal reports whether v and other denote the same version. Versions recognized by
// different grammars are never equal.
func (v Version) Equal(other Version) bool {
	if v.kind == 0 || v.kind != other.kind {
		return false
	}
	if v.kind == KindSemVer {
		return v.sem.Equal(other.sem)
	}
	return v.key == other.key
}
