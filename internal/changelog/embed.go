package changelog

import (
	_ "embed"
	"fmt"
)

//go:embed CHANGELOG.txt
var embeddedChangelog string

// Embedded returns the raw embedded CHANGELOG.txt of changelogtxt itself.
// This content is embedded at build time and represents
// the changelog as of that build.
func Embedded() string {
	return embeddedChangelog
}

// LoadEmbedded parses the embedded CHANGELOG.txt.
func LoadEmbedded() (*Changelog, error) {
	if embeddedChangelog == "" {
		return nil, fmt.Errorf("embedded changelog is empty (binary may have been built without embedded content)")
	}

	return ParseString(embeddedChangelog, WithStrictContinuation())
}
