package changelog

import (
	"testing"

	"github.com/ariel-frischer/changelogtxt/internal/version"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The embedded CHANGELOG.txt ships with the binary, so it has to stay in the
// strict format and survive a round trip unchanged.
func TestLoadEmbedded(t *testing.T) {
	t.Parallel()

	log, err := LoadEmbedded()
	require.NoError(t, err)

	releases := log.Releases()
	require.NotEmpty(t, releases)
	assert.NotEmpty(t, releases[0].Changes)
	assert.Equal(t, "v0.1.0", releases[len(releases)-1].Version)

	for _, header := range log.ListVersions() {
		assert.True(t, version.IsVersion(header), "header %q", header)
	}
	assert.Empty(t, log.Unreleased().Changes)
	assert.Equal(t, Embedded(), DumpString(log))
}
