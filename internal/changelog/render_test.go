package changelog

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestDumpString(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		entries  []VersionEntry
		expected string
	}{
		"two releases": {
			entries: []VersionEntry{
				{Version: Unreleased},
				{Version: "v1.0.1", Changes: []string{"Fixed bug in parser"}},
				{Version: "v1.0.0", Changes: []string{"Initial release"}},
			},
			expected: sampleChangelog,
		},
		"empty unreleased section dropped": {
			entries: []VersionEntry{
				{Version: Unreleased, Changes: []string{}},
				{Version: "v1.0.0", Changes: []string{"a"}},
			},
			expected: "v1.0.0\n- a\n",
		},
		"unreleased changes have no header": {
			entries: []VersionEntry{
				{Version: Unreleased, Changes: []string{"pending", "also pending"}},
				{Version: "v2.0.0", Changes: []string{"done"}},
			},
			expected: "- pending\n- also pending\n\nv2.0.0\n- done\n",
		},
		"release without changes keeps its header": {
			entries: []VersionEntry{
				{Version: "v1.0.0"},
				{Version: "v0.9.0", Changes: []string{"beta"}},
			},
			expected: "v1.0.0\n\nv0.9.0\n- beta\n",
		},
		"nothing to write": {
			entries:  []VersionEntry{{Version: Unreleased}},
			expected: "",
		},
		"no entries at all": {
			entries:  nil,
			expected: "",
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			got := DumpString(&Changelog{Entries: tc.entries})
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestDump_EndsWithSingleNewline(t *testing.T) {
	t.Parallel()

	c, err := ParseString("v2\n- a\n\n\n\nv1\n- b\n\n\n")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Dump(c, &buf))
	assert.Equal(t, "v2\n- a\n\nv1\n- b\n", buf.String())
	assert.False(t, strings.HasSuffix(buf.String(), "\n\n"))
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestDump_WriterError(t *testing.T) {
	t.Parallel()

	c, err := ParseString(sampleChangelog)
	require.NoError(t, err)
	assert.EqualError(t, Dump(c, failingWriter{}), "disk full")
}

func TestEndToEndExample(t *testing.T) {
	t.Parallel()

	text := "v1.0.1\n- Fixed bug in parser\n\nv1.0.0\n- Initial release\n"
	c, err := ParseString(text)
	require.NoError(t, err)

	assert.Equal(t, []VersionEntry{
		{Version: Unreleased},
		{Version: "v1.0.1", Changes: []string{"Fixed bug in parser"}},
		{Version: "v1.0.0", Changes: []string{"Initial release"}},
	}, c.Entries)
	assert.Equal(t, text, DumpString(c))
}

func TestSave(t *testing.T) {
	t.Parallel()

	t.Run("creates parent directories", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "nested", "dir", "CHANGELOG.txt")

		c, err := ParseString(sampleChangelog)
		require.NoError(t, err)
		require.NoError(t, Save(c, path))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, sampleChangelog, string(data))
	})

	t.Run("overwrites existing file", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "CHANGELOG.txt")
		require.NoError(t, os.WriteFile(path, []byte("old content that is longer than the new one\n"), 0o644))

		c, err := ParseString("v1\n- new\n")
		require.NoError(t, err)
		require.NoError(t, Save(c, path))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "v1\n- new\n", string(data))
	})

	t.Run("save then load", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "CHANGELOG.txt")

		c, err := ParseString(sampleChangelog)
		require.NoError(t, err)
		require.NoError(t, Save(c, path))

		loaded, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, c.Entries, loaded.Entries)
	})

	t.Run("directory target", func(t *testing.T) {
		t.Parallel()
		err := Save(New(), t.TempDir())
		require.Error(t, err)
	})
}

// changelogGen draws well-formed changelogs: the first entry is the unreleased section,
// headers are recognizable versions, and changes are single trimmed lines that do not
// start with a dash.
func changelogGen() *rapid.Generator[*Changelog] {
	changesGen := rapid.Custom(func(t *rapid.T) []string {
		n := rapid.IntRange(0, 4).Draw(t, "changes")
		if n == 0 {
			return nil
		}
		out := make([]string, n)
		for i := range out {
			out[i] = rapid.StringMatching(`[A-Za-z]([A-Za-z0-9 ,.()]{0,24}[A-Za-z0-9.)])?`).Draw(t, "change")
		}
		return out
	})

	return rapid.Custom(func(t *rapid.T) *Changelog {
		c := &Changelog{Entries: []VersionEntry{{Version: Unreleased, Changes: changesGen.Draw(t, "unreleased")}}}
		releases := rapid.IntRange(0, 5).Draw(t, "releases")
		for range releases {
			header := rapid.StringMatching(`v?[0-9]{1,3}(\.[0-9]{1,3}){0,2}`).Draw(t, "header")
			c.Entries = append(c.Entries, VersionEntry{Version: header, Changes: changesGen.Draw(t, "release")})
		}
		return c
	})
}

func TestProperty_RoundTrip(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(t *rapid.T) {
		c := changelogGen().Draw(t, "changelog")

		parsed, err := ParseString(DumpString(c))
		if err != nil {
			t.Fatalf("parsing dumped changelog: %v", err)
		}
		if len(parsed.Entries) != len(c.Entries) {
			t.Fatalf("entry count: got %d, want %d", len(parsed.Entries), len(c.Entries))
		}
		for i := range c.Entries {
			if !parsed.Entries[i].Equal(c.Entries[i]) {
				t.Fatalf("entry %d: got %#v, want %#v", i, parsed.Entries[i], c.Entries[i])
			}
		}
	})
}

func TestProperty_DumpIdempotent(t *testing.T) {
	t.Parallel()

	lineGen := rapid.SampledFrom([]string{
		"v1.0.0", "2.0", "5", "  v3.1  ", "1.0.0-rc1",
		"- change", "-  spaced  ", "- - nested dash",
		"continued text", "  indented continuation", "",
	})

	rapid.Check(t, func(t *rapid.T) {
		lines := rapid.SliceOfN(lineGen, 0, 20).Draw(t, "lines")
		c, err := ParseString(strings.Join(lines, "\n"))
		if err != nil {
			t.Fatalf("unexpected parse error: %v", err)
		}

		first := DumpString(c)
		again, err := ParseString(first)
		if err != nil {
			t.Fatalf("parsing dumped text: %v", err)
		}
		if second := DumpString(again); second != first {
			t.Fatalf("dump not idempotent:\nfirst:  %q\nsecond: %q", first, second)
		}
	})
}
