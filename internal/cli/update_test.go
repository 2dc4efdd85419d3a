package cli

import (
	"os"
	"path/filepath"
	"testing"

	clierrors "github.com/ariel-frischer/changelogtxt/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdate(t *testing.T) {
	tests := map[string]struct {
		initial string
		args    []string
		want    string
		wantOut string
	}{
		"unreleased change is prepended": {
			initial: sampleChangelog,
			args:    []string{"-m", "Newer fix"},
			want:    "- Newer fix\n- Unreleased fix\n\nv1.0.1\n- Fixed bug in parser\n\nv1.0.0\n- Initial release\n",
			wantOut: "(Unreleased)",
		},
		"explicit unreleased tag": {
			initial: sampleChangelog,
			args:    []string{"--tag", "unreleased", "--message", "Newer fix"},
			want:    "- Newer fix\n- Unreleased fix\n\nv1.0.1\n- Fixed bug in parser\n\nv1.0.0\n- Initial release\n",
		},
		"new release absorbs unreleased changes": {
			initial: sampleChangelog,
			args:    []string{"-t", "1.1.0", "-m", "Release notes"},
			want:    "v1.1.0\n- Release notes\n- Unreleased fix\n\nv1.0.1\n- Fixed bug in parser\n\nv1.0.0\n- Initial release\n",
			wantOut: "(v1.1.0)",
		},
		"new release without message": {
			initial: sampleChangelog,
			args:    []string{"-t", "v1.1.0"},
			want:    "v1.1.0\n- Unreleased fix\n\nv1.0.1\n- Fixed bug in parser\n\nv1.0.0\n- Initial release\n",
		},
		"force adds to a release": {
			initial: sampleChangelog,
			args:    []string{"-t", "1.0.0", "-m", "Late note", "--force"},
			want:    "- Unreleased fix\n\nv1.0.1\n- Fixed bug in parser\n\nv1.0.0\n- Late note\n- Initial release\n",
			wantOut: "(v1.0.0)",
		},
		"file is created when missing": {
			args:    []string{"-m", "First change"},
			want:    "- First change\n",
			wantOut: "CHANGELOG.txt",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			dir := isolate(t)
			path := filepath.Join(dir, "CHANGELOG.txt")
			if tt.initial != "" {
				writeChangelog(t, path, tt.initial)
			}

			stdout, _, err := executeCommand(t, append([]string{"update"}, tt.args...)...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, readFile(t, path))
			assert.Contains(t, stdout, "Updated ")
			if tt.wantOut != "" {
				assert.Contains(t, stdout, tt.wantOut)
			}
		})
	}
}

func TestUpdate_Errors(t *testing.T) {
	tests := map[string]struct {
		args         []string
		wantCategory clierrors.ErrorCategory
		wantStderr   string
	}{
		"existing release without force": {
			args:         []string{"-t", "1.0.0", "-m", "x"},
			wantCategory: clierrors.Validation,
			wantStderr:   "Re-run with --force",
		},
		"empty unreleased message": {
			args:         []string{"-m", "   "},
			wantCategory: clierrors.Validation,
			wantStderr:   "message must not be empty",
		},
		"poorly formatted tag": {
			args:         []string{"-t", "next", "-m", "x"},
			wantCategory: clierrors.Validation,
			wantStderr:   `poorly formatted version value "next"`,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			dir := isolate(t)
			path := writeChangelog(t, filepath.Join(dir, "CHANGELOG.txt"), sampleChangelog)

			_, stderr, err := executeCommand(t, append([]string{"update", "--plain"}, tt.args...)...)
			require.Error(t, err)
			assert.Equal(t, tt.wantCategory, Classify(err).Category)
			assert.Contains(t, stderr, tt.wantStderr)
			assert.Equal(t, sampleChangelog, readFile(t, path), "failed update must not touch the file")
		})
	}
}

func TestUpdate_FileFlag(t *testing.T) {
	tests := map[string]struct {
		file     func(dir string) string
		wantPath func(dir string) string
	}{
		"new file path": {
			file:     func(dir string) string { return filepath.Join(dir, "docs", "NEWS.txt") },
			wantPath: func(dir string) string { return filepath.Join(dir, "docs", "NEWS.txt") },
		},
		"directory without changelog": {
			file: func(dir string) string {
				require.NoError(t, os.MkdirAll(filepath.Join(dir, "pkg"), 0o755))
				return filepath.Join(dir, "pkg")
			},
			wantPath: func(dir string) string { return filepath.Join(dir, "pkg", "CHANGELOG.txt") },
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			dir := isolate(t)

			_, _, err := executeCommand(t, "update", "-f", tt.file(dir), "-m", "First change")
			require.NoError(t, err)
			assert.Equal(t, "- First change\n", readFile(t, tt.wantPath(dir)))
		})
	}
}

func TestUpdate_DryRun(t *testing.T) {
	dir := isolate(t)
	path := writeChangelog(t, filepath.Join(dir, "CHANGELOG.txt"), sampleChangelog)

	stdout, _, err := executeCommand(t, "update", "-t", "1.1.0", "--dry-run")
	require.NoError(t, err)
	assert.Equal(t, "v1.1.0\n- Unreleased fix\n\nv1.0.1\n- Fixed bug in parser\n\nv1.0.0\n- Initial release\n", stdout)
	assert.Equal(t, sampleChangelog, readFile(t, path))
}

func TestUpdate_ThenCheckTag(t *testing.T) {
	dir := isolate(t)
	writeChangelog(t, filepath.Join(dir, "CHANGELOG.txt"), sampleChangelog)

	_, _, err := executeCommand(t, "update", "-t", "2.0.0", "-m", "Breaking change")
	require.NoError(t, err)

	stdout, _, err := executeCommand(t, "check-tag", "-t", "v2.0.0")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Tag validation for v2.0.0 was successful (2 changes).")
}
