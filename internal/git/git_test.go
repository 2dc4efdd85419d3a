// Package git_test tests tag discovery against repositories created with go-git.
// Related: internal/git/git.go
// Tags: git, repository, tag, vcs

package git

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSignature = &object.Signature{
	Name:  "Test",
	Email: "test@test.com",
	When:  time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
}

// initRepo creates a repository in a temp directory with a single commit.
func initRepo(t *testing.T) (string, *git.Repository, plumbing.Hash) {
	t.Helper()

	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)

	hash := commitFile(t, repo, dir, "CHANGELOG.txt", "v1.0.0\n- Initial release\n")
	return dir, repo, hash
}

func commitFile(t *testing.T, repo *git.Repository, dir, name, content string) plumbing.Hash {
	t.Helper()

	worktree, err := repo.Worktree()
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	_, err = worktree.Add(name)
	require.NoError(t, err)

	hash, err := worktree.Commit("update "+name, &git.CommitOptions{Author: testSignature})
	require.NoError(t, err)
	return hash
}

func TestIsRepository(t *testing.T) {
	dir, _, _ := initRepo(t)
	assert.True(t, IsRepository(dir))

	sub := filepath.Join(dir, "nested", "deeper")
	require.NoError(t, os.MkdirAll(sub, 0o755))
	assert.True(t, IsRepository(sub), "subdirectories are detected through DetectDotGit")

	assert.False(t, IsRepository(t.TempDir()))
}

func TestRepositoryRoot(t *testing.T) {
	dir, _, _ := initRepo(t)
	sub := filepath.Join(dir, "docs")
	require.NoError(t, os.MkdirAll(sub, 0o755))

	root, err := RepositoryRoot(sub)
	require.NoError(t, err)

	want, err := filepath.EvalSymlinks(dir)
	require.NoError(t, err)
	got, err := filepath.EvalSymlinks(root)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestHeadTags(t *testing.T) {
	tests := map[string]struct {
		setup func(t *testing.T, dir string, repo *git.Repository, first plumbing.Hash)
		want  []string
	}{
		"no tags": {
			setup: func(*testing.T, string, *git.Repository, plumbing.Hash) {},
			want:  nil,
		},
		"lightweight tag": {
			setup: func(t *testing.T, _ string, repo *git.Repository, first plumbing.Hash) {
				_, err := repo.CreateTag("v1.0.0", first, nil)
				require.NoError(t, err)
			},
			want: []string{"v1.0.0"},
		},
		"annotated tag": {
			setup: func(t *testing.T, _ string, repo *git.Repository, first plumbing.Hash) {
				_, err := repo.CreateTag("v1.0.0", first, &git.CreateTagOptions{
					Tagger:  testSignature,
					Message: "release v1.0.0",
				})
				require.NoError(t, err)
			},
			want: []string{"v1.0.0"},
		},
		"multiple tags sorted": {
			setup: func(t *testing.T, _ string, repo *git.Repository, first plumbing.Hash) {
				for _, name := range []string{"v1.0.0", "latest", "1.0.0"} {
					_, err := repo.CreateTag(name, first, nil)
					require.NoError(t, err)
				}
			},
			want: []string{"1.0.0", "latest", "v1.0.0"},
		},
		"tags on older commits ignored": {
			setup: func(t *testing.T, dir string, repo *git.Repository, first plumbing.Hash) {
				_, err := repo.CreateTag("v1.0.0", first, nil)
				require.NoError(t, err)
				head := commitFile(t, repo, dir, "CHANGELOG.txt", "v1.1.0\n- More\n\nv1.0.0\n- Initial release\n")
				_, err = repo.CreateTag("v1.1.0", head, nil)
				require.NoError(t, err)
			},
			want: []string{"v1.1.0"},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			dir, repo, first := initRepo(t)
			tt.setup(t, dir, repo, first)

			got, err := HeadTags(dir)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestHeadTags_EmptyRepository(t *testing.T) {
	dir := t.TempDir()
	_, err := git.PlainInit(dir, false)
	require.NoError(t, err)

	_, err = HeadTags(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "getting HEAD reference")
}

func TestTagAtHead(t *testing.T) {
	dir, repo, first := initRepo(t)

	_, err := TagAtHead(dir)
	assert.ErrorIs(t, err, ErrNoTagAtHead)

	_, err = repo.CreateTag("v2.0.0", first, nil)
	require.NoError(t, err)

	tag, err := TagAtHead(dir)
	require.NoError(t, err)
	assert.Equal(t, "v2.0.0", tag)
}

func TestTagExists(t *testing.T) {
	dir, repo, first := initRepo(t)
	_, err := repo.CreateTag("v1.0.0", first, nil)
	require.NoError(t, err)
	_, err = repo.CreateTag("2.0.0", first, nil)
	require.NoError(t, err)

	tests := map[string]struct {
		tag  string
		want bool
	}{
		"exact prefixed":        {tag: "v1.0.0", want: true},
		"bare finds prefixed":   {tag: "1.0.0", want: true},
		"prefixed finds bare":   {tag: "v2.0.0", want: true},
		"exact bare":            {tag: "2.0.0", want: true},
		"missing":               {tag: "v3.0.0", want: false},
		"whitespace is trimmed": {tag: " v1.0.0 ", want: true},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := TagExists(dir, tt.tag)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTagExists_NotRepository(t *testing.T) {
	_, err := TagExists(t.TempDir(), "v1.0.0")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "opening repository")
}

func TestSetDebugLogger(t *testing.T) {
	var (
		mu       sync.Mutex
		messages []string
	)
	SetDebugLogger(func(format string, _ ...any) {
		mu.Lock()
		defer mu.Unlock()
		messages = append(messages, format)
	})
	t.Cleanup(func() { SetDebugLogger(nil) })

	dir, _, _ := initRepo(t)
	assert.True(t, IsRepository(dir))

	mu.Lock()
	defer mu.Unlock()
	assert.NotEmpty(t, messages)
}
