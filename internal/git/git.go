// Package git resolves release tags for changelogtxt. It uses the go-git library to open the
// repository containing a path, list the tags pointing at HEAD and check whether a tag
// exists, so check-tag can default to the tag being released and cross-check the changelog
// against the repository.
package git

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// ErrNoTagAtHead is returned when HEAD has no tag pointing at it.
var ErrNoTagAtHead = errors.New("no tag points at HEAD")

// debugLogger is a function that logs debug messages when debug mode is enabled.
// By default, it's a no-op. Set it via SetDebugLogger to enable debug output.
var debugLogger func(format string, args ...any)

// SetDebugLogger configures the debug logger for git operations.
// Pass nil to disable debug logging. The logger function should format
// and output the message (similar to log.Printf signature).
func SetDebugLogger(logger func(format string, args ...any)) {
	debugLogger = logger
}

// logDebug logs a debug message if the debug logger is set.
func logDebug(format string, args ...any) {
	if debugLogger != nil {
		debugLogger(format, args...)
	}
}

// openRepo opens a git repository at the specified path or current working directory.
// It uses go-git's PlainOpenWithOptions with DetectDotGit enabled to traverse
// up the directory tree to find the repository root.
// If path is empty, the current working directory is used.
func openRepo(path string) (*git.Repository, error) {
	if path == "" {
		var err error
		path, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting current directory: %w", err)
		}
	}

	logDebug("[git] opening repository at %s", path)

	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening repository at %s: %w", path, err)
	}

	logDebug("[git] repository opened successfully")
	return repo, nil
}

// RepositoryRoot returns the absolute path to the root of the repository containing path.
func RepositoryRoot(path string) (string, error) {
	repo, err := openRepo(path)
	if err != nil {
		return "", err
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return "", fmt.Errorf("getting worktree: %w", err)
	}

	root := worktree.Filesystem.Root()
	logDebug("[git] RepositoryRoot: %s", root)
	return root, nil
}

// IsRepository checks if path is within a git repository.
func IsRepository(path string) bool {
	_, err := openRepo(path)
	result := err == nil
	logDebug("[git] IsRepository: %v", result)
	return result
}

// HeadTags returns the names of all tags pointing at the HEAD commit, sorted.
// Both lightweight and annotated tags are considered.
func HeadTags(path string) ([]string, error) {
	repo, err := openRepo(path)
	if err != nil {
		return nil, err
	}

	head, err := repo.Head()
	if err != nil {
		return nil, fmt.Errorf("getting HEAD reference: %w", err)
	}

	iter, err := repo.Tags()
	if err != nil {
		return nil, fmt.Errorf("listing tags: %w", err)
	}

	var tags []string
	err = iter.ForEach(func(ref *plumbing.Reference) error {
		target, ok := commitHash(repo, ref)
		if ok && target == head.Hash() {
			tags = append(tags, ref.Name().Short())
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("iterating tags: %w", err)
	}

	sort.Strings(tags)
	logDebug("[git] HeadTags: %v", tags)
	return tags, nil
}

// TagAtHead returns the tag pointing at HEAD. When several tags point at HEAD the first
// in lexical order is returned.
func TagAtHead(path string) (string, error) {
	tags, err := HeadTags(path)
	if err != nil {
		return "", err
	}
	if len(tags) == 0 {
		return "", ErrNoTagAtHead
	}
	if len(tags) > 1 {
		logDebug("[git] TagAtHead: %d tags at HEAD, using %s", len(tags), tags[0])
	}
	return tags[0], nil
}

// TagExists reports whether the repository has the tag. A tag written with or without a
// leading "v" matches either spelling, so "v1.0.0" finds a "1.0.0" tag.
func TagExists(path, tag string) (bool, error) {
	repo, err := openRepo(path)
	if err != nil {
		return false, err
	}

	bare := strings.TrimPrefix(strings.TrimSpace(tag), "v")
	for _, name := range []string{"v" + bare, bare} {
		_, err := repo.Tag(name)
		if err == nil {
			logDebug("[git] TagExists: found %s", name)
			return true, nil
		}
		if !errors.Is(err, git.ErrTagNotFound) {
			return false, fmt.Errorf("looking up tag %s: %w", name, err)
		}
	}

	logDebug("[git] TagExists: %s not found", tag)
	return false, nil
}

// commitHash resolves a tag reference to the commit it points at, peeling annotated tags.
func commitHash(repo *git.Repository, ref *plumbing.Reference) (plumbing.Hash, bool) {
	tagObj, err := repo.TagObject(ref.Hash())
	if errors.Is(err, plumbing.ErrObjectNotFound) {
		return ref.Hash(), true
	}
	if err != nil {
		return plumbing.ZeroHash, false
	}

	commit, err := tagObj.Commit()
	if err != nil {
		logDebug("[git] tag %s does not point at a commit", ref.Name().Short())
		return plumbing.ZeroHash, false
	}
	return commit.Hash, true
}
