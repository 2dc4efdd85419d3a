// Package fsutil resolves changelog paths and discovers CHANGELOG.txt files on disk.
package fsutil

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// DefaultFileName is the changelog file searched for during discovery.
const DefaultFileName = "CHANGELOG.txt"

// ErrIsDirectory is returned when a directory is given where a file is expected.
var ErrIsDirectory = errors.New("expected a file but got a directory")

// NotFoundError reports a missing path or an unsuccessful discovery.
// It matches fs.ErrNotExist with errors.Is.
type NotFoundError struct {
	Path    string
	Message string
}

func (e *NotFoundError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("file not found: %s", e.Path)
}

// Is lets errors.Is(err, fs.ErrNotExist) succeed for NotFoundError.
func (e *NotFoundError) Is(target error) bool {
	return target == fs.ErrNotExist
}

// IsNotFound returns true if the error is a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// ResolvePath expands a leading "~/" and makes path absolute.
//
// For reads the path must exist and must not be a directory. For writes the parent
// directories are created and an existing directory at path is refused.
func ResolvePath(path string, forWrite bool) (string, error) {
	abs, err := filepath.Abs(ExpandHome(path))
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", path, err)
	}

	info, statErr := os.Stat(abs)
	if statErr == nil && info.IsDir() {
		return "", fmt.Errorf("%w: %s", ErrIsDirectory, abs)
	}

	if forWrite {
		if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
			return "", fmt.Errorf("creating parent directory for %s: %w", abs, err)
		}
		return abs, nil
	}

	if statErr != nil {
		if errors.Is(statErr, fs.ErrNotExist) {
			return "", &NotFoundError{Path: abs}
		}
		return "", fmt.Errorf("checking %s: %w", abs, statErr)
	}
	return abs, nil
}

// ExpandHome replaces a leading "~/" with the user's home directory.
func ExpandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(homeDir, path[1:])
		}
	}
	return path
}

// FindFile locates a changelog starting at path. If path names a file it is returned
// unchanged. If it names a directory, the tree is walked depth-first in lexical order and the
// first file called name is returned. An empty name means DefaultFileName.
func FindFile(path, name string) (string, error) {
	if name == "" {
		name = DefaultFileName
	}
	notFound := &NotFoundError{
		Path:    path,
		Message: fmt.Sprintf("%s file not found in the specified path: %s", name, path),
	}

	info, err := os.Stat(ExpandHome(path))
	if err != nil {
		return "", notFound
	}
	if !info.IsDir() {
		return path, nil
	}

	direct := filepath.Join(path, name)
	if fi, err := os.Stat(ExpandHome(direct)); err == nil && !fi.IsDir() {
		return direct, nil
	}

	var found string
	walkErr := filepath.WalkDir(ExpandHome(path), func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			// Unreadable subtrees are skipped, not fatal.
			if d != nil && d.IsDir() && p != ExpandHome(path) {
				return filepath.SkipDir
			}
			return err
		}
		if !d.IsDir() && d.Name() == name {
			found = p
			return fs.SkipAll
		}
		return nil
	})
	if walkErr != nil {
		return "", fmt.Errorf("searching %s for %s: %w", path, name, walkErr)
	}
	if found == "" {
		return "", notFound
	}
	return found, nil
}
