package core

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// LibraryExt is the file extension of AD sources.
const LibraryExt = ".ad"

// LibraryResolver returns the source text of a named library. It
// returns an error wrapping ErrLibraryNotFound when the name is unknown.
type LibraryResolver interface {
	Resolve(name string) (string, error)
}

// DirResolver looks libraries up as NAME.ad under Dir.
type DirResolver struct {
	Dir string
}

// Resolve reads Dir/name.ad.
func (r DirResolver) Resolve(name string) (string, error) {
	if !validLibraryName(name) {
		return "", fmt.Errorf("%w: %q", ErrLibraryNotFound, name)
	}

	data, err := os.ReadFile(filepath.Join(r.Dir, name+LibraryExt))
	if errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("%w: %q", ErrLibraryNotFound, name)
	}
	if err != nil {
		return "", fmt.Errorf("reading library %q: %w", name, err)
	}

	return string(data), nil
}

// MapResolver serves libraries from memory.
type MapResolver map[string]string

// Resolve returns the library text stored under name.
func (m MapResolver) Resolve(name string) (string, error) {
	src, ok := m[name]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrLibraryNotFound, name)
	}
	return src, nil
}

func validLibraryName(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	return !strings.ContainsAny(name, `/\`) && !strings.Contains(name, "..")
}
