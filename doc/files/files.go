// Package files locates example, image, dot and include files for the
// parser by searching configured directories.
package files

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/afero"

	"github.com/dhamidi/docparse/doc/parser"
)

// ErrNotFound is returned for names no search directory holds.
var ErrNotFound = parser.ErrFileNotFound

// AmbiguousError is returned when a name matches files in several places.
type AmbiguousError = parser.AmbiguousFileError

// Dirs lists the search directories per file kind.
type Dirs struct {
	Example []string
	Image   []string
	Dot     []string
	Include []string
}

func (d Dirs) forKind(kind parser.FileKind) []string {
	switch kind {
	case parser.FileImage:
		return d.Image
	case parser.FileDot:
		return d.Dot
	case parser.FileInclude:
		return d.Include
	}
	return d.Example
}

// Provider is a parser.FileProvider. A name is found either relative to
// a search directory or, anywhere below one, by its trailing path
// components.
type Provider struct {
	fs   afero.Fs
	dirs Dirs
}

// New returns a provider reading from the OS file system.
func New(dirs Dirs) *Provider {
	return NewWithFs(afero.NewOsFs(), dirs)
}

func NewWithFs(fsys afero.Fs, dirs Dirs) *Provider {
	return &Provider{fs: fsys, dirs: dirs}
}

func (p *Provider) Locate(name string, kind parser.FileKind) (string, error) {
	name = filepath.Clean(name)
	if filepath.IsAbs(name) {
		if p.isFile(name) {
			return name, nil
		}
		return "", fmt.Errorf("%s file %s: %w", kind, name, ErrNotFound)
	}

	var found []string
	seen := map[string]bool{}
	add := func(path string) {
		if !seen[path] {
			seen[path] = true
			found = append(found, path)
		}
	}
	for _, dir := range p.dirs.forKind(kind) {
		if direct := filepath.Join(dir, name); p.isFile(direct) {
			add(direct)
			continue
		}
		for _, path := range p.search(dir, name) {
			add(path)
		}
	}

	switch len(found) {
	case 0:
		return "", fmt.Errorf("%s file %s: %w", kind, name, ErrNotFound)
	case 1:
		return found[0], nil
	}
	sort.Strings(found)
	return "", &AmbiguousError{Name: name, Candidates: found}
}

func (p *Provider) Read(name string, kind parser.FileKind) (string, error) {
	path, err := p.Locate(name, kind)
	if err != nil {
		return "", err
	}
	data, err := afero.ReadFile(p.fs, path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return string(data), nil
}

func (p *Provider) isFile(path string) bool {
	info, err := p.fs.Stat(path)
	return err == nil && !info.IsDir()
}

// search returns the files below dir whose path ends with name.
func (p *Provider) search(dir, name string) []string {
	suffix := string(filepath.Separator) + name
	var matches []string
	afero.Walk(p.fs, dir, func(path string, info fs.FileInfo, err error) error {
		if err != nil {
			if info != nil && info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if !info.IsDir() && strings.HasSuffix(path, suffix) {
			matches = append(matches, path)
		}
		return nil
	})
	return matches
}
