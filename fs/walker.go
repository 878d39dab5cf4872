// Package fs provides filesystem-backed document sources.
package fs

import (
	"context"
	"errors"
	iofs "io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/fwojciec/hastitle"
	"github.com/fwojciec/hastitle/bloom"
)

// Ensure Walker implements hastitle.DocumentSource at compile time.
var _ hastitle.DocumentSource = (*Walker)(nil)

// DefaultExtensions lists the page extensions walked when none are configured.
var DefaultExtensions = []string{".html", ".htm", ".jinja", ".jinja2", ".j2", ".djhtml", ".tmpl"}

// expectedPaths sizes the default dedup filter.
const expectedPaths = 100_000

// PathFilter is a set of resolved paths that may report false positives.
// The walker confirms every positive against an exact set before
// skipping a path.
type PathFilter interface {
	TestAndAdd(path string) bool
}

// Walker collects page sources below a set of roots.
type Walker struct {
	// Roots are files or directories. A file root is always included.
	Roots []string

	// Extensions selects files inside directory roots, compared
	// case-insensitively. Defaults to DefaultExtensions when empty.
	Extensions []string

	// Exclude holds filepath.Match patterns matched against the
	// slash-separated path and the base name.
	Exclude []string

	// Filter pre-checks resolved paths for duplicates. A new Bloom
	// filter is used for each walk when nil.
	Filter PathFilter
}

// NewWalker creates a Walker over roots with default extensions.
func NewWalker(roots ...string) *Walker {
	return &Walker{Roots: roots}
}

// Documents walks all roots and returns the matching documents sorted by path.
func (w *Walker) Documents(ctx context.Context) ([]*hastitle.Document, error) {
	exts := w.Extensions
	if len(exts) == 0 {
		exts = DefaultExtensions
	}

	filter := w.Filter
	if filter == nil {
		filter = bloom.NewFilter(expectedPaths, 0.0001)
	}
	seen := make(map[string]struct{})
	var docs []*hastitle.Document

	add := func(path string) error {
		resolved, err := filepath.EvalSymlinks(path)
		if err != nil {
			resolved = path
		}
		if abs, err := filepath.Abs(resolved); err == nil {
			resolved = abs
		}
		if filter.TestAndAdd(resolved) {
			if _, ok := seen[resolved]; ok {
				return nil
			}
		}
		seen[resolved] = struct{}{}

		doc, err := ReadDocument(path)
		if err != nil {
			return err
		}
		docs = append(docs, doc)
		return nil
	}

	for _, root := range w.Roots {
		info, err := os.Stat(root)
		if errors.Is(err, iofs.ErrNotExist) {
			return nil, hastitle.Errorf(hastitle.ENOTFOUND, "path %q not found", root)
		} else if err != nil {
			return nil, err
		}

		if !info.IsDir() {
			if err := add(root); err != nil {
				return nil, err
			}
			continue
		}

		err = filepath.WalkDir(root, func(path string, d iofs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if err := ctx.Err(); err != nil {
				return err
			}

			if d.IsDir() {
				if path != root && isHidden(d.Name()) {
					return filepath.SkipDir
				}
				if path != root && w.excluded(path) {
					return filepath.SkipDir
				}
				return nil
			}

			if d.Type()&iofs.ModeSymlink != 0 {
				target, err := os.Stat(path)
				if err != nil || !target.Mode().IsRegular() {
					return nil
				}
			} else if !d.Type().IsRegular() {
				return nil
			}
			if !hasExtension(path, exts) || w.excluded(path) {
				return nil
			}
			return add(path)
		})
		if err != nil {
			return nil, err
		}
	}

	sort.Slice(docs, func(i, j int) bool {
		return docs[i].Path < docs[j].Path
	})

	return docs, nil
}

// ReadDocument reads a single page source from path.
func ReadDocument(path string) (*hastitle.Document, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, iofs.ErrNotExist) {
		return nil, hastitle.Errorf(hastitle.ENOTFOUND, "path %q not found", path)
	} else if err != nil {
		return nil, err
	}

	content := string(data)
	return &hastitle.Document{
		Path:        filepath.ToSlash(path),
		Content:     content,
		ContentHash: hastitle.ComputeHash(content),
	}, nil
}

func (w *Walker) excluded(path string) bool {
	slashed := filepath.ToSlash(path)
	base := filepath.Base(path)
	for _, pattern := range w.Exclude {
		if ok, _ := filepath.Match(pattern, slashed); ok {
			return true
		}
		if ok, _ := filepath.Match(pattern, base); ok {
			return true
		}
	}
	return false
}

func hasExtension(path string, exts []string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range exts {
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		if ext == strings.ToLower(e) {
			return true
		}
	}
	return false
}

func isHidden(name string) bool {
	return len(name) > 1 && strings.HasPrefix(name, ".")
}
