// Package index builds the anchor index: per-document anchor sets plus the
// global set of document paths. Built once, after every document has been
// scanned, then read-only during validation.
package index

import "github.com/dgallion1/doclint/internal/corpus"

// Index maps document paths to their valid anchors.
type Index struct {
	paths   map[string]struct{}
	anchors map[string]map[string]struct{}
}

// Build constructs the index from a fully scanned corpus in a single pass.
// Empty slugs are indexed like any other; renderers emit them too.
func Build(c *corpus.Corpus) *Index {
	idx := &Index{
		paths:   make(map[string]struct{}, c.Len()),
		anchors: make(map[string]map[string]struct{}, c.Len()),
	}
	for _, d := range c.Docs {
		idx.paths[d.Path] = struct{}{}
		set := make(map[string]struct{}, len(d.Headings)+len(d.Anchors))
		for _, h := range d.Headings {
			set[h.Slug] = struct{}{}
		}
		for _, a := range d.Anchors {
			set[a] = struct{}{}
		}
		idx.anchors[d.Path] = set
	}
	return idx
}

// HasDocument reports whether path names a corpus document.
func (i *Index) HasDocument(path string) bool {
	_, ok := i.paths[path]
	return ok
}

// HasAnchor reports whether the document at path defines the anchor.
// Matching is exact and case-sensitive.
func (i *Index) HasAnchor(path, anchor string) bool {
	set, ok := i.anchors[path]
	if !ok {
		return false
	}
	_, ok = set[anchor]
	return ok
}

// Documents returns the number of indexed documents.
func (i *Index) Documents() int { return len(i.paths) }
