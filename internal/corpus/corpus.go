// Package corpus defines the document set the checker operates on.
package corpus

import "fmt"

// LinkKind classifies a link target.
type LinkKind int

const (
	// KindAnchor is a fragment reference into the same document ("#slug").
	KindAnchor LinkKind = iota
	// KindRelative is a reference to another document, optionally with a
	// fragment ("other.md", "dir/other.md#section").
	KindRelative
	// KindExternal is a target with a URI scheme (or protocol-relative
	// "//"); external links are never resolved.
	KindExternal
	// KindUndefinedRef is a reference-style link whose id has no matching
	// definition in the document.
	KindUndefinedRef
)

func (k LinkKind) String() string {
	switch k {
	case KindAnchor:
		return "anchor"
	case KindRelative:
		return "relative"
	case KindExternal:
		return "external"
	case KindUndefinedRef:
		return "undefined-reference"
	}
	return "unknown"
}

// Heading is one ATX heading with its derived anchor slug.
type Heading struct {
	Level int    `json:"level"`
	Text  string `json:"text"`
	Slug  string `json:"slug"`
	Line  int    `json:"line"`
}

// CodeBlock is a fenced code block. Content is opaque and never scanned.
type CodeBlock struct {
	Language string `json:"language,omitempty"`
	Content  string `json:"content"`
	Line     int    `json:"line"`
}

// LinkReference is one link occurrence as written in the source.
type LinkReference struct {
	Target string   `json:"target"`
	Kind   LinkKind `json:"kind"`
	Line   int      `json:"line"`
}

// Document is a single corpus member. Text is immutable after load; the
// structural slices are filled in by the scanner and read-only afterwards.
type Document struct {
	Path string `json:"path"`
	Text string `json:"-"`

	Headings   []Heading       `json:"headings"`
	CodeBlocks []CodeBlock     `json:"code_blocks"`
	Links      []LinkReference `json:"links"`

	// Anchors holds explicit HTML anchor ids (<a id="x">) found outside
	// fenced code, valid link targets alongside the heading slugs.
	Anchors []string `json:"anchors,omitempty"`
}

// File is one (logical path, text) input pair.
type File struct {
	Path string
	Text string
}

// Corpus is an ordered document set. Order follows the input order of Load.
type Corpus struct {
	Docs []*Document
}

// DuplicatePathError reports two input files sharing a logical path.
// It is a setup error: the run aborts before any scanning.
type DuplicatePathError struct {
	Path string
}

func (e *DuplicatePathError) Error() string {
	return fmt.Sprintf("duplicate document path: %s", e.Path)
}

// Load builds a Corpus from input files, preserving their order.
// It performs no validation beyond path uniqueness.
func Load(files []File) (*Corpus, error) {
	seen := make(map[string]bool, len(files))
	c := &Corpus{Docs: make([]*Document, 0, len(files))}
	for _, f := range files {
		if seen[f.Path] {
			return nil, &DuplicatePathError{Path: f.Path}
		}
		seen[f.Path] = true
		c.Docs = append(c.Docs, &Document{Path: f.Path, Text: f.Text})
	}
	return c, nil
}

// Len returns the number of documents.
func (c *Corpus) Len() int { return len(c.Docs) }

// Get returns the document at path, or nil.
func (c *Corpus) Get(path string) *Document {
	for _, d := range c.Docs {
		if d.Path == path {
			return d
		}
	}
	return nil
}

// TotalLinks counts link references across all documents.
func (c *Corpus) TotalLinks() int {
	n := 0
	for _, d := range c.Docs {
		n += len(d.Links)
	}
	return n
}
