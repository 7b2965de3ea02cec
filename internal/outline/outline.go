// Package outline builds a document's section tree from its Markdown AST.
// It serves the outline API endpoint and the CLI's --outline view.
package outline

import (
	"sort"

	"github.com/dgallion1/doclint/internal/corpus"
	"github.com/dgallion1/doclint/internal/scan"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Node is one section: a heading and its nested subsections.
type Node struct {
	Title    string  `json:"title"`
	Slug     string  `json:"slug"`
	Level    int     `json:"level"`
	Line     int     `json:"line"`
	Links    int     `json:"links"`
	Children []*Node `json:"children,omitempty"`
}

// Build walks the goldmark AST of a scanned document and nests sections by
// heading level. Slugs come from the scanner's headings so that duplicate
// suffixes match the anchor index; goldmark contributes the hierarchy and
// rendered heading text.
func Build(d *corpus.Document) []*Node {
	src := []byte(d.Text)
	md := goldmark.New()
	doc := md.Parser().Parse(text.NewReader(src))

	starts := lineStarts(src)
	slugAt := make(map[int]string, len(d.Headings))
	for _, h := range d.Headings {
		slugAt[h.Line] = h.Slug
	}

	var flat []*Node
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		h, ok := n.(*ast.Heading)
		if !ok {
			continue
		}
		node := &Node{
			Title: string(h.Text(src)),
			Level: h.Level,
		}
		if h.Lines().Len() > 0 {
			node.Line = lineOf(starts, h.Lines().At(0).Start)
		}
		if slug, ok := slugAt[node.Line]; ok {
			node.Slug = slug
		} else {
			node.Slug = scan.Slugify(node.Title)
		}
		flat = append(flat, node)
	}

	countLinks(flat, d.Links, len(starts))
	return nest(flat)
}

// countLinks assigns each section the links between its heading line and
// the next heading line.
func countLinks(flat []*Node, links []corpus.LinkReference, lastLine int) {
	for i, node := range flat {
		end := lastLine + 1
		if i+1 < len(flat) {
			end = flat[i+1].Line
		}
		for _, l := range links {
			if l.Line >= node.Line && l.Line < end {
				node.Links++
			}
		}
	}
}

// nest folds the flat heading sequence into a tree, popping the stack until
// a shallower parent is found. Same shape as nesting h1-h6 in HTML.
func nest(flat []*Node) []*Node {
	root := &Node{Level: 0}
	stack := []*Node{root}
	for _, node := range flat {
		for len(stack) > 1 && stack[len(stack)-1].Level >= node.Level {
			stack = stack[:len(stack)-1]
		}
		parent := stack[len(stack)-1]
		parent.Children = append(parent.Children, node)
		stack = append(stack, node)
	}
	return root.Children
}

// lineStarts returns the byte offset of every line start.
func lineStarts(src []byte) []int {
	starts := []int{0}
	for i, b := range src {
		if b == '\n' && i+1 < len(src) {
			starts = append(starts, i+1)
		}
	}
	return starts
}

// lineOf converts a byte offset into a 1-based line number.
func lineOf(starts []int, offset int) int {
	i := sort.Search(len(starts), func(i int) bool { return starts[i] > offset })
	return i
}
