// Package check resolves every link reference against the anchor index and
// collects findings for the ones that do not resolve.
package check

import (
	"path"
	"strings"

	"github.com/dgallion1/doclint/internal/corpus"
	"github.com/dgallion1/doclint/internal/index"
)

// Reason codes a finding. Findings are data-quality output of a successful
// run, never checker errors.
type Reason string

const (
	ReasonUnknownAnchor   Reason = "unknown-anchor"
	ReasonMissingDocument Reason = "missing-document"
)

// Finding is one unresolved link reference.
type Finding struct {
	Path   string `json:"path"`
	Line   int    `json:"line"`
	Target string `json:"target"`
	Reason Reason `json:"reason"`
}

// Validate resolves every link in every document. Findings come back in
// document input order, then line order; same corpus, same findings.
func Validate(c *corpus.Corpus, idx *index.Index) []Finding {
	var findings []Finding
	for _, d := range c.Docs {
		for _, l := range d.Links {
			if f, bad := resolve(d, l, idx); bad {
				findings = append(findings, f)
			}
		}
	}
	return findings
}

func resolve(d *corpus.Document, l corpus.LinkReference, idx *index.Index) (Finding, bool) {
	switch l.Kind {
	case corpus.KindAnchor:
		slug := strings.TrimPrefix(l.Target, "#")
		if !idx.HasAnchor(d.Path, slug) {
			return finding(d, l, ReasonUnknownAnchor), true
		}

	case corpus.KindRelative:
		target, fragment, _ := strings.Cut(l.Target, "#")
		resolved := resolvePath(d.Path, target)
		if !idx.HasDocument(resolved) {
			// The anchor cannot be evaluated without the document,
			// so only the missing document is reported.
			return finding(d, l, ReasonMissingDocument), true
		}
		if fragment != "" && !idx.HasAnchor(resolved, fragment) {
			return finding(d, l, ReasonUnknownAnchor), true
		}

	case corpus.KindExternal:
		// Never checked.

	case corpus.KindUndefinedRef:
		return finding(d, l, ReasonUnknownAnchor), true
	}
	return Finding{}, false
}

func finding(d *corpus.Document, l corpus.LinkReference, r Reason) Finding {
	return Finding{Path: d.Path, Line: l.Line, Target: l.Target, Reason: r}
}

// resolvePath normalizes a relative target against the issuing document's
// location using slash semantics, independent of the host filesystem.
func resolvePath(from, target string) string {
	return path.Clean(path.Join(path.Dir(from), target))
}
