// Package report aggregates validation findings into the run's result.
package report

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/dgallion1/doclint/internal/check"
	"github.com/dgallion1/doclint/internal/corpus"
)

// Report is the deterministic result of one check run.
type Report struct {
	Documents    int             `json:"documents"`
	LinksChecked int             `json:"links_checked"`
	Findings     []check.Finding `json:"findings"`
}

// Build assembles a report from a scanned corpus and its findings.
func Build(c *corpus.Corpus, findings []check.Finding) *Report {
	if findings == nil {
		findings = []check.Finding{}
	}
	return &Report{
		Documents:    c.Len(),
		LinksChecked: c.TotalLinks(),
		Findings:     findings,
	}
}

// Failed reports whether the run found any unresolved links. This is the
// run's verdict, distinct from a checker failure.
func (r *Report) Failed() bool { return len(r.Findings) > 0 }

// Render writes the human-readable report: one line per finding, then a
// summary.
func (r *Report) Render(w io.Writer) {
	for _, f := range r.Findings {
		fmt.Fprintf(w, "%s:%d: %s — %s\n", f.Path, f.Line, f.Reason, f.Target)
	}
	fmt.Fprintf(w, "checked %d documents, %d links: %s\n", r.Documents, r.LinksChecked, r.verdict())
}

// RenderJSON writes the report as indented JSON.
func (r *Report) RenderJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

func (r *Report) verdict() string {
	if r.Failed() {
		return fmt.Sprintf("%d problems", len(r.Findings))
	}
	return "ok"
}
