package pipeline

import (
	"github.com/dgallion1/doclint/internal/check"
	"github.com/dgallion1/doclint/internal/corpus"
	"github.com/dgallion1/doclint/internal/index"
	"github.com/dgallion1/doclint/internal/report"
	"github.com/dgallion1/doclint/internal/scan"
)

// Run executes one complete check over the input files: load, scan every
// document, build the anchor index, validate, report. The index build is
// the only barrier; everything before it is per-document.
//
// The returned error is a setup failure (duplicate path); findings live in
// the report, never in the error.
func Run(files []corpus.File) (*corpus.Corpus, *report.Report, error) {
	c, err := corpus.Load(files)
	if err != nil {
		return nil, nil, err
	}
	scan.All(c)
	idx := index.Build(c)
	findings := check.Validate(c, idx)
	return c, report.Build(c, findings), nil
}
