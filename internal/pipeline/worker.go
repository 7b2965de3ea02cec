package pipeline

import (
	"context"
	"log/slog"

	"github.com/dgallion1/doclint/internal/check"
	"github.com/dgallion1/doclint/internal/corpus"
	"github.com/dgallion1/doclint/internal/index"
	"github.com/dgallion1/doclint/internal/report"
	"github.com/dgallion1/doclint/internal/scan"
)

// Worker processes a single check job.
type Worker struct {
	log *slog.Logger
}

func NewWorker(log *slog.Logger) *Worker {
	return &Worker{log: log}
}

// Process runs the full check pipeline for a job. Only the load phase can
// fail the job; findings are a result, not a failure.
func (w *Worker) Process(ctx context.Context, job *Job) {
	log := w.log.With("job_id", job.ID)

	// Phase 1: Load
	job.SetStatus(StatusLoading, "loading corpus")
	c, err := corpus.Load(job.Files())
	if err != nil {
		log.Error("load failed", "error", err)
		job.AddError(err.Error())
		job.SetStatus(StatusFailed, "loading")
		return
	}

	// Phase 2: Scan every document. Documents are independent here; the
	// index build below is the barrier that needs all of them.
	job.SetStatus(StatusScanning, "scanning documents")
	for _, d := range c.Docs {
		select {
		case <-ctx.Done():
			job.AddError(ctx.Err().Error())
			job.SetStatus(StatusFailed, "scanning")
			return
		default:
		}
		scan.Scan(d)
	}

	// Phase 3: Index
	job.SetStatus(StatusIndexing, "building anchor index")
	idx := index.Build(c)

	// Phase 4: Validate
	job.SetStatus(StatusValidating, "resolving links")
	findings := check.Validate(c, idx)

	rep := report.Build(c, findings)
	job.SetResult(c, rep)
	job.SetStatus(StatusCompleted, "done")
	log.Info("check completed",
		"documents", rep.Documents,
		"links", rep.LinksChecked,
		"findings", len(rep.Findings),
	)
}
