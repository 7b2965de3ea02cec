package pipeline

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/dgallion1/doclint/internal/check"
	"github.com/dgallion1/doclint/internal/corpus"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRun_CleanCorpus(t *testing.T) {
	files := []corpus.File{
		{Path: "a.md", Text: "# Intro\n[self](#intro)\n[other](b.md#setup)\n"},
		{Path: "b.md", Text: "# Setup\n"},
	}
	c, rep, err := Run(files)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Len() != 2 {
		t.Errorf("expected 2 documents, got %d", c.Len())
	}
	if rep.Failed() {
		t.Errorf("expected clean report, got findings %+v", rep.Findings)
	}
	if rep.LinksChecked != 2 {
		t.Errorf("expected 2 links checked, got %d", rep.LinksChecked)
	}
}

func TestRun_Findings(t *testing.T) {
	_, rep, err := Run([]corpus.File{
		{Path: "a.md", Text: "[x](#missing)\n[y](gone.md)\n"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rep.Findings) != 2 {
		t.Fatalf("expected 2 findings, got %+v", rep.Findings)
	}
	if rep.Findings[0].Reason != check.ReasonUnknownAnchor {
		t.Errorf("expected %q first, got %q", check.ReasonUnknownAnchor, rep.Findings[0].Reason)
	}
	if rep.Findings[1].Reason != check.ReasonMissingDocument {
		t.Errorf("expected %q second, got %q", check.ReasonMissingDocument, rep.Findings[1].Reason)
	}
}

func TestRun_DuplicatePathIsFatal(t *testing.T) {
	_, _, err := Run([]corpus.File{
		{Path: "a.md", Text: "one"},
		{Path: "a.md", Text: "two"},
	})
	if err == nil {
		t.Fatal("expected error")
	}
	var dup *corpus.DuplicatePathError
	if !errors.As(err, &dup) {
		t.Fatalf("expected DuplicatePathError, got %T: %v", err, err)
	}
}

func TestWorker_Process(t *testing.T) {
	job := &Job{ID: "w-1", Status: StatusQueued, CreatedAt: time.Now(), UpdatedAt: time.Now()}
	job.SetFiles([]corpus.File{
		{Path: "a.md", Text: "# Intro\n[bad](#nope)\n"},
	})

	NewWorker(discardLogger()).Process(context.Background(), job)

	snap := job.Snapshot()
	if snap.Status != StatusCompleted {
		t.Fatalf("expected completed, got %q (errors: %v)", snap.Status, snap.Errors)
	}
	if snap.Findings != 1 {
		t.Errorf("expected 1 finding, got %d", snap.Findings)
	}
	c, rep := job.Result()
	if c == nil || rep == nil {
		t.Fatal("expected corpus and report on completed job")
	}
	if !rep.Failed() {
		t.Error("expected failed verdict for corpus with findings")
	}
}

func TestWorker_ProcessDuplicateFails(t *testing.T) {
	job := &Job{ID: "w-2", Status: StatusQueued, CreatedAt: time.Now(), UpdatedAt: time.Now()}
	job.SetFiles([]corpus.File{
		{Path: "a.md", Text: "one"},
		{Path: "a.md", Text: "two"},
	})

	NewWorker(discardLogger()).Process(context.Background(), job)

	snap := job.Snapshot()
	if snap.Status != StatusFailed {
		t.Fatalf("expected failed, got %q", snap.Status)
	}
	if len(snap.Errors) == 0 {
		t.Error("expected the duplicate path error recorded")
	}
}

func TestWorker_ProcessCancelled(t *testing.T) {
	job := &Job{ID: "w-3", Status: StatusQueued, CreatedAt: time.Now(), UpdatedAt: time.Now()}
	job.SetFiles([]corpus.File{{Path: "a.md", Text: "# A"}})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	NewWorker(discardLogger()).Process(ctx, job)

	if snap := job.Snapshot(); snap.Status != StatusFailed {
		t.Errorf("expected failed on cancelled context, got %q", snap.Status)
	}
}
