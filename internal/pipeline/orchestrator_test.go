package pipeline

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dgallion1/doclint/internal/config"
	"github.com/dgallion1/doclint/internal/corpus"
)

func TestOrchestrator_SubmitAndProcess(t *testing.T) {
	cfg := config.Config{WorkerCount: 2, MaxQueueSize: 4, JobTTL: time.Hour}
	o := NewOrchestrator(cfg, discardLogger())
	o.Start(context.Background())
	defer o.Stop()

	job := &Job{ID: "orch-1", Status: StatusQueued, CreatedAt: time.Now(), UpdatedAt: time.Now()}
	job.SetFiles([]corpus.File{{Path: "a.md", Text: "# Intro\n[x](#intro)\n"}})

	if err := o.Submit(job); err != nil {
		t.Fatalf("unexpected submit error: %v", err)
	}
	if o.GetJob("orch-1") == nil {
		t.Fatal("expected job registered")
	}

	deadline := time.After(2 * time.Second)
	for {
		snap := o.GetJob("orch-1").Snapshot()
		if snap.Status == StatusCompleted {
			if snap.Findings != 0 {
				t.Errorf("expected clean run, got %d findings", snap.Findings)
			}
			return
		}
		if snap.Status == StatusFailed {
			t.Fatalf("job failed: %v", snap.Errors)
		}
		select {
		case <-deadline:
			t.Fatalf("job did not complete, status %q", snap.Status)
		case <-time.After(10 * time.Millisecond):
		}
	}
}

func TestOrchestrator_QueueFull(t *testing.T) {
	cfg := config.Config{WorkerCount: 1, MaxQueueSize: 1, JobTTL: time.Hour}
	// Not started: nothing drains the queue.
	o := NewOrchestrator(cfg, discardLogger())

	first := &Job{ID: "q-1", Status: StatusQueued, UpdatedAt: time.Now()}
	if err := o.Submit(first); err != nil {
		t.Fatalf("unexpected error on first submit: %v", err)
	}

	second := &Job{ID: "q-2", Status: StatusQueued, UpdatedAt: time.Now()}
	err := o.Submit(second)
	if !errors.Is(err, ErrQueueFull) {
		t.Fatalf("expected ErrQueueFull, got %v", err)
	}
	if second.Snapshot().Status != StatusFailed {
		t.Errorf("expected rejected job marked failed, got %q", second.Snapshot().Status)
	}
	if o.QueueDepth() != 1 {
		t.Errorf("expected queue depth 1, got %d", o.QueueDepth())
	}
}
