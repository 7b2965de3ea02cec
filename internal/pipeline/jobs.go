package pipeline

import (
	"crypto/sha256"
	"fmt"
	"sync"
	"time"

	"github.com/dgallion1/doclint/internal/corpus"
	"github.com/dgallion1/doclint/internal/report"
)

// JobStatus represents the state of a check job.
type JobStatus string

const (
	StatusQueued     JobStatus = "queued"
	StatusLoading    JobStatus = "loading"
	StatusScanning   JobStatus = "scanning"
	StatusIndexing   JobStatus = "indexing"
	StatusValidating JobStatus = "validating"
	StatusCompleted  JobStatus = "completed"
	StatusFailed     JobStatus = "failed"
)

// Job tracks one corpus check from submission to report.
type Job struct {
	mu sync.Mutex

	ID string `json:"job_id"`

	Status    JobStatus `json:"status"`
	Phase     string    `json:"phase"`
	Documents int       `json:"documents"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Internal: not serialized.
	files  []corpus.File
	corpus *corpus.Corpus
	result *report.Report
	errors []string
}

// SetStatus updates job status atomically.
func (j *Job) SetStatus(status JobStatus, phase string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Status = status
	j.Phase = phase
	j.UpdatedAt = time.Now()
}

// AddError records an error.
func (j *Job) AddError(err string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.errors = append(j.errors, err)
	j.UpdatedAt = time.Now()
}

// SetFiles sets the corpus input for processing.
func (j *Job) SetFiles(files []corpus.File) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.files = files
	j.Documents = len(files)
}

// Files returns the corpus input.
func (j *Job) Files() []corpus.File {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.files
}

// SetResult stores the finished run: the scanned corpus (kept for the
// outline endpoint) and the report.
func (j *Job) SetResult(c *corpus.Corpus, r *report.Report) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.corpus = c
	j.result = r
	j.UpdatedAt = time.Now()
}

// Result returns the scanned corpus and report, nil until completion.
func (j *Job) Result() (*corpus.Corpus, *report.Report) {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.corpus, j.result
}

// JobSnapshot is a read-only, JSON-safe copy of job state.
type JobSnapshot struct {
	ID        string    `json:"job_id"`
	Status    JobStatus `json:"status"`
	Phase     string    `json:"phase"`
	Documents int       `json:"documents"`
	Findings  int       `json:"findings"`
	Errors    []string  `json:"errors"`
}

// Snapshot returns a JSON-safe copy of the job state. Findings is zero
// until the job completes.
func (j *Job) Snapshot() JobSnapshot {
	j.mu.Lock()
	defer j.mu.Unlock()
	errs := j.errors
	if errs == nil {
		errs = []string{}
	}
	findings := 0
	if j.result != nil {
		findings = len(j.result.Findings)
	}
	return JobSnapshot{
		ID:        j.ID,
		Status:    j.Status,
		Phase:     j.Phase,
		Documents: j.Documents,
		Findings:  findings,
		Errors:    errs,
	}
}

// JobStore is a thread-safe in-memory job registry with TTL eviction.
type JobStore struct {
	mu   sync.Mutex
	jobs map[string]*Job
	ttl  time.Duration
}

func NewJobStore(ttl time.Duration) *JobStore {
	return &JobStore{
		jobs: make(map[string]*Job),
		ttl:  ttl,
	}
}

func (s *JobStore) Put(job *Job) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs[job.ID] = job
}

func (s *JobStore) Get(id string) *Job {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.jobs[id]
}

// Cleanup removes expired jobs.
func (s *JobStore) Cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	for id, job := range s.jobs {
		if now.Sub(job.UpdatedAt) > s.ttl {
			delete(s.jobs, id)
		}
	}
}

// ContentHashHex computes SHA-256 of content and returns hex string.
// Job IDs are truncated from it.
func ContentHashHex(data []byte) string {
	h := sha256.Sum256(data)
	return fmt.Sprintf("%x", h[:])
}
