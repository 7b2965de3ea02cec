package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/dgallion1/doclint/internal/corpus"
	"github.com/dgallion1/doclint/internal/pipeline"
	"github.com/go-chi/chi/v5"
)

// handleCheck accepts a multipart corpus upload and queues an async check
// job. Each part's filename (relative, slash-separated) is the document's
// logical path.
func (s *Server) handleCheck(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes+1024*1024) // extra 1MB for form overhead

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	parts := r.MultipartForm.File["files"]
	if len(parts) == 0 {
		jsonError(w, "at least one file is required", http.StatusBadRequest)
		return
	}

	// Clients whose multipart filenames lose directory components can send
	// a parallel "paths" field, one value per file part.
	paths := r.MultipartForm.Value["paths"]
	if len(paths) > 0 && len(paths) != len(parts) {
		jsonError(w, "paths must match files one to one", http.StatusBadRequest)
		return
	}

	var (
		files []corpus.File
		seen  = make(map[string]bool, len(parts))
	)
	for i, fh := range parts {
		name := fh.Filename
		if len(paths) > 0 {
			name = paths[i]
		}
		p, err := logicalPath(name)
		if err != nil {
			jsonError(w, err.Error(), http.StatusBadRequest)
			return
		}
		if seen[p] {
			// Duplicate paths are a setup error, rejected before the
			// job is queued.
			jsonError(w, (&corpus.DuplicatePathError{Path: p}).Error(), http.StatusBadRequest)
			return
		}
		seen[p] = true

		f, err := fh.Open()
		if err != nil {
			jsonError(w, "failed to open "+p, http.StatusBadRequest)
			return
		}
		data, err := io.ReadAll(io.LimitReader(f, s.cfg.MaxUploadBytes+1))
		f.Close()
		if err != nil {
			jsonError(w, "failed to read "+p, http.StatusBadRequest)
			return
		}
		if int64(len(data)) > s.cfg.MaxUploadBytes {
			jsonError(w, fmt.Sprintf("%s exceeds max size (%d bytes)", p, s.cfg.MaxUploadBytes), http.StatusRequestEntityTooLarge)
			return
		}
		files = append(files, corpus.File{Path: p, Text: string(data)})
	}

	now := time.Now()
	job := &pipeline.Job{
		ID:        pipeline.ContentHashHex([]byte(fmt.Sprintf("%d-%d", len(files), now.UnixNano())))[:20],
		Status:    pipeline.StatusQueued,
		Phase:     "queued",
		CreatedAt: now,
		UpdatedAt: now,
	}
	job.SetFiles(files)

	if err := s.orchestrator.Submit(job); err != nil {
		if errors.Is(err, pipeline.ErrQueueFull) {
			jsonError(w, err.Error(), http.StatusServiceUnavailable)
			return
		}
		jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	json.NewEncoder(w).Encode(map[string]any{
		"job_id":    job.ID,
		"status":    job.Status,
		"documents": len(files),
		"poll_url":  fmt.Sprintf("/api/check/%s/status", job.ID),
	})
}

// handleCheckSync runs a check inline for small corpora (CI hooks).
// Body: {"documents": {"path.md": "text", ...}}.
func (s *Server) handleCheckSync(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)

	var req struct {
		Documents map[string]string `json:"documents"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if len(req.Documents) == 0 {
		jsonError(w, "documents is required", http.StatusBadRequest)
		return
	}
	if len(req.Documents) > s.cfg.MaxSyncDocuments {
		jsonError(w, fmt.Sprintf("too many documents for sync check (max %d)", s.cfg.MaxSyncDocuments), http.StatusRequestEntityTooLarge)
		return
	}

	// Sorted for a deterministic document order regardless of map order.
	paths := make([]string, 0, len(req.Documents))
	for p := range req.Documents {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	files := make([]corpus.File, 0, len(paths))
	for _, p := range paths {
		lp, err := logicalPath(p)
		if err != nil {
			jsonError(w, err.Error(), http.StatusBadRequest)
			return
		}
		files = append(files, corpus.File{Path: lp, Text: req.Documents[p]})
	}

	_, rep, err := pipeline.Run(files)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"failed": rep.Failed(),
		"report": rep,
	})
}

func (s *Server) handleCheckStatus(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "jobID")
	job := s.orchestrator.GetJob(jobID)
	if job == nil {
		jsonError(w, "job not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(job.Snapshot())
}

func (s *Server) handleCheckReport(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "jobID")
	job := s.orchestrator.GetJob(jobID)
	if job == nil {
		jsonError(w, "job not found", http.StatusNotFound)
		return
	}
	snap := job.Snapshot()
	if snap.Status != pipeline.StatusCompleted {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		json.NewEncoder(w).Encode(map[string]any{
			"error":  "report not ready",
			"status": snap.Status,
			"errors": snap.Errors,
		})
		return
	}
	_, rep := job.Result()
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"failed": rep.Failed(),
		"report": rep,
	})
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

// logicalPath normalizes an uploaded filename into a corpus path: slash
// separated, cleaned, relative, and confined to the corpus root.
func logicalPath(name string) (string, error) {
	p := strings.ReplaceAll(strings.TrimSpace(name), "\\", "/")
	p = path.Clean(p)
	p = strings.TrimPrefix(p, "./")
	if p == "" || p == "." || p == ".." ||
		strings.HasPrefix(p, "/") || strings.HasPrefix(p, "../") {
		return "", fmt.Errorf("invalid document path: %q", name)
	}
	return p, nil
}
