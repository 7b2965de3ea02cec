package api

import (
	"encoding/json"
	"net/http"

	"github.com/dgallion1/doclint/internal/corpus"
	"github.com/dgallion1/doclint/internal/outline"
	"github.com/dgallion1/doclint/internal/pipeline"
	"github.com/go-chi/chi/v5"
)

// handleListDocuments lists the documents of a completed job with their
// structural counts.
func (s *Server) handleListDocuments(w http.ResponseWriter, r *http.Request) {
	c, ok := s.completedCorpus(w, r)
	if !ok {
		return
	}

	docs := make([]map[string]any, 0, c.Len())
	for _, d := range c.Docs {
		docs = append(docs, map[string]any{
			"path":        d.Path,
			"headings":    len(d.Headings),
			"code_blocks": len(d.CodeBlocks),
			"links":       len(d.Links),
		})
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"documents": docs})
}

// handleOutline renders one document's section tree.
func (s *Server) handleOutline(w http.ResponseWriter, r *http.Request) {
	c, ok := s.completedCorpus(w, r)
	if !ok {
		return
	}

	docPath := chi.URLParam(r, "*")
	doc := c.Get(docPath)
	if doc == nil {
		jsonError(w, "document not found: "+docPath, http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"path":    doc.Path,
		"outline": outline.Build(doc),
	})
}

// completedCorpus resolves the jobID route param to a finished job's
// corpus, writing the error response itself when it cannot.
func (s *Server) completedCorpus(w http.ResponseWriter, r *http.Request) (*corpus.Corpus, bool) {
	jobID := chi.URLParam(r, "jobID")
	job := s.orchestrator.GetJob(jobID)
	if job == nil {
		jsonError(w, "job not found", http.StatusNotFound)
		return nil, false
	}
	if job.Snapshot().Status != pipeline.StatusCompleted {
		jsonError(w, "job not completed", http.StatusConflict)
		return nil, false
	}
	c, _ := job.Result()
	return c, true
}
