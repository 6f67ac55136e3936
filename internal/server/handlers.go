package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/astscope/pkg/errors"
	"github.com/matzehuels/astscope/pkg/examples"
	"github.com/matzehuels/astscope/pkg/graph"
	"github.com/matzehuels/astscope/pkg/pipeline"
	"github.com/matzehuels/astscope/pkg/store"
)

// =============================================================================
// Render
// =============================================================================

// renderRequest is the body for POST /api/render. It mirrors the
// client-settable pipeline options; server-side options like catalog
// override paths are deliberately not exposed, so a request cannot
// make the server read arbitrary files.
type renderRequest struct {
	Source           string   `json:"source"`
	Mode             string   `json:"mode,omitempty"`
	Formats          []string `json:"formats,omitempty"`
	Title            string   `json:"title,omitempty"`
	RankDir          string   `json:"rank_dir,omitempty"`
	ShowExplanations bool     `json:"show_explanations,omitempty"`
	Plain            bool     `json:"plain,omitempty"`
	Refresh          bool     `json:"refresh,omitempty"`
}

// renderResponse is the JSON shape of a successful render. Artifact
// bytes are base64-encoded by encoding/json; dot is included as plain
// text since every mode produces it.
type renderResponse struct {
	Graph      graph.Graph       `json:"graph"`
	DOT        string            `json:"dot"`
	Artifacts  map[string][]byte `json:"artifacts,omitempty"`
	SourceHash string            `json:"source_hash"`
	NodeCount  int               `json:"node_count"`
	EdgeCount  int               `json:"edge_count"`
	CacheHit   bool              `json:"cache_hit"`
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	var req renderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInvalidSource, err, "invalid request body"))
		return
	}

	opts := pipeline.Options{
		Source:           req.Source,
		Mode:             req.Mode,
		Formats:          req.Formats,
		Title:            req.Title,
		RankDir:          req.RankDir,
		ShowExplanations: req.ShowExplanations,
		Plain:            req.Plain,
		Refresh:          req.Refresh,
		Logger:           s.logger,
	}
	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, renderResponse{
		Graph:      result.Graph,
		DOT:        result.DOT,
		Artifacts:  result.Artifacts,
		SourceHash: result.SourceHash,
		NodeCount:  result.Stats.NodeCount,
		EdgeCount:  result.Stats.EdgeCount,
		CacheHit:   result.CacheInfo.GraphHit && result.CacheInfo.RenderHit,
	})
}

// =============================================================================
// Examples
// =============================================================================

func (s *Server) handleListExamples(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, examples.All())
}

func (s *Server) handleGetExample(w http.ResponseWriter, r *http.Request) {
	ex, err := examples.Get(chi.URLParam(r, "name"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, ex)
}

// =============================================================================
// Snapshots
// =============================================================================

// createSnapshotRequest is the body for POST /api/snapshots. The
// server renders DOT from the source so the snapshot is replayable
// without the original catalog configuration.
type createSnapshotRequest struct {
	Name   string `json:"name"`
	Mode   string `json:"mode,omitempty"`
	Source string `json:"source"`
}

func (s *Server) handleCreateSnapshot(w http.ResponseWriter, r *http.Request) {
	var req createSnapshotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInvalidSource, err, "invalid request body"))
		return
	}

	if req.Mode == "" {
		req.Mode = pipeline.DefaultMode
	}
	opts := pipeline.Options{
		Source:  req.Source,
		Mode:    req.Mode,
		Formats: []string{pipeline.FormatDOT},
		Logger:  s.logger,
	}
	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, err)
		return
	}

	snap := &store.Snapshot{
		ID:        store.NewID(),
		Name:      req.Name,
		Mode:      opts.Mode,
		Source:    req.Source,
		DOT:       result.DOT,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.store.Put(r.Context(), snap); err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, snap)
}

func (s *Server) handleListSnapshots(w http.ResponseWriter, r *http.Request) {
	snaps, err := s.store.List(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, snaps)
}

func (s *Server) handleGetSnapshot(w http.ResponseWriter, r *http.Request) {
	snap, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, snap)
}

func (s *Server) handleDeleteSnapshot(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// Health
// =============================================================================

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// =============================================================================
// Helpers
// =============================================================================

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("failed to encode response", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	resp := errorResponse{Error: errors.UserMessage(err), Code: string(code)}
	s.writeJSON(w, statusFor(code), resp)
}

// statusFor maps error codes to HTTP status codes.
func statusFor(code errors.Code) int {
	switch code {
	case errors.ErrCodeNotFound, errors.ErrCodeExampleNotFound, errors.ErrCodeSnapshotNotFound:
		return http.StatusNotFound
	case errors.ErrCodeInvalidSource, errors.ErrCodeInvalidFormat, errors.ErrCodeInvalidMode,
		errors.ErrCodeInvalidCatalog, errors.ErrCodeInvalidPath, errors.ErrCodeParseFailed:
		return http.StatusBadRequest
	case errors.ErrCodeUnsupported:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
