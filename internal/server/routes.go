package server

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/andresherrera/pdfcopilot/internal/session"
)

const maxUploadBytes = 200 << 20 // 200 MB per request, matching the UI limit

type batchResponse struct {
	Processed []string `json:"processed"`
	Skipped   []string `json:"skipped"`
	Removed   []string `json:"removed"`
	Errors    []string `json:"errors,omitempty"`
}

// handleUpload accepts a multipart batch under the "files" field and runs it
// through the document pipeline. Per-document failures are reported in the
// body; they never fail the request.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart body: "+err.Error())
		return
	}

	files := r.MultipartForm.File["files"]
	if len(files) == 0 {
		writeError(w, http.StatusBadRequest, "no files provided")
		return
	}

	var uploads []session.Upload
	for _, fh := range files {
		f, err := fh.Open()
		if err != nil {
			writeError(w, http.StatusBadRequest, "opening "+fh.Filename+": "+err.Error())
			return
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			writeError(w, http.StatusBadRequest, "reading "+fh.Filename+": "+err.Error())
			return
		}
		uploads = append(uploads, session.Upload{Filename: fh.Filename, Data: data})
	}

	result := s.session.ProcessBatch(r.Context(), uploads)

	resp := batchResponse{
		Processed: result.Processed,
		Skipped:   result.Skipped,
		Removed:   result.Removed,
	}
	for _, de := range result.Errors {
		resp.Errors = append(resp.Errors, de.Error())
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleRemove(w http.ResponseWriter, r *http.Request) {
	hash := chi.URLParam(r, "hash")
	if hash == "" {
		writeError(w, http.StatusBadRequest, "missing hash")
		return
	}
	s.session.RemoveHash(r.Context(), hash)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSummaries(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.session.Summaries())
}

func (s *Server) handleTranscript(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.session.Transcript())
}

type askRequest struct {
	Question string `json:"question"`
}

type askSource struct {
	Source     string  `json:"source"`
	ChunkIndex int     `json:"chunk_id"`
	Content    string  `json:"content"`
	Similarity float32 `json:"similarity"`
}

type askResponse struct {
	Answer  string      `json:"answer"`
	Sources []askSource `json:"sources"`
}

func (s *Server) handleAsk(w http.ResponseWriter, r *http.Request) {
	var req askRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return
	}
	if req.Question == "" {
		writeError(w, http.StatusBadRequest, "question is required")
		return
	}

	answer, retrieved, err := s.session.Answer(r.Context(), req.Question)
	if err != nil {
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}

	resp := askResponse{Answer: answer, Sources: make([]askSource, 0, len(retrieved))}
	for _, res := range retrieved {
		resp.Sources = append(resp.Sources, askSource{
			Source:     res.Document.Metadata.Source,
			ChunkIndex: res.Document.Metadata.ChunkIndex,
			Content:    res.Document.Content,
			Similarity: res.Similarity,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

type resetResponse struct {
	Clean      bool     `json:"clean"`
	Errors     []string `json:"errors,omitempty"`
	Collection string   `json:"collection"`
}

// handleReset tears the session down. It always succeeds: collaborator
// failures are reported in the body, not the status.
func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	report := s.session.Reset(r.Context())

	resp := resetResponse{Clean: report.Clean(), Collection: s.session.Collection()}
	for _, err := range report.Errors {
		resp.Errors = append(resp.Errors, err.Error())
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
