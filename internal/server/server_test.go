package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/andresherrera/pdfcopilot/internal/config"
	"github.com/andresherrera/pdfcopilot/internal/llm"
	"github.com/andresherrera/pdfcopilot/internal/pdf"
	"github.com/andresherrera/pdfcopilot/internal/session"
	"github.com/andresherrera/pdfcopilot/internal/vectordb"
)

// mockExtractor treats the uploaded bytes as the document's full text.
type mockExtractor struct{}

func (mockExtractor) ExtractPages(_ context.Context, data []byte) ([]pdf.Page, error) {
	return []pdf.Page{{Number: 1, Text: string(data)}}, nil
}

type mockProvider struct {
	reply string
}

func (m *mockProvider) Complete(_ context.Context, _ llm.CompletionRequest) (*llm.CompletionResponse, error) {
	return &llm.CompletionResponse{Content: m.reply}, nil
}

func (m *mockProvider) Name() string { return "mock" }

// mockStore is an in-memory vector store; search returns documents in
// insertion order.
type mockStore struct {
	docs      []vectordb.Document
	searchErr error
}

func (m *mockStore) EnsureCollection(string) error { return nil }

func (m *mockStore) Add(_ context.Context, docs []vectordb.Document) error {
	m.docs = append(m.docs, docs...)
	return nil
}

func (m *mockStore) Search(_ context.Context, _ string, k int) ([]vectordb.Result, error) {
	if m.searchErr != nil {
		return nil, m.searchErr
	}
	if k > len(m.docs) {
		k = len(m.docs)
	}
	results := make([]vectordb.Result, 0, k)
	for _, d := range m.docs[:k] {
		results = append(results, vectordb.Result{Document: d, Similarity: 0.9})
	}
	return results, nil
}

func (m *mockStore) DeleteByIDs(_ context.Context, ids []string) error {
	drop := make(map[string]bool, len(ids))
	for _, id := range ids {
		drop[id] = true
	}
	kept := m.docs[:0]
	for _, d := range m.docs {
		if !drop[d.ID] {
			kept = append(kept, d)
		}
	}
	m.docs = kept
	return nil
}

func (m *mockStore) DeleteWhere(context.Context, map[string]string) error { return nil }

func (m *mockStore) DeleteCollection(string) error { return nil }

func (m *mockStore) Count() int { return len(m.docs) }

func newTestServer(t *testing.T, store vectordb.Store) *Server {
	t.Helper()
	cfg := config.DefaultConfig()
	sess := session.New(cfg, mockExtractor{}, &mockProvider{reply: "respuesta generada"}, store)
	return New(Config{Port: 0}, sess)
}

func multipartUpload(t *testing.T, files map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for name, content := range files {
		part, err := w.CreateFormFile("files", name)
		if err != nil {
			t.Fatalf("creating form file: %v", err)
		}
		if _, err := part.Write([]byte(content)); err != nil {
			t.Fatalf("writing form file: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("closing multipart writer: %v", err)
	}
	return &buf, w.FormDataContentType()
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(t, &mockStore{})

	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestUploadRegistersDocuments(t *testing.T) {
	srv := newTestServer(t, &mockStore{})

	body, contentType := multipartUpload(t, map[string]string{
		"notas.pdf": "Estas son las notas, de la reunión de enero.",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/documents", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp batchResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if len(resp.Processed) != 1 {
		t.Fatalf("expected 1 processed document, got %+v", resp)
	}
	if len(resp.Errors) != 0 {
		t.Fatalf("expected no errors, got %v", resp.Errors)
	}

	rec = httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/summaries", nil))
	var summaries []session.Summary
	if err := json.NewDecoder(rec.Body).Decode(&summaries); err != nil {
		t.Fatalf("decoding summaries: %v", err)
	}
	if len(summaries) != 1 || summaries[0].Filename != "notas.pdf" {
		t.Fatalf("unexpected summaries: %+v", summaries)
	}
}

func TestUploadWithoutFiles(t *testing.T) {
	srv := newTestServer(t, &mockStore{})

	body, contentType := multipartUpload(t, nil)
	req := httptest.NewRequest(http.MethodPost, "/api/documents", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestRemoveDocument(t *testing.T) {
	store := &mockStore{}
	srv := newTestServer(t, store)

	body, contentType := multipartUpload(t, map[string]string{
		"informe.pdf": "Contenido del informe, sección uno.",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/documents", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	var resp batchResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if len(resp.Processed) != 1 {
		t.Fatalf("expected 1 processed document, got %+v", resp)
	}

	rec = httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/documents/"+resp.Processed[0], nil))
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if store.Count() != 0 {
		t.Fatalf("expected index emptied, %d documents remain", store.Count())
	}

	rec = httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/summaries", nil))
	var summaries []session.Summary
	if err := json.NewDecoder(rec.Body).Decode(&summaries); err != nil {
		t.Fatalf("decoding summaries: %v", err)
	}
	if len(summaries) != 0 {
		t.Fatalf("expected no summaries after removal, got %+v", summaries)
	}
}

func TestAsk(t *testing.T) {
	store := &mockStore{}
	srv := newTestServer(t, store)

	body, contentType := multipartUpload(t, map[string]string{
		"datos.pdf": "El presupuesto anual, asciende a dos millones.",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/documents", body)
	req.Header.Set("Content-Type", contentType)
	srv.Router().ServeHTTP(httptest.NewRecorder(), req)

	ask := strings.NewReader(`{"question":"¿Cuál es el presupuesto?"}`)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/ask", ask))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp askResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.Answer != "respuesta generada" {
		t.Fatalf("unexpected answer: %q", resp.Answer)
	}
	if len(resp.Sources) == 0 {
		t.Fatal("expected retrieved sources in the response")
	}
	if resp.Sources[0].Source != "datos.pdf" {
		t.Fatalf("unexpected source: %+v", resp.Sources[0])
	}

	rec = httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/transcript", nil))
	var transcript []session.Message
	if err := json.NewDecoder(rec.Body).Decode(&transcript); err != nil {
		t.Fatalf("decoding transcript: %v", err)
	}
	if len(transcript) != 2 {
		t.Fatalf("expected question and answer in transcript, got %+v", transcript)
	}
}

func TestAskValidation(t *testing.T) {
	srv := newTestServer(t, &mockStore{})

	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/ask", strings.NewReader(`{}`)))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for empty question, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/ask", strings.NewReader(`not json`)))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed body, got %d", rec.Code)
	}
}

func TestAskRetrievalFailure(t *testing.T) {
	store := &mockStore{searchErr: errors.New("index offline")}
	srv := newTestServer(t, store)

	ask := strings.NewReader(`{"question":"¿Hay datos?"}`)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/ask", ask))

	if rec.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", rec.Code)
	}
}

func TestReset(t *testing.T) {
	store := &mockStore{}
	srv := newTestServer(t, store)

	body, contentType := multipartUpload(t, map[string]string{
		"temporal.pdf": "Texto que será descartado, pronto.",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/documents", body)
	req.Header.Set("Content-Type", contentType)
	srv.Router().ServeHTTP(httptest.NewRecorder(), req)

	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/reset", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp resetResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if !resp.Clean {
		t.Fatalf("expected clean reset, got errors: %v", resp.Errors)
	}
	if resp.Collection == "" {
		t.Fatal("expected a fresh collection name")
	}

	rec = httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/summaries", nil))
	var summaries []session.Summary
	if err := json.NewDecoder(rec.Body).Decode(&summaries); err != nil {
		t.Fatalf("decoding summaries: %v", err)
	}
	if len(summaries) != 0 {
		t.Fatalf("expected empty state after reset, got %+v", summaries)
	}
}
