package session

import (
	"context"
	"fmt"
	"strings"

	"github.com/andresherrera/pdfcopilot/internal/chunker"
	"github.com/andresherrera/pdfcopilot/internal/doctype"
	"github.com/andresherrera/pdfcopilot/internal/llm"
	"github.com/andresherrera/pdfcopilot/internal/pdf"
	"github.com/andresherrera/pdfcopilot/internal/vectordb"
)

// Upload is one raw file handed to the processing pipeline. It exists only
// for the duration of the batch; the registry keeps chunks and summaries,
// never the bytes.
type Upload struct {
	Filename string
	Data     []byte
}

// DocumentError ties a per-document failure to its filename.
type DocumentError struct {
	Filename string
	Err      error
}

func (e *DocumentError) Error() string {
	return fmt.Sprintf("%s: %v", e.Filename, e.Err)
}

func (e *DocumentError) Unwrap() error { return e.Err }

// BatchResult reports what one upload batch did.
type BatchResult struct {
	Processed []string         // hashes registered by this batch
	Skipped   []string         // hashes already registered (no work performed)
	Removed   []string         // hashes evicted because their file left the batch
	Errors    []*DocumentError // per-document failures; the rest of the batch continued
}

// ProgressFunc is called after each document in a batch is handled.
type ProgressFunc func(filename string, done, total int)

// SetProgressFunc installs a batch progress callback (nil disables it).
func (s *Session) SetProgressFunc(fn ProgressFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.progress = fn
}

// ProcessBatch synchronizes the session with the current upload set.
// Registered hashes missing from the batch are evicted first, then each new
// document runs the full pipeline: extract, classify, chunk, index,
// summarize, register. Documents are processed one at a time, each completing
// fully before the next begins. A document already registered (including a
// duplicate earlier in the same batch) is skipped without any work. One
// document's failure never aborts the others.
func (s *Session) ProcessBatch(ctx context.Context, uploads []Upload) BatchResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	var result BatchResult

	current := make(map[string]struct{}, len(uploads))
	hashes := make([]string, len(uploads))
	for i, up := range uploads {
		h := HashBytes(up.Data)
		hashes[i] = h
		current[h] = struct{}{}
	}

	removed, _ := DiffHashes(s.hashes, current)
	for _, h := range removed {
		s.removeHashLocked(ctx, h)
		result.Removed = append(result.Removed, h)
	}

	existingLabels := make(map[string]bool, len(s.summaries))
	for _, sum := range s.summaries {
		existingLabels[sum.Label] = true
	}

	for i, up := range uploads {
		h := hashes[i]
		if _, ok := s.hashes[h]; ok {
			result.Skipped = append(result.Skipped, h)
		} else if err := s.processOne(ctx, up, h, existingLabels); err != nil {
			result.Errors = append(result.Errors, &DocumentError{Filename: up.Filename, Err: err})
		} else {
			result.Processed = append(result.Processed, h)
		}
		if s.progress != nil {
			s.progress(up.Filename, i+1, len(uploads))
		}
	}
	return result
}

// processOne runs a single document through the pipeline. Indexing and
// registration are one atomic step: the hash joins the registered set
// immediately after the index write succeeds, so a later summary failure can
// never orphan index entries, and an index failure leaves the hash fully
// unregistered for a clean retry.
func (s *Session) processOne(ctx context.Context, up Upload, hash string, existingLabels map[string]bool) error {
	pages, err := s.extractor.ExtractPages(ctx, up.Data)
	if err != nil {
		return fmt.Errorf("extracting text: %w", err)
	}
	text := pdf.FullText(pages)

	category := doctype.Classify(text, up.Filename)

	docs := buildChunkDocs(text, category, up.Filename, hash)

	if err := s.sync.Add(ctx, hash, docs); err != nil {
		return err
	}

	s.hashes[hash] = struct{}{}
	s.chunks = append(s.chunks, docs...)

	summary, err := s.summarize(ctx, text, category)
	if err != nil {
		summary = fmt.Sprintf("[Resumen no disponible: %v]", err)
	}

	label := uniqueLabel(up.Filename, existingLabels, hash[:6])
	existingLabels[label] = true

	s.summaries = append(s.summaries, Summary{
		Label:    label,
		Filename: up.Filename,
		FileHash: hash,
		Summary:  summary,
	})
	return nil
}

// buildChunkDocs splits the text for its category and attaches provenance
// metadata to every chunk. IDs are assigned later by the synchronizer.
func buildChunkDocs(text string, category doctype.Category, filename, hash string) []vectordb.Document {
	chunks := chunker.Split(text, category)
	docs := make([]vectordb.Document, len(chunks))
	for i, c := range chunks {
		docs[i] = vectordb.Document{
			Content: c.Text,
			Metadata: vectordb.Metadata{
				Source:      filename,
				FileHash:    hash,
				DocType:     category,
				ChunkIndex:  c.Index,
				ChunkSize:   c.Size,
				TotalChunks: c.Total,
			},
		}
	}
	return docs
}

func (s *Session) summarize(ctx context.Context, text string, category doctype.Category) (string, error) {
	prompt := BuildSummaryPrompt(text, category)
	resp, err := s.provider.Complete(ctx, llm.CompletionRequest{
		Model:       s.cfg.Model,
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: prompt}},
		Temperature: s.cfg.Temperature,
	})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(resp.Content), nil
}
