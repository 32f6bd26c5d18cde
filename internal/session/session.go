package session

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/andresherrera/pdfcopilot/internal/config"
	"github.com/andresherrera/pdfcopilot/internal/llm"
	"github.com/andresherrera/pdfcopilot/internal/pdf"
	"github.com/andresherrera/pdfcopilot/internal/vectordb"
)

// TextExtractor pulls per-page text out of raw PDF bytes.
type TextExtractor interface {
	ExtractPages(ctx context.Context, data []byte) ([]pdf.Page, error)
}

// Summary is the generated overview of one registered document.
type Summary struct {
	Label    string `json:"label"`
	Filename string `json:"filename"`
	FileHash string `json:"filehash"`
	Summary  string `json:"summary"`
}

// Message is one chat transcript entry.
type Message struct {
	Role    llm.Role `json:"role"`
	Content string   `json:"content"`
}

// Session is the authoritative record of one conversation: the registered
// hash set, the chunk list mirrored from the index, the document summaries
// and the chat transcript. A session owns its registry and synchronizer
// exclusively; two sessions never share a collection.
//
// All exported methods serialize on one coarse mutex: while a question is
// being answered no upload can mutate the registry, and vice versa.
type Session struct {
	mu sync.Mutex

	cfg       *config.Config
	extractor TextExtractor
	provider  llm.Provider
	sync      *Synchronizer
	progress  ProgressFunc

	hashes     map[string]struct{}
	chunks     []vectordb.Document
	summaries  []Summary
	transcript []Message
}

// New creates an empty session over the given collaborators.
func New(cfg *config.Config, extractor TextExtractor, provider llm.Provider, store vectordb.Store) *Session {
	return &Session{
		cfg:       cfg,
		extractor: extractor,
		provider:  provider,
		sync:      NewSynchronizer(store, cfg.PersistDir),
		hashes:    make(map[string]struct{}),
	}
}

// Collection returns the name of the session's index collection.
func (s *Session) Collection() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sync.Collection()
}

// Registered returns the registered content hashes.
func (s *Session) Registered() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.hashes))
	for h := range s.hashes {
		out = append(out, h)
	}
	return out
}

// Summaries returns the summary records in registration order.
func (s *Session) Summaries() []Summary {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Summary, len(s.summaries))
	copy(out, s.summaries)
	return out
}

// Transcript returns a copy of the chat transcript.
func (s *Session) Transcript() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Message, len(s.transcript))
	copy(out, s.transcript)
	return out
}

// ChunkCount returns how many chunks the registry currently mirrors.
func (s *Session) ChunkCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.chunks)
}

// RemoveHash evicts every trace of the document identified by hash: its
// index entries, its chunks, its summary and its registry entry. Index-side
// failures are swallowed; the local registry always ends up clean.
func (s *Session) RemoveHash(ctx context.Context, hash string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.removeHashLocked(ctx, hash)
}

func (s *Session) removeHashLocked(ctx context.Context, hash string) {
	s.sync.Remove(ctx, hash)

	kept := s.chunks[:0]
	for _, c := range s.chunks {
		if c.Metadata.FileHash != hash {
			kept = append(kept, c)
		}
	}
	s.chunks = kept

	keptSummaries := s.summaries[:0]
	for _, sum := range s.summaries {
		if sum.FileHash != hash {
			keptSummaries = append(keptSummaries, sum)
		}
	}
	s.summaries = keptSummaries

	delete(s.hashes, hash)
}

// RemoveAll evicts every registered document one hash at a time. A failure
// partway (only possible index-side, and swallowed there) leaves the cleaned
// hashes fully evicted and the rest untouched.
func (s *Session) RemoveAll(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.removeAllLocked(ctx)
}

func (s *Session) removeAllLocked(ctx context.Context) {
	for _, h := range s.registeredLocked() {
		s.removeHashLocked(ctx, h)
	}
}

func (s *Session) registeredLocked() []string {
	out := make([]string, 0, len(s.hashes))
	for h := range s.hashes {
		out = append(out, h)
	}
	return out
}

// ResetReport aggregates the partial failures of a session reset. The reset
// itself always completes locally; the report exists for logging.
type ResetReport struct {
	Errors []error
}

// Clean reports whether every teardown step succeeded.
func (r ResetReport) Clean() bool { return len(r.Errors) == 0 }

// Reset tears the session down to a blank slate: every document is evicted,
// the index collection and any on-disk store are discarded, transcript and
// summaries are cleared, and a fresh collection name is minted so the next
// session never reuses index identifiers. Reset never fails; collaborator
// errors are collected into the report and logged.
func (s *Session) Reset(ctx context.Context) ResetReport {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.removeAllLocked(ctx)

	report := ResetReport{Errors: s.sync.Reset(ctx)}
	for _, err := range report.Errors {
		log.Printf("pdfcopilot: reset step failed (continuing): %v", err)
	}

	s.hashes = make(map[string]struct{})
	s.chunks = nil
	s.summaries = nil
	s.transcript = nil
	return report
}

// Answer retrieves the chunks most relevant to the question, builds the
// grounded prompt and asks the model. The user's question is recorded in the
// transcript even when retrieval or generation fails; the assistant turn is
// recorded only on success.
func (s *Session) Answer(ctx context.Context, question string) (string, []vectordb.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.transcript = append(s.transcript, Message{Role: llm.RoleUser, Content: question})

	retrieved, err := s.sync.Search(ctx, question, s.cfg.TopK)
	if err != nil {
		return "", nil, fmt.Errorf("retrieving context: %w", err)
	}

	prompt := BuildChatPrompt(question, retrieved)
	resp, err := s.provider.Complete(ctx, llm.CompletionRequest{
		Model:       s.cfg.Model,
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: prompt}},
		Temperature: s.cfg.Temperature,
	})
	if err != nil {
		return "", retrieved, fmt.Errorf("generating answer: %w", err)
	}

	s.transcript = append(s.transcript, Message{Role: llm.RoleAssistant, Content: resp.Content})
	return resp.Content, retrieved, nil
}

// uniqueLabel disambiguates a summary label against the labels already in
// use: an exact collision appends the suffix, further collisions append a
// counter.
func uniqueLabel(base string, existing map[string]bool, suffix string) string {
	if !existing[base] {
		return base
	}
	alt := fmt.Sprintf("%s (%s)", base, suffix)
	for i := 2; existing[alt]; i++ {
		alt = fmt.Sprintf("%s (%s-%d)", base, suffix, i)
	}
	return alt
}
