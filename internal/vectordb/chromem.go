package vectordb

import (
	"context"
	"fmt"
	"strconv"

	chromem "github.com/philippgille/chromem-go"

	"github.com/andresherrera/pdfcopilot/internal/doctype"
	"github.com/andresherrera/pdfcopilot/internal/embeddings"
)

// ChromemStore implements Store using chromem-go. With an empty persist
// directory the index lives in memory only; otherwise chromem writes every
// collection under that directory.
type ChromemStore struct {
	db         *chromem.DB
	collection *chromem.Collection
	embedFunc  chromem.EmbeddingFunc
}

// NewChromemStore creates a store backed by chromem-go. persistDir may be
// empty for a purely in-memory index.
func NewChromemStore(embedder embeddings.Embedder, persistDir string) (*ChromemStore, error) {
	ef := embeddings.ToChromemFunc(embedder)

	var db *chromem.DB
	if persistDir == "" {
		db = chromem.NewDB()
	} else {
		var err error
		db, err = chromem.NewPersistentDB(persistDir, true)
		if err != nil {
			return nil, fmt.Errorf("open persistent db at %s: %w", persistDir, err)
		}
	}

	return &ChromemStore{db: db, embedFunc: ef}, nil
}

func (s *ChromemStore) EnsureCollection(name string) error {
	col, err := s.db.GetOrCreateCollection(name, nil, s.embedFunc)
	if err != nil {
		return fmt.Errorf("create collection %q: %w", name, err)
	}
	s.collection = col
	return nil
}

func (s *ChromemStore) Add(ctx context.Context, docs []Document) error {
	if s.collection == nil {
		return fmt.Errorf("no collection bound; call EnsureCollection first")
	}
	if len(docs) == 0 {
		return nil
	}

	chromemDocs := make([]chromem.Document, len(docs))
	for i, doc := range docs {
		chromemDocs[i] = chromem.Document{
			ID:       doc.ID,
			Content:  doc.Content,
			Metadata: metadataToMap(doc.Metadata),
		}
	}
	return s.collection.AddDocuments(ctx, chromemDocs, 1)
}

func (s *ChromemStore) Search(ctx context.Context, query string, k int) ([]Result, error) {
	if s.collection == nil {
		return nil, fmt.Errorf("no collection bound; call EnsureCollection first")
	}
	if k <= 0 {
		k = 5
	}

	// chromem-go requires nResults <= collection size.
	count := s.collection.Count()
	if count == 0 {
		return nil, nil
	}
	if k > count {
		k = count
	}

	results, err := s.collection.Query(ctx, query, k, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("chromem query: %w", err)
	}

	out := make([]Result, len(results))
	for i, r := range results {
		out[i] = Result{
			Document: Document{
				ID:       r.ID,
				Content:  r.Content,
				Metadata: mapToMetadata(r.Metadata),
			},
			Similarity: r.Similarity,
		}
	}
	return out, nil
}

func (s *ChromemStore) DeleteByIDs(ctx context.Context, ids []string) error {
	if s.collection == nil || len(ids) == 0 {
		return nil
	}
	return s.collection.Delete(ctx, nil, nil, ids...)
}

func (s *ChromemStore) DeleteWhere(ctx context.Context, where map[string]string) error {
	if s.collection == nil || len(where) == 0 {
		return nil
	}
	return s.collection.Delete(ctx, where, nil)
}

func (s *ChromemStore) DeleteCollection(name string) error {
	if err := s.db.DeleteCollection(name); err != nil {
		return fmt.Errorf("delete collection %q: %w", name, err)
	}
	s.collection = nil
	return nil
}

func (s *ChromemStore) Count() int {
	if s.collection == nil {
		return 0
	}
	return s.collection.Count()
}

// metadataToMap flattens Metadata into chromem's map[string]string form.
// The filehash key is what DeleteWhere filters on.
func metadataToMap(m Metadata) map[string]string {
	return map[string]string{
		"source":       m.Source,
		"filehash":     m.FileHash,
		"doc_type":     string(m.DocType),
		"chunk_id":     strconv.Itoa(m.ChunkIndex),
		"chunk_size":   strconv.Itoa(m.ChunkSize),
		"total_chunks": strconv.Itoa(m.TotalChunks),
	}
}

func mapToMetadata(m map[string]string) Metadata {
	chunkIndex, _ := strconv.Atoi(m["chunk_id"])
	chunkSize, _ := strconv.Atoi(m["chunk_size"])
	totalChunks, _ := strconv.Atoi(m["total_chunks"])

	return Metadata{
		Source:      m["source"],
		FileHash:    m["filehash"],
		DocType:     doctype.Category(m["doc_type"]),
		ChunkIndex:  chunkIndex,
		ChunkSize:   chunkSize,
		TotalChunks: totalChunks,
	}
}
