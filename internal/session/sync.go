package session

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/google/uuid"

	"github.com/andresherrera/pdfcopilot/internal/vectordb"
)

// Synchronizer owns the vector index for one session: the collection
// lifecycle and the mapping from content hash to the index identifiers of
// that document's chunks. Identifiers are derived purely from the hash
// (`hash-0`, `hash-1`, ...), so re-processing identical bytes reproduces the
// same identifiers.
//
// The synchronizer is not safe for concurrent use; the owning Session
// serializes access through its mutex.
type Synchronizer struct {
	store      vectordb.Store
	persistDir string

	collection string
	bound      bool
	idsByHash  map[string][]string
}

// NewSynchronizer creates a synchronizer over the given store. persistDir is
// the on-disk index location ("" = in-memory); Reset removes it entirely.
func NewSynchronizer(store vectordb.Store, persistDir string) *Synchronizer {
	return &Synchronizer{
		store:      store,
		persistDir: persistDir,
		collection: newCollectionName(),
		idsByHash:  make(map[string][]string),
	}
}

func newCollectionName() string {
	return "pdfcopilot-" + uuid.NewString()[:8]
}

// Collection returns the current collection name.
func (s *Synchronizer) Collection() string { return s.collection }

// Contains reports whether the hash has been indexed in this session.
func (s *Synchronizer) Contains(hash string) bool {
	_, ok := s.idsByHash[hash]
	return ok
}

// IDs returns the recorded index identifiers for a hash.
func (s *Synchronizer) IDs(hash string) []string { return s.idsByHash[hash] }

// ensureCollection lazily creates the collection on first use.
func (s *Synchronizer) ensureCollection() error {
	if s.bound {
		return nil
	}
	if err := s.store.EnsureCollection(s.collection); err != nil {
		return err
	}
	s.bound = true
	return nil
}

// Add indexes a document's chunks under its content hash. If the hash is
// already recorded the call is a no-op: a document is indexed at most once
// per session. Identifiers are assigned here, overwriting whatever ID the
// caller left on the chunk documents. An index failure leaves the hash
// unrecorded so the same bytes can be retried later.
func (s *Synchronizer) Add(ctx context.Context, hash string, docs []vectordb.Document) error {
	if s.Contains(hash) {
		return nil
	}
	if err := s.ensureCollection(); err != nil {
		return fmt.Errorf("ensure collection: %w", err)
	}

	ids := make([]string, len(docs))
	for i := range docs {
		ids[i] = fmt.Sprintf("%s-%d", hash, i)
		docs[i].ID = ids[i]
	}

	if len(docs) > 0 {
		if err := s.store.Add(ctx, docs); err != nil {
			return fmt.Errorf("index chunks for %s: %w", shortHash(hash), err)
		}
	}
	s.idsByHash[hash] = ids
	return nil
}

// Remove deletes a document's entries from the index, preferring the recorded
// identifier list and falling back to a metadata filter when the list is
// missing. Removal is best-effort: index failures are logged and swallowed,
// never surfaced, and the in-memory record is dropped regardless.
func (s *Synchronizer) Remove(ctx context.Context, hash string) {
	if s.bound {
		ids := s.idsByHash[hash]
		var err error
		if len(ids) > 0 {
			err = s.store.DeleteByIDs(ctx, ids)
		} else {
			err = s.store.DeleteWhere(ctx, map[string]string{"filehash": hash})
		}
		if err != nil {
			log.Printf("pdfcopilot: index removal for %s failed (continuing): %v", shortHash(hash), err)
		}
	}
	delete(s.idsByHash, hash)
}

// Search runs a nearest-neighbor query against the session's collection.
func (s *Synchronizer) Search(ctx context.Context, query string, k int) ([]vectordb.Result, error) {
	if err := s.ensureCollection(); err != nil {
		return nil, fmt.Errorf("ensure collection: %w", err)
	}
	return s.store.Search(ctx, query, k)
}

// Reset discards the whole collection, the on-disk store if one is
// configured, and the in-memory identifier map, then mints a fresh collection
// name. Every step is best-effort: failures are collected into the returned
// slice for logging but never block the local teardown.
func (s *Synchronizer) Reset(ctx context.Context) []error {
	var errs []error

	if s.bound {
		if err := s.store.DeleteCollection(s.collection); err != nil {
			errs = append(errs, fmt.Errorf("delete collection %s: %w", s.collection, err))
		}
	}
	if s.persistDir != "" {
		if err := os.RemoveAll(s.persistDir); err != nil {
			errs = append(errs, fmt.Errorf("remove persist dir %s: %w", s.persistDir, err))
		}
	}

	s.idsByHash = make(map[string][]string)
	s.collection = newCollectionName()
	s.bound = false
	return errs
}

func shortHash(hash string) string {
	if len(hash) > 8 {
		return hash[:8]
	}
	return hash
}
