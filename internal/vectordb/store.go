package vectordb

import "context"

// Store is the vector index used for retrieval. Collection administration is
// part of the interface: callers create and discard whole collections through
// it rather than reaching into the backing client.
type Store interface {
	// EnsureCollection creates (or re-binds to) the named collection.
	// All later Add/Search/Delete calls operate on it.
	EnsureCollection(name string) error

	// Add inserts documents, embedding their content. Document IDs are
	// caller-assigned; re-adding an existing ID overwrites it.
	Add(ctx context.Context, docs []Document) error

	// Search returns up to k documents ranked by similarity to the query.
	Search(ctx context.Context, query string, k int) ([]Result, error)

	// DeleteByIDs removes the documents with the given IDs.
	DeleteByIDs(ctx context.Context, ids []string) error

	// DeleteWhere removes every document whose metadata matches the filter.
	DeleteWhere(ctx context.Context, where map[string]string) error

	// DeleteCollection discards the named collection and all its contents.
	DeleteCollection(name string) error

	// Count returns the number of documents in the current collection.
	Count() int
}
