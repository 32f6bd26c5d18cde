package vectordb

import (
	"github.com/andresherrera/pdfcopilot/internal/doctype"
)

// Document is one chunk of an uploaded file as stored in the vector index.
type Document struct {
	ID       string
	Content  string
	Metadata Metadata
}

// Metadata carries the provenance of a chunk.
type Metadata struct {
	Source      string           // original filename
	FileHash    string           // content hash of the owning document
	DocType     doctype.Category // detected document category
	ChunkIndex  int
	ChunkSize   int
	TotalChunks int
}

// Result pairs a document with its similarity score for a query.
type Result struct {
	Document   Document
	Similarity float32
}
