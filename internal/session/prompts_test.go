package session

import (
	"strings"
	"testing"

	"github.com/andresherrera/pdfcopilot/internal/doctype"
	"github.com/andresherrera/pdfcopilot/internal/vectordb"
)

func retrievedChunk(source, hash, content string, idx int) vectordb.Result {
	return vectordb.Result{
		Document: vectordb.Document{
			ID:      hash + "-0",
			Content: content,
			Metadata: vectordb.Metadata{
				Source:     source,
				FileHash:   hash,
				DocType:    doctype.CategoryGeneral,
				ChunkIndex: idx,
			},
		},
		Similarity: 0.9,
	}
}

func TestBuildChatPrompt(t *testing.T) {
	retrieved := []vectordb.Result{
		retrievedChunk("guion.pdf", "aaa", "la escena transcurre de noche", 3),
		retrievedChunk("paper.pdf", "bbb", "los resultados del estudio", 0),
	}

	prompt := BuildChatPrompt("¿dónde transcurre la historia?", retrieved)

	if !strings.Contains(prompt, "¿dónde transcurre la historia?") {
		t.Error("prompt missing the literal question")
	}
	if !strings.Contains(prompt, "--- CHUNK 1 [Fuente: guion.pdf - Chunk 3] ---") {
		t.Error("prompt missing first chunk block header")
	}
	if !strings.Contains(prompt, "--- CHUNK 2 [Fuente: paper.pdf - Chunk 0] ---") {
		t.Error("prompt missing second chunk block header")
	}
	if !strings.Contains(prompt, "la escena transcurre de noche") {
		t.Error("prompt missing chunk content")
	}
	if !strings.Contains(prompt, FallbackAnswer) {
		t.Error("prompt missing the fixed fallback sentence")
	}
	if !strings.Contains(prompt, "--- INSTRUCCIONES FINALES ---") {
		t.Error("prompt missing closing instructions")
	}

	// Order: preamble, then chunks, then closing.
	if strings.Index(prompt, "CHUNK 1") > strings.Index(prompt, "CHUNK 2") {
		t.Error("chunk blocks out of order")
	}
	if strings.Index(prompt, "CHUNK 2") > strings.Index(prompt, "INSTRUCCIONES FINALES") {
		t.Error("closing instructions should come last")
	}
}

func TestBuildChatPromptNoChunks(t *testing.T) {
	prompt := BuildChatPrompt("¿hay algo?", nil)
	if !strings.Contains(prompt, "¿hay algo?") {
		t.Error("prompt missing question")
	}
	if strings.Contains(prompt, "--- CHUNK") {
		t.Error("prompt should have no chunk blocks")
	}
}

func TestBuildSummaryPromptPerCategory(t *testing.T) {
	tests := []struct {
		category doctype.Category
		marker   string
	}{
		{doctype.CategoryScreenplay, "guiones cinematográficos"},
		{doctype.CategoryAcademicArticle, "artículos académicos"},
		{doctype.CategoryResume, "currículos"},
		{doctype.CategoryManual, "analiza documentos"},
		{doctype.CategoryGeneral, "analiza documentos"},
	}
	for _, tc := range tests {
		prompt := BuildSummaryPrompt("texto del documento", tc.category)
		if !strings.Contains(prompt, tc.marker) {
			t.Errorf("summary prompt for %q missing marker %q", tc.category, tc.marker)
		}
		if !strings.Contains(prompt, "texto del documento") {
			t.Errorf("summary prompt for %q missing document text", tc.category)
		}
	}
}

func TestBuildSummaryPromptTruncates(t *testing.T) {
	long := strings.Repeat("á", 5000)
	prompt := BuildSummaryPrompt(long, doctype.CategoryGeneral)
	if got := strings.Count(prompt, "á"); got != summaryHeadLimit {
		t.Errorf("prompt carries %d runes of text, want %d", got, summaryHeadLimit)
	}
}
