package pdf

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// Page holds the text extracted from one PDF page.
type Page struct {
	Number int
	Text   string
}

// Extractor extracts per-page text from raw PDF bytes using pdfcpu.
// pdfcpu works on files, so extraction round-trips through a temp directory.
type Extractor struct {
	tempDir string
}

// NewExtractor creates a PDF extractor working under the system temp dir.
func NewExtractor() *Extractor {
	tempDir := filepath.Join(os.TempDir(), "pdfcopilot")
	os.MkdirAll(tempDir, 0755)
	return &Extractor{tempDir: tempDir}
}

// ExtractPages returns the text of every page in the document, in order.
// Pages that yield no text are returned with an empty Text; FullText skips
// them. A document that cannot be parsed at all returns an error.
func (e *Extractor) ExtractPages(ctx context.Context, data []byte) ([]Page, error) {
	workDir, err := os.MkdirTemp(e.tempDir, "extract-")
	if err != nil {
		return nil, fmt.Errorf("create work dir: %w", err)
	}
	defer os.RemoveAll(workDir)

	tempFile := filepath.Join(workDir, "doc.pdf")
	if err := os.WriteFile(tempFile, data, 0644); err != nil {
		return nil, fmt.Errorf("write temp pdf: %w", err)
	}

	pdfCtx, err := api.ReadContextFile(tempFile)
	if err != nil {
		return nil, fmt.Errorf("read pdf: %w", err)
	}
	pageCount := pdfCtx.PageCount

	outDir := filepath.Join(workDir, "pages")
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return nil, fmt.Errorf("create pages dir: %w", err)
	}

	conf := model.NewDefaultConfiguration()
	if err := api.ExtractContentFile(tempFile, outDir, nil, conf); err != nil {
		return nil, fmt.Errorf("extract pdf content: %w", err)
	}

	pageTexts := make(map[int]string)
	entries, _ := os.ReadDir(outDir)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		content, err := os.ReadFile(filepath.Join(outDir, entry.Name()))
		if err != nil {
			continue
		}
		var pageNum int
		if _, err := fmt.Sscanf(entry.Name(), "Content_page_%d", &pageNum); err != nil {
			if _, err := fmt.Sscanf(entry.Name(), "page_%d", &pageNum); err != nil {
				continue
			}
		}
		pageTexts[pageNum] = string(content)
	}

	pages := make([]Page, 0, pageCount)
	for n := 1; n <= pageCount; n++ {
		pages = append(pages, Page{Number: n, Text: pageTexts[n]})
	}
	return pages, nil
}

// FullText joins the non-empty pages with newlines, silently skipping pages
// without extractable text.
func FullText(pages []Page) string {
	var b strings.Builder
	for _, p := range pages {
		if strings.TrimSpace(p.Text) == "" {
			continue
		}
		b.WriteString(p.Text)
		b.WriteString("\n")
	}
	return b.String()
}
