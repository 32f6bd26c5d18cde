package chunker

import (
	"strings"
	"unicode/utf8"

	"github.com/andresherrera/pdfcopilot/internal/doctype"
)

// Profile is the (max size, overlap) pair applied when chunking a document of
// a given category. Sizes are in characters.
type Profile struct {
	MaxSize int
	Overlap int
}

// profiles maps document categories to their chunking parameters. Categories
// not listed here use defaultProfile.
var profiles = map[doctype.Category]Profile{
	doctype.CategoryScreenplay:      {MaxSize: 2000, Overlap: 300},
	doctype.CategoryAcademicArticle: {MaxSize: 1500, Overlap: 200},
	doctype.CategoryResume:          {MaxSize: 800, Overlap: 100},
}

var defaultProfile = Profile{MaxSize: 1200, Overlap: 200}

// ProfileFor returns the chunking profile for a category.
func ProfileFor(category doctype.Category) Profile {
	if p, ok := profiles[category]; ok {
		return p
	}
	return defaultProfile
}

// separators is the split preference, coarsest first. The empty string is the
// terminal fallback: a hard cut at the size limit.
var separators = []string{"\n\n", "\n", ".", "!", "?", " ", ""}

// Chunk is one bounded segment of a document's text.
type Chunk struct {
	Text  string
	Index int
	Size  int
	Total int
}

// Split divides text into overlapping chunks using the profile for the given
// category. Splitting always tries the coarsest separator that keeps segments
// under the size limit before falling back to a finer one, and adjacent
// chunks share roughly Overlap characters. The function is pure: identical
// input always produces the identical chunk sequence.
func Split(text string, category doctype.Category) []Chunk {
	p := ProfileFor(category)
	pieces := merge(segment(text, separators, p.MaxSize), p)

	chunks := make([]Chunk, len(pieces))
	for i, piece := range pieces {
		chunks[i] = Chunk{
			Text:  piece,
			Index: i,
			Size:  len(piece),
			Total: len(pieces),
		}
	}
	return chunks
}

// segment recursively splits text into ordered segments no longer than
// maxSize, preferring the earliest separator in seps. Separators stay
// attached to the end of their segment so that re-joining preserves the text.
func segment(text string, seps []string, maxSize int) []string {
	if text == "" {
		return nil
	}
	if len(text) <= maxSize {
		return []string{text}
	}

	sep := seps[0]
	rest := seps[1:]

	if sep == "" {
		return hardCut(text, maxSize)
	}
	if !strings.Contains(text, sep) {
		return segment(text, rest, maxSize)
	}

	var out []string
	for _, part := range strings.SplitAfter(text, sep) {
		if part == "" {
			continue
		}
		if len(part) <= maxSize {
			out = append(out, part)
		} else {
			out = append(out, segment(part, rest, maxSize)...)
		}
	}
	return out
}

// hardCut slices text into maxSize pieces on rune boundaries.
func hardCut(text string, maxSize int) []string {
	var out []string
	for len(text) > maxSize {
		cut := maxSize
		for cut > 0 && !utf8.RuneStart(text[cut]) {
			cut--
		}
		if cut == 0 {
			cut = maxSize
		}
		out = append(out, text[:cut])
		text = text[cut:]
	}
	if text != "" {
		out = append(out, text)
	}
	return out
}

// merge greedily packs segments into chunks of at most MaxSize characters.
// When a chunk closes, the trailing segments totalling at most Overlap
// characters are carried into the next chunk as cross-boundary context.
func merge(segs []string, p Profile) []string {
	var chunks []string
	var window []string
	total := 0

	emit := func() {
		joined := strings.TrimSpace(strings.Join(window, ""))
		if joined != "" {
			chunks = append(chunks, joined)
		}
	}

	for _, seg := range segs {
		if total+len(seg) > p.MaxSize && len(window) > 0 {
			emit()
			// Shrink the window down to the overlap budget, always leaving
			// room for the incoming segment.
			for len(window) > 0 && (total > p.Overlap || total+len(seg) > p.MaxSize) {
				total -= len(window[0])
				window = window[1:]
			}
		}
		window = append(window, seg)
		total += len(seg)
	}
	if len(window) > 0 {
		emit()
	}
	return chunks
}
