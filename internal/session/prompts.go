package session

import (
	"fmt"
	"strings"

	"github.com/andresherrera/pdfcopilot/internal/doctype"
	"github.com/andresherrera/pdfcopilot/internal/vectordb"
)

// FallbackAnswer is the fixed sentence the model is instructed to emit when
// the retrieved context holds no evidence for the question.
const FallbackAnswer = "No se encontró evidencia en los documentos."

// ChatTemplate renders a retrieval-grounded prompt. The pieces are data, not
// code, so a variant can be swapped in without touching the assembly logic.
type ChatTemplate struct {
	// Preamble takes the user question.
	Preamble string
	// ChunkBlock takes the 1-based rank, source filename, chunk index and
	// chunk content.
	ChunkBlock string
	// Closing restates the expected answer format.
	Closing string
}

// DefaultChatTemplate is the standard question-answering prompt. Retrieval
// already disambiguates content across document categories, so a single chat
// template serves all of them.
var DefaultChatTemplate = ChatTemplate{
	Preamble: `Eres un asistente experto que responde preguntas sobre documentos PDF.
Usa SOLO la información en el CONTEXTO proporcionado.

Instrucciones específicas:
- Responde en español de manera clara y estructurada. Si en el documento hay palabras en inglés, debes responder todo en español y traducir las palabras.
- Usa bullets para organizar la información.
- Si la información se repite en varios chunks, haz un resumen coherente y humano.
- Si no hay información suficiente, responde: "` + FallbackAnswer + `" a menos de que puedas inferir la información a partir de los chunks.
- Mantén el contexto y la coherencia en tu respuesta.
- Sé breve, y no seas redundante.

Pregunta del usuario: %s

Contexto (chunks relevantes encontrados):`,
	ChunkBlock: "--- CHUNK %d [Fuente: %s - Chunk %d] ---\n%s",
	Closing: `--- INSTRUCCIONES FINALES ---
Basándote en el contexto anterior, responde la pregunta del usuario de manera clara, estructurada y simple.

Respuesta:`,
}

// BuildChatPrompt renders the question plus one labeled block per retrieved
// chunk using the default template. Chunk content is never truncated and no
// overall length budget is enforced.
func BuildChatPrompt(question string, retrieved []vectordb.Result) string {
	return DefaultChatTemplate.Render(question, retrieved)
}

// Render assembles preamble, chunk blocks and closing instructions.
func (t ChatTemplate) Render(question string, retrieved []vectordb.Result) string {
	var b strings.Builder
	fmt.Fprintf(&b, t.Preamble, question)
	b.WriteString("\n")
	for i, r := range retrieved {
		b.WriteString("\n")
		fmt.Fprintf(&b, t.ChunkBlock, i+1, r.Document.Metadata.Source, r.Document.Metadata.ChunkIndex, r.Document.Content)
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(t.Closing)
	return b.String()
}

// summaryHeadLimit bounds how much document text a summary prompt carries.
const summaryHeadLimit = 3000

// summaryTemplates holds the per-category summary instructions; categories
// without an entry use defaultSummaryTemplate. Each takes the truncated
// document text.
var summaryTemplates = map[doctype.Category]string{
	doctype.CategoryScreenplay: `Eres un experto en análisis de guiones cinematográficos.
Analiza este guion y proporciona:

1. Tipo de documento: Guion cinematográfico
2. Título/Historia
3. Género
4. Resumen de trama (2-3 oraciones)
5. Personajes principales (3-4)
6. Estructura (escenas/actos)

Texto del guion:
%s...

Resumen estructurado:`,
	doctype.CategoryAcademicArticle: `Eres un experto en análisis de artículos académicos.
Analiza este artículo y proporciona:

1. Tipo de documento: Artículo académico
2. Título
3. Área de estudio
4. Objetivo
5. Metodología
6. Hallazgos clave (2-3)

Texto del artículo:
%s...

Resumen estructurado:`,
	doctype.CategoryResume: `Eres un experto en análisis de currículos.
Analiza este CV y proporciona:

1. Tipo de documento: Curriculum Vitae
2. Profesión principal
3. Años de experiencia
4. Educación (nivel más alto)
5. Habilidades clave (3-4)
6. Perfil profesional (1-2 oraciones)

Texto del CV:
%s...

Resumen estructurado:`,
}

var defaultSummaryTemplate = `Eres un asistente que analiza documentos.
Analiza este documento y proporciona:

1. Tipo de documento
2. Propósito
3. Contenido principal
4. Estructura
5. Audiencia objetivo

Texto del documento:
%s...

Resumen estructurado:`

// BuildSummaryPrompt renders the summary instructions for a document's
// category over the head of its text.
func BuildSummaryPrompt(text string, category doctype.Category) string {
	tmpl, ok := summaryTemplates[category]
	if !ok {
		tmpl = defaultSummaryTemplate
	}
	return fmt.Sprintf(tmpl, truncateRunes(text, summaryHeadLimit))
}

// truncateRunes cuts text after at most n runes, never mid-rune.
func truncateRunes(text string, n int) string {
	if len(text) <= n {
		return text
	}
	runes := []rune(text)
	if len(runes) <= n {
		return text
	}
	return string(runes[:n])
}
