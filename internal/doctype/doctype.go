package doctype

import (
	"regexp"
	"strings"
)

// Category identifies the detected kind of an uploaded document.
// The values double as the `doc_type` metadata stored with each chunk.
type Category string

const (
	CategoryScreenplay        Category = "guion_pelicula"
	CategoryAcademicArticle   Category = "articulo_academico"
	CategoryTechnicalReport   Category = "informe_tecnico"
	CategoryResume            Category = "curriculum_vitae"
	CategoryManual            Category = "manual_instrucciones"
	CategoryEducationBrochure Category = "brochure_educativo"
	CategoryServicesBrochure  Category = "brochure_servicios"
	CategoryGeneral           Category = "documento_general"
)

// categoryPatterns pairs a category with its detection patterns. The table is
// a slice, not a map: scoring iterates in declaration order, so score ties
// resolve to the category declared first.
type categoryPatterns struct {
	category Category
	patterns []*regexp.Regexp
}

func mustCompile(exprs ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(exprs))
	for i, e := range exprs {
		out[i] = regexp.MustCompile(`(?im)` + e)
	}
	return out
}

var patternTable = []categoryPatterns{
	{CategoryScreenplay, mustCompile(
		`\b(int\.|ext\.|int/|ext/|noche|día|night|day|morning|evening)\b`,
		`(fade in:|fade out\.|cut to:|dissolve to:|escena|scene|acto|act)`,
		`^[A-Z][A-Z0-9\s\-'\.]{2,}$`,
		`\([^)]+\)`,
		`(screenplay|guion|script|dialogue|diálogo|personaje|voz en off|v\.o\.|o\.s\.)`,
	)},
	{CategoryAcademicArticle, mustCompile(
		`\b(abstract|resumen|introduction|introducción|conclusion|conclusión)\b`,
		`\b(references|bibliography|bibliografía|citation|cita)\b`,
		`\b(methodology|metodología|results|resultados|discussion|discusión)\b`,
	)},
	{CategoryTechnicalReport, mustCompile(
		`\b(executive summary|resumen ejecutivo|technical|técnico)\b`,
		`\b(specifications|especificaciones|requirements|requisitos)\b`,
		`\b(implementation|implementación|deployment|despliegue)\b`,
	)},
	{CategoryResume, mustCompile(
		`\b(experience|experiencia|education|educación|skills|habilidades)\b`,
		`\b(work history|historial laboral|professional|profesional)\b`,
		`\b(resume|cv|curriculum|curriculum vitae)\b`,
	)},
	{CategoryManual, mustCompile(
		`\b(step|paso|instruction|instrucción|procedure|procedimiento)\b`,
		`\b(how to|cómo|tutorial|guide|guía|manual)\b`,
		`\b(installation|instalación|setup|configuración)\b`,
	)},
	{CategoryEducationBrochure, mustCompile(
		`\b(diplomado|diploma|certificado|certificación|curso|programa)\b`,
		`\b(educación|educativo|académico|universidad|instituto|escuela|facultad)\b`,
		`\b(objetivos|competencias|habilidades|conocimientos|aprendizaje|formación)\b`,
		`\b(duración|horas|créditos|módulos|asignaturas|materias|semanas)\b`,
		`\b(inversión|precio|costo|matrícula|inscripción|becas|descuentos)\b`,
		`\b(profesores|docentes|instructores|facilitadores|expertos|especialistas)\b`,
		`\b(metodología|modalidad|presencial|online|híbrido|flexible|intensivo)\b`,
		`\b(requisitos|perfil|público|dirigido|participantes|estudiantes)\b`,
		`\b(plan de estudios|malla curricular|contenidos|temario|syllabus)\b`,
		`\b(acreditación|reconocimiento|validez|certificación|título)\b`,
		`\b(infraestructura|laboratorios|recursos|biblioteca|tecnología)\b`,
		`\b(convenios|partnerships|colaboraciones|redes|alianzas)\b`,
	)},
	{CategoryServicesBrochure, mustCompile(
		`\b(servicios|servicio|soluciones|solucion|productos|producto)\b`,
		`\b(empresa|compañía|corporación|organización|institución|firma)\b`,
		`\b(experiencia|trayectoria|años|historia|misión|visión|valores)\b`,
		`\b(clientes|casos de éxito|testimonios|referencias|portfolio)\b`,
		`\b(contacto|teléfono|email|dirección|ubicación|horarios|atención)\b`,
		`\b(precios|tarifas|cotizaciones|presupuestos|ofertas|promociones)\b`,
		`\b(garantía|calidad|certificaciones|estándares|normas|iso)\b`,
		`\b(equipo|profesionales|consultores|asesores|especialistas)\b`,
		`\b(tecnología|innovación|metodologías|procesos|herramientas)\b`,
		`\b(cobertura|alcance|mercados|sectores|industrias)\b`,
	)},
}

// filenameHint maps filename substrings to a category, tried in order when
// no pattern matched the text at all.
type filenameHint struct {
	keywords []string
	category Category
}

var filenameHints = []filenameHint{
	{[]string{"script", "guion", "screenplay"}, CategoryScreenplay},
	{[]string{"cv", "resume", "curriculum"}, CategoryResume},
	{[]string{"manual", "guide", "tutorial"}, CategoryManual},
	{[]string{"paper", "article", "research"}, CategoryAcademicArticle},
}

// Classify scores the text against every category's patterns and returns the
// best match. Identical inputs always yield the same category: the pattern
// table has a fixed order and the max comparison is strict, so ties go to the
// earliest entry. A zero top score falls back to filename substrings, then to
// CategoryGeneral.
func Classify(text, filename string) Category {
	best := CategoryGeneral
	bestScore := 0
	for _, cp := range patternTable {
		score := 0
		for _, re := range cp.patterns {
			score += len(re.FindAllStringIndex(text, -1))
		}
		if score > bestScore {
			best = cp.category
			bestScore = score
		}
	}
	if bestScore > 0 {
		return best
	}

	lower := strings.ToLower(filename)
	for _, hint := range filenameHints {
		for _, kw := range hint.keywords {
			if strings.Contains(lower, kw) {
				return hint.category
			}
		}
	}
	return CategoryGeneral
}

// All returns every known category, generic fallback included.
func All() []Category {
	cats := make([]Category, 0, len(patternTable)+1)
	for _, cp := range patternTable {
		cats = append(cats, cp.category)
	}
	return append(cats, CategoryGeneral)
}
