package config

// ProviderType identifies an LLM or embedding backend.
type ProviderType string

const (
	ProviderOllama ProviderType = "ollama"
	ProviderOpenAI ProviderType = "openai"
)

// Config is the top-level pdfcopilot configuration, corresponding to
// .pdfcopilot.yml with PDFCOPILOT_* environment overrides.
type Config struct {
	Provider          ProviderType `yaml:"provider" koanf:"provider"`
	Model             string       `yaml:"model" koanf:"model"`
	Temperature       float64      `yaml:"temperature" koanf:"temperature"`
	EmbeddingProvider ProviderType `yaml:"embedding_provider" koanf:"embedding_provider"`
	EmbeddingModel    string       `yaml:"embedding_model" koanf:"embedding_model"`
	OllamaHost        string       `yaml:"ollama_host" koanf:"ollama_host"`

	// PersistDir is where the vector index lives on disk. Empty means the
	// index is held in memory only and vanishes with the process.
	PersistDir string `yaml:"persist_dir" koanf:"persist_dir"`

	// TopK is how many chunks a question retrieves for grounding.
	TopK int `yaml:"top_k" koanf:"top_k"`

	// Port is the HTTP port for `pdfcopilot serve`.
	Port int `yaml:"port" koanf:"port"`
}

// DefaultConfig returns a Config matching the zero-setup local deployment:
// a local Ollama for both generation and embeddings, in-memory index.
func DefaultConfig() *Config {
	return &Config{
		Provider:          ProviderOllama,
		Model:             "llama3",
		Temperature:       0.1,
		EmbeddingProvider: ProviderOllama,
		EmbeddingModel:    "nomic-embed-text",
		PersistDir:        "",
		TopK:              5,
		Port:              8080,
	}
}
