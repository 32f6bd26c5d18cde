package cmd

import (
	"fmt"
	"os"
	"sort"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/andresherrera/pdfcopilot/internal/config"
	"github.com/andresherrera/pdfcopilot/internal/embeddings"
	"github.com/andresherrera/pdfcopilot/internal/llm"
	"github.com/andresherrera/pdfcopilot/internal/pdf"
	"github.com/andresherrera/pdfcopilot/internal/session"
	"github.com/andresherrera/pdfcopilot/internal/vectordb"
)

// createEmbedderFromConfig creates an embeddings.Embedder based on config.
// Shared by the chat, ask and serve commands.
func createEmbedderFromConfig(cfg *config.Config) (embeddings.Embedder, error) {
	provider := cfg.EmbeddingProvider
	if provider == "" {
		provider = cfg.Provider
	}

	switch provider {
	case config.ProviderOpenAI:
		apiKey := os.Getenv("OPENAI_API_KEY")
		if apiKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY environment variable is required for OpenAI embeddings")
		}
		return embeddings.NewOpenAIEmbedder(apiKey, cfg.EmbeddingModel), nil
	case config.ProviderOllama:
		return embeddings.NewOllamaEmbedder(cfg.EmbeddingModel, cfg.OllamaHost), nil
	default:
		return nil, fmt.Errorf("unsupported embedding provider: %s", provider)
	}
}

// createLLMProviderFromConfig creates an LLM provider based on config settings.
func createLLMProviderFromConfig(cfg *config.Config) (llm.Provider, error) {
	return llm.NewProvider(string(cfg.Provider), cfg.Model, cfg.OllamaHost)
}

// loadConfig loads and validates the config, providing a user-friendly error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `pdfcopilot init` to create a config file", err)
	}
	return cfg, nil
}

// newSession wires a full session from the config: PDF extractor, embedder,
// vector store and LLM provider.
func newSession(cfg *config.Config) (*session.Session, error) {
	embedder, err := createEmbedderFromConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("creating embedder: %w", err)
	}

	store, err := vectordb.NewChromemStore(embedder, cfg.PersistDir)
	if err != nil {
		return nil, fmt.Errorf("creating vector store: %w", err)
	}

	provider, err := createLLMProviderFromConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("creating LLM provider: %w", err)
	}

	return session.New(cfg, pdf.NewExtractor(), provider, store), nil
}

// resolvePDFArgs expands glob patterns (with ** support) into a sorted,
// de-duplicated list of PDF paths. A literal path that does not exist is an
// error; a pattern matching nothing is skipped.
func resolvePDFArgs(args []string) ([]string, error) {
	seen := make(map[string]bool)
	var paths []string
	for _, arg := range args {
		matches, err := doublestar.FilepathGlob(arg)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %q: %w", arg, err)
		}
		if len(matches) == 0 {
			if _, statErr := os.Stat(arg); statErr != nil {
				return nil, fmt.Errorf("no files match %q", arg)
			}
			matches = []string{arg}
		}
		for _, m := range matches {
			if !seen[m] {
				seen[m] = true
				paths = append(paths, m)
			}
		}
	}
	sort.Strings(paths)
	return paths, nil
}

// readUploads loads the given paths into pipeline uploads.
func readUploads(paths []string) ([]session.Upload, error) {
	uploads := make([]session.Upload, 0, len(paths))
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", p, err)
		}
		uploads = append(uploads, session.Upload{Filename: p, Data: data})
	}
	return uploads, nil
}
