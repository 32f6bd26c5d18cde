package llm

import (
	"fmt"
	"os"
)

// NewProvider creates an LLM provider for the given type and model.
// Supported provider types: "ollama", "openai".
func NewProvider(providerType, model, ollamaHost string) (Provider, error) {
	switch providerType {
	case "ollama":
		host := ollamaHost
		if host == "" {
			host = os.Getenv("OLLAMA_HOST")
		}
		if host == "" {
			host = "http://localhost:11434"
		}
		return NewOllamaProvider(host, model), nil

	case "openai":
		apiKey := os.Getenv("OPENAI_API_KEY")
		if apiKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY environment variable is not set")
		}
		return NewOpenAIProvider(apiKey, model), nil

	default:
		return nil, fmt.Errorf("unsupported provider type: %s", providerType)
	}
}
