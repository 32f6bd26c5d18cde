package llm

import "context"

// Provider is a synchronous text generation backend. There is no streaming:
// Complete blocks until the full response text is available.
type Provider interface {
	// Complete sends a completion request and returns the response.
	Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error)
	// Name returns the name of this provider.
	Name() string
}
