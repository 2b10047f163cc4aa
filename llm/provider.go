package llm

import (
	"context"
	"os"
)

// Request is one completion call: a system role, a user role, and an output
// bound. The temperature is fixed across the pipeline.
type Request struct {
	System string
	User   string
	// MaxTokens bounds the output; zero selects CompletionMaxTokens.
	MaxTokens int
}

// Provider abstracts a chat completion service.
type Provider interface {
	Complete(ctx context.Context, req Request) (string, error)
	ModelName() string
}

// NewDefaultProvider returns a completion provider if configured via env.
// Cohere is preferred when COHERE_API_KEY is set, then OpenAI; nil means no
// provider is configured and generation stages must degrade.
func NewDefaultProvider(preferredModel string) Provider {
	if cohereKey := os.Getenv("COHERE_API_KEY"); cohereKey != "" {
		return NewCohereChat(cohereKey, preferredModel)
	}
	if apiKey := os.Getenv("OPENAI_API_KEY"); apiKey != "" {
		return NewOpenAIChat(apiKey, preferredModel)
	}
	return nil
}
