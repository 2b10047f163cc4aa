package llm

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/http"
	"strings"
	"time"

	"courtside/config"

	cohere "github.com/cohere-ai/cohere-go/v2"
	cohereclient "github.com/cohere-ai/cohere-go/v2/client"
)

// CohereChat implements Provider using the Cohere Chat API.
// Docs: https://docs.cohere.com/reference/chat
// SDK: github.com/cohere-ai/cohere-go/v2
type CohereChat struct {
	client *cohereclient.Client
	model  string
}

// NewCohereChat creates a Cohere-backed provider.
func NewCohereChat(apiKey, model string) *CohereChat {
	if model == "" || !strings.HasPrefix(model, "command") {
		model = "command-r-plus"
	}
	// Force HTTP/1.1 to avoid HTTP/2 protocol errors against the Cohere edge.
	httpClient := &http.Client{
		Timeout: 120 * time.Second,
		Transport: &http.Transport{
			TLSNextProto:      make(map[string]func(authority string, c *tls.Conn) http.RoundTripper),
			ForceAttemptHTTP2: false,
		},
	}
	client := cohereclient.NewClient(
		cohereclient.WithToken(apiKey),
		cohereclient.WithHTTPClient(httpClient),
	)
	return &CohereChat{client: client, model: model}
}

func (c *CohereChat) ModelName() string { return c.model }

// Complete runs one chat turn with the system text as preamble.
func (c *CohereChat) Complete(ctx context.Context, req Request) (string, error) {
	maxTokens := req.MaxTokens
	if maxTokens == 0 {
		maxTokens = config.CompletionMaxTokens
	}
	temperature := config.CompletionTemperature

	resp, err := c.client.Chat(ctx, &cohere.ChatRequest{
		Model:       &c.model,
		Message:     req.User,
		Preamble:    &req.System,
		Temperature: &temperature,
		MaxTokens:   &maxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("cohere chat error: %w", err)
	}
	return strings.TrimSpace(resp.Text), nil
}
