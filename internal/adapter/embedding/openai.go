// Package embedding provides the text embedders: a remote OpenAI client
// and a deterministic offline fallback, plus the wrapper that degrades
// from one to the other.
package embedding

import (
	"context"
	"fmt"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAIEmbedder calls the OpenAI embeddings API. Input is truncated to
// maxInputChars to respect provider limits; every call carries a timeout
// so one slow request cannot stall a warm-up pass.
type OpenAIEmbedder struct {
	client        *openai.Client
	model         string
	dimension     int
	maxInputChars int
	timeout       time.Duration
}

func NewOpenAIEmbedder(apiKey, model string, maxInputChars int, timeout time.Duration) (*OpenAIEmbedder, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("missing OpenAI API key")
	}
	if maxInputChars <= 0 {
		maxInputChars = 8000
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	dimension := 1536
	switch model {
	case "text-embedding-3-small", "text-embedding-ada-002":
		dimension = 1536
	case "text-embedding-3-large":
		dimension = 3072
	}

	return &OpenAIEmbedder{
		client:        openai.NewClient(apiKey),
		model:         model,
		dimension:     dimension,
		maxInputChars: maxInputChars,
		timeout:       timeout,
	}, nil
}

func (e *OpenAIEmbedder) Embed(ctx context.Context, text string) ([]float64, int, error) {
	if text == "" {
		return nil, 0, ErrEmptyInput
	}

	runes := []rune(text)
	if len(runes) > e.maxInputChars {
		text = string(runes[:e.maxInputChars])
	}

	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	resp, err := e.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Model: openai.EmbeddingModel(e.model),
		Input: []string{text},
	})
	if err != nil {
		return nil, 0, fmt.Errorf("embedding request failed: %w", err)
	}
	if len(resp.Data) == 0 {
		return nil, 0, fmt.Errorf("embedding response contained no data")
	}

	raw := resp.Data[0].Embedding
	vec := make([]float64, len(raw))
	for i, v := range raw {
		vec[i] = float64(v)
	}

	return vec, resp.Usage.TotalTokens, nil
}

func (e *OpenAIEmbedder) Dimension() int {
	return e.dimension
}

func (e *OpenAIEmbedder) ModelName() string {
	return e.model
}
