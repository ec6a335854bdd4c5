package embedding

import (
	"context"

	"github.com/deepanshu-yd/avalanche-dev-assistant/internal/logger"
	"github.com/deepanshu-yd/avalanche-dev-assistant/internal/port"
)

// Resilient wraps a remote embedder with the deterministic fallback.
// Provider failures are logged and absorbed: the caller gets a fallback
// vector instead of an error, so retrieval quality degrades rather than
// the service failing outright. Only input errors (empty text) propagate.
type Resilient struct {
	primary  port.Embedder
	fallback *FallbackEmbedder
}

// NewResilient builds the fallback from the primary's dimension, so a
// degraded vector is always comparable with provider vectors.
func NewResilient(primary port.Embedder) *Resilient {
	return &Resilient{
		primary:  primary,
		fallback: NewFallbackEmbedder(primary.Dimension()),
	}
}

func (e *Resilient) Embed(ctx context.Context, text string) ([]float64, int, error) {
	if text == "" {
		return nil, 0, ErrEmptyInput
	}

	vec, tokens, err := e.primary.Embed(ctx, text)
	if err == nil {
		return vec, tokens, nil
	}

	logger.Warn("embedding provider failed, using fallback: %v", err)
	return e.fallback.Embed(ctx, text)
}

// Dimension reports the primary's dimension; the fallback is constructed
// to match it.
func (e *Resilient) Dimension() int {
	return e.primary.Dimension()
}

func (e *Resilient) ModelName() string {
	return e.primary.ModelName()
}
