package port

import (
	"context"

	"github.com/deepanshu-yd/avalanche-dev-assistant/internal/domain"
)

// Searcher answers top-K similarity queries over the chunk corpus.
type Searcher interface {
	// Search returns up to topK chunks ordered by descending similarity.
	// An empty result is valid, not an error.
	Search(ctx context.Context, query string, topK int) ([]domain.ScoredChunk, error)

	// Stats reports corpus size and how many chunks carry an embedding.
	Stats(ctx context.Context) (domain.IndexStats, error)
}
