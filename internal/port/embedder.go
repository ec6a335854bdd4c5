package port

import "context"

// Embedder maps a text string to a fixed-dimension vector.
type Embedder interface {
	// Embed returns the embedding vector for text plus a token count
	// (provider-reported when remote, estimated otherwise).
	Embed(ctx context.Context, text string) ([]float64, int, error)

	// Dimension returns the embedding vector dimension.
	Dimension() int

	// ModelName returns the name of the embedding model.
	ModelName() string
}
