package port

import "github.com/deepanshu-yd/avalanche-dev-assistant/internal/domain"

// Chunker splits one cleaned document into retrievable chunks.
type Chunker interface {
	Chunk(path, content string) []domain.Chunk
}
