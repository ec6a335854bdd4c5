package usecase

import (
	"fmt"
	"path/filepath"

	adapterfs "github.com/deepanshu-yd/avalanche-dev-assistant/internal/adapter/fs"
	"github.com/deepanshu-yd/avalanche-dev-assistant/internal/domain"
	"github.com/deepanshu-yd/avalanche-dev-assistant/internal/logger"
	"github.com/deepanshu-yd/avalanche-dev-assistant/internal/port"
)

// ChunkWriter persists the chunk corpus.
type ChunkWriter interface {
	Write(chunks []domain.Chunk) error
}

// IngestUseCase turns the raw-docs tree into the persisted chunk corpus.
type IngestUseCase struct {
	walker  port.FileWalker
	chunker port.Chunker
	writer  ChunkWriter
}

func NewIngestUseCase(walker port.FileWalker, chunker port.Chunker, writer ChunkWriter) *IngestUseCase {
	return &IngestUseCase{
		walker:  walker,
		chunker: chunker,
		writer:  writer,
	}
}

// ChunkDocs chunks every document under root and writes the corpus.
// Chunk IDs are derived from the path relative to root, so moving the
// tree does not change identities. Returns the total chunk count.
func (u *IngestUseCase) ChunkDocs(root string) (int, error) {
	files, err := u.walker.Walk(root)
	if err != nil {
		return 0, fmt.Errorf("failed to walk docs tree: %w", err)
	}

	var all []domain.Chunk
	for _, rel := range files {
		content, err := adapterfs.ReadFile(filepath.Join(root, filepath.FromSlash(rel)))
		if err != nil {
			logger.Warn("skipping unreadable document %s: %v", rel, err)
			continue
		}
		chunks := u.chunker.Chunk(rel, content)
		logger.Debug("chunked %s into %d chunks", rel, len(chunks))
		all = append(all, chunks...)
	}

	if err := u.writer.Write(all); err != nil {
		return 0, err
	}
	return len(all), nil
}
