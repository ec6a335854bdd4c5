// Package store persists the chunk corpus as newline-delimited JSON, one
// chunk object per line. The file is written once by the chunk command and
// read once per process by the vector index.
package store

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/deepanshu-yd/avalanche-dev-assistant/internal/domain"
	"github.com/deepanshu-yd/avalanche-dev-assistant/internal/logger"
)

// ErrCorpusMissing indicates the persisted chunk store is absent or
// unreadable. Retrieval is impossible without it, so callers treat this as
// fatal.
var ErrCorpusMissing = errors.New("chunk store missing")

type ChunkStore struct {
	path string
}

func NewChunkStore(path string) *ChunkStore {
	return &ChunkStore{path: path}
}

// Path returns the location of the backing file.
func (s *ChunkStore) Path() string {
	return s.path
}

// Write persists chunks to the store, replacing any previous contents.
func (s *ChunkStore) Write(chunks []domain.Chunk) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("failed to create chunk store directory: %w", err)
	}

	f, err := os.Create(s.path)
	if err != nil {
		return fmt.Errorf("failed to create chunk store: %w", err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	enc := json.NewEncoder(w)
	for _, chunk := range chunks {
		if err := enc.Encode(chunk); err != nil {
			return fmt.Errorf("failed to write chunk %s: %w", chunk.ID, err)
		}
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("failed to flush chunk store: %w", err)
	}
	return f.Sync()
}

// Load reads all chunks from the store in file order. Malformed lines and
// chunks with empty text are skipped with a warning; a missing or
// unreadable file returns ErrCorpusMissing.
func (s *ChunkStore) Load() ([]domain.Chunk, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrCorpusMissing, s.path)
	}
	defer f.Close()

	var chunks []domain.Chunk
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		raw := scanner.Bytes()
		if len(raw) == 0 {
			continue
		}
		var chunk domain.Chunk
		if err := json.Unmarshal(raw, &chunk); err != nil {
			logger.Warn("skipping malformed chunk at %s:%d: %v", s.path, line, err)
			continue
		}
		if chunk.Text == "" {
			logger.Warn("skipping chunk %s with empty text", chunk.ID)
			continue
		}
		chunks = append(chunks, chunk)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorpusMissing, err)
	}
	return chunks, nil
}
