// Package index holds the in-memory vector index. Chunks are loaded from
// the persisted store and embedded once, on first use; after that the
// index is read-only for the lifetime of the process. Embeddings are never
// persisted and are recomputed on restart.
package index

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"github.com/schollz/progressbar/v3"

	"github.com/deepanshu-yd/avalanche-dev-assistant/internal/domain"
	"github.com/deepanshu-yd/avalanche-dev-assistant/internal/logger"
	"github.com/deepanshu-yd/avalanche-dev-assistant/internal/port"
)

// Ranking modes.
const (
	ModeAuto     = "auto"     // semantic, lexical when query embedding fails
	ModeSemantic = "semantic" // semantic only, query embedding errors propagate
	ModeLexical  = "lexical"  // keyword scoring only, no embeddings needed
)

const defaultTopK = 5

// ChunkLoader supplies the chunk corpus, in source order.
type ChunkLoader interface {
	Load() ([]domain.Chunk, error)
}

// Options tunes index behaviour.
type Options struct {
	// Mode selects the ranking strategy. Defaults to ModeAuto.
	Mode string
	// WarmupConcurrency bounds the in-flight embedding calls during
	// warm-up, clamped to 1..8. Defaults to 4.
	WarmupConcurrency int
	// Progress renders a progress bar during warm-up.
	Progress bool
}

// VectorIndex answers top-K similarity queries. The first call triggers an
// expensive warm-up that embeds every chunk; a mutex guarantees the pass
// runs exactly once even under concurrent first requests.
type VectorIndex struct {
	loader   ChunkLoader
	embedder port.Embedder
	opts     Options

	mu         sync.Mutex
	ready      bool
	chunks     []domain.Chunk
	embeddings [][]float64 // index-aligned with chunks; nil when embedding failed
	embedded   int
}

func NewVectorIndex(loader ChunkLoader, embedder port.Embedder, opts Options) *VectorIndex {
	if opts.Mode == "" {
		opts.Mode = ModeAuto
	}
	if opts.WarmupConcurrency < 1 {
		opts.WarmupConcurrency = 4
	}
	if opts.WarmupConcurrency > 8 {
		opts.WarmupConcurrency = 8
	}
	return &VectorIndex{
		loader:   loader,
		embedder: embedder,
		opts:     opts,
	}
}

// Search returns up to topK chunks ordered by descending similarity, ties
// broken by corpus order. An empty result is valid and means no chunk
// matched.
func (ix *VectorIndex) Search(ctx context.Context, query string, topK int) ([]domain.ScoredChunk, error) {
	if err := ix.ensureReady(ctx); err != nil {
		return nil, err
	}
	if topK <= 0 {
		topK = defaultTopK
	}

	if ix.opts.Mode == ModeLexical {
		return ix.lexicalSearch(query, topK), nil
	}

	queryVec, _, err := ix.embedder.Embed(ctx, query)
	if err != nil {
		if ix.opts.Mode == ModeSemantic {
			return nil, fmt.Errorf("failed to embed query: %w", err)
		}
		logger.Info("query embedding failed, using lexical fallback: %v", err)
		return ix.lexicalSearch(query, topK), nil
	}

	return ix.semanticSearch(queryVec, topK)
}

// Stats reports corpus size and embedded-chunk count, triggering warm-up
// if it has not run yet.
func (ix *VectorIndex) Stats(ctx context.Context) (domain.IndexStats, error) {
	if err := ix.ensureReady(ctx); err != nil {
		return domain.IndexStats{}, err
	}
	ix.mu.Lock()
	defer ix.mu.Unlock()
	return domain.IndexStats{
		TotalChunks:    len(ix.chunks),
		EmbeddedChunks: ix.embedded,
	}, nil
}

// ensureReady loads the corpus and embeds every chunk, exactly once per
// process. Concurrent callers block until the first pass finishes. In
// lexical mode no embeddings are computed.
func (ix *VectorIndex) ensureReady(ctx context.Context) error {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	if ix.ready {
		return nil
	}

	chunks, err := ix.loader.Load()
	if err != nil {
		return err
	}
	ix.chunks = chunks
	ix.embeddings = make([][]float64, len(chunks))

	if ix.opts.Mode != ModeLexical {
		// The warm-up outlives the request that triggered it: a client
		// disconnecting mid-pass must not leave the index permanently
		// unembedded. The embedder owns its per-call timeouts.
		ix.embedded = ix.embedAll(context.WithoutCancel(ctx), chunks)
		logger.Info("index ready: %d/%d chunks embedded", ix.embedded, len(chunks))
	}

	ix.ready = true
	return nil
}

// embedAll embeds every chunk with a bounded fan-out. A chunk that fails
// to embed is logged and skipped; it is excluded from semantic ranking
// rather than scored as a zero vector.
func (ix *VectorIndex) embedAll(ctx context.Context, chunks []domain.Chunk) int {
	if len(chunks) == 0 {
		return 0
	}

	var bar *progressbar.ProgressBar
	if ix.opts.Progress {
		bar = progressbar.NewOptions(len(chunks),
			progressbar.OptionSetDescription("Embedding"),
			progressbar.OptionShowCount(),
			progressbar.OptionSetWidth(40),
		)
	}

	sem := make(chan struct{}, ix.opts.WarmupConcurrency)
	var wg sync.WaitGroup
	var mu sync.Mutex
	embedded := 0

	for i := range chunks {
		sem <- struct{}{}
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			defer func() { <-sem }()

			vec, _, err := ix.embedder.Embed(ctx, chunks[i].Text)
			if err != nil {
				logger.Warn("failed to embed chunk %s: %v", chunks[i].ID, err)
			} else {
				mu.Lock()
				ix.embeddings[i] = vec
				embedded++
				mu.Unlock()
			}
			if bar != nil {
				_ = bar.Add(1)
			}
		}(i)
	}
	wg.Wait()

	return embedded
}

func (ix *VectorIndex) semanticSearch(queryVec []float64, topK int) ([]domain.ScoredChunk, error) {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	results := make([]domain.ScoredChunk, 0, len(ix.chunks))
	for i, chunk := range ix.chunks {
		if ix.embeddings[i] == nil {
			continue
		}
		sim, err := Cosine(queryVec, ix.embeddings[i])
		if err != nil {
			return nil, err
		}
		results = append(results, domain.ScoredChunk{Chunk: chunk, Score: sim})
	}

	return topN(results, topK), nil
}

// lexicalSearch scores chunks by keyword overlap: total substring
// occurrences of each query word longer than 2 characters, normalized by
// chunk length to avoid bias toward long chunks. The score is not a
// cosine similarity and is not bounded to [-1, 1].
func (ix *VectorIndex) lexicalSearch(query string, topK int) []domain.ScoredChunk {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	var words []string
	for _, w := range strings.Fields(strings.ToLower(query)) {
		w = strings.TrimFunc(w, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsDigit(r)
		})
		if utf8.RuneCountInString(w) > 2 {
			words = append(words, w)
		}
	}
	if len(words) == 0 {
		return nil
	}

	var results []domain.ScoredChunk
	for _, chunk := range ix.chunks {
		content := strings.ToLower(chunk.Text)
		count := 0
		for _, w := range words {
			count += strings.Count(content, w)
		}
		if count == 0 {
			continue
		}
		length := float64(utf8.RuneCountInString(content))
		results = append(results, domain.ScoredChunk{
			Chunk: chunk,
			Score: float64(count) / (length / 1000),
		})
	}

	return topN(results, topK)
}

// topN sorts descending by score, stable so ties keep corpus order, and
// truncates to n.
func topN(results []domain.ScoredChunk, n int) []domain.ScoredChunk {
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	if n < len(results) {
		results = results[:n]
	}
	return results
}
