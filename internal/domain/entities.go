package domain

// Chunk is the unit of retrieval: a bounded slice of a source document with
// a stable identity. Chunks are created once by the chunker, persisted as
// JSONL, and consumed read-only for the lifetime of the serving process.
type Chunk struct {
	ID      string `json:"id"`
	URL     string `json:"url,omitempty"`
	Title   string `json:"title"`
	Section string `json:"section,omitempty"`
	Tokens  int    `json:"tokens"`
	Text    string `json:"text"`
}

// ScoredChunk pairs a chunk with a similarity score for one query.
// In semantic mode the score is a cosine similarity; in lexical fallback
// mode it is a keyword-density score on an unrelated scale.
type ScoredChunk struct {
	Chunk Chunk
	Score float64
}

// Source is a citation attached to an answer.
type Source struct {
	Title      string   `json:"title"`
	URL        string   `json:"url,omitempty"`
	Section    string   `json:"section,omitempty"`
	Similarity *float64 `json:"similarity,omitempty"`
}

// Answer is the result of running a question through retrieval plus the
// language model.
type Answer struct {
	Answer     string
	Sources    []Source
	Context    []ScoredChunk
	TokensUsed int
	Provider   string
}

// IndexStats reports operational counters for the vector index.
type IndexStats struct {
	TotalChunks    int `json:"total_chunks"`
	EmbeddedChunks int `json:"embedded_chunks"`
}

// CrawledPage records one fetched page in the crawl manifest.
type CrawledPage struct {
	URL  string `json:"url"`
	File string `json:"file"`
}
