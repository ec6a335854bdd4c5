package chunker

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"regexp"
	"strings"

	"github.com/deepanshu-yd/avalanche-dev-assistant/internal/domain"
)

// Splitting bounds, in characters. Segments at or under maxSegment are
// emitted whole; larger segments are cut into overlapping windows.
const (
	DefaultMaxSegment = 2000
	DefaultWindow     = 1200
	DefaultOverlap    = 200
)

var (
	headingRe = regexp.MustCompile(`(?m)^#{1,3}\s.*$`)
	titleRe   = regexp.MustCompile(`(?m)^#\s+(.*)$`)
	sectionRe = regexp.MustCompile(`^#{2,3}\s+(.*)$`)
	sourceRe  = regexp.MustCompile(`(?i)<!--\s*source:\s*(.*?)\s*-->`)
)

// HeadingChunker splits markdown documents into chunks bounded by heading
// structure and a maximum size. Chunk IDs are a deterministic function of
// the document path, the enclosing heading and the slice index, so
// re-chunking unchanged input yields identical IDs.
type HeadingChunker struct {
	maxSegment int
	window     int
	overlap    int
}

func NewHeadingChunker(maxSegment, window, overlap int) *HeadingChunker {
	if maxSegment <= 0 {
		maxSegment = DefaultMaxSegment
	}
	if window <= 0 {
		window = DefaultWindow
	}
	if overlap < 0 || overlap >= window {
		overlap = DefaultOverlap
	}
	return &HeadingChunker{
		maxSegment: maxSegment,
		window:     window,
		overlap:    overlap,
	}
}

type segment struct {
	heading string
	body    string
}

// Chunk splits one document into chunks. Empty documents and segments with
// empty bodies produce nothing.
func (c *HeadingChunker) Chunk(path, content string) []domain.Chunk {
	title := titleFrom(content)
	url := sourceURLFrom(content)

	// The provenance marker is metadata, not retrievable text.
	content = sourceRe.ReplaceAllString(content, "")

	var chunks []domain.Chunk
	for _, seg := range headingSplit(content) {
		section := sectionFrom(seg.heading)
		body := []rune(seg.body)

		if len(body) <= c.maxSegment {
			chunks = append(chunks, domain.Chunk{
				ID:      chunkID(path, seg.heading, -1),
				URL:     url,
				Title:   title,
				Section: section,
				Tokens:  approxTokens(seg.body),
				Text:    seg.body,
			})
			continue
		}

		for idx, piece := range splitWithOverlap(body, c.window, c.overlap) {
			chunks = append(chunks, domain.Chunk{
				ID:      chunkID(path, seg.heading, idx),
				URL:     url,
				Title:   title,
				Section: section,
				Tokens:  approxTokens(piece),
				Text:    piece,
			})
		}
	}

	return chunks
}

// headingSplit cuts the document at heading lines (1-3 leading '#'). A
// document without headings yields one segment with an empty heading. The
// preamble before the first heading, if any, is attributed to that first
// heading. Segments with empty bodies are dropped.
func headingSplit(content string) []segment {
	heads := headingRe.FindAllString(content, -1)
	if len(heads) == 0 {
		body := strings.TrimSpace(content)
		if body == "" {
			return nil
		}
		return []segment{{heading: "", body: body}}
	}

	parts := headingRe.Split(content, -1)
	segments := make([]segment, 0, len(parts))
	for i, part := range parts {
		body := strings.TrimSpace(part)
		if body == "" {
			continue
		}
		heading := heads[0]
		if i > 0 {
			heading = heads[i-1]
		}
		segments = append(segments, segment{heading: strings.TrimSpace(heading), body: body})
	}
	return segments
}

// splitWithOverlap slices text into windows of at most size runes where
// consecutive windows share overlap runes. The final window may be shorter.
func splitWithOverlap(text []rune, size, overlap int) []string {
	var pieces []string
	i := 0
	for i < len(text) {
		end := i + size
		if end > len(text) {
			end = len(text)
		}
		pieces = append(pieces, string(text[i:end]))
		if end == len(text) {
			break
		}
		i = end - overlap
		if i < 0 {
			i = 0
		}
	}
	return pieces
}

// chunkID hashes the composite key path:heading-or-root[:index]. A
// negative index means the segment was emitted whole.
func chunkID(path, heading string, index int) string {
	key := heading
	if key == "" {
		key = "root"
	}
	composite := path + ":" + key
	if index >= 0 {
		composite = fmt.Sprintf("%s:%d", composite, index)
	}
	sum := sha1.Sum([]byte(composite))
	return hex.EncodeToString(sum[:])
}

func titleFrom(content string) string {
	if m := titleRe.FindStringSubmatch(content); m != nil {
		if t := strings.TrimSpace(m[1]); t != "" {
			return t
		}
	}
	return "Untitled"
}

func sectionFrom(heading string) string {
	if m := sectionRe.FindStringSubmatch(heading); m != nil {
		return strings.TrimSpace(m[1])
	}
	return ""
}

func sourceURLFrom(content string) string {
	if m := sourceRe.FindStringSubmatch(content); m != nil {
		return strings.TrimSpace(m[1])
	}
	return ""
}

// approxTokens counts whitespace-delimited words as a token proxy.
func approxTokens(s string) int {
	return len(strings.Fields(s))
}
