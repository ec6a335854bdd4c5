package chunker

import (
	"strings"
	"testing"
)

func TestChunkBasicDocument(t *testing.T) {
	c := NewHeadingChunker(0, 0, 0)

	content := `<!-- source: https://build.avax.network/docs/subnets -->

# Avalanche Subnets

Subnets let you customize blockchain rules.

## Creating a Subnet

Use the avalanche-cli to create a subnet.

### Validators

Every subnet needs at least one validator.
`

	chunks := c.Chunk("docs/subnets.md", content)
	if len(chunks) != 3 {
		t.Fatalf("expected 3 chunks, got %d", len(chunks))
	}

	for _, ch := range chunks {
		if ch.Title != "Avalanche Subnets" {
			t.Errorf("expected title 'Avalanche Subnets', got %q", ch.Title)
		}
		if ch.URL != "https://build.avax.network/docs/subnets" {
			t.Errorf("unexpected url %q", ch.URL)
		}
		if ch.Text == "" {
			t.Error("chunk has empty text")
		}
		if ch.ID == "" {
			t.Error("chunk has empty ID")
		}
	}

	// Level-1 heading never becomes a section label.
	if chunks[0].Section != "" {
		t.Errorf("first chunk section should be empty, got %q", chunks[0].Section)
	}
	if chunks[1].Section != "Creating a Subnet" {
		t.Errorf("expected section 'Creating a Subnet', got %q", chunks[1].Section)
	}
	if chunks[2].Section != "Validators" {
		t.Errorf("expected section 'Validators', got %q", chunks[2].Section)
	}
}

func TestChunkNoHeadings(t *testing.T) {
	c := NewHeadingChunker(0, 0, 0)

	chunks := c.Chunk("notes.txt", "Plain text without any headings.\nSecond line.")
	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunks))
	}
	if chunks[0].Title != "Untitled" {
		t.Errorf("expected title 'Untitled', got %q", chunks[0].Title)
	}
	if chunks[0].Section != "" {
		t.Errorf("expected empty section, got %q", chunks[0].Section)
	}
}

func TestChunkEmptyDocument(t *testing.T) {
	c := NewHeadingChunker(0, 0, 0)

	if chunks := c.Chunk("empty.md", ""); len(chunks) != 0 {
		t.Errorf("empty document should produce no chunks, got %d", len(chunks))
	}
	if chunks := c.Chunk("blank.md", "   \n\n  "); len(chunks) != 0 {
		t.Errorf("whitespace-only document should produce no chunks, got %d", len(chunks))
	}
}

func TestChunkHeadingsWithEmptyBodies(t *testing.T) {
	c := NewHeadingChunker(0, 0, 0)

	chunks := c.Chunk("headings.md", "# Title\n\n## Empty One\n\n## Empty Two\n")
	if len(chunks) != 0 {
		t.Errorf("headings with empty bodies should produce no chunks, got %d", len(chunks))
	}
}

func TestChunkSegmentAtThreshold(t *testing.T) {
	c := NewHeadingChunker(0, 0, 0)

	body := strings.Repeat("a", DefaultMaxSegment)
	chunks := c.Chunk("edge.md", "# Doc\n\n"+body)
	if len(chunks) != 1 {
		t.Fatalf("segment exactly at threshold should stay whole, got %d chunks", len(chunks))
	}
	if len(chunks[0].Text) != DefaultMaxSegment {
		t.Errorf("expected %d chars, got %d", DefaultMaxSegment, len(chunks[0].Text))
	}
}

func TestChunkOverlapSplit(t *testing.T) {
	c := NewHeadingChunker(0, 0, 0)

	body := strings.Repeat("x", 3000)
	chunks := c.Chunk("long.md", "# Doc\n\n"+body)
	if len(chunks) < 2 {
		t.Fatalf("expected multiple slices, got %d", len(chunks))
	}

	for i, ch := range chunks {
		if len(ch.Text) > DefaultWindow {
			t.Errorf("slice %d exceeds window: %d chars", i, len(ch.Text))
		}
	}

	// Consecutive slices overlap by exactly DefaultOverlap characters,
	// except possibly the final shorter slice.
	for i := 0; i < len(chunks)-1; i++ {
		tail := chunks[i].Text[len(chunks[i].Text)-DefaultOverlap:]
		head := chunks[i+1].Text[:DefaultOverlap]
		if tail != head {
			t.Errorf("slices %d and %d do not overlap by %d chars", i, i+1, DefaultOverlap)
		}
	}

	// Slice IDs are sequence-qualified and unique.
	seen := make(map[string]bool)
	for _, ch := range chunks {
		if seen[ch.ID] {
			t.Errorf("duplicate chunk ID %s", ch.ID)
		}
		seen[ch.ID] = true
	}
}

func TestChunkIdempotent(t *testing.T) {
	c := NewHeadingChunker(0, 0, 0)

	content := "# Doc\n\nSome body.\n\n## More\n\n" + strings.Repeat("y", 2500)

	first := c.Chunk("doc.md", content)
	second := c.Chunk("doc.md", content)

	if len(first) != len(second) {
		t.Fatalf("chunk counts differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].ID != second[i].ID {
			t.Errorf("chunk %d ID not stable: %s vs %s", i, first[i].ID, second[i].ID)
		}
	}

	// A different path must change the IDs.
	other := c.Chunk("other.md", content)
	if other[0].ID == first[0].ID {
		t.Error("IDs should depend on the document path")
	}
}

func TestApproxTokens(t *testing.T) {
	if got := approxTokens("deploy a smart contract"); got != 4 {
		t.Errorf("expected 4 tokens, got %d", got)
	}
	if got := approxTokens("  spaced\t\nout  words "); got != 3 {
		t.Errorf("expected 3 tokens, got %d", got)
	}
	if got := approxTokens(""); got != 0 {
		t.Errorf("expected 0 tokens, got %d", got)
	}
}
