package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/deepanshu-yd/avalanche-dev-assistant/internal/adapter/chunker"
	"github.com/deepanshu-yd/avalanche-dev-assistant/internal/adapter/fs"
	"github.com/deepanshu-yd/avalanche-dev-assistant/internal/adapter/store"
	"github.com/deepanshu-yd/avalanche-dev-assistant/internal/usecase"
)

var chunkCmd = &cobra.Command{
	Use:   "chunk",
	Short: "Build the chunk corpus from the raw docs",
	Long: `Split every crawled document along its headings into retrievable
chunks and write them to the chunks file. Chunk IDs are deterministic,
so re-running over unchanged docs produces an identical corpus.`,
	Args: cobra.NoArgs,
	RunE: runChunk,
}

func init() {
	rootCmd.AddCommand(chunkCmd)
}

func runChunk(_ *cobra.Command, _ []string) error {
	cfg := GetConfig()

	u := usecase.NewIngestUseCase(
		fs.NewWalker(nil, nil),
		chunker.NewHeadingChunker(0, 0, 0),
		store.NewChunkStore(cfg.Docs.ChunksFile),
	)

	count, err := u.ChunkDocs(cfg.Docs.RawDir)
	if err != nil {
		return fmt.Errorf("chunking failed: %w", err)
	}

	fmt.Printf("Wrote %d chunks to %s\n", count, cfg.Docs.ChunksFile)
	return nil
}
