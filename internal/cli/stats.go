package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show corpus and index counters",
	Long: `Load the chunk corpus, warm up the index and report how many chunks
it holds and how many of them carry embeddings.`,
	Args: cobra.NoArgs,
	RunE: runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, _ []string) error {
	cfg := GetConfig()

	idx := buildIndex(cfg, true)
	stats, err := idx.Stats(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to read index stats: %w", err)
	}

	fmt.Printf("Chunks:   %d\n", stats.TotalChunks)
	fmt.Printf("Embedded: %d\n", stats.EmbeddedChunks)
	if stats.TotalChunks > 0 && stats.EmbeddedChunks < stats.TotalChunks {
		fmt.Printf("Skipped:  %d (lexical-only)\n", stats.TotalChunks-stats.EmbeddedChunks)
	}
	return nil
}
