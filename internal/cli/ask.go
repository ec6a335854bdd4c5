package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/deepanshu-yd/avalanche-dev-assistant/internal/usecase"
)

var askShowContext bool

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a question against the indexed docs",
	Long: `Answer a single question from the chunk corpus and print the answer
with its sources. The first question after a restart embeds the whole
corpus, so it takes noticeably longer than the rest.

Examples:
  avalanche-dev-assistant ask "How do I deploy a smart contract?"
  avalanche-dev-assistant ask --context "What is a subnet?"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().BoolVar(&askShowContext, "context", false, "print the retrieved chunks after the answer")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()
	question := strings.Join(args, " ")

	model, err := buildLLM(cfg)
	if err != nil {
		return fmt.Errorf("failed to create answer provider: %w", err)
	}

	idx := buildIndex(cfg, true)
	ask := usecase.NewAskUseCase(idx, model, cfg.Retrieval.TopK, cfg.Retrieval.ContextChunks)

	answer, err := ask.Ask(cmd.Context(), question)
	if err != nil {
		return err
	}

	fmt.Println(answer.Answer)

	if len(answer.Sources) > 0 {
		fmt.Println("\nSources:")
		for _, s := range answer.Sources {
			line := "  - " + s.Title
			if s.Section != "" {
				line += " / " + s.Section
			}
			if s.Similarity != nil {
				line += fmt.Sprintf(" (%.3f)", *s.Similarity)
			}
			if s.URL != "" {
				line += "\n    " + s.URL
			}
			fmt.Println(line)
		}
	}

	if askShowContext {
		for i, sc := range answer.Context {
			fmt.Printf("\n--- Chunk %d (%.3f) ---\n%s\n", i+1, sc.Score, sc.Chunk.Text)
		}
	}

	if answer.TokensUsed > 0 {
		fmt.Printf("\n[%s, %d tokens]\n", answer.Provider, answer.TokensUsed)
	}
	return nil
}
