package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/deepanshu-yd/avalanche-dev-assistant/internal/domain"
	"github.com/deepanshu-yd/avalanche-dev-assistant/internal/port"
)

const systemPrompt = `You are an expert Avalanche blockchain developer assistant. You help developers build applications on the Avalanche platform.

Your role is to:
- Answer questions clearly and concisely for developers
- Provide practical, actionable guidance
- Reference specific documentation when relevant
- Focus on Avalanche-specific features and best practices

Always answer based on the provided documentation context. If the context doesn't contain enough information, say so and suggest where to look for more details.`

// NoMatchesAnswer is returned when retrieval finds nothing relevant.
// An empty result set is a valid outcome, not an error.
const NoMatchesAnswer = "No relevant documentation found. Please refine your question or try asking about Avalanche smart contracts, subnets, or development tools."

// AskUseCase runs a question through retrieval and answer generation.
type AskUseCase struct {
	searcher      port.Searcher
	llm           port.LLM
	topK          int
	contextChunks int
}

func NewAskUseCase(searcher port.Searcher, llm port.LLM, topK, contextChunks int) *AskUseCase {
	if topK <= 0 {
		topK = 5
	}
	if contextChunks <= 0 || contextChunks > topK {
		contextChunks = 3
	}
	return &AskUseCase{
		searcher:      searcher,
		llm:           llm,
		topK:          topK,
		contextChunks: contextChunks,
	}
}

// Ask retrieves the chunks most relevant to question and asks the
// language model to answer from them.
func (u *AskUseCase) Ask(ctx context.Context, question string) (domain.Answer, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return domain.Answer{}, fmt.Errorf("question is required")
	}

	results, err := u.searcher.Search(ctx, question, u.topK)
	if err != nil {
		return domain.Answer{}, fmt.Errorf("search failed: %w", err)
	}

	if len(results) == 0 {
		return domain.Answer{
			Answer:   NoMatchesAnswer,
			Sources:  []domain.Source{},
			Provider: u.llm.Provider(),
		}, nil
	}

	text, tokens, err := u.llm.Generate(ctx, systemPrompt, buildUserPrompt(question, results, u.contextChunks))
	if err != nil {
		return domain.Answer{}, fmt.Errorf("answer generation failed: %w", err)
	}

	return domain.Answer{
		Answer:     text,
		Sources:    sourcesFrom(results),
		Context:    results,
		TokensUsed: tokens,
		Provider:   u.llm.Provider(),
	}, nil
}

// buildUserPrompt concatenates the top chunks into a delimited context
// block, each labelled with its section when it has one.
func buildUserPrompt(question string, results []domain.ScoredChunk, contextChunks int) string {
	if contextChunks > len(results) {
		contextChunks = len(results)
	}

	blocks := make([]string, 0, contextChunks)
	for i, r := range results[:contextChunks] {
		label := fmt.Sprintf("[Document %d", i+1)
		if r.Chunk.Section != "" {
			label += " - " + r.Chunk.Section
		}
		label += "]:"
		blocks = append(blocks, label+"\n"+r.Chunk.Text)
	}

	return fmt.Sprintf(`User question: %s

Relevant Avalanche documentation:
%s

Please provide a clear, developer-focused answer based on the documentation above.`,
		question, strings.Join(blocks, "\n\n---\n\n"))
}

func sourcesFrom(results []domain.ScoredChunk) []domain.Source {
	sources := make([]domain.Source, 0, len(results))
	for _, r := range results {
		sim := r.Score
		sources = append(sources, domain.Source{
			Title:      r.Chunk.Title,
			URL:        r.Chunk.URL,
			Section:    r.Chunk.Section,
			Similarity: &sim,
		})
	}
	return sources
}
