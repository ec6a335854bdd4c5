package cli

import (
	"fmt"
	"time"

	"github.com/deepanshu-yd/avalanche-dev-assistant/config"
	"github.com/deepanshu-yd/avalanche-dev-assistant/internal/adapter/embedding"
	"github.com/deepanshu-yd/avalanche-dev-assistant/internal/adapter/index"
	"github.com/deepanshu-yd/avalanche-dev-assistant/internal/adapter/llm"
	"github.com/deepanshu-yd/avalanche-dev-assistant/internal/adapter/store"
	"github.com/deepanshu-yd/avalanche-dev-assistant/internal/logger"
	"github.com/deepanshu-yd/avalanche-dev-assistant/internal/port"
)

// buildEmbedder picks the embedding provider from the environment. Without
// an OpenAI key the deterministic local embedder is used, so every command
// works offline, just with weaker retrieval.
func buildEmbedder(cfg *config.Config) port.Embedder {
	fallback := embedding.NewFallbackEmbedder(cfg.Embedding.Dimension)

	key := cfg.OpenAIKey()
	if key == "" {
		logger.Info("%s not set, using deterministic local embeddings", cfg.Embedding.APIKeyEnv)
		return fallback
	}

	primary, err := embedding.NewOpenAIEmbedder(key, cfg.Embedding.Model,
		cfg.Embedding.MaxInputChars, time.Duration(cfg.Embedding.Timeout)*time.Second)
	if err != nil {
		logger.Warn("failed to create OpenAI embedder: %v, using local embeddings", err)
		return fallback
	}
	return embedding.NewResilient(primary)
}

// buildLLM picks the answer provider. The configured provider wins when
// its key is present; otherwise the other provider is tried before
// giving up.
func buildLLM(cfg *config.Config) (port.LLM, error) {
	timeout := time.Duration(cfg.LLM.Timeout) * time.Second

	provider := cfg.LLM.Provider
	switch provider {
	case "anthropic":
		if cfg.AnthropicKey() == "" && cfg.OpenAIKey() != "" {
			logger.Warn("ANTHROPIC_API_KEY not set, answering with OpenAI instead")
			provider = "openai"
		}
	case "openai":
		if cfg.OpenAIKey() == "" && cfg.AnthropicKey() != "" {
			logger.Warn("%s not set, answering with Anthropic instead", cfg.Embedding.APIKeyEnv)
			provider = "anthropic"
		}
	}

	switch provider {
	case "anthropic":
		return llm.NewAnthropic(cfg.AnthropicKey(), cfg.LLM.AnthropicModel,
			cfg.LLM.MaxTokens, cfg.LLM.Temperature, timeout)
	case "openai":
		return llm.NewOpenAI(cfg.OpenAIKey(), cfg.LLM.OpenAIModel,
			cfg.LLM.MaxTokens, cfg.LLM.Temperature, timeout)
	default:
		return nil, fmt.Errorf("unsupported llm provider: %s", cfg.LLM.Provider)
	}
}

// buildIndex assembles the corpus store and the in-memory vector index.
// The index warms up lazily on the first search.
func buildIndex(cfg *config.Config, progress bool) *index.VectorIndex {
	return index.NewVectorIndex(
		store.NewChunkStore(cfg.Docs.ChunksFile),
		buildEmbedder(cfg),
		index.Options{
			Mode:              cfg.Retrieval.Mode,
			WarmupConcurrency: cfg.Embedding.WarmupConcurrency,
			Progress:          progress,
		},
	)
}
