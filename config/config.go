// Package config loads the assistant configuration from assistant.yaml,
// layered over defaults, with environment overrides for the values the
// deployment environment owns (port, crawl budget, provider choice).
// API keys are read from the environment only; a .env file is honoured
// when present.
package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the assistant.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Docs      DocsConfig      `yaml:"docs"`
	Embedding EmbeddingConfig `yaml:"embedding"`
	Retrieval RetrievalConfig `yaml:"retrieval"`
	LLM       LLMConfig       `yaml:"llm"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port       int    `yaml:"port"`
	CORSOrigin string `yaml:"cors_origin"`
}

// DocsConfig holds crawl and corpus layout configuration.
type DocsConfig struct {
	RawDir         string   `yaml:"raw_dir"`
	ChunksFile     string   `yaml:"chunks_file"`
	CrawlStateFile string   `yaml:"crawl_state_file"`
	Seeds          []string `yaml:"seeds"`
	AllowedDomains []string `yaml:"allowed_domains"`
	MaxPages       int      `yaml:"max_pages"`
	MaxDepth       int      `yaml:"max_depth"`
	Concurrency    int      `yaml:"concurrency"`
	FetchTimeout   int      `yaml:"fetch_timeout_secs"`
}

// EmbeddingConfig holds embedding provider configuration.
type EmbeddingConfig struct {
	Model             string `yaml:"model"`
	APIKeyEnv         string `yaml:"api_key_env"`
	Dimension         int    `yaml:"dimension"`
	MaxInputChars     int    `yaml:"max_input_chars"`
	Timeout           int    `yaml:"timeout_secs"`
	WarmupConcurrency int    `yaml:"warmup_concurrency"`
}

// RetrievalConfig holds search configuration.
type RetrievalConfig struct {
	TopK int `yaml:"top_k"`
	// Mode selects the ranking strategy: "auto" embeds the query and
	// falls back to lexical scoring when that fails, "semantic" and
	// "lexical" force one strategy.
	Mode          string `yaml:"mode"`
	ContextChunks int    `yaml:"context_chunks"`
}

// LLMConfig holds answer-generation configuration.
type LLMConfig struct {
	Provider       string  `yaml:"provider"` // "anthropic" or "openai"
	OpenAIModel    string  `yaml:"openai_model"`
	AnthropicModel string  `yaml:"anthropic_model"`
	MaxTokens      int     `yaml:"max_tokens"`
	Temperature    float32 `yaml:"temperature"`
	Timeout        int     `yaml:"timeout_secs"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:       3000,
			CORSOrigin: "*",
		},
		Docs: DocsConfig{
			RawDir:         "data/raw",
			ChunksFile:     "data/chunks/chunks.jsonl",
			CrawlStateFile: "data/crawl.db",
			Seeds: []string{
				"https://build.avax.network/docs",
				"https://docs.avax.network",
			},
			AllowedDomains: []string{"build.avax.network", "docs.avax.network"},
			MaxPages:       150,
			MaxDepth:       2,
			Concurrency:    3,
			FetchTimeout:   20,
		},
		Embedding: EmbeddingConfig{
			Model:             "text-embedding-3-small",
			APIKeyEnv:         "OPENAI_API_KEY",
			Dimension:         1536,
			MaxInputChars:     8000,
			Timeout:           15,
			WarmupConcurrency: 4,
		},
		Retrieval: RetrievalConfig{
			TopK:          5,
			Mode:          "auto",
			ContextChunks: 3,
		},
		LLM: LLMConfig{
			Provider:       "anthropic",
			OpenAIModel:    "gpt-4-1106-preview",
			AnthropicModel: "claude-3-5-sonnet-20241022",
			MaxTokens:      1000,
			Temperature:    0.1,
			Timeout:        60,
		},
	}
}

// Load loads configuration from a YAML file, returning defaults if the
// file does not exist. Environment overrides are applied last.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			applyEnv(cfg)
			return cfg, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	applyEnv(cfg)
	return cfg, nil
}

// LoadFromDir loads configuration from a directory (looks for assistant.yaml).
func LoadFromDir(dir string) (*Config, error) {
	return Load(filepath.Join(dir, "assistant.yaml"))
}

// Save writes the configuration to a YAML file.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// OpenAIKey returns the OpenAI API key, empty if not configured.
func (c *Config) OpenAIKey() string {
	return os.Getenv(c.Embedding.APIKeyEnv)
}

// AnthropicKey returns the Anthropic API key, empty if not configured.
func (c *Config) AnthropicKey() string {
	return os.Getenv("ANTHROPIC_API_KEY")
}

func applyEnv(cfg *Config) {
	if v, ok := envInt("PORT"); ok {
		cfg.Server.Port = v
	}
	if v := os.Getenv("CORS_ORIGIN"); v != "" {
		cfg.Server.CORSOrigin = v
	}
	if v := os.Getenv("LLM_PROVIDER"); v != "" {
		cfg.LLM.Provider = v
	}
	if v, ok := envInt("DOCS_MAX_PAGES"); ok {
		cfg.Docs.MaxPages = v
	}
	if v, ok := envInt("DOCS_MAX_DEPTH"); ok {
		cfg.Docs.MaxDepth = v
	}
	if v, ok := envInt("DOCS_CONCURRENCY"); ok {
		cfg.Docs.Concurrency = v
	}
}

func envInt(name string) (int, bool) {
	v := os.Getenv(name)
	if v == "" {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return n, true
}
