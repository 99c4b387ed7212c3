package model

import "time"

// Config holds the complete leadscan configuration tree.
type Config struct {
	LLM         LLMConfig         `yaml:"llm"`
	Cache       CacheConfig       `yaml:"cache"`
	Store       StoreConfig       `yaml:"store"`
	Concurrency ConcurrencyConfig `yaml:"concurrency"`
	Output      OutputConfig      `yaml:"output"`
}

// LLMConfig configures the model fallback chain.
type LLMConfig struct {
	DeepSeekAPIKey string `yaml:"deepseekApiKey"`
	GeminiAPIKey   string `yaml:"geminiApiKey"`

	// DeepSeekModel is the primary reasoning model
	DeepSeekModel string `yaml:"deepseekModel"`
	// GeminiModel is the secondary general-purpose model
	GeminiModel string `yaml:"geminiModel"`

	// BaseURL overrides for custom endpoints (tests, proxies)
	DeepSeekBaseURL string `yaml:"deepseekBaseUrl"`
	GeminiBaseURL   string `yaml:"geminiBaseUrl"`

	// Timeout per model call, in seconds
	Timeout int `yaml:"timeout"`

	// RequestsPerSecond bounds calls per provider
	RequestsPerSecond float64 `yaml:"requestsPerSecond"`
	BurstSize         int     `yaml:"burstSize"`
}

// CacheConfig configures the verdict cache.
type CacheConfig struct {
	Enabled bool          `yaml:"enabled"`
	Dir     string        `yaml:"dir"`
	TTL     time.Duration `yaml:"ttl"`
}

// StoreConfig locates the persisted headline log and records table.
type StoreConfig struct {
	HeadlinesPath string `yaml:"headlinesPath"`
	RecordsPath   string `yaml:"recordsPath"`
}

// ConcurrencyConfig bounds the enrichment worker pool.
type ConcurrencyConfig struct {
	EnrichWorkers int `yaml:"enrichWorkers"`
}

// OutputConfig controls user-visible output.
type OutputConfig struct {
	Verbose bool `yaml:"verbose"`
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		LLM: LLMConfig{
			DeepSeekModel:     "deepseek-reasoner",
			GeminiModel:       "gemini-2.0-flash",
			Timeout:           45,
			RequestsPerSecond: 1,
			BurstSize:         2,
		},
		Cache: CacheConfig{
			Enabled: true,
			Dir:     ".leadscan-cache",
			TTL:     24 * time.Hour,
		},
		Store: StoreConfig{
			HeadlinesPath: "sent_headlines.json",
			RecordsPath:   "qualified_news.csv",
		},
		Concurrency: ConcurrencyConfig{
			EnrichWorkers: 4,
		},
		Output: OutputConfig{
			Verbose: false,
		},
	}
}
