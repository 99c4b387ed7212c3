package llm

import (
	"fmt"
	"os"

	"github.com/steelscan/leadscan/internal/model"
)

// NewChainFromConfig builds the fixed 4-stage fallback chain: DeepSeek
// client, Gemini client, DeepSeek direct HTTP, Gemini direct HTTP. Stages
// whose API key is absent are left out. With neither key available the
// pipeline must not run, so this returns an error.
func NewChainFromConfig(cfg model.LLMConfig, limiter RateLimiter, verbose bool) (*Chain, error) {
	if cfg.DeepSeekAPIKey == "" && cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("neither DeepSeek nor Gemini API keys are available")
	}

	deepseekCfg, geminiCfg := ConfigsFromModel(cfg)

	var providers []Provider

	if cfg.DeepSeekAPIKey != "" {
		if p, err := NewDeepSeekProvider(deepseekCfg); err == nil {
			providers = append(providers, p)
		} else {
			fmt.Fprintf(os.Stderr, "Failed to initialize DeepSeek provider: %v\n", err)
		}
	}

	if cfg.GeminiAPIKey != "" {
		if p, err := NewGeminiProvider(geminiCfg); err == nil {
			providers = append(providers, p)
		} else {
			fmt.Fprintf(os.Stderr, "Failed to initialize Gemini provider: %v\n", err)
		}
	}

	if cfg.DeepSeekAPIKey != "" {
		if p, err := NewDeepSeekDirectProvider(deepseekCfg); err == nil {
			providers = append(providers, p)
		}
	}

	if cfg.GeminiAPIKey != "" {
		if p, err := NewGeminiDirectProvider(geminiCfg); err == nil {
			providers = append(providers, p)
		}
	}

	if len(providers) == 0 {
		return nil, fmt.Errorf("no model providers could be initialized")
	}

	return NewChain(providers, limiter, verbose), nil
}

// LoadKeysFromEnv fills missing API keys from the environment.
func LoadKeysFromEnv(cfg *model.LLMConfig) {
	if cfg.DeepSeekAPIKey == "" {
		cfg.DeepSeekAPIKey = os.Getenv("DEEPSEEK_API_KEY")
	}
	if cfg.GeminiAPIKey == "" {
		cfg.GeminiAPIKey = os.Getenv("GEMINI_API_KEY")
	}
}
