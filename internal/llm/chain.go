package llm

import (
	"context"
	"fmt"
	"os"
)

// RateLimiter gates calls per provider name.
type RateLimiter interface {
	Wait(ctx context.Context, key string) error
}

// Chain tries an ordered list of providers and returns the first success.
// Each stage is attempted exactly once per call; a failed stage is never
// retried, the chain just advances. Only when every stage fails does the
// call fail terminally.
type Chain struct {
	providers []Provider
	limiter   RateLimiter
	verbose   bool
}

// NewChain creates a fallback chain over the given providers. The limiter
// may be nil.
func NewChain(providers []Provider, limiter RateLimiter, verbose bool) *Chain {
	return &Chain{
		providers: providers,
		limiter:   limiter,
		verbose:   verbose,
	}
}

// Providers returns the ordered provider list.
func (c *Chain) Providers() []Provider {
	return c.providers
}

// Complete runs the prompt down the chain.
func (c *Chain) Complete(ctx context.Context, prompt string) (string, error) {
	if len(c.providers) == 0 {
		return "", fmt.Errorf("no model providers configured")
	}

	var lastErr error
	for _, p := range c.providers {
		if c.limiter != nil {
			if err := c.limiter.Wait(ctx, p.Name()); err != nil {
				return "", fmt.Errorf("rate limit wait: %w", err)
			}
		}

		if c.verbose {
			fmt.Fprintf(os.Stderr, "Trying %s model...\n", p.Name())
		}

		out, err := p.Complete(ctx, prompt)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error calling %s: %v\n", p.Name(), err)
			lastErr = err
			continue
		}
		return out, nil
	}

	return "", fmt.Errorf("all model providers failed: %w", lastErr)
}
