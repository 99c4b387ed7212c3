// Package llm implements the text-completion providers and the ordered
// fallback chain used by the qualification pipeline.
package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/steelscan/leadscan/internal/model"
)

// Provider defines the interface for text-completion providers.
type Provider interface {
	// Name returns the provider name
	Name() string

	// Complete sends a prompt and returns the raw model response text
	Complete(ctx context.Context, prompt string) (string, error)

	// IsAvailable checks if the provider is properly configured and accessible
	IsAvailable(ctx context.Context) bool
}

// Config holds provider configuration.
type Config struct {
	// APIKey authenticates against the provider
	APIKey string

	// Model name (provider-specific)
	Model string

	// BaseURL for custom endpoints (tests, proxies)
	BaseURL string

	// Timeout for API requests, in seconds
	Timeout int

	// Temperature for response generation
	Temperature float32
}

// ConfigsFromModel splits model.LLMConfig into the DeepSeek and Gemini
// provider configs.
func ConfigsFromModel(cfg model.LLMConfig) (deepseek, gemini Config) {
	deepseek = Config{
		APIKey:      cfg.DeepSeekAPIKey,
		Model:       cfg.DeepSeekModel,
		BaseURL:     cfg.DeepSeekBaseURL,
		Timeout:     cfg.Timeout,
		Temperature: 0.1,
	}
	gemini = Config{
		APIKey:      cfg.GeminiAPIKey,
		Model:       cfg.GeminiModel,
		BaseURL:     cfg.GeminiBaseURL,
		Timeout:     cfg.Timeout,
		Temperature: 0.2,
	}
	return deepseek, gemini
}

// BuildDedupPrompt constructs the headline deduplication prompt. The model
// must answer with exactly DUPLICATE or UNIQUE, judged by semantic
// similarity against the previously sent headlines.
func BuildDedupPrompt(sentHeadlines []string, headline string) string {
	list, err := json.MarshalIndent(sentHeadlines, "", "  ")
	if err != nil {
		list = []byte("[]")
	}

	return fmt.Sprintf(`You are a news deduplication system. Your task is to check if a news headline is semantically similar
to any headlines in our database of previously sent news.

Here are the previously sent headlines:
%s

New headline to check:
%q

Answer with EXACTLY ONE WORD: either "DUPLICATE" if this headline is semantically equivalent
to any in the list (meaning it refers to the same news event, even if worded differently)
or "UNIQUE" if it represents news we haven't seen before.`, list, headline)
}

// BuildQualificationPrompt constructs the lead-qualification prompt. The
// model must respond with a strict JSON object whose tag field is drawn
// from the allowed vocabulary.
func BuildQualificationPrompt(rec model.ContractRecord) string {
	var tags strings.Builder
	for _, t := range model.AllowedTags {
		fmt.Fprintf(&tags, "- `%s`\n", t)
	}

	return fmt.Sprintf(`You are a Steel Sales Lead Qualification System for a steel manufacturing company. Your task is to:
1. Identify the industry and sub-category of the project
2. Determine if the news article about a contract award or project is worth sending to our sales team for potential steel sales

You need to evaluate this news to determine:
1. Whether the project would require significant steel materials
2. Whether we could potentially sell steel to the company mentioned in the news (not to the government)
3. The specific potential steel requirements (types, quantities if mentioned)
4. The urgency/timeline of the opportunity

### ALLOWED TAGS:
%s
News article details:
Title: %s
Company: %s
Project Type: %s
Location: %s
Contract Value: %s
Date: %s
Description: %s

Here are important criteria:
- First identify the industry and sub-category from the options above
- Government entities are **not** direct targets for steel sales
- Small-scale IT or service contracts typically don't require significant steel
- Construction, infrastructure, manufacturing, energy projects often need substantial steel
- The contract value should be significant enough to indicate large material requirements
- We want to focus on opportunities where the company (not the government) would be purchasing steel

Provide your analysis in the following JSON format only:
{
    "qualified": true/false,
    "tag": "Industry-SubCategory",
    "sub_category": "Specific sub-category from the provided options",
    "steel_requirements": "Detailed description of likely steel requirements",
    "potential_value": "Estimated percentage of the contract value that might be spent on steel",
    "target_company": "The specific company that would potentially purchase the steel",
    "urgency": "high/medium/low",
    "reasoning": "Your detailed reasoning including industry classification justification"
}

The "tag" value MUST MATCH one of the ALLOWED TAGS above. Response MUST be valid JSON.`,
		tags.String(), rec.Title, rec.Company, rec.ProjectType, rec.Location,
		rec.ContractValue, rec.DatePublished, rec.Description)
}
