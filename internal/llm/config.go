// Package llm wraps the Gemini API behind a small client interface and
// implements the summarization, keyword and question-answering collaborators
// on top of it.
package llm

// ModelTier represents the capability level of a model
type ModelTier string

const (
	// TierLite is for high-volume calls: per-chunk summaries, keyword scoring
	TierLite ModelTier = "lite"
	// TierStandard is for calls that need closer reading: question answering
	TierStandard ModelTier = "standard"
)

// Provider represents a model provider
type Provider string

// Provider constants define supported model providers
const (
	// ProviderGemini is the Google Gemini provider
	ProviderGemini Provider = "gemini"
	// ProviderHuggingFace is the Hugging Face Inference API (summaries and QA only)
	ProviderHuggingFace Provider = "huggingface"
)

// DefaultTemperature keeps output repeatable across runs
const DefaultTemperature float32 = 0

// Config holds the model configuration for the application
type Config struct {
	Provider    Provider
	Models      map[ModelTier]string
	Temperature float32
}

// DefaultConfig returns the default configuration (currently Gemini)
func DefaultConfig() *Config {
	return DefaultGeminiConfig()
}

// DefaultGeminiConfig returns the default Gemini configuration
func DefaultGeminiConfig() *Config {
	return &Config{
		Provider: ProviderGemini,
		Models: map[ModelTier]string{
			TierLite:     "gemini-2.5-flash-lite",
			TierStandard: "gemini-2.5-flash",
		},
		Temperature: DefaultTemperature,
	}
}

// GetModel returns the model name for a given tier
func (c *Config) GetModel(tier ModelTier) string {
	if model, ok := c.Models[tier]; ok {
		return model
	}
	// Fallback chain: try standard, then lite
	if model, ok := c.Models[TierStandard]; ok {
		return model
	}
	if model, ok := c.Models[TierLite]; ok {
		return model
	}
	return ""
}

// WithModel returns a new Config with a specific model for a tier
func (c *Config) WithModel(tier ModelTier, model string) *Config {
	newConfig := &Config{
		Provider:    c.Provider,
		Models:      make(map[ModelTier]string, len(c.Models)+1),
		Temperature: c.Temperature,
	}
	for k, v := range c.Models {
		newConfig.Models[k] = v
	}
	newConfig.Models[tier] = model
	return newConfig
}
