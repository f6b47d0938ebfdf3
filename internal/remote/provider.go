package remote

import (
	"fmt"
	"net/http"
)

// Provider names accepted by NewGenerator.
const (
	ProviderGemini = "gemini"
	ProviderGenAI  = "genai"
	ProviderOpenAI = "openai"
)

// Config selects and configures a generator.
type Config struct {
	Provider   string // "gemini" (REST), "genai" (SDK) or "openai"
	BaseURL    string
	Model      string
	HTTPClient *http.Client
}

// NewGenerator creates the generator named by config.Provider.
func NewGenerator(config Config) (Generator, error) {
	switch config.Provider {
	case "", ProviderGemini:
		var doer HTTPDoer
		if config.HTTPClient != nil {
			doer = config.HTTPClient
		}
		return NewClient(config.BaseURL, config.Model, doer), nil
	case ProviderGenAI:
		return NewGenAIGenerator(config.Model, config.BaseURL, config.HTTPClient), nil
	case ProviderOpenAI:
		return NewOpenAIGenerator(config.Model, config.BaseURL, config.HTTPClient), nil
	default:
		return nil, fmt.Errorf("unknown provider: %s", config.Provider)
	}
}
