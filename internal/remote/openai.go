package remote

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/sashabaranov/go-openai"
)

// DefaultOpenAIModel is used when the openai provider is selected without a model.
const DefaultOpenAIModel = openai.GPT4oMini

// OpenAIGenerator sends prompts as single-message chat completions.
type OpenAIGenerator struct {
	model      string
	baseURL    string
	httpClient *http.Client
}

// NewOpenAIGenerator creates a chat-completion backed generator.
func NewOpenAIGenerator(model, baseURL string, httpClient *http.Client) *OpenAIGenerator {
	if model == "" {
		model = DefaultOpenAIModel
	}
	return &OpenAIGenerator{
		model:      model,
		baseURL:    baseURL,
		httpClient: httpClient,
	}
}

// Generate implements Generator.
func (g *OpenAIGenerator) Generate(ctx context.Context, prompt, credential string) (string, error) {
	if credential == "" {
		return "", ErrMissingCredential
	}

	cfg := openai.DefaultConfig(credential)
	if g.baseURL != "" {
		cfg.BaseURL = g.baseURL
	}
	if g.httpClient != nil {
		cfg.HTTPClient = g.httpClient
	}
	client := openai.NewClientWithConfig(cfg)

	req := openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
		Temperature: 0.3,
	}

	resp, err := client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", mapOpenAIError(err)
	}

	if len(resp.Choices) == 0 {
		return "", ErrMalformedResponse
	}
	if resp.Choices[0].FinishReason == openai.FinishReasonContentFilter {
		return "", &ContentBlockedError{Reason: string(openai.FinishReasonContentFilter)}
	}

	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return "", ErrMalformedResponse
	}
	return text, nil
}

func mapOpenAIError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return &RequestFailedError{
			Status:        apiErr.HTTPStatusCode,
			Reason:        http.StatusText(apiErr.HTTPStatusCode),
			ServerMessage: apiErr.Message,
		}
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return &RequestFailedError{
			Status: reqErr.HTTPStatusCode,
			Reason: http.StatusText(reqErr.HTTPStatusCode),
		}
	}
	return fmt.Errorf("OpenAI API error: %w", err)
}
