package remote

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strings"

	"google.golang.org/genai"
)

// GenAIGenerator sends prompts through the official Gemini SDK.
type GenAIGenerator struct {
	model      string
	baseURL    string
	httpClient *http.Client
}

// NewGenAIGenerator creates an SDK-backed generator. baseURL may be empty to
// use the SDK default endpoint. A trailing version segment such as /v1 is
// passed to the SDK as its API version.
func NewGenAIGenerator(model, baseURL string, httpClient *http.Client) *GenAIGenerator {
	if model == "" {
		model = DefaultModel
	}
	return &GenAIGenerator{
		model:      model,
		baseURL:    baseURL,
		httpClient: httpClient,
	}
}

// Generate implements Generator.
func (g *GenAIGenerator) Generate(ctx context.Context, prompt, credential string) (string, error) {
	if credential == "" {
		return "", ErrMissingCredential
	}

	cfg := &genai.ClientConfig{
		APIKey:     credential,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: g.httpClient,
	}
	if g.baseURL != "" {
		root, version := splitAPIVersion(g.baseURL)
		cfg.HTTPOptions = genai.HTTPOptions{BaseURL: root, APIVersion: version}
	}

	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return "", fmt.Errorf("create genai client: %w", err)
	}

	resp, err := client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
	if err != nil {
		return "", mapGenAIError(err)
	}

	if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
		return "", &ContentBlockedError{Reason: string(resp.PromptFeedback.BlockReason)}
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil ||
		len(resp.Candidates[0].Content.Parts) == 0 || resp.Candidates[0].Content.Parts[0] == nil {
		return "", ErrMalformedResponse
	}

	text := strings.TrimSpace(resp.Candidates[0].Content.Parts[0].Text)
	if text == "" {
		return "", ErrMalformedResponse
	}
	return text, nil
}

var apiVersionSegment = regexp.MustCompile(`^v[0-9]+((alpha|beta)[0-9]*)?$`)

// splitAPIVersion separates a trailing API version from baseURL because the
// SDK appends the version to the base itself.
func splitAPIVersion(baseURL string) (root, version string) {
	trimmed := strings.TrimRight(baseURL, "/")
	i := strings.LastIndex(trimmed, "/")
	if i < 0 || !apiVersionSegment.MatchString(trimmed[i+1:]) {
		return baseURL, ""
	}
	return trimmed[:i], trimmed[i+1:]
}

func mapGenAIError(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return &RequestFailedError{
			Status:        apiErr.Code,
			Reason:        http.StatusText(apiErr.Code),
			ServerMessage: apiErr.Message,
		}
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) {
		return &RequestFailedError{
			Status:        apiErrPtr.Code,
			Reason:        http.StatusText(apiErrPtr.Code),
			ServerMessage: apiErrPtr.Message,
		}
	}
	return fmt.Errorf("generate content: %w", err)
}
