package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

const (
	// DefaultBaseURL is the Gemini REST API root.
	DefaultBaseURL = "https://generativelanguage.googleapis.com/v1"

	// DefaultModel is the model used for all prompts.
	DefaultModel = "gemini-1.5-flash"
)

// Generator produces text for a prompt. Implementations must check the
// credential before touching the network.
type Generator interface {
	Generate(ctx context.Context, prompt, credential string) (string, error)
}

// HTTPDoer is satisfied by *http.Client.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client calls the Gemini generateContent endpoint over plain HTTP.
type Client struct {
	baseURL    string
	model      string
	httpClient HTTPDoer
}

// NewClient creates a REST client. Empty baseURL or model fall back to the
// defaults, a nil httpClient to http.DefaultClient.
func NewClient(baseURL, model string, httpClient HTTPDoer) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if model == "" {
		model = DefaultModel
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		model:      model,
		httpClient: httpClient,
	}
}

// Model returns the model the client sends prompts to.
func (c *Client) Model() string {
	return c.model
}

type part struct {
	Text string `json:"text"`
}

type content struct {
	Parts []part `json:"parts"`
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type generateResponse struct {
	Candidates []struct {
		Content *content `json:"content"`
	} `json:"candidates"`
	PromptFeedback *struct {
		BlockReason string `json:"blockReason"`
	} `json:"promptFeedback"`
}

type errorResponse struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

// Generate sends prompt and returns the first candidate's text, trimmed.
func (c *Client) Generate(ctx context.Context, prompt, credential string) (string, error) {
	if credential == "" {
		return "", ErrMissingCredential
	}

	body, err := json.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	})
	if err != nil {
		return "", fmt.Errorf("encode request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/models/%s:generateContent?key=%s",
		c.baseURL, c.model, url.QueryEscape(credential))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", newRequestFailed(resp)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	var result generateResponse
	if err := json.Unmarshal(data, &result); err != nil {
		return "", ErrMalformedResponse
	}

	if result.PromptFeedback != nil && result.PromptFeedback.BlockReason != "" {
		return "", &ContentBlockedError{Reason: result.PromptFeedback.BlockReason}
	}

	if len(result.Candidates) == 0 || result.Candidates[0].Content == nil ||
		len(result.Candidates[0].Content.Parts) == 0 {
		return "", ErrMalformedResponse
	}

	text := strings.TrimSpace(result.Candidates[0].Content.Parts[0].Text)
	if text == "" {
		return "", ErrMalformedResponse
	}
	return text, nil
}

// newRequestFailed reads the error body of resp. An unreadable body leaves
// ServerMessage empty.
func newRequestFailed(resp *http.Response) *RequestFailedError {
	reason := http.StatusText(resp.StatusCode)
	if _, phrase, ok := strings.Cut(resp.Status, " "); ok && phrase != "" {
		reason = phrase
	}

	var message string
	var errResp errorResponse
	if body, err := io.ReadAll(resp.Body); err == nil && json.Unmarshal(body, &errResp) == nil {
		message = errResp.Error.Message
	}

	return &RequestFailedError{
		Status:        resp.StatusCode,
		Reason:        reason,
		ServerMessage: message,
	}
}
