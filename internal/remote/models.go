package remote

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

// ModelInfo describes one model offered by the service.
type ModelInfo struct {
	Name                       string   `json:"name"`
	DisplayName                string   `json:"displayName"`
	Description                string   `json:"description"`
	InputTokenLimit            int      `json:"inputTokenLimit"`
	SupportedGenerationMethods []string `json:"supportedGenerationMethods"`
}

// SupportsGenerate reports whether the model accepts generateContent calls.
func (m ModelInfo) SupportsGenerate() bool {
	for _, method := range m.SupportedGenerationMethods {
		if method == "generateContent" {
			return true
		}
	}
	return false
}

type listModelsResponse struct {
	Models        []ModelInfo `json:"models"`
	NextPageToken string      `json:"nextPageToken"`
}

// ListModels returns every model visible to credential, following pagination.
func (c *Client) ListModels(ctx context.Context, credential string) ([]ModelInfo, error) {
	if credential == "" {
		return nil, ErrMissingCredential
	}

	var models []ModelInfo
	pageToken := ""
	for {
		query := url.Values{}
		query.Set("key", credential)
		if pageToken != "" {
			query.Set("pageToken", pageToken)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/models?"+query.Encode(), nil)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf("list models: %w", err)
		}
		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			failed := newRequestFailed(resp)
			resp.Body.Close()
			return nil, failed
		}

		data, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			return nil, fmt.Errorf("read response: %w", err)
		}

		var page listModelsResponse
		if err := json.Unmarshal(data, &page); err != nil {
			return nil, ErrMalformedResponse
		}
		models = append(models, page.Models...)

		if page.NextPageToken == "" {
			return models, nil
		}
		pageToken = page.NextPageToken
	}
}
