package testutil

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"codeberg.org/snonux/wordlens/internal/remote"
)

// MockGenerator is a remote.Generator answering from canned replies.
// A reply is chosen by the first key of Responses or Errors contained in the
// prompt; Default is returned otherwise.
type MockGenerator struct {
	Responses map[string]string
	Errors    map[string]error
	Default   string
	// Gate, when set, holds every call until it is closed.
	Gate chan struct{}

	mu    sync.Mutex
	calls []string
}

// Generate implements remote.Generator
func (m *MockGenerator) Generate(ctx context.Context, prompt, credential string) (string, error) {
	m.mu.Lock()
	m.calls = append(m.calls, prompt)
	m.mu.Unlock()

	if credential == "" {
		return "", remote.ErrMissingCredential
	}
	if m.Gate != nil {
		select {
		case <-m.Gate:
		case <-ctx.Done():
		}
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	for key, err := range m.Errors {
		if strings.Contains(prompt, key) {
			return "", err
		}
	}
	for key, resp := range m.Responses {
		if strings.Contains(prompt, key) {
			return resp, nil
		}
	}
	return m.Default, nil
}

// Calls returns the prompts seen so far
func (m *MockGenerator) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}

// NewGeminiServer starts a server speaking the generateContent wire format.
// Every request is answered with text, or with status and an error body when
// status is not 200.
func NewGeminiServer(t *testing.T, status int, text string) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)

		if status != http.StatusOK {
			_ = json.NewEncoder(w).Encode(map[string]any{
				"error": map[string]any{"code": status, "message": text},
			})
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"candidates": []any{
				map[string]any{
					"content": map[string]any{
						"parts": []any{map[string]any{"text": text}},
					},
				},
			},
		})
	}))
	t.Cleanup(srv.Close)
	return srv
}
