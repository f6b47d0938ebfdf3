package remote

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGenerator(t *testing.T) {
	tests := []struct {
		provider string
		wantType interface{}
		wantErr  bool
	}{
		{provider: "", wantType: &Client{}},
		{provider: ProviderGemini, wantType: &Client{}},
		{provider: ProviderGenAI, wantType: &GenAIGenerator{}},
		{provider: ProviderOpenAI, wantType: &OpenAIGenerator{}},
		{provider: "espeak", wantErr: true},
	}

	for _, tt := range tests {
		t.Run("provider_"+tt.provider, func(t *testing.T) {
			gen, err := NewGenerator(Config{Provider: tt.provider})
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.IsType(t, tt.wantType, gen)
		})
	}
}

func TestNewGenerator_PlatformHTTPClient(t *testing.T) {
	gen, err := NewGenerator(Config{Provider: ProviderGemini})
	require.NoError(t, err)

	client, ok := gen.(*Client)
	require.True(t, ok)
	assert.Same(t, http.DefaultClient, client.httpClient)
	assert.Zero(t, http.DefaultClient.Timeout)
}

func TestAlternativeGenerators_MissingCredential(t *testing.T) {
	generators := map[string]Generator{
		"genai":  NewGenAIGenerator("", "", nil),
		"openai": NewOpenAIGenerator("", "", nil),
	}

	for name, gen := range generators {
		t.Run(name, func(t *testing.T) {
			_, err := gen.Generate(context.Background(), "hello", "")
			assert.ErrorIs(t, err, ErrMissingCredential)
		})
	}
}

func TestOpenAIGenerator_Mapping(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		check  func(t *testing.T, text string, err error)
	}{
		{
			name:   "success",
			status: http.StatusOK,
			body:   `{"choices":[{"index":0,"message":{"role":"assistant","content":" 猫 "},"finish_reason":"stop"}]}`,
			check: func(t *testing.T, text string, err error) {
				require.NoError(t, err)
				assert.Equal(t, "猫", text)
			},
		},
		{
			name:   "content filter",
			status: http.StatusOK,
			body:   `{"choices":[{"index":0,"message":{"role":"assistant","content":""},"finish_reason":"content_filter"}]}`,
			check: func(t *testing.T, text string, err error) {
				var blocked *ContentBlockedError
				require.ErrorAs(t, err, &blocked)
				assert.Equal(t, "content_filter", blocked.Reason)
			},
		},
		{
			name:   "no choices",
			status: http.StatusOK,
			body:   `{"choices":[]}`,
			check: func(t *testing.T, text string, err error) {
				assert.ErrorIs(t, err, ErrMalformedResponse)
			},
		},
		{
			name:   "unauthorized",
			status: http.StatusUnauthorized,
			body:   `{"error":{"message":"Incorrect API key provided","type":"invalid_request_error"}}`,
			check: func(t *testing.T, text string, err error) {
				var failed *RequestFailedError
				require.ErrorAs(t, err, &failed)
				assert.Equal(t, http.StatusUnauthorized, failed.Status)
				assert.Equal(t, "Incorrect API key provided", failed.ServerMessage)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := newTestServer(t, tt.status, tt.body)
			gen := NewOpenAIGenerator("", server.URL, server.Client())

			text, err := gen.Generate(context.Background(), "hello", "key")
			tt.check(t, text, err)
		})
	}
}

type stubGenerator struct {
	calls int
	err   error
}

func (s *stubGenerator) Generate(ctx context.Context, prompt, credential string) (string, error) {
	s.calls++
	if s.err != nil {
		return "", s.err
	}
	return "ok:" + prompt, nil
}

func TestBreaker_OpensAfterConsecutiveFailures(t *testing.T) {
	stub := &stubGenerator{err: &RequestFailedError{Status: http.StatusServiceUnavailable}}
	gen := NewBreaker(stub, "test")

	for i := 0; i < 3; i++ {
		_, err := gen.Generate(context.Background(), "p", "key")
		var failed *RequestFailedError
		require.ErrorAs(t, err, &failed)
	}

	_, err := gen.Generate(context.Background(), "p", "key")
	assert.True(t, errors.Is(err, gobreaker.ErrOpenState))
	assert.Equal(t, 3, stub.calls)
}

func TestBreaker_IgnoresPermanentErrors(t *testing.T) {
	stub := &stubGenerator{err: ErrMissingCredential}
	gen := NewBreaker(stub, "test")

	for i := 0; i < 5; i++ {
		_, err := gen.Generate(context.Background(), "p", "")
		assert.ErrorIs(t, err, ErrMissingCredential)
	}
	assert.Equal(t, 5, stub.calls)
}

func TestBreaker_PassesThroughText(t *testing.T) {
	gen := NewBreaker(&stubGenerator{}, "test")

	text, err := gen.Generate(context.Background(), "hi", "key")
	require.NoError(t, err)
	assert.Equal(t, "ok:hi", text)
}

func TestGenAIGenerator_RequestFailed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"error":{"code":403,"message":"API key not valid","status":"PERMISSION_DENIED"}}`))
	}))
	defer server.Close()

	gen := NewGenAIGenerator("", server.URL, server.Client())
	_, err := gen.Generate(context.Background(), "hello", "key")

	var failed *RequestFailedError
	require.ErrorAs(t, err, &failed)
	assert.Equal(t, http.StatusForbidden, failed.Status)
}

func TestSplitAPIVersion(t *testing.T) {
	tests := []struct {
		in, root, version string
	}{
		{"https://generativelanguage.googleapis.com/v1", "https://generativelanguage.googleapis.com", "v1"},
		{"https://generativelanguage.googleapis.com/v1beta/", "https://generativelanguage.googleapis.com", "v1beta"},
		{"http://127.0.0.1:9999/proxy/v1alpha1", "http://127.0.0.1:9999/proxy", "v1alpha1"},
		{"http://127.0.0.1:9999", "http://127.0.0.1:9999", ""},
		{"http://127.0.0.1:9999/gemini", "http://127.0.0.1:9999/gemini", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			root, version := splitAPIVersion(tt.in)
			assert.Equal(t, tt.root, root)
			assert.Equal(t, tt.version, version)
		})
	}
}

func TestGenAIGenerator_VersionedBaseURL(t *testing.T) {
	var path string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"candidates":[{"content":{"role":"model","parts":[{"text":" こんにちは "}]}}]}`))
	}))
	defer server.Close()

	gen := NewGenAIGenerator("", server.URL+"/v1", server.Client())
	text, err := gen.Generate(context.Background(), "hello", "key")
	require.NoError(t, err)
	assert.Equal(t, "こんにちは", text)
	assert.Equal(t, "/v1/models/"+DefaultModel+":generateContent", path)
}
