package remote

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingDoer struct {
	calls int
	next  HTTPDoer
}

func (d *countingDoer) Do(req *http.Request) (*http.Response, error) {
	d.calls++
	if d.next == nil {
		return nil, errors.New("unexpected network call")
	}
	return d.next.Do(req)
}

func newTestServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestGenerate_Success(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/models/test-model:generateContent", r.URL.Path)
		assert.Equal(t, "secret-key", r.URL.Query().Get("key"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body generateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Len(t, body.Contents, 1)
		require.Len(t, body.Contents[0].Parts, 1)
		assert.Equal(t, "hello", body.Contents[0].Parts[0].Text)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"  こんにちは \n"}]}}]}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-model", server.Client())
	text, err := client.Generate(context.Background(), "hello", "secret-key")

	require.NoError(t, err)
	assert.Equal(t, "こんにちは", text)
}

func TestGenerate_RequestFailed(t *testing.T) {
	t.Parallel()

	server := newTestServer(t, http.StatusForbidden, `{"error":{"code":403,"message":"API key not valid","status":"PERMISSION_DENIED"}}`)
	client := NewClient(server.URL, "", server.Client())

	_, err := client.Generate(context.Background(), "hello", "bad-key")

	var failed *RequestFailedError
	require.ErrorAs(t, err, &failed)
	assert.Equal(t, http.StatusForbidden, failed.Status)
	assert.Equal(t, "Forbidden", failed.Reason)
	assert.Equal(t, "API key not valid", failed.ServerMessage)
	assert.Equal(t, "API request failed: 403 Forbidden. API key not valid", err.Error())
}

func TestGenerate_RequestFailedWithoutJSONBody(t *testing.T) {
	t.Parallel()

	server := newTestServer(t, http.StatusInternalServerError, "internal error")
	client := NewClient(server.URL, "", server.Client())

	_, err := client.Generate(context.Background(), "hello", "key")

	var failed *RequestFailedError
	require.ErrorAs(t, err, &failed)
	assert.Equal(t, http.StatusInternalServerError, failed.Status)
	assert.Empty(t, failed.ServerMessage)
	assert.Equal(t, "API request failed: 500 Internal Server Error", err.Error())
}

func TestGenerate_ContentBlocked(t *testing.T) {
	t.Parallel()

	server := newTestServer(t, http.StatusOK, `{"promptFeedback":{"blockReason":"SAFETY"}}`)
	client := NewClient(server.URL, "", server.Client())

	_, err := client.Generate(context.Background(), "hello", "key")

	var blocked *ContentBlockedError
	require.ErrorAs(t, err, &blocked)
	assert.Equal(t, "SAFETY", blocked.Reason)
}

func TestGenerate_BlockReasonTakesPrecedence(t *testing.T) {
	t.Parallel()

	server := newTestServer(t, http.StatusOK,
		`{"candidates":[{"content":{"parts":[{"text":"partial"}]}}],"promptFeedback":{"blockReason":"OTHER"}}`)
	client := NewClient(server.URL, "", server.Client())

	_, err := client.Generate(context.Background(), "hello", "key")

	var blocked *ContentBlockedError
	require.ErrorAs(t, err, &blocked)
	assert.Equal(t, "OTHER", blocked.Reason)
}

func TestGenerate_MalformedResponse(t *testing.T) {
	t.Parallel()

	bodies := map[string]string{
		"empty candidates": `{"candidates":[]}`,
		"no content":       `{"candidates":[{}]}`,
		"no parts":         `{"candidates":[{"content":{"parts":[]}}]}`,
		"blank text":       `{"candidates":[{"content":{"parts":[{"text":"   "}]}}]}`,
		"not json":         `not valid json{{{`,
	}

	for name, body := range bodies {
		t.Run(name, func(t *testing.T) {
			server := newTestServer(t, http.StatusOK, body)
			client := NewClient(server.URL, "", server.Client())

			_, err := client.Generate(context.Background(), "hello", "key")
			assert.ErrorIs(t, err, ErrMalformedResponse)
		})
	}
}

func TestGenerate_MissingCredentialSkipsNetwork(t *testing.T) {
	t.Parallel()

	doer := &countingDoer{}
	client := NewClient("http://example.invalid", "", doer)

	_, err := client.Generate(context.Background(), "hello", "")

	assert.ErrorIs(t, err, ErrMissingCredential)
	assert.Equal(t, 0, doer.calls)
}

func TestGenerate_TransportError(t *testing.T) {
	t.Parallel()

	doer := &countingDoer{}
	client := NewClient("http://example.invalid", "", doer)

	_, err := client.Generate(context.Background(), "hello", "key")

	require.Error(t, err)
	assert.Equal(t, 1, doer.calls)
	assert.Contains(t, err.Error(), "generate content")
}

type brokenBody struct{}

func (brokenBody) Read([]byte) (int, error) { return 0, errors.New("connection reset") }
func (brokenBody) Close() error { return nil }

type statusDoer struct {
	status int
}

func (d statusDoer) Do(req *http.Request) (*http.Response, error) {
	return &http.Response{
		StatusCode: d.status,
		Status:     fmt.Sprintf("%d %s", d.status, http.StatusText(d.status)),
		Body:       brokenBody{},
		Request:    req,
	}, nil
}

func TestGenerate_RequestFailedWithUnreadableBody(t *testing.T) {
	t.Parallel()

	client := NewClient("http://gemini.test/v1", "", statusDoer{status: http.StatusServiceUnavailable})
	_, err := client.Generate(context.Background(), "hello", "key")

	var failed *RequestFailedError
	require.ErrorAs(t, err, &failed)
	assert.Equal(t, http.StatusServiceUnavailable, failed.Status)
	assert.Empty(t, failed.ServerMessage)
	assert.Equal(t, "API request failed: 503 Service Unavailable", err.Error())
}

func TestNewClient_Defaults(t *testing.T) {
	client := NewClient("", "", nil)

	assert.Equal(t, DefaultBaseURL, client.baseURL)
	assert.Equal(t, DefaultModel, client.Model())
	assert.Equal(t, http.DefaultClient, client.httpClient)
}

func TestListModels(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/models", r.URL.Path)
		assert.Equal(t, "key", r.URL.Query().Get("key"))

		w.Header().Set("Content-Type", "application/json")
		if r.URL.Query().Get("pageToken") == "" {
			io.WriteString(w, `{"models":[{"name":"models/gemini-1.5-flash","supportedGenerationMethods":["generateContent"]}],"nextPageToken":"p2"}`)
			return
		}
		io.WriteString(w, `{"models":[{"name":"models/embedding-001","supportedGenerationMethods":["embedContent"]}]}`)
	}))
	defer server.Close()

	client := NewClient(server.URL, "", server.Client())
	models, err := client.ListModels(context.Background(), "key")

	require.NoError(t, err)
	require.Len(t, models, 2)
	assert.True(t, models[0].SupportsGenerate())
	assert.False(t, models[1].SupportsGenerate())
}

func TestListModels_MissingCredential(t *testing.T) {
	doer := &countingDoer{}
	client := NewClient("", "", doer)

	_, err := client.ListModels(context.Background(), "")

	assert.ErrorIs(t, err, ErrMissingCredential)
	assert.Equal(t, 0, doer.calls)
}

func TestIsPermanent(t *testing.T) {
	assert.True(t, IsPermanent(ErrMissingCredential))
	assert.True(t, IsPermanent(&ContentBlockedError{Reason: "SAFETY"}))
	assert.False(t, IsPermanent(ErrMalformedResponse))
	assert.False(t, IsPermanent(&RequestFailedError{Status: 500}))
	assert.False(t, IsPermanent(errors.New("boom")))
}
