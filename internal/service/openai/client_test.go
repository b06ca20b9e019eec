package openai_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"StockLens/internal/domain/failure"
	drepo "StockLens/internal/domain/repository"
	"StockLens/internal/service/openai"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListModelsSendsBearer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/models", r.URL.Path)
		assert.Equal(t, "Bearer sk-good", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"data":[]}`))
	}))
	defer srv.Close()

	c := openai.New(openai.WithBaseURL(srv.URL))

	require.NoError(t, c.ListModels(t.Context(), "sk-good"))
}

func TestListModelsClassifiesRejections(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   failure.Kind
	}{
		{"unauthorized", http.StatusUnauthorized, `{"error":{"message":"Incorrect API key","code":"invalid_api_key"}}`, failure.AuthenticationFailure},
		{"rate limited", http.StatusTooManyRequests, `{"error":{"message":"slow down","type":"requests"}}`, failure.QuotaExceeded},
		{"insufficient quota", http.StatusTooManyRequests, `{"error":{"type":"insufficient_quota","code":"insufficient_quota"}}`, failure.QuotaExceeded},
		{"not found", http.StatusNotFound, `{}`, failure.TransportFailure},
		{"garbage body", http.StatusBadRequest, `nope`, failure.TransportFailure},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			c := openai.New(openai.WithBaseURL(srv.URL), openai.WithRetry(1, 0))

			err := c.ListModels(t.Context(), "sk-x")
			require.Error(t, err)
			assert.Equal(t, tt.want, failure.KindOf(err))
		})
	}
}

func TestCompleteBuildsRequest(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		assert.JSONEq(t, `{
			"model": "gpt-4-turbo-preview",
			"messages": [{"role":"user","content":"hello"}],
			"temperature": 0.7,
			"max_tokens": 2000,
			"response_format": {"type":"json_object"}
		}`, string(body))
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"{\"ok\":true}"}}]}`))
	}))
	defer srv.Close()

	temp := 0.7
	c := openai.New(openai.WithBaseURL(srv.URL))

	resp, err := c.Complete(t.Context(), "sk-x", drepo.CompletionRequest{
		Model:       "gpt-4-turbo-preview",
		Messages:    []drepo.ChatMessage{{Role: "user", Content: "hello"}},
		Temperature: &temp,
		MaxTokens:   2000,
		JSONOutput:  true,
	})

	require.NoError(t, err)
	assert.Equal(t, []string{`{"ok":true}`}, resp.Choices)
}

func TestCompleteRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"{}"}}]}`))
	}))
	defer srv.Close()

	c := openai.New(openai.WithBaseURL(srv.URL), openai.WithRetry(3, time.Millisecond))

	resp, err := c.Complete(t.Context(), "sk-x", drepo.CompletionRequest{Model: "m"})

	require.NoError(t, err)
	assert.Len(t, resp.Choices, 1)
	assert.Equal(t, int32(3), calls.Load())
}

func TestCompleteDoesNotRetryQuota(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"code":"insufficient_quota"}}`))
	}))
	defer srv.Close()

	c := openai.New(openai.WithBaseURL(srv.URL), openai.WithRetry(3, time.Millisecond))

	_, err := c.Complete(t.Context(), "sk-x", drepo.CompletionRequest{Model: "m"})

	require.Error(t, err)
	assert.True(t, failure.IsQuota(err))
	assert.Equal(t, int32(1), calls.Load())
}

func TestCompleteTimesOut(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	c := openai.New(openai.WithBaseURL(srv.URL), openai.WithTimeout(20*time.Millisecond), openai.WithRetry(1, 0))

	_, err := c.Complete(t.Context(), "sk-x", drepo.CompletionRequest{Model: "m"})

	require.Error(t, err)
	assert.Equal(t, failure.TransportFailure, failure.KindOf(err))
}
