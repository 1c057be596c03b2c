package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c := NewClient(Opts{
		BaseURL:   srv.URL,
		APIKey:    "test-key",
		Model:     "test-model",
		TimeoutMs: 2000,
		MaxTokens: 100,
	}, zap.NewNop())
	require.NotNil(t, c)
	return c
}

func TestClient_Generate_OK(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "test-model", req["model"])

		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"role": "assistant", "content": "  hello there \n"}},
			},
		})
	})

	out, err := c.Generate(context.Background(), "sys", "prompt")
	require.NoError(t, err)
	assert.Equal(t, "hello there", out)
}

func TestClient_Generate_Non2xx(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	})

	_, err := c.Generate(context.Background(), "sys", "prompt")
	assert.ErrorContains(t, err, "status 429")
}

func TestClient_Generate_EmptyChoices(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"choices": []any{}})
	})

	_, err := c.Generate(context.Background(), "sys", "prompt")
	assert.ErrorContains(t, err, "empty choices")
}

func TestNewClient_NoKey(t *testing.T) {
	assert.Nil(t, NewClient(Opts{BaseURL: "https://x", APIKey: ""}, zap.NewNop()))
}

func TestGenerateOr_Fallback(t *testing.T) {
	// nil Generator 直接 fallback
	assert.Equal(t, "fb", GenerateOr(context.Background(), nil, "s", "p", "fb"))

	// 出错的 Generator 也 fallback
	assert.Equal(t, "fb", GenerateOr(context.Background(), failingGen{}, "s", "p", "fb"))

	// 正常结果透传
	assert.Equal(t, "real", GenerateOr(context.Background(), staticGen("real"), "s", "p", "fb"))

	// 空结果视为失败
	assert.Equal(t, "fb", GenerateOr(context.Background(), staticGen(""), "s", "p", "fb"))
}

func TestStripJSONFence(t *testing.T) {
	assert.Equal(t, `{"a":1}`, StripJSONFence("```json\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, StripJSONFence("```\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, StripJSONFence(`{"a":1}`))
}

type failingGen struct{}

func (failingGen) Generate(context.Context, string, string) (string, error) {
	return "", assert.AnError
}

type staticGen string

func (g staticGen) Generate(context.Context, string, string) (string, error) {
	return string(g), nil
}
