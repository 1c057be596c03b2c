package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Client 调 OpenAI 风格的 chat/completions 接口。
// 超时由 http.Client 兜底，调用方叠加 ctx 也可以。
type Client struct {
	baseURL   string
	apiKey    string
	model     string
	maxTokens int
	hc        *http.Client
	log       *zap.Logger
}

type Opts struct {
	BaseURL   string
	APIKey    string
	Model     string
	TimeoutMs int
	MaxTokens int
}

// NewClient APIKey 为空时返回 nil：调用方统一判 nil 走 fallback。
func NewClient(o Opts, l *zap.Logger) *Client {
	if o.APIKey == "" {
		return nil
	}
	return &Client{
		baseURL:   strings.TrimRight(o.BaseURL, "/"),
		apiKey:    o.APIKey,
		model:     o.Model,
		maxTokens: o.MaxTokens,
		hc:        &http.Client{Timeout: time.Duration(o.TimeoutMs) * time.Millisecond},
		log:       l,
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model     string        `json:"model"`
	Messages  []chatMessage `json:"messages"`
	MaxTokens int           `json:"max_tokens,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

func (c *Client) Generate(ctx context.Context, system, prompt string) (string, error) {
	body, err := json.Marshal(chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: prompt},
		},
		MaxTokens: c.maxTokens,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.hc.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.log.Warn("ai request failed",
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", raw[:minInt(len(raw), 256)]),
		)
		return "", fmt.Errorf("ai: status %d", resp.StatusCode)
	}

	var out chatResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", fmt.Errorf("ai: decode response: %w", err)
	}
	if len(out.Choices) == 0 {
		return "", fmt.Errorf("ai: empty choices")
	}
	return strings.TrimSpace(out.Choices[0].Message.Content), nil
}

// StripJSONFence 生成模型常把 JSON 包进 markdown 代码块，剥掉再解析。
func StripJSONFence(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		if i := strings.LastIndex(s, "```"); i >= 0 {
			s = s[:i]
		}
	}
	return strings.TrimSpace(s)
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
