package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/ce-fello/standup-agent/src/internal/model"
)

// Client talks to an OpenAI-compatible chat-completions endpoint.
type Client struct {
	baseURL   string
	apiKey    string
	model     string
	maxTokens int
	http      *http.Client
	log       *zap.Logger
}

func NewClient(baseURL, apiKey, modelName string, maxTokens int, logger *zap.Logger) *Client {
	return &Client{
		baseURL:   baseURL,
		apiKey:    apiKey,
		model:     modelName,
		maxTokens: maxTokens,
		http:      &http.Client{},
		log:       logger,
	}
}

func (c *Client) GenerateQuestions(ctx context.Context, analysis model.StandupAnalysis) ([]Draft, error) {
	response, err := c.complete(ctx, analysisPrompt(analysis))
	if err != nil {
		return nil, err
	}
	drafts := parseDrafts(response)
	c.log.Debug("GenerateQuestions: parsed drafts", zap.Int("count", len(drafts)))
	return drafts, nil
}

func (c *Client) GenerateFollowUps(ctx context.Context, question model.AgentQuestion, answer string, history []model.StandupEntry) ([]Draft, error) {
	response, err := c.complete(ctx, followUpPrompt(question, answer, history))
	if err != nil {
		return nil, err
	}
	drafts := parseDrafts(response)
	c.log.Debug("GenerateFollowUps: parsed drafts", zap.Int("count", len(drafts)))
	return drafts, nil
}

func (c *Client) complete(ctx context.Context, prompt string) (string, error) {
	body := map[string]any{
		"model":      c.model,
		"max_tokens": c.maxTokens,
		"messages": []map[string]string{
			{"role": "user", "content": prompt},
		},
	}
	payload, _ := json.Marshal(body)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("llm call: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			c.log.Warn("complete: close body failed", zap.Error(err))
		}
	}()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("llm status %d: %s", resp.StatusCode, data)
	}

	var result struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(data, &result); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if len(result.Choices) == 0 {
		return "", fmt.Errorf("empty choices")
	}
	return result.Choices[0].Message.Content, nil
}
