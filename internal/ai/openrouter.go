/*
Copyright © 2025 changheonshin
*/
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/devlikebear/parafile/internal/common"
	"github.com/devlikebear/parafile/internal/config"
)

// OpenRouterProvider queries a chat-completion endpoint with bearer
// authentication.
type OpenRouterProvider struct {
	url    string
	model  string
	apiKey string
	client *http.Client
}

// NewOpenRouterProvider creates a provider for an OpenRouter-compatible
// chat completions endpoint.
func NewOpenRouterProvider(pc config.ProviderConfig) *OpenRouterProvider {
	return &OpenRouterProvider{
		url:    pc.URL,
		model:  pc.Model,
		apiKey: pc.APIKey,
		client: &http.Client{
			Timeout: timeoutFor(pc),
		},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Query sends the prompt as a single user message and returns the first
// completion choice.
func (p *OpenRouterProvider) Query(ctx context.Context, prompt string) (string, error) {
	if p.url == "" {
		return "", fmt.Errorf("%w: openrouter url is not set", common.ErrMissingConfig)
	}
	if p.model == "" {
		return "", fmt.Errorf("%w: openrouter model is not set", common.ErrMissingConfig)
	}
	if p.apiKey == "" {
		return "", fmt.Errorf("%w: openrouter api_key is not set", common.ErrMissingConfig)
	}

	jsonData, err := json.Marshal(chatRequest{
		Model:    p.model,
		Messages: []chatMessage{{Role: "user", Content: prompt}},
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.url, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.apiKey)

	resp, err := p.client.Do(req)
	if err != nil {
		return "", classifyTransportError(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: openrouter returned %s", common.ErrConnection, resp.Status)
	}

	var chatResp chatResponse
	if err := json.Unmarshal(body, &chatResp); err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrMalformedResponse, err)
	}
	if len(chatResp.Choices) == 0 || chatResp.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("%w: no completion choices returned", common.ErrMalformedResponse)
	}

	return chatResp.Choices[0].Message.Content, nil
}

func (p *OpenRouterProvider) String() string {
	return "openrouter"
}
