/*
Copyright © 2025 changheonshin
*/
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/devlikebear/parafile/internal/common"
	"github.com/devlikebear/parafile/internal/config"
)

// OllamaProvider queries a local generate-style endpoint.
type OllamaProvider struct {
	url    string
	model  string
	client *http.Client
}

// NewOllamaProvider creates a provider for an Ollama generate endpoint.
func NewOllamaProvider(pc config.ProviderConfig) *OllamaProvider {
	return &OllamaProvider{
		url:   pc.URL,
		model: pc.Model,
		client: &http.Client{
			Timeout: timeoutFor(pc),
		},
	}
}

type ollamaRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

type ollamaResponse struct {
	Response string `json:"response"`
}

// Query sends the prompt to the generate endpoint and returns the
// response text.
func (p *OllamaProvider) Query(ctx context.Context, prompt string) (string, error) {
	if p.url == "" {
		return "", fmt.Errorf("%w: ollama url is not set", common.ErrMissingConfig)
	}
	if p.model == "" {
		return "", fmt.Errorf("%w: ollama model is not set", common.ErrMissingConfig)
	}

	jsonData, err := json.Marshal(ollamaRequest{
		Model:  p.model,
		Prompt: prompt,
		Stream: false,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.url, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return "", classifyTransportError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: ollama returned %s", common.ErrConnection, resp.Status)
	}

	var ollamaResp ollamaResponse
	if err := json.NewDecoder(resp.Body).Decode(&ollamaResp); err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrMalformedResponse, err)
	}
	if ollamaResp.Response == "" {
		return "", fmt.Errorf("%w: response field missing or empty", common.ErrMalformedResponse)
	}

	return ollamaResp.Response, nil
}

func (p *OllamaProvider) String() string {
	return "ollama"
}
