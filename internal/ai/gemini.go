/*
Copyright © 2025 changheonshin
*/
package ai

import (
	"context"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/devlikebear/parafile/internal/common"
	"github.com/devlikebear/parafile/internal/config"
)

// GeminiProvider queries the Gemini API through the official SDK.
type GeminiProvider struct {
	apiKey string
	model  string
}

// NewGeminiProvider creates a provider for the Gemini API.
func NewGeminiProvider(pc config.ProviderConfig) *GeminiProvider {
	return &GeminiProvider{
		apiKey: pc.APIKey,
		model:  pc.Model,
	}
}

// Query sends the prompt to Gemini and returns the first text part of the
// first candidate.
func (p *GeminiProvider) Query(ctx context.Context, prompt string) (string, error) {
	if p.apiKey == "" {
		return "", fmt.Errorf("%w: gemini api_key is not set", common.ErrMissingConfig)
	}
	if p.model == "" {
		return "", fmt.Errorf("%w: gemini model is not set", common.ErrMissingConfig)
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(p.apiKey))
	if err != nil {
		return "", fmt.Errorf("failed to create gemini client: %w", err)
	}
	defer client.Close()

	model := client.GenerativeModel(p.model)

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", classifyTransportError(err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("%w: empty response from gemini", common.ErrMalformedResponse)
	}

	if txt, ok := resp.Candidates[0].Content.Parts[0].(genai.Text); ok {
		return string(txt), nil
	}

	return "", fmt.Errorf("%w: unexpected response part from gemini", common.ErrMalformedResponse)
}

func (p *GeminiProvider) String() string {
	return "gemini"
}
