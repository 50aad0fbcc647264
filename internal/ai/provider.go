/*
Copyright © 2025 changheonshin
*/

// Package ai contains the LLM gateway: the prompt builder and the
// pluggable provider implementations that answer classification prompts.
package ai

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"time"

	"github.com/devlikebear/parafile/internal/common"
	"github.com/devlikebear/parafile/internal/config"
)

// DefaultTimeout bounds a provider request when the configuration does
// not specify one.
const DefaultTimeout = 15 * time.Second

// Provider sends a prompt to an LLM endpoint and returns the raw text
// completion. Implementations validate their own configuration before
// issuing any network call and bound the request with a timeout; a single
// failed query never aborts a whole batch.
type Provider interface {
	Query(ctx context.Context, prompt string) (string, error)
	String() string
}

// NewProvider builds the provider selected by the configuration. Adding a
// provider means adding a variant here, not branching at call sites.
func NewProvider(pc config.ProviderConfig) (Provider, error) {
	switch pc.Name {
	case "ollama":
		return NewOllamaProvider(pc), nil
	case "openrouter":
		return NewOpenRouterProvider(pc), nil
	case "gemini":
		return NewGeminiProvider(pc), nil
	default:
		return nil, fmt.Errorf("%w: unknown llm provider %q", common.ErrMissingConfig, pc.Name)
	}
}

func timeoutFor(pc config.ProviderConfig) time.Duration {
	if pc.Timeout > 0 {
		return time.Duration(pc.Timeout) * time.Second
	}
	return DefaultTimeout
}

// classifyTransportError separates timeouts from other connection
// failures so retry and logging decisions can tell them apart.
func classifyTransportError(err error) error {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return fmt.Errorf("%w: %v", common.ErrTimeout, err)
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", common.ErrTimeout, err)
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Timeout() {
		return fmt.Errorf("%w: %v", common.ErrTimeout, err)
	}
	return fmt.Errorf("%w: %v", common.ErrConnection, err)
}
