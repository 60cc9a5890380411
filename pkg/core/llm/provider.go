package llm

import (
	"context"
)

// Provider is the interface for all LLM providers.
type Provider interface {
	GenerateResponse(ctx context.Context, prompt string, systemPrompt string, options map[string]interface{}) (string, error)
	// AdaptInstructions transforms raw instructions into model-specific formats
	AdaptInstructions(rawInstructions string) string
}

// StaticProvider returns a canned response. Used by tests and by the
// pipeline's dry-run mode so the extraction path can run without network
// access or API keys.
type StaticProvider struct {
	Response string
	Err      error
}

func (p *StaticProvider) GenerateResponse(ctx context.Context, prompt string, systemPrompt string, options map[string]interface{}) (string, error) {
	if p.Err != nil {
		return "", p.Err
	}
	return p.Response, nil
}

func (p *StaticProvider) AdaptInstructions(raw string) string {
	return raw
}
