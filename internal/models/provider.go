// Package models provides chat-model adapters for the supported providers.
package models

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/adk/model"
	"google.golang.org/adk/model/gemini"
	"google.golang.org/genai"
)

// New returns the chat model for the named provider. OpenAI-compatible
// providers share one adapter and differ only in base URL.
func New(ctx context.Context, provider, modelName, apiKey string) (model.LLM, error) {
	cfg := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}
	switch strings.ToLower(provider) {
	case "gemini":
		return gemini.NewModel(ctx, modelName, cfg)
	case "openai", "":
		return NewOpenAIModel(ctx, modelName, cfg)
	case "grok":
		return NewGrokModel(ctx, modelName, cfg)
	case "openrouter":
		return NewOpenRouterModel(ctx, modelName, cfg)
	default:
		return nil, fmt.Errorf("unknown llm provider: %s", provider)
	}
}
