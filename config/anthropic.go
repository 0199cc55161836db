package config

import (
	"fmt"
	"os"
	"strconv"
)

type AnthropicConfig struct {
	ApiUrl    string
	ApiKey    string
	Model     string
	MaxTokens int
}

func GetAnthropicConfig() (*AnthropicConfig, error) {
	apiUrl := os.Getenv("ANTHROPIC_API_URL")
	if apiUrl == "" {
		return nil, fmt.Errorf("ANTHROPIC_API_URL must be set")
	}
	apiKey := os.Getenv("ANTHROPIC_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("ANTHROPIC_API_KEY must be set")
	}
	model := os.Getenv("ANTHROPIC_MODEL")
	if model == "" {
		return nil, fmt.Errorf("ANTHROPIC_MODEL must be set")
	}
	maxTokens := os.Getenv("ANTHROPIC_MAX_TOKENS")
	if maxTokens == "" {
		return nil, fmt.Errorf("ANTHROPIC_MAX_TOKENS must be set")
	}
	maxTokensVal, err := strconv.Atoi(maxTokens)
	if err != nil {
		return nil, fmt.Errorf("Failed to parse anthropic max tokens")
	}

	return &AnthropicConfig{
		ApiUrl:    apiUrl,
		ApiKey:    apiKey,
		Model:     model,
		MaxTokens: maxTokensVal,
	}, nil
}
