package config

import (
	"fmt"
	"os"
)

type OpenAiTtsConfig struct {
	ApiUrl string
	ApiKey string
	Model  string
	Voice  string
}

func GetOpenAiTtsConfig() (*OpenAiTtsConfig, error) {
	apiUrl := os.Getenv("OPENAI_TTS_API_URL")
	if apiUrl == "" {
		return nil, fmt.Errorf("OPENAI_TTS_API_URL must be set")
	}
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY must be set")
	}
	model := os.Getenv("OPENAI_TTS_MODEL")
	if model == "" {
		return nil, fmt.Errorf("OPENAI_TTS_MODEL must be set")
	}
	voice := os.Getenv("OPENAI_TTS_VOICE")
	if voice == "" {
		return nil, fmt.Errorf("OPENAI_TTS_VOICE must be set")
	}

	return &OpenAiTtsConfig{
		ApiUrl: apiUrl,
		ApiKey: apiKey,
		Model:  model,
		Voice:  voice,
	}, nil
}
