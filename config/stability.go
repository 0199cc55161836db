package config

import (
	"fmt"
	"os"
)

type StabilityConfig struct {
	ApiUrl       string
	ApiKey       string
	OutputFormat string
}

func GetStabilityConfig() (*StabilityConfig, error) {
	apiUrl := os.Getenv("STABILITY_API_URL")
	if apiUrl == "" {
		return nil, fmt.Errorf("STABILITY_API_URL must be set")
	}
	apiKey := os.Getenv("STABILITY_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("STABILITY_API_KEY must be set")
	}
	outputFormat := os.Getenv("STABILITY_OUTPUT_FORMAT")
	if outputFormat == "" {
		return nil, fmt.Errorf("STABILITY_OUTPUT_FORMAT must be set")
	}

	return &StabilityConfig{
		ApiUrl:       apiUrl,
		ApiKey:       apiKey,
		OutputFormat: outputFormat,
	}, nil
}
