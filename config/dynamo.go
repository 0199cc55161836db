package config

import (
	"fmt"
	"os"
	"strconv"
)

type DynamoConfig struct {
	CharactersTableName string
	SessionLogTableName string
	LogTtlMinutes       int
}

func GetDynamoConfig() (*DynamoConfig, error) {
	charactersTable := os.Getenv("CHARACTERS_TABLE_NAME")
	if charactersTable == "" {
		return nil, fmt.Errorf("CHARACTERS_TABLE_NAME must be set")
	}
	sessionLogTable := os.Getenv("SESSION_LOG_TABLE_NAME")
	if sessionLogTable == "" {
		return nil, fmt.Errorf("SESSION_LOG_TABLE_NAME must be set")
	}
	ttlMinutes := os.Getenv("SESSION_LOG_TTL_MINUTES")
	if ttlMinutes == "" {
		return nil, fmt.Errorf("SESSION_LOG_TTL_MINUTES must be set")
	}
	ttlMinutesVal, err := strconv.Atoi(ttlMinutes)
	if err != nil {
		return nil, fmt.Errorf("Failed to parse session log ttl minutes")
	}

	return &DynamoConfig{
		CharactersTableName: charactersTable,
		SessionLogTableName: sessionLogTable,
		LogTtlMinutes:       ttlMinutesVal,
	}, nil
}
