package config

import (
	"fmt"
	"os"
	"strconv"
)

type PipelineConfig struct {
	WordsPerSegment int
}

func GetPipelineConfig() (*PipelineConfig, error) {
	wordsPerSegment := os.Getenv("WORDS_PER_SEGMENT")
	if wordsPerSegment == "" {
		return nil, fmt.Errorf("WORDS_PER_SEGMENT must be set")
	}
	wordsPerSegmentVal, err := strconv.Atoi(wordsPerSegment)
	if err != nil || wordsPerSegmentVal <= 0 {
		return nil, fmt.Errorf("WORDS_PER_SEGMENT must be a positive integer")
	}

	return &PipelineConfig{
		WordsPerSegment: wordsPerSegmentVal,
	}, nil
}
