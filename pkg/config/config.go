// Package config collects the service's environment-driven settings.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds the runtime settings for the chat service.
type Config struct {
	// Retrieval tuning. MatchThreshold favors recall over precision: answer
	// quality downstream depends on having some grounding context rather
	// than none.
	MatchCount     int
	MatchThreshold float64

	// CallTimeout bounds each external call (classify, retrieve, agent).
	CallTimeout time.Duration

	// LLM provider settings.
	OpenAIAPIKey   string
	OpenAIBaseURL  string
	ChatModel      string
	EmbeddingModel string
}

// Load reads configuration from the environment, applying defaults.
func Load() (*Config, error) {
	matchCount, err := intEnv("MATCH_COUNT", 5)
	if err != nil {
		return nil, err
	}
	matchThreshold, err := floatEnv("MATCH_THRESHOLD", 0.65)
	if err != nil {
		return nil, err
	}
	callTimeout, err := durationEnv("LLM_CALL_TIMEOUT", 60*time.Second)
	if err != nil {
		return nil, err
	}

	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY is required")
	}

	return &Config{
		MatchCount:     matchCount,
		MatchThreshold: matchThreshold,
		CallTimeout:    callTimeout,
		OpenAIAPIKey:   apiKey,
		OpenAIBaseURL:  os.Getenv("OPENAI_BASE_URL"),
		ChatModel:      getEnv("CHAT_MODEL", "gpt-4o-mini"),
		EmbeddingModel: getEnv("EMBEDDING_MODEL", "text-embedding-3-small"),
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func intEnv(key string, defaultValue int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return v, nil
}

func floatEnv(key string, defaultValue float64) (float64, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return v, nil
}

func durationEnv(key string, defaultValue time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return v, nil
}
