package config

import (
	"os"
	"strconv"
	"strings"
)

// Config holds application configuration.
type Config struct {
	Port            string
	Env             string
	Debug           bool
	CORSAllowOrigin []string
	MaxUploadBytes  int64
	OCRLanguage     string

	LLMProvider string
	LLMModel    string
	OpenAIKey   string

	DocCloudAPIURL       string
	DocCloudAPIKey       string
	DocCloudClientID     string
	DocCloudClientSecret string
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	// Best-effort load of local env files for dev convenience.
	loadEnvFiles(".env", "cmd/.env")

	return Config{
		Port:            getEnv("PORT", "8080"),
		Env:             normalizeEnv(getEnv("ENV", "dev")),
		Debug:           parseBool(getEnv("DEBUG", "")),
		CORSAllowOrigin: splitAndTrim(getEnv("CORS_ALLOW_ORIGINS", "*")),
		MaxUploadBytes:  parseBytes(getEnv("MAX_UPLOAD_SIZE", ""), 50<<20),
		OCRLanguage:     getEnv("OCR_LANGUAGE", "eng"),

		LLMProvider: normalizeProvider(getEnv("LLM_PROVIDER", "openai")),
		LLMModel:    getEnv("LLM_MODEL", "gpt-4o"),
		OpenAIKey:   os.Getenv("OPENAI_API_KEY"),

		DocCloudAPIURL:       getEnv("DOCCLOUD_API_URL", "https://api.doccloud.example.com/v1"),
		DocCloudAPIKey:       getEnv("DOCCLOUD_API_KEY", ""),
		DocCloudClientID:     getEnv("DOCCLOUD_CLIENT_ID", ""),
		DocCloudClientSecret: getEnv("DOCCLOUD_CLIENT_SECRET", ""),
	}
}

// MockLLM reports whether classification should use the mock client instead of
// a real provider. Demo keys never reach the network.
func (c Config) MockLLM() bool {
	return c.Debug || strings.HasPrefix(c.OpenAIKey, "sk-demo") || c.LLMProvider == "mock"
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func parseBool(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "true", "1", "yes":
		return true
	default:
		return false
	}
}

func parseBytes(raw string, def int64) int64 {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return def
	}
	parsed, err := strconv.ParseInt(trimmed, 10, 64)
	if err != nil || parsed <= 0 {
		return def
	}
	return parsed
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	default:
		return "dev"
	}
}

func normalizeProvider(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "mock":
		return "mock"
	default:
		return "openai"
	}
}
