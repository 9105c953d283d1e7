package config

import (
	"os"
	"strings"
)

// Config holds application configuration.
type Config struct {
	Port             string
	CORSAllowOrigin  []string
	Env              string
	UploadDir        string
	ProfilesDir      string
	OutputDir        string
	LLMProvider      string
	LLMModel         string
	OpenAIAPIKey     string
	AILogPath        string
	AILogFullPayload bool
	PDFRenderer      string
	ChromePath       string
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	// Best-effort load of local env files for dev convenience.
	loadEnvFiles(".env", "cmd/.env")

	return Config{
		Port:             getEnv("PORT", "8080"),
		CORSAllowOrigin:  splitAndTrim(getEnv("CORS_ALLOW_ORIGINS", "http://localhost:5173")),
		Env:              normalizeEnv(getEnv("ENV", "dev")),
		UploadDir:        getEnv("UPLOAD_DIR", "./uploads"),
		ProfilesDir:      getEnv("PROFILES_DIR", "./user_profiles"),
		OutputDir:        getEnv("OUTPUT_DIR", "./generated"),
		LLMProvider:      getEnv("LLM_PROVIDER", "openai"),
		LLMModel:         getEnv("LLM_MODEL", "gpt-4"),
		OpenAIAPIKey:     os.Getenv("OPENAI_API_KEY"),
		AILogPath:        getEnv("AI_LOG_PATH", "./ai_interactions.log"),
		AILogFullPayload: parseBool(getEnv("AI_LOG_FULL_PAYLOAD", "false")),
		PDFRenderer:      normalizeRenderer(getEnv("PDF_RENDERER", "none")),
		ChromePath:       os.Getenv("CHROME_PATH"),
	}
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
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	case "development", "dev":
		return "dev"
	default:
		return "dev"
	}
}

func normalizeRenderer(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "chrome", "chromedp":
		return "chrome"
	default:
		return "none"
	}
}
