package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Keys     APIKeys
	LLM      LLMConfig
	Analyzer AnalyzerConfig
	Tracing  TracingConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	AnalyzerLogPath    string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
	JwtSecret          string
	RequestTimeout     time.Duration
	SessionLockTTL     time.Duration
	ReportCacheTTL     time.Duration
	EventTopic         string
}

type DatabaseConfig struct {
	Connection string
}

type APIKeys struct {
	Gemini    string
	Anthropic string
}

type LLMConfig struct {
	GeminiModel      string
	GeminiBaseURL    string
	AnthropicModel   string
	AnthropicBaseURL string
	Temperature      float64
	TopP             float64
	MaxTokens        int
}

type AnalyzerConfig struct {
	// Command is split on whitespace; the analyzer flags are appended to it.
	Command []string
	WorkDir string
}

type TracingConfig struct {
	Enabled     bool
	Endpoint    string
	ServiceName string
}

func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, using system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			AnalyzerLogPath:    getEnv("ANALYZER_LOG_FILE_PATH", "logs/analyzer.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:           getEnv("REDIS_URL", ""),
			JwtSecret:          getEnv("JWT_SECRET", ""),
			RequestTimeout:     getEnvAsDuration("REQUEST_TIMEOUT", 2*time.Minute),
			SessionLockTTL:     getEnvAsDuration("SESSION_LOCK_TTL", 3*time.Minute),
			ReportCacheTTL:     getEnvAsDuration("REPORT_CACHE_TTL", 10*time.Minute),
			EventTopic:         getEnv("EVENT_TOPIC", "domain_events"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Keys: APIKeys{
			Gemini:    getEnv("GEMINI_API_KEY", ""),
			Anthropic: getEnv("ANTHROPIC_API_KEY", ""),
		},
		LLM: LLMConfig{
			GeminiModel:      getEnv("GEMINI_MODEL", "gemini-2.0-flash-001"),
			GeminiBaseURL:    getEnv("GEMINI_BASE_URL", ""),
			AnthropicModel:   getEnv("ANTHROPIC_MODEL", "claude-3-5-haiku-latest"),
			AnthropicBaseURL: getEnv("ANTHROPIC_BASE_URL", ""),
			Temperature:      getEnvAsFloat("LLM_TEMPERATURE", 0.4),
			TopP:             getEnvAsFloat("LLM_TOP_P", 0.9),
			MaxTokens:        getEnvAsInt("LLM_MAX_TOKENS", 1024),
		},
		Analyzer: AnalyzerConfig{
			Command: strings.Fields(getEnv("ANALYZER_COMMAND", "uv run python diary_analyzer.py")),
			WorkDir: getEnv("ANALYZER_WORKDIR", "python"),
		},
		Tracing: TracingConfig{
			Enabled:     getEnv("OTEL_ENABLED", "false") == "true",
			Endpoint:    getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4318"),
			ServiceName: getEnv("OTEL_SERVICE_NAME", "mindcare-be"),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsFloat(key string, fallback float64) float64 {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseFloat(strValue, 64); err == nil {
		return value
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	strValue := getEnv(key, "")
	if value, err := time.ParseDuration(strValue); err == nil {
		return value
	}
	return fallback
}
