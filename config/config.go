package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all server configuration
type Config struct {
	Port              int
	HTTPPort          int    // Port for the HTTP chat server (used when ServerType is "both")
	ServerType        string // "websocket", "http", or "both"
	RedisURL          string // empty disables the Redis session registry
	RedisPassword     string
	MaxSessions       int
	SessionTimeout    time.Duration
	GeminiAPIKey      string
	GeminiModel       string
	GeminiTimeout     time.Duration
	AllowedOrigins    []string
	HistoryTurns      int // Transcript turns included in each prompt
	MaxTranscriptSize int // Turns kept per session
	KeywordsFile      string
	AMQPURL           string // empty disables the kitchen queue
}

// LoadConfig loads configuration from environment variables with defaults
func LoadConfig() (*Config, error) {
	// Load .env file if it exists (doesn't error if missing)
	_ = godotenv.Load()

	config := &Config{
		Port:              8080,
		HTTPPort:          8081,
		ServerType:        "websocket",
		RedisURL:          "localhost:6379",
		RedisPassword:     "",
		MaxSessions:       100,
		SessionTimeout:    30 * time.Minute,
		GeminiModel:       "gemini-2.5-flash",
		GeminiTimeout:     60 * time.Second,
		AllowedOrigins:    []string{"*"},
		HistoryTurns:      8,
		MaxTranscriptSize: 200,
	}

	// Required: GEMINI_API_KEY (GOOGLE_API_KEY accepted as well)
	config.GeminiAPIKey = os.Getenv("GEMINI_API_KEY")
	if config.GeminiAPIKey == "" {
		config.GeminiAPIKey = os.Getenv("GOOGLE_API_KEY")
	}
	if config.GeminiAPIKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY environment variable is required")
	}

	// Optional: GEMINI_MODEL
	if model := os.Getenv("GEMINI_MODEL"); model != "" {
		config.GeminiModel = model
	}

	// Optional: GEMINI_TIMEOUT (in seconds, 0 disables)
	if timeout := os.Getenv("GEMINI_TIMEOUT"); timeout != "" {
		t, err := strconv.Atoi(timeout)
		if err != nil {
			return nil, fmt.Errorf("invalid GEMINI_TIMEOUT: %w", err)
		}
		config.GeminiTimeout = time.Duration(t) * time.Second
	}

	// Optional: PORT
	if port := os.Getenv("PORT"); port != "" {
		p, err := strconv.Atoi(port)
		if err != nil {
			return nil, fmt.Errorf("invalid PORT: %w", err)
		}
		config.Port = p
	}

	// Optional: REDIS_URL ("none" disables Redis)
	if redisURL, ok := os.LookupEnv("REDIS_URL"); ok {
		if redisURL == "none" {
			redisURL = ""
		}
		config.RedisURL = redisURL
	}

	// Optional: REDIS_PASSWORD
	if redisPassword := os.Getenv("REDIS_PASSWORD"); redisPassword != "" {
		config.RedisPassword = redisPassword
	}

	// Optional: MAX_SESSIONS
	if maxSessions := os.Getenv("MAX_SESSIONS"); maxSessions != "" {
		m, err := strconv.Atoi(maxSessions)
		if err != nil {
			return nil, fmt.Errorf("invalid MAX_SESSIONS: %w", err)
		}
		config.MaxSessions = m
	}

	// Optional: SESSION_TIMEOUT (in minutes)
	if timeout := os.Getenv("SESSION_TIMEOUT"); timeout != "" {
		t, err := strconv.Atoi(timeout)
		if err != nil {
			return nil, fmt.Errorf("invalid SESSION_TIMEOUT: %w", err)
		}
		config.SessionTimeout = time.Duration(t) * time.Minute
	}

	// Optional: ALLOWED_ORIGINS (comma-separated)
	if origins := os.Getenv("ALLOWED_ORIGINS"); origins != "" {
		config.AllowedOrigins = strings.Split(origins, ",")
	}

	// Optional: HISTORY_TURNS
	if history := os.Getenv("HISTORY_TURNS"); history != "" {
		h, err := strconv.Atoi(history)
		if err != nil || h <= 0 {
			return nil, fmt.Errorf("invalid HISTORY_TURNS: must be a positive integer")
		}
		config.HistoryTurns = h
	}

	// Optional: MAX_TRANSCRIPT_SIZE (turns kept per session, 0 keeps all)
	if size := os.Getenv("MAX_TRANSCRIPT_SIZE"); size != "" {
		s, err := strconv.Atoi(size)
		if err != nil {
			return nil, fmt.Errorf("invalid MAX_TRANSCRIPT_SIZE: %w", err)
		}
		config.MaxTranscriptSize = s
	}

	// Optional: KEYWORDS_FILE (YAML intent vocabulary)
	config.KeywordsFile = os.Getenv("KEYWORDS_FILE")

	// Optional: AMQP_URL (kitchen queue)
	config.AMQPURL = os.Getenv("AMQP_URL")

	// Optional: SERVER_TYPE ("websocket", "http", or "both")
	if serverType := os.Getenv("SERVER_TYPE"); serverType != "" {
		switch serverType {
		case "websocket", "http", "both":
			config.ServerType = serverType
		default:
			return nil, fmt.Errorf("invalid SERVER_TYPE: must be 'websocket', 'http', or 'both'")
		}
	}

	// Optional: HTTP_PORT (used when SERVER_TYPE is "both")
	if httpPort := os.Getenv("HTTP_PORT"); httpPort != "" {
		hp, err := strconv.Atoi(httpPort)
		if err != nil {
			return nil, fmt.Errorf("invalid HTTP_PORT: %w", err)
		}
		config.HTTPPort = hp
	}

	return config, nil
}
