package config

import (
	"os"
	"strconv"
	"time"
)

// LLMProvider defines the backend LLM service type for reply generation
type LLMProvider string

const (
	ProviderNone       LLMProvider = "none"       // No LLM, tiered templates only
	ProviderOllama     LLMProvider = "ollama"     // Local Ollama server
	ProviderOpenRouter LLMProvider = "openrouter" // OpenRouter (default, has free tier)
	ProviderGroq       LLMProvider = "groq"       // Groq (high-speed inference)
)

// Config holds global settings for the honeypot service.
// All settings can be configured via environment variables or programmatically.
type Config struct {
	// === Server ===
	Port   string // HTTP listen port (default: "8000")
	APIKey string // Inbound x-api-key value; empty disables auth (dev only)

	// === Detection Thresholds ===
	// Tuned for high recall: a single intent signature match is enough,
	// and escalation across history trips at a low count.
	EscalationThreshold int // Escalation hits across counterparty history before flagging (default: 2)

	// === Engagement Policy Thresholds ===
	// The decision tree's structure is fixed; these tune when each rule fires.
	MinMessagesBeforeEnd  int     // Never end before this many messages (default: 10)
	MaxMessagesPerSession int     // Hard cap, forces termination (default: 30)
	MinIntelligenceItems  int     // Items across all categories considered "enough" (default: 3)
	IntelTurnFloor        int     // Intelligence rule also requires this many messages (default: 10)
	StallTurnFloor        int     // Stalling rule requires this many messages (default: 15)
	StallWindow           int     // History entries inspected for stalling (default: 4)
	StallMinMessages      int     // Counterparty entries required in the window (default: 2)
	StallAvgLength        float64 // Average text length below this means stalling (default: 20)

	// === Reply Generation ===
	LLMProvider    LLMProvider   // Which LLM service to use, or "none"
	LLMAPIKey      string        // API key for cloud providers
	LLMModel       string        // Model identifier (provider default when empty)
	LLMBaseURL     string        // Custom base URL for self-hosted providers
	LLMTimeout     time.Duration // Bound on a single generation call (default: 5s)
	LLMTemperature float64       // Generation temperature (default: 0.7)
	ReplyTemplates string        // Optional YAML file overriding the built-in reply pools
	ReplySeed      int64         // Seed for template selection; 0 means time-based

	// === Report Callback ===
	CallbackURL     string        // Evaluation endpoint for final results
	CallbackTimeout time.Duration // Bound on a delivery attempt (default: 10s)
	CallbackWorkers int           // Max concurrent fire-and-forget deliveries (default: 16)
}

// NewDefaultConfig creates a Config with sensible defaults.
// All settings can be overridden via environment variables.
func NewDefaultConfig() *Config {
	return &Config{
		Port:   GetEnv("HONEYPOT_PORT", "8000"),
		APIKey: GetEnv("HONEYPOT_API_KEY", ""),

		EscalationThreshold: GetEnvInt("HONEYPOT_ESCALATION_THRESHOLD", 2),

		MinMessagesBeforeEnd:  GetEnvInt("HONEYPOT_MIN_MESSAGES", 10),
		MaxMessagesPerSession: GetEnvInt("HONEYPOT_MAX_MESSAGES", 30),
		MinIntelligenceItems:  GetEnvInt("HONEYPOT_MIN_INTEL_ITEMS", 3),
		IntelTurnFloor:        GetEnvInt("HONEYPOT_INTEL_TURN_FLOOR", 10),
		StallTurnFloor:        GetEnvInt("HONEYPOT_STALL_TURN_FLOOR", 15),
		StallWindow:           clampInt(GetEnvInt("HONEYPOT_STALL_WINDOW", 4), 1, 50),
		StallMinMessages:      GetEnvInt("HONEYPOT_STALL_MIN_MESSAGES", 2),
		StallAvgLength:        GetEnvFloat("HONEYPOT_STALL_AVG_LENGTH", 20),

		LLMProvider:    detectLLMProvider(),
		LLMAPIKey:      GetEnv("HONEYPOT_LLM_API_KEY", GetEnv("GROQ_API_KEY", os.Getenv("OPENROUTER_API_KEY"))),
		LLMModel:       GetEnv("HONEYPOT_LLM_MODEL", ""),
		LLMBaseURL:     GetEnv("HONEYPOT_LLM_BASE_URL", ""),
		LLMTimeout:     time.Duration(GetEnvInt("HONEYPOT_LLM_TIMEOUT_MS", 5000)) * time.Millisecond,
		LLMTemperature: GetEnvFloat("HONEYPOT_LLM_TEMPERATURE", 0.7),
		ReplyTemplates: GetEnv("HONEYPOT_REPLY_TEMPLATES", ""),
		ReplySeed:      int64(GetEnvInt("HONEYPOT_REPLY_SEED", 0)),

		CallbackURL:     GetEnv("HONEYPOT_CALLBACK_URL", "https://hackathon.guvi.in/api/updateHoneyPotFinalResult"),
		CallbackTimeout: time.Duration(GetEnvInt("HONEYPOT_CALLBACK_TIMEOUT_MS", 10000)) * time.Millisecond,
		CallbackWorkers: clampInt(GetEnvInt("HONEYPOT_CALLBACK_WORKERS", 16), 1, 256),
	}
}

// NewAggressiveConfig favors recall: engage on the thinnest signal and hold
// conversations longer before reporting. More false-positive engagements.
func NewAggressiveConfig() *Config {
	cfg := NewDefaultConfig()
	cfg.EscalationThreshold = 1
	cfg.MinIntelligenceItems = 2
	cfg.MaxMessagesPerSession = 40
	return cfg
}

// NewConservativeConfig favors precision: require more corroboration before
// flagging and wrap up engagements sooner.
func NewConservativeConfig() *Config {
	cfg := NewDefaultConfig()
	cfg.EscalationThreshold = 3
	cfg.MinIntelligenceItems = 4
	cfg.MinMessagesBeforeEnd = 8
	cfg.MaxMessagesPerSession = 20
	return cfg
}

func detectLLMProvider() LLMProvider {
	// Explicit provider setting wins
	if p := os.Getenv("HONEYPOT_LLM_PROVIDER"); p != "" {
		return LLMProvider(p)
	}
	// Auto-detect based on available keys
	if os.Getenv("GROQ_API_KEY") != "" {
		return ProviderGroq
	}
	if os.Getenv("OPENROUTER_API_KEY") != "" || os.Getenv("HONEYPOT_LLM_API_KEY") != "" {
		return ProviderOpenRouter
	}
	// No keys: tiered templates only
	return ProviderNone
}

// clampInt ensures a value is within bounds
func clampInt(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// Helper functions for environment variable parsing
// These are exported for use by other packages

// GetEnv returns the value of an environment variable or a default value.
func GetEnv(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}

// GetEnvBool returns the boolean value of an environment variable or a default value.
func GetEnvBool(key string, defaultValue bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return defaultValue
}

// GetEnvInt returns the integer value of an environment variable or a default value.
func GetEnvInt(key string, defaultValue int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultValue
}

// GetEnvFloat returns the float value of an environment variable or a default value.
func GetEnvFloat(key string, defaultValue float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return defaultValue
}
