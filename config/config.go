package config

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
)

type GeminiConfig struct {
	APIKey string
}

// IsConfigured returns true if all required Gemini configuration is present
func (c GeminiConfig) IsConfigured() bool {
	return c.APIKey != ""
}

type N8NConfig struct {
	WebhookURL string
}

// IsConfigured returns true if all required n8n configuration is present
func (c N8NConfig) IsConfigured() bool {
	return c.WebhookURL != ""
}

type ClerkConfig struct {
	SecretKey string
}

// IsConfigured returns true if all required Clerk configuration is present
func (c ClerkConfig) IsConfigured() bool {
	return c.SecretKey != ""
}

type AppConfig struct {
	// Core configuration (always required)
	DatabaseURL        string
	DatabaseSchema     string
	Port               string // Optional with default "8080"
	CORSAllowedOrigins string // Optional with default "*"
	Environment        string
	ServerLogsURL      string
	AlertWebhookURL    string
	UseStrictConfig    bool // If true, error when any integration is not fully configured

	// Integration configurations (grouped)
	GeminiConfig GeminiConfig
	N8NConfig    N8NConfig
	ClerkConfig  ClerkConfig
}

func LoadConfig() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		fmt.Println("⚠️ Could not load .env file, continuing with system env vars")
	}

	// Core required configuration
	databaseURL, err := getEnvRequired("DB_URL")
	if err != nil {
		return nil, err
	}

	databaseSchema, err := getEnvRequired("DB_SCHEMA")
	if err != nil {
		return nil, err
	}

	config := &AppConfig{
		// Core configuration
		DatabaseURL:        databaseURL,
		DatabaseSchema:     databaseSchema,
		Port:               getEnvWithDefault("PORT", "8080"),
		CORSAllowedOrigins: getEnvWithDefault("CORS_ALLOWED_ORIGINS", "*"),
		Environment:        getEnvWithDefault("ENVIRONMENT", "dev"),
		ServerLogsURL:      getEnvWithDefault("SERVER_LOGS_URL", ""),
		AlertWebhookURL:    os.Getenv("ALERT_WEBHOOK_URL"),
		UseStrictConfig:    getEnvWithDefault("USE_STRICT_CONFIG", "true") == "true",

		// Gemini configuration (optional)
		GeminiConfig: GeminiConfig{
			APIKey: os.Getenv("GEMINI_API_KEY"),
		},

		// n8n configuration (optional)
		N8NConfig: N8NConfig{
			WebhookURL: os.Getenv("N8N_WEBHOOK_URL"),
		},

		// Clerk configuration (optional)
		ClerkConfig: ClerkConfig{
			SecretKey: os.Getenv("CLERK_SECRET_KEY"),
		},
	}

	// Log which integrations are configured
	if config.GeminiConfig.IsConfigured() {
		log.Printf("✅ Gemini integration configured")
	} else {
		log.Printf("⚠️ Gemini integration not configured - assistant completions will be disabled")
		if config.UseStrictConfig {
			return nil, fmt.Errorf("gemini integration is not fully configured (USE_STRICT_CONFIG=true)")
		}
	}

	if config.N8NConfig.IsConfigured() {
		log.Printf("✅ n8n integration configured")
	} else {
		log.Printf("⚠️ n8n integration not configured - command dispatch will be disabled")
		if config.UseStrictConfig {
			return nil, fmt.Errorf("n8n integration is not fully configured (USE_STRICT_CONFIG=true)")
		}
	}

	if config.ClerkConfig.IsConfigured() {
		log.Printf("✅ Clerk authentication configured")
	} else {
		log.Printf("⚠️ Clerk authentication not configured - API authentication will be disabled")
		if config.UseStrictConfig {
			return nil, fmt.Errorf("clerk authentication is not fully configured (USE_STRICT_CONFIG=true)")
		}
	}

	return config, nil
}

func getEnvRequired(key string) (string, error) {
	value := os.Getenv(key)
	if value == "" {
		return "", fmt.Errorf("%s is not set", key)
	}
	return value, nil
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
