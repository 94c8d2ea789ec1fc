package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config structure represents the application configuration
type Config struct {
	Server struct {
		Port string `yaml:"port" env:"SERVER_PORT"`
		Mode string `yaml:"mode" env:"SERVER_MODE"`
	} `yaml:"server"`

	Database struct {
		Host            string `yaml:"host" env:"DB_HOST"`
		Port            string `yaml:"port" env:"DB_PORT"`
		User            string `yaml:"user" env:"DB_USER"`
		Password        string `yaml:"password" env:"DB_PASSWORD"`
		DBName          string `yaml:"dbname" env:"DB_NAME"`
		SSLMode         string `yaml:"sslmode" env:"DB_SSLMODE"`
		MaxIdleConns    int    `yaml:"max_idle_conns" env:"DB_MAX_IDLE_CONNS"`
		MaxOpenConns    int    `yaml:"max_open_conns" env:"DB_MAX_OPEN_CONNS"`
		ConnMaxLifetime string `yaml:"conn_max_lifetime" env:"DB_CONN_MAX_LIFETIME"`
	} `yaml:"database"`

	JWT struct {
		Secret                string `yaml:"secret" env:"JWT_SECRET"`
		AccessTokenExpiration string `yaml:"access_token_expiration" env:"JWT_ACCESS_TOKEN_EXPIRATION"`
		Issuer                string `yaml:"issuer" env:"JWT_ISSUER"`
	} `yaml:"jwt"`

	GenAI struct {
		BaseURL    string `yaml:"base_url" env:"GENAI_BASE_URL"`
		APIKey     string `yaml:"api_key" env:"GENAI_API_KEY"`
		Model      string `yaml:"model" env:"GENAI_MODEL"`
		Timeout    string `yaml:"timeout" env:"GENAI_TIMEOUT"`
		MaxRetries int    `yaml:"max_retries" env:"GENAI_MAX_RETRIES"`
		RetryDelay string `yaml:"retry_delay" env:"GENAI_RETRY_DELAY"`
	} `yaml:"genai"`

	RateLimit struct {
		BotPerMinute int `yaml:"bot_per_minute" env:"RATE_LIMIT_BOT_PER_MINUTE"`
		BotBurst     int `yaml:"bot_burst" env:"RATE_LIMIT_BOT_BURST"`
	} `yaml:"rate_limit"`

	Logging struct {
		Level  string `yaml:"level" env:"LOG_LEVEL"`
		Format string `yaml:"format" env:"LOG_FORMAT"`
	} `yaml:"logging"`
}

// LoadConfig loads configuration from a file and environment variables
func LoadConfig(configPath string) (*Config, error) {
	config := &Config{}
	setDefaults(config)

	// Config file is optional; env vars can carry the whole configuration
	if _, err := os.Stat(configPath); err == nil {
		file, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		err = yaml.Unmarshal(file, config)
		if err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	// Override with environment variables
	err := loadFromEnv(config)
	if err != nil {
		return nil, fmt.Errorf("failed to load from environment: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// setDefaults sets default values for the configuration
func setDefaults(config *Config) {
	// Server defaults
	config.Server.Port = "8080"
	config.Server.Mode = "development"

	// Database defaults
	config.Database.Host = "localhost"
	config.Database.Port = "5432"
	config.Database.User = "postgres"
	config.Database.Password = "postgres"
	config.Database.DBName = "venturelink"
	config.Database.SSLMode = "disable"
	config.Database.MaxIdleConns = 5
	config.Database.MaxOpenConns = 20
	config.Database.ConnMaxLifetime = "1h"

	// JWT defaults
	config.JWT.AccessTokenExpiration = "1h"
	config.JWT.Issuer = "venturelink.app"

	// Generative endpoint defaults
	config.GenAI.BaseURL = "https://generativelanguage.googleapis.com/v1beta"
	config.GenAI.Model = "gemini-2.0-flash"
	config.GenAI.Timeout = "30s"
	config.GenAI.MaxRetries = 2
	config.GenAI.RetryDelay = "1s"

	// Rate limit defaults for the chatbot relay
	config.RateLimit.BotPerMinute = 20
	config.RateLimit.BotBurst = 5

	// Logging defaults
	config.Logging.Level = "info"
	config.Logging.Format = "json"
}

// loadFromEnv overrides configuration with environment variables
func loadFromEnv(config *Config) error {
	return processStructFields(config)
}

// validateConfig ensures that the configuration is valid
func validateConfig(config *Config) error {
	if config.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}

	if config.JWT.Secret == "" {
		return fmt.Errorf("JWT secret is required")
	}

	if _, err := time.ParseDuration(config.JWT.AccessTokenExpiration); err != nil {
		return fmt.Errorf("invalid JWT access token expiration format: %w", err)
	}

	if config.GenAI.APIKey == "" {
		return fmt.Errorf("generative endpoint API key is required")
	}

	if _, err := time.ParseDuration(config.GenAI.Timeout); err != nil {
		return fmt.Errorf("invalid genai timeout format: %w", err)
	}

	if _, err := time.ParseDuration(config.GenAI.RetryDelay); err != nil {
		return fmt.Errorf("invalid genai retry delay format: %w", err)
	}

	if config.RateLimit.BotPerMinute <= 0 {
		return fmt.Errorf("bot rate limit must be positive")
	}

	return nil
}

// GetPostgresConnectionString returns postgres connection string
func (c *Config) GetPostgresConnectionString() string {
	sslMode := c.Database.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}

	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.DBName,
		sslMode,
	)
}
