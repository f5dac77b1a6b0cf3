// Package config provides environment-based configuration for the CLI and
// the HTTP server.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Environment variable names
const (
	EnvPort    = "PORT"
	EnvAPIKey  = "ANTHROPIC_API_KEY"
	EnvModel   = "BANDLINT_MODEL"
	EnvLexicon = "BANDLINT_LEXICON"
	EnvJudge   = "BANDLINT_JUDGE"
)

// DefaultPort is the HTTP port used when PORT is unset
const DefaultPort = 3001

// Judge backends
const (
	JudgeAnthropic  = "anthropic"
	JudgeClaudeCode = "claude-code"
)

// Config holds the process configuration. All fields are optional.
type Config struct {
	Port    int    // HTTP listen port
	APIKey  string // Anthropic API key for the second opinion and OCR
	Model   string // Anthropic model override
	Lexicon string // lexicon name or path of a custom lexicon YAML
	Judge   string // second-opinion backend: anthropic or claude-code
}

// LoadDotEnv loads variables from files (default .env) without overriding
// variables already set. Missing files are ignored.
func LoadDotEnv(files ...string) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if _, err := os.Stat(f); err != nil {
			continue
		}
		_ = godotenv.Load(f)
	}
}

// FromEnv reads the configuration from the environment
func FromEnv() *Config {
	return &Config{
		Port:    getEnvInt(EnvPort, DefaultPort),
		APIKey:  os.Getenv(EnvAPIKey),
		Model:   os.Getenv(EnvModel),
		Lexicon: os.Getenv(EnvLexicon),
		Judge:   getEnvString(EnvJudge, JudgeAnthropic),
	}
}

// Validate checks that the configuration has valid values
func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("config error: port %d out of range 1-65535", c.Port)
	}

	switch c.Judge {
	case JudgeAnthropic, JudgeClaudeCode:
	default:
		return fmt.Errorf("config error: judge must be %q or %q, got %q", JudgeAnthropic, JudgeClaudeCode, c.Judge)
	}

	return nil
}

// getEnvString gets an environment variable as a string with a default value.
func getEnvString(key string, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt gets an environment variable as an integer with a default value.
// Unparseable values are kept as 0 so Validate reports them.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		intValue, err := strconv.Atoi(value)
		if err != nil {
			return 0
		}
		return intValue
	}
	return defaultValue
}
