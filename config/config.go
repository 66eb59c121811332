package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Port            string `mapstructure:"port"`
	StaticDir       string `mapstructure:"static_dir"`
	Provider        string `mapstructure:"provider"`
	GeminiAPIKey    string `mapstructure:"GEMINI_API_KEY"`
	GeminiModel     string `mapstructure:"gemini_model"`
	AIEndpoint      string `mapstructure:"ai_endpoint"`
	Model           string `mapstructure:"model"`
	OpenAIAPIKey    string `mapstructure:"OPENAI_API_KEY"`
	HistoryWindow   int    `mapstructure:"history_window"`
	MaxHistoryTurns int    `mapstructure:"max_history_turns"`
	HistoryTTLMin   int    `mapstructure:"history_ttl_minutes"`
	GenTimeoutSec   int    `mapstructure:"generation_timeout_seconds"`
}

// GenerationTimeout is the bounded wait applied to each outbound
// generation call.
func (c *Config) GenerationTimeout() time.Duration {
	return time.Duration(c.GenTimeoutSec) * time.Second
}

func (c *Config) HistoryTTL() time.Duration {
	return time.Duration(c.HistoryTTLMin) * time.Minute
}

func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()

	// Set up Viper to read from config file
	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")

	v.SetDefault("port", "3000")
	v.SetDefault("static_dir", "public")
	v.SetDefault("provider", "gemini")
	v.SetDefault("gemini_model", "gemini-2.0-flash-lite")
	v.SetDefault("history_window", 6)
	v.SetDefault("max_history_turns", 100)
	v.SetDefault("history_ttl_minutes", 60)
	v.SetDefault("generation_timeout_seconds", 60)

	// Set up Viper to read from environment variables
	v.AutomaticEnv()

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	// Bind environment variables
	v.BindEnv("GEMINI_API_KEY")
	v.BindEnv("OPENAI_API_KEY")

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	return &config, nil
}
