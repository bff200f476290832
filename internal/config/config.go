package config

import "time"

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server ServerConfig `mapstructure:"server" validate:"required"`
	Slack  SlackConfig  `mapstructure:"slack"  validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Host            string        `mapstructure:"host"             validate:"omitempty,hostname|ip"`
	Port            int           `mapstructure:"port"             validate:"required,gt=0,lt=65536"`
	LogLevel        string        `mapstructure:"log_level"        validate:"required,oneof=debug info warn error"`
	LogFormat       string        `mapstructure:"log_format"       validate:"required,oneof=json text"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"gt=0"`
}

// SlackConfig contains the settings for the upstream Slack Web API client.
type SlackConfig struct {
	BaseURL string `mapstructure:"base_url" validate:"required,url"`
	// BotToken may be empty. An empty token is still sent upstream and
	// surfaces as an authentication failure at call time, not at startup.
	BotToken string        `mapstructure:"bot_token"`
	Timeout  time.Duration `mapstructure:"timeout"   validate:"gte=0"`
}
