package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/subosito/gotenv"
)

const (
	// EnvPrefix is prepended to every environment variable read by Load,
	// e.g. SLACK_RELAY_SERVER_PORT for server.port.
	EnvPrefix = "SLACK_RELAY"

	// BotTokenEnv is the environment variable holding the Slack bot token.
	BotTokenEnv = "BOT_TOKEN"

	// DefaultEnvFile is the dotenv file loaded into the environment when present.
	DefaultEnvFile = ".env"

	// EnvFileFlag names the flag that overrides DefaultEnvFile.
	EnvFileFlag = "env-file"
)

// flagKeys maps command-line flag names to configuration keys.
var flagKeys = map[string]string{
	"host":           "server.host",
	"port":           "server.port",
	"log-level":      "server.log_level",
	"log-format":     "server.log_format",
	"slack-base-url": "slack.base_url",
}

// Load configuration from defaults, an optional .env file, environment
// variables, and the given flag set (which may be nil).
//
// Precedence, highest first: changed flags, environment variables (including
// those loaded from the .env file, which never override the real environment),
// defaults. A missing bot token is not an error.
func Load(flags *pflag.FlagSet) (*Config, error) {
	if err := loadEnvFile(envFilePath(flags)); err != nil {
		return nil, err
	}

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.BindEnv("slack.bot_token", BotTokenEnv, EnvPrefix+"_SLACK_BOT_TOKEN"); err != nil {
		return nil, fmt.Errorf("failed to bind %s: %w", BotTokenEnv, err)
	}

	if err := bindFlags(v, flags); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "127.0.0.1")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("server.log_format", "json")
	v.SetDefault("server.shutdown_timeout", 10*time.Second)

	v.SetDefault("slack.base_url", "https://slack.com/api")
	v.SetDefault("slack.bot_token", "")
	v.SetDefault("slack.timeout", 30*time.Second)
}

func bindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	if flags == nil {
		return nil
	}

	for name, key := range flagKeys {
		flag := flags.Lookup(name)
		if flag == nil {
			continue
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return fmt.Errorf("failed to bind flag %q: %w", name, err)
		}
	}

	return nil
}

func envFilePath(flags *pflag.FlagSet) string {
	if flags != nil {
		if flag := flags.Lookup(EnvFileFlag); flag != nil {
			return flag.Value.String()
		}
	}
	return DefaultEnvFile
}

// loadEnvFile exports the variables of a dotenv file that are not already set.
// A missing file is not an error.
func loadEnvFile(path string) error {
	if path == "" {
		return nil
	}

	if err := gotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load env file %q: %w", path, err)
	}

	return nil
}
