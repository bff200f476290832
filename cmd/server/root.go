package main

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/phrazzld/slack-relay/internal/config"
	"github.com/phrazzld/slack-relay/internal/platform/logger"
	"github.com/phrazzld/slack-relay/internal/platform/version"
	"github.com/spf13/cobra"
)

// newRootCommand builds the slack-relay command. Flags are bound to
// configuration keys by config.Load and only override other sources when set.
func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "slack-relay",
		Short:         "Relay local HTTP requests to the Slack Web API",
		Version:       version.Get().String(),
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			if err := run(ctx, cmd); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "slack-relay: %v\n", err)
				return err
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.String("host", "127.0.0.1", "interface to listen on")
	flags.Int("port", 8080, "port to listen on")
	flags.String("log-level", "info", "log level (debug, info, warn, error)")
	flags.String("log-format", "json", "log format (json, text)")
	flags.String("slack-base-url", "https://slack.com/api", "base URL of the Slack Web API")
	flags.String(config.EnvFileFlag, config.DefaultEnvFile, "dotenv file loaded into the environment when present")

	return cmd
}

func run(ctx context.Context, cmd *cobra.Command) error {
	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	log.Info("server configuration loaded",
		slog.String("version", version.Version),
		slog.String("host", cfg.Server.Host),
		slog.Int("port", cfg.Server.Port),
		slog.String("log_level", cfg.Server.LogLevel),
		slog.String("slack_base_url", cfg.Slack.BaseURL),
		slog.Bool("bot_token_present", cfg.Slack.BotToken != ""))
	if cfg.Slack.BotToken == "" {
		log.Warn("no Slack bot token configured; upstream calls will be unauthenticated",
			slog.String("env", config.BotTokenEnv))
	}

	app := newApplication(cfg, log)
	return app.startHTTPServer(ctx, app.setupRouter())
}
