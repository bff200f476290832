package main

import (
	"log/slog"

	"github.com/phrazzld/slack-relay/internal/config"
	"github.com/phrazzld/slack-relay/internal/platform/slack"
)

// application holds the dependencies shared by every request. The Slack
// client is built once here and only read afterwards.
type application struct {
	config *config.Config
	logger *slog.Logger
	slack  *slack.Client
}

func newApplication(cfg *config.Config, logger *slog.Logger) *application {
	return &application{
		config: cfg,
		logger: logger,
		slack: slack.NewClient(cfg.Slack,
			slack.WithLogger(logger.With(slog.String("component", "slack_client")))),
	}
}
