package slack

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"time"

	"github.com/phrazzld/slack-relay/internal/metrics"
	"github.com/phrazzld/slack-relay/internal/platform/logger"
)

// Slack Web API methods relayed by the client.
const (
	OperationPostMessage      = "chat.postMessage"
	OperationListUsers        = "users.list"
	OperationConversationInfo = "conversations.info"
)

// OutboundMessage is a message to post to a channel. Both fields are
// forwarded as given, empty values included.
type OutboundMessage struct {
	Channel string
	Message string
}

// PostMessage posts msg with chat.postMessage. The form body carries exactly
// the fields channel and text.
func (c *Client) PostMessage(ctx context.Context, msg OutboundMessage) (json.RawMessage, error) {
	form := url.Values{}
	form.Set("channel", msg.Channel)
	form.Set("text", msg.Message)

	return c.relay(ctx, OperationPostMessage, func() (*http.Response, error) {
		return c.PostForm(ctx, c.endpoint(OperationPostMessage), form)
	})
}

// ListUsers fetches the workspace member list with users.list.
func (c *Client) ListUsers(ctx context.Context) (json.RawMessage, error) {
	return c.relay(ctx, OperationListUsers, func() (*http.Response, error) {
		return c.Get(ctx, c.endpoint(OperationListUsers))
	})
}

// ConversationInfo fetches channel metadata with conversations.info.
func (c *Client) ConversationInfo(ctx context.Context, channelID string) (json.RawMessage, error) {
	return c.relay(ctx, OperationConversationInfo, func() (*http.Response, error) {
		return c.Get(ctx, conversationInfoURL(c.baseURL, channelID))
	})
}

// conversationInfoURL interpolates channelID into the query string without
// escaping. Reserved characters in channelID reach the upstream URL as-is.
func conversationInfoURL(baseURL, channelID string) string {
	return baseURL + "/" + OperationConversationInfo + "?channel=" + channelID
}

// relay performs exactly one upstream call and normalizes its outcome.
func (c *Client) relay(
	ctx context.Context,
	operation string,
	call func() (*http.Response, error),
) (json.RawMessage, error) {
	log := logger.FromContextOrDefault(ctx, c.logger).With("operation", operation)

	start := time.Now()
	resp, err := call()
	body, err := Normalize(resp, err, log)
	elapsed := time.Since(start)

	metrics.UpstreamRequestDuration.WithLabelValues(operation).Observe(elapsed.Seconds())
	metrics.UpstreamRequestsTotal.WithLabelValues(operation, outcome(err)).Inc()

	if err == nil {
		log.Debug("slack request completed", "duration_ms", elapsed.Milliseconds())
	}

	return body, err
}

// outcome maps a normalized result to its metrics label.
func outcome(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeOK
	case errors.Is(err, ErrUpstreamUnreachable):
		return metrics.OutcomeUpstreamUnreachable
	case errors.Is(err, ErrBodyUnreadable):
		return metrics.OutcomeBodyUnreadable
	default:
		return metrics.OutcomeMalformedBody
	}
}
