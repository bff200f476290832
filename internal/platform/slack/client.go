package slack

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/phrazzld/slack-relay/internal/config"
)

const (
	// DefaultBaseURL is the Slack Web API root.
	DefaultBaseURL = "https://slack.com/api"

	contentTypeForm = "application/x-www-form-urlencoded"
	bearerPrefix    = "Bearer "
)

// Client is the shared upstream client for the Slack Web API.
//
// A Client is built once at startup and shared by every request handler.
// It must stay immutable after NewClient returns: no method writes to its
// fields or to the default header set (requests receive a clone). Concurrent
// handlers use it without locking on that condition alone.
type Client struct {
	httpClient *http.Client
	baseURL    string
	headers    http.Header
	logger     *slog.Logger
}

// Option configures a Client during construction.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client. The configured timeout
// is not applied to a replaced client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithLogger sets the logger used when no request-scoped logger is present.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewClient builds the shared client from cfg. An empty bot token is
// accepted; it is sent as an empty Authorization header.
func NewClient(cfg config.SlackConfig, opts ...Option) *Client {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	headers := make(http.Header, 2)
	headers.Set("Content-Type", contentTypeForm)
	headers.Set("Authorization", authorizationValue(cfg.BotToken))

	c := &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		baseURL:    baseURL,
		headers:    headers,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}

	return c
}

// BaseURL returns the upstream API root the client sends requests to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// RequestOption adjusts the headers of a single upstream request.
type RequestOption func(http.Header)

// WithHeader overrides one default header for a single request.
func WithHeader(key, value string) RequestOption {
	return func(h http.Header) {
		h.Set(key, value)
	}
}

// Get issues a GET to rawURL with the default headers applied.
func (c *Client) Get(ctx context.Context, rawURL string, opts ...RequestOption) (*http.Response, error) {
	req, err := c.newRequest(ctx, http.MethodGet, rawURL, "", opts)
	if err != nil {
		return nil, err
	}
	return c.httpClient.Do(req)
}

// PostForm issues a form-encoded POST of form to rawURL with the default
// headers applied.
func (c *Client) PostForm(
	ctx context.Context,
	rawURL string,
	form url.Values,
	opts ...RequestOption,
) (*http.Response, error) {
	req, err := c.newRequest(ctx, http.MethodPost, rawURL, form.Encode(), opts)
	if err != nil {
		return nil, err
	}
	return c.httpClient.Do(req)
}

func (c *Client) newRequest(
	ctx context.Context,
	method, rawURL, body string,
	opts []RequestOption,
) (*http.Request, error) {
	var reader io.Reader
	if method != http.MethodGet {
		reader = strings.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, reader)
	if err != nil {
		return nil, err
	}

	req.Header = c.headers.Clone()
	for _, opt := range opts {
		opt(req.Header)
	}

	return req, nil
}

func (c *Client) endpoint(operation string) string {
	return c.baseURL + "/" + operation
}

// authorizationValue turns a bot token into an Authorization header value.
// Tokens that already carry the Bearer scheme are sent unchanged.
func authorizationValue(token string) string {
	if token == "" {
		return ""
	}
	if len(token) >= len(bearerPrefix) && strings.EqualFold(token[:len(bearerPrefix)], bearerPrefix) {
		return token
	}
	return bearerPrefix + token
}
