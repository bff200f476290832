package slack

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/phrazzld/slack-relay/internal/config"
	"github.com/phrazzld/slack-relay/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordedRequest is what the fake upstream saw for one call.
type recordedRequest struct {
	Method   string
	Path     string
	RawQuery string
	Header   http.Header
	PostForm url.Values
}

// fakeUpstream is an httptest server standing in for the Slack Web API.
type fakeUpstream struct {
	*httptest.Server

	mu       sync.Mutex
	requests []recordedRequest
}

func newFakeUpstream(t *testing.T, status int, body string) *fakeUpstream {
	t.Helper()

	f := &fakeUpstream{}
	f.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = r.ParseForm()

		f.mu.Lock()
		f.requests = append(f.requests, recordedRequest{
			Method:   r.Method,
			Path:     r.URL.Path,
			RawQuery: r.URL.RawQuery,
			Header:   r.Header.Clone(),
			PostForm: r.PostForm,
		})
		f.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(f.Close)

	return f
}

func (f *fakeUpstream) recorded() []recordedRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]recordedRequest(nil), f.requests...)
}

// roundTripFunc lets a plain function act as an http.RoundTripper.
type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) {
	return f(r)
}

func newTestClient(baseURL, token string, opts ...Option) *Client {
	opts = append([]Option{WithLogger(logger.NewNoopLogger())}, opts...)
	return NewClient(config.SlackConfig{
		BaseURL:  baseURL,
		BotToken: token,
		Timeout:  5 * time.Second,
	}, opts...)
}

func TestNewClientDefaults(t *testing.T) {
	c := NewClient(config.SlackConfig{})

	assert.Equal(t, DefaultBaseURL, c.BaseURL())
	assert.Equal(t, "application/x-www-form-urlencoded", c.headers.Get("Content-Type"))
	assert.Equal(t, "", c.headers.Get("Authorization"), "missing token must not fail construction")
}

func TestNewClientTrimsBaseURL(t *testing.T) {
	c := NewClient(config.SlackConfig{BaseURL: " http://localhost:9999/api/ "})

	assert.Equal(t, "http://localhost:9999/api", c.BaseURL())
	assert.Equal(t, "http://localhost:9999/api/users.list", c.endpoint(OperationListUsers))
}

func TestAuthorizationValue(t *testing.T) {
	tests := []struct {
		token string
		want  string
	}{
		{token: "", want: ""},
		{token: "xoxb-123", want: "Bearer xoxb-123"},
		{token: "Bearer xoxb-123", want: "Bearer xoxb-123"},
		{token: "bearer xoxb-123", want: "bearer xoxb-123"},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			assert.Equal(t, tt.want, authorizationValue(tt.token))
		})
	}
}

func TestClientAppliesDefaultHeaders(t *testing.T) {
	upstream := newFakeUpstream(t, http.StatusOK, `{"ok":true}`)
	c := newTestClient(upstream.URL, "xoxb-secret")

	resp, err := c.Get(context.Background(), upstream.URL+"/users.list")
	require.NoError(t, err)
	_ = resp.Body.Close()

	reqs := upstream.recorded()
	require.Len(t, reqs, 1)
	assert.Equal(t, "Bearer xoxb-secret", reqs[0].Header.Get("Authorization"))
	assert.Equal(t, "application/x-www-form-urlencoded", reqs[0].Header.Get("Content-Type"))
}

func TestClientHeaderOverrideIsPerCall(t *testing.T) {
	upstream := newFakeUpstream(t, http.StatusOK, `{"ok":true}`)
	c := newTestClient(upstream.URL, "xoxb-secret")
	ctx := context.Background()

	resp, err := c.Get(ctx, upstream.URL+"/auth.test", WithHeader("Content-Type", "application/json"))
	require.NoError(t, err)
	_ = resp.Body.Close()

	resp, err = c.Get(ctx, upstream.URL+"/auth.test")
	require.NoError(t, err)
	_ = resp.Body.Close()

	reqs := upstream.recorded()
	require.Len(t, reqs, 2)
	assert.Equal(t, "application/json", reqs[0].Header.Get("Content-Type"))
	assert.Equal(t, "application/x-www-form-urlencoded", reqs[1].Header.Get("Content-Type"),
		"an override must not leak into the shared defaults")
	assert.Equal(t, "application/x-www-form-urlencoded", c.headers.Get("Content-Type"))
}

func TestClientPostFormEncodesBody(t *testing.T) {
	upstream := newFakeUpstream(t, http.StatusOK, `{"ok":true}`)
	c := newTestClient(upstream.URL, "")

	form := url.Values{"a": {"1"}, "b": {"two words"}}
	resp, err := c.PostForm(context.Background(), upstream.URL+"/x", form)
	require.NoError(t, err)
	_ = resp.Body.Close()

	reqs := upstream.recorded()
	require.Len(t, reqs, 1)
	assert.Equal(t, http.MethodPost, reqs[0].Method)
	assert.Equal(t, form, reqs[0].PostForm)
}

func TestClientInvalidURL(t *testing.T) {
	c := newTestClient("http://localhost", "")

	resp, err := c.Get(context.Background(), "http://[::1]:namedport/x")

	assert.Error(t, err)
	assert.Nil(t, resp)
}

func TestClientTransportFailureIsNotRetried(t *testing.T) {
	var calls int
	var mu sync.Mutex
	transport := roundTripFunc(func(*http.Request) (*http.Response, error) {
		mu.Lock()
		calls++
		mu.Unlock()
		return nil, errors.New("dial tcp: lookup slack.test: no such host")
	})
	c := newTestClient("http://slack.test/api", "", WithHTTPClient(&http.Client{Transport: transport}))

	_, err := c.ListUsers(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUpstreamUnreachable)
	assert.Equal(t, 1, calls)
}

func TestClientUnreachableServer(t *testing.T) {
	upstream := httptest.NewServer(http.NotFoundHandler())
	baseURL := upstream.URL
	upstream.Close()

	c := newTestClient(baseURL, "")

	tests := []struct {
		name string
		call func() error
	}{
		{name: "post message", call: func() error {
			_, err := c.PostMessage(context.Background(), OutboundMessage{Channel: "C1", Message: "hi"})
			return err
		}},
		{name: "list users", call: func() error {
			_, err := c.ListUsers(context.Background())
			return err
		}},
		{name: "conversation info", call: func() error {
			_, err := c.ConversationInfo(context.Background(), "C1")
			return err
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.call()
			assert.ErrorIs(t, err, ErrUpstreamUnreachable)
		})
	}
}

func TestClientCanceledContext(t *testing.T) {
	upstream := newFakeUpstream(t, http.StatusOK, `{"ok":true}`)
	c := newTestClient(upstream.URL, "")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.ListUsers(ctx)

	assert.ErrorIs(t, err, ErrUpstreamUnreachable)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestClientConcurrentUse(t *testing.T) {
	upstream := newFakeUpstream(t, http.StatusOK, `{"ok":true,"members":[]}`)
	c := newTestClient(upstream.URL, "xoxb-shared")

	const workers = 8
	var wg sync.WaitGroup
	errs := make(chan error, workers*2)

	for i := 0; i < workers; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			body, err := c.ListUsers(context.Background())
			if err == nil && string(body) != `{"ok":true,"members":[]}` {
				err = errors.New("unexpected body: " + string(body))
			}
			errs <- err
		}()
		go func(n int) {
			defer wg.Done()
			_, err := c.PostMessage(context.Background(), OutboundMessage{
				Channel: "C1",
				Message: strings.Repeat("x", n),
			})
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		assert.NoError(t, err)
	}

	reqs := upstream.recorded()
	require.Len(t, reqs, workers*2)
	for _, r := range reqs {
		assert.Equal(t, "Bearer xoxb-shared", r.Header.Get("Authorization"))
	}
	assert.Equal(t, "Bearer xoxb-shared", c.headers.Get("Authorization"))
	assert.Len(t, c.headers, 2, "shared default headers must not be mutated")
}
