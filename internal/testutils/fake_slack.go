package testutils

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
)

// UpstreamCall is one request received by a FakeSlack server.
type UpstreamCall struct {
	Method        string
	Path          string
	RawQuery      string
	Authorization string
	ContentType   string
	Form          url.Values
}

// FakeSlack is an httptest server standing in for the Slack Web API. It
// answers every request with a fixed status and body and records what it
// received. It is safe for concurrent use.
type FakeSlack struct {
	*httptest.Server

	mu     sync.Mutex
	calls  []UpstreamCall
	status int
	body   string
}

// NewFakeSlack starts a FakeSlack answering 200 with body. The server is
// closed when the test ends.
func NewFakeSlack(t *testing.T, body string) *FakeSlack {
	t.Helper()

	f := &FakeSlack{status: http.StatusOK, body: body}
	f.Server = CreateTestServer(t, http.HandlerFunc(f.handle))
	return f
}

// Respond changes the status and body returned for subsequent requests.
func (f *FakeSlack) Respond(status int, body string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.status = status
	f.body = body
}

// Calls returns the requests received so far.
func (f *FakeSlack) Calls() []UpstreamCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]UpstreamCall(nil), f.calls...)
}

func (f *FakeSlack) handle(w http.ResponseWriter, r *http.Request) {
	_ = r.ParseForm()

	f.mu.Lock()
	f.calls = append(f.calls, UpstreamCall{
		Method:        r.Method,
		Path:          r.URL.Path,
		RawQuery:      r.URL.RawQuery,
		Authorization: r.Header.Get("Authorization"),
		ContentType:   r.Header.Get("Content-Type"),
		Form:          r.PostForm,
	})
	status, body := f.status, f.body
	f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}
