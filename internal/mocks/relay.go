package mocks

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/phrazzld/slack-relay/internal/platform/slack"
)

// MockRelay implements api.Relay for testing
type MockRelay struct {
	// Custom behavior functions
	PostMessageFn      func(ctx context.Context, msg slack.OutboundMessage) (json.RawMessage, error)
	ListUsersFn        func(ctx context.Context) (json.RawMessage, error)
	ConversationInfoFn func(ctx context.Context, channelID string) (json.RawMessage, error)

	// Default response values
	Body json.RawMessage
	Err  error

	mu                    sync.Mutex
	postMessageCalls      []slack.OutboundMessage
	listUsersCalls        int
	conversationInfoCalls []string
}

// PostMessage implements the api.Relay interface
func (m *MockRelay) PostMessage(ctx context.Context, msg slack.OutboundMessage) (json.RawMessage, error) {
	m.mu.Lock()
	m.postMessageCalls = append(m.postMessageCalls, msg)
	m.mu.Unlock()

	if m.PostMessageFn != nil {
		return m.PostMessageFn(ctx, msg)
	}
	return m.Body, m.Err
}

// ListUsers implements the api.Relay interface
func (m *MockRelay) ListUsers(ctx context.Context) (json.RawMessage, error) {
	m.mu.Lock()
	m.listUsersCalls++
	m.mu.Unlock()

	if m.ListUsersFn != nil {
		return m.ListUsersFn(ctx)
	}
	return m.Body, m.Err
}

// ConversationInfo implements the api.Relay interface
func (m *MockRelay) ConversationInfo(ctx context.Context, channelID string) (json.RawMessage, error) {
	m.mu.Lock()
	m.conversationInfoCalls = append(m.conversationInfoCalls, channelID)
	m.mu.Unlock()

	if m.ConversationInfoFn != nil {
		return m.ConversationInfoFn(ctx, channelID)
	}
	return m.Body, m.Err
}

// PostMessageCalls returns the messages passed to PostMessage.
func (m *MockRelay) PostMessageCalls() []slack.OutboundMessage {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]slack.OutboundMessage(nil), m.postMessageCalls...)
}

// ListUsersCalls returns how many times ListUsers was called.
func (m *MockRelay) ListUsersCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.listUsersCalls
}

// ConversationInfoCalls returns the channel IDs passed to ConversationInfo.
func (m *MockRelay) ConversationInfoCalls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.conversationInfoCalls...)
}

// TotalCalls returns the number of calls across all operations.
func (m *MockRelay) TotalCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.postMessageCalls) + m.listUsersCalls + len(m.conversationInfoCalls)
}
