package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/slack-relay/internal/api/shared"
	"github.com/phrazzld/slack-relay/internal/platform/logger"
	"github.com/phrazzld/slack-relay/internal/platform/slack"
)

// Form fields accepted by POST /send-message.
const (
	FormFieldChannel = "channel"
	FormFieldMessage = "message"
)

// ChannelIDParam is the path parameter of GET /conversations/{channel_id}.
const ChannelIDParam = "channel_id"

// Relay is the set of upstream operations the handlers forward to.
// *slack.Client satisfies it.
type Relay interface {
	PostMessage(ctx context.Context, msg slack.OutboundMessage) (json.RawMessage, error)
	ListUsers(ctx context.Context) (json.RawMessage, error)
	ConversationInfo(ctx context.Context, channelID string) (json.RawMessage, error)
}

// RelayHandler serves the three relay routes.
type RelayHandler struct {
	relay  Relay
	logger *slog.Logger
}

// NewRelayHandler creates a RelayHandler backed by relay.
func NewRelayHandler(relay Relay, logger *slog.Logger) *RelayHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &RelayHandler{
		relay:  relay,
		logger: logger.With(slog.String("component", "relay_handler")),
	}
}

// SendMessage handles POST /send-message requests
func (h *RelayHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	form, err := shared.DecodeForm(r, FormFieldChannel, FormFieldMessage)
	if err != nil {
		log.Debug("rejecting send-message form", slog.String("error", err.Error()))
		HandleAPIError(w, r, fmt.Errorf("%w: %w", ErrInvalidForm, err), "")
		return
	}

	msg := slack.OutboundMessage{
		Channel: form.Get(FormFieldChannel),
		Message: form.Get(FormFieldMessage),
	}

	body, err := h.relay.PostMessage(r.Context(), msg)
	h.respond(w, r, body, err)
}

// ListUsers handles GET /users requests
func (h *RelayHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	body, err := h.relay.ListUsers(r.Context())
	h.respond(w, r, body, err)
}

// GetConversationInfo handles GET /conversations/{channel_id} requests
func (h *RelayHandler) GetConversationInfo(w http.ResponseWriter, r *http.Request) {
	channelID := chi.URLParam(r, ChannelIDParam)

	body, err := h.relay.ConversationInfo(r.Context(), channelID)
	h.respond(w, r, body, err)
}

func (h *RelayHandler) respond(w http.ResponseWriter, r *http.Request, body json.RawMessage, err error) {
	if err != nil {
		if errors.Is(r.Context().Err(), context.Canceled) {
			logger.FromContextOrDefault(r.Context(), h.logger).Debug("client went away before upstream responded")
		}
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithRawJSON(w, r, http.StatusOK, body)
}
