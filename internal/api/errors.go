package api

import (
	"errors"
	"net/http"

	"github.com/phrazzld/slack-relay/internal/api/shared"
	"github.com/phrazzld/slack-relay/internal/platform/slack"
)

// ErrInvalidForm is returned when an inbound form body is missing a field
// or carries an invalid value.
var ErrInvalidForm = errors.New("invalid form")

// Client-facing messages for each error kind.
const (
	MsgUpstreamUnreachable = "There was an error in handling the response from Slack"
	MsgBodyUnreadable      = "Unable to extract response body"
	MsgMalformedBody       = "Unable to convert body to json"
	MsgInvalidForm         = "Invalid request format"
	MsgUnexpected          = "An unexpected error occurred"
)

// MapErrorToStatusCode maps internal errors to HTTP status codes. All three
// upstream failure kinds map to 500.
func MapErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, ErrInvalidForm):
		return http.StatusBadRequest

	case errors.Is(err, slack.ErrUpstreamUnreachable),
		errors.Is(err, slack.ErrBodyUnreadable),
		errors.Is(err, slack.ErrMalformedBody):
		return http.StatusInternalServerError

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns the client-facing message for err. Causes
// wrapped inside err are never included.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return MsgUnexpected
	}

	switch {
	case errors.Is(err, ErrInvalidForm):
		return MsgInvalidForm
	case errors.Is(err, slack.ErrUpstreamUnreachable):
		return MsgUpstreamUnreachable
	case errors.Is(err, slack.ErrBodyUnreadable):
		return MsgBodyUnreadable
	case errors.Is(err, slack.ErrMalformedBody):
		return MsgMalformedBody
	default:
		return MsgUnexpected
	}
}

// HandleAPIError writes the error response for err and logs the full cause.
// defaultMsg replaces the message of errors that match no known kind.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, defaultMsg string) {
	status := MapErrorToStatusCode(err)
	message := GetSafeErrorMessage(err)
	if message == MsgUnexpected && defaultMsg != "" {
		message = defaultMsg
	}

	shared.RespondWithErrorAndLog(w, r, status, message, err)
}
