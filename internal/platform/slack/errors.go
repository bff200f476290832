package slack

import "errors"

// Normalized upstream error kinds. Every error returned by Normalize and by
// the Client operations wraps exactly one of these; match with errors.Is.
var (
	// ErrUpstreamUnreachable is returned when the call to Slack could not
	// complete (connection, DNS, timeout or cancellation).
	ErrUpstreamUnreachable = errors.New("slack upstream unreachable")

	// ErrBodyUnreadable is returned when a response arrived but its body
	// could not be read.
	ErrBodyUnreadable = errors.New("slack response body unreadable")

	// ErrMalformedBody is returned when the response body is not valid JSON.
	ErrMalformedBody = errors.New("slack response body is not valid json")
)
