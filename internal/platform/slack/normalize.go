package slack

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
)

var errNoResponse = errors.New("no response received")

// Normalize converts one upstream call attempt into the relayed result.
//
// Each stage maps to its own error kind:
//
//	callErr set, or no response   ErrUpstreamUnreachable
//	body read failed              ErrBodyUnreadable
//	body is not JSON              ErrMalformedBody
//
// Otherwise the JSON value is returned byte for byte, whatever its shape.
// The response status code is not inspected and the body is always closed.
func Normalize(resp *http.Response, callErr error, log *slog.Logger) (json.RawMessage, error) {
	if log == nil {
		log = slog.Default()
	}

	if callErr == nil && resp == nil {
		callErr = errNoResponse
	}
	if callErr != nil {
		log.Error("slack request failed", "error", callErr)
		return nil, fmt.Errorf("%w: %w", ErrUpstreamUnreachable, callErr)
	}
	if resp.Body == nil {
		resp.Body = http.NoBody
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Error("failed to read slack response body",
			"error", err,
			"status_code", resp.StatusCode)
		return nil, fmt.Errorf("%w: %w", ErrBodyUnreadable, err)
	}

	var value json.RawMessage
	if err := json.Unmarshal(body, &value); err != nil {
		log.Error("failed to parse slack response body as json",
			"error", err,
			"status_code", resp.StatusCode,
			"body_bytes", len(body))
		return nil, fmt.Errorf("%w: %w", ErrMalformedBody, err)
	}

	return value, nil
}
