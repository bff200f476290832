// Package slack relays requests to the Slack Web API. It owns the shared
// upstream HTTP client, builds the upstream request for each relayed
// operation, and normalizes every upstream outcome into either the verbatim
// JSON body or exactly one of three error kinds.
//
// Upstream business errors (a JSON body with "ok": false) are not errors at
// this layer; they are returned as successful payloads.
package slack
