// Package api handles incoming HTTP requests, request validation and
// response formatting for the relay. It adapts local callers to the Slack
// relay operations and is the only place where relay errors are translated
// into HTTP status codes and client-facing messages.
package api
