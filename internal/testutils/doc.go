// Package testutils provides common utilities for testing across the application.
// It centralizes repeated test setup, such as the fake Slack upstream, so
// handler and server tests exercise the relay the same way.
package testutils
