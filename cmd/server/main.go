// Package main implements the entry point for the slack-relay server,
// a small HTTP gateway that forwards local requests to the Slack Web API.
package main

import (
	"os"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
