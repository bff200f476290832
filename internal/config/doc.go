// Package config handles configuration loading, parsing, and validation
// from defaults, an optional .env file, environment variables, and command-line
// flags. It provides type-safe access to the settings needed by the relay
// server and the Slack client while keeping configuration details separate
// from request handling.
package config
