// Package config handles configuration loading, parsing, and validation
// from environment variables and an optional config.yaml. It provides
// type-safe access to server, LLM and session settings while keeping
// configuration details separate from business logic.
package config
