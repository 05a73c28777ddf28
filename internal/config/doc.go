// Package config handles configuration loading, parsing, and validation
// from various sources (environment variables, .env files, config files).
// The resulting Config is built once at process start and passed explicitly
// to the components that need it; nothing below the CLI reads the
// environment on its own.
package config
