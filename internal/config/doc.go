// Package config loads and validates application configuration from
// environment variables and an optional config file, with environment
// variables taking precedence.
package config
