// Package config loads pgiban's settings from pgiban.yaml, .env files and
// the process environment.
//
// The CLI combines the three sources with command-line flags, in this order
// of precedence: flag, environment, pgiban.yaml, built-in default.
package config
