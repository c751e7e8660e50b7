// Package config loads application settings from defaults, an optional YAML
// file and SCRY_-prefixed environment variables, and validates them with
// struct tags before any component starts.
package config
