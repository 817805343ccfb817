// Package config handles configuration loading, parsing, and validation
// from defaults, an optional config file, a .env file and PLANNER_-prefixed
// environment variables. The resulting Config is passed explicitly to the
// components that need it; nothing reads settings from package state.
package config
