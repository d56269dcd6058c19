// Package config loads, defaults and validates application settings from
// an optional .env file, an optional config.yaml and TENXCARDS_ prefixed
// environment variables. Environment variables always win.
package config
