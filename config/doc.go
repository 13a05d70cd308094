// Package config handles application configuration loading and validation.
//
// Configuration is loaded from config.yml and validated using struct tags.
// A handful of environment variables (optionally read from a .env file)
// override the file so containers can be configured without a mounted file.
package config
