// Package formatter renders route responses for clients.
//
// This package is organized into:
// - wrapper.go: error responses and stop listings
// - json.go: JSON serialization
// - text.go: terminal rendering with lipgloss
package formatter
