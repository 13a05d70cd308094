// Package utils provides small helpers shared by the loaders and the
// output formatters.
//
// It contains:
//   - Great-circle distance between coordinates
//   - Human readable distance formatting
package utils
