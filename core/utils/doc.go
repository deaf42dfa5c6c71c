// Package utils provides conversion helpers shared by the property editors,
// the HTTP handlers and the CLI.
package utils
