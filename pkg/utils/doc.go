// Package utils provides utility packages for common operations.
//
//   - envvar: ${VAR} and ${VAR:-default} expansion
//   - logging: logrus logger construction for commands
//   - notify: Formatted message display with symbols and colors
//
// These utilities are designed to be simple, focused, and reusable across
// different parts of the application.
package utils
