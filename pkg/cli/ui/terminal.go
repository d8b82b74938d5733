// Package ui holds terminal helpers shared by devkit commands.
package ui

import (
	"io"
	"os"

	"golang.org/x/term"
)

// DefaultWidth is used when the writer is not a terminal or its size is unknown.
const DefaultWidth = 100

// fdWriter is implemented by *os.File.
type fdWriter interface {
	Fd() uintptr
}

// IsTerminal reports whether writer is an interactive terminal.
func IsTerminal(writer io.Writer) bool {
	file, ok := writer.(fdWriter)
	if !ok {
		return false
	}

	return term.IsTerminal(int(file.Fd())) //nolint:gosec // file descriptors fit in int
}

// Width returns the column count of writer, or DefaultWidth.
func Width(writer io.Writer) int {
	file, ok := writer.(fdWriter)
	if !ok || !IsTerminal(writer) {
		return DefaultWidth
	}

	width, _, err := term.GetSize(int(file.Fd())) //nolint:gosec // file descriptors fit in int
	if err != nil || width <= 0 {
		return DefaultWidth
	}

	return width
}

var _ fdWriter = (*os.File)(nil)
