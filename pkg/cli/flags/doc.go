// Package flags provides flag handling utilities for CLI commands.
//
// It resolves flags shared by every command, such as --verbose, whether they
// were declared on the command itself or inherited from a parent.
package flags
