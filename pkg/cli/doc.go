// Package cli provides reusable helpers for command wiring and execution.
//
// This package is organized into subpackages for different functionality:
//
//   - cli/cmd: The devkit command tree (profile and perms)
//   - cli/diagnostics: Human-readable rendering of profile diagnostics
//   - cli/flags: Shared flag lookups such as --verbose
//   - cli/output: Structured command output in JSON or YAML
//   - cli/ui: Terminal detection and the errorhandler that maps failures to exit codes
//
// Commands resolve their services through the di runtime so tests can swap
// in fakes.
package cli
