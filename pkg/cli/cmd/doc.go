// Package cmd provides the command-line interface for devkit.
//
// This package contains the root command and delegates to subcommand packages:
//   - profile: profile resolution, validation, listing and watching
//   - perms: permission preset listing and combination
package cmd
