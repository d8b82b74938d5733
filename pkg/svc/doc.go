// Package svc provides long-running service components for devkit.
//
// Subpackages:
//   - profilewatch: Re-resolves profiles when files in the profiles directory change
package svc
