// Package profilewatch re-resolves a profile whenever the files of its
// profiles directory change.
package profilewatch
