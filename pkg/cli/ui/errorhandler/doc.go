// Package errorhandler runs cobra commands and turns their failures into
// readable messages and process exit codes.
package errorhandler
