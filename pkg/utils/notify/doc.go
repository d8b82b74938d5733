// Package notify writes styled one-line messages for CLI users.
//
// Each [MessageType] has a symbol and a color: error (✗), warning (⚠),
// info (ℹ), success (✔), activity (►) and title (custom emoji). Colors
// follow fatih/color, so they are dropped automatically when the output is
// not a terminal or NO_COLOR is set.
package notify
