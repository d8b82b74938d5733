// Package diagnostics prints profile diagnostics for CLI users.
package diagnostics

import (
	"fmt"
	"io"
	"strings"

	"github.com/kb-labs/devkit/pkg/profile"
	"github.com/kb-labs/devkit/pkg/utils/notify"
	"github.com/mitchellh/go-wordwrap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// minWidth keeps wrapping readable on very narrow terminals.
const minWidth = 40

// Print writes one notify message per diagnostic. Messages and details are
// wrapped to width columns; details go on their own line.
func Print(writer io.Writer, diagnostics []profile.Diagnostic, width int) {
	width = max(width, minWidth)
	title := cases.Title(language.English)

	for _, diagnostic := range diagnostics {
		msgType := messageType(diagnostic.Level)
		textWidth := uint(width - len([]rune(notify.Symbol(msgType)))) //nolint:gosec // width >= minWidth

		content := fmt.Sprintf("%s %s: %s", title.String(string(diagnostic.Level)), diagnostic.Code, diagnostic.Message)
		content = wordwrap.WrapString(content, textWidth)

		if diagnostic.Detail != "" {
			content += "\n" + wordwrap.WrapString(diagnostic.Detail, textWidth)
		}

		notify.WriteMessage(notify.Message{
			Type:    msgType,
			Content: content,
			Writer:  writer,
		})
	}
}

// Summary describes the diagnostics by level, for example "1 error, 2 warnings".
// It returns "" when there are none.
func Summary(diagnostics []profile.Diagnostic) string {
	var parts []string

	for _, level := range []profile.Level{profile.LevelError, profile.LevelWarn, profile.LevelInfo} {
		count := len(profile.Filter(diagnostics, level))
		if count == 0 {
			continue
		}

		parts = append(parts, fmt.Sprintf("%d %s", count, noun(level, count)))
	}

	return strings.Join(parts, ", ")
}

func noun(level profile.Level, count int) string {
	word := map[profile.Level]string{
		profile.LevelError: "error",
		profile.LevelWarn:  "warning",
		profile.LevelInfo:  "info",
	}[level]

	if count != 1 && level != profile.LevelInfo {
		word += "s"
	}

	return word
}

func messageType(level profile.Level) notify.MessageType {
	switch level {
	case profile.LevelError:
		return notify.ErrorType
	case profile.LevelWarn:
		return notify.WarningType
	case profile.LevelInfo:
		return notify.InfoType
	default:
		return notify.InfoType
	}
}
