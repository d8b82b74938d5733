package profile

import "fmt"

// Level is the severity of a diagnostic.
type Level string

// Diagnostic levels.
const (
	LevelError Level = "error"
	LevelWarn  Level = "warn"
	LevelInfo  Level = "info"
)

// Diagnostic codes.
const (
	CodeReadFailed         = "PROFILE_READ_FAILED"
	CodeExtendsCycle       = "PROFILE_EXTENDS_CYCLE"
	CodeParentNotFound     = "PROFILE_PARENT_NOT_FOUND"
	CodeExtendsIgnored     = "PROFILE_EXTENDS_IGNORED"
	CodeFallbackDefault    = "PROFILE_FALLBACK_DEFAULT"
	CodeIDInvalid          = "PROFILE_ID_INVALID"
	CodeSchemaVersion      = "SCHEMA_VERSION_INVALID"
	CodeSourcesShape       = "SOURCES_SHAPE_INVALID"
	CodeDecodeFailed       = "PROFILE_DECODE_FAILED"
	CodeSchemaViolation    = "PROFILE_SCHEMA_VIOLATION"
	CodeVersionUnsupported = "SCHEMA_VERSION_UNSUPPORTED"
)

// Diagnostic is a structured, non-fatal report produced while loading,
// resolving, or validating a profile.
type Diagnostic struct {
	Level   Level  `json:"level"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
}

// String renders the diagnostic on one line.
func (d Diagnostic) String() string {
	if d.Detail == "" {
		return fmt.Sprintf("%s %s: %s", d.Level, d.Code, d.Message)
	}

	return fmt.Sprintf("%s %s: %s (%s)", d.Level, d.Code, d.Message, d.Detail)
}

// HasErrors reports whether any diagnostic is error-level.
func HasErrors(diagnostics []Diagnostic) bool {
	for _, diagnostic := range diagnostics {
		if diagnostic.Level == LevelError {
			return true
		}
	}

	return false
}

// Filter returns the diagnostics of the given level, in order.
func Filter(diagnostics []Diagnostic, level Level) []Diagnostic {
	var filtered []Diagnostic

	for _, diagnostic := range diagnostics {
		if diagnostic.Level == level {
			filtered = append(filtered, diagnostic)
		}
	}

	return filtered
}

func warn(code, detail, format string, args ...any) Diagnostic {
	return Diagnostic{Level: LevelWarn, Code: code, Message: fmt.Sprintf(format, args...), Detail: detail}
}

func errorf(code, detail, format string, args ...any) Diagnostic {
	return Diagnostic{Level: LevelError, Code: code, Message: fmt.Sprintf(format, args...), Detail: detail}
}

func info(code, detail, format string, args ...any) Diagnostic {
	return Diagnostic{Level: LevelInfo, Code: code, Message: fmt.Sprintf(format, args...), Detail: detail}
}
