// Package envvar expands environment variable placeholders in configuration text.
package envvar

import (
	"os"
	"regexp"
)

// pattern matches ${NAME} and ${NAME:-fallback}.
var pattern = regexp.MustCompile(`\$\{([a-zA-Z_][a-zA-Z0-9_]*)(:-([^}]*))?\}`)

// LookupFunc reports the value of a variable and whether it is set.
type LookupFunc func(name string) (string, bool)

// Expand replaces placeholders with values from the process environment.
func Expand(value string) string {
	return ExpandWith(value, os.LookupEnv)
}

// ExpandWith replaces ${NAME} with the looked-up value and ${NAME:-fallback}
// with the value, or fallback when the variable is unset or empty. Unset
// variables without a fallback expand to the empty string. A nil lookup
// treats every variable as unset.
func ExpandWith(value string, lookup LookupFunc) string {
	if value == "" {
		return value
	}

	if lookup == nil {
		lookup = func(string) (string, bool) { return "", false }
	}

	return pattern.ReplaceAllStringFunc(value, func(match string) string {
		groups := pattern.FindStringSubmatch(match)
		name, hasFallback, fallback := groups[1], groups[2] != "", groups[3]

		resolved, ok := lookup(name)
		if hasFallback && (!ok || resolved == "") {
			return fallback
		}

		return resolved
	})
}

// MapLookup adapts a map to a [LookupFunc].
func MapLookup(values map[string]string) LookupFunc {
	return func(name string) (string, bool) {
		value, ok := values[name]

		return value, ok
	}
}
