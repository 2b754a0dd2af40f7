package utils

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

var identifierPattern = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

// IsIdentifier reports whether s is safe to interpolate into SQL as a
// bare column or table name.
func IsIdentifier(s string) bool {
	return identifierPattern.MatchString(s)
}

// CheckTableName accepts "table" or "schema.table", each part a plain
// identifier.
func CheckTableName(name string) error {
	parts := strings.Split(name, ".")
	if len(parts) > 2 {
		return fmt.Errorf("table name %q has too many parts", name)
	}
	for _, p := range parts {
		if !IsIdentifier(p) {
			return fmt.Errorf("table name %q is not a valid identifier", name)
		}
	}
	return nil
}

// Tail returns at most the last n bytes of s, trimmed of whitespace.
// Used to keep tool output in error messages short. The cut never splits
// a UTF-8 sequence.
func Tail(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) <= n {
		return s
	}
	cut := len(s) - n
	for cut < len(s) && !utf8.RuneStart(s[cut]) {
		cut++
	}
	return "..." + s[cut:]
}
