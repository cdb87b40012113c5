package store

import (
	"fmt"
	"strings"
)

// FieldEquals builds a `{field} = "value"` filter formula with the value
// escaped, so user input can never break out of the string literal.
func FieldEquals(field, value string) string {
	return fmt.Sprintf("{%s} = \"%s\"", field, EscapeText(value))
}

// EscapeText backslash-escapes the characters that end a formula string
// literal.
func EscapeText(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `"`, `\"`)
}
