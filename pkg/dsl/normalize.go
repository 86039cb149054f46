package dsl

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// Normalize cleans up raw query text before compilation: it rejects invalid UTF-8,
// applies Unicode NFC normalization, trims surrounding whitespace and drops trailing
// statement terminators.
func Normalize(raw string) (string, error) {
	if !utf8.ValidString(raw) {
		return "", newCompileError(CodeInvalidEncoding, "query text is not valid UTF-8")
	}

	text := norm.NFC.String(raw)
	text = strings.TrimSpace(text)
	text = strings.TrimRight(text, "; \t\r\n")

	if text == "" {
		return "", newCompileError(CodeEmptyQuery, "query text is empty")
	}
	return text, nil
}
