package validate

import (
	"strings"

	"github.com/tazeverywhere/dataquery/pkg/dsl"
	"github.com/tazeverywhere/dataquery/pkg/i18n"
)

// exceptionKeys maps compile error codes to catalog keys.
var exceptionKeys = map[int]string{
	dsl.CodeEmptyQuery:           "query.exception-1001",
	dsl.CodeSyntaxError:          "query.exception-1002",
	dsl.CodeUnsupportedStatement: "query.exception-1003",
	dsl.CodeInvalidEncoding:      "query.exception-1004",
	dsl.CodeFunctionArity:        "query.exception-1005",
}

// ExceptionKey returns the catalog key describing a compile failure. Errors without
// a code, and codes without a dedicated message, map to the generic key.
func ExceptionKey(err error) string {
	code, ok := dsl.CodeOf(err)
	if !ok {
		return i18n.KeyExceptionGeneric
	}
	if key, ok := exceptionKeys[code]; ok {
		return key
	}
	return i18n.KeyExceptionGeneric
}

// interpolate places text into the first %s of template, or appends it when the
// template has no placeholder, so the text always appears verbatim.
func interpolate(template, text string) string {
	if strings.Contains(template, "%s") {
		return strings.Replace(template, "%s", text, 1)
	}
	return template + " " + text
}
