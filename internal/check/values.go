package check

import (
	"fmt"
	"strings"

	"github.com/coursekit/courselint/pkg/interfaces"
)

// booleanFields enumerates the field names whose values must be booleans.
var booleanFields = map[string]struct{}{
	"optional": {},
}

// IsBooleanField reports whether name is a boolean-only field.
func IsBooleanField(name string) bool {
	_, ok := booleanFields[strings.ToLower(name)]
	return ok
}

// BooleanValue validates a boolean-only field value. Any value whose
// lowercase form is not `true` or `false` produces one warning naming the
// field and its actual value.
func BooleanValue(field, value, file string, line int) []interfaces.Diagnostic {
	switch strings.ToLower(value) {
	case "true", "false":
		return nil
	}
	return []interfaces.Diagnostic{{
		File:       file,
		Line:       line,
		Message:    fmt.Sprintf("Field '%s' has value '%s'", field, value),
		Suggestion: "Use 'true' or 'false'",
		Severity:   interfaces.SeverityWarning,
		Category:   interfaces.CategoryFormat,
	}}
}

// BooleanTrue reports whether value spells a boolean true, case-insensitively.
func BooleanTrue(value string) bool {
	return strings.EqualFold(strings.TrimSpace(value), "true")
}
