package check

import (
	"strings"
	"testing"
)

func TestBooleanValueAcceptsAnyCase(t *testing.T) {
	for _, value := range []string{"true", "TRUE", "False", "false"} {
		if diags := BooleanValue("optional", value, "Lenses/l.md", 12); len(diags) != 0 {
			t.Fatalf("value %q must not warn, got %#v", value, diags)
		}
	}
}

func TestBooleanValueWarnsOnAnythingElse(t *testing.T) {
	for _, value := range []string{"yes", "1", "", "truthy"} {
		diags := BooleanValue("optional", value, "Lenses/l.md", 12)
		if len(diags) != 1 {
			t.Fatalf("value %q must warn once, got %#v", value, diags)
		}
		diag := diags[0]
		if diag.Severity != "warning" {
			t.Fatalf("boolean findings are warnings, got %q", diag.Severity)
		}
		if !strings.Contains(diag.Message, "'optional'") || !strings.Contains(diag.Message, "'"+value+"'") {
			t.Fatalf("message must name the field and value: %q", diag.Message)
		}
		if !strings.Contains(diag.Suggestion, "'true' or 'false'") {
			t.Fatalf("unexpected suggestion: %q", diag.Suggestion)
		}
	}
}

func TestBooleanTrue(t *testing.T) {
	if !BooleanTrue("TRUE") || !BooleanTrue(" true ") {
		t.Fatalf("BooleanTrue must be case-insensitive and trim whitespace")
	}
	if BooleanTrue("false") || BooleanTrue("yes") {
		t.Fatalf("only 'true' spellings are true")
	}
}
