package sidecar

import (
	"strings"
	"testing"
)

func TestValidateWellFormed(t *testing.T) {
	raw := `[
		{"text": "intro", "start": "0:00"},
		{"text": "middle", "start": "1:30"},
		{"text": "end", "start": "3:00"}
	]`

	entries, diags := Validate("video_transcripts/v.timestamps.json", raw)
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %#v", diags)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	if entries[1].Seconds != 90 {
		t.Fatalf("expected parsed offset 90s, got %v", entries[1].Seconds)
	}
	starts := Starts(entries)
	if len(starts) != 3 || starts[2] != 180 {
		t.Fatalf("unexpected starts: %v", starts)
	}
}

func TestValidateInvalidJSON(t *testing.T) {
	entries, diags := Validate("v.timestamps.json", "{not json")
	if entries != nil {
		t.Fatalf("fatal parse failure returns no entries")
	}
	if len(diags) != 1 || diags[0].Severity != "error" {
		t.Fatalf("expected one fatal error, got %#v", diags)
	}
	if !strings.Contains(diags[0].Message, "Invalid JSON") {
		t.Fatalf("unexpected message: %q", diags[0].Message)
	}
}

func TestValidateNonArrayRoot(t *testing.T) {
	_, diags := Validate("v.timestamps.json", `{"text": "x", "start": "0:00"}`)
	if len(diags) != 1 || diags[0].Severity != "error" {
		t.Fatalf("expected one fatal error, got %#v", diags)
	}
	if !strings.Contains(diags[0].Message, "JSON array") {
		t.Fatalf("unexpected message: %q", diags[0].Message)
	}
}

func TestValidateEmptyArrayWarns(t *testing.T) {
	entries, diags := Validate("v.timestamps.json", `[]`)
	if len(entries) != 0 {
		t.Fatalf("expected no entries")
	}
	if len(diags) != 1 || diags[0].Severity != "warning" {
		t.Fatalf("empty array is a warning, got %#v", diags)
	}
}

func TestValidateNumericStart(t *testing.T) {
	raw := `[{"text": "ok", "start": "0:00"}, {"text": "bad", "start": 90}]`

	entries, diags := Validate("v.timestamps.json", raw)
	if len(entries) != 1 {
		t.Fatalf("only the valid entry survives, got %d", len(entries))
	}
	if len(diags) != 1 {
		t.Fatalf("expected one shape error, got %#v", diags)
	}
	diag := diags[0]
	if diag.Severity != "error" {
		t.Fatalf("non-string start is an error, got %q", diag.Severity)
	}
	if !strings.Contains(diag.Message, "Entry 2") || !strings.Contains(diag.Message, "'start'") || !strings.Contains(diag.Message, "string") {
		t.Fatalf("message must name the entry index and expected type: %q", diag.Message)
	}
}

func TestValidateNonMonotonicWarns(t *testing.T) {
	raw := `[
		{"text": "a", "start": "0:05"},
		{"text": "b", "start": "0:03"},
		{"text": "c", "start": "0:07"}
	]`

	_, diags := Validate("v.timestamps.json", raw)
	if len(diags) != 1 {
		t.Fatalf("expected exactly one warning, got %#v", diags)
	}
	diag := diags[0]
	if diag.Severity != "warning" {
		t.Fatalf("non-monotonic offsets warn, got %q", diag.Severity)
	}
	if !strings.Contains(diag.Message, "Entry 2") || !strings.Contains(diag.Message, "'0:03'") {
		t.Fatalf("warning must name the offending entry: %q", diag.Message)
	}
}

func TestValidateMonotonicNoWarnings(t *testing.T) {
	raw := `[
		{"text": "a", "start": "0:01"},
		{"text": "b", "start": "0:02"},
		{"text": "c", "start": "0:03"}
	]`

	_, diags := Validate("v.timestamps.json", raw)
	if len(diags) != 0 {
		t.Fatalf("increasing offsets must not warn, got %#v", diags)
	}
}

func TestValidateUnparseableStart(t *testing.T) {
	raw := `[{"text": "a", "start": "later"}]`

	entries, diags := Validate("v.timestamps.json", raw)
	if len(entries) != 0 {
		t.Fatalf("unparseable offsets are excluded from entries")
	}
	if len(diags) != 1 || !strings.Contains(diags[0].Message, "invalid timestamp 'later'") {
		t.Fatalf("unexpected diagnostics: %#v", diags)
	}
}
