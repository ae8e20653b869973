// Package sidecar validates the `.timestamps.json` files that accompany
// video transcripts: a JSON array of {text, start} entries whose offsets
// must parse and never move backwards.
package sidecar

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/coursekit/courselint/internal/resolve"
	"github.com/coursekit/courselint/pkg/interfaces"
)

// Entry is one validated sidecar record with its offset parsed to seconds.
type Entry struct {
	Text    string
	Start   string
	Seconds float64
}

const schemaJSON = `{
	"type": "array",
	"items": {
		"type": "object",
		"properties": {
			"text": {"type": "string"},
			"start": {"type": "string"}
		},
		"required": ["text", "start"]
	}
}`

var entriesSchema = jsonschema.MustCompileString("timestamps.schema.json", schemaJSON)

// Validate decodes and checks one sidecar file. Invalid JSON or a non-array
// root is a single fatal error; shape violations are reported per entry;
// offsets that move backwards are warnings attributed to the offending
// entry. Entries that pass every shape check are returned with their parsed
// offsets so excerpt timestamps can be resolved against them.
func Validate(file, raw string) ([]Entry, []interfaces.Diagnostic) {
	var diags []interfaces.Diagnostic

	var value any
	if err := json.Unmarshal([]byte(raw), &value); err != nil {
		return nil, []interfaces.Diagnostic{{
			File:       file,
			Message:    fmt.Sprintf("Invalid JSON: %v", err),
			Suggestion: "Fix the JSON syntax of the timestamps file",
			Severity:   interfaces.SeverityError,
			Category:   interfaces.CategoryTimestamps,
		}}
	}

	items, ok := value.([]any)
	if !ok {
		return nil, []interfaces.Diagnostic{{
			File:       file,
			Message:    "Timestamps file must be a JSON array of {text, start} entries",
			Severity:   interfaces.SeverityError,
			Category:   interfaces.CategoryTimestamps,
		}}
	}

	if err := entriesSchema.Validate(value); err != nil {
		if validationErr, ok := err.(*jsonschema.ValidationError); ok {
			diags = append(diags, shapeDiagnostics(file, validationErr)...)
		}
	}

	if len(items) == 0 {
		diags = append(diags, interfaces.Diagnostic{
			File:       file,
			Message:    "Timestamps file has no entries",
			Severity:   interfaces.SeverityWarning,
			Category:   interfaces.CategoryTimestamps,
		})
		return nil, diags
	}

	var entries []Entry
	previous := -1.0
	for i, item := range items {
		record, ok := item.(map[string]any)
		if !ok {
			continue
		}
		text, textOK := record["text"].(string)
		start, startOK := record["start"].(string)
		if !textOK || !startOK {
			// Already reported by the shape pass.
			continue
		}

		seconds, err := resolve.ParseTimestamp(start)
		if err != nil {
			diags = append(diags, interfaces.Diagnostic{
				File:       file,
				Message:    fmt.Sprintf("Entry %d: invalid timestamp '%s'", i+1, start),
				Suggestion: "Use M:SS or H:MM:SS",
				Severity:   interfaces.SeverityError,
				Category:   interfaces.CategoryTimestamps,
			})
			continue
		}

		if previous >= 0 && seconds < previous {
			diags = append(diags, interfaces.Diagnostic{
				File:       file,
				Message:    fmt.Sprintf("Entry %d: timestamp '%s' is earlier than the previous entry", i+1, start),
				Suggestion: "Keep timestamps in non-decreasing order",
				Severity:   interfaces.SeverityWarning,
				Category:   interfaces.CategoryTimestamps,
			})
		}
		previous = seconds

		entries = append(entries, Entry{Text: text, Start: start, Seconds: seconds})
	}

	return entries, diags
}

// Starts extracts the parsed offsets of entries, in order.
func Starts(entries []Entry) []float64 {
	out := make([]float64, 0, len(entries))
	for _, entry := range entries {
		out = append(out, entry.Seconds)
	}
	return out
}

type shapeIssue struct {
	index int
	field string
	diag  interfaces.Diagnostic
}

// shapeDiagnostics converts leaf schema violations into entry-indexed
// diagnostics, ordered by entry then field so output stays deterministic
// regardless of the validator's internal traversal.
func shapeDiagnostics(file string, err *jsonschema.ValidationError) []interfaces.Diagnostic {
	var issues []shapeIssue

	var walk func(*jsonschema.ValidationError)
	walk = func(node *jsonschema.ValidationError) {
		if node == nil {
			return
		}
		if len(node.Causes) == 0 {
			if issue, ok := leafIssue(file, node); ok {
				issues = append(issues, issue)
			}
			return
		}
		for _, cause := range node.Causes {
			walk(cause)
		}
	}
	walk(err)

	sort.SliceStable(issues, func(i, j int) bool {
		if issues[i].index != issues[j].index {
			return issues[i].index < issues[j].index
		}
		return issues[i].field < issues[j].field
	})

	out := make([]interfaces.Diagnostic, 0, len(issues))
	for _, issue := range issues {
		out = append(out, issue.diag)
	}
	return out
}

func leafIssue(file string, node *jsonschema.ValidationError) (shapeIssue, bool) {
	segments := strings.Split(strings.TrimPrefix(node.InstanceLocation, "/"), "/")
	if node.InstanceLocation == "" || len(segments) == 0 {
		return shapeIssue{}, false
	}
	index, err := strconv.Atoi(segments[0])
	if err != nil {
		return shapeIssue{}, false
	}

	diag := interfaces.Diagnostic{
		File:     file,
		Severity: interfaces.SeverityError,
		Category: interfaces.CategoryTimestamps,
	}

	if len(segments) >= 2 {
		field := segments[1]
		diag.Message = fmt.Sprintf("Entry %d: field '%s' must be a string", index+1, field)
		return shapeIssue{index: index, field: field, diag: diag}, true
	}

	diag.Message = fmt.Sprintf("Entry %d: %s", index+1, node.Message)
	return shapeIssue{index: index, diag: diag}, true
}
