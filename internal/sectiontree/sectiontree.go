// Package sectiontree implements the generic section/segment grammar shared
// by every content kind: `###`-depth headers introducing typed nodes, and
// `field:: value` lines inside each node, where a value runs until the next
// field token or the end of the node body.
package sectiontree

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/coursekit/courselint/internal/ordered"
	"github.com/coursekit/courselint/pkg/interfaces"
)

// Field is one `name:: value` pair with the line its first token appeared on.
// Values may span multiple lines, blank lines included.
type Field struct {
	Value string
	Line  int
}

// Node is one parsed section or segment. Type is the lowercased keyword,
// RawType the keyword as written; unknown keywords keep the node so callers
// can still recover its title and fields.
type Node struct {
	Type      string
	RawType   string
	Title     string
	Fields    *ordered.Map[string, Field]
	Body      string
	BodyStart int
	Line      int
}

// Field returns the named field's value and whether it was authored.
func (n *Node) Field(name string) (Field, bool) {
	if n == nil || n.Fields == nil {
		return Field{}, false
	}
	return n.Fields.Get(name)
}

var fieldStartRe = regexp.MustCompile(`^([A-Za-z][A-Za-z0-9_-]*)::[ \t]?(.*)$`)

// Parse splits body into the ordered nodes found at exactly depth header
// levels. startLine is the 1-based file line of body's first line, used to
// keep every node and field line number consistent with the source file.
// Keywords outside the allowed list produce one warning per node; label
// ("section" or "segment") names the grammar level in that message.
//
// Lines appearing before the first header are dropped without a diagnostic;
// see the design notes for the rationale.
func Parse(body string, startLine int, depth int, allowed []string, label, file string) ([]Node, []interfaces.Diagnostic) {
	var nodes []Node
	var diags []interfaces.Diagnostic

	allowedSet := make(map[string]struct{}, len(allowed))
	for _, keyword := range allowed {
		allowedSet[strings.ToLower(keyword)] = struct{}{}
	}

	lines := strings.Split(body, "\n")
	// current indexes nodes; skipping is set once a shallower header closes
	// the region this parser owns.
	current := -1
	skipping := false

	var bodyLines []string
	flush := func() {
		if current < 0 {
			return
		}
		nodes[current].Body = strings.Join(bodyLines, "\n")
		bodyLines = nil
	}

	for offset, line := range lines {
		lineNo := startLine + offset
		hashes, rest, isHeader := splitHeader(line)

		switch {
		case isHeader && hashes == depth:
			flush()
			skipping = false

			rawType, title := splitTypeTitle(rest)
			node := Node{
				Type:      strings.ToLower(rawType),
				RawType:   rawType,
				Title:     title,
				Line:      lineNo,
				BodyStart: lineNo + 1,
			}
			if _, ok := allowedSet[node.Type]; !ok {
				diags = append(diags, interfaces.Diagnostic{
					File:       file,
					Line:       lineNo,
					Message:    fmt.Sprintf("Unknown %s type '%s'", label, rawType),
					Suggestion: fmt.Sprintf("Valid %s types are: %s", label, strings.Join(allowed, ", ")),
					Severity:   interfaces.SeverityWarning,
					Category:   interfaces.CategoryStructure,
				})
			}
			nodes = append(nodes, node)
			current = len(nodes) - 1

		case isHeader && hashes < depth:
			// A shallower header ends the region this parser owns.
			flush()
			current = -1
			skipping = true

		default:
			if current >= 0 && !skipping {
				bodyLines = append(bodyLines, line)
			}
		}
	}
	flush()

	for i := range nodes {
		nodes[i].Fields = ParseFields(nodes[i].Body, nodes[i].BodyStart)
	}

	return nodes, diags
}

// ParseFields extracts the `name:: value` pairs of a node body. A field value
// starts after the `name::` token and continues, blank lines included, until
// the next field token or the end of the body; leading and trailing
// whitespace is trimmed from the final value. Text before the first field is
// dropped silently.
func ParseFields(body string, startLine int) *ordered.Map[string, Field] {
	fields := ordered.New[string, Field]()
	if body == "" {
		return fields
	}

	var name string
	var valueLines []string
	var fieldLine int

	flush := func() {
		if name == "" {
			return
		}
		fields.Set(name, Field{
			Value: strings.TrimSpace(strings.Join(valueLines, "\n")),
			Line:  fieldLine,
		})
		name = ""
		valueLines = nil
	}

	for offset, line := range strings.Split(body, "\n") {
		if match := fieldStartRe.FindStringSubmatch(line); match != nil {
			flush()
			name = match[1]
			fieldLine = startLine + offset
			valueLines = []string{match[2]}
			continue
		}
		if name != "" {
			valueLines = append(valueLines, line)
		}
	}
	flush()

	return fields
}

// splitHeader reports whether line is a markdown header, returning the header
// depth and the text after the hashes.
func splitHeader(line string) (int, string, bool) {
	trimmed := strings.TrimRight(line, " \t\r")
	count := 0
	for count < len(trimmed) && trimmed[count] == '#' {
		count++
	}
	if count == 0 || count >= len(trimmed) || trimmed[count] != ' ' {
		return 0, "", false
	}
	return count, strings.TrimSpace(trimmed[count:]), true
}

// splitTypeTitle splits a header payload into its type keyword and optional
// title (`Type: Title` or bare `Type`).
func splitTypeTitle(rest string) (string, string) {
	if idx := strings.Index(rest, ":"); idx >= 0 {
		return strings.TrimSpace(rest[:idx]), strings.TrimSpace(rest[idx+1:])
	}
	return strings.TrimSpace(rest), ""
}
