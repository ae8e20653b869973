// Package frontmatter splits an authored file into its front matter block and
// body. The block is decoded twice: once through adrg/frontmatter for typed
// access (tags), and once as a yaml.Node so key order and the scalar text as
// written survive for the schema and value validators downstream.
package frontmatter

import (
	"errors"
	"fmt"
	"strings"

	adrg "github.com/adrg/frontmatter"
	"gopkg.in/yaml.v3"

	"github.com/coursekit/courselint/internal/ordered"
)

var (
	// ErrMissing reports a file without a leading front matter block.
	ErrMissing = errors.New("frontmatter: missing front matter block")
	// ErrMalformed reports a block that could not be decoded.
	ErrMalformed = errors.New("frontmatter: malformed front matter block")
)

// Value is one front matter value preserving the scalar text as written.
// List is non-nil when the value is a sequence.
type Value struct {
	Raw  string
	List []string
}

// IsList reports whether the value is a sequence.
func (v Value) IsList() bool { return v.List != nil }

// Document is a parsed file: ordered front matter fields, tags, and the body
// together with the 1-based line number of its first line.
type Document struct {
	Fields    *ordered.Map[string, Value]
	Tags      []string
	Body      string
	BodyStart int
}

// Keys returns the front matter keys in authoring order.
func (d *Document) Keys() []string {
	if d == nil || d.Fields == nil {
		return nil
	}
	return d.Fields.Keys()
}

// Has reports whether the front matter defines name.
func (d *Document) Has(name string) bool {
	return d != nil && d.Fields.Has(name)
}

// Value returns the scalar text stored under name, or "" when the key is
// absent or holds a sequence.
func (d *Document) Value(name string) string {
	if d == nil {
		return ""
	}
	value, ok := d.Fields.Get(name)
	if !ok || value.IsList() {
		return ""
	}
	return value.Raw
}

type envelope struct {
	Tags   []string       `yaml:"tags"`
	Custom map[string]any `yaml:",inline"`
}

// Parse decodes the leading front matter block of raw. A file without a
// block fails with ErrMissing; undecodable blocks fail with a wrapped
// ErrMalformed. Parse never panics.
func Parse(raw string) (*Document, error) {
	var meta envelope
	rest, err := adrg.Parse(strings.NewReader(raw), &meta)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	matter := raw[:len(raw)-len(rest)]
	if matter == "" {
		return nil, ErrMissing
	}

	fields, err := decodeOrderedFields(matter)
	if err != nil {
		return nil, err
	}

	return &Document{
		Fields:    fields,
		Tags:      append([]string(nil), meta.Tags...),
		Body:      string(rest),
		BodyStart: strings.Count(matter, "\n") + 1,
	}, nil
}

// decodeOrderedFields re-reads the matter region as a yaml.Node so the field
// order and raw scalar spellings are preserved.
func decodeOrderedFields(matter string) (*ordered.Map[string, Value], error) {
	payload := stripDelimiters(matter)

	var node yaml.Node
	if err := yaml.Unmarshal([]byte(payload), &node); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	fields := ordered.New[string, Value]()
	if node.Kind == 0 || len(node.Content) == 0 {
		return fields, nil
	}

	mapping := node.Content[0]
	if mapping.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: front matter must be a key/value mapping", ErrMalformed)
	}

	for i := 0; i+1 < len(mapping.Content); i += 2 {
		key := mapping.Content[i]
		value := mapping.Content[i+1]
		if key.Kind != yaml.ScalarNode {
			continue
		}
		fields.Set(key.Value, nodeValue(value))
	}

	return fields, nil
}

func nodeValue(node *yaml.Node) Value {
	switch node.Kind {
	case yaml.ScalarNode:
		return Value{Raw: node.Value}
	case yaml.SequenceNode:
		items := make([]string, 0, len(node.Content))
		for _, item := range node.Content {
			items = append(items, item.Value)
		}
		return Value{List: items}
	default:
		return Value{}
	}
}

func stripDelimiters(matter string) string {
	lines := strings.Split(matter, "\n")
	if len(lines) > 0 && strings.TrimSpace(lines[0]) == "---" {
		lines = lines[1:]
	}
	for i := len(lines) - 1; i >= 0; i-- {
		if strings.TrimSpace(lines[i]) == "---" {
			lines = lines[:i]
			break
		}
	}
	return strings.Join(lines, "\n")
}
