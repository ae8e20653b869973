package sectiontree

import (
	"strings"
	"testing"
)

func TestParseSectionsWithTitles(t *testing.T) {
	body := "### Article: Reading One\n" +
		"source:: [[../articles/one.md]]\n" +
		"\n" +
		"### Page\n" +
		"some text\n"

	nodes, diags := Parse(body, 10, 3, []string{"article", "video", "page"}, "section", "Lenses/a.md")
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %#v", diags)
	}
	if len(nodes) != 2 {
		t.Fatalf("expected 2 sections, got %d", len(nodes))
	}

	first := nodes[0]
	if first.Type != "article" || first.Title != "Reading One" {
		t.Fatalf("unexpected first node: %#v", first)
	}
	if first.Line != 10 {
		t.Fatalf("expected first node at line 10, got %d", first.Line)
	}
	field, ok := first.Field("source")
	if !ok || field.Value != "[[../articles/one.md]]" {
		t.Fatalf("unexpected source field: %#v, ok=%v", field, ok)
	}
	if field.Line != 11 {
		t.Fatalf("expected source field at line 11, got %d", field.Line)
	}

	second := nodes[1]
	if second.Type != "page" || second.Title != "" {
		t.Fatalf("unexpected second node: %#v", second)
	}
	if second.Line != 13 {
		t.Fatalf("expected second node at line 13, got %d", second.Line)
	}
}

func TestParseUnknownTypeKeepsNode(t *testing.T) {
	body := "### Artcle: Typoed\n" +
		"source:: [[x]]\n"

	nodes, diags := Parse(body, 1, 3, []string{"article", "video", "page"}, "section", "Lenses/a.md")
	if len(nodes) != 1 {
		t.Fatalf("expected unknown-typed node to be kept, got %d nodes", len(nodes))
	}
	if nodes[0].RawType != "Artcle" || nodes[0].Type != "artcle" {
		t.Fatalf("unexpected node type: %#v", nodes[0])
	}
	if len(diags) != 1 {
		t.Fatalf("expected one warning, got %#v", diags)
	}
	if diags[0].Severity != "warning" || !strings.Contains(diags[0].Message, "Unknown section type 'Artcle'") {
		t.Fatalf("unexpected diagnostic: %#v", diags[0])
	}
}

func TestParseMultiLineFieldValue(t *testing.T) {
	body := "#### text\n" +
		"content:: first paragraph\n" +
		"\n" +
		"second paragraph\n" +
		"optional:: true\n"

	nodes, _ := Parse(body, 1, 4, []string{"text", "chat"}, "segment", "Lenses/a.md")
	if len(nodes) != 1 {
		t.Fatalf("expected 1 segment, got %d", len(nodes))
	}

	content, ok := nodes[0].Field("content")
	if !ok {
		t.Fatalf("expected content field")
	}
	if content.Value != "first paragraph\n\nsecond paragraph" {
		t.Fatalf("multi-line value mismatch: %q", content.Value)
	}
	optional, ok := nodes[0].Field("optional")
	if !ok || optional.Value != "true" {
		t.Fatalf("expected optional field after multi-line value, got %#v", optional)
	}
}

func TestParseDeeperHeadersStayInBody(t *testing.T) {
	body := "### Article: Outer\n" +
		"source:: [[a]]\n" +
		"#### text\n" +
		"content:: inner\n"

	nodes, _ := Parse(body, 1, 3, []string{"article"}, "section", "Lenses/a.md")
	if len(nodes) != 1 {
		t.Fatalf("expected 1 section, got %d", len(nodes))
	}
	if !strings.Contains(nodes[0].Body, "#### text") {
		t.Fatalf("expected deeper header kept in body, got %q", nodes[0].Body)
	}
}

func TestParseShallowerHeaderClosesNode(t *testing.T) {
	body := "### Page: Kept\n" +
		"intro text\n" +
		"## Top Level\n" +
		"stray line\n" +
		"### Page: Second\n"

	nodes, _ := Parse(body, 1, 3, []string{"page"}, "section", "modules/a.md")
	if len(nodes) != 2 {
		t.Fatalf("expected 2 sections, got %d", len(nodes))
	}
	if strings.Contains(nodes[0].Body, "stray line") {
		t.Fatalf("lines after a shallower header must not leak into the closed node: %q", nodes[0].Body)
	}
}

func TestParseDropsTextBeforeFirstHeaderSilently(t *testing.T) {
	body := "orphan line\n" +
		"### Page: Real\n"

	nodes, diags := Parse(body, 1, 3, []string{"page"}, "section", "modules/a.md")
	if len(nodes) != 1 {
		t.Fatalf("expected 1 section, got %d", len(nodes))
	}
	if len(diags) != 0 {
		t.Fatalf("text before the first header is dropped without diagnostics, got %#v", diags)
	}
}

func TestParseFieldsDropsLeadingFreeText(t *testing.T) {
	fields := ParseFields("free text\nfrom:: \"anchor\"\n", 5)
	if fields.Len() != 1 {
		t.Fatalf("expected 1 field, got %d", fields.Len())
	}
	field, _ := fields.Get("from")
	if field.Value != "\"anchor\"" || field.Line != 6 {
		t.Fatalf("unexpected field: %#v", field)
	}
}

func TestParseFieldsEmptyValue(t *testing.T) {
	fields := ParseFields("content:: \n", 1)
	field, ok := fields.Get("content")
	if !ok {
		t.Fatalf("expected blank field to be recorded")
	}
	if field.Value != "" {
		t.Fatalf("expected empty value, got %q", field.Value)
	}
}
