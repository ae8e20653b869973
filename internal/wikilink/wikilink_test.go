package wikilink

import (
	"testing"

	"github.com/coursekit/courselint/pkg/interfaces"
)

func TestParseVariants(t *testing.T) {
	cases := []struct {
		in      string
		path    string
		display string
		embed   bool
	}{
		{"[[articles/one.md]]", "articles/one.md", "", false},
		{"[[articles/one|A Reading]]", "articles/one", "A Reading", false},
		{"![[../articles/two.md]]", "../articles/two.md", "", true},
		{"![[video_transcripts/v|Watch]]", "video_transcripts/v", "Watch", true},
	}

	for _, tc := range cases {
		link, ok := Parse(tc.in)
		if !ok {
			t.Fatalf("Parse(%q): no match", tc.in)
		}
		if link.Path != tc.path || link.Display != tc.display || link.Embed != tc.embed {
			t.Fatalf("Parse(%q) = %#v", tc.in, link)
		}
	}
}

func TestParseRejectsPlainText(t *testing.T) {
	if _, ok := Parse("no links here [single] brackets"); ok {
		t.Fatalf("expected no match")
	}
}

func TestParseAllPreservesOrder(t *testing.T) {
	links := ParseAll("- [[Lenses/a]]\n- [[Lenses/b|B]]\n")
	if len(links) != 2 {
		t.Fatalf("expected 2 links, got %d", len(links))
	}
	if links[0].Path != "Lenses/a" || links[1].Path != "Lenses/b" {
		t.Fatalf("unexpected order: %#v", links)
	}
}

func TestResolvePathRelative(t *testing.T) {
	got := ResolvePath("../articles/one.md", "Lenses/sub/lens.md")
	if got != "Lenses/articles/one.md" {
		t.Fatalf("unexpected resolution: %q", got)
	}
	got = ResolvePath("./sibling", "Lenses/lens.md")
	if got != "Lenses/sibling" {
		t.Fatalf("unexpected resolution: %q", got)
	}
	got = ResolvePath("articles/one.md", "Lenses/lens.md")
	if got != "articles/one.md" {
		t.Fatalf("root-relative paths stay as written, got %q", got)
	}
}

func TestResolveExactBeforeSuffix(t *testing.T) {
	files := interfaces.NewFileSet()
	files.Add("articles/one", "exact")
	files.Add("articles/one.md", "suffixed")

	link := Link{Path: "articles/one"}
	if got := Resolve(link, "Lenses/lens.md", files); got != "articles/one" {
		t.Fatalf("expected exact match priority, got %q", got)
	}
}

func TestResolveSuffixFallback(t *testing.T) {
	files := interfaces.NewFileSet()
	files.Add("articles/one.md", "content")

	link := Link{Path: "../articles/one"}
	if got := Resolve(link, "Lenses/lens.md", files); got != "articles/one.md" {
		t.Fatalf("expected .md fallback, got %q", got)
	}
}

func TestResolveNotFound(t *testing.T) {
	files := interfaces.NewFileSet()
	if got := Resolve(Link{Path: "missing"}, "Lenses/lens.md", files); got != "" {
		t.Fatalf("expected unresolved target, got %q", got)
	}
}
