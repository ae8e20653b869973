package check

import (
	"strings"
	"testing"

	"github.com/coursekit/courselint/pkg/interfaces"
)

func TestTierFromTags(t *testing.T) {
	cases := []struct {
		tags []string
		want interfaces.ContentTier
	}{
		{nil, interfaces.TierProduction},
		{[]string{"systems"}, interfaces.TierProduction},
		{[]string{"wip"}, interfaces.TierWIP},
		{[]string{"work-in-progress"}, interfaces.TierWIP},
		{[]string{"ignore"}, interfaces.TierIgnored},
		{[]string{"wip", "ignore"}, interfaces.TierIgnored},
	}

	for _, tc := range cases {
		if got := TierFromTags(tc.tags); got != tc.want {
			t.Fatalf("tags %v: expected %q, got %q", tc.tags, tc.want, got)
		}
	}
}

func TestTierViolationsMatrix(t *testing.T) {
	tiers := map[string]interfaces.ContentTier{
		"prod.md":    interfaces.TierProduction,
		"wip.md":     interfaces.TierWIP,
		"ignored.md": interfaces.TierIgnored,
	}

	cases := []struct {
		parent, child string
		wantError     bool
	}{
		{"prod.md", "prod.md", false},
		{"prod.md", "wip.md", true},
		{"prod.md", "ignored.md", true},
		{"wip.md", "prod.md", false},
		{"wip.md", "wip.md", false},
		{"wip.md", "ignored.md", true},
		{"ignored.md", "prod.md", false},
		{"ignored.md", "wip.md", false},
		{"ignored.md", "ignored.md", false},
	}

	for _, tc := range cases {
		refs := []Reference{{Parent: tc.parent, Child: tc.child, Line: 4}}
		diags := TierViolations(refs, tiers)
		if tc.wantError && len(diags) != 1 {
			t.Fatalf("%s -> %s: expected error, got %#v", tc.parent, tc.child, diags)
		}
		if !tc.wantError && len(diags) != 0 {
			t.Fatalf("%s -> %s: expected no error, got %#v", tc.parent, tc.child, diags)
		}
	}
}

func TestTierViolationNamesBothFilesAndRemedies(t *testing.T) {
	tiers := map[string]interfaces.ContentTier{
		"modules/prod.md": interfaces.TierProduction,
		"Lenses/wip.md":   interfaces.TierWIP,
	}

	diags := TierViolations([]Reference{{Parent: "modules/prod.md", Child: "Lenses/wip.md", Line: 9}}, tiers)
	if len(diags) != 1 {
		t.Fatalf("expected one error, got %#v", diags)
	}
	diag := diags[0]
	if diag.File != "modules/prod.md" || diag.Line != 9 {
		t.Fatalf("violation attributes the parent file: %#v", diag)
	}
	if !strings.Contains(diag.Message, "modules/prod.md") || !strings.Contains(diag.Message, "Lenses/wip.md") {
		t.Fatalf("message must name both files: %q", diag.Message)
	}
	if !strings.Contains(diag.Suggestion, "'wip'") {
		t.Fatalf("suggestion must name the child tag: %q", diag.Suggestion)
	}
}

func TestTierViolationUnknownFilesDefaultToProduction(t *testing.T) {
	diags := TierViolations([]Reference{{Parent: "a.md", Child: "b.md"}}, map[string]interfaces.ContentTier{})
	if len(diags) != 0 {
		t.Fatalf("unknown files default to production, got %#v", diags)
	}
}
