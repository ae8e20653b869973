package check

import (
	"fmt"
	"strings"

	"github.com/coursekit/courselint/pkg/interfaces"
)

// TierFromTags derives a file's content tier from its front matter tags. An
// ignore tag wins over a wip tag; files with neither are production.
func TierFromTags(tags []string) interfaces.ContentTier {
	tier := interfaces.TierProduction
	for _, tag := range tags {
		switch strings.ToLower(strings.TrimSpace(tag)) {
		case "ignore":
			return interfaces.TierIgnored
		case "wip", "work-in-progress":
			tier = interfaces.TierWIP
		}
	}
	return tier
}

// Reference is one parent-to-child cross-file reference collected during
// assembly.
type Reference struct {
	Parent string
	Child  string
	Line   int
}

// TierViolations checks each reference against the tier matrix: production
// files must not reference wip or ignored files, and wip files must not
// reference ignored files. Ignored parents are never checked. Each violation
// is one error attributed to the parent file.
func TierViolations(refs []Reference, tiers map[string]interfaces.ContentTier) []interfaces.Diagnostic {
	var diags []interfaces.Diagnostic

	for _, ref := range refs {
		parent := tierOf(tiers, ref.Parent)
		if parent == interfaces.TierIgnored {
			continue
		}
		child := tierOf(tiers, ref.Child)
		if !tierAllowed(parent, child) {
			tag := "wip"
			if child == interfaces.TierIgnored {
				tag = "ignore"
			}
			diags = append(diags, interfaces.Diagnostic{
				File:    ref.Parent,
				Line:    ref.Line,
				Message: fmt.Sprintf("Reference from %s file '%s' to %s file '%s'", parent, ref.Parent, child, ref.Child),
				Suggestion: fmt.Sprintf("Remove the '%s' tag from '%s' or add a matching tag to '%s'",
					tag, ref.Child, ref.Parent),
				Severity: interfaces.SeverityError,
				Category: interfaces.CategoryTier,
			})
		}
	}

	return diags
}

func tierAllowed(parent, child interfaces.ContentTier) bool {
	switch parent {
	case interfaces.TierProduction:
		return child == interfaces.TierProduction
	case interfaces.TierWIP:
		return child != interfaces.TierIgnored
	default:
		return true
	}
}

func tierOf(tiers map[string]interfaces.ContentTier, file string) interfaces.ContentTier {
	if tier, ok := tiers[file]; ok {
		return tier
	}
	return interfaces.TierProduction
}
