package check

import (
	"fmt"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/coursekit/courselint/pkg/interfaces"
)

// Edit-distance thresholds. Empirically chosen cutoffs, kept as named
// constants so they can be tuned without hunting call sites.
const (
	// typoDistanceMax bounds how far an unrecognized field may be from a
	// known field name before the "Did you mean" suggestion is suppressed.
	typoDistanceMax = 2
	// missingDistanceMax bounds the reverse search from a missing required
	// field to a present near-miss.
	missingDistanceMax = 3
)

// Distance returns the Levenshtein edit distance between the lowercased
// forms of a and b.
func Distance(a, b string) int {
	return levenshtein.ComputeDistance(strings.ToLower(a), strings.ToLower(b))
}

// UnknownFields warns about each present field that is not in the known set
// but sits within typoDistanceMax of a known field. Present fields with no
// close known neighbour produce nothing; the missing-required-field checks
// flag those situations separately. context names the scope in the message
// ("front matter", "'text' segments", ...).
func UnknownFields(present, known []string, file string, line int, context string) []interfaces.Diagnostic {
	knownSet := make(map[string]struct{}, len(known))
	for _, name := range known {
		knownSet[strings.ToLower(name)] = struct{}{}
	}

	var diags []interfaces.Diagnostic
	for _, name := range present {
		if _, ok := knownSet[strings.ToLower(name)]; ok {
			continue
		}
		if match, ok := closestKnown(name, known, typoDistanceMax); ok {
			diags = append(diags, interfaces.Diagnostic{
				File:       file,
				Line:       line,
				Message:    fmt.Sprintf("Unrecognized field '%s' in %s", name, context),
				Suggestion: fmt.Sprintf("Did you mean '%s'?", match),
				Severity:   interfaces.SeverityWarning,
				Category:   interfaces.CategoryFrontMatter,
			})
		}
	}
	return diags
}

// MissingSuggestion performs the best-effort reverse search for a missing
// required field: a present field within missingDistanceMax of the required
// name, or in a substring relationship with it, yields a "Did you mean"
// suggestion. The empty string reports no candidate.
func MissingSuggestion(required string, present []string) string {
	for _, name := range present {
		if Distance(required, name) <= missingDistanceMax || substringRelated(required, name) {
			return fmt.Sprintf("Did you mean '%s' instead of '%s'?", required, name)
		}
	}
	return ""
}

func closestKnown(name string, known []string, max int) (string, bool) {
	best := ""
	bestDistance := max + 1
	for _, candidate := range known {
		if d := Distance(name, candidate); d < bestDistance {
			best = candidate
			bestDistance = d
		}
	}
	return best, bestDistance <= max
}

func substringRelated(a, b string) bool {
	a = strings.ToLower(a)
	b = strings.ToLower(b)
	return strings.Contains(a, b) || strings.Contains(b, a)
}
