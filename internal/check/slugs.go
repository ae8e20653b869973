package check

import (
	"fmt"
	"regexp"
	"strings"

	goslug "github.com/goliatone/go-slug"

	"github.com/coursekit/courselint/internal/ordered"
	"github.com/coursekit/courselint/pkg/interfaces"
)

// SlugEntry couples an identity slug with the file that declared it.
type SlugEntry struct {
	Slug string
	File string
}

// Duplicates scans entries in order and reports every occurrence of an
// already-seen slug. The first occurrence of a slug never errors; each later
// occurrence produces exactly one error attributed to the later file, naming
// the file that declared it first. label names the identity namespace in the
// message ("slug", "lens id", ...).
func Duplicates(entries []SlugEntry, label string) []interfaces.Diagnostic {
	var diags []interfaces.Diagnostic

	seen := ordered.New[string, string]()
	for _, entry := range entries {
		if entry.Slug == "" {
			continue
		}
		if first, ok := seen.Get(entry.Slug); ok {
			diags = append(diags, interfaces.Diagnostic{
				File:       entry.File,
				Line:       2,
				Message:    fmt.Sprintf("Duplicate %s '%s': already used by '%s'", label, entry.Slug, first),
				Suggestion: fmt.Sprintf("Choose a unique %s", label),
				Severity:   interfaces.SeverityError,
				Category:   interfaces.CategoryReference,
			})
			continue
		}
		seen.Set(entry.Slug, entry.File)
	}

	return diags
}

var slugRe = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// SlugFormat validates a single slug value. Checks run in priority order --
// uppercase letters, leading hyphen, trailing hyphen, then the general
// pattern -- and only the first failure is reported.
func SlugFormat(slug, file string, line int, label string) []interfaces.Diagnostic {
	if slug == "" || slugRe.MatchString(slug) {
		return nil
	}

	diag := interfaces.Diagnostic{
		File:     file,
		Line:     line,
		Severity: interfaces.SeverityError,
		Category: interfaces.CategoryFormat,
	}

	switch {
	case strings.ToLower(slug) != slug:
		diag.Message = fmt.Sprintf("%s '%s' must not contain uppercase letters", label, slug)
		diag.Suggestion = fmt.Sprintf("Use '%s'", strings.ToLower(slug))
	case strings.HasPrefix(slug, "-"):
		diag.Message = fmt.Sprintf("%s '%s' must not start with a hyphen", label, slug)
	case strings.HasSuffix(slug, "-"):
		diag.Message = fmt.Sprintf("%s '%s' must not end with a hyphen", label, slug)
	default:
		diag.Message = fmt.Sprintf("%s '%s' must contain only lowercase letters, digits, and single hyphens", label, slug)
		if normalized, err := goslug.Normalize(slug); err == nil && normalized != "" && normalized != slug {
			diag.Suggestion = fmt.Sprintf("Use '%s'", normalized)
		}
	}

	return []interfaces.Diagnostic{diag}
}
