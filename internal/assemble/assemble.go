// Package assemble converts raw authored files into typed entities. Each
// content kind has its own assembler; they share the front matter pass, the
// required-field checks, and wikilink source resolution.
package assemble

import (
	"errors"
	"fmt"
	"strings"

	"github.com/coursekit/courselint/internal/check"
	"github.com/coursekit/courselint/internal/frontmatter"
	"github.com/coursekit/courselint/internal/logging"
	"github.com/coursekit/courselint/internal/sectiontree"
	"github.com/coursekit/courselint/internal/wikilink"
	"github.com/coursekit/courselint/pkg/interfaces"
)

// frontMatterLine is the line diagnostics about front matter fields are
// attributed to: the first key/value line of the block.
const frontMatterLine = 2

// Context carries the shared collaborators every assembler needs.
type Context struct {
	Files  *interfaces.FileSet
	Logger interfaces.Logger
}

func (c Context) logger() interfaces.Logger {
	if c.Logger == nil {
		return logging.NoOp()
	}
	return c.Logger
}

// parseDocument runs the front matter pass for one file. A missing or
// malformed block is a single fatal error; the caller skips the file's
// remaining checks.
func parseDocument(file, raw string) (*frontmatter.Document, []interfaces.Diagnostic) {
	doc, err := frontmatter.Parse(raw)
	if err == nil {
		return doc, nil
	}

	diag := interfaces.Diagnostic{
		File:     file,
		Line:     1,
		Severity: interfaces.SeverityError,
		Category: interfaces.CategoryFrontMatter,
	}
	if errors.Is(err, frontmatter.ErrMissing) {
		diag.Message = "Missing front matter"
		diag.Suggestion = "Start the file with a '---' delimited front matter block"
	} else {
		diag.Message = "Malformed front matter"
		diag.Suggestion = "Fix the YAML syntax of the front matter block"
	}
	return nil, []interfaces.Diagnostic{diag}
}

// requireFields errors on each required front matter field that is missing
// or holds only whitespace. The generic add-the-field suggestion is replaced
// by a typo suggestion when an unrecognized present field sits close to the
// required name.
func requireFields(doc *frontmatter.Document, required, known []string, file string) []interfaces.Diagnostic {
	var diags []interfaces.Diagnostic

	candidates := unknownKeys(doc, known)
	for _, name := range required {
		if doc.Has(name) && strings.TrimSpace(doc.Value(name)) != "" {
			continue
		}
		suggestion := check.MissingSuggestion(name, candidates)
		if suggestion == "" {
			suggestion = fmt.Sprintf("Add '%s' to the front matter", name)
		}
		diags = append(diags, interfaces.Diagnostic{
			File:       file,
			Line:       frontMatterLine,
			Message:    fmt.Sprintf("Missing required field '%s'", name),
			Suggestion: suggestion,
			Severity:   interfaces.SeverityError,
			Category:   interfaces.CategoryFrontMatter,
		})
	}

	diags = append(diags, check.UnknownFields(doc.Keys(), known, file, frontMatterLine, "front matter")...)
	return diags
}

func unknownKeys(doc *frontmatter.Document, known []string) []string {
	knownSet := make(map[string]struct{}, len(known))
	for _, name := range known {
		knownSet[strings.ToLower(name)] = struct{}{}
	}
	var out []string
	for _, key := range doc.Keys() {
		if _, ok := knownSet[strings.ToLower(key)]; !ok {
			out = append(out, key)
		}
	}
	return out
}

// resolveSource extracts and resolves the `source::` wikilink of an
// article/video section. The returned ref is nil when the field is missing,
// not a wikilink, or points at a file outside the set; each of those is one
// error.
func resolveSource(node *sectiontree.Node, file string, files *interfaces.FileSet) (*interfaces.Wikilink, []interfaces.Diagnostic) {
	field, ok := node.Field("source")
	if !ok {
		return nil, []interfaces.Diagnostic{{
			File:       file,
			Line:       node.Line,
			Message:    fmt.Sprintf("'%s' section is missing a source:: field", node.Type),
			Suggestion: "Add 'source:: [[path/to/file]]'",
			Severity:   interfaces.SeverityError,
			Category:   interfaces.CategoryStructure,
		}}
	}

	link, ok := wikilink.Parse(field.Value)
	if !ok {
		return nil, []interfaces.Diagnostic{{
			File:       file,
			Line:       field.Line,
			Message:    fmt.Sprintf("Field 'source' must be a wikilink, got '%s'", field.Value),
			Suggestion: "Use 'source:: [[path/to/file]]'",
			Severity:   interfaces.SeverityError,
			Category:   interfaces.CategoryReference,
		}}
	}

	target := wikilink.Resolve(link, file, files)
	if target == "" {
		return wikilink.ToRef(link, ""), []interfaces.Diagnostic{{
			File:       file,
			Line:       field.Line,
			Message:    fmt.Sprintf("Source '%s' not found", link.Path),
			Suggestion: "Check the path or create the referenced file",
			Severity:   interfaces.SeverityError,
			Category:   interfaces.CategoryReference,
		}}
	}

	return wikilink.ToRef(link, target), nil
}

// fieldApplicability warns about every authored field outside the node
// type's allow-list. Near-misses get a typo suggestion; anything else gets
// the valid field list.
func fieldApplicability(node *sectiontree.Node, allowed []string, label, file string) []interfaces.Diagnostic {
	allowedSet := make(map[string]struct{}, len(allowed))
	for _, name := range allowed {
		allowedSet[strings.ToLower(name)] = struct{}{}
	}

	var diags []interfaces.Diagnostic
	node.Fields.Range(func(name string, field sectiontree.Field) bool {
		if _, ok := allowedSet[strings.ToLower(name)]; ok {
			return true
		}
		diag := interfaces.Diagnostic{
			File:       file,
			Line:       field.Line,
			Message:    fmt.Sprintf("Field '%s' is not valid for '%s' %s", name, node.Type, label),
			Suggestion: fmt.Sprintf("Valid fields are: %s", strings.Join(allowed, ", ")),
			Severity:   interfaces.SeverityWarning,
			Category:   interfaces.CategoryStructure,
		}
		if match, distance := closestField(name, allowed); distance <= 2 {
			diag.Suggestion = fmt.Sprintf("Did you mean '%s'?", match)
		}
		diags = append(diags, diag)
		return true
	})
	return diags
}

func closestField(name string, allowed []string) (string, int) {
	best := ""
	bestDistance := int(^uint(0) >> 1)
	for _, candidate := range allowed {
		if d := check.Distance(name, candidate); d < bestDistance {
			best = candidate
			bestDistance = d
		}
	}
	return best, bestDistance
}

// optionalFlag reads the `optional::` field of a segment, warning when the
// value is not a boolean.
func optionalFlag(node *sectiontree.Node, file string) (bool, []interfaces.Diagnostic) {
	field, ok := node.Field("optional")
	if !ok {
		return false, nil
	}
	diags := check.BooleanValue("optional", field.Value, file, field.Line)
	return check.BooleanTrue(field.Value), diags
}

// stripQuotes removes one pair of surrounding double quotes, if present.
// Excerpt anchors and timestamps are often quoted to protect leading or
// trailing spaces.
func stripQuotes(s string) string {
	if len(s) >= 2 && strings.HasPrefix(s, `"`) && strings.HasSuffix(s, `"`) {
		return s[1 : len(s)-1]
	}
	return s
}

func copyTags(tags []string) []string {
	if len(tags) == 0 {
		return nil
	}
	return append([]string(nil), tags...)
}
