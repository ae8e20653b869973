package assemble

import (
	"fmt"
	"strings"

	"github.com/coursekit/courselint/internal/check"
	"github.com/coursekit/courselint/internal/wikilink"
	"github.com/coursekit/courselint/pkg/interfaces"
)

var outcomeKnownFields = []string{"id", "tags"}

// Outcome assembles a learning outcome: an identity plus the ordered lens
// references found as wikilinks in the body.
func Outcome(ctx Context, file, raw string) (*interfaces.LearningOutcome, []interfaces.Diagnostic) {
	doc, diags := parseDocument(file, raw)
	if doc == nil {
		return nil, diags
	}

	diags = append(diags, requireFields(doc, []string{"id"}, outcomeKnownFields, file)...)

	id := doc.Value("id")
	diags = append(diags, check.SlugFormat(id, file, frontMatterLine, "Outcome id")...)

	outcome := &interfaces.LearningOutcome{
		ID:   id,
		File: file,
		Tags: copyTags(doc.Tags),
	}

	// Body links are collected line by line so each reference keeps its
	// source position.
	for offset, line := range strings.Split(doc.Body, "\n") {
		lineNo := doc.BodyStart + offset
		for _, link := range wikilink.ParseAll(line) {
			target := wikilink.Resolve(link, file, ctx.Files)
			if target == "" {
				diags = append(diags, interfaces.Diagnostic{
					File:       file,
					Line:       lineNo,
					Message:    fmt.Sprintf("Lens '%s' not found", link.Path),
					Suggestion: "Check the path or create the referenced lens",
					Severity:   interfaces.SeverityError,
					Category:   interfaces.CategoryReference,
				})
			}
			outcome.Lenses = append(outcome.Lenses, *wikilink.ToRef(link, target))
		}
	}

	ctx.logger().Debug("assemble.outcome",
		"file", file, "id", id, "lenses", len(outcome.Lenses))
	return outcome, diags
}
