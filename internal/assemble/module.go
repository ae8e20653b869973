package assemble

import (
	"fmt"

	"github.com/coursekit/courselint/internal/check"
	"github.com/coursekit/courselint/internal/sectiontree"
	"github.com/coursekit/courselint/pkg/interfaces"
)

var (
	moduleSectionTypes = []string{"text", "article", "video", "chat"}
	moduleKnownFields  = []string{"slug", "title", "tags"}
)

// Module assembles a course module file. A fatal front matter failure
// returns a nil module and one diagnostic; every other problem is reported
// alongside the assembled entity.
func Module(ctx Context, file, raw string) (*interfaces.Module, []interfaces.Diagnostic) {
	doc, diags := parseDocument(file, raw)
	if doc == nil {
		return nil, diags
	}

	diags = append(diags, requireFields(doc, []string{"slug", "title"}, moduleKnownFields, file)...)

	slug := doc.Value("slug")
	diags = append(diags, check.SlugFormat(slug, file, frontMatterLine, "Slug")...)

	module := &interfaces.Module{
		Slug:  slug,
		Title: doc.Value("title"),
		File:  file,
		Tags:  copyTags(doc.Tags),
	}

	nodes, sectionDiags := sectiontree.Parse(doc.Body, doc.BodyStart, 3, moduleSectionTypes, "section", file)
	diags = append(diags, sectionDiags...)

	for i := range nodes {
		node := &nodes[i]
		section, ok := moduleSection(ctx, node, file, &diags)
		if ok {
			module.Sections = append(module.Sections, section)
		}
	}

	ctx.logger().Debug("assemble.module",
		"file", file, "slug", slug, "sections", len(module.Sections))
	return module, diags
}

func moduleSection(ctx Context, node *sectiontree.Node, file string, diags *[]interfaces.Diagnostic) (interfaces.ModuleSection, bool) {
	section := interfaces.ModuleSection{
		Title: node.Title,
		Line:  node.Line,
	}

	switch node.Type {
	case "text", "chat":
		section.Type = interfaces.ModuleSectionText
		if node.Type == "chat" {
			section.Type = interfaces.ModuleSectionChat
		}
		*diags = append(*diags, fieldApplicability(node, []string{"content"}, "sections", file)...)
		*diags = append(*diags, contentField(node, &section.Content, file)...)

	case "article", "video":
		section.Type = interfaces.ModuleSectionArticle
		if node.Type == "video" {
			section.Type = interfaces.ModuleSectionVideo
		}
		*diags = append(*diags, fieldApplicability(node, []string{"source"}, "sections", file)...)
		source, sourceDiags := resolveSource(node, file, ctx.Files)
		*diags = append(*diags, sourceDiags...)
		section.Source = source

	default:
		// Already warned by the tree parser; the section is not typed.
		return interfaces.ModuleSection{}, false
	}

	return section, true
}

// contentField applies the shared content rule: a missing field is an error,
// a blank value is a warning with the section or segment kept.
func contentField(node *sectiontree.Node, dst *string, file string) []interfaces.Diagnostic {
	field, ok := node.Field("content")
	if !ok {
		return []interfaces.Diagnostic{{
			File:       file,
			Line:       node.Line,
			Message:    fmt.Sprintf("'%s' is missing a content:: field", node.Type),
			Suggestion: "Add 'content::' followed by the text",
			Severity:   interfaces.SeverityError,
			Category:   interfaces.CategoryStructure,
		}}
	}
	*dst = field.Value
	if field.Value == "" {
		return []interfaces.Diagnostic{{
			File:       file,
			Line:       field.Line,
			Message:    fmt.Sprintf("'%s' has an empty content:: field", node.Type),
			Suggestion: "Fill in the content or remove the block",
			Severity:   interfaces.SeverityWarning,
			Category:   interfaces.CategoryStructure,
		}}
	}
	return nil
}
