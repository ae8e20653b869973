package assemble

import (
	"fmt"

	"github.com/coursekit/courselint/internal/check"
	"github.com/coursekit/courselint/internal/sectiontree"
	"github.com/coursekit/courselint/pkg/interfaces"
)

var (
	lensSectionTypes = []string{"article", "video", "page"}
	lensSegmentTypes = []string{"text", "chat", "article-excerpt", "video-excerpt"}
	lensKnownFields  = []string{"id", "tags"}

	textSegmentFields    = []string{"content", "optional"}
	excerptSegmentFields = []string{"from", "to", "optional"}
)

// Lens assembles a lens file: depth-3 sections, each holding depth-4
// segments. The authoring keywords `article` and `video` surface as the
// public `lens-article` and `lens-video` section types.
func Lens(ctx Context, file, raw string) (*interfaces.Lens, []interfaces.Diagnostic) {
	doc, diags := parseDocument(file, raw)
	if doc == nil {
		return nil, diags
	}

	diags = append(diags, requireFields(doc, []string{"id"}, lensKnownFields, file)...)

	id := doc.Value("id")
	diags = append(diags, check.SlugFormat(id, file, frontMatterLine, "Lens id")...)

	lens := &interfaces.Lens{
		ID:   id,
		File: file,
		Tags: copyTags(doc.Tags),
	}

	nodes, sectionDiags := sectiontree.Parse(doc.Body, doc.BodyStart, 3, lensSectionTypes, "section", file)
	diags = append(diags, sectionDiags...)

	for i := range nodes {
		node := &nodes[i]
		section, ok := lensSection(ctx, node, file, &diags)
		if ok {
			lens.Sections = append(lens.Sections, section)
		}
	}

	ctx.logger().Debug("assemble.lens",
		"file", file, "id", id, "sections", len(lens.Sections))
	return lens, diags
}

func lensSection(ctx Context, node *sectiontree.Node, file string, diags *[]interfaces.Diagnostic) (interfaces.LensSection, bool) {
	section := interfaces.LensSection{
		Title: node.Title,
		Line:  node.Line,
	}

	switch node.Type {
	case "article":
		section.Type = interfaces.LensSectionArticle
	case "video":
		section.Type = interfaces.LensSectionVideo
	case "page":
		section.Type = interfaces.LensSectionPage
	default:
		return interfaces.LensSection{}, false
	}

	if node.Type == "article" || node.Type == "video" {
		source, sourceDiags := resolveSource(node, file, ctx.Files)
		*diags = append(*diags, sourceDiags...)
		section.Source = source
	}

	segments, segmentDiags := sectiontree.Parse(node.Body, node.BodyStart, 4, lensSegmentTypes, "segment", file)
	*diags = append(*diags, segmentDiags...)

	for i := range segments {
		segment, ok := lensSegment(&segments[i], file, diags)
		if ok {
			section.Segments = append(section.Segments, segment)
		}
	}

	if len(section.Segments) == 0 {
		*diags = append(*diags, interfaces.Diagnostic{
			File:       file,
			Line:       node.Line,
			Message:    fmt.Sprintf("Section '%s' has no segments", node.RawType),
			Suggestion: "Add at least one '####' segment or remove the section",
			Severity:   interfaces.SeverityWarning,
			Category:   interfaces.CategoryStructure,
		})
	}

	return section, true
}

func lensSegment(node *sectiontree.Node, file string, diags *[]interfaces.Diagnostic) (interfaces.Segment, bool) {
	switch node.Type {
	case "text", "chat":
		*diags = append(*diags, fieldApplicability(node, textSegmentFields, "segments", file)...)
	case "article-excerpt", "video-excerpt":
		*diags = append(*diags, fieldApplicability(node, excerptSegmentFields, "segments", file)...)
	default:
		// Unknown keyword, already warned by the tree parser.
		return nil, false
	}

	optional, optionalDiags := optionalFlag(node, file)
	*diags = append(*diags, optionalDiags...)

	// An article-excerpt with zero fields selects the whole article; every
	// other empty segment is suspicious.
	if node.Fields.Len() == 0 && node.Type != "article-excerpt" {
		*diags = append(*diags, interfaces.Diagnostic{
			File:       file,
			Line:       node.Line,
			Message:    fmt.Sprintf("Empty '%s' segment", node.Type),
			Suggestion: "Fill in the segment fields or remove it",
			Severity:   interfaces.SeverityWarning,
			Category:   interfaces.CategoryStructure,
		})
	}

	switch node.Type {
	case "text":
		segment := interfaces.TextSegment{Optional: optional, Line: node.Line}
		*diags = append(*diags, contentField(node, &segment.Content, file)...)
		return segment, true

	case "chat":
		segment := interfaces.ChatSegment{Optional: optional, Line: node.Line}
		*diags = append(*diags, contentField(node, &segment.Content, file)...)
		return segment, true

	case "article-excerpt":
		segment := interfaces.ArticleExcerpt{Optional: optional, Line: node.Line}
		if field, ok := node.Field("from"); ok {
			segment.From = stripQuotes(field.Value)
		}
		if field, ok := node.Field("to"); ok {
			segment.To = stripQuotes(field.Value)
		}
		return segment, true

	case "video-excerpt":
		segment := interfaces.VideoExcerpt{From: "0:00", Optional: optional, Line: node.Line}
		if field, ok := node.Field("from"); ok {
			segment.From = stripQuotes(field.Value)
		}
		if field, ok := node.Field("to"); ok {
			segment.To = stripQuotes(field.Value)
		} else {
			*diags = append(*diags, interfaces.Diagnostic{
				File:       file,
				Line:       node.Line,
				Message:    "'video-excerpt' is missing a to:: field",
				Suggestion: "Add 'to::' with the end timestamp",
				Severity:   interfaces.SeverityError,
				Category:   interfaces.CategoryStructure,
			})
		}
		return segment, true
	}

	return nil, false
}
