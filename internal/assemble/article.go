package assemble

import (
	"github.com/coursekit/courselint/pkg/interfaces"
)

var articleKnownFields = []string{"title", "author", "source_url", "tags"}

// Article assembles an imported reading. The Markdown body is retained
// verbatim so excerpt anchors can later be searched against it.
func Article(ctx Context, file, raw string) (*interfaces.Article, []interfaces.Diagnostic) {
	doc, diags := parseDocument(file, raw)
	if doc == nil {
		return nil, diags
	}

	diags = append(diags, requireFields(doc, []string{"title", "author", "source_url"}, articleKnownFields, file)...)

	article := &interfaces.Article{
		Title:     doc.Value("title"),
		Author:    doc.Value("author"),
		SourceURL: doc.Value("source_url"),
		File:      file,
		Tags:      copyTags(doc.Tags),
		Body:      doc.Body,
		BodyLine:  doc.BodyStart,
	}

	ctx.logger().Debug("assemble.article", "file", file, "title", article.Title)
	return article, diags
}
