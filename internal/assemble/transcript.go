package assemble

import (
	"github.com/coursekit/courselint/pkg/interfaces"
)

var transcriptKnownFields = []string{"title", "channel", "url", "tags"}

// Transcript assembles a video transcript file. Pairing with its
// `.timestamps.json` sidecar is checked by the orchestrator once every file
// has been routed.
func Transcript(ctx Context, file, raw string) (*interfaces.VideoTranscript, []interfaces.Diagnostic) {
	doc, diags := parseDocument(file, raw)
	if doc == nil {
		return nil, diags
	}

	diags = append(diags, requireFields(doc, []string{"title", "channel", "url"}, transcriptKnownFields, file)...)

	transcript := &interfaces.VideoTranscript{
		Title:   doc.Value("title"),
		Channel: doc.Value("channel"),
		URL:     doc.Value("url"),
		File:    file,
		Tags:    copyTags(doc.Tags),
		Body:    doc.Body,
	}

	ctx.logger().Debug("assemble.transcript", "file", file, "title", transcript.Title)
	return transcript, diags
}
