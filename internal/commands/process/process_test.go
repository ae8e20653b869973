package processcmd

import (
	"context"
	"testing"

	goerrors "github.com/goliatone/go-errors"

	"github.com/coursekit/courselint/pkg/interfaces"
)

type stubPipeline struct {
	calls int
	files []string
	opts  interfaces.ProcessOptions
}

func (s *stubPipeline) ProcessContent(ctx context.Context, files *interfaces.FileSet, opts interfaces.ProcessOptions) *interfaces.Result {
	s.calls++
	s.files = files.Paths()
	s.opts = opts
	return &interfaces.Result{}
}

func TestProcessContentHandlerRunsPipeline(t *testing.T) {
	pipeline := &stubPipeline{}
	var delivered *interfaces.Result
	handler := NewProcessContentHandler(pipeline, func(r *interfaces.Result) {
		delivered = r
	}, nil)

	msg := ProcessContentCommand{
		Files: []interfaces.FilePair{
			{Path: "modules/a.md", Content: "---\nslug: a\ntitle: A\n---\n"},
			{Path: "modules/b.md", Content: "---\nslug: b\ntitle: B\n---\n"},
		},
		Options: interfaces.ProcessOptions{IncludeWip: true},
	}
	if err := handler.Execute(context.Background(), msg); err != nil {
		t.Fatalf("execute: %v", err)
	}

	if pipeline.calls != 1 {
		t.Fatalf("pipeline invoked %d times", pipeline.calls)
	}
	if len(pipeline.files) != 2 || pipeline.files[0] != "modules/a.md" {
		t.Fatalf("file order must survive the message: %v", pipeline.files)
	}
	if !pipeline.opts.IncludeWip {
		t.Fatalf("options must reach the pipeline")
	}
	if delivered == nil {
		t.Fatalf("sink must receive the result")
	}
}

func TestProcessContentCommandRequiresFiles(t *testing.T) {
	handler := NewProcessContentHandler(&stubPipeline{}, nil, nil)

	err := handler.Execute(context.Background(), ProcessContentCommand{})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected validation category, got %v", err)
	}
}

func TestProcessContentCommandRequiresPaths(t *testing.T) {
	handler := NewProcessContentHandler(&stubPipeline{}, nil, nil)

	msg := ProcessContentCommand{Files: []interfaces.FilePair{{Path: "", Content: "x"}}}
	if err := handler.Execute(context.Background(), msg); err == nil {
		t.Fatal("expected validation error for empty path")
	}
}
