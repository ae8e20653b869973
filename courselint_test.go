package courselint

import (
	"context"
	"errors"
	"strings"
	"testing"

	processcmd "github.com/coursekit/courselint/internal/commands/process"
)

func TestNewWithDefaults(t *testing.T) {
	module, err := New(DefaultConfig())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if module == nil {
		t.Fatal("expected a module")
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.URLCheck.Enabled = true
	cfg.URLCheck.BatchSize = -1

	if _, err := New(cfg); !errors.Is(err, ErrURLCheckBatchSizeInvalid) {
		t.Fatalf("expected batch size error, got %v", err)
	}
}

func TestProcessContentEndToEnd(t *testing.T) {
	module, err := New(DefaultConfig())
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	files := NewFileSet()
	files.Add("modules/a.md", "---\nslug: duplicate-slug\ntitle: A\n---\n")
	files.Add("modules/b.md", "---\nslug: duplicate-slug\ntitle: B\n---\n")

	result := module.ProcessContent(context.Background(), files)

	errs := result.Errors()
	if len(errs) != 1 {
		t.Fatalf("expected one duplicate error, got %#v", result.Diagnostics)
	}
	if !strings.Contains(errs[0].Message, "duplicate-slug") {
		t.Fatalf("unexpected message: %q", errs[0].Message)
	}
	if len(result.Modules) != 2 {
		t.Fatalf("both modules still parse: %#v", result.Modules)
	}
}

func TestProcessContentHandlerDispatch(t *testing.T) {
	module, err := New(DefaultConfig())
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	var delivered *Result
	handler := module.ProcessContentHandler(func(r *Result) { delivered = r })

	cmd := processcmd.ProcessContentCommand{
		Files: []FilePair{
			{Path: "modules/a.md", Content: "---\nslug: a\ntitle: A\n---\n"},
		},
	}
	if err := handler.Execute(context.Background(), cmd); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if delivered == nil || len(delivered.Modules) != 1 {
		t.Fatalf("sink must receive the parsed result: %#v", delivered)
	}
}
