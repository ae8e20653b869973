// Package processcmd exposes the pipeline as a command message so callers
// can dispatch content processing through the shared command foundation.
package processcmd

import (
	"context"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/coursekit/courselint/internal/commands"
	"github.com/coursekit/courselint/pkg/interfaces"
)

const processContentMessageType = "courselint.content.process"

// Pipeline is the orchestrator surface the command delegates to.
type Pipeline interface {
	ProcessContent(ctx context.Context, files *interfaces.FileSet, opts interfaces.ProcessOptions) *interfaces.Result
}

// ResultSink receives the aggregate result of one processing run.
type ResultSink func(*interfaces.Result)

// ProcessContentCommand requests one full pipeline run over a file set.
type ProcessContentCommand struct {
	Files   []interfaces.FilePair     `json:"files"`
	Options interfaces.ProcessOptions `json:"options"`
}

// Type implements command.Message.
func (ProcessContentCommand) Type() string { return processContentMessageType }

// Validate ensures the message carries at least one file before reaching
// handlers.
func (m ProcessContentCommand) Validate() error {
	errs := validation.Errors{}
	if len(m.Files) == 0 {
		errs["files"] = validation.NewError(
			"courselint.content.process.files_required", "at least one file is required")
	}
	for _, pair := range m.Files {
		if pair.Path == "" {
			errs["files"] = validation.NewError(
				"courselint.content.process.path_required", "every file needs a non-empty path")
			break
		}
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ProcessContentHandler runs the pipeline via the shared command handler
// foundation.
type ProcessContentHandler struct {
	inner *commands.Handler[ProcessContentCommand]
}

// NewProcessContentHandler wires the handler to the pipeline. The sink is
// invoked with the aggregate result on success; a nil sink discards it.
func NewProcessContentHandler(pipeline Pipeline, sink ResultSink, logger interfaces.Logger, opts ...commands.HandlerOption[ProcessContentCommand]) *ProcessContentHandler {
	exec := func(ctx context.Context, msg ProcessContentCommand) error {
		files := interfaces.NewFileSetFromPairs(msg.Files)
		result := pipeline.ProcessContent(ctx, files, msg.Options)
		if sink != nil {
			sink(result)
		}
		return nil
	}

	handlerOpts := []commands.HandlerOption[ProcessContentCommand]{
		commands.WithLogger[ProcessContentCommand](logger),
		commands.WithOperation[ProcessContentCommand]("content.process"),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &ProcessContentHandler{
		inner: commands.NewHandler[ProcessContentCommand](exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[ProcessContentCommand].Execute.
func (h *ProcessContentHandler) Execute(ctx context.Context, msg ProcessContentCommand) error {
	return h.inner.Execute(ctx, msg)
}
