// Package courselint validates and parses a Markdown-derived authoring
// format for structured educational content. It consumes an in-memory file
// set and returns typed entities plus actionable diagnostics; it never
// touches disk, and touches the network only when URL checking is enabled.
package courselint

import (
	"context"
	"fmt"
	"strings"

	processcmd "github.com/coursekit/courselint/internal/commands/process"
	"github.com/coursekit/courselint/internal/logging"
	"github.com/coursekit/courselint/internal/logging/gologger"
	"github.com/coursekit/courselint/internal/processor"
	"github.com/coursekit/courselint/internal/urlcheck"
	"github.com/coursekit/courselint/pkg/interfaces"
)

// Public DTO surface, re-exported so hosts only import the root package.
type (
	Diagnostic     = interfaces.Diagnostic
	Severity       = interfaces.Severity
	FilePair       = interfaces.FilePair
	FileSet        = interfaces.FileSet
	ProcessOptions = interfaces.ProcessOptions
	Result         = interfaces.Result

	CourseModule    = interfaces.Module
	Lens            = interfaces.Lens
	Article         = interfaces.Article
	VideoTranscript = interfaces.VideoTranscript
	LearningOutcome = interfaces.LearningOutcome
	Segment         = interfaces.Segment
	Wikilink        = interfaces.Wikilink
	ContentTier     = interfaces.ContentTier
)

const (
	SeverityError   = interfaces.SeverityError
	SeverityWarning = interfaces.SeverityWarning
)

// NewFileSet returns an empty insertion-ordered file set.
func NewFileSet() *FileSet { return interfaces.NewFileSet() }

// NewFileSetFromPairs builds a file set preserving the order of pairs.
func NewFileSetFromPairs(pairs []FilePair) *FileSet {
	return interfaces.NewFileSetFromPairs(pairs)
}

// Module is the top level courselint runtime façade.
type Module struct {
	config   Config
	provider interfaces.LoggerProvider
	service  *processor.Service
}

// New constructs the runtime from a validated configuration.
func New(cfg Config) (*Module, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	provider, err := buildLoggerProvider(cfg)
	if err != nil {
		return nil, err
	}

	var checker *urlcheck.Checker
	if cfg.URLCheck.Enabled {
		checker = urlcheck.New(urlcheck.Config{
			Timeout:   cfg.URLCheck.Timeout,
			BatchSize: cfg.URLCheck.BatchSize,
			Logger:    logging.URLCheckLogger(provider),
		})
	}

	return &Module{
		config:   cfg,
		provider: provider,
		service:  processor.New(processor.Config{Provider: provider, URLChecker: checker}),
	}, nil
}

// ProcessContent runs the full pipeline with the options derived from the
// module configuration.
func (m *Module) ProcessContent(ctx context.Context, files *FileSet) *Result {
	return m.ProcessContentWithOptions(ctx, files, ProcessOptions{
		IncludeWip: m.config.Processing.IncludeWip,
		CheckURLs:  m.config.URLCheck.Enabled,
	})
}

// ProcessContentWithOptions runs the full pipeline with explicit per-call
// options.
func (m *Module) ProcessContentWithOptions(ctx context.Context, files *FileSet, opts ProcessOptions) *Result {
	return m.service.ProcessContent(ctx, files, opts)
}

// ProcessContentHandler returns a command handler bound to this runtime. The
// sink receives the aggregate result of each successful run.
func (m *Module) ProcessContentHandler(sink processcmd.ResultSink) *processcmd.ProcessContentHandler {
	return processcmd.NewProcessContentHandler(m.service, sink, logging.CommandLogger(m.provider, "content"))
}

func buildLoggerProvider(cfg Config) (interfaces.LoggerProvider, error) {
	if !cfg.Logging.Enabled {
		return nil, nil
	}
	switch strings.ToLower(strings.TrimSpace(cfg.Logging.Provider)) {
	case "noop":
		return nil, nil
	case "gologger", "":
		return gologger.NewProvider(gologger.Config{
			Level:     cfg.Logging.Level,
			Format:    cfg.Logging.Format,
			AddSource: cfg.Logging.AddSource,
		})
	default:
		// Validate rejects unknown providers before this point.
		return nil, fmt.Errorf("courselint: unsupported logging provider %q", cfg.Logging.Provider)
	}
}
