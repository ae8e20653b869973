// Package processor orchestrates the pipeline: it routes each input file to
// its assembler, then runs the cross-file validators over the parsed corpus.
// The pipeline is stateless between calls; two runs over the same file set
// produce identical results.
package processor

import (
	"context"
	"strings"

	"github.com/coursekit/courselint/internal/assemble"
	"github.com/coursekit/courselint/internal/check"
	"github.com/coursekit/courselint/internal/frontmatter"
	"github.com/coursekit/courselint/internal/logging"
	"github.com/coursekit/courselint/internal/resolve"
	"github.com/coursekit/courselint/internal/sidecar"
	"github.com/coursekit/courselint/internal/urlcheck"
	"github.com/coursekit/courselint/pkg/interfaces"
)

// Config wires the orchestrator's collaborators.
type Config struct {
	Provider   interfaces.LoggerProvider
	URLChecker *urlcheck.Checker
}

// Service is the pipeline entry point.
type Service struct {
	logger         interfaces.Logger
	assembleLogger interfaces.Logger
	urlChecker     *urlcheck.Checker
}

// New constructs the orchestrator.
func New(cfg Config) *Service {
	return &Service{
		logger:         logging.ProcessorLogger(cfg.Provider),
		assembleLogger: logging.AssembleLogger(cfg.Provider),
		urlChecker:     cfg.URLChecker,
	}
}

// corpus is the immutable parse result handed to the cross-file validators.
type corpus struct {
	result *interfaces.Result

	articlesByFile    map[string]*interfaces.Article
	transcriptsByFile map[string]*interfaces.VideoTranscript
	sidecarsByFile    map[string][]sidecar.Entry
	sidecarSeen       map[string]bool

	tiers    map[string]interfaces.ContentTier
	refs     []check.Reference
	excluded map[string]bool
}

// ProcessContent runs the whole pipeline over files. Phase one parses every
// file in insertion order; phase two runs the cross-file validators in a
// fixed order. Every failure path becomes a diagnostic; the call never
// panics and never returns a partial result.
func (s *Service) ProcessContent(ctx context.Context, files *interfaces.FileSet, opts interfaces.ProcessOptions) *interfaces.Result {
	c := &corpus{
		result:            &interfaces.Result{},
		articlesByFile:    map[string]*interfaces.Article{},
		transcriptsByFile: map[string]*interfaces.VideoTranscript{},
		sidecarsByFile:    map[string][]sidecar.Entry{},
		sidecarSeen:       map[string]bool{},
		tiers:             map[string]interfaces.ContentTier{},
		excluded:          map[string]bool{},
	}

	s.scanTiers(files, opts, c)
	s.parseAll(files, c)
	s.crossValidate(ctx, files, opts, c)

	s.logger.Info("process.done",
		"files", files.Len(),
		"diagnostics", len(c.result.Diagnostics),
		"errors", len(c.result.Errors()))
	return c.result
}

// scanTiers derives each markdown file's tier from a cheap front matter
// pass, and marks the files excluded by the wip filter. A sidecar follows
// its paired transcript. Excluded files keep their tier entry so references
// into them are still tier-checked.
func (s *Service) scanTiers(files *interfaces.FileSet, opts interfaces.ProcessOptions, c *corpus) {
	for _, path := range files.Paths() {
		if !strings.HasSuffix(path, ".md") {
			continue
		}
		tier := interfaces.TierProduction
		if raw, ok := files.Get(path); ok {
			if doc, err := frontmatter.Parse(raw); err == nil {
				tier = check.TierFromTags(doc.Tags)
			}
		}
		c.tiers[path] = tier
		if !opts.IncludeWip && tier != interfaces.TierProduction {
			c.excluded[path] = true
			c.excluded[sidecarPath(path)] = true
		}
	}
}

func (s *Service) parseAll(files *interfaces.FileSet, c *corpus) {
	for _, path := range files.Paths() {
		raw, _ := files.Get(path)
		kind, suggestion := route(path)

		if suggestion != "" {
			c.result.Diagnostics = append(c.result.Diagnostics, interfaces.Diagnostic{
				File:       path,
				Message:    "Unrecognized directory '" + firstSegment(path) + "'",
				Suggestion: "Did you mean '" + suggestion + "/'?",
				Severity:   interfaces.SeverityWarning,
				Category:   interfaces.CategoryStructure,
			})
			continue
		}
		if kind == kindNone || c.excluded[path] {
			continue
		}

		logging.WithFileContext(s.logger, path, string(kind), "parse").Debug("process.file")

		ctx := assemble.Context{Files: files, Logger: s.assembleLogger}
		switch kind {
		case kindModule:
			module, diags := assemble.Module(ctx, path, raw)
			c.result.Diagnostics = append(c.result.Diagnostics, diags...)
			if module != nil {
				c.result.Modules = append(c.result.Modules, module)
				c.refs = append(c.refs, moduleRefs(module)...)
			}
		case kindLens:
			lens, diags := assemble.Lens(ctx, path, raw)
			c.result.Diagnostics = append(c.result.Diagnostics, diags...)
			if lens != nil {
				c.result.Lenses = append(c.result.Lenses, lens)
				c.refs = append(c.refs, lensRefs(lens)...)
			}
		case kindOutcome:
			outcome, diags := assemble.Outcome(ctx, path, raw)
			c.result.Diagnostics = append(c.result.Diagnostics, diags...)
			if outcome != nil {
				c.result.Outcomes = append(c.result.Outcomes, outcome)
				c.refs = append(c.refs, outcomeRefs(outcome)...)
			}
		case kindArticle:
			article, diags := assemble.Article(ctx, path, raw)
			c.result.Diagnostics = append(c.result.Diagnostics, diags...)
			if article != nil {
				c.result.Articles = append(c.result.Articles, article)
				c.articlesByFile[path] = article
			}
		case kindTranscript:
			transcript, diags := assemble.Transcript(ctx, path, raw)
			c.result.Diagnostics = append(c.result.Diagnostics, diags...)
			if transcript != nil {
				c.result.Transcripts = append(c.result.Transcripts, transcript)
				c.transcriptsByFile[path] = transcript
			}
		case kindSidecar:
			entries, diags := sidecar.Validate(path, raw)
			c.result.Diagnostics = append(c.result.Diagnostics, diags...)
			c.sidecarsByFile[path] = entries
			c.sidecarSeen[path] = true
		}
	}
}

// crossValidate runs the phase-two checks in a fixed order: sidecar pairing,
// duplicates, anchors, timestamps, tiers, then the optional URL pass.
func (s *Service) crossValidate(ctx context.Context, files *interfaces.FileSet, opts interfaces.ProcessOptions, c *corpus) {
	diags := &c.result.Diagnostics

	// Sidecar pairing. A transcript without offsets cannot support video
	// excerpts, so the missing side matters more than the orphaned one.
	for _, transcript := range c.result.Transcripts {
		if !files.Has(sidecarPath(transcript.File)) {
			*diags = append(*diags, interfaces.Diagnostic{
				File:       transcript.File,
				Message:    "Transcript has no timestamps file",
				Suggestion: "Add '" + sidecarPath(transcript.File) + "'",
				Severity:   interfaces.SeverityError,
				Category:   interfaces.CategoryTimestamps,
			})
		}
	}
	for _, path := range files.Paths() {
		if !c.sidecarSeen[path] {
			continue
		}
		if !files.Has(transcriptPath(path)) {
			*diags = append(*diags, interfaces.Diagnostic{
				File:       path,
				Message:    "Timestamps file has no transcript",
				Suggestion: "Add '" + transcriptPath(path) + "' or remove the file",
				Severity:   interfaces.SeverityWarning,
				Category:   interfaces.CategoryTimestamps,
			})
		}
	}

	// Duplicate identities, one namespace at a time.
	var moduleSlugs, lensIDs, outcomeIDs []check.SlugEntry
	for _, module := range c.result.Modules {
		moduleSlugs = append(moduleSlugs, check.SlugEntry{Slug: module.Slug, File: module.File})
	}
	for _, lens := range c.result.Lenses {
		lensIDs = append(lensIDs, check.SlugEntry{Slug: lens.ID, File: lens.File})
	}
	for _, outcome := range c.result.Outcomes {
		outcomeIDs = append(outcomeIDs, check.SlugEntry{Slug: outcome.ID, File: outcome.File})
	}
	*diags = append(*diags, check.Duplicates(moduleSlugs, "slug")...)
	*diags = append(*diags, check.Duplicates(lensIDs, "lens id")...)
	*diags = append(*diags, check.Duplicates(outcomeIDs, "outcome id")...)

	// Excerpt anchors, then excerpt timestamps.
	for _, lens := range c.result.Lenses {
		s.checkAnchors(lens, c)
	}
	for _, lens := range c.result.Lenses {
		s.checkTimestamps(lens, c)
	}

	*diags = append(*diags, check.TierViolations(c.refs, c.tiers)...)

	if opts.CheckURLs && s.urlChecker != nil {
		*diags = append(*diags, s.urlChecker.Run(ctx, collectURLChecks(c.result))...)
	}
}

func (s *Service) checkAnchors(lens *interfaces.Lens, c *corpus) {
	for _, section := range lens.Sections {
		if section.Type != interfaces.LensSectionArticle || section.Source == nil || section.Source.Target == "" {
			continue
		}
		article, ok := c.articlesByFile[section.Source.Target]
		if !ok {
			continue
		}
		for _, segment := range section.Segments {
			excerpt, ok := segment.(interfaces.ArticleExcerpt)
			if !ok {
				continue
			}
			c.result.Diagnostics = append(c.result.Diagnostics,
				resolve.Anchor(excerpt.From, article.File, article.Body, lens.File, excerpt.Line)...)
			c.result.Diagnostics = append(c.result.Diagnostics,
				resolve.Anchor(excerpt.To, article.File, article.Body, lens.File, excerpt.Line)...)
		}
	}
}

func (s *Service) checkTimestamps(lens *interfaces.Lens, c *corpus) {
	for _, section := range lens.Sections {
		if section.Type != interfaces.LensSectionVideo || section.Source == nil || section.Source.Target == "" {
			continue
		}
		sidecarFile := sidecarPath(section.Source.Target)
		starts, ok := c.sidecarsByFile[sidecarFile]
		if !ok {
			// Pairing errors already cover a missing or excluded sidecar.
			continue
		}
		offsets := sidecar.Starts(starts)
		for _, segment := range section.Segments {
			excerpt, ok := segment.(interfaces.VideoExcerpt)
			if !ok {
				continue
			}
			// The video start is always addressable; any other offset must
			// match a sidecar entry.
			if excerpt.From != "" && excerpt.From != "0:00" {
				c.result.Diagnostics = append(c.result.Diagnostics,
					resolve.Timestamp(excerpt.From, sidecarFile, lens.File, excerpt.Line, offsets)...)
			}
			if excerpt.To != "" {
				c.result.Diagnostics = append(c.result.Diagnostics,
					resolve.Timestamp(excerpt.To, sidecarFile, lens.File, excerpt.Line, offsets)...)
			}
		}
	}
}

func moduleRefs(module *interfaces.Module) []check.Reference {
	var refs []check.Reference
	for _, section := range module.Sections {
		if section.Source != nil && section.Source.Target != "" {
			refs = append(refs, check.Reference{
				Parent: module.File,
				Child:  section.Source.Target,
				Line:   section.Line,
			})
		}
	}
	return refs
}

func lensRefs(lens *interfaces.Lens) []check.Reference {
	var refs []check.Reference
	for _, section := range lens.Sections {
		if section.Source != nil && section.Source.Target != "" {
			refs = append(refs, check.Reference{
				Parent: lens.File,
				Child:  section.Source.Target,
				Line:   section.Line,
			})
		}
	}
	return refs
}

func outcomeRefs(outcome *interfaces.LearningOutcome) []check.Reference {
	var refs []check.Reference
	for _, link := range outcome.Lenses {
		if link.Target != "" {
			refs = append(refs, check.Reference{
				Parent: outcome.File,
				Child:  link.Target,
			})
		}
	}
	return refs
}

// collectURLChecks gathers the external URLs of the parsed corpus in entity
// order: article source URLs first, then transcript URLs.
func collectURLChecks(result *interfaces.Result) []urlcheck.Check {
	var checks []urlcheck.Check
	for _, article := range result.Articles {
		if article.SourceURL != "" {
			checks = append(checks, urlcheck.Check{
				URL:   article.SourceURL,
				File:  article.File,
				Line:  2,
				Label: "source_url",
			})
		}
	}
	for _, transcript := range result.Transcripts {
		if transcript.URL != "" {
			checks = append(checks, urlcheck.Check{
				URL:   transcript.URL,
				File:  transcript.File,
				Line:  2,
				Label: "url",
			})
		}
	}
	return checks
}

const sidecarSuffix = ".timestamps.json"

func sidecarPath(transcriptFile string) string {
	return strings.TrimSuffix(transcriptFile, ".md") + sidecarSuffix
}

func transcriptPath(sidecarFile string) string {
	return strings.TrimSuffix(sidecarFile, sidecarSuffix) + ".md"
}
