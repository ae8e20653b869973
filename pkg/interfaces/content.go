package interfaces

// Severity classifies a diagnostic. The pipeline emits exactly two levels:
// errors mark content that is structurally broken or will misbehave for end
// users, warnings mark content that is suspicious but usable. Severity is
// advisory metadata for the caller; nothing in the pipeline blocks on it.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Diagnostic categories. Purely informational grouping for callers that want
// to filter or count findings by concern.
const (
	CategoryFrontMatter = "frontmatter"
	CategoryStructure   = "structure"
	CategoryReference   = "reference"
	CategoryFormat      = "format"
	CategoryTier        = "tier"
	CategoryTimestamps  = "timestamps"
	CategoryURL         = "url"
)

// Diagnostic is a single finding attributed to an input file. Diagnostics are
// immutable once produced: validators append independently and the pipeline
// never mutates or deduplicates them, so accumulation order is insertion
// order.
type Diagnostic struct {
	File       string   `json:"file"`
	Line       int      `json:"line,omitempty"`
	Message    string   `json:"message"`
	Suggestion string   `json:"suggestion,omitempty"`
	Severity   Severity `json:"severity"`
	Category   string   `json:"category,omitempty"`
}

// FilePair couples a virtual file path with its raw contents.
type FilePair struct {
	Path    string `json:"path"`
	Content string `json:"content"`
}

// FileSet is the sole external input to the pipeline: an insertion-ordered,
// read-only mapping from forward-slash virtual paths to raw file contents.
// Iteration order is the order paths were first added; re-adding a path
// replaces its contents without moving it.
type FileSet struct {
	paths    []string
	contents map[string]string
}

// NewFileSet returns an empty file set.
func NewFileSet() *FileSet {
	return &FileSet{contents: map[string]string{}}
}

// NewFileSetFromPairs builds a file set preserving the order of pairs.
func NewFileSetFromPairs(pairs []FilePair) *FileSet {
	fs := NewFileSet()
	for _, pair := range pairs {
		fs.Add(pair.Path, pair.Content)
	}
	return fs
}

// Add inserts or replaces the contents stored under path.
func (fs *FileSet) Add(path, content string) {
	if fs.contents == nil {
		fs.contents = map[string]string{}
	}
	if _, ok := fs.contents[path]; !ok {
		fs.paths = append(fs.paths, path)
	}
	fs.contents[path] = content
}

// Get returns the contents stored under path.
func (fs *FileSet) Get(path string) (string, bool) {
	if fs == nil {
		return "", false
	}
	content, ok := fs.contents[path]
	return content, ok
}

// Has reports whether path is a member of the set.
func (fs *FileSet) Has(path string) bool {
	_, ok := fs.Get(path)
	return ok
}

// Paths returns the member paths in insertion order. The returned slice is a
// copy; callers may mutate it freely.
func (fs *FileSet) Paths() []string {
	if fs == nil {
		return nil
	}
	return append([]string(nil), fs.paths...)
}

// Len returns the number of files in the set.
func (fs *FileSet) Len() int {
	if fs == nil {
		return 0
	}
	return len(fs.paths)
}

// ContentTier is a file's publication status, derived from its front matter
// tags. It governs which cross-reference diagnostics are fatal vs. skipped.
type ContentTier string

const (
	TierProduction ContentTier = "production"
	TierWIP        ContentTier = "wip"
	TierIgnored    ContentTier = "ignored"
)

// Wikilink is a parsed and (possibly) resolved cross-file reference token.
// Target is the file-set path the link resolved to, or empty when the target
// could not be located.
type Wikilink struct {
	Path    string `json:"path"`
	Display string `json:"display,omitempty"`
	Embed   bool   `json:"embed,omitempty"`
	Target  string `json:"target,omitempty"`
}

// ModuleSectionType enumerates the section kinds a course module may contain.
type ModuleSectionType string

const (
	ModuleSectionText    ModuleSectionType = "text"
	ModuleSectionArticle ModuleSectionType = "article"
	ModuleSectionVideo   ModuleSectionType = "video"
	ModuleSectionChat    ModuleSectionType = "chat"
)

// Module is a course module page: an ordered list of typed sections.
type Module struct {
	Slug     string          `json:"slug"`
	Title    string          `json:"title"`
	File     string          `json:"file"`
	Tags     []string        `json:"tags,omitempty"`
	Sections []ModuleSection `json:"sections"`
}

// ModuleSection is a single authored block inside a module page. Content is
// populated for text/chat sections, Source for article/video sections.
type ModuleSection struct {
	Type    ModuleSectionType `json:"type"`
	Title   string            `json:"title,omitempty"`
	Content string            `json:"content,omitempty"`
	Source  *Wikilink         `json:"source,omitempty"`
	Line    int               `json:"line"`
}

// LensSectionType enumerates the public section kinds of a lens. The
// authoring keywords `article` and `video` map onto the lens-prefixed types.
type LensSectionType string

const (
	LensSectionArticle LensSectionType = "lens-article"
	LensSectionVideo   LensSectionType = "lens-video"
	LensSectionPage    LensSectionType = "page"
)

// Lens is a reusable teaching unit composed of ordered sections, each holding
// an ordered sequence of segments.
type Lens struct {
	ID       string        `json:"id"`
	File     string        `json:"file"`
	Tags     []string      `json:"tags,omitempty"`
	Sections []LensSection `json:"sections"`
}

// LensSection groups segments under a framing (article, video, or free page).
// Source is set for article/video sections and points at the referenced file.
type LensSection struct {
	Type     LensSectionType `json:"type"`
	Title    string          `json:"title,omitempty"`
	Source   *Wikilink       `json:"source,omitempty"`
	Line     int             `json:"line"`
	Segments []Segment       `json:"segments"`
}

// SegmentKind discriminates the segment union.
type SegmentKind string

const (
	SegmentText           SegmentKind = "text"
	SegmentChat           SegmentKind = "chat"
	SegmentArticleExcerpt SegmentKind = "article-excerpt"
	SegmentVideoExcerpt   SegmentKind = "video-excerpt"
)

// Segment is the smallest authored unit inside a lens section. It is a closed
// union over text, chat, article-excerpt, and video-excerpt; conversion and
// rendering sites switch exhaustively on the concrete type.
type Segment interface {
	Kind() SegmentKind
	// Pos returns the 1-based source line of the segment header.
	Pos() int
	// IsOptional reports whether the author flagged the segment optional.
	IsOptional() bool
}

// TextSegment is a free-text teaching block.
type TextSegment struct {
	Content  string `json:"content"`
	Optional bool   `json:"optional,omitempty"`
	Line     int    `json:"line"`
}

func (s TextSegment) Kind() SegmentKind { return SegmentText }
func (s TextSegment) Pos() int          { return s.Line }
func (s TextSegment) IsOptional() bool  { return s.Optional }

// ChatSegment is a prompt for an interactive chat exercise.
type ChatSegment struct {
	Content  string `json:"content"`
	Optional bool   `json:"optional,omitempty"`
	Line     int    `json:"line"`
}

func (s ChatSegment) Kind() SegmentKind { return SegmentChat }
func (s ChatSegment) Pos() int          { return s.Line }
func (s ChatSegment) IsOptional() bool  { return s.Optional }

// ArticleExcerpt selects a region of the section's source article by literal
// text anchors. Both anchors empty means the whole article.
type ArticleExcerpt struct {
	From     string `json:"from,omitempty"`
	To       string `json:"to,omitempty"`
	Optional bool   `json:"optional,omitempty"`
	Line     int    `json:"line"`
}

func (s ArticleExcerpt) Kind() SegmentKind { return SegmentArticleExcerpt }
func (s ArticleExcerpt) Pos() int          { return s.Line }
func (s ArticleExcerpt) IsOptional() bool  { return s.Optional }

// VideoExcerpt selects a time range of the section's source video. From
// defaults to "0:00" when the author omits it.
type VideoExcerpt struct {
	From     string `json:"from"`
	To       string `json:"to"`
	Optional bool   `json:"optional,omitempty"`
	Line     int    `json:"line"`
}

func (s VideoExcerpt) Kind() SegmentKind { return SegmentVideoExcerpt }
func (s VideoExcerpt) Pos() int          { return s.Line }
func (s VideoExcerpt) IsOptional() bool  { return s.Optional }

// Article is an imported reading with its Markdown body retained for anchor
// resolution.
type Article struct {
	Title     string   `json:"title"`
	Author    string   `json:"author"`
	SourceURL string   `json:"source_url"`
	File      string   `json:"file"`
	Tags      []string `json:"tags,omitempty"`
	Body      string   `json:"body"`
	BodyLine  int      `json:"body_line"`
}

// VideoTranscript is the text transcript of a video, paired with a
// `.timestamps.json` sidecar carrying per-line time offsets.
type VideoTranscript struct {
	Title   string   `json:"title"`
	Channel string   `json:"channel"`
	URL     string   `json:"url"`
	File    string   `json:"file"`
	Tags    []string `json:"tags,omitempty"`
	Body    string   `json:"body"`
}

// LearningOutcome names a competency and the ordered lenses that teach it.
type LearningOutcome struct {
	ID     string     `json:"id"`
	File   string     `json:"file"`
	Tags   []string   `json:"tags,omitempty"`
	Lenses []Wikilink `json:"lenses"`
}

// ProcessOptions tune a single ProcessContent invocation.
type ProcessOptions struct {
	// IncludeWip includes files tagged wip/ignore in processing. When false
	// (the default) those files are excluded entirely, not just from
	// cross-reference checks.
	IncludeWip bool
	// CheckURLs enables the network-bound URL reachability pass.
	CheckURLs bool
}

// Result is the single aggregate output of one ProcessContent call. There is
// no partial or streaming output; Diagnostics holds errors and warnings in
// the order they were produced.
type Result struct {
	Diagnostics []Diagnostic       `json:"diagnostics"`
	Modules     []*Module          `json:"modules"`
	Lenses      []*Lens            `json:"lenses"`
	Articles    []*Article         `json:"articles"`
	Transcripts []*VideoTranscript `json:"transcripts"`
	Outcomes    []*LearningOutcome `json:"outcomes"`
}

// Errors returns only the error-severity diagnostics.
func (r *Result) Errors() []Diagnostic {
	return r.filter(SeverityError)
}

// Warnings returns only the warning-severity diagnostics.
func (r *Result) Warnings() []Diagnostic {
	return r.filter(SeverityWarning)
}

func (r *Result) filter(severity Severity) []Diagnostic {
	if r == nil {
		return nil
	}
	out := []Diagnostic{}
	for _, diag := range r.Diagnostics {
		if diag.Severity == severity {
			out = append(out, diag)
		}
	}
	return out
}
