package processor

import (
	"strings"

	"github.com/coursekit/courselint/internal/check"
)

// kind identifies which parser owns a routed file.
type kind string

const (
	kindNone       kind = ""
	kindModule     kind = "module"
	kindLens       kind = "lens"
	kindOutcome    kind = "outcome"
	kindArticle    kind = "article"
	kindTranscript kind = "transcript"
	kindSidecar    kind = "sidecar"
)

// canonicalDirs maps the recognized top-level directory names to their
// content kinds. Names are exact, case included.
var canonicalDirs = []struct {
	name string
	kind kind
}{
	{"modules", kindModule},
	{"Lenses", kindLens},
	{"Learning Outcomes", kindOutcome},
	{"articles", kindArticle},
	{"video_transcripts", kindTranscript},
}

// directoryAliases are legacy directory names that near-match a canonical
// name despite a large edit distance.
var directoryAliases = map[string]string{
	"course":  "modules",
	"courses": "modules",
}

// route classifies path by its first segment. The second return value is a
// non-empty canonical directory name when the segment near-misses one;
// genuinely unrelated paths return (kindNone, "") and are skipped silently.
func route(path string) (kind, string) {
	dir := firstSegment(path)
	if dir == "" {
		return kindNone, ""
	}

	for _, canonical := range canonicalDirs {
		if dir != canonical.name {
			continue
		}
		if canonical.kind == kindTranscript {
			switch {
			case strings.HasSuffix(path, sidecarSuffix):
				return kindSidecar, ""
			case strings.HasSuffix(path, ".md"):
				return kindTranscript, ""
			default:
				return kindNone, ""
			}
		}
		return canonical.kind, ""
	}

	if suggestion, ok := nearMiss(dir); ok {
		return kindNone, suggestion
	}
	return kindNone, ""
}

// nearMiss reports whether dir plausibly meant one of the canonical
// directories: a case mismatch, a singular/plural slip, a short edit
// distance, or a known legacy alias.
func nearMiss(dir string) (string, bool) {
	lower := strings.ToLower(dir)
	if alias, ok := directoryAliases[lower]; ok {
		return alias, true
	}

	for _, canonical := range canonicalDirs {
		canonLower := strings.ToLower(canonical.name)
		switch {
		case lower == canonLower:
			return canonical.name, true
		case lower+"s" == canonLower || lower == canonLower+"s":
			return canonical.name, true
		case check.Distance(lower, canonLower) <= 2:
			return canonical.name, true
		}
	}
	return "", false
}

// firstSegment returns the part of path before the first slash, or "" for
// files at the root.
func firstSegment(path string) string {
	if idx := strings.IndexByte(path, '/'); idx >= 0 {
		return path[:idx]
	}
	return ""
}
