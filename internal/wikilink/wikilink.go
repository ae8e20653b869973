// Package wikilink parses Obsidian-style `[[path|display]]` reference tokens
// and resolves them against the virtual file set.
package wikilink

import (
	"path"
	"regexp"
	"strings"

	"github.com/coursekit/courselint/pkg/interfaces"
)

var linkRe = regexp.MustCompile(`(!?)\[\[([^\[\]|]+)(?:\|([^\[\]]*))?\]\]`)

// Link is a parsed wikilink token.
type Link struct {
	Path    string
	Display string
	Embed   bool
}

// Parse extracts the first wikilink token in s.
func Parse(s string) (Link, bool) {
	match := linkRe.FindStringSubmatch(s)
	if match == nil {
		return Link{}, false
	}
	return fromMatch(match), true
}

// ParseAll extracts every wikilink token in s, in source order.
func ParseAll(s string) []Link {
	matches := linkRe.FindAllStringSubmatch(s, -1)
	if len(matches) == 0 {
		return nil
	}
	links := make([]Link, 0, len(matches))
	for _, match := range matches {
		links = append(links, fromMatch(match))
	}
	return links
}

func fromMatch(match []string) Link {
	return Link{
		Path:    strings.TrimSpace(match[2]),
		Display: strings.TrimSpace(match[3]),
		Embed:   match[1] == "!",
	}
}

// ResolvePath normalizes a link path for lookup. Paths beginning with `./` or
// `../` resolve against the referencing file's directory; anything else is
// taken relative to the content root as written. Resolution is independent of
// whether a `.md` suffix is present.
func ResolvePath(linkPath, fromFile string) string {
	linkPath = strings.TrimSpace(linkPath)
	if strings.HasPrefix(linkPath, "./") || strings.HasPrefix(linkPath, "../") {
		return path.Join(path.Dir(fromFile), linkPath)
	}
	return path.Clean(linkPath)
}

// Resolve locates the link target inside files: exact path match first, then
// a `.md`-suffix fallback. The empty string reports an unresolved target.
func Resolve(link Link, fromFile string, files *interfaces.FileSet) string {
	resolved := ResolvePath(link.Path, fromFile)
	if files.Has(resolved) {
		return resolved
	}
	if withExt := resolved + ".md"; files.Has(withExt) {
		return withExt
	}
	return ""
}

// ToRef converts a parsed link plus its resolved target into the public
// Wikilink DTO.
func ToRef(link Link, target string) *interfaces.Wikilink {
	return &interfaces.Wikilink{
		Path:    link.Path,
		Display: link.Display,
		Embed:   link.Embed,
		Target:  target,
	}
}
