// Package resolve locates excerpt anchors inside referenced articles and
// excerpt timestamps inside transcript sidecar files.
package resolve

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/coursekit/courselint/pkg/interfaces"
)

// timestampEpsilon absorbs millisecond rounding when comparing parsed
// timestamps against sidecar offsets.
const timestampEpsilon = 0.001

var (
	shortTimestampRe = regexp.MustCompile(`^(\d+):([0-5]?\d)(\.\d{1,3})?$`)
	longTimestampRe  = regexp.MustCompile(`^(\d+):([0-5]?\d):([0-5]?\d)(\.\d{1,3})?$`)
)

// ParseTimestamp converts an `M:SS[.ms]` or `H:MM:SS[.ms]` string into
// seconds.
func ParseTimestamp(value string) (float64, error) {
	value = strings.TrimSpace(value)

	if match := longTimestampRe.FindStringSubmatch(value); match != nil {
		hours, _ := strconv.Atoi(match[1])
		minutes, _ := strconv.Atoi(match[2])
		seconds, _ := strconv.Atoi(match[3])
		return float64(hours*3600+minutes*60+seconds) + fraction(match[4]), nil
	}
	if match := shortTimestampRe.FindStringSubmatch(value); match != nil {
		minutes, _ := strconv.Atoi(match[1])
		seconds, _ := strconv.Atoi(match[2])
		return float64(minutes*60+seconds) + fraction(match[3]), nil
	}

	return 0, fmt.Errorf("invalid timestamp %q", value)
}

func fraction(part string) float64 {
	if part == "" {
		return 0
	}
	f, err := strconv.ParseFloat("0"+part, 64)
	if err != nil {
		return 0
	}
	return f
}

// Anchor checks that anchor occurs as a literal text anchor inside the
// referenced article body. A miss is one error naming the anchor and the
// article file, attributed to the referencing lens file.
func Anchor(anchor, articleFile, articleBody, lensFile string, line int) []interfaces.Diagnostic {
	if anchor == "" || strings.Contains(articleBody, anchor) {
		return nil
	}
	return []interfaces.Diagnostic{{
		File:       lensFile,
		Line:       line,
		Message:    fmt.Sprintf("Anchor '%s' not found in '%s'", anchor, articleFile),
		Suggestion: "Copy the anchor text verbatim from the article",
		Severity:   interfaces.SeverityError,
		Category:   interfaces.CategoryReference,
	}}
}

// Timestamp checks that value parses and matches one of the offsets declared
// by the transcript's sidecar file. starts holds the sidecar offsets in
// seconds.
func Timestamp(value, sidecarFile, lensFile string, line int, starts []float64) []interfaces.Diagnostic {
	seconds, err := ParseTimestamp(value)
	if err != nil {
		return []interfaces.Diagnostic{{
			File:       lensFile,
			Line:       line,
			Message:    fmt.Sprintf("Invalid timestamp '%s'", value),
			Suggestion: "Use M:SS or H:MM:SS",
			Severity:   interfaces.SeverityError,
			Category:   interfaces.CategoryTimestamps,
		}}
	}

	for _, start := range starts {
		if math.Abs(start-seconds) < timestampEpsilon {
			return nil
		}
	}

	return []interfaces.Diagnostic{{
		File:       lensFile,
		Line:       line,
		Message:    fmt.Sprintf("Timestamp '%s' not found in '%s'", value, sidecarFile),
		Suggestion: "Use an offset that appears in the timestamps file",
		Severity:   interfaces.SeverityError,
		Category:   interfaces.CategoryTimestamps,
	}}
}
