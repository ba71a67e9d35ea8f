package tenk

import (
	"regexp"
	"strings"
)

// This file removes the typographic noise that 10-K texts carry over from
// their paginated form: repeated "PART II" / "ITEM 7." headers, bare page
// numbers, "| 2023 Form 10-K |" footers and <PAGE> markers.

var noiseLines = []*regexp.Regexp{
	// A "PART n" or "ITEM n" label alone on its line, optionally followed by
	// punctuation and the section title (letters only, so a real sentence
	// with digits or a final period survives).
	regexp.MustCompile(`(?i)^[ \t]*(part|item)[ \t]*[\divxl]+[a-z]?[ \t]*[.,;:\-_]*[ \t]*[a-z ,&'()\-]*[ \t]*$`),
	// A bare page number.
	regexp.MustCompile(`^[ \t]*\d+[ \t]*$`),
	// "Apple Inc. | 2023 Form 10-K | 12" style footers.
	regexp.MustCompile(`(?i)^.*\|[ \t]*\d+[ \t]*form 10-k[ \t]*\|.*$`),
	// Page break markers from older EDGAR text renditions.
	regexp.MustCompile(`(?i)^.*<page>.*$`),
}

// Sanitize strips headers, footers and page-number noise from a span of
// filing text, line by line, and drops the blank lines surrounding the real
// content (a located span ends right before the next marker's line, so it
// always carries a dangling newline). Blank lines inside the content are
// preserved. Sanitize is pure and idempotent; an empty input yields an
// empty output.
func Sanitize(text string) string {
	if text == "" {
		return ""
	}
	lines := strings.Split(text, "\n")
	kept := make([]string, 0, len(lines))
	for _, line := range lines {
		if isNoise(line) {
			continue
		}
		kept = append(kept, line)
	}
	// Drop leading and trailing blank lines.
	for len(kept) > 0 && strings.TrimSpace(kept[0]) == "" {
		kept = kept[1:]
	}
	for len(kept) > 0 && strings.TrimSpace(kept[len(kept)-1]) == "" {
		kept = kept[:len(kept)-1]
	}
	return strings.Join(kept, "\n")
}

func isNoise(line string) bool {
	l := strings.TrimSuffix(line, "\r")
	for _, re := range noiseLines {
		if re.MatchString(l) {
			return true
		}
	}
	return false
}
