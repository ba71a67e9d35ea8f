package edgar

import (
	"html"
	"regexp"
	"strings"
)

// Modern 10-K primary documents are HTML. The section locator only needs
// the text with line breaks roughly where the document breaks, so a full
// HTML parser is overkill: drop the invisible elements, turn block closings
// into newlines, strip the remaining tags and unescape entities.

var (
	reInvisible = regexp.MustCompile(`(?is)<(script|style|head)[^>]*>.*?</(script|style|head)>`)
	reBlockEnd  = regexp.MustCompile(`(?i)</(p|div|tr|table|h[1-6]|li)\s*>|<(br|hr)[^>]*>`)
	reTag       = regexp.MustCompile(`(?s)<[^>]*>`)
	reBlanks    = regexp.MustCompile(`\n{3,}`)
)

// htmlText converts a filing document to plain text. Plain-text filings
// (pre-2001 EDGAR) pass through untouched but for entity unescaping.
func htmlText(src string) string {
	text := reInvisible.ReplaceAllString(src, "")
	text = reBlockEnd.ReplaceAllString(text, "\n")
	text = reTag.ReplaceAllString(text, " ")
	text = html.UnescapeString(text)
	// Non-breaking spaces render as odd runes once unescaped.
	text = strings.ReplaceAll(text, " ", " ")
	text = reBlanks.ReplaceAllString(text, "\n\n")
	return text
}
