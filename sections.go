package tenk

import (
	"regexp"
)

// This file locates the four sections of interest inside a raw 10-K text.
// Each section is delimited by a pair of "Item n" marker patterns. The same
// marker usually occurs several times in a filing (table of contents,
// cross-references, the section header itself), so location is a heuristic
// over all candidate (start, end) pairings, not an exact parse.

// Marker patterns, tolerant to the punctuation and table pipes EDGAR text
// renditions put between the item number and its title.
var (
	reBusinessStart = regexp.MustCompile(`(?i)item\s*1[.;:\-_]*\s*\|*\s*Bus`)
	reBusinessEnd   = regexp.MustCompile(`(?i)item\s*1a[.;:\-_]*\s*\|*\s*Risk|item\s*2[.,;:\-_]*\s*\|*\s*(Desc|Prop)`)
	reRiskStart     = regexp.MustCompile(`(?i)item\s*1a[.;:\-_]\s*\|*\s*Risk`)
	reRiskEnd       = regexp.MustCompile(`(?i)item\s*2[.,;:\-_]*\s*\|*\s*(Desc|Prop)`)
	reMDAStart      = regexp.MustCompile(`(?i)item\s*7[.;:\-_]*\s*\|*\s*Man`)
	reMDAEnd        = regexp.MustCompile(`(?i)item\s*8[.,;:\-_]*\s*\|*\s*(Fin|Con)`)
	reFinStart      = regexp.MustCompile(`(?i)item\s*8[.,;:\-_]*\s*\|*\s*(Fin|Con)`)
	reFinEnd        = regexp.MustCompile(`(?i)item\s*9[.;:\-_]*\s*\|*\s*Chan`)
)

// Strategy selects the winning candidate range among all valid
// (start, end) marker pairings of a section.
type Strategy int

const (
	// SelectNearest picks the tightest pairing, the candidate whose start is
	// nearest to its end. A table of contents repeating "Item 1" before the
	// real section cannot drag the range over half the document this way.
	SelectNearest Strategy = iota
	// SelectWidest picks the largest candidate range. This reproduces the
	// historical behavior; it assumes the true section is the widest
	// plausible interval between a start and a later end marker, and can
	// select an overly wide range on filings with repeated markers.
	SelectWidest
)

// Locator finds the named sections of a 10-K text.
// The zero value locates with the SelectNearest strategy.
type Locator struct {
	Strategy Strategy
}

// Locate splits a full filing text into its named sections and sanitizes
// each of them. A section whose markers cannot be found is left empty.
// The raw input is retained verbatim in the FullText field.
func (l Locator) Locate(fullText string) Filing {
	return Filing{
		Business:   Sanitize(l.section(fullText, starts(reBusinessStart, fullText), reBusinessEnd)),
		Risk:       Sanitize(l.section(fullText, riskStarts(fullText), reRiskEnd)),
		MDA:        Sanitize(l.section(fullText, starts(reMDAStart, fullText), reMDAEnd)),
		Financials: Sanitize(l.section(fullText, starts(reFinStart, fullText), reFinEnd)),
		FullText:   fullText,
	}
}

// starts returns the offsets of all matches of a start marker.
func starts(re *regexp.Regexp, text string) []int {
	var offsets []int
	for _, m := range re.FindAllStringIndex(text, -1) {
		offsets = append(offsets, m[0])
	}
	return offsets
}

// riskStarts returns the offsets of the "Item 1A ... Risk" marker, skipping
// occurrences preceded by a comma and a space: those are cross-references
// like "see Item 1A, Risk Factors", not the section header.
func riskStarts(text string) []int {
	var offsets []int
	for _, m := range reRiskStart.FindAllStringIndex(text, -1) {
		s := m[0]
		if s >= 2 && text[s-2] == ',' && isSpace(text[s-1]) {
			continue
		}
		offsets = append(offsets, s)
	}
	return offsets
}

func isSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\r', '\f', '\v':
		return true
	}
	return false
}

// section extracts the span of one section given the start offsets and the
// end marker. Each start is paired with the first end offset after it; the
// locator's strategy then selects the winning pair. First one wins ties.
func (l Locator) section(text string, starts []int, end *regexp.Regexp) string {
	var ends []int
	for _, m := range end.FindAllStringIndex(text, -1) {
		ends = append(ends, m[0])
	}
	if len(starts) == 0 || len(ends) == 0 {
		return ""
	}

	type span struct{ s, e int }
	var candidates []span
	for _, s := range starts {
		for _, e := range ends {
			if e > s {
				candidates = append(candidates, span{s, e})
				break
			}
		}
	}
	if len(candidates) == 0 {
		return ""
	}

	best := candidates[0]
	for _, c := range candidates[1:] {
		switch l.Strategy {
		case SelectWidest:
			if c.e-c.s > best.e-best.s {
				best = c
			}
		default:
			if c.e-c.s < best.e-best.s {
				best = c
			}
		}
	}
	return text[best.s:best.e]
}
