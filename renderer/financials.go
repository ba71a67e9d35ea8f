// Package renderer renders extraction results to markdown for the terminal.
// It only consumes plain data from the tenk package; no extraction logic
// lives here.
package renderer

import (
	"fmt"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/etnz/tenk"
)

// Financials renders a per-year financials table, one row per extracted
// year, one column per requested item (in request order). Values the oracle
// could not find render as N/A; years that were skipped or not sampled do
// not appear at all.
func Financials(ticker string, items tenk.ItemSet, fin tenk.CorpusFinancials) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s 10-K Financials\n\n", ticker)

	if len(fin) == 0 {
		b.WriteString("No financial data extracted.\n")
		return b.String()
	}

	b.WriteString("| Year |")
	for _, item := range items {
		fmt.Fprintf(&b, " %s |", item)
	}
	b.WriteString("\n|---|")
	b.WriteString(strings.Repeat("---:|", len(items)))
	b.WriteString("\n")

	keys := items.Keys()
	for _, year := range fin.Years() {
		fmt.Fprintf(&b, "| %d |", year)
		for _, key := range keys {
			if v, ok := fin[year][key]; ok && v != nil {
				fmt.Fprintf(&b, " %s |", usd(*v))
			} else {
				b.WriteString(" N/A |")
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}

// Sections renders an overview of a corpus: one row per filing year with
// the size of each located section, so a missing section is easy to spot.
func Sections(corpus *tenk.Corpus) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s 10-K Filings\n\n", corpus.Ticker())
	b.WriteString("| Year | business | risk | mda | financials | full text |\n")
	b.WriteString("|---|---:|---:|---:|---:|---:|\n")
	for _, year := range corpus.Years() {
		f, _ := corpus.Get(year)
		fmt.Fprintf(&b, "| %d | %s | %s | %s | %s | %s |\n",
			year, chars(f.Business), chars(f.Risk), chars(f.MDA), chars(f.Financials), chars(f.FullText))
	}
	return b.String()
}

// usd formats a plain dollar amount, e.g. 420000000000 as "$420,000,000,000.00".
func usd(v int64) string {
	return money.New(v*100, money.USD).Display()
}

// chars shows a section size, or a warning when the locator found nothing.
func chars(section string) string {
	if section == "" {
		return "not found"
	}
	return fmt.Sprintf("%d chars", len(section))
}
