package cmd

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/etnz/tenk"
	"github.com/etnz/tenk/renderer"
	"github.com/google/subcommands"
)

// sectionsCmd holds the flags for the 'sections' subcommand.
type sectionsCmd struct {
	after   string
	before  string
	year    int
	section string
}

func (*sectionsCmd) Name() string     { return "sections" }
func (*sectionsCmd) Synopsis() string { return "show the located sections of fetched filings" }
func (*sectionsCmd) Usage() string {
	return `tenk sections [-year <year> [-section <name>]] <ticker>

  Shows an overview of the sections located in the fetched filings of a
  ticker. With -year, shows that year only; with -section too, prints the
  raw section text (business, risk, mda, financials or full_text).
  Requires a prior 'tenk fetch' for the same ticker and date range.
`
}

func (c *sectionsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.after, "after", "1995-01-01", "Earliest filing date of the fetched range (YYYY-MM-DD)")
	f.StringVar(&c.before, "before", time.Now().Format("2006-01-02"), "Latest filing date of the fetched range (YYYY-MM-DD)")
	f.IntVar(&c.year, "year", 0, "Filing year to inspect")
	f.StringVar(&c.section, "section", "", "Section to print in full")
}

func (c *sectionsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		return errorf("Usage: %s", c.Usage())
	}
	ticker := f.Arg(0)

	corpus, err := openCache().LoadCorpus(ticker, c.after, c.before)
	if err != nil {
		return errorf("Error: no fetched filings for %s from %s to %s (run 'tenk fetch %s' first): %v",
			ticker, c.after, c.before, ticker, err)
	}

	if c.year == 0 {
		printMarkdown(renderer.Sections(corpus))
		return subcommands.ExitSuccess
	}

	filing, ok := corpus.Get(c.year)
	if !ok {
		return errorf("Error: no %s filing for year %d (have %v)", ticker, c.year, corpus.Years())
	}

	if c.section == "" {
		single := corpusOf(ticker, c.year, filing)
		printMarkdown(renderer.Sections(single))
		return subcommands.ExitSuccess
	}

	text, err := filing.Section(c.section)
	if err != nil {
		return errorf("Error: %v", err)
	}
	if text == "" {
		return errorf("Section %q was not found in the %d filing.", c.section, c.year)
	}
	fmt.Println(text)
	return subcommands.ExitSuccess
}

// corpusOf wraps a single filing year for the overview renderer.
func corpusOf(ticker string, year int, f tenk.Filing) *tenk.Corpus {
	c := tenk.NewCorpus(ticker)
	_ = c.Add(year, f)
	return c
}
