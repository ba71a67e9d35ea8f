package cmd

import (
	"context"
	"flag"
	"time"

	"github.com/etnz/tenk"
	"github.com/etnz/tenk/edgar"
	"github.com/etnz/tenk/renderer"
	"github.com/google/subcommands"
)

// fetchCmd holds the flags for the 'fetch' subcommand.
type fetchCmd struct {
	after  string
	before string
	widest bool
}

func (*fetchCmd) Name() string     { return "fetch" }
func (*fetchCmd) Synopsis() string { return "download and section the 10-K filings of a ticker" }
func (*fetchCmd) Usage() string {
	return `tenk fetch [-after <date>] [-before <date>] [-widest] <ticker>

  Downloads the 10-K filings of a company from SEC EDGAR, splits each into
  its main sections, and caches the result. Subsequent commands on the same
  ticker and date range work entirely offline.
`
}

func (c *fetchCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.after, "after", "1995-01-01", "Earliest filing date to download (YYYY-MM-DD)")
	f.StringVar(&c.before, "before", time.Now().Format("2006-01-02"), "Latest filing date to download (YYYY-MM-DD)")
	f.BoolVar(&c.widest, "widest", false, "Use the historical widest-range section selection")
}

func (c *fetchCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		return errorf("Usage: %s", c.Usage())
	}
	ticker := f.Arg(0)

	id, err := identity()
	if err != nil {
		return errorf("Error: %v", err)
	}

	loc := tenk.Locator{}
	if c.widest {
		loc.Strategy = tenk.SelectWidest
	}

	corpus, err := edgar.NewSource(id).Fetch(ticker, c.after, c.before, loc, openCache())
	if err != nil {
		return errorf("Error fetching %s filings: %v", ticker, err)
	}

	printMarkdown(renderer.Sections(corpus))
	return subcommands.ExitSuccess
}
