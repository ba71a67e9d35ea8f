package cmd

import (
	"context"
	"flag"
	"strings"
	"time"

	"github.com/etnz/tenk"
	"github.com/etnz/tenk/edgar"
	"github.com/etnz/tenk/gemini"
	"github.com/etnz/tenk/renderer"
	"github.com/google/subcommands"
)

// extractCmd holds the flags for the 'extract' subcommand.
type extractCmd struct {
	after   string
	before  string
	items   string
	model   string
	stride  int
	noCache bool
	widest  bool
}

func (*extractCmd) Name() string     { return "extract" }
func (*extractCmd) Synopsis() string { return "extract financial items from the filings of a ticker" }
func (*extractCmd) Usage() string {
	return `tenk extract [-items <list>] [-stride n] [-no-cache] <ticker>

  Extracts financial line items from the financials section of each sampled
  filing year, using a Gemini model, and displays them as a table. Results
  are cached per item set: re-running the same query costs no model call.
  Requires GEMINI_API_KEY.

Usage Examples:
# Extract the default items for Apple.
$ tenk extract AAPL

# Extract custom items, every year.
$ tenk extract -items "net income, total revenue" -stride 1 AAPL
`
}

func (c *extractCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.after, "after", "1995-01-01", "Earliest filing date (YYYY-MM-DD)")
	f.StringVar(&c.before, "before", time.Now().Format("2006-01-02"), "Latest filing date (YYYY-MM-DD)")
	f.StringVar(&c.items, "items", strings.Join(tenk.DefaultItems, ", "), "Comma-separated financial items to extract")
	f.StringVar(&c.model, "model", gemini.DefaultModel, "Gemini model to use")
	f.IntVar(&c.stride, "stride", 2, "Sample every nth filing year (1 = every year)")
	f.BoolVar(&c.noCache, "no-cache", false, "Query the model even for a cached item set")
	f.BoolVar(&c.widest, "widest", false, "Use the historical widest-range section selection")
}

func (c *extractCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		return errorf("Usage: %s", c.Usage())
	}
	ticker := f.Arg(0)

	items := parseItems(c.items)
	if len(items) == 0 {
		return errorf("Error: no items to extract")
	}

	id, err := identity()
	if err != nil {
		return errorf("Error: %v", err)
	}
	loc := tenk.Locator{}
	if c.widest {
		loc.Strategy = tenk.SelectWidest
	}
	cache := openCache()

	corpus, err := edgar.NewSource(id).Fetch(ticker, c.after, c.before, loc, cache)
	if err != nil {
		return errorf("Error fetching %s filings: %v", ticker, err)
	}

	gen, err := gemini.New(ctx, c.model)
	if err != nil {
		return errorf("Error: %v", err)
	}

	extractor := tenk.Extractor{
		Model:  tenk.NewModelClient(gen, tenk.DefaultRetryPolicy),
		Cache:  cache,
		Stride: c.stride,
	}
	financials, err := extractor.Run(ctx, corpus, items, !c.noCache)
	if err != nil {
		return errorf("Error extracting %s financials: %v", ticker, err)
	}

	printMarkdown(renderer.Financials(ticker, items, financials))
	return subcommands.ExitSuccess
}

// parseItems splits a comma-separated item list, dropping empty entries.
func parseItems(s string) tenk.ItemSet {
	var items tenk.ItemSet
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
