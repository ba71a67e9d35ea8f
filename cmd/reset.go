package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"
)

// cacheResetCmd holds the flags for the 'cache-reset' subcommand.
type cacheResetCmd struct{}

func (*cacheResetCmd) Name() string     { return "cache-reset" }
func (*cacheResetCmd) Synopsis() string { return "delete the cached extraction results of a ticker" }
func (*cacheResetCmd) Usage() string {
	return `tenk cache-reset <ticker>

  Deletes the cached extraction results of a ticker, so the next 'extract'
  queries the model again. Downloaded filings are kept.
`
}

func (*cacheResetCmd) SetFlags(_ *flag.FlagSet) {}

func (c *cacheResetCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		return errorf("Usage: %s", c.Usage())
	}
	ticker := f.Arg(0)

	if err := openCache().Reset(ticker); err != nil {
		return errorf("Error resetting %s cache: %v", ticker, err)
	}
	fmt.Printf("Cleared cached extraction results for %s.\n", ticker)
	return subcommands.ExitSuccess
}
