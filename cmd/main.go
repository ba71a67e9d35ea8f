// Package cmd implements the CLI application to analyze 10-K filings.
package cmd

import (
	"flag"
	"fmt"
	"os"

	"github.com/etnz/tenk"
	"github.com/google/subcommands"
)

// Register the subcommands.
// A main package calls Register(), then Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&fetchCmd{}, "filings")
	c.Register(&sectionsCmd{}, "filings")
	c.Register(&extractCmd{}, "financials")
	c.Register(&cacheResetCmd{}, "cache")
	c.Register(&topicCmd{}, "documentation")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to
// use global variables.

const (
	envCacheDir = "TENK_CACHE_DIR"
	envIdentity = "TENK_IDENTITY"
)

var cacheDirFlag = flag.String("cache-dir", "", "Directory for downloaded filings and extraction results.\n If missing it will read the environment variable \""+envCacheDir+"\" and default to \".cache\".")
var identityFlag = flag.String("identity", "", "Identity sent to SEC EDGAR as User-Agent, e.g. \"Jane Doe jane@example.org\".\n If missing it will read the environment variable \""+envIdentity+"\". Required by the SEC fair-access policy.")

func cacheDir() string {
	if *cacheDirFlag != "" {
		return *cacheDirFlag
	}
	if dir := os.Getenv(envCacheDir); dir != "" {
		return dir
	}
	return ".cache"
}

// openCache returns the handle on the app cache directory.
func openCache() *tenk.Cache { return tenk.NewCache(cacheDir()) }

// identity returns the SEC identity, or an actionable error.
func identity() (string, error) {
	if *identityFlag == "" {
		*identityFlag = os.Getenv(envIdentity)
	}
	if *identityFlag == "" {
		return "", fmt.Errorf("SEC EDGAR requires an identity: set -identity or %s to \"Your Name email@example.org\"", envIdentity)
	}
	return *identityFlag, nil
}

// errorf reports a command error on stderr.
func errorf(format string, args ...any) subcommands.ExitStatus {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	return subcommands.ExitFailure
}
