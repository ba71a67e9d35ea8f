package tenk

import (
	"crypto/sha1"
	"encoding/hex"
	"slices"
	"strings"
)

// ItemSet is an ordered list of human-readable financial item names, e.g.
// "net sales". The order matters for prompts and reports but never for
// identity: two sets with the same items in any order are the same query.
type ItemSet []string

// DefaultItems is the item set extracted when the user requests nothing
// specific.
var DefaultItems = ItemSet{"net sales", "gross margin", "total cost of operation"}

// Fingerprint returns a stable digest of the item set, identical across
// process runs and item orderings. It is the cache key for a query.
// Go's runtime map hash is seeded per process, so a cryptographic digest
// over the sorted, newline-joined names is used instead.
func (s ItemSet) Fingerprint() string {
	sorted := slices.Clone(s)
	slices.Sort(sorted)
	sum := sha1.Sum([]byte(strings.Join(sorted, "\n")))
	return hex.EncodeToString(sum[:])
}

// Keys returns the normalized key of every item, in request order.
func (s ItemSet) Keys() []string {
	keys := make([]string, len(s))
	for i, item := range s {
		keys[i] = Key(item)
	}
	return keys
}

// Key normalizes an item name into the JSON key the oracle is asked to use:
// lowercase, spaces replaced with underscores.
func Key(item string) string {
	return strings.ReplaceAll(strings.ToLower(item), " ", "_")
}

// YearFinancials maps a normalized item key to its value in plain dollars
// for one filing year. A nil value means the oracle could not find the item
// in the document; a key that was never requested is simply absent.
type YearFinancials map[string]*int64

// CorpusFinancials maps sampled filing years to their extracted values.
// Years that were not sampled, or whose extraction failed, are absent.
type CorpusFinancials map[int]YearFinancials

// Years returns the years present, in ascending order.
func (c CorpusFinancials) Years() []int {
	years := make([]int, 0, len(c))
	for y := range c {
		years = append(years, y)
	}
	slices.Sort(years)
	return years
}
