package tenk

import (
	"context"
	"fmt"
	"log"
)

// Extractor drives per-year financial extraction across a filing corpus.
// It samples the corpus years with a stride to bound the number of oracle
// calls, runs the model client on each sampled year's financials section,
// and delegates persistence to an explicit cache handle.
type Extractor struct {
	Model *ModelClient
	Cache *Cache
	// Stride selects every Nth year starting from the earliest. Zero means
	// the default of 2, the compromise between temporal resolution and API
	// quota the tool was built around; 1 extracts every year.
	Stride int
}

// Run extracts the requested items from the corpus, one oracle call per
// sampled year, in ascending chronological order.
//
// With useCache, a previously computed result for the same item set (in any
// order) is returned without any oracle call, and a fresh result is
// persisted before returning. A year whose extraction fails is logged and
// left out of the result; only cache persistence failures abort the run.
func (e *Extractor) Run(ctx context.Context, corpus *Corpus, items ItemSet, useCache bool) (CorpusFinancials, error) {
	if e.Cache == nil {
		return nil, fmt.Errorf("extractor has no cache handle")
	}

	store, err := e.Cache.Load(corpus.Ticker())
	if err != nil {
		return nil, err
	}
	if useCache {
		if cached, ok := store.Lookup(items.Fingerprint()); ok {
			log.Printf("cache hit for %s (%d items, %d years)", corpus.Ticker(), len(items), len(cached))
			return cached, nil
		}
	}

	result := make(CorpusFinancials)
	for _, year := range e.sample(corpus.Years()) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		filing, _ := corpus.Get(year)
		fin, err := e.Model.Extract(ctx, filing.Financials, items)
		if err != nil {
			// A single bad year must never abort the whole run.
			log.Printf("skipping %s %d: %v", corpus.Ticker(), year, err)
			continue
		}
		result[year] = fin
	}

	// Persist even a sparse result: a later cache hit will not retry the
	// skipped years, which is the accepted cost of never re-spending calls.
	if err := e.Cache.Store(store, items, result); err != nil {
		return nil, err
	}
	return result, nil
}

// sample returns every stride-th year starting from the earliest.
// Years come in ascending, so failures are reported in that order too.
func (e *Extractor) sample(years []int) []int {
	stride := e.Stride
	if stride <= 0 {
		stride = 2
	}
	var sampled []int
	for i := 0; i < len(years); i += stride {
		sampled = append(sampled, years[i])
	}
	return sampled
}
