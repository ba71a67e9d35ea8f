package tenk

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// This file persists extraction results so one oracle query is never paid
// for twice. Each ticker gets one JSONL store file in the cache directory:
// one line per query fingerprint, holding the items and the per-year values.
// A flush rewrites the whole store to a temporary file and renames it into
// place, so a crash mid-write never corrupts previously cached queries.

// CacheError reports a failure to read or write the durable cache store.
type CacheError struct {
	Path string
	Err  error
}

func (e *CacheError) Error() string {
	return fmt.Sprintf("cache store %s: %v", e.Path, e.Err)
}

func (e *CacheError) Unwrap() error { return e.Err }

// Cache is the handle on a cache directory. It owns the file naming and the
// durable reads and writes; the in-memory view of one ticker's entries lives
// in a Store.
type Cache struct {
	dir string
}

// NewCache returns a cache handle for the given directory. The directory is
// created on the first write, not here.
func NewCache(dir string) *Cache { return &Cache{dir: dir} }

// Dir returns the cache directory.
func (c *Cache) Dir() string { return c.dir }

// Store is the in-memory query store of one ticker, loaded from and flushed
// to its cache file. Entries are only ever added, never evicted; Reset on
// the cache is the one way to drop them.
type Store struct {
	ticker  string
	order   []string // fingerprints in insertion order, for stable files
	entries map[string]storeEntry
}

type storeEntry struct {
	items      ItemSet
	financials CorpusFinancials
}

// Ticker returns the ticker this store belongs to.
func (s *Store) Ticker() string { return s.ticker }

// Len returns the number of cached queries.
func (s *Store) Len() int { return len(s.entries) }

// Lookup returns the cached result for a query fingerprint.
func (s *Store) Lookup(fingerprint string) (CorpusFinancials, bool) {
	e, ok := s.entries[fingerprint]
	if !ok {
		return nil, false
	}
	return e.financials, true
}

func (s *Store) put(fingerprint string, items ItemSet, financials CorpusFinancials) {
	if _, ok := s.entries[fingerprint]; !ok {
		s.order = append(s.order, fingerprint)
	}
	s.entries[fingerprint] = storeEntry{items: items, financials: financials}
}

// jentry is the persisted form of one cached query.
type jentry struct {
	Query      string                 `json:"query"` // the fingerprint
	Items      []string               `json:"items"`
	Financials map[int]YearFinancials `json:"financials"`
}

// Load reads the store of a ticker from the cache directory. A ticker that
// was never cached yields an empty store.
func (c *Cache) Load(ticker string) (*Store, error) {
	store := &Store{ticker: ticker, entries: make(map[string]storeEntry)}

	path := c.storePath(ticker)
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return store, nil
	}
	if err != nil {
		return nil, &CacheError{Path: path, Err: err}
	}
	defer f.Close()

	dec := json.NewDecoder(f)
	for {
		var je jentry
		err := dec.Decode(&je)
		if errors.Is(err, io.EOF) {
			return store, nil
		}
		if err != nil {
			return nil, &CacheError{Path: path, Err: err}
		}
		store.put(je.Query, ItemSet(je.Items), CorpusFinancials(je.Financials))
	}
}

// Store records a query result in the store and persists the whole updated
// store durably before returning. Persistence is write-temp-then-rename:
// either the previous file or the complete new one is on disk at any point.
func (c *Cache) Store(store *Store, items ItemSet, financials CorpusFinancials) error {
	store.put(items.Fingerprint(), items, financials)
	return c.flush(store)
}

func (c *Cache) flush(store *Store) error {
	path := c.storePath(store.ticker)
	if err := os.MkdirAll(c.dir, 0755); err != nil {
		return &CacheError{Path: path, Err: err}
	}

	tmp, err := os.CreateTemp(c.dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return &CacheError{Path: path, Err: err}
	}
	defer os.Remove(tmp.Name())

	enc := json.NewEncoder(tmp)
	for _, fp := range store.order {
		e := store.entries[fp]
		je := jentry{Query: fp, Items: e.items, Financials: e.financials}
		if err := enc.Encode(je); err != nil {
			tmp.Close()
			return &CacheError{Path: path, Err: err}
		}
	}
	if err := tmp.Close(); err != nil {
		return &CacheError{Path: path, Err: err}
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return &CacheError{Path: path, Err: err}
	}
	return nil
}

// Reset deletes the persisted store of a ticker. Resetting a ticker that
// was never cached is not an error.
func (c *Cache) Reset(ticker string) error {
	path := c.storePath(ticker)
	err := os.Remove(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return &CacheError{Path: path, Err: err}
	}
	return nil
}

func (c *Cache) storePath(ticker string) string {
	return filepath.Join(c.dir, ticker+"_financials.jsonl")
}

// Corpus cache: downloaded and sectioned filings, keyed by ticker and the
// requested date range so narrowing or widening the range is a new download.

func (c *Cache) corpusPath(ticker, after, before string) string {
	return filepath.Join(c.dir, fmt.Sprintf("%s_%s:%s_10-K.jsonl", ticker, after, before))
}

// LoadCorpus reads a previously downloaded corpus for the ticker and date
// range. It returns an error wrapping fs.ErrNotExist when none is cached.
func (c *Cache) LoadCorpus(ticker, after, before string) (*Corpus, error) {
	path := c.corpusPath(ticker, after, before)
	f, err := os.Open(path)
	if err != nil {
		return nil, &CacheError{Path: path, Err: err}
	}
	defer f.Close()

	corpus, err := DecodeCorpus(f)
	if err != nil {
		return nil, &CacheError{Path: path, Err: err}
	}
	return corpus, nil
}

// StoreCorpus persists a downloaded corpus for the ticker and date range,
// with the same temp-then-rename guarantee as query stores.
func (c *Cache) StoreCorpus(corpus *Corpus, after, before string) error {
	path := c.corpusPath(corpus.Ticker(), after, before)
	if err := os.MkdirAll(c.dir, 0755); err != nil {
		return &CacheError{Path: path, Err: err}
	}

	tmp, err := os.CreateTemp(c.dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return &CacheError{Path: path, Err: err}
	}
	defer os.Remove(tmp.Name())

	if err := EncodeCorpus(tmp, corpus); err != nil {
		tmp.Close()
		return &CacheError{Path: path, Err: err}
	}
	if err := tmp.Close(); err != nil {
		return &CacheError{Path: path, Err: err}
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return &CacheError{Path: path, Err: err}
	}
	return nil
}
