package tenk

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// This file contains the JSONL codecs for a filing corpus. One header line
// carries the ticker, then one line per filing year. The files are big
// (each line carries a full 10-K text) but remain greppable and diffable.

// jfiling is the persisted form of one filing year.
type jfiling struct {
	Year       int    `json:"year"`
	Business   string `json:"business"`
	Risk       string `json:"risk"`
	MDA        string `json:"mda"`
	Financials string `json:"financials"`
	FullText   string `json:"full_text"`
}

// jcorpusHeader is the persisted first line of a corpus file.
type jcorpusHeader struct {
	Ticker string `json:"ticker"`
}

// EncodeCorpus writes the corpus as JSONL, years in ascending order.
func EncodeCorpus(w io.Writer, c *Corpus) error {
	enc := json.NewEncoder(w)
	if err := enc.Encode(jcorpusHeader{Ticker: c.Ticker()}); err != nil {
		return fmt.Errorf("encoding corpus header: %w", err)
	}
	for _, year := range c.Years() {
		f, _ := c.Get(year)
		jf := jfiling{
			Year:       year,
			Business:   f.Business,
			Risk:       f.Risk,
			MDA:        f.MDA,
			Financials: f.Financials,
			FullText:   f.FullText,
		}
		if err := enc.Encode(jf); err != nil {
			return fmt.Errorf("encoding corpus year %d: %w", year, err)
		}
	}
	return nil
}

// DecodeCorpus reads a corpus written by EncodeCorpus.
func DecodeCorpus(r io.Reader) (*Corpus, error) {
	// json.Decoder instead of a line scanner: full_text lines routinely
	// exceed bufio.Scanner's default token size.
	dec := json.NewDecoder(r)

	var header jcorpusHeader
	if err := dec.Decode(&header); err != nil {
		return nil, fmt.Errorf("decoding corpus header: %w", err)
	}
	if header.Ticker == "" {
		return nil, fmt.Errorf("decoding corpus header: missing ticker")
	}

	c := NewCorpus(header.Ticker)
	for {
		var jf jfiling
		err := dec.Decode(&jf)
		if errors.Is(err, io.EOF) {
			return c, nil
		}
		if err != nil {
			return nil, fmt.Errorf("decoding corpus %s: %w", header.Ticker, err)
		}
		if jf.Year == 0 {
			return nil, fmt.Errorf("decoding corpus %s: record without a year", header.Ticker)
		}
		f := Filing{
			Business:   jf.Business,
			Risk:       jf.Risk,
			MDA:        jf.MDA,
			Financials: jf.Financials,
			FullText:   jf.FullText,
		}
		if err := c.Add(jf.Year, f); err != nil {
			return nil, fmt.Errorf("decoding corpus %s: %w", header.Ticker, err)
		}
	}
}
