package tenk

import (
	"fmt"
	"slices"
)

// Filing holds the text of one 10-K filing, split into its named sections.
// An empty section means the locator could not find it in the document.
// A Filing is created once per downloaded filing and never mutated after.
type Filing struct {
	Business   string // Item 1
	Risk       string // Item 1A
	MDA        string // Item 7, management's discussion and analysis
	Financials string // Item 8, financial statements and supplementary data
	FullText   string // the raw filing text, kept verbatim
}

// Section returns a section of the filing by its canonical name
// (business, risk, mda, financials or full_text).
func (f Filing) Section(name string) (string, error) {
	switch name {
	case "business":
		return f.Business, nil
	case "risk":
		return f.Risk, nil
	case "mda":
		return f.MDA, nil
	case "financials":
		return f.Financials, nil
	case "full_text":
		return f.FullText, nil
	}
	return "", fmt.Errorf("unknown section %q", name)
}

// SectionNames lists the canonical section names in display order.
func SectionNames() []string {
	return []string{"business", "risk", "mda", "financials", "full_text"}
}

// Corpus owns the downloaded 10-K filings of a single company,
// one Filing per filing year.
type Corpus struct {
	ticker string
	years  map[int]Filing
}

// NewCorpus returns an empty corpus for the given ticker.
func NewCorpus(ticker string) *Corpus {
	return &Corpus{ticker: ticker, years: make(map[int]Filing)}
}

// Ticker returns the ticker of the company this corpus belongs to.
func (c *Corpus) Ticker() string { return c.ticker }

// Add records the filing for a year. Adding the same year twice is an error:
// filings are immutable once ingested.
func (c *Corpus) Add(year int, f Filing) error {
	if _, ok := c.years[year]; ok {
		return fmt.Errorf("corpus %s already has a filing for year %d", c.ticker, year)
	}
	c.years[year] = f
	return nil
}

// Get returns the filing for a year.
func (c *Corpus) Get(year int) (Filing, bool) {
	f, ok := c.years[year]
	return f, ok
}

// Years returns the filing years in ascending order.
func (c *Corpus) Years() []int {
	years := make([]int, 0, len(c.years))
	for y := range c.years {
		years = append(years, y)
	}
	slices.Sort(years)
	return years
}

// Len returns the number of filings in the corpus.
func (c *Corpus) Len() int { return len(c.years) }
