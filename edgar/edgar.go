// Package edgar downloads 10-K filings from SEC EDGAR and turns them into
// a sectioned tenk.Corpus. The SEC exposes everything as plain JSON and
// HTML over HTTP; the only requirement is a declared identity in the
// User-Agent header and a gentle request rate (see httpcache.go).
package edgar

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"net/http"
	"strconv"

	"github.com/PaesslerAG/jsonpath"
	"github.com/etnz/tenk"
)

const (
	defaultTickersURL      = "https://www.sec.gov/files/company_tickers.json"
	defaultSubmissionsBase = "https://data.sec.gov/submissions"
	defaultArchivesBase    = "https://www.sec.gov/Archives/edgar/data"
)

// Source fetches filings from SEC EDGAR.
type Source struct {
	// Identity is the User-Agent the SEC requires, "Company Name email".
	Identity string

	// Overridable endpoints, for tests.
	TickersURL      string
	SubmissionsBase string
	ArchivesBase    string

	// Client defaults to a daily disk-cached HTTP client.
	Client *http.Client
}

// NewSource returns a source identified as required by the SEC fair-access
// policy.
func NewSource(identity string) *Source {
	return &Source{
		Identity:        identity,
		TickersURL:      defaultTickersURL,
		SubmissionsBase: defaultSubmissionsBase,
		ArchivesBase:    defaultArchivesBase,
	}
}

func (s *Source) client() *http.Client {
	if s.Client != nil {
		return s.Client
	}
	return daily()
}

// Fetch returns the sectioned 10-K corpus of a ticker for filing dates in
// [after, before] (ISO dates). When a cache is given, a corpus previously
// downloaded for the same ticker and range is returned without any network
// access, and a fresh download is persisted before returning.
func (s *Source) Fetch(ticker, after, before string, loc tenk.Locator, cache *tenk.Cache) (*tenk.Corpus, error) {
	if cache != nil {
		corpus, err := cache.LoadCorpus(ticker, after, before)
		if err == nil {
			log.Printf("fetching cached %s 10-K filings from %s to %s", ticker, after, before)
			return corpus, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	cik, err := s.lookupCIK(ticker)
	if err != nil {
		return nil, err
	}
	refs, err := s.tenKs(cik, after, before)
	if err != nil {
		return nil, err
	}
	if len(refs) == 0 {
		return nil, fmt.Errorf("no 10-K filings found for %s from %s to %s", ticker, after, before)
	}

	log.Printf("downloading %d %s 10-K filings from %s to %s", len(refs), ticker, after, before)
	corpus := tenk.NewCorpus(ticker)
	for _, ref := range refs {
		text, err := s.document(cik, ref)
		if err != nil {
			return nil, fmt.Errorf("downloading %s filing of %s: %w", ticker, ref.FilingDate, err)
		}
		if err := corpus.Add(ref.Year, loc.Locate(text)); err != nil {
			// Amended or duplicate filings in one calendar year: keep the first.
			log.Printf("skipping %s filing of %s: %v", ticker, ref.FilingDate, err)
		}
	}

	if cache != nil {
		if err := cache.StoreCorpus(corpus, after, before); err != nil {
			return nil, err
		}
	}
	return corpus, nil
}

// lookupCIK resolves a ticker to its SEC Central Index Key.
func (s *Source) lookupCIK(ticker string) (int64, error) {
	// The file is an object keyed by row number:
	// {"0":{"cik_str":320193,"ticker":"AAPL","title":"Apple Inc."}, ...}
	var content map[string]struct {
		CIK    int64  `json:"cik_str"`
		Ticker string `json:"ticker"`
	}
	if err := s.jwget(s.TickersURL, &content); err != nil {
		return 0, fmt.Errorf("cannot list SEC tickers: %w", err)
	}
	for _, row := range content {
		if row.Ticker == ticker {
			return row.CIK, nil
		}
	}
	return 0, fmt.Errorf("ticker %q is not known to SEC EDGAR", ticker)
}

// filingRef identifies one 10-K filing in the submissions index.
type filingRef struct {
	Year       int
	FilingDate string // ISO date
	Accession  string
	Primary    string // primary document file name
}

// tenKs lists the 10-K filings of a company with filing dates in
// [after, before].
func (s *Source) tenKs(cik int64, after, before string) ([]filingRef, error) {
	addr := fmt.Sprintf("%s/CIK%010d.json", s.SubmissionsBase, cik)
	var jobj any
	if err := s.jwget(addr, &jobj); err != nil {
		return nil, fmt.Errorf("cannot get submissions for CIK %d: %w", cik, err)
	}

	// The recent filings come as parallel arrays, one per column.
	columns := make(map[string][]any, 4)
	for _, name := range []string{"form", "filingDate", "accessionNumber", "primaryDocument"} {
		jval, err := jsonpath.Get("$.filings.recent."+name, jobj)
		if err != nil {
			return nil, fmt.Errorf("unexpected submissions format for CIK %d: %q %w", cik, name, err)
		}
		jlist, ok := jval.([]any)
		if !ok {
			return nil, fmt.Errorf("unexpected submissions format for CIK %d: %q is not a list", cik, name)
		}
		columns[name] = jlist
	}

	var refs []filingRef
	for i, form := range columns["form"] {
		if form != "10-K" {
			continue
		}
		date, _ := columns["filingDate"][i].(string)
		if len(date) < 4 || date < after || date > before {
			continue
		}
		year, err := strconv.Atoi(date[:4])
		if err != nil {
			continue
		}
		acc, _ := columns["accessionNumber"][i].(string)
		primary, _ := columns["primaryDocument"][i].(string)
		refs = append(refs, filingRef{Year: year, FilingDate: date, Accession: acc, Primary: primary})
	}
	return refs, nil
}

// document downloads the primary document of a filing and strips it down
// to plain text.
func (s *Source) document(cik int64, ref filingRef) (string, error) {
	acc := ""
	for _, r := range ref.Accession {
		if r != '-' {
			acc += string(r)
		}
	}
	addr := fmt.Sprintf("%s/%d/%s/%s", s.ArchivesBase, cik, acc, ref.Primary)
	body, err := s.wget(addr)
	if err != nil {
		return "", err
	}
	return htmlText(string(body)), nil
}

// wget performs an authenticated GET and returns the body.
func (s *Source) wget(addr string) ([]byte, error) {
	req, err := http.NewRequest(http.MethodGet, addr, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", s.Identity)

	resp, err := s.client().Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("cannot http GET %v/%v: %v", resp.Request.URL.Host, resp.Request.URL.Path, resp.Status)
	}
	return io.ReadAll(resp.Body)
}

// jwget performs an authenticated GET and unmarshals the JSON response into
// the provided data structure.
func (s *Source) jwget(addr string, data any) error {
	body, err := s.wget(addr)
	if err != nil {
		return err
	}
	return json.Unmarshal(body, data)
}
