package edgar

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/etnz/tenk"
)

func TestHTMLText(t *testing.T) {
	src := `<html><head><title>ignored</title><style>p { color: red }</style></head>
<body>
<p>ITEM 1.&nbsp;BUSINESS</p>
<div>we sell <b>phones</b> &amp; tablets.</div>
<script>var hidden = "never shown";</script>
<p>the end.</p>
</body></html>`

	got := htmlText(src)
	for _, want := range []string{"ITEM 1. BUSINESS", "we sell", "phones", "& tablets.", "the end."} {
		if !strings.Contains(got, want) {
			t.Errorf("htmlText output lacks %q:\n%s", want, got)
		}
	}
	for _, banned := range []string{"ignored", "color: red", "hidden", "<p>", "&amp;"} {
		if strings.Contains(got, banned) {
			t.Errorf("htmlText output still contains %q:\n%s", banned, got)
		}
	}
}

func TestHTMLTextPlain(t *testing.T) {
	src := "ITEM 1. BUSINESS\nwe sell phones.\n"
	if got := htmlText(src); got != src {
		t.Errorf("plain text altered: %q", got)
	}
}

// fakeEDGAR serves the three SEC endpoints Fetch touches and counts requests.
type fakeEDGAR struct {
	t *testing.T

	mu       sync.Mutex
	requests int
}

func (f *fakeEDGAR) filingHTML(year int) string {
	return fmt.Sprintf(`<html><body>
<p>ITEM 1. BUSINESS</p>
<p>business of %d.</p>
<p>ITEM 1A. RISK FACTORS</p>
<p>risks of %d.</p>
<p>ITEM 2. PROPERTIES</p>
</body></html>`, year, year)
}

func (f *fakeEDGAR) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.requests
}

func (f *fakeEDGAR) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	f.requests++
	f.mu.Unlock()

	if ua := r.Header.Get("User-Agent"); ua != "Test Co test@example.com" {
		f.t.Errorf("User-Agent = %q, want the declared identity", ua)
	}

	switch r.URL.Path {
	case "/company_tickers.json":
		fmt.Fprint(w, `{"0":{"cik_str":320193,"ticker":"AAPL","title":"Apple Inc."},
			"1":{"cik_str":789019,"ticker":"MSFT","title":"Microsoft Corp"}}`)
	case "/submissions/CIK0000320193.json":
		fmt.Fprint(w, `{"filings":{"recent":{
			"form":["10-K","8-K","10-K","10-K"],
			"filingDate":["2020-10-30","2021-01-05","2022-10-28","1990-11-01"],
			"accessionNumber":["0000320193-20-000096","0000320193-21-000001","0000320193-22-000108","0000320193-90-000001"],
			"primaryDocument":["aapl-2020.htm","x.htm","aapl-2022.htm","old.htm"]}}}`)
	case "/archives/320193/000032019320000096/aapl-2020.htm":
		fmt.Fprint(w, f.filingHTML(2020))
	case "/archives/320193/000032019322000108/aapl-2022.htm":
		fmt.Fprint(w, f.filingHTML(2022))
	default:
		http.NotFound(w, r)
	}
}

func testSource(srv *httptest.Server) *Source {
	return &Source{
		Identity:        "Test Co test@example.com",
		TickersURL:      srv.URL + "/company_tickers.json",
		SubmissionsBase: srv.URL + "/submissions",
		ArchivesBase:    srv.URL + "/archives",
		Client:          srv.Client(),
	}
}

func TestFetch(t *testing.T) {
	fake := &fakeEDGAR{t: t}
	srv := httptest.NewServer(fake)
	defer srv.Close()

	corpus, err := testSource(srv).Fetch("AAPL", "1995-01-01", "2024-01-01", tenk.Locator{}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if corpus.Ticker() != "AAPL" {
		t.Errorf("Ticker = %q, want AAPL", corpus.Ticker())
	}

	// the 8-K and the 1990 filing must have been filtered out
	years := corpus.Years()
	if len(years) != 2 || years[0] != 2020 || years[1] != 2022 {
		t.Fatalf("Years = %v, want [2020 2022]", years)
	}

	f, _ := corpus.Get(2020)
	if !strings.Contains(f.Business, "business of 2020.") {
		t.Errorf("2020 Business = %q", f.Business)
	}
	if !strings.Contains(f.Risk, "risks of 2020.") {
		t.Errorf("2020 Risk = %q", f.Risk)
	}
	f, _ = corpus.Get(2022)
	if !strings.Contains(f.Business, "business of 2022.") {
		t.Errorf("2022 Business = %q", f.Business)
	}

	// tickers + submissions + two documents
	if got := fake.count(); got != 4 {
		t.Errorf("server saw %d requests, want 4", got)
	}
}

func TestFetchCached(t *testing.T) {
	fake := &fakeEDGAR{t: t}
	srv := httptest.NewServer(fake)
	defer srv.Close()

	src := testSource(srv)
	cache := tenk.NewCache(t.TempDir())

	first, err := src.Fetch("AAPL", "1995-01-01", "2024-01-01", tenk.Locator{}, cache)
	if err != nil {
		t.Fatal(err)
	}
	downloaded := fake.count()

	second, err := src.Fetch("AAPL", "1995-01-01", "2024-01-01", tenk.Locator{}, cache)
	if err != nil {
		t.Fatal(err)
	}
	if got := fake.count(); got != downloaded {
		t.Errorf("cached fetch hit the network: %d requests, want %d", got, downloaded)
	}
	if first.Len() != second.Len() {
		t.Errorf("cached corpus has %d years, fresh had %d", second.Len(), first.Len())
	}
	f, ok := second.Get(2020)
	if !ok || !strings.Contains(f.Business, "business of 2020.") {
		t.Errorf("cached 2020 Business = %q, %v", f.Business, ok)
	}

	// another date range is a fresh download
	if _, err := src.Fetch("AAPL", "2021-01-01", "2024-01-01", tenk.Locator{}, cache); err != nil {
		t.Fatal(err)
	}
	if got := fake.count(); got <= downloaded {
		t.Errorf("narrowed range did not hit the network: %d requests", got)
	}
}

func TestFetchUnknownTicker(t *testing.T) {
	fake := &fakeEDGAR{t: t}
	srv := httptest.NewServer(fake)
	defer srv.Close()

	_, err := testSource(srv).Fetch("ZZZZ", "1995-01-01", "2024-01-01", tenk.Locator{}, nil)
	if err == nil {
		t.Fatal("expected an error for an unknown ticker")
	}
	if !strings.Contains(err.Error(), "ZZZZ") {
		t.Errorf("err = %v, want it to name the ticker", err)
	}
}

func TestFetchNoFilingsInRange(t *testing.T) {
	fake := &fakeEDGAR{t: t}
	srv := httptest.NewServer(fake)
	defer srv.Close()

	_, err := testSource(srv).Fetch("AAPL", "2023-01-01", "2024-01-01", tenk.Locator{}, nil)
	if err == nil {
		t.Fatal("expected an error when no filing falls in the range")
	}
}
