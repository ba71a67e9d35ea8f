package renderer

import (
	"strings"
	"testing"

	"github.com/etnz/tenk"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

func intp(v int64) *int64 { return &v }

func TestFinancials(t *testing.T) {
	items := tenk.ItemSet{"net sales", "gross margin"}
	fin := tenk.CorpusFinancials{
		2020: tenk.YearFinancials{"net_sales": intp(1000000), "gross_margin": nil},
		2022: tenk.YearFinancials{"net_sales": intp(2000000)},
	}

	got := Financials("AAPL", items, fin)
	for _, want := range []string{
		"# AAPL 10-K Financials",
		"| Year | net sales | gross margin |",
		"| 2020 | $1,000,000.00 | N/A |",
		"| 2022 | $2,000,000.00 | N/A |",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output lacks %q:\n%s", want, got)
		}
	}
	// years come out ascending
	if strings.Index(got, "| 2020 |") > strings.Index(got, "| 2022 |") {
		t.Errorf("years out of order:\n%s", got)
	}
}

func TestFinancialsEmpty(t *testing.T) {
	got := Financials("AAPL", tenk.DefaultItems, nil)
	if !strings.Contains(got, "No financial data extracted.") {
		t.Errorf("output lacks the empty notice:\n%s", got)
	}
	if strings.Contains(got, "| Year |") {
		t.Errorf("empty result rendered a table:\n%s", got)
	}
}

func TestSections(t *testing.T) {
	corpus := tenk.NewCorpus("AAPL")
	if err := corpus.Add(2020, tenk.Filing{
		Business: "we sell phones.",
		FullText: "ITEM 1. BUSINESS\nwe sell phones.",
	}); err != nil {
		t.Fatal(err)
	}

	got := Sections(corpus)
	for _, want := range []string{
		"# AAPL 10-K Filings",
		"| 2020 | 15 chars | not found | not found | not found | 32 chars |",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output lacks %q:\n%s", want, got)
		}
	}
}

// The output is piped through a markdown renderer before display, so it must
// at least parse as markdown with the expected top-level structure.
func TestFinancialsIsMarkdown(t *testing.T) {
	fin := tenk.CorpusFinancials{2020: tenk.YearFinancials{"net_sales": intp(1)}}
	src := []byte(Financials("AAPL", tenk.ItemSet{"net sales"}, fin))

	doc := goldmark.DefaultParser().Parse(text.NewReader(src))
	var heading bool
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		if h, ok := n.(*ast.Heading); ok && h.Level == 1 {
			heading = true
		}
	}
	if !heading {
		t.Errorf("no level-1 heading in rendered markdown:\n%s", src)
	}
}
