package tenk

import "testing"

func TestFingerprint(t *testing.T) {
	// sha1 over the sorted items joined by newlines.
	got := ItemSet{"a", "b"}.Fingerprint()
	want := "fcd127ffa1016069006ad91f3f361248f9bdf272"
	if got != want {
		t.Errorf("Fingerprint = %q, want %q", got, want)
	}
}

func TestFingerprintOrderIndependent(t *testing.T) {
	a := ItemSet{"net sales", "gross margin"}
	b := ItemSet{"gross margin", "net sales"}
	if a.Fingerprint() != b.Fingerprint() {
		t.Errorf("fingerprints differ for reordered sets: %q vs %q", a.Fingerprint(), b.Fingerprint())
	}
	// constructing the fingerprint must not reorder the caller's slice
	if a[0] != "net sales" {
		t.Errorf("Fingerprint mutated the item set: %v", a)
	}
}

func TestFingerprintDistinguishesSets(t *testing.T) {
	a := ItemSet{"net sales"}
	b := ItemSet{"gross margin"}
	if a.Fingerprint() == b.Fingerprint() {
		t.Errorf("different sets share fingerprint %q", a.Fingerprint())
	}
}

func TestDefaultItemsFingerprint(t *testing.T) {
	got := DefaultItems.Fingerprint()
	want := "d88944b372b5d8207494591c7b5fdfdfac8344e4"
	if got != want {
		t.Errorf("DefaultItems.Fingerprint = %q, want %q", got, want)
	}
}

func TestKey(t *testing.T) {
	tests := []struct{ item, want string }{
		{"net sales", "net_sales"},
		{"Gross Margin", "gross_margin"},
		{"total cost of operation", "total_cost_of_operation"},
		{"EBITDA", "ebitda"},
	}
	for _, tc := range tests {
		if got := Key(tc.item); got != tc.want {
			t.Errorf("Key(%q) = %q, want %q", tc.item, got, tc.want)
		}
	}
}

func TestKeys(t *testing.T) {
	got := ItemSet{"net sales", "Gross Margin"}.Keys()
	want := []string{"net_sales", "gross_margin"}
	if len(got) != len(want) {
		t.Fatalf("Keys = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Keys[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestCorpusFinancialsYears(t *testing.T) {
	fin := CorpusFinancials{2022: nil, 2018: nil, 2020: nil}
	want := []int{2018, 2020, 2022}
	got := fin.Years()
	if len(got) != len(want) {
		t.Fatalf("Years = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Years[%d] = %d, want %d", i, got[i], want[i])
		}
	}
}
