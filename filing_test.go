package tenk

import "testing"

func TestFilingSection(t *testing.T) {
	f := Filing{
		Business:   "b",
		Risk:       "r",
		MDA:        "m",
		Financials: "f",
		FullText:   "t",
	}
	want := map[string]string{
		"business":   "b",
		"risk":       "r",
		"mda":        "m",
		"financials": "f",
		"full_text":  "t",
	}
	for _, name := range SectionNames() {
		got, err := f.Section(name)
		if err != nil {
			t.Fatalf("Section(%q): %v", name, err)
		}
		if got != want[name] {
			t.Errorf("Section(%q) = %q, want %q", name, got, want[name])
		}
	}
	if _, err := f.Section("item 1"); err == nil {
		t.Error("expected an error for an unknown section name")
	}
}
