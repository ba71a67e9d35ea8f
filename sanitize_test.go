package tenk

import "testing"

func TestSanitize(t *testing.T) {
	testCases := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "part and item labels",
			in:   "PART II\nITEM 7.\nrevenue grew this year.\nItem 1A. Risk Factors\nmore content.",
			want: "revenue grew this year.\nmore content.",
		},
		{
			name: "page numbers",
			in:   "first line\n42\nsecond line\n 7 \nthird line",
			want: "first line\nsecond line\nthird line",
		},
		{
			name: "form 10-K footers",
			in:   "content\nApple Inc. | 2023 Form 10-K | 12\nmore content",
			want: "content\nmore content",
		},
		{
			name: "page markers",
			in:   "content\n<PAGE>\nmore content",
			want: "content\nmore content",
		},
		{
			name: "leading blank lines",
			in:   "\n  \n\t\nfirst real line\n\ninternal blank stays\n",
			want: "first real line\n\ninternal blank stays",
		},
		{
			name: "sentences about items survive",
			in:   "Refer to Item 7 of Part II of this Form 10-K.",
			want: "Refer to Item 7 of Part II of this Form 10-K.",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Sanitize(tc.in); got != tc.want {
				t.Errorf("Sanitize(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestSanitizeEmpty(t *testing.T) {
	if got := Sanitize(""); got != "" {
		t.Errorf("Sanitize(\"\") = %q, want \"\"", got)
	}
}

func TestSanitizeIdempotent(t *testing.T) {
	inputs := []string{
		"",
		"PART I\n1\ncontent here.\n\nmore content.\n23\n",
		"\n\n  \nITEM 8.\nthe numbers.\n<PAGE>\n",
		"plain text with no noise at all.",
	}
	for _, in := range inputs {
		once := Sanitize(in)
		twice := Sanitize(once)
		if once != twice {
			t.Errorf("Sanitize not idempotent on %q: first %q, second %q", in, once, twice)
		}
	}
}
