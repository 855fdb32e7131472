package sanitize

import "testing"

func TestStripHTML(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"plain text", "hello world", "hello world"},
		{"simple tags", "<p>hello</p>", "hello"},
		{"script tag", "<script>alert(1)</script>safe", "alert(1)safe"},
		{"encoded tag", "&lt;img src=x&gt;text", "text"},
		{"entities", "fish &amp; chips", "fish & chips"},
		{"surrounding whitespace", "  <b>bold</b>  ", "bold"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := StripHTML(tc.in); got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestCollapseWhitespace(t *testing.T) {
	got := CollapseWhitespace("  one\n\ttwo   three\r\nfour  ")
	if got != "one two three four" {
		t.Fatalf("unexpected result: %q", got)
	}
}

func TestTruncate(t *testing.T) {
	if got := Truncate("short", 100); got != "short" {
		t.Fatalf("expected untouched string, got %q", got)
	}
	if got := Truncate("abcdef", 3); got != "abc" {
		t.Fatalf("expected 3-byte cut, got %q", got)
	}
	// Multi-byte runes must not be split mid-sequence.
	if got := Truncate("निर्णय", 4); got != "न" {
		t.Fatalf("expected rune-safe cut, got %q", got)
	}
}
