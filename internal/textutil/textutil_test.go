package textutil

import "testing"

func TestExpandTabsAlignsToStops(t *testing.T) {
	got := ExpandTabs("a\tb", 4)
	if got != "a   b" {
		t.Fatalf("ExpandTabs mismatch, got %q want %q", got, "a   b")
	}

	// Wide runes occupy two columns before the stop.
	got = ExpandTabs("你\tb", 4)
	if got != "你  b" {
		t.Fatalf("ExpandTabs wide rune mismatch, got %q", got)
	}

	if got := ExpandTabs("no tabs", 4); got != "no tabs" {
		t.Fatalf("expected unchanged text, got %q", got)
	}
}

func TestDisplayWidth(t *testing.T) {
	cases := []struct {
		text string
		want int
	}{
		{"", 0},
		{"abc", 3},
		{"你好", 4},
		{"a你b", 4},
	}
	for _, tc := range cases {
		if got := DisplayWidth(tc.text); got != tc.want {
			t.Errorf("DisplayWidth(%q) = %d, want %d", tc.text, got, tc.want)
		}
	}
}

func TestTrimmedWidth(t *testing.T) {
	if got := TrimmedWidth("abc   "); got != 3 {
		t.Fatalf("TrimmedWidth = %d, want 3", got)
	}
	if got := TrimmedWidth("   "); got != 0 {
		t.Fatalf("TrimmedWidth of blanks = %d, want 0", got)
	}
}

func TestSanitizeTerminalText(t *testing.T) {
	if got := SanitizeTerminalText("plain text"); got != "plain text" {
		t.Fatalf("clean text must pass through, got %q", got)
	}
	if got := SanitizeTerminalText("a\x1b[31mb"); got != "a?[31mb" {
		t.Fatalf("escape byte not replaced, got %q", got)
	}
	if got := SanitizeTerminalText("a\tb"); got != "a\tb" {
		t.Fatalf("tabs must survive sanitizing, got %q", got)
	}
}

func TestTruncateToWidth(t *testing.T) {
	if got := TruncateToWidth("abcdef", 10); got != "abcdef" {
		t.Fatalf("short text must not truncate, got %q", got)
	}
	if got := TruncateToWidth("abcdef", 4); got != "abc…" {
		t.Fatalf("truncate mismatch, got %q", got)
	}
	// A wide rune that would straddle the limit is dropped entirely.
	if got := TruncateToWidth("a你好", 4); got != "a你…" {
		t.Fatalf("wide truncate mismatch, got %q", got)
	}
	if got := TruncateToWidth("abc", 0); got != "" {
		t.Fatalf("zero width must yield empty, got %q", got)
	}
}
