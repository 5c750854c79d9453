package textsource

import (
	"encoding/binary"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf16"
)

func writeTemp(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	return path
}

func TestOpenIndexesLines(t *testing.T) {
	path := writeTemp(t, "plain.txt", []byte("alpha\nbeta\ngamma\n"))
	src, err := Open(path, 4)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer func() { _ = src.Close() }()

	if got := src.LineCount(); got != 3 {
		t.Fatalf("LineCount = %d, want 3", got)
	}
	if got := src.Line(1); got != "beta" {
		t.Fatalf("Line(1) = %q, want %q", got, "beta")
	}
	if got := src.TrimmedWidth(2); got != 5 {
		t.Fatalf("TrimmedWidth(2) = %d, want 5", got)
	}
}

func TestOpenNoTrailingNewline(t *testing.T) {
	path := writeTemp(t, "partial.txt", []byte("one\ntwo"))
	src, err := Open(path, 4)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer func() { _ = src.Close() }()

	if got := src.LineCount(); got != 2 {
		t.Fatalf("LineCount = %d, want 2", got)
	}
	if got := src.Line(1); got != "two" {
		t.Fatalf("Line(1) = %q, want %q", got, "two")
	}
}

func TestOpenCRLF(t *testing.T) {
	path := writeTemp(t, "crlf.txt", []byte("one\r\ntwo\r\n"))
	src, err := Open(path, 4)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer func() { _ = src.Close() }()

	if got := src.Line(0); got != "one" {
		t.Fatalf("Line(0) = %q, want %q", got, "one")
	}
	if got := src.TrimmedWidth(0); got != 3 {
		t.Fatalf("TrimmedWidth(0) = %d, want 3", got)
	}
}

func TestOpenUTF8BOM(t *testing.T) {
	path := writeTemp(t, "bom.txt", []byte("\xef\xbb\xbffirst\nsecond\n"))
	src, err := Open(path, 4)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer func() { _ = src.Close() }()

	if got := src.Line(0); got != "first" {
		t.Fatalf("Line(0) = %q, want %q", got, "first")
	}
}

func TestOpenEmptyFile(t *testing.T) {
	path := writeTemp(t, "empty.txt", nil)
	src, err := Open(path, 4)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer func() { _ = src.Close() }()

	if got := src.LineCount(); got != 0 {
		t.Fatalf("LineCount = %d, want 0", got)
	}
	if got := src.Line(0); got != "" {
		t.Fatalf("Line(0) on empty file = %q, want empty", got)
	}
}

func TestOpenUTF16LE(t *testing.T) {
	content := "héllo\nwörld\n"
	units := utf16.Encode([]rune(content))
	buf := make([]byte, 2+len(units)*2)
	buf[0] = 0xff
	buf[1] = 0xfe
	for i, u := range units {
		binary.LittleEndian.PutUint16(buf[2+i*2:], u)
	}

	path := writeTemp(t, "utf16.txt", buf)
	src, err := Open(path, 4)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer func() { _ = src.Close() }()

	if got := src.LineCount(); got != 2 {
		t.Fatalf("LineCount = %d, want 2", got)
	}
	if got := src.Line(0); got != "héllo" {
		t.Fatalf("Line(0) = %q, want %q", got, "héllo")
	}
	if got := src.Line(1); got != "wörld" {
		t.Fatalf("Line(1) = %q, want %q", got, "wörld")
	}
}

func TestOpenRejectsBinary(t *testing.T) {
	path := writeTemp(t, "blob.bin", []byte{0x7f, 'E', 'L', 'F', 0x00, 0x01, 0x02})
	_, err := Open(path, 4)
	if !errors.Is(err, ErrNotText) {
		t.Fatalf("expected ErrNotText, got %v", err)
	}
}

func TestTabExpansionInLines(t *testing.T) {
	path := writeTemp(t, "tabs.txt", []byte("a\tb\n"))
	src, err := Open(path, 4)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer func() { _ = src.Close() }()

	if got := src.Line(0); got != "a   b" {
		t.Fatalf("Line(0) = %q, want %q", got, "a   b")
	}
	if got := src.TrimmedWidth(0); got != 5 {
		t.Fatalf("TrimmedWidth(0) = %d, want 5", got)
	}
}

func TestCacheEviction(t *testing.T) {
	var sb strings.Builder
	for i := 0; i < maxCacheLines+50; i++ {
		sb.WriteString("line content here\n")
	}
	path := writeTemp(t, "big.txt", []byte(sb.String()))
	src, err := Open(path, 4)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer func() { _ = src.Close() }()

	if len(src.cache) > maxCacheLines {
		t.Fatalf("cache grew to %d entries, cap is %d", len(src.cache), maxCacheLines)
	}
	// Evicted lines are re-read from disk transparently.
	if got := src.Line(0); got != "line content here" {
		t.Fatalf("Line(0) after eviction = %q", got)
	}
}

func TestLineNeutralizesControlSequences(t *testing.T) {
	path := writeTemp(t, "hostile.txt", []byte("before\x1b[2Jafter\nplain\n"))
	src, err := Open(path, 4)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer func() { _ = src.Close() }()

	want := "before?[2Jafter"
	if got := src.Line(0); got != want {
		t.Fatalf("Line(0) = %q, want %q", got, want)
	}
	// The indexed width must describe the sanitized text, not the raw bytes.
	if got := src.TrimmedWidth(0); got != len(want) {
		t.Fatalf("TrimmedWidth(0) = %d, want %d", got, len(want))
	}
	// The disk re-read path sanitizes the same way as the index pass.
	reread, err := src.readLine(0)
	if err != nil {
		t.Fatalf("readLine: %v", err)
	}
	if reread != want {
		t.Fatalf("readLine(0) = %q, want %q", reread, want)
	}
}

func TestNewFromLinesNeutralizesControlSequences(t *testing.T) {
	src := NewFromLines([]string{"a\x07b"}, 4)
	if got := src.Line(0); got != "a?b" {
		t.Fatalf("Line(0) = %q, want %q", got, "a?b")
	}
	if got := src.TrimmedWidth(0); got != 3 {
		t.Fatalf("TrimmedWidth(0) = %d, want 3", got)
	}
}

func TestNewFromLines(t *testing.T) {
	src := NewFromLines([]string{"a\tb", "cd"}, 4)
	if got := src.LineCount(); got != 2 {
		t.Fatalf("LineCount = %d, want 2", got)
	}
	if got := src.Line(0); got != "a   b" {
		t.Fatalf("Line(0) = %q, want %q", got, "a   b")
	}
	if got := src.TrimmedWidth(1); got != 2 {
		t.Fatalf("TrimmedWidth(1) = %d, want 2", got)
	}
}
