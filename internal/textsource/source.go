// Package textsource provides line-indexed random access over a text file.
// The file is indexed once at open time (byte offset and trimmed display
// width per line); line text itself is re-read on demand through a small
// LRU cache, so arbitrarily large files never live in memory twice.
package textsource

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"miniless/internal/textutil"
)

const (
	chunkSize     = 128 * 1024
	maxCacheLines = 512
)

var ErrNotText = errors.New("file does not look like text")

type lineRecord struct {
	offset       int64
	length       int
	trimmedWidth int
}

// Source is a read-only, line-addressable view of one file.
type Source struct {
	path     string
	file     *os.File
	tabWidth int

	records  []lineRecord
	memLines []string // set for in-memory sources (UTF-16 files, tests)

	cache      map[int]string
	cacheOrder []int
}

// Open indexes path and returns a Source over it. UTF-16 files are decoded
// into memory up front; everything else stays on disk behind the line index.
func Open(path string, tabWidth int) (*Source, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	sample := make([]byte, detectionSampleSize)
	n, err := file.ReadAt(sample, 0)
	if err != nil && !errors.Is(err, io.EOF) {
		_ = file.Close()
		return nil, err
	}
	sample = sample[:n]

	if enc := detectEncoding(sample); enc == encodingUTF16LE || enc == encodingUTF16BE {
		defer func() { _ = file.Close() }()
		lines, err := decodeUTF16File(file, enc)
		if err != nil {
			return nil, fmt.Errorf("decode %s: %w", path, err)
		}
		src := NewFromLines(lines, tabWidth)
		src.path = path
		return src, nil
	}

	if looksBinary(sample) {
		_ = file.Close()
		return nil, fmt.Errorf("%s: %w", path, ErrNotText)
	}

	src := &Source{
		path:     path,
		file:     file,
		tabWidth: tabWidth,
		cache:    make(map[int]string),
	}
	if err := src.index(bomLength(sample)); err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("index %s: %w", path, err)
	}
	return src, nil
}

// NewFromLines builds an in-memory Source, used for decoded UTF-16 content
// and in tests.
func NewFromLines(lines []string, tabWidth int) *Source {
	src := &Source{
		tabWidth: tabWidth,
		memLines: make([]string, len(lines)),
		records:  make([]lineRecord, len(lines)),
	}
	for i, line := range lines {
		expanded := textutil.SanitizeTerminalText(textutil.ExpandTabs(line, tabWidth))
		src.memLines[i] = expanded
		src.records[i] = lineRecord{trimmedWidth: textutil.TrimmedWidth(expanded)}
	}
	return src
}

func (s *Source) Close() error {
	if s == nil || s.file == nil {
		return nil
	}
	err := s.file.Close()
	s.file = nil
	return err
}

func (s *Source) Path() string {
	if s == nil {
		return ""
	}
	return s.path
}

func (s *Source) LineCount() int {
	if s == nil {
		return 0
	}
	return len(s.records)
}

// Line returns the text of line idx without its terminator, tabs expanded
// and control characters replaced so the result is safe to paint on a
// terminal. Out-of-range indices yield the empty string.
func (s *Source) Line(idx int) string {
	if s == nil || idx < 0 || idx >= len(s.records) {
		return ""
	}
	if s.memLines != nil {
		return s.memLines[idx]
	}
	if text, ok := s.cache[idx]; ok {
		return text
	}
	text, err := s.readLine(idx)
	if err != nil {
		return fmt.Sprintf("(error reading file: %v)", err)
	}
	s.cacheLine(idx, text)
	return text
}

// TrimmedWidth reports the display width of line idx with trailing
// whitespace removed. This is the width cursor clamping works against.
func (s *Source) TrimmedWidth(idx int) int {
	if s == nil || idx < 0 || idx >= len(s.records) {
		return 0
	}
	return s.records[idx].trimmedWidth
}

// index walks the whole file once, recording offset, byte length and trimmed
// width for every line. CRLF terminators are normalized to bare LF and a
// final line without terminator still gets a record.
func (s *Source) index(skip int) error {
	buf := make([]byte, chunkSize)
	var partial []byte
	partialOffset := int64(skip)
	offset := int64(skip)

	for {
		n, err := s.file.ReadAt(buf, offset)
		if err != nil && !errors.Is(err, io.EOF) {
			return err
		}
		data := buf[:n]
		dataOffset := offset
		if len(partial) > 0 {
			data = append(partial, data...)
			dataOffset = partialOffset
			partial = nil
		}

		cursor := 0
		for cursor < len(data) {
			rel := bytes.IndexByte(data[cursor:], '\n')
			if rel == -1 {
				break
			}
			s.appendRecord(data[cursor:cursor+rel], dataOffset+int64(cursor))
			cursor += rel + 1
		}
		if cursor < len(data) {
			partial = append([]byte(nil), data[cursor:]...)
			partialOffset = dataOffset + int64(cursor)
		}

		offset += int64(n)
		if errors.Is(err, io.EOF) || n == 0 {
			if len(partial) > 0 {
				s.appendRecord(partial, partialOffset)
			}
			return nil
		}
	}
}

func (s *Source) appendRecord(lineBytes []byte, start int64) {
	length := len(lineBytes)
	if length > 0 && lineBytes[length-1] == '\r' {
		lineBytes = lineBytes[:length-1]
	}
	expanded := textutil.SanitizeTerminalText(textutil.ExpandTabs(string(lineBytes), s.tabWidth))
	s.records = append(s.records, lineRecord{
		offset:       start,
		length:       length,
		trimmedWidth: textutil.TrimmedWidth(expanded),
	})
	s.cacheLine(len(s.records)-1, expanded)
}

func (s *Source) readLine(idx int) (string, error) {
	if s.file == nil {
		file, err := os.Open(s.path)
		if err != nil {
			return "", err
		}
		s.file = file
	}
	record := s.records[idx]
	if record.length == 0 {
		return "", nil
	}
	buf := make([]byte, record.length)
	n, err := s.file.ReadAt(buf, record.offset)
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	line := buf[:n]
	if len(line) > 0 && line[len(line)-1] == '\r' {
		line = line[:len(line)-1]
	}
	return textutil.SanitizeTerminalText(textutil.ExpandTabs(string(line), s.tabWidth)), nil
}

func (s *Source) cacheLine(idx int, text string) {
	if s.cache == nil {
		s.cache = make(map[int]string)
	}
	if _, ok := s.cache[idx]; ok {
		for i, v := range s.cacheOrder {
			if v == idx {
				s.cacheOrder = append(s.cacheOrder[:i], s.cacheOrder[i+1:]...)
				break
			}
		}
	}
	s.cache[idx] = text
	s.cacheOrder = append(s.cacheOrder, idx)
	if len(s.cacheOrder) > maxCacheLines {
		evict := s.cacheOrder[0]
		s.cacheOrder = s.cacheOrder[1:]
		delete(s.cache, evict)
	}
}
