// Package search implements the pager's regex matcher and the state that
// tracks the committed query, its matches and the active selection.
package search

import (
	"errors"
	"fmt"
	"regexp"

	"miniless/internal/textutil"
)

// ErrBadPattern marks a pattern that failed to compile, as opposed to a
// pattern that compiled but matched nothing.
var ErrBadPattern = errors.New("invalid pattern")

// Match locates one hit: Line is 1-based, Col is the 0-based display column
// of the match start on that line.
type Match struct {
	Line int
	Col  int
}

// LineSource is the read access the matcher needs over the open file.
type LineSource interface {
	LineCount() int
	Line(idx int) string
}

// Matcher scans a line source for regex matches.
type Matcher struct {
	src LineSource
}

func NewMatcher(src LineSource) *Matcher {
	return &Matcher{src: src}
}

// FindAll compiles pattern and scans every line in order, reporting the
// first hit per matching line. The scan is synchronous and runs to
// completion; results are sorted by line ascending by construction.
func (m *Matcher) FindAll(pattern string) ([]Match, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadPattern, err)
	}

	var matches []Match
	total := m.src.LineCount()
	for i := 0; i < total; i++ {
		line := m.src.Line(i)
		loc := re.FindStringIndex(line)
		if loc == nil {
			continue
		}
		matches = append(matches, Match{
			Line: i + 1,
			Col:  textutil.DisplayWidth(line[:loc[0]]),
		})
	}
	return matches, nil
}
